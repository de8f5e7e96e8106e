// Package scene holds the node graph animated by controllers and drives the
// per-frame update traversal.
package scene

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-nif/engine/controller"
)

// Scene manages a root node graph and evaluates every attached controller once per Update.
// Scenes can be hot-swapped via the Active flag; inactive scenes are skipped by the engine.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently updated by the engine.
	Active() bool

	// SetActive sets whether this scene is updated by the engine.
	SetActive(active bool)

	// Root returns the scene's root group.
	Root() Node

	// AddNode appends a node under the root.
	//
	// Parameters:
	//   - n: the node to add
	AddNode(n Node)

	// Update runs one update traversal at the given simulation time. Every
	// controller in the graph is invoked exactly once, parents before children.
	//
	// Parameters:
	//   - simTime: the simulation time in seconds
	//
	// Returns:
	//   - int: the number of controller invocations
	Update(simTime float64) int

	// SimulationTime returns the time passed to the last Update.
	SimulationTime() float64

	// ControllerCount returns the number of controllers attached anywhere in the graph.
	//
	// Returns:
	//   - int: count of attached controllers
	ControllerCount() int

	// FindByName returns the first node with the given name, or nil.
	//
	// Parameters:
	//   - name: the node name
	//
	// Returns:
	//   - Node: the node or nil
	FindByName(name string) Node
}

type scene struct {
	mu *sync.RWMutex

	name    string
	active  bool
	root    *Group
	simTime float64

	// updatePool runs root subtrees concurrently when updateWorkers > 1.
	updatePool    worker.DynamicWorkerPool
	updateWorkers int
}

var _ Scene = &scene{}

// NewScene creates an empty Scene.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:            &sync.RWMutex{},
		name:          name,
		root:          NewGroup(name),
		updateWorkers: 1,
	}

	for _, option := range options {
		option(s)
	}

	if s.updateWorkers > 1 {
		s.updatePool = worker.NewDynamicWorkerPool(s.updateWorkers, 256, 1*time.Second)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Root() Node {
	return s.root
}

func (s *scene) AddNode(n Node) {
	if n == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root.AddChild(n)
}

func (s *scene) SimulationTime() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.simTime
}

func (s *scene) Update(simTime float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.simTime = simTime

	if s.updatePool == nil || len(s.root.controllers) > 0 || len(s.root.children) < 2 {
		v := newVisitor(simTime)
		v.visit(s.root)
		return v.invocations
	}

	// Root subtrees share no controllers, so each gets its own visitor.
	var wg sync.WaitGroup
	var total atomic.Int64
	for i, child := range s.root.children {
		wg.Add(1)
		c := child
		s.updatePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				v := newVisitor(simTime)
				v.visit(c)
				total.Add(int64(v.invocations))
				return nil, nil
			},
		})
	}
	wg.Wait()
	return int(total.Load())
}

func (s *scene) ControllerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	Walk(s.root, func(n Node) bool {
		count += len(n.Controllers())
		return true
	})
	return count
}

func (s *scene) FindByName(name string) Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FindByName(s.root, name)
}

// BindInput binds in to every controller in the subtree that has no input yet.
//
// Parameters:
//   - n: the subtree root
//   - in: the input source
//
// Returns:
//   - int: the number of controllers bound
func BindInput(n Node, in controller.InputSource) int {
	bound := 0
	Walk(n, func(node Node) bool {
		for _, c := range node.Controllers() {
			if !c.HasInput() {
				c.SetInput(in)
				bound++
			}
		}
		return true
	})
	return bound
}
