package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-nif/engine/controller"
	"github.com/Carmen-Shannon/oxy-nif/engine/material"
	"github.com/google/uuid"
)

// Node is an element of the scene graph. Every node carries a traversal mask,
// an optional state set, children, and an ordered controller chain.
type Node interface {
	// ID returns the node's instance identifier. Clones get a fresh ID.
	ID() uuid.UUID

	// Name returns the node name from the asset.
	Name() string

	// NodeMask returns the traversal mask. VisibleMask means visible to every pass.
	NodeMask() uint32

	// SetNodeMask replaces the traversal mask.
	//
	// Parameters:
	//   - mask: the new mask
	SetNodeMask(mask uint32)

	// StateSet returns the node's rendering attributes, or nil.
	StateSet() *material.StateSet

	// SetStateSet replaces the node's rendering attributes.
	//
	// Parameters:
	//   - ss: the new state set, may be nil
	SetStateSet(ss *material.StateSet)

	// Children returns the direct children in insertion order.
	Children() []Node

	// AddChild appends a child node.
	//
	// Parameters:
	//   - child: the node to append
	AddChild(child Node)

	// Controllers returns the controller chain in evaluation order.
	Controllers() []controller.Controller

	// AddController attaches a controller to the node. State-set controllers
	// get their defaults installed, creating the state set if needed. The
	// chain is kept ordered by precedence; equal precedence keeps insertion order.
	//
	// Parameters:
	//   - c: the controller to attach
	//
	// Returns:
	//   - error: if the node lacks the capability the controller writes
	AddController(c controller.Controller) error

	group() *Group
	clone() Node
}

// VisibleMask is the node mask of a node visible to every traversal.
const VisibleMask = controller.VisibleMask

// Group is a plain interior node. The other node types embed it.
type Group struct {
	self        Node
	id          uuid.UUID
	name        string
	mask        uint32
	stateSet    *material.StateSet
	children    []Node
	controllers []controller.Controller
}

var _ Node = &Group{}

// NewGroup creates an empty Group.
//
// Parameters:
//   - name: the node name
//
// Returns:
//   - *Group: the new node
func NewGroup(name string) *Group {
	g := newGroup(name)
	g.self = g
	return g
}

func newGroup(name string) *Group {
	return &Group{id: uuid.New(), name: name, mask: VisibleMask}
}

func (g *Group) group() *Group {
	return g
}

func (g *Group) ID() uuid.UUID {
	return g.id
}

func (g *Group) Name() string {
	return g.name
}

func (g *Group) NodeMask() uint32 {
	return g.mask
}

func (g *Group) SetNodeMask(mask uint32) {
	g.mask = mask
}

func (g *Group) StateSet() *material.StateSet {
	return g.stateSet
}

func (g *Group) SetStateSet(ss *material.StateSet) {
	g.stateSet = ss
}

func (g *Group) Children() []Node {
	return g.children
}

func (g *Group) AddChild(child Node) {
	g.children = append(g.children, child)
}

func (g *Group) Controllers() []controller.Controller {
	return g.controllers
}

func (g *Group) AddController(c controller.Controller) error {
	if c == nil {
		return fmt.Errorf("node %q: nil controller", g.name)
	}
	if !controller.Supports(g.self, c.Capability()) {
		return fmt.Errorf("node %q (%T) cannot host a %s controller: missing %s capability", g.name, g.self, c.Kind(), c.Capability())
	}
	if sc, ok := c.(controller.StateSetController); ok {
		if g.stateSet == nil {
			g.stateSet = material.NewStateSet()
		}
		sc.SetDefaults(g.stateSet)
	}
	g.insertController(c)
	return nil
}

// insertController places c after every controller of lower or equal precedence.
func (g *Group) insertController(c controller.Controller) {
	i := len(g.controllers)
	for i > 0 && g.controllers[i-1].Precedence() > c.Precedence() {
		i--
	}
	g.controllers = append(g.controllers, nil)
	copy(g.controllers[i+1:], g.controllers[i:])
	g.controllers[i] = c
}

// copyInto fills dst with a copy of g's attributes, cloned controllers and cloned children.
// dst.self must already be set.
func (g *Group) copyInto(dst *Group) {
	dst.id = uuid.New()
	dst.name = g.name
	dst.mask = g.mask
	if g.stateSet != nil {
		dst.stateSet = g.stateSet.Clone()
	}
	dst.controllers = make([]controller.Controller, len(g.controllers))
	for i, c := range g.controllers {
		dst.controllers[i] = c.Clone()
	}
	dst.children = make([]Node, len(g.children))
	for i, child := range g.children {
		dst.children[i] = child.clone()
	}
}

func (g *Group) clone() Node {
	dup := &Group{}
	dup.self = dup
	g.copyInto(dup)
	return dup
}

// CloneNode deep copies a subtree for a new instance. Nodes get fresh IDs,
// state sets are copied, and controllers are cloned so per-instance state is
// not shared while key data is.
//
// Parameters:
//   - n: the subtree root
//
// Returns:
//   - Node: the copy
func CloneNode(n Node) Node {
	if n == nil {
		return nil
	}
	return n.clone()
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children() {
		Walk(child, fn)
	}
}

// FindByName returns the first node in the subtree with the given name, or nil.
func FindByName(root Node, name string) Node {
	var found Node
	Walk(root, func(n Node) bool {
		if found != nil {
			return false
		}
		if n.Name() == name {
			found = n
			return false
		}
		return true
	})
	return found
}
