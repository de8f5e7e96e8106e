// Package loader builds animated scene graphs from asset descriptions. Each
// asset is imported once into a prototype; every Load returns an independent
// clone whose controllers share the prototype's key data.
package loader

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-nif/engine/controller"
	"github.com/Carmen-Shannon/oxy-nif/engine/nif"
	"github.com/Carmen-Shannon/oxy-nif/engine/scene"
)

// LoaderBackendType identifies the asset description format backend to use.
type LoaderBackendType int

const (
	// BackendTypeYAML selects the YAML asset description backend.
	BackendTypeYAML LoaderBackendType = iota
)

// Issue is a construction-time inconsistency found while importing an asset.
// Issues never fail a load; the affected controller is dropped or left inert.
type Issue struct {
	Asset      string
	Node       string
	Controller string
	Message    string
}

// String formats the issue for logging.
func (i Issue) String() string {
	if i.Controller == "" {
		return fmt.Sprintf("%s: node %q: %s", i.Asset, i.Node, i.Message)
	}
	return fmt.Sprintf("%s: node %q %s controller: %s", i.Asset, i.Node, i.Controller, i.Message)
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	prototypes map[string]scene.Node
	issues     []Issue
	sink       func(Issue)
	input      controller.InputSource

	backend loaderBackend
	strict  bool

	buildPool    worker.DynamicWorkerPool
	buildWorkers int
}

// Loader defines the public-facing interface for loading and caching animated assets.
// It abstracts the description format behind a backend and manages a cache of
// imported prototypes.
type Loader interface {
	// Load imports an asset file, caching the prototype by path, and returns a fresh instance.
	// The backend is selected based on the file extension (.yaml/.yml).
	//
	// Parameters:
	//   - path: the file path to the asset description
	//
	// Returns:
	//   - scene.Node: the root of a new instance
	//   - error: error if loading fails
	Load(path string) (scene.Node, error)

	// LoadReader imports an asset from a reader stream, caching the prototype by name,
	// and returns a fresh instance.
	//
	// Parameters:
	//   - name: the cache key for the asset
	//   - r: the reader providing the asset description
	//
	// Returns:
	//   - scene.Node: the root of a new instance
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (scene.Node, error)

	// Get returns a fresh instance of a cached asset, or nil if the asset was never loaded.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - scene.Node: a new instance or nil
	Get(name string) scene.Node

	// Assets returns the cache keys of every loaded asset, sorted.
	//
	// Returns:
	//   - []string: the cached asset names
	Assets() []string

	// Issues returns every issue reported since the loader was created.
	//
	// Returns:
	//   - []Issue: the reported issues in order
	Issues() []Issue
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeYAML)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		prototypes:   make(map[string]scene.Node),
		input:        controller.SceneTime{},
		buildWorkers: 4,
	}

	for _, option := range options {
		option(l)
	}

	switch backendType {
	case BackendTypeYAML:
		l.backend = newYAMLLoaderBackend(l.strict)
	default:
		log.Printf("[Loader] unknown backend type %d, using YAML", backendType)
		l.backend = newYAMLLoaderBackend(l.strict)
	}

	l.buildPool = worker.NewDynamicWorkerPool(l.buildWorkers, 256, 1*time.Second)
	return l
}

func (l *loader) Load(path string) (scene.Node, error) {
	if inst := l.Get(path); inst != nil {
		return inst, nil
	}

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	doc, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return l.store(path, doc)
}

func (l *loader) LoadReader(name string, r io.Reader) (scene.Node, error) {
	if inst := l.Get(name); inst != nil {
		return inst, nil
	}

	doc, err := l.backend.LoadReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	return l.store(name, doc)
}

func (l *loader) Get(name string) scene.Node {
	l.mu.RLock()
	proto, ok := l.prototypes[name]
	l.mu.RUnlock()
	if !ok {
		return nil
	}
	return scene.CloneNode(proto)
}

func (l *loader) Assets() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.prototypes))
	for k := range l.prototypes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (l *loader) Issues() []Issue {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Issue(nil), l.issues...)
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only YAML is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported asset format: %s", ext)
	}
}

func (l *loader) report(issue Issue) {
	l.mu.Lock()
	l.issues = append(l.issues, issue)
	sink := l.sink
	l.mu.Unlock()

	if sink != nil {
		sink(issue)
		return
	}
	log.Printf("[Loader] %s", issue)
}

// store imports doc into a prototype, caches it under name and returns a fresh instance.
// A concurrent load of the same name keeps whichever prototype was stored first.
func (l *loader) store(name string, doc *assetDoc) (scene.Node, error) {
	proto, err := l.importAsset(name, doc)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	if existing, ok := l.prototypes[name]; ok {
		proto = existing
	} else {
		l.prototypes[name] = proto
	}
	l.mu.Unlock()

	return scene.CloneNode(proto), nil
}

// importAsset builds the node tree, constructs every queued controller on the
// build pool and attaches them in document order.
//
// Parameters:
//   - name: the cache key, used when the description carries no name
//   - doc: the decoded asset description
//
// Returns:
//   - scene.Node: the prototype root
//   - error: error if the description is malformed
func (l *loader) importAsset(name string, doc *assetDoc) (scene.Node, error) {
	asset := doc.Name
	if asset == "" {
		asset = name
	}
	im := newAssetImporter(asset, l.report)
	root, err := im.Import(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to import %q: %w", asset, err)
	}

	built := make([]controller.Controller, len(im.pending))
	var wg sync.WaitGroup
	for i := range im.pending {
		wg.Add(1)
		idx := i
		l.buildPool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				built[idx] = newController(&im.pending[idx])
				return nil, nil
			},
		})
	}
	wg.Wait()

	for i := range im.pending {
		p := &im.pending[i]
		c := built[i]
		if c == nil {
			im.issue(p.node.Name(), p.kind.String(), "no constructor for record")
			continue
		}
		if err := p.node.AddController(c); err != nil {
			im.issue(p.node.Name(), p.kind.String(), "%v", err)
			continue
		}
		if c.Source() == controller.SourceNone {
			im.issue(p.node.Name(), p.kind.String(), "no usable key data, controller is inert")
		}
		if rec, ok := p.rec.(*nif.GeomMorpherController); ok {
			if geom, ok := p.node.(controller.MorphGeometryTarget); ok {
				if err := rec.CheckMorphCount(geom.MorphTargetCount()); err != nil {
					im.issue(p.node.Name(), p.kind.String(), "%v", err)
				}
			}
		}
		if l.input != nil {
			c.SetInput(l.input)
		}
	}
	return root, nil
}
