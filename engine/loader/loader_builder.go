package loader

import (
	"github.com/Carmen-Shannon/oxy-nif/engine/controller"
	"github.com/Carmen-Shannon/oxy-nif/engine/scene"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithIssueSink is an option builder that routes construction issues to fn
// instead of the standard logger. Issues are still collected for Issues().
//
// Parameters:
//   - fn: the message sink
//
// Returns:
//   - LoaderBuilderOption: a function that applies the sink option to a loader
func WithIssueSink(fn func(Issue)) LoaderBuilderOption {
	return func(l *loader) {
		l.sink = fn
	}
}

// WithInputSource is an option builder that sets the input source bound to every
// constructed controller. Defaults to controller.SceneTime; nil leaves controllers unbound.
//
// Parameters:
//   - in: the input source
//
// Returns:
//   - LoaderBuilderOption: a function that applies the input option to a loader
func WithInputSource(in controller.InputSource) LoaderBuilderOption {
	return func(l *loader) {
		l.input = in
	}
}

// WithBuildWorkers is an option builder that sets the number of goroutines
// constructing controllers. Defaults to 4.
//
// Parameters:
//   - n: the number of build workers (minimum 1)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithBuildWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n < 1 {
			n = 1
		}
		l.buildWorkers = n
	}
}

// WithStrict is an option builder that makes the backend reject fields the asset schema does not define.
//
// Parameters:
//   - strict: whether unknown fields are errors
//
// Returns:
//   - LoaderBuilderOption: a function that applies the strict option to a loader
func WithStrict(strict bool) LoaderBuilderOption {
	return func(l *loader) {
		l.strict = strict
	}
}

// WithPrototype is an option builder that pre-populates the cache with a hand-built graph.
//
// Parameters:
//   - key: the cache key for the asset
//   - root: the prototype root
//
// Returns:
//   - LoaderBuilderOption: a function that applies the prototype option to a loader
func WithPrototype(key string, root scene.Node) LoaderBuilderOption {
	return func(l *loader) {
		l.prototypes[key] = root
	}
}
