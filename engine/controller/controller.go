// Package controller implements the time-driven animation controllers that
// sample key tracks and write the result into scene nodes once per frame.
//
// Every controller is invoked through Apply with its target node and a Visit.
// Apply always continues the traversal exactly once, even when the controller
// has no input, no data, or a target it cannot write to.
package controller

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-nif/engine/material"
	"github.com/Carmen-Shannon/oxy-nif/engine/nif"
)

// Kind identifies a controller type.
type Kind int

const (
	KindKeyframe Kind = iota
	KindRoll
	KindPath
	KindUV
	KindAlpha
	KindMaterialColor
	KindFlip
	KindVis
	KindParticleSystem
	KindGeomMorpher
)

var kindNames = [...]string{
	"keyframe", "roll", "path", "uv", "alpha", "material-color", "flip", "vis", "particle-system", "geom-morpher",
}

// String returns the controller type name.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Source records which data path a controller was built from.
type Source int

const (
	// SourceNone marks an inert controller: no usable data was found.
	SourceNone Source = iota
	// SourceLegacy marks a controller built from a data block.
	SourceLegacy
	// SourceModern marks a controller built from an interpolator block.
	SourceModern
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceLegacy:
		return "legacy"
	case SourceModern:
		return "modern"
	default:
		return "none"
	}
}

// Chain precedence. Lower values run first and so write first; Keyframe runs
// last among transform writers and its translation and rotation win.
const (
	PrecedenceDefault  = 0
	PrecedencePath     = 10
	PrecedenceRoll     = 20
	PrecedenceKeyframe = 30
)

// Controller is a time-driven evaluator attached to one scene node.
type Controller interface {
	// Kind returns the controller type.
	Kind() Kind

	// Capability returns what the controller writes, and so what its target must expose.
	Capability() Capability

	// Source returns the data path resolved at construction.
	Source() Source

	// Function returns the time mapping.
	Function() TimeFunction

	// SetFunction replaces the time mapping.
	SetFunction(f TimeFunction)

	// HasInput reports whether an input source is bound.
	HasInput() bool

	// Input returns the bound input source, or nil.
	Input() InputSource

	// SetInput binds an input source. nil unbinds it.
	SetInput(in InputSource)

	// Apply evaluates the controller against target and continues the traversal through v.
	Apply(target any, v Visit)

	// Clone returns an independent controller sharing this one's key data.
	Clone() Controller

	// Precedence orders controllers sharing a node.
	Precedence() int
}

// StateSetController is a controller writing rendering attributes.
type StateSetController interface {
	Controller

	// SetDefaults installs the attributes the controller writes. It is called once on attach.
	SetDefaults(ss *material.StateSet)

	// ApplyStateSet evaluates the controller against a state set without traversing.
	ApplyStateSet(ss *material.StateSet, v Visit)
}

// base holds the state shared by every controller.
type base struct {
	fn     TimeFunction
	input  InputSource
	source Source
}

func newBase(rec *nif.Controller) base {
	if rec == nil {
		return base{fn: IdentityFunction()}
	}
	return base{fn: NewTimeFunction(rec)}
}

func (b *base) Source() Source {
	return b.source
}

func (b *base) Function() TimeFunction {
	return b.fn
}

func (b *base) SetFunction(f TimeFunction) {
	b.fn = f
}

func (b *base) HasInput() bool {
	return b.input != nil
}

func (b *base) Input() InputSource {
	return b.input
}

func (b *base) SetInput(in InputSource) {
	b.input = in
}

// InputValue samples the input source and maps it through the time function.
func (b *base) InputValue(v Visit) float32 {
	return b.fn.Apply(b.input.Sample(v))
}

// live reports whether the controller should write this frame.
func (b *base) live() bool {
	return b.input != nil && b.source != SourceNone
}

// applyStateSet is the shared Apply of state-set controllers.
func applyStateSet(c StateSetController, target any, v Visit) {
	if t, ok := target.(StateSetTarget); ok {
		if ss := t.StateSet(); ss != nil {
			c.ApplyStateSet(ss, v)
		}
	}
	v.Traverse()
}
