package controller

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-nif/common"
	"github.com/Carmen-Shannon/oxy-nif/engine/material"
)

// Capability names what a controller writes and what a target must expose.
type Capability int

const (
	CapabilityTransform Capability = iota
	CapabilityStateSet
	CapabilityNodeMask
	CapabilityParticleProcessor
	CapabilityMorphWeights
)

// String returns the capability name.
func (c Capability) String() string {
	switch c {
	case CapabilityTransform:
		return "transform"
	case CapabilityStateSet:
		return "state-set"
	case CapabilityNodeMask:
		return "node-mask"
	case CapabilityParticleProcessor:
		return "particle-processor"
	case CapabilityMorphWeights:
		return "morph-weights"
	default:
		return fmt.Sprintf("Capability(%d)", int(c))
	}
}

// TransformTarget is a node with a writable local transform.
type TransformTarget interface {
	SetRotation(q common.Quat)
	SetTranslation(v common.Vec3)
	SetScale(s float32)

	// RestRotation returns the rotation the node was loaded with.
	RestRotation() common.Quat

	// PreMultRotation composes q into the current rotation in local space.
	PreMultRotation(q common.Quat)
}

// StateSetTarget is a node carrying rendering attributes.
type StateSetTarget interface {
	StateSet() *material.StateSet
}

// NodeMaskTarget is a node with a traversal mask.
type NodeMaskTarget interface {
	SetNodeMask(mask uint32)
}

// ParticleSystem is the simulation owned by a particle processor.
type ParticleSystem interface {
	SetFrozen(frozen bool)
}

// ParticleProcessorTarget is a node that emits into a particle system.
type ParticleProcessorTarget interface {
	SetEnabled(enabled bool)
	ParticleSystem() ParticleSystem
}

// MorphTarget is one weighted shape of a morph geometry.
type MorphTarget interface {
	Weight() float32
	SetWeight(w float32)
}

// MorphGeometryTarget is a geometry blending indexed morph targets.
type MorphGeometryTarget interface {
	MorphTarget(i int) MorphTarget
	MorphTargetCount() int

	// Dirty flags the geometry for re-blending.
	Dirty()
}

// Supports reports whether target exposes the given capability.
//
// Parameters:
//   - target: the candidate node
//   - c: the capability a controller needs
//
// Returns:
//   - bool: true if the controller can write to target
func Supports(target any, c Capability) bool {
	switch c {
	case CapabilityTransform:
		_, ok := target.(TransformTarget)
		return ok
	case CapabilityStateSet:
		_, ok := target.(StateSetTarget)
		return ok
	case CapabilityNodeMask:
		_, ok := target.(NodeMaskTarget)
		return ok
	case CapabilityParticleProcessor:
		_, ok := target.(ParticleProcessorTarget)
		return ok
	case CapabilityMorphWeights:
		_, ok := target.(MorphGeometryTarget)
		return ok
	default:
		return false
	}
}
