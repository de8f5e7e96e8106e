package keyframe

import (
	"github.com/Carmen-Shannon/oxy-nif/common"
)

// Interpolator samples a shared Sequence at arbitrary times and falls back to
// a typed default when the sequence is absent or empty. It is a small value
// type; copying it shares the underlying sequence.
type Interpolator[T Value] struct {
	seq *Sequence[T]
	def T
	ops valueOps[T]
}

// FloatInterpolator samples scalar tracks.
type FloatInterpolator = Interpolator[float32]

// Vec3Interpolator samples vector tracks.
type Vec3Interpolator = Interpolator[common.Vec3]

// QuatInterpolator samples rotation tracks.
type QuatInterpolator = Interpolator[common.Quat]

// BoolInterpolator samples on/off tracks.
type BoolInterpolator = Interpolator[bool]

// NewInterpolator creates an Interpolator over seq with the given default.
//
// Parameters:
//   - seq: the shared key track, may be nil
//   - def: the value returned while the track has no keys
//
// Returns:
//   - Interpolator[T]: the sampler
func NewInterpolator[T Value](seq *Sequence[T], def T) Interpolator[T] {
	return Interpolator[T]{seq: seq, def: def, ops: opsFor[T]()}
}

// NewFloatInterpolator creates a scalar sampler defaulting to 0.
func NewFloatInterpolator(seq *FloatSequence) FloatInterpolator {
	return NewInterpolator(seq, 0)
}

// NewVec3Interpolator creates a vector sampler defaulting to the origin.
func NewVec3Interpolator(seq *Vec3Sequence) Vec3Interpolator {
	return NewInterpolator(seq, common.Vec3{})
}

// NewQuatInterpolator creates a rotation sampler defaulting to identity.
func NewQuatInterpolator(seq *QuatSequence) QuatInterpolator {
	return NewInterpolator(seq, common.IdentityQuat())
}

// NewBoolInterpolator creates an on/off sampler defaulting to false.
func NewBoolInterpolator(seq *BoolSequence) BoolInterpolator {
	return NewInterpolator(seq, false)
}

// Empty reports whether the underlying sequence has no keys.
func (i Interpolator[T]) Empty() bool {
	return i.seq.Len() == 0
}

// Default returns the value used while the sequence is empty.
func (i Interpolator[T]) Default() T {
	return i.def
}

// Sequence returns the shared key track, or nil.
func (i Interpolator[T]) Sequence() *Sequence[T] {
	return i.seq
}

// InterpKey samples the track at time t. Times outside the key range clamp
// to the boundary values; extrapolation is the time function's job.
//
// Parameters:
//   - t: the sample time
//
// Returns:
//   - T: the blended value, or the default for an empty track
func (i Interpolator[T]) InterpKey(t float32) T {
	if i.Empty() {
		return i.def
	}
	keys := i.seq.keys
	first := &keys[0]
	if t <= first.Time {
		return first.Value
	}
	last := &keys[len(keys)-1]
	if t >= last.Time {
		return last.Value
	}

	a, b, ok := i.seq.bracket(t)
	if !ok {
		return last.Value
	}
	ops := i.ops
	if ops == nil {
		ops = opsFor[T]()
	}

	x := (t - a.Time) / (b.Time - a.Time)
	switch i.seq.interpolation {
	case InterpolationConstant:
		return a.Value
	case InterpolationQuadratic, InterpolationTBC:
		return ops.hermite(a.Value, a.OutTan, b.Value, b.InTan, x)
	default:
		return ops.lerp(a.Value, b.Value, x)
	}
}
