// Package keyframe holds immutable time-sorted key tracks and the typed
// interpolators that sample them.
package keyframe

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-nif/common"
)

// InterpolationType selects how values between two keys are blended.
// The numeric values match the interpolation tags stored in NIF key groups.
type InterpolationType uint32

const (
	// InterpolationUnknown marks a key group without a usable tag. Sampling treats it as linear.
	InterpolationUnknown InterpolationType = 0
	// InterpolationLinear blends linearly (slerp for rotations).
	InterpolationLinear InterpolationType = 1
	// InterpolationQuadratic is cubic Hermite with per-key in/out tangents.
	InterpolationQuadratic InterpolationType = 2
	// InterpolationTBC is Kochanek-Bartels tension/bias/continuity, evaluated as Hermite.
	InterpolationTBC InterpolationType = 3
	// InterpolationXYZ marks a rotation stored as three per-axis float tracks.
	InterpolationXYZ InterpolationType = 4
	// InterpolationConstant is a step function holding the lower key's value.
	InterpolationConstant InterpolationType = 5
)

// String returns the human-readable name of the interpolation type.
func (t InterpolationType) String() string {
	switch t {
	case InterpolationLinear:
		return "linear"
	case InterpolationQuadratic:
		return "quadratic"
	case InterpolationTBC:
		return "tbc"
	case InterpolationXYZ:
		return "xyz"
	case InterpolationConstant:
		return "constant"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(t))
	}
}

// Value enumerates the value kinds a key track can carry.
type Value interface {
	float32 | common.Vec3 | common.Quat | bool
}

// Key is a single timestamped sample.
type Key[T Value] struct {
	// Time is the key timestamp in seconds.
	Time float32

	// Value is the sampled value at Time.
	Value T

	// InTan and OutTan are the Hermite tangents used by quadratic tracks.
	// TBC tracks have them computed at sequence construction.
	InTan, OutTan T

	// Tension, Bias and Continuity parameterize TBC tracks.
	Tension, Bias, Continuity float32
}
