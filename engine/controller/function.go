package controller

import (
	"github.com/Carmen-Shannon/oxy-nif/engine/nif"
	"github.com/chewxy/math32"
)

// TimeFunction maps a raw input time into a controller's key time:
// t = Frequency*raw + Phase, extrapolated outside [StartTime, StopTime].
type TimeFunction struct {
	Frequency     float32
	Phase         float32
	StartTime     float32
	StopTime      float32
	Extrapolation nif.ExtrapolationMode
}

// NewTimeFunction reads the timing header of a controller record.
//
// Parameters:
//   - rec: the controller timing header
//
// Returns:
//   - TimeFunction: the time mapping
func NewTimeFunction(rec *nif.Controller) TimeFunction {
	return TimeFunction{
		Frequency:     rec.Frequency,
		Phase:         rec.Phase,
		StartTime:     rec.TimeStart,
		StopTime:      rec.TimeStop,
		Extrapolation: rec.ExtrapolationMode(),
	}
}

// IdentityFunction returns a mapping that passes every finite input through unchanged.
func IdentityFunction() TimeFunction {
	return TimeFunction{
		Frequency:     1,
		StartTime:     -math32.MaxFloat32,
		StopTime:      math32.MaxFloat32,
		Extrapolation: nif.ExtrapolationConstant,
	}
}

// Apply maps a raw input time.
//
// Parameters:
//   - raw: the input source value
//
// Returns:
//   - float32: the key time to sample
func (f TimeFunction) Apply(raw float32) float32 {
	t := f.Frequency*raw + f.Phase
	if t >= f.StartTime && t <= f.StopTime {
		return t
	}
	// A degenerate window pins every mode to its start.
	if f.StopTime <= f.StartTime {
		return f.StartTime
	}
	switch f.Extrapolation {
	case nif.ExtrapolationCycle, nif.ExtrapolationReverse:
		delta := f.StopTime - f.StartTime
		cycles := (t - f.StartTime) / delta
		whole := math32.Floor(cycles)
		rem := (cycles - whole) * delta
		if f.Extrapolation == nif.ExtrapolationReverse && int64(math32.Abs(whole))%2 == 1 {
			return f.StopTime - rem
		}
		return f.StartTime + rem
	default:
		if t < f.StartTime {
			return f.StartTime
		}
		if t > f.StopTime {
			return f.StopTime
		}
		return t
	}
}

// Maximum returns the end of the active window.
func (f TimeFunction) Maximum() float32 {
	return f.StopTime
}
