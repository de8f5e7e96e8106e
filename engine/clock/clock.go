// Package clock provides host clocks for controllers driven by an external time source.
package clock

import (
	"time"

	"github.com/Carmen-Shannon/oxy-nif/engine/controller"
)

// NewWallClock returns an input source reading seconds elapsed since the call.
//
// Returns:
//   - controller.ExternalClock: the clock input source
func NewWallClock() controller.ExternalClock {
	start := time.Now()
	return controller.ExternalClock{Now: func() float64 {
		return time.Since(start).Seconds()
	}}
}

// NewOffsetClock returns an input source reading now() minus the value it had at the call.
// Use it to rebase a host clock that does not start at zero.
//
// Parameters:
//   - now: the host clock in seconds
//
// Returns:
//   - controller.ExternalClock: the clock input source
func NewOffsetClock(now func() float64) controller.ExternalClock {
	origin := now()
	return controller.ExternalClock{Now: func() float64 {
		return now() - origin
	}}
}
