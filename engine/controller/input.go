package controller

// Visit is the per-invocation context a scene traversal hands to a controller.
// It must not be retained beyond one Apply call.
type Visit interface {
	// SimulationTime returns the scene's simulation time in seconds.
	SimulationTime() float64

	// Traverse continues the traversal below the controller: the next
	// controller on the same node, or the node's children after the last one.
	Traverse()
}

// InputSource supplies the raw time a controller feeds into its TimeFunction.
type InputSource interface {
	Sample(v Visit) float32
}

// SceneTime reads the visit's simulation time.
type SceneTime struct{}

// Sample implements InputSource.
func (SceneTime) Sample(v Visit) float32 {
	return float32(v.SimulationTime())
}

// Manual is an input source whose value is set by the host between frames.
// Clones of a controller share the same Manual source.
type Manual struct {
	value float32
}

// NewManual creates a Manual source with an initial value.
func NewManual(value float32) *Manual {
	return &Manual{value: value}
}

// Set replaces the value returned by Sample.
func (m *Manual) Set(value float32) {
	m.value = value
}

// Value returns the current value.
func (m *Manual) Value() float32 {
	return m.value
}

// Sample implements InputSource.
func (m *Manual) Sample(Visit) float32 {
	return m.value
}

// ExternalClock reads time from a host-provided clock.
type ExternalClock struct {
	Now func() float64
}

// Sample implements InputSource. A clock without a Now function reads zero.
func (c ExternalClock) Sample(Visit) float32 {
	if c.Now == nil {
		return 0
	}
	return float32(c.Now())
}
