package clock

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-nif/engine/controller"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// NewGLFWClock initializes GLFW and returns an input source reading glfw.GetTime,
// rebased to zero at the call. Call glfw.Terminate when the clock is no longer used.
//
// Returns:
//   - controller.ExternalClock: the clock input source
//   - error: error if GLFW fails to initialize
func NewGLFWClock() (controller.ExternalClock, error) {
	if err := glfw.Init(); err != nil {
		return controller.ExternalClock{}, fmt.Errorf("failed to initialize GLFW: %v", err)
	}
	return NewOffsetClock(glfw.GetTime), nil
}
