package controller

import (
	"github.com/Carmen-Shannon/oxy-nif/common"
	"github.com/Carmen-Shannon/oxy-nif/engine/keyframe"
	"github.com/Carmen-Shannon/oxy-nif/engine/nif"
)

// RollFrameRate converts a roll speed in radians per frame to radians per second.
// Roll speeds are authored against a fixed 60 Hz frame.
const RollFrameRate = 60

// RollController spins a node about its local Z axis at a keyed angular speed.
type RollController struct {
	base
	data    keyframe.FloatInterpolator
	lastNow float64
}

var _ Controller = &RollController{}

// NewRollController builds a RollController from its record.
//
// Parameters:
//   - rec: the parsed controller record
//
// Returns:
//   - *RollController: the controller
func NewRollController(rec *nif.RollController) *RollController {
	c := &RollController{base: newBase(&rec.Controller)}
	switch {
	case rec.Interpolator != nil:
		if interp, ok := rec.Interpolator.(*nif.FloatInterpolator); ok && interp != nil {
			c.source = SourceModern
			c.data = keyframe.NewInterpolator(interp.Keys(), interp.DefaultValue)
		}
	case rec.Data != nil:
		c.source = SourceLegacy
		c.data = keyframe.NewInterpolator(rec.Data.KeyList, 1)
	}
	return c
}

func (c *RollController) Kind() Kind { return KindRoll }

func (c *RollController) Capability() Capability { return CapabilityTransform }

func (c *RollController) Precedence() int { return PrecedenceRoll }

func (c *RollController) Clone() Controller {
	dup := *c
	return &dup
}

// Apply descends first, then rotates the node by speed*dt*RollFrameRate
// radians, where dt is the simulation time elapsed since the previous call.
func (c *RollController) Apply(target any, v Visit) {
	v.Traverse()

	node, ok := target.(TransformTarget)
	if !ok || !c.live() {
		return
	}
	now := v.SimulationTime()
	dt := now - c.lastNow
	c.lastNow = now

	speed := c.data.InterpKey(c.InputValue(v))
	angle := speed * float32(dt) * RollFrameRate
	node.PreMultRotation(common.QuatFromAxisAngle(angle, common.AxisZ))
}
