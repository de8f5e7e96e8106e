package controller

import (
	"github.com/Carmen-Shannon/oxy-nif/engine/keyframe"
	"github.com/Carmen-Shannon/oxy-nif/engine/nif"
)

// VisibleMask is the node mask of a fully visible node.
const VisibleMask = ^uint32(0)

// VisController switches a node between fully visible and a hide mask.
type VisController struct {
	base
	interp    keyframe.BoolInterpolator
	hasInterp bool
	steps     []nif.VisKey
	mask      uint32
}

var _ Controller = &VisController{}

// NewVisController builds a VisController from its record.
//
// Parameters:
//   - rec: the parsed controller record
//   - mask: the node mask written while hidden
//
// Returns:
//   - *VisController: the controller
func NewVisController(rec *nif.VisController, mask uint32) *VisController {
	c := &VisController{base: newBase(&rec.Controller), mask: mask}
	switch {
	case rec.Interpolator != nil:
		if interp, ok := rec.Interpolator.(*nif.BoolInterpolator); ok && interp != nil {
			c.source = SourceModern
			c.hasInterp = true
			c.interp = keyframe.NewInterpolator(interp.Keys(), interp.DefaultValue)
		}
	case rec.Data != nil:
		c.source = SourceLegacy
		c.steps = append([]nif.VisKey(nil), rec.Data.Vis...)
	}
	return c
}

func (c *VisController) Kind() Kind { return KindVis }

func (c *VisController) Capability() Capability { return CapabilityNodeMask }

func (c *VisController) Precedence() int { return PrecedenceDefault }

func (c *VisController) Clone() Controller {
	dup := *c
	return &dup
}

// Mask returns the hide mask.
func (c *VisController) Mask() uint32 {
	return c.mask
}

// Calculate reports visibility at key time t. A keyless interpolator defers to
// the step list, and an empty step list is visible.
func (c *VisController) Calculate(t float32) bool {
	if c.hasInterp && !c.interp.Empty() {
		return c.interp.InterpKey(t)
	}
	if len(c.steps) == 0 {
		return true
	}
	for i := 1; i < len(c.steps); i++ {
		if c.steps[i].Time > t {
			return c.steps[i-1].IsSet
		}
	}
	return c.steps[len(c.steps)-1].IsSet
}

func (c *VisController) Apply(target any, v Visit) {
	if node, ok := target.(NodeMaskTarget); ok && c.live() {
		mask := c.mask
		if c.Calculate(c.InputValue(v)) {
			mask = VisibleMask
		}
		node.SetNodeMask(mask)
	}
	v.Traverse()
}
