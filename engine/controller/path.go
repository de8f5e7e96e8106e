package controller

import (
	"github.com/Carmen-Shannon/oxy-nif/common"
	"github.com/Carmen-Shannon/oxy-nif/engine/keyframe"
	"github.com/Carmen-Shannon/oxy-nif/engine/nif"
	"github.com/chewxy/math32"
)

// PathController moves a node along a position track parameterized by a percent track.
type PathController struct {
	base
	path    keyframe.Vec3Interpolator
	percent keyframe.FloatInterpolator
	flags   uint16
}

var _ Controller = &PathController{}

// NewPathController builds a PathController from its record. Missing blocks
// leave the corresponding track empty and the controller inert.
//
// Parameters:
//   - rec: the parsed controller record
//
// Returns:
//   - *PathController: the controller
func NewPathController(rec *nif.PathController) *PathController {
	c := &PathController{base: newBase(&rec.Controller), flags: rec.PathFlags}
	var pos *keyframe.Vec3Sequence
	var pct *keyframe.FloatSequence
	if rec.PosData != nil {
		pos = rec.PosData.KeyList
	}
	if rec.FloatData != nil {
		pct = rec.FloatData.KeyList
	}
	c.path = keyframe.NewInterpolator(pos, common.Vec3{})
	c.percent = keyframe.NewInterpolator(pct, 1)
	if !c.path.Empty() && !c.percent.Empty() {
		c.source = SourceLegacy
	}
	return c
}

func (c *PathController) Kind() Kind { return KindPath }

func (c *PathController) Capability() Capability { return CapabilityTransform }

func (c *PathController) Precedence() int { return PrecedencePath }

func (c *PathController) Clone() Controller {
	dup := *c
	return &dup
}

// Flags returns the path flags carried by the record.
func (c *PathController) Flags() uint16 {
	return c.flags
}

// Percent samples the percent track at t and wraps it into [0, 1).
func (c *PathController) Percent(t float32) float32 {
	return wrapUnit(c.percent.InterpKey(t))
}

func wrapUnit(p float32) float32 {
	p = math32.Mod(p, 1)
	if p < 0 {
		p++
	}
	if p >= 1 || p != p {
		return 0
	}
	return p
}

func (c *PathController) Apply(target any, v Visit) {
	if node, ok := target.(TransformTarget); ok && c.live() {
		node.SetTranslation(c.path.InterpKey(c.Percent(c.InputValue(v))))
	}
	v.Traverse()
}
