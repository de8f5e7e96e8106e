package controller

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-nif/common"
	"github.com/Carmen-Shannon/oxy-nif/engine/keyframe"
	"github.com/Carmen-Shannon/oxy-nif/engine/material"
	"github.com/Carmen-Shannon/oxy-nif/engine/nif"
)

// UVController scrolls and scales texture coordinates on a set of texture units.
type UVController struct {
	base
	uTrans keyframe.FloatInterpolator
	vTrans keyframe.FloatInterpolator
	uScale keyframe.FloatInterpolator
	vScale keyframe.FloatInterpolator
	units  []int
}

var _ StateSetController = &UVController{}

// NewUVController builds a UVController from its record.
//
// Parameters:
//   - rec: the parsed controller record
//   - textureUnits: the texture units sharing the animated matrix
//
// Returns:
//   - *UVController: the controller
func NewUVController(rec *nif.UVController, textureUnits []int) *UVController {
	c := &UVController{base: newBase(&rec.Controller), units: uniqueSorted(textureUnits)}
	var keys [4]*keyframe.FloatSequence
	if rec.Data != nil {
		c.source = SourceLegacy
		keys = rec.Data.KeyList
	}
	c.uTrans = keyframe.NewInterpolator(keys[0], 0)
	c.vTrans = keyframe.NewInterpolator(keys[1], 0)
	c.uScale = keyframe.NewInterpolator(keys[2], 1)
	c.vScale = keyframe.NewInterpolator(keys[3], 1)
	return c
}

func uniqueSorted(in []int) []int {
	out := make([]int, 0, len(in))
	seen := make(map[int]bool, len(in))
	for _, u := range in {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	sort.Ints(out)
	return out
}

func (c *UVController) Kind() Kind { return KindUV }

func (c *UVController) Capability() Capability { return CapabilityStateSet }

func (c *UVController) Precedence() int { return PrecedenceDefault }

func (c *UVController) Clone() Controller {
	dup := *c
	return &dup
}

// TextureUnits returns the affected texture units in ascending order.
func (c *UVController) TextureUnits() []int {
	return c.units
}

// SetDefaults binds one shared texture matrix to every affected unit.
func (c *UVController) SetDefaults(ss *material.StateSet) {
	m := material.NewTexMat()
	for _, u := range c.units {
		ss.SetTexMat(u, m)
	}
}

// Matrix computes the texture matrix at key time t: scale about (0.5, 0.5),
// then offset by the negated translations.
func (c *UVController) Matrix(t float32) common.Mat4 {
	origin := common.Vec3{0.5, 0.5, 0}
	scale := common.Vec3{c.uScale.InterpKey(t), c.vScale.InterpKey(t), 1}
	trans := common.Vec3{-c.uTrans.InterpKey(t), -c.vTrans.InterpKey(t), 0}

	back := common.TranslateMat4(origin.Scale(-1))
	s := common.ScaleMat4(scale)
	to := common.TranslateMat4(origin)

	var m common.Mat4
	common.Mul4(m[:], s[:], back[:])
	common.Mul4(m[:], to[:], m[:])
	m[12] += trans[0]
	m[13] += trans[1]
	m[14] += trans[2]
	return m
}

// ApplyStateSet writes the matrix through the first unit; the others share it.
func (c *UVController) ApplyStateSet(ss *material.StateSet, v Visit) {
	if !c.live() || len(c.units) == 0 {
		return
	}
	tm := ss.TexMat(c.units[0])
	if tm == nil {
		return
	}
	tm.Matrix = c.Matrix(c.InputValue(v))
}

func (c *UVController) Apply(target any, v Visit) {
	applyStateSet(c, target, v)
}
