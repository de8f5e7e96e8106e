package controller

import (
	"github.com/Carmen-Shannon/oxy-nif/engine/keyframe"
	"github.com/Carmen-Shannon/oxy-nif/engine/nif"
)

// GeomMorpherController drives morph target weights. Slot 0 is the base
// shape and is never written.
type GeomMorpherController struct {
	base
	keyFrames []keyframe.FloatInterpolator
	weights   []float32
}

var _ Controller = &GeomMorpherController{}

// NewGeomMorpherController builds a GeomMorpherController from its record.
// Interpolator blocks take priority; otherwise the morph data tracks are used
// with an implicit weight of 1.
//
// Parameters:
//   - rec: the parsed controller record
//
// Returns:
//   - *GeomMorpherController: the controller
func NewGeomMorpherController(rec *nif.GeomMorpherController) *GeomMorpherController {
	c := &GeomMorpherController{base: newBase(&rec.Controller)}
	if len(rec.Interpolators) == 0 {
		if rec.Data != nil {
			c.source = SourceLegacy
			c.keyFrames = make([]keyframe.FloatInterpolator, len(rec.Data.Morphs))
			for i, m := range rec.Data.Morphs {
				c.keyFrames[i] = keyframe.NewFloatInterpolator(m.KeyFrames)
			}
		}
		return c
	}

	c.source = SourceModern
	c.keyFrames = make([]keyframe.FloatInterpolator, len(rec.Interpolators))
	c.weights = append([]float32(nil), rec.Weights...)
	for i, in := range rec.Interpolators {
		if interp, ok := in.(*nif.FloatInterpolator); ok && interp != nil {
			c.keyFrames[i] = keyframe.NewInterpolator(interp.Keys(), interp.DefaultValue)
		}
	}
	return c
}

func (c *GeomMorpherController) Kind() Kind { return KindGeomMorpher }

func (c *GeomMorpherController) Capability() Capability { return CapabilityMorphWeights }

func (c *GeomMorpherController) Precedence() int { return PrecedenceDefault }

func (c *GeomMorpherController) Clone() Controller {
	dup := *c
	return &dup
}

// MorphCount returns the number of driven slots, including the base shape.
func (c *GeomMorpherController) MorphCount() int {
	return len(c.keyFrames)
}

// Weight computes the weight of slot i at key time t. Empty tracks weigh 0.
func (c *GeomMorpherController) Weight(i int, t float32) float32 {
	k := c.keyFrames[i]
	if k.Empty() {
		return 0
	}
	val := k.InterpKey(t)
	if i < len(c.weights) {
		val *= c.weights[i]
	}
	return val
}

func (c *GeomMorpherController) Apply(target any, v Visit) {
	if geom, ok := target.(MorphGeometryTarget); ok && c.live() && len(c.keyFrames) > 1 {
		t := c.InputValue(v)
		n := min(len(c.keyFrames), geom.MorphTargetCount())
		dirty := false
		for i := 1; i < n; i++ {
			val := c.Weight(i, t)
			mt := geom.MorphTarget(i)
			if mt.Weight() != val {
				mt.SetWeight(val)
				dirty = true
			}
		}
		if dirty {
			geom.Dirty()
		}
	}
	v.Traverse()
}
