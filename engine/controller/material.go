package controller

import (
	"github.com/Carmen-Shannon/oxy-nif/common"
	"github.com/Carmen-Shannon/oxy-nif/engine/keyframe"
	"github.com/Carmen-Shannon/oxy-nif/engine/material"
	"github.com/Carmen-Shannon/oxy-nif/engine/nif"
)

// AlphaController drives the diffuse alpha of a node's material.
type AlphaController struct {
	base
	data         keyframe.FloatInterpolator
	baseMaterial material.Material
}

var _ StateSetController = &AlphaController{}

// NewAlphaController builds an AlphaController from its record.
//
// Parameters:
//   - rec: the parsed controller record
//   - baseMaterial: the material copied into the state set on attach; nil uses a default material
//
// Returns:
//   - *AlphaController: the controller
func NewAlphaController(rec *nif.AlphaController, baseMaterial material.Material) *AlphaController {
	c := &AlphaController{base: newBase(&rec.Controller), baseMaterial: orDefaultMaterial(baseMaterial)}
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

func orDefaultMaterial(m material.Material) material.Material {
	if m == nil {
		return material.NewMaterial()
	}
	return m
}

func (c *AlphaController) Kind() Kind { return KindAlpha }

func (c *AlphaController) Capability() Capability { return CapabilityStateSet }

func (c *AlphaController) Precedence() int { return PrecedenceDefault }

func (c *AlphaController) Clone() Controller {
	dup := *c
	return &dup
}

// SetDefaults binds a deep copy of the base material.
func (c *AlphaController) SetDefaults(ss *material.StateSet) {
	ss.SetMaterial(c.baseMaterial.Clone())
}

// ApplyStateSet replaces the front-and-back diffuse alpha, keeping RGB.
func (c *AlphaController) ApplyStateSet(ss *material.StateSet, v Visit) {
	mat := ss.Material()
	if mat == nil || !c.live() {
		return
	}
	d := mat.Diffuse(material.FaceFrontAndBack)
	d[3] = c.data.InterpKey(c.InputValue(v))
	mat.SetDiffuse(material.FaceFrontAndBack, d)
}

func (c *AlphaController) Apply(target any, v Visit) {
	applyStateSet(c, target, v)
}

// MaterialColorController drives the RGB of one material color channel.
type MaterialColorController struct {
	base
	data         keyframe.Vec3Interpolator
	target       nif.TargetColor
	baseMaterial material.Material
}

var _ StateSetController = &MaterialColorController{}

// NewMaterialColorController builds a MaterialColorController from its record.
//
// Parameters:
//   - rec: the parsed controller record
//   - baseMaterial: the material copied into the state set on attach; nil uses a default material
//
// Returns:
//   - *MaterialColorController: the controller
func NewMaterialColorController(rec *nif.MaterialColorController, baseMaterial material.Material) *MaterialColorController {
	c := &MaterialColorController{
		base:         newBase(&rec.Controller),
		target:       rec.TargetColor,
		baseMaterial: orDefaultMaterial(baseMaterial),
	}
	switch {
	case rec.Interpolator != nil:
		if interp, ok := rec.Interpolator.(*nif.Point3Interpolator); ok && interp != nil {
			c.source = SourceModern
			c.data = keyframe.NewInterpolator(interp.Keys(), interp.DefaultValue)
		}
	case rec.Data != nil:
		c.source = SourceLegacy
		c.data = keyframe.NewInterpolator(rec.Data.KeyList, common.Vec3{1, 1, 1})
	}
	return c
}

func (c *MaterialColorController) Kind() Kind { return KindMaterialColor }

func (c *MaterialColorController) Capability() Capability { return CapabilityStateSet }

func (c *MaterialColorController) Precedence() int { return PrecedenceDefault }

func (c *MaterialColorController) Clone() Controller {
	dup := *c
	return &dup
}

// TargetColor returns the driven channel.
func (c *MaterialColorController) TargetColor() nif.TargetColor {
	return c.target
}

// SetDefaults binds a deep copy of the base material.
func (c *MaterialColorController) SetDefaults(ss *material.StateSet) {
	ss.SetMaterial(c.baseMaterial.Clone())
}

// ApplyStateSet writes the sampled RGB into the target channel, keeping its alpha.
func (c *MaterialColorController) ApplyStateSet(ss *material.StateSet, v Visit) {
	mat := ss.Material()
	if mat == nil || !c.live() {
		return
	}
	rgb := c.data.InterpKey(c.InputValue(v))

	get, set := mat.Ambient, mat.SetAmbient
	switch c.target {
	case nif.TargetDiffuse:
		get, set = mat.Diffuse, mat.SetDiffuse
	case nif.TargetSpecular:
		get, set = mat.Specular, mat.SetSpecular
	case nif.TargetEmissive:
		get, set = mat.Emission, mat.SetEmission
	}
	col := get(material.FaceFrontAndBack)
	col[0], col[1], col[2] = rgb[0], rgb[1], rgb[2]
	set(material.FaceFrontAndBack, col)
}

func (c *MaterialColorController) Apply(target any, v Visit) {
	applyStateSet(c, target, v)
}
