package controller

import (
	"github.com/Carmen-Shannon/oxy-nif/common"
	"github.com/Carmen-Shannon/oxy-nif/engine/keyframe"
	"github.com/Carmen-Shannon/oxy-nif/engine/material"
	"github.com/Carmen-Shannon/oxy-nif/engine/nif"
	"github.com/chewxy/math32"
)

// FlipController cycles a texture slot through a fixed texture list.
type FlipController struct {
	base
	texSlot   int
	delta     float32
	textures  []*common.ImportedTexture
	data      keyframe.FloatInterpolator
	hasInterp bool
}

var _ StateSetController = &FlipController{}

// NewFlipController builds a FlipController from its record. Record-driven
// flips always target texture slot 0.
//
// Parameters:
//   - rec: the parsed controller record
//   - textures: the textures to cycle, in record source order
//
// Returns:
//   - *FlipController: the controller
func NewFlipController(rec *nif.FlipController, textures []*common.ImportedTexture) *FlipController {
	c := &FlipController{
		base:     newBase(&rec.Controller),
		delta:    rec.Delta,
		textures: textures,
	}
	if interp, ok := rec.Interpolator.(*nif.FloatInterpolator); ok && interp != nil {
		c.data = keyframe.NewInterpolator(interp.Keys(), interp.DefaultValue)
		c.hasInterp = true
		c.source = SourceModern
	} else if c.delta != 0 {
		c.source = SourceLegacy
	}
	return c
}

// NewTextureFlipController builds a FlipController for an arbitrary texture
// slot without a record. Its time function passes input through unchanged.
//
// Parameters:
//   - texSlot: the texture unit to write
//   - delta: seconds per texture; zero leaves the controller inert
//   - textures: the textures to cycle
//
// Returns:
//   - *FlipController: the controller
func NewTextureFlipController(texSlot int, delta float32, textures []*common.ImportedTexture) *FlipController {
	c := &FlipController{
		base:     newBase(nil),
		texSlot:  texSlot,
		delta:    delta,
		textures: textures,
	}
	if delta != 0 {
		c.source = SourceLegacy
	}
	return c
}

func (c *FlipController) Kind() Kind { return KindFlip }

func (c *FlipController) Capability() Capability { return CapabilityStateSet }

func (c *FlipController) Precedence() int { return PrecedenceDefault }

func (c *FlipController) Clone() Controller {
	dup := *c
	return &dup
}

// TexSlot returns the written texture unit.
func (c *FlipController) TexSlot() int {
	return c.texSlot
}

// SetDefaults binds the first texture to the slot.
func (c *FlipController) SetDefaults(ss *material.StateSet) {
	if len(c.textures) > 0 {
		ss.SetTexture(c.texSlot, c.textures[0])
	}
}

// Index returns the texture index for key time t and whether the controller can flip at all.
func (c *FlipController) Index(t float32) (int, bool) {
	n := len(c.textures)
	if n == 0 {
		return 0, false
	}
	var f float32
	switch {
	case c.hasInterp:
		f = c.data.InterpKey(t)
	case c.delta != 0:
		f = t / c.delta
	default:
		return 0, false
	}
	i := int(math32.Floor(f)) % n
	if i < 0 {
		i += n
	}
	return i, true
}

func (c *FlipController) ApplyStateSet(ss *material.StateSet, v Visit) {
	if !c.live() {
		return
	}
	if i, ok := c.Index(c.InputValue(v)); ok {
		ss.SetTexture(c.texSlot, c.textures[i])
	}
}

func (c *FlipController) Apply(target any, v Visit) {
	applyStateSet(c, target, v)
}
