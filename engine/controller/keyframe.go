package controller

import (
	"github.com/Carmen-Shannon/oxy-nif/common"
	"github.com/Carmen-Shannon/oxy-nif/engine/keyframe"
	"github.com/Carmen-Shannon/oxy-nif/engine/nif"
)

// KeyframeController drives a node's rotation, translation and scale.
type KeyframeController struct {
	base
	rotations    keyframe.QuatInterpolator
	xRotations   keyframe.FloatInterpolator
	yRotations   keyframe.FloatInterpolator
	zRotations   keyframe.FloatInterpolator
	translations keyframe.Vec3Interpolator
	scales       keyframe.FloatInterpolator
	axisOrder    nif.AxisOrder
}

var _ Controller = &KeyframeController{}

// NewKeyframeController builds a KeyframeController from its record. A
// transform interpolator takes priority over a legacy data block. An
// interpolator block of any other type leaves the controller inert.
//
// Parameters:
//   - rec: the parsed controller record
//
// Returns:
//   - *KeyframeController: the controller
func NewKeyframeController(rec *nif.KeyframeController) *KeyframeController {
	c := &KeyframeController{base: newBase(&rec.Controller)}

	switch {
	case rec.Interpolator != nil:
		interp, ok := rec.Interpolator.(*nif.TransformInterpolator)
		if !ok || interp == nil {
			return c
		}
		c.source = SourceModern
		if d := interp.Data; d != nil {
			c.rotations = keyframe.NewInterpolator(d.Rotations, interp.DefaultRot)
			c.xRotations = keyframe.NewFloatInterpolator(d.XRotations)
			c.yRotations = keyframe.NewFloatInterpolator(d.YRotations)
			c.zRotations = keyframe.NewFloatInterpolator(d.ZRotations)
			c.translations = keyframe.NewInterpolator(d.Translations, interp.DefaultPos)
			c.scales = keyframe.NewInterpolator(d.Scales, interp.DefaultScale)
			c.axisOrder = d.AxisOrder
		} else {
			c.rotations = keyframe.NewInterpolator[common.Quat](nil, interp.DefaultRot)
			c.translations = keyframe.NewInterpolator[common.Vec3](nil, interp.DefaultPos)
			c.scales = keyframe.NewInterpolator[float32](nil, interp.DefaultScale)
		}
	case rec.Data != nil:
		d := rec.Data
		c.source = SourceLegacy
		c.rotations = keyframe.NewQuatInterpolator(d.Rotations)
		c.xRotations = keyframe.NewFloatInterpolator(d.XRotations)
		c.yRotations = keyframe.NewFloatInterpolator(d.YRotations)
		c.zRotations = keyframe.NewFloatInterpolator(d.ZRotations)
		c.translations = keyframe.NewVec3Interpolator(d.Translations)
		c.scales = keyframe.NewInterpolator(d.Scales, 1)
		c.axisOrder = d.AxisOrder
	}
	return c
}

func (c *KeyframeController) Kind() Kind { return KindKeyframe }

func (c *KeyframeController) Capability() Capability { return CapabilityTransform }

func (c *KeyframeController) Precedence() int { return PrecedenceKeyframe }

func (c *KeyframeController) Clone() Controller {
	dup := *c
	return &dup
}

// AxisOrder returns the composition order of the per-axis rotation tracks.
func (c *KeyframeController) AxisOrder() nif.AxisOrder {
	return c.axisOrder
}

// XYZRotation composes the per-axis rotation tracks at time t. Empty tracks
// contribute a zero angle. The rotations are applied in the order the axis
// order names them; mixed orders reuse the first axis angle for the third slot.
//
// Parameters:
//   - t: the key time
//
// Returns:
//   - common.Quat: the composed rotation
func (c *KeyframeController) XYZRotation(t float32) common.Quat {
	var xa, ya, za float32
	if !c.xRotations.Empty() {
		xa = c.xRotations.InterpKey(t)
	}
	if !c.yRotations.Empty() {
		ya = c.yRotations.InterpKey(t)
	}
	if !c.zRotations.Empty() {
		za = c.zRotations.InterpKey(t)
	}
	return ComposeAxes(c.axisOrder, xa, ya, za)
}

// ComposeAxes builds the rotation that applies the three per-axis rotations
// in the order named by order. For XYZ the X rotation is applied first.
//
// Parameters:
//   - order: the axis order
//   - xa, ya, za: the per-axis angles in radians
//
// Returns:
//   - common.Quat: the composed rotation
func ComposeAxes(order nif.AxisOrder, xa, ya, za float32) common.Quat {
	xr := common.QuatFromAxisAngle(xa, common.AxisX)
	yr := common.QuatFromAxisAngle(ya, common.AxisY)
	zr := common.QuatFromAxisAngle(za, common.AxisZ)

	// then(a, b, c) applies a, then b, then c.
	then := func(a, b, c common.Quat) common.Quat {
		return c.Mul(b).Mul(a)
	}
	switch order {
	case nif.AxisOrderXZY:
		return then(xr, zr, yr)
	case nif.AxisOrderYZX:
		return then(yr, zr, xr)
	case nif.AxisOrderYXZ:
		return then(yr, xr, zr)
	case nif.AxisOrderZXY:
		return then(zr, xr, yr)
	case nif.AxisOrderZYX:
		return then(zr, yr, xr)
	case nif.AxisOrderXYX:
		return then(xr, yr, xr)
	case nif.AxisOrderYZY:
		return then(yr, zr, yr)
	case nif.AxisOrderZXZ:
		return then(zr, xr, zr)
	default:
		return then(xr, yr, zr)
	}
}

// Translation samples the translation track, or the origin when it has no keys.
func (c *KeyframeController) Translation(t float32) common.Vec3 {
	if !c.translations.Empty() {
		return c.translations.InterpKey(t)
	}
	return common.Vec3{}
}

func (c *KeyframeController) Apply(target any, v Visit) {
	if node, ok := target.(TransformTarget); ok && c.live() {
		t := c.InputValue(v)

		switch {
		case !c.rotations.Empty():
			node.SetRotation(c.rotations.InterpKey(t))
		case !c.xRotations.Empty() || !c.yRotations.Empty() || !c.zRotations.Empty():
			node.SetRotation(c.XYZRotation(t))
		default:
			node.SetRotation(node.RestRotation())
		}

		if !c.scales.Empty() {
			node.SetScale(c.scales.InterpKey(t))
		}
		if !c.translations.Empty() {
			node.SetTranslation(c.translations.InterpKey(t))
		}
	}
	v.Traverse()
}
