package nif

import (
	"github.com/pkg/errors"
)

// TargetColor selects the material channel a color controller drives.
type TargetColor uint16

const (
	TargetAmbient TargetColor = iota
	TargetDiffuse
	TargetSpecular
	TargetEmissive
)

// String returns the lower-case channel name.
func (c TargetColor) String() string {
	switch c {
	case TargetDiffuse:
		return "diffuse"
	case TargetSpecular:
		return "specular"
	case TargetEmissive:
		return "emissive"
	default:
		return "ambient"
	}
}

// KeyframeController drives a transform from either a transform
// interpolator or a legacy keyframe data block.
type KeyframeController struct {
	Controller
	Interpolator Interpolator
	Data         *KeyframeData
}

// Validate implements Record.
func (c *KeyframeController) Validate() error {
	return errors.Wrap(ExpectInterpolator(c.Interpolator, RecordTransformInterpolator), "keyframe controller")
}

// GeomMorpherController drives morph target weights.
type GeomMorpherController struct {
	Controller
	Interpolators []Interpolator
	Weights       []float32
	Data          *MorphData
}

// MorphCount returns the number of morph slots the controller drives,
// including the base shape.
func (c *GeomMorpherController) MorphCount() int {
	if len(c.Interpolators) > 0 {
		return len(c.Interpolators)
	}
	if c.Data != nil {
		return len(c.Data.Morphs)
	}
	return 0
}

// CheckMorphCount verifies the controller fits a geometry with the given number of morph targets.
//
// Parameters:
//   - targets: the number of morph targets on the geometry, including the base shape
//
// Returns:
//   - error: ErrMorphCountMismatch if the controller drives more slots than exist
func (c *GeomMorpherController) CheckMorphCount(targets int) error {
	if n := c.MorphCount(); n > targets {
		return errors.Wrapf(ErrMorphCountMismatch, "controller drives %d morphs, geometry has %d", n, targets)
	}
	return nil
}

// Validate implements Record.
func (c *GeomMorpherController) Validate() error {
	for i, interp := range c.Interpolators {
		if err := ExpectInterpolator(interp, RecordFloatInterpolator); err != nil {
			return errors.Wrapf(err, "geom morpher interpolator %d", i)
		}
	}
	return nil
}

// UVController scrolls and scales texture coordinates.
type UVController struct {
	Controller
	Data *UVData
}

// Validate implements Record.
func (c *UVController) Validate() error {
	if c.Data == nil {
		return errors.Wrap(ErrMissingData, "uv controller")
	}
	return nil
}

// VisController toggles node visibility.
type VisController struct {
	Controller
	Interpolator Interpolator
	Data         *VisData
}

// Validate implements Record.
func (c *VisController) Validate() error {
	if err := ExpectInterpolator(c.Interpolator, RecordBoolInterpolator); err != nil {
		return errors.Wrap(err, "vis controller")
	}
	if c.Data != nil {
		return errors.Wrap(c.Data.Validate(), "vis controller")
	}
	return nil
}

// RollController spins a node about its local Z axis.
type RollController struct {
	Controller
	Interpolator Interpolator
	Data         *FloatData
}

// Validate implements Record.
func (c *RollController) Validate() error {
	return errors.Wrap(ExpectInterpolator(c.Interpolator, RecordFloatInterpolator), "roll controller")
}

// AlphaController drives material diffuse alpha.
type AlphaController struct {
	Controller
	Interpolator Interpolator
	Data         *FloatData
}

// Validate implements Record.
func (c *AlphaController) Validate() error {
	return errors.Wrap(ExpectInterpolator(c.Interpolator, RecordFloatInterpolator), "alpha controller")
}

// MaterialColorController drives one material color channel.
type MaterialColorController struct {
	Controller
	Interpolator Interpolator
	Data         *PosData
	TargetColor  TargetColor
}

// Validate implements Record.
func (c *MaterialColorController) Validate() error {
	return errors.Wrap(ExpectInterpolator(c.Interpolator, RecordPoint3Interpolator), "material color controller")
}

// FlipController cycles through a texture list.
type FlipController struct {
	Controller
	Interpolator Interpolator
	Delta        float32
	Sources      []string
}

// Validate implements Record.
func (c *FlipController) Validate() error {
	return errors.Wrap(ExpectInterpolator(c.Interpolator, RecordFloatInterpolator), "flip controller")
}

// ParticleSystemController gates emission to a time window.
type ParticleSystemController struct {
	Controller
	StartTime float32
	StopTime  float32
}

// Validate implements Record.
func (c *ParticleSystemController) Validate() error {
	return nil
}

// PathController moves a node along a position track.
type PathController struct {
	Controller
	PosData   *PosData
	FloatData *FloatData
	PathFlags uint16
}

// Validate implements Record.
func (c *PathController) Validate() error {
	if c.PosData == nil || c.FloatData == nil {
		return errors.Wrap(ErrMissingData, "path controller")
	}
	return nil
}
