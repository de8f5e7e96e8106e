package nif

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-nif/common"
	"github.com/Carmen-Shannon/oxy-nif/engine/keyframe"
	"github.com/pkg/errors"
)

// AxisOrder is the composition order of per-axis rotation tracks.
type AxisOrder uint32

const (
	AxisOrderXYZ AxisOrder = iota
	AxisOrderXZY
	AxisOrderYZX
	AxisOrderYXZ
	AxisOrderZXY
	AxisOrderZYX
	AxisOrderXYX
	AxisOrderYZY
	AxisOrderZXZ
)

var axisOrderNames = [...]string{"XYZ", "XZY", "YZX", "YXZ", "ZXY", "ZYX", "XYX", "YZY", "ZXZ"}

// String returns the three-letter name of the order.
func (o AxisOrder) String() string {
	if int(o) < len(axisOrderNames) {
		return axisOrderNames[o]
	}
	return fmt.Sprintf("AxisOrder(%d)", uint32(o))
}

// ParseAxisOrder resolves a three-letter axis order name.
func ParseAxisOrder(s string) (AxisOrder, error) {
	for i, n := range axisOrderNames {
		if n == s {
			return AxisOrder(i), nil
		}
	}
	return AxisOrderXYZ, errors.Errorf("unknown axis order %q", s)
}

// FloatData is a block holding one scalar track.
type FloatData struct {
	KeyList *keyframe.FloatSequence
}

// PosData is a block holding one vector track.
type PosData struct {
	KeyList *keyframe.Vec3Sequence
}

// BoolData is a block holding one on/off track.
type BoolData struct {
	KeyList *keyframe.BoolSequence
}

// KeyframeData holds the legacy transform tracks.
type KeyframeData struct {
	Rotations    *keyframe.QuatSequence
	XRotations   *keyframe.FloatSequence
	YRotations   *keyframe.FloatSequence
	ZRotations   *keyframe.FloatSequence
	Translations *keyframe.Vec3Sequence
	Scales       *keyframe.FloatSequence
	AxisOrder    AxisOrder
}

// UVData holds the four texture-coordinate tracks in the order
// u translation, v translation, u scale, v scale.
type UVData struct {
	KeyList [4]*keyframe.FloatSequence
}

// VisKey is a single legacy visibility step.
type VisKey struct {
	Time  float32
	IsSet bool
}

// VisData holds a legacy visibility step list.
type VisData struct {
	Vis []VisKey
}

// Validate checks that the steps are in time order.
func (d *VisData) Validate() error {
	for i := 1; i < len(d.Vis); i++ {
		if d.Vis[i].Time < d.Vis[i-1].Time {
			return errors.Wrapf(keyframe.ErrUnsortedKeys, "visibility key %d", i)
		}
	}
	return nil
}

// Morph is one morph target track.
type Morph struct {
	Name      string
	KeyFrames *keyframe.FloatSequence
}

// MorphData holds the legacy morph tracks. Morphs[0] is the base shape.
type MorphData struct {
	Morphs []Morph
}

// Interpolator is a typed interpolator block.
type Interpolator interface {
	RecordType() RecordType
}

// FloatInterpolator is a scalar interpolator block.
type FloatInterpolator struct {
	DefaultValue float32
	Data         *FloatData
}

// RecordType implements Interpolator.
func (*FloatInterpolator) RecordType() RecordType { return RecordFloatInterpolator }

// Keys returns the scalar track, or nil.
func (f *FloatInterpolator) Keys() *keyframe.FloatSequence {
	if f == nil || f.Data == nil {
		return nil
	}
	return f.Data.KeyList
}

// Point3Interpolator is a vector interpolator block.
type Point3Interpolator struct {
	DefaultValue common.Vec3
	Data         *PosData
}

// RecordType implements Interpolator.
func (*Point3Interpolator) RecordType() RecordType { return RecordPoint3Interpolator }

// Keys returns the vector track, or nil.
func (p *Point3Interpolator) Keys() *keyframe.Vec3Sequence {
	if p == nil || p.Data == nil {
		return nil
	}
	return p.Data.KeyList
}

// BoolInterpolator is an on/off interpolator block.
type BoolInterpolator struct {
	DefaultValue bool
	Data         *BoolData
}

// RecordType implements Interpolator.
func (*BoolInterpolator) RecordType() RecordType { return RecordBoolInterpolator }

// Keys returns the on/off track, or nil.
func (b *BoolInterpolator) Keys() *keyframe.BoolSequence {
	if b == nil || b.Data == nil {
		return nil
	}
	return b.Data.KeyList
}

// TransformInterpolator is a transform interpolator block. The defaults
// apply to channels without keys, including when Data is absent.
type TransformInterpolator struct {
	DefaultPos   common.Vec3
	DefaultRot   common.Quat
	DefaultScale float32
	Data         *KeyframeData
}

// RecordType implements Interpolator.
func (*TransformInterpolator) RecordType() RecordType { return RecordTransformInterpolator }
