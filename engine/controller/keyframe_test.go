package controller

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-nif/common"
	"github.com/Carmen-Shannon/oxy-nif/engine/keyframe"
	"github.com/Carmen-Shannon/oxy-nif/engine/nif"
	"github.com/chewxy/math32"
)

func TestComposeAxesOrder(t *testing.T) {
	const a, b, c = 0.3, -0.7, 1.1
	rx := func(v common.Vec3, ang float32) common.Vec3 {
		return common.QuatFromAxisAngle(ang, common.AxisX).Rotate(v)
	}
	ry := func(v common.Vec3, ang float32) common.Vec3 {
		return common.QuatFromAxisAngle(ang, common.AxisY).Rotate(v)
	}
	rz := func(v common.Vec3, ang float32) common.Vec3 {
		return common.QuatFromAxisAngle(ang, common.AxisZ).Rotate(v)
	}

	tests := []struct {
		order nif.AxisOrder
		apply func(v common.Vec3) common.Vec3
	}{
		{nif.AxisOrderXYZ, func(v common.Vec3) common.Vec3 { return rz(ry(rx(v, a), b), c) }},
		{nif.AxisOrderXZY, func(v common.Vec3) common.Vec3 { return ry(rz(rx(v, a), c), b) }},
		{nif.AxisOrderYZX, func(v common.Vec3) common.Vec3 { return rx(rz(ry(v, b), c), a) }},
		{nif.AxisOrderYXZ, func(v common.Vec3) common.Vec3 { return rz(rx(ry(v, b), a), c) }},
		{nif.AxisOrderZXY, func(v common.Vec3) common.Vec3 { return ry(rx(rz(v, c), a), b) }},
		{nif.AxisOrderZYX, func(v common.Vec3) common.Vec3 { return rx(ry(rz(v, c), b), a) }},
		{nif.AxisOrderXYX, func(v common.Vec3) common.Vec3 { return rx(ry(rx(v, a), b), a) }},
		{nif.AxisOrderYZY, func(v common.Vec3) common.Vec3 { return ry(rz(ry(v, b), c), b) }},
		{nif.AxisOrderZXZ, func(v common.Vec3) common.Vec3 { return rz(rx(rz(v, c), a), c) }},
	}
	points := []common.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0.3, -0.5, 0.8}}
	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			q := ComposeAxes(tt.order, a, b, c)
			for _, p := range points {
				if got, want := q.Rotate(p), tt.apply(p); !approxVec3(got, want) {
					t.Errorf("rotate %v = %v want %v", p, got, want)
				}
			}
		})
	}
}

func TestComposeAxesAppliesXFirst(t *testing.T) {
	q := ComposeAxes(nif.AxisOrderXYZ, math32.Pi/2, math32.Pi/2, 0)
	// X takes +Y to +Z, then Y takes +Z to +X.
	if got := q.Rotate(common.Vec3{0, 1, 0}); !approxVec3(got, common.Vec3{1, 0, 0}) {
		t.Errorf("rotate +Y = %v want +X", got)
	}
}

func TestKeyframeControllerLegacy(t *testing.T) {
	rot := common.QuatFromAxisAngle(1, common.AxisY)
	rec := &nif.KeyframeController{
		Controller: window(0, 10, nif.ExtrapolationConstant),
		Data: &nif.KeyframeData{
			Rotations: quatSeq(t,
				keyframe.Key[common.Quat]{Time: 0, Value: common.IdentityQuat()},
				keyframe.Key[common.Quat]{Time: 2, Value: rot},
			),
			Translations: vec3Seq(t,
				keyframe.Key[common.Vec3]{Time: 0, Value: common.Vec3{0, 0, 0}},
				keyframe.Key[common.Vec3]{Time: 2, Value: common.Vec3{2, 4, 6}},
			),
		},
	}
	c := NewKeyframeController(rec)
	if c.Source() != SourceLegacy {
		t.Fatalf("Source() = %v want legacy", c.Source())
	}
	c.SetInput(SceneTime{})

	node := newFakeTransform()
	node.scale = 3
	v := &fakeVisit{now: 1}
	c.Apply(node, v)

	if !sameRotation(node.rotation, common.QuatFromAxisAngle(0.5, common.AxisY)) {
		t.Errorf("rotation = %v want half of %v", node.rotation, rot)
	}
	if !approxVec3(node.translation, common.Vec3{1, 2, 3}) {
		t.Errorf("translation = %v want [1 2 3]", node.translation)
	}
	if node.scale != 3 {
		t.Errorf("scale written without scale keys: %v", node.scale)
	}
	if v.traversed != 1 {
		t.Errorf("traversed %d times want 1", v.traversed)
	}
}

func TestKeyframeControllerXYZAndRest(t *testing.T) {
	rec := &nif.KeyframeController{
		Controller: window(0, 10, nif.ExtrapolationConstant),
		Data: &nif.KeyframeData{
			ZRotations: floatSeq(t, keyframe.InterpolationLinear, fk(0, 0), fk(4, 2)),
			Scales:     floatSeq(t, keyframe.InterpolationLinear, fk(0, 1), fk(4, 3)),
			AxisOrder:  nif.AxisOrderXYZ,
		},
	}
	c := NewKeyframeController(rec)
	c.SetInput(SceneTime{})
	node := newFakeTransform()
	c.Apply(node, &fakeVisit{now: 2})

	if !sameRotation(node.rotation, common.QuatFromAxisAngle(1, common.AxisZ)) {
		t.Errorf("rotation = %v want 1 rad about Z", node.rotation)
	}
	if !approx(node.scale, 2) {
		t.Errorf("scale = %v want 2", node.scale)
	}

	rest := common.QuatFromAxisAngle(0.25, common.AxisX)
	bare := NewKeyframeController(&nif.KeyframeController{
		Controller: window(0, 10, nif.ExtrapolationConstant),
		Data:       &nif.KeyframeData{},
	})
	bare.SetInput(SceneTime{})
	node = newFakeTransform()
	node.rest = rest
	node.rotation = common.QuatFromAxisAngle(2, common.AxisY)
	bare.Apply(node, &fakeVisit{now: 1})
	if node.rotation != rest {
		t.Errorf("rotation = %v want rest %v", node.rotation, rest)
	}
}

func TestKeyframeControllerModern(t *testing.T) {
	defRot := common.QuatFromAxisAngle(0.4, common.AxisX)
	c := NewKeyframeController(&nif.KeyframeController{
		Controller: window(0, 10, nif.ExtrapolationConstant),
		Interpolator: &nif.TransformInterpolator{
			DefaultPos:   common.Vec3{1, 1, 1},
			DefaultRot:   defRot,
			DefaultScale: 2,
			Data: &nif.KeyframeData{
				Scales: floatSeq(t, keyframe.InterpolationLinear, fk(0, 5)),
			},
		},
		Data: &nif.KeyframeData{
			Translations: vec3Seq(t, keyframe.Key[common.Vec3]{Time: 0, Value: common.Vec3{9, 9, 9}}),
		},
	})
	if c.Source() != SourceModern {
		t.Fatalf("Source() = %v want modern", c.Source())
	}
	c.SetInput(SceneTime{})
	node := newFakeTransform()
	c.Apply(node, &fakeVisit{now: 3})
	if node.scale != 5 {
		t.Errorf("scale = %v want 5", node.scale)
	}
	if node.translation != (common.Vec3{}) {
		t.Errorf("legacy block used alongside interpolator: translation = %v", node.translation)
	}
	if got := c.Translation(3); got != (common.Vec3{}) {
		t.Errorf("Translation(3) = %v want origin", got)
	}
}

func TestKeyframeControllerInert(t *testing.T) {
	tests := []struct {
		name string
		rec  *nif.KeyframeController
	}{
		{"no data", &nif.KeyframeController{Controller: window(0, 1, nif.ExtrapolationCycle)}},
		{"wrong interpolator", &nif.KeyframeController{
			Controller:   window(0, 1, nif.ExtrapolationCycle),
			Interpolator: &nif.FloatInterpolator{DefaultValue: 1},
			Data:         &nif.KeyframeData{},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewKeyframeController(tt.rec)
			if c.Source() != SourceNone {
				t.Errorf("Source() = %v want none", c.Source())
			}
			c.SetInput(SceneTime{})
			node := newFakeTransform()
			v := &fakeVisit{now: 0.5}
			c.Apply(node, v)
			if node.writes != 0 {
				t.Errorf("inert controller wrote %d times", node.writes)
			}
			if v.traversed != 1 {
				t.Errorf("traversed %d times want 1", v.traversed)
			}
		})
	}
}

func TestKeyframeControllerNeedsInput(t *testing.T) {
	c := NewKeyframeController(&nif.KeyframeController{
		Controller: window(0, 1, nif.ExtrapolationCycle),
		Data:       &nif.KeyframeData{Scales: floatSeq(t, keyframe.InterpolationLinear, fk(0, 2))},
	})
	if c.HasInput() {
		t.Fatalf("HasInput() = true before SetInput")
	}
	node := newFakeTransform()
	c.Apply(node, &fakeVisit{})
	if node.writes != 0 {
		t.Errorf("controller without input wrote %d times", node.writes)
	}
}

func TestKeyframeControllerCloneSharesKeys(t *testing.T) {
	c := NewKeyframeController(&nif.KeyframeController{
		Controller: window(0, 1, nif.ExtrapolationCycle),
		Data:       &nif.KeyframeData{Scales: floatSeq(t, keyframe.InterpolationLinear, fk(0, 2))},
	})
	c.SetInput(SceneTime{})
	dup := c.Clone().(*KeyframeController)
	if dup == c {
		t.Fatalf("Clone() returned the same controller")
	}
	if dup.scales.Sequence() != c.scales.Sequence() {
		t.Errorf("clone copied the scale sequence")
	}
	dup.SetInput(nil)
	if !c.HasInput() {
		t.Errorf("unbinding the clone's input unbound the original")
	}
}
