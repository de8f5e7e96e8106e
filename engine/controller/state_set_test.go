package controller

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-nif/common"
	"github.com/Carmen-Shannon/oxy-nif/engine/keyframe"
	"github.com/Carmen-Shannon/oxy-nif/engine/material"
	"github.com/Carmen-Shannon/oxy-nif/engine/nif"
)

func attach(c StateSetController) *fakeStateSetNode {
	node := &fakeStateSetNode{ss: material.NewStateSet()}
	c.SetDefaults(node.ss)
	c.SetInput(SceneTime{})
	return node
}

func TestUVControllerIdentity(t *testing.T) {
	c := NewUVController(&nif.UVController{
		Controller: window(0, 10, nif.ExtrapolationConstant),
		Data:       &nif.UVData{},
	}, []int{0})
	node := attach(c)
	c.Apply(node, &fakeVisit{now: 3})

	got := node.ss.TexMat(0).Matrix
	want := common.IdentityMat4()
	for i := range got {
		if !approx(got[i], want[i]) {
			t.Fatalf("matrix = %v want identity", got)
		}
	}
}

func TestUVControllerScaleThenOffset(t *testing.T) {
	c := NewUVController(&nif.UVController{
		Controller: window(0, 10, nif.ExtrapolationConstant),
		Data: &nif.UVData{KeyList: [4]*keyframe.FloatSequence{
			floatSeq(t, keyframe.InterpolationLinear, fk(0, 0.1)),
			floatSeq(t, keyframe.InterpolationLinear, fk(0, 0.2)),
			floatSeq(t, keyframe.InterpolationLinear, fk(0, 2)),
			floatSeq(t, keyframe.InterpolationLinear, fk(0, 4)),
		}},
	}, []int{2, 0, 2})
	if units := c.TextureUnits(); len(units) != 2 || units[0] != 0 || units[1] != 2 {
		t.Fatalf("TextureUnits() = %v want [0 2]", units)
	}
	node := attach(c)
	if node.ss.TexMat(0) != node.ss.TexMat(2) {
		t.Fatalf("SetDefaults did not share one texture matrix")
	}
	c.Apply(node, &fakeVisit{now: 1})

	m := node.ss.TexMat(2).Matrix
	tests := []struct {
		in, want common.Vec3
	}{
		{common.Vec3{0.5, 0.5, 0}, common.Vec3{0.4, 0.3, 0}},
		{common.Vec3{0, 0, 0}, common.Vec3{-0.6, -1.7, 0}},
		{common.Vec3{1, 1, 0}, common.Vec3{1.4, 2.3, 0}},
	}
	for _, tt := range tests {
		if got := m.TransformPoint(tt.in); !approxVec3(got, tt.want) {
			t.Errorf("TransformPoint(%v) = %v want %v", tt.in, got, tt.want)
		}
	}
}

func TestAlphaControllerScenario(t *testing.T) {
	baseMat := material.NewMaterial(material.WithDiffuse(common.Vec4{0.2, 0.4, 0.6, 1}))
	c := NewAlphaController(&nif.AlphaController{
		Controller: window(0, 10, nif.ExtrapolationConstant),
		Data:       &nif.FloatData{KeyList: floatSeq(t, keyframe.InterpolationLinear, fk(0, 0), fk(1, 1))},
	}, baseMat)
	node := attach(c)
	c.Apply(node, &fakeVisit{now: 0.25})

	got := node.ss.Material().Diffuse(material.FaceFrontAndBack)
	if !approx(got[3], 0.25) {
		t.Errorf("alpha = %v want 0.25", got[3])
	}
	if got[0] != 0.2 || got[1] != 0.4 || got[2] != 0.6 {
		t.Errorf("rgb = %v want untouched [0.2 0.4 0.6]", got)
	}
	if baseMat.Diffuse(material.FaceFront)[3] != 1 {
		t.Errorf("base material was modified")
	}
	if back := node.ss.Material().Diffuse(material.FaceBack); !approx(back[3], 0.25) {
		t.Errorf("back face alpha = %v want 0.25", back[3])
	}
}

func TestMaterialColorControllerChannels(t *testing.T) {
	tests := []struct {
		target nif.TargetColor
		get    func(m material.Material) common.Vec4
	}{
		{nif.TargetAmbient, func(m material.Material) common.Vec4 { return m.Ambient(material.FaceFront) }},
		{nif.TargetDiffuse, func(m material.Material) common.Vec4 { return m.Diffuse(material.FaceFront) }},
		{nif.TargetSpecular, func(m material.Material) common.Vec4 { return m.Specular(material.FaceFront) }},
		{nif.TargetEmissive, func(m material.Material) common.Vec4 { return m.Emission(material.FaceFront) }},
	}
	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			baseMat := material.NewMaterial(
				material.WithAmbient(common.Vec4{0, 0, 0, 0.5}),
				material.WithDiffuse(common.Vec4{0, 0, 0, 0.5}),
				material.WithSpecular(common.Vec4{0, 0, 0, 0.5}),
				material.WithEmission(common.Vec4{0, 0, 0, 0.5}),
			)
			c := NewMaterialColorController(&nif.MaterialColorController{
				Controller: window(0, 10, nif.ExtrapolationConstant),
				Interpolator: &nif.Point3Interpolator{Data: &nif.PosData{KeyList: vec3Seq(t,
					keyframe.Key[common.Vec3]{Time: 0, Value: common.Vec3{0.1, 0.2, 0.3}},
				)}},
				TargetColor: tt.target,
			}, baseMat)
			node := attach(c)
			c.Apply(node, &fakeVisit{now: 1})

			got := tt.get(node.ss.Material())
			if got != (common.Vec4{0.1, 0.2, 0.3, 0.5}) {
				t.Errorf("channel = %v want [0.1 0.2 0.3 0.5]", got)
			}
		})
	}
}

func TestMaterialColorLegacyDefault(t *testing.T) {
	c := NewMaterialColorController(&nif.MaterialColorController{
		Controller:  window(0, 10, nif.ExtrapolationConstant),
		Data:        &nif.PosData{},
		TargetColor: nif.TargetEmissive,
	}, nil)
	node := attach(c)
	c.Apply(node, &fakeVisit{now: 1})
	if got := node.ss.Material().Emission(material.FaceFront); got != (common.Vec4{1, 1, 1, 1}) {
		t.Errorf("emission = %v want white", got)
	}
}

func TestFlipControllerScenario(t *testing.T) {
	texs := []*common.ImportedTexture{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	c := NewFlipController(&nif.FlipController{
		Controller: window(0, 10, nif.ExtrapolationConstant),
		Delta:      0.5,
	}, texs)
	node := attach(c)

	tests := []struct {
		now  float64
		want string
	}{
		{0, "A"},
		{0.6, "B"},
		{1.1, "C"},
		{1.6, "A"},
	}
	for _, tt := range tests {
		c.Apply(node, &fakeVisit{now: tt.now})
		if got := node.ss.Texture(0); got == nil || got.Name != tt.want {
			t.Errorf("t=%v texture = %v want %s", tt.now, got, tt.want)
		}
	}
}

func TestFlipControllerIndex(t *testing.T) {
	texs := make([]*common.ImportedTexture, 4)
	interp := NewFlipController(&nif.FlipController{
		Controller:   window(0, 10, nif.ExtrapolationConstant),
		Delta:        0.5,
		Interpolator: &nif.FloatInterpolator{Data: &nif.FloatData{KeyList: floatSeq(t, keyframe.InterpolationLinear, fk(0, 0), fk(10, 10))}},
	}, texs)
	if i, ok := interp.Index(6.5); !ok || i != 2 {
		t.Errorf("interpolator Index(6.5) = %d, %v want 2, true", i, ok)
	}

	neg := NewTextureFlipController(1, 1, texs)
	if i, ok := neg.Index(-1); !ok || i != 3 {
		t.Errorf("Index(-1) = %d, %v want 3, true", i, ok)
	}

	inert := NewTextureFlipController(1, 0, texs)
	if _, ok := inert.Index(3); ok {
		t.Errorf("zero delta without interpolator flipped")
	}
	if inert.Source() != SourceNone {
		t.Errorf("Source() = %v want none", inert.Source())
	}

	empty := NewTextureFlipController(0, 1, nil)
	if _, ok := empty.Index(3); ok {
		t.Errorf("flip without textures reported an index")
	}
}

func TestTextureFlipControllerSlot(t *testing.T) {
	texs := []*common.ImportedTexture{{Name: "A"}, {Name: "B"}}
	c := NewTextureFlipController(3, 0.25, texs)
	node := attach(c)
	if node.ss.Texture(3) != texs[0] {
		t.Fatalf("SetDefaults did not bind the first texture")
	}
	c.Apply(node, &fakeVisit{now: 0.3})
	if node.ss.Texture(3) != texs[1] {
		t.Errorf("slot 3 = %v want B", node.ss.Texture(3))
	}
	if node.ss.Texture(0) != nil {
		t.Errorf("slot 0 written")
	}
}

func TestStateSetControllerWithoutStateSet(t *testing.T) {
	c := NewAlphaController(&nif.AlphaController{
		Controller: window(0, 10, nif.ExtrapolationConstant),
		Data:       &nif.FloatData{},
	}, nil)
	c.SetInput(SceneTime{})
	v := &fakeVisit{}
	c.Apply(&fakeStateSetNode{}, v)
	c.Apply(newFakeTransform(), v)
	if v.traversed != 2 {
		t.Errorf("traversed %d times want 2", v.traversed)
	}
}
