package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-nif/common"
)

func TestMaterialFaces(t *testing.T) {
	m := NewMaterial(WithDiffuse(common.Vec4{1, 0, 0, 1}))

	m.SetDiffuse(FaceBack, common.Vec4{0, 1, 0, 1})
	if got := m.Diffuse(FaceFront); got != (common.Vec4{1, 0, 0, 1}) {
		t.Errorf("Diffuse(front) = %v want red", got)
	}
	if got := m.Diffuse(FaceBack); got != (common.Vec4{0, 1, 0, 1}) {
		t.Errorf("Diffuse(back) = %v want green", got)
	}

	m.SetDiffuse(FaceFrontAndBack, common.Vec4{0, 0, 1, 0.5})
	for _, face := range []Face{FaceFront, FaceBack, FaceFrontAndBack} {
		if got := m.Diffuse(face); got != (common.Vec4{0, 0, 1, 0.5}) {
			t.Errorf("Diffuse(%v) = %v want blue", face, got)
		}
	}
}

func TestMaterialCloneIsDeep(t *testing.T) {
	base := NewMaterial(WithName("base"), WithEmission(common.Vec4{1, 1, 1, 1}), WithShininess(8))
	c := base.Clone()
	c.SetEmission(FaceFrontAndBack, common.Vec4{0, 0, 0, 1})

	if got := base.Emission(FaceFront); got != (common.Vec4{1, 1, 1, 1}) {
		t.Errorf("base emission changed through clone: %v", got)
	}
	if c.Name() != "base" || c.Shininess() != 8 {
		t.Errorf("clone lost fields: name %q shininess %v", c.Name(), c.Shininess())
	}
}

func TestStateSetCloneKeepsSharedTexMat(t *testing.T) {
	s := NewStateSet()
	s.SetMaterial(NewMaterial())
	shared := NewTexMat()
	s.SetTexMat(0, shared)
	s.SetTexMat(2, shared)
	tex := &common.ImportedTexture{Name: "a"}
	s.SetTexture(0, tex)

	c := s.Clone()
	if c.TexMat(0) != c.TexMat(2) {
		t.Errorf("clone split a shared texture matrix")
	}
	if c.TexMat(0) == shared {
		t.Errorf("clone shares texture matrix with the original")
	}
	if c.Texture(0) != tex {
		t.Errorf("clone did not share texture handle")
	}
	if c.Material() == s.Material() {
		t.Errorf("clone shares material with the original")
	}

	c.TexMat(0).Matrix[12] = 3
	if shared.Matrix[12] != 0 {
		t.Errorf("write through clone reached original")
	}
}

func TestStateSetTextureUnits(t *testing.T) {
	s := NewStateSet()
	s.SetTexture(3, &common.ImportedTexture{})
	s.SetTexture(1, &common.ImportedTexture{})
	s.SetTexture(2, nil)
	got := s.TextureUnits()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("TextureUnits() = %v want [1 3]", got)
	}
}

func TestGPUMaterialParamsMarshal(t *testing.T) {
	m := NewMaterial(WithSpecular(common.Vec4{0.5, 0.25, 0.125, 1}))
	p := NewGPUMaterialParams(m)
	if p.Size() != 64 {
		t.Fatalf("Size() = %d want 64", p.Size())
	}
	buf := p.Marshal()
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[36:40])); got != 0.25 {
		t.Errorf("specular green at offset 36 = %v want 0.25", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[28:32])); got != 1 {
		t.Errorf("diffuse alpha at offset 28 = %v want 1", got)
	}
}
