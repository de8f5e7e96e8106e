// Package material provides the rendering attributes animated by state-set
// controllers: fixed-function materials, texture matrices and the StateSet
// that binds them to texture units.
package material

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-nif/common"
)

// TexMat is a texture coordinate transform. A single TexMat may be bound to
// several texture units at once; writes through one unit are seen by all.
type TexMat struct {
	Matrix common.Mat4
}

// NewTexMat creates a TexMat holding the identity matrix.
func NewTexMat() *TexMat {
	return &TexMat{Matrix: common.IdentityMat4()}
}

// StateSet is a bag of rendering attributes bound during traversal.
type StateSet struct {
	material Material
	textures map[int]*common.ImportedTexture
	texMats  map[int]*TexMat
}

// NewStateSet creates an empty StateSet.
func NewStateSet() *StateSet {
	return &StateSet{
		textures: make(map[int]*common.ImportedTexture),
		texMats:  make(map[int]*TexMat),
	}
}

// Material returns the bound material, or nil.
func (s *StateSet) Material() Material {
	return s.material
}

// SetMaterial binds a material, replacing any previous one.
func (s *StateSet) SetMaterial(m Material) {
	s.material = m
}

// Texture returns the texture bound to a unit, or nil.
func (s *StateSet) Texture(unit int) *common.ImportedTexture {
	return s.textures[unit]
}

// SetTexture binds a texture to a unit. Textures are shared handles and are not copied.
func (s *StateSet) SetTexture(unit int, tex *common.ImportedTexture) {
	if tex == nil {
		delete(s.textures, unit)
		return
	}
	s.textures[unit] = tex
}

// TexMat returns the texture matrix bound to a unit, or nil.
func (s *StateSet) TexMat(unit int) *TexMat {
	return s.texMats[unit]
}

// SetTexMat binds a texture matrix to a unit.
func (s *StateSet) SetTexMat(unit int, m *TexMat) {
	if m == nil {
		delete(s.texMats, unit)
		return
	}
	s.texMats[unit] = m
}

// TextureUnits returns the sorted units that have a texture bound.
func (s *StateSet) TextureUnits() []int {
	units := make([]int, 0, len(s.textures))
	for u := range s.textures {
		units = append(units, u)
	}
	sort.Ints(units)
	return units
}

// Clone returns an independent copy of the state set. The material and texture
// matrices are deep copied; texture matrices shared between units remain shared
// within the copy. Textures are shared.
//
// Returns:
//   - *StateSet: the copy
func (s *StateSet) Clone() *StateSet {
	c := NewStateSet()
	if s.material != nil {
		c.material = s.material.Clone()
	}
	for u, t := range s.textures {
		c.textures[u] = t
	}
	copies := make(map[*TexMat]*TexMat, len(s.texMats))
	for u, m := range s.texMats {
		dup, ok := copies[m]
		if !ok {
			dup = &TexMat{Matrix: m.Matrix}
			copies[m] = dup
		}
		c.texMats[u] = dup
	}
	return c
}
