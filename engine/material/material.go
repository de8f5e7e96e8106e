package material

import (
	"github.com/Carmen-Shannon/oxy-nif/common"
)

// Face selects which polygon faces a color applies to.
type Face int

const (
	FaceFront Face = iota
	FaceBack
	FaceFrontAndBack
)

// faceColors holds one color per face.
type faceColors [2]common.Vec4

func (c *faceColors) get(face Face) common.Vec4 {
	if face == FaceBack {
		return c[1]
	}
	return c[0]
}

func (c *faceColors) set(face Face, v common.Vec4) {
	switch face {
	case FaceFront:
		c[0] = v
	case FaceBack:
		c[1] = v
	default:
		c[0], c[1] = v, v
	}
}

// material is the implementation of the Material interface.
type material struct {
	name      string
	ambient   faceColors
	diffuse   faceColors
	specular  faceColors
	emission  faceColors
	shininess float32
}

// Material is a fixed-function surface description with separate front and
// back colors. Reading FaceFrontAndBack returns the front color.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Ambient retrieves the ambient RGBA color of a face.
	//
	// Parameters:
	//   - face: the face to read
	//
	// Returns:
	//   - common.Vec4: the ambient color
	Ambient(face Face) common.Vec4

	// SetAmbient sets the ambient RGBA color of one or both faces.
	//
	// Parameters:
	//   - face: the face to write
	//   - color: the new color
	SetAmbient(face Face, color common.Vec4)

	// Diffuse retrieves the diffuse RGBA color of a face.
	//
	// Parameters:
	//   - face: the face to read
	//
	// Returns:
	//   - common.Vec4: the diffuse color
	Diffuse(face Face) common.Vec4

	// SetDiffuse sets the diffuse RGBA color of one or both faces.
	//
	// Parameters:
	//   - face: the face to write
	//   - color: the new color
	SetDiffuse(face Face, color common.Vec4)

	// Specular retrieves the specular RGBA color of a face.
	//
	// Parameters:
	//   - face: the face to read
	//
	// Returns:
	//   - common.Vec4: the specular color
	Specular(face Face) common.Vec4

	// SetSpecular sets the specular RGBA color of one or both faces.
	//
	// Parameters:
	//   - face: the face to write
	//   - color: the new color
	SetSpecular(face Face, color common.Vec4)

	// Emission retrieves the emissive RGBA color of a face.
	//
	// Parameters:
	//   - face: the face to read
	//
	// Returns:
	//   - common.Vec4: the emissive color
	Emission(face Face) common.Vec4

	// SetEmission sets the emissive RGBA color of one or both faces.
	//
	// Parameters:
	//   - face: the face to write
	//   - color: the new color
	SetEmission(face Face, color common.Vec4)

	// Shininess retrieves the specular exponent.
	//
	// Returns:
	//   - float32: the shininess
	Shininess() float32

	// Clone returns an independent deep copy of the material.
	//
	// Returns:
	//   - Material: the copy
	Clone() Material
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Defaults follow the fixed-function pipeline: grey ambient, light grey diffuse,
// black specular and emission, all fully opaque.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{}
	m.ambient.set(FaceFrontAndBack, common.Vec4{0.2, 0.2, 0.2, 1})
	m.diffuse.set(FaceFrontAndBack, common.Vec4{0.8, 0.8, 0.8, 1})
	m.specular.set(FaceFrontAndBack, common.Vec4{0, 0, 0, 1})
	m.emission.set(FaceFrontAndBack, common.Vec4{0, 0, 0, 1})
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Ambient(face Face) common.Vec4 {
	return m.ambient.get(face)
}

func (m *material) SetAmbient(face Face, color common.Vec4) {
	m.ambient.set(face, color)
}

func (m *material) Diffuse(face Face) common.Vec4 {
	return m.diffuse.get(face)
}

func (m *material) SetDiffuse(face Face, color common.Vec4) {
	m.diffuse.set(face, color)
}

func (m *material) Specular(face Face) common.Vec4 {
	return m.specular.get(face)
}

func (m *material) SetSpecular(face Face, color common.Vec4) {
	m.specular.set(face, color)
}

func (m *material) Emission(face Face) common.Vec4 {
	return m.emission.get(face)
}

func (m *material) SetEmission(face Face, color common.Vec4) {
	m.emission.set(face, color)
}

func (m *material) Shininess() float32 {
	return m.shininess
}

func (m *material) Clone() Material {
	c := *m
	return &c
}
