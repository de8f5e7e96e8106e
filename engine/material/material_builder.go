package material

import (
	"github.com/Carmen-Shannon/oxy-nif/common"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithAmbient is an option builder that sets the ambient color of both faces.
//
// Parameters:
//   - color: the ambient color as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the ambient option to a material
func WithAmbient(color common.Vec4) MaterialBuilderOption {
	return func(m *material) {
		m.ambient.set(FaceFrontAndBack, color)
	}
}

// WithDiffuse is an option builder that sets the diffuse color of both faces.
//
// Parameters:
//   - color: the diffuse color as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse option to a material
func WithDiffuse(color common.Vec4) MaterialBuilderOption {
	return func(m *material) {
		m.diffuse.set(FaceFrontAndBack, color)
	}
}

// WithSpecular is an option builder that sets the specular color of both faces.
//
// Parameters:
//   - color: the specular color as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specular option to a material
func WithSpecular(color common.Vec4) MaterialBuilderOption {
	return func(m *material) {
		m.specular.set(FaceFrontAndBack, color)
	}
}

// WithEmission is an option builder that sets the emissive color of both faces.
//
// Parameters:
//   - color: the emissive color as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the emission option to a material
func WithEmission(color common.Vec4) MaterialBuilderOption {
	return func(m *material) {
		m.emission.set(FaceFrontAndBack, color)
	}
}

// WithShininess is an option builder that sets the specular exponent.
//
// Parameters:
//   - shininess: the specular exponent
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shininess option to a material
func WithShininess(shininess float32) MaterialBuilderOption {
	return func(m *material) {
		m.shininess = shininess
	}
}
