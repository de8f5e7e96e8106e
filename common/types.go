// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Texture-cycling controllers carry it along with the texture so the renderer can build the sampler lazily.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
}

// DefaultSamplerData returns the linear/repeat sampler used when an asset does not specify one.
//
// Returns:
//   - *SamplerStagingData: a new sampler description with repeat addressing and linear filtering
func DefaultSamplerData() *SamplerStagingData {
	return &SamplerStagingData{
		AddressModeU: wgpu.AddressModeRepeat,
		AddressModeV: wgpu.AddressModeRepeat,
		AddressModeW: wgpu.AddressModeRepeat,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
		MipmapFilter: wgpu.MipmapFilterModeLinear,
	}
}

// ImportedTexture represents a texture referenced by an asset.
// The controller layer never decodes pixels; it only swaps which texture is bound to a slot.
type ImportedTexture struct {
	// Name is an identifier for this texture (e.g., "fire01").
	Name string

	// Path is the file path of the texture image.
	Path string

	// SamplerData holds GPU sampler parameters extracted from the asset.
	// When nil, the renderer uses DefaultSamplerData.
	SamplerData *SamplerStagingData
}
