package material

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-nif/common"
)

// GPUMaterialParams is the std430-aligned uniform layout of a material's front-face colors.
// Size: 64 bytes (four vec4<f32>).
type GPUMaterialParams struct {
	Ambient  [4]float32 // offset 0
	Diffuse  [4]float32 // offset 16
	Specular [4]float32 // offset 32
	Emission [4]float32 // offset 48
}

// NewGPUMaterialParams snapshots the front-face colors of a material.
//
// Parameters:
//   - m: the material to read
//
// Returns:
//   - GPUMaterialParams: the uniform contents
func NewGPUMaterialParams(m Material) GPUMaterialParams {
	return GPUMaterialParams{
		Ambient:  m.Ambient(FaceFront),
		Diffuse:  m.Diffuse(FaceFront),
		Specular: m.Specular(FaceFront),
		Emission: m.Emission(FaceFront),
	}
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, 64)
	for i, c := range [4]common.Vec4{g.Ambient, g.Diffuse, g.Specular, g.Emission} {
		for j, v := range c {
			off := i*16 + j*4
			binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
		}
	}
	return buf
}

// GPUTexMatParams is the uniform layout of a texture matrix.
// Size: 64 bytes (mat4x4<f32>, column-major).
type GPUTexMatParams struct {
	Matrix [16]float32
}

// Marshal serializes the matrix into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUTexMatParams) Marshal() []byte {
	buf := make([]byte, 64)
	for i, v := range g.Matrix {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
	return buf
}
