package loader

// assetDoc is the top-level asset description decoded by a backend.
type assetDoc struct {
	Name      string        `yaml:"name"`
	Textures  []textureDoc  `yaml:"textures"`
	Materials []materialDoc `yaml:"materials"`
	Root      *nodeDoc      `yaml:"root"`
}

// textureDoc names a texture file and how it is sampled.
type textureDoc struct {
	Name    string      `yaml:"name"`
	Path    string      `yaml:"path"`
	Sampler *samplerDoc `yaml:"sampler"`
}

// samplerDoc holds sampler names, e.g. address "clamp" and filter "nearest".
type samplerDoc struct {
	Address string `yaml:"address"`
	Filter  string `yaml:"filter"`
	Mipmap  string `yaml:"mipmap"`
}

// materialDoc is a fixed-function material. Colors are RGBA.
type materialDoc struct {
	Name      string      `yaml:"name"`
	Ambient   *[4]float32 `yaml:"ambient"`
	Diffuse   *[4]float32 `yaml:"diffuse"`
	Specular  *[4]float32 `yaml:"specular"`
	Emission  *[4]float32 `yaml:"emission"`
	Shininess float32     `yaml:"shininess"`
}

// nodeDoc is one scene-graph node. Type is group, transform, morph or particles.
type nodeDoc struct {
	Name         string          `yaml:"name"`
	Type         string          `yaml:"type"`
	Translation  *[3]float32     `yaml:"translation"`
	Rotation     *[4]float32     `yaml:"rotation"`
	Scale        *float32        `yaml:"scale"`
	Mask         *uint32         `yaml:"mask"`
	Material     string          `yaml:"material"`
	Textures     map[int]string  `yaml:"textures"`
	MorphTargets []string        `yaml:"morphTargets"`
	Controllers  []controllerDoc `yaml:"controllers"`
	Children     []*nodeDoc      `yaml:"children"`
}

// controllerDoc is a controller record. Type selects which of the optional
// blocks are read; the rest are ignored.
type controllerDoc struct {
	Type          string   `yaml:"type"`
	Frequency     *float32 `yaml:"frequency"`
	Phase         float32  `yaml:"phase"`
	Start         float32  `yaml:"start"`
	Stop          float32  `yaml:"stop"`
	Extrapolation string   `yaml:"extrapolation"`
	Active        *bool    `yaml:"active"`

	// Interpolator is the modern data path; Interpolators is used by geom morphers.
	Interpolator  *interpolatorDoc   `yaml:"interpolator"`
	Interpolators []*interpolatorDoc `yaml:"interpolators"`
	Weights       []float32          `yaml:"weights"`

	// Legacy data blocks.
	Keys      *keysDoc       `yaml:"keys"`
	Transform *transformDoc  `yaml:"transform"`
	UV        []*keysDoc     `yaml:"uv"`
	Vis       []visKeyDoc    `yaml:"vis"`
	Morphs    []morphDoc     `yaml:"morphs"`
	Path      *pathDoc       `yaml:"path"`
	Emit      *emitWindowDoc `yaml:"emit"`

	Target   string   `yaml:"target"`
	Delta    float32  `yaml:"delta"`
	Textures []string `yaml:"textures"`
	Units    []int    `yaml:"units"`
	HideMask uint32   `yaml:"hideMask"`
}

// interpolatorDoc is an interpolator block. Type is float, point3, bool or transform.
type interpolatorDoc struct {
	Type         string        `yaml:"type"`
	Default      []float32     `yaml:"default"`
	DefaultPos   *[3]float32   `yaml:"defaultPos"`
	DefaultRot   *[4]float32   `yaml:"defaultRot"`
	DefaultScale *float32      `yaml:"defaultScale"`
	Keys         *keysDoc      `yaml:"keys"`
	Transform    *transformDoc `yaml:"transform"`
}

// keysDoc is one key track. Values hold 1, 3 or 4 components depending on the channel.
type keysDoc struct {
	Interpolation string   `yaml:"interpolation"`
	Keys          []keyDoc `yaml:"keys"`
}

type keyDoc struct {
	Time       float32   `yaml:"time"`
	Value      []float32 `yaml:"value"`
	In         []float32 `yaml:"in"`
	Out        []float32 `yaml:"out"`
	Tension    float32   `yaml:"tension"`
	Bias       float32   `yaml:"bias"`
	Continuity float32   `yaml:"continuity"`
}

// transformDoc is a keyframe data block.
type transformDoc struct {
	Rotations    *keysDoc `yaml:"rotations"`
	XRotations   *keysDoc `yaml:"xRotations"`
	YRotations   *keysDoc `yaml:"yRotations"`
	ZRotations   *keysDoc `yaml:"zRotations"`
	AxisOrder    string   `yaml:"axisOrder"`
	Translations *keysDoc `yaml:"translations"`
	Scales       *keysDoc `yaml:"scales"`
}

type visKeyDoc struct {
	Time    float32 `yaml:"time"`
	Visible bool    `yaml:"visible"`
}

type morphDoc struct {
	Name string   `yaml:"name"`
	Keys *keysDoc `yaml:"keys"`
}

type pathDoc struct {
	Positions *keysDoc `yaml:"positions"`
	Percent   *keysDoc `yaml:"percent"`
	Flags     uint16   `yaml:"flags"`
}

type emitWindowDoc struct {
	Start float32 `yaml:"start"`
	Stop  float32 `yaml:"stop"`
}
