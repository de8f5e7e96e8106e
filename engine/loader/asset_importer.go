package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-nif/common"
	"github.com/Carmen-Shannon/oxy-nif/engine/controller"
	"github.com/Carmen-Shannon/oxy-nif/engine/keyframe"
	"github.com/Carmen-Shannon/oxy-nif/engine/material"
	"github.com/Carmen-Shannon/oxy-nif/engine/nif"
	"github.com/Carmen-Shannon/oxy-nif/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// pendingController is a validated controller record waiting to be constructed and attached.
type pendingController struct {
	node     scene.Node
	kind     controller.Kind
	rec      nif.Record
	baseMat  material.Material
	textures []*common.ImportedTexture
	units    []int
	hideMask uint32
}

// assetImporter converts a decoded asset description into a scene graph and
// its pending controllers. One importer is used per asset.
type assetImporter struct {
	asset     string
	textures  map[string]*common.ImportedTexture
	materials map[string]material.Material
	pending   []pendingController
	report    func(Issue)
}

func newAssetImporter(asset string, report func(Issue)) *assetImporter {
	return &assetImporter{
		asset:     asset,
		textures:  make(map[string]*common.ImportedTexture),
		materials: make(map[string]material.Material),
		report:    report,
	}
}

func (im *assetImporter) issue(node string, kind string, format string, args ...any) {
	im.report(Issue{Asset: im.asset, Node: node, Controller: kind, Message: fmt.Sprintf(format, args...)})
}

// Import builds the node tree of doc. Controller records are validated and
// queued in document order; malformed keys, names and node types fail the import.
//
// Parameters:
//   - doc: the decoded asset description
//
// Returns:
//   - scene.Node: the root of the new graph
//   - error: error if the description is malformed
func (im *assetImporter) Import(doc *assetDoc) (scene.Node, error) {
	for i := range doc.Textures {
		td := &doc.Textures[i]
		sampler, err := samplerFromDoc(td.Sampler)
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", td.Name, err)
		}
		name := textureName(td)
		im.textures[name] = &common.ImportedTexture{Name: name, Path: td.Path, SamplerData: sampler}
	}

	for i := range doc.Materials {
		md := &doc.Materials[i]
		im.materials[md.Name] = materialFromDoc(md)
	}

	return im.importNode(doc.Root)
}

func (im *assetImporter) importNode(d *nodeDoc) (scene.Node, error) {
	if d == nil {
		return nil, fmt.Errorf("null node")
	}

	var n scene.Node
	switch strings.ToLower(d.Type) {
	case "", "group":
		n = scene.NewGroup(d.Name)
	case "transform":
		var opts []scene.TransformBuilderOption
		if d.Translation != nil {
			opts = append(opts, scene.WithTranslation(common.Vec3(*d.Translation)))
		}
		if d.Rotation != nil {
			opts = append(opts, scene.WithRotation(common.Quat(*d.Rotation).Normalize()))
		}
		if d.Scale != nil {
			opts = append(opts, scene.WithScale(*d.Scale))
		}
		n = scene.NewTransform(d.Name, opts...)
	case "morph":
		n = scene.NewMorphGeometry(d.Name, d.MorphTargets...)
	case "particles":
		n = scene.NewParticleProcessor(d.Name)
	default:
		return nil, fmt.Errorf("node %q: unknown node type %q", d.Name, d.Type)
	}

	if d.Mask != nil {
		n.SetNodeMask(*d.Mask)
	}

	if d.Material != "" || len(d.Textures) > 0 {
		ss := material.NewStateSet()
		if d.Material != "" {
			m, ok := im.materials[d.Material]
			if !ok {
				return nil, fmt.Errorf("node %q: unknown material %q", d.Name, d.Material)
			}
			ss.SetMaterial(m.Clone())
		}
		for unit, texName := range d.Textures {
			tex, ok := im.textures[texName]
			if !ok {
				return nil, fmt.Errorf("node %q: unknown texture %q", d.Name, texName)
			}
			ss.SetTexture(unit, tex)
		}
		n.SetStateSet(ss)
	}

	for i := range d.Controllers {
		if err := im.queueController(n, &d.Controllers[i]); err != nil {
			return nil, fmt.Errorf("node %q controller %d: %w", d.Name, i, err)
		}
	}

	for _, cd := range d.Children {
		child, err := im.importNode(cd)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

// queueController builds and validates one record. Inactive records are reported and dropped.
func (im *assetImporter) queueController(n scene.Node, d *controllerDoc) error {
	kind, err := parseKind(d.Type)
	if err != nil {
		return err
	}
	rec, err := recordFromDoc(kind, d)
	if err != nil {
		return err
	}

	if !rec.Base().Active() {
		im.issue(n.Name(), kind.String(), "inactive controller skipped")
		return nil
	}
	if err := rec.Validate(); err != nil {
		im.issue(n.Name(), kind.String(), "%v", err)
	}

	p := pendingController{node: n, kind: kind, rec: rec, units: d.Units, hideMask: d.HideMask}
	if ss := n.StateSet(); ss != nil {
		p.baseMat = ss.Material()
	}
	for _, name := range d.Textures {
		tex, ok := im.textures[name]
		if !ok {
			im.issue(n.Name(), kind.String(), "unknown texture %q dropped", name)
			continue
		}
		p.textures = append(p.textures, tex)
	}
	im.pending = append(im.pending, p)
	return nil
}

// newController constructs the controller for a pending record.
func newController(p *pendingController) controller.Controller {
	switch rec := p.rec.(type) {
	case *nif.KeyframeController:
		return controller.NewKeyframeController(rec)
	case *nif.RollController:
		return controller.NewRollController(rec)
	case *nif.PathController:
		return controller.NewPathController(rec)
	case *nif.UVController:
		units := p.units
		if len(units) == 0 {
			units = []int{0}
		}
		return controller.NewUVController(rec, units)
	case *nif.AlphaController:
		return controller.NewAlphaController(rec, p.baseMat)
	case *nif.MaterialColorController:
		return controller.NewMaterialColorController(rec, p.baseMat)
	case *nif.FlipController:
		return controller.NewFlipController(rec, p.textures)
	case *nif.VisController:
		return controller.NewVisController(rec, p.hideMask)
	case *nif.ParticleSystemController:
		return controller.NewParticleSystemController(rec)
	case *nif.GeomMorpherController:
		return controller.NewGeomMorpherController(rec)
	default:
		return nil
	}
}

// parseKind resolves a controller type name such as "keyframe" or "geom-morpher".
// textureName keys a texture by its declared name, or by its file stem when unnamed.
func textureName(td *textureDoc) string {
	if td.Name != "" {
		return td.Name
	}
	return strings.TrimSuffix(filepath.Base(td.Path), filepath.Ext(td.Path))
}

func parseKind(s string) (controller.Kind, error) {
	name := strings.ToLower(s)
	for k := controller.KindKeyframe; k <= controller.KindGeomMorpher; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown controller type %q", s)
}

func parseExtrapolation(s string) (nif.ExtrapolationMode, error) {
	switch strings.ToLower(s) {
	case "", "cycle", "loop":
		return nif.ExtrapolationCycle, nil
	case "reverse":
		return nif.ExtrapolationReverse, nil
	case "constant", "clamp":
		return nif.ExtrapolationConstant, nil
	default:
		return 0, fmt.Errorf("unknown extrapolation %q", s)
	}
}

func parseTargetColor(s string) (nif.TargetColor, error) {
	name := strings.ToLower(s)
	if name == "" {
		return nif.TargetAmbient, nil
	}
	for c := nif.TargetAmbient; c <= nif.TargetEmissive; c++ {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown target color %q", s)
}

func parseInterpolation(s string) (keyframe.InterpolationType, error) {
	switch strings.ToLower(s) {
	case "", "linear":
		return keyframe.InterpolationLinear, nil
	case "quadratic":
		return keyframe.InterpolationQuadratic, nil
	case "tbc":
		return keyframe.InterpolationTBC, nil
	case "constant", "step":
		return keyframe.InterpolationConstant, nil
	default:
		return keyframe.InterpolationUnknown, fmt.Errorf("unknown interpolation %q", s)
	}
}

// baseRecordFromDoc fills the shared controller fields. Frequency defaults to 1
// and controllers are active unless marked otherwise.
func baseRecordFromDoc(d *controllerDoc) (nif.Controller, error) {
	mode, err := parseExtrapolation(d.Extrapolation)
	if err != nil {
		return nif.Controller{}, err
	}
	freq := float32(1)
	if d.Frequency != nil {
		freq = *d.Frequency
	}
	active := d.Active == nil || *d.Active
	return nif.Controller{
		Frequency: freq,
		Phase:     d.Phase,
		TimeStart: d.Start,
		TimeStop:  d.Stop,
		Flags:     nif.NewFlags(mode, active),
	}, nil
}

// recordFromDoc builds the typed record for kind.
func recordFromDoc(kind controller.Kind, d *controllerDoc) (nif.Record, error) {
	base, err := baseRecordFromDoc(d)
	if err != nil {
		return nil, err
	}

	var interp nif.Interpolator
	if d.Interpolator != nil {
		if interp, err = interpolatorFromDoc(d.Interpolator); err != nil {
			return nil, fmt.Errorf("interpolator: %w", err)
		}
	}

	switch kind {
	case controller.KindKeyframe:
		data, err := keyframeDataFromDoc(d.Transform)
		if err != nil {
			return nil, err
		}
		return &nif.KeyframeController{Controller: base, Interpolator: interp, Data: data}, nil

	case controller.KindRoll, controller.KindAlpha:
		var data *nif.FloatData
		if d.Keys != nil {
			seq, err := floatSequence(d.Keys)
			if err != nil {
				return nil, err
			}
			data = &nif.FloatData{KeyList: seq}
		}
		if kind == controller.KindRoll {
			return &nif.RollController{Controller: base, Interpolator: interp, Data: data}, nil
		}
		return &nif.AlphaController{Controller: base, Interpolator: interp, Data: data}, nil

	case controller.KindMaterialColor:
		target, err := parseTargetColor(d.Target)
		if err != nil {
			return nil, err
		}
		var data *nif.PosData
		if d.Keys != nil {
			seq, err := vec3Sequence(d.Keys)
			if err != nil {
				return nil, err
			}
			data = &nif.PosData{KeyList: seq}
		}
		return &nif.MaterialColorController{Controller: base, Interpolator: interp, Data: data, TargetColor: target}, nil

	case controller.KindPath:
		rec := &nif.PathController{Controller: base}
		if d.Path != nil {
			rec.PathFlags = d.Path.Flags
			if d.Path.Positions != nil {
				seq, err := vec3Sequence(d.Path.Positions)
				if err != nil {
					return nil, fmt.Errorf("path positions: %w", err)
				}
				rec.PosData = &nif.PosData{KeyList: seq}
			}
			if d.Path.Percent != nil {
				seq, err := floatSequence(d.Path.Percent)
				if err != nil {
					return nil, fmt.Errorf("path percent: %w", err)
				}
				rec.FloatData = &nif.FloatData{KeyList: seq}
			}
		}
		return rec, nil

	case controller.KindUV:
		if len(d.UV) > 4 {
			return nil, fmt.Errorf("uv controller has %d tracks, at most 4", len(d.UV))
		}
		rec := &nif.UVController{Controller: base}
		if len(d.UV) > 0 {
			rec.Data = &nif.UVData{}
			for i, kd := range d.UV {
				seq, err := floatSequence(kd)
				if err != nil {
					return nil, fmt.Errorf("uv track %d: %w", i, err)
				}
				rec.Data.KeyList[i] = seq
			}
		}
		return rec, nil

	case controller.KindFlip:
		return &nif.FlipController{Controller: base, Interpolator: interp, Delta: d.Delta, Sources: d.Textures}, nil

	case controller.KindVis:
		rec := &nif.VisController{Controller: base, Interpolator: interp}
		if len(d.Vis) > 0 {
			rec.Data = &nif.VisData{Vis: make([]nif.VisKey, len(d.Vis))}
			for i, k := range d.Vis {
				rec.Data.Vis[i] = nif.VisKey{Time: k.Time, IsSet: k.Visible}
			}
		}
		return rec, nil

	case controller.KindParticleSystem:
		rec := &nif.ParticleSystemController{Controller: base}
		if d.Emit != nil {
			rec.StartTime, rec.StopTime = d.Emit.Start, d.Emit.Stop
		}
		return rec, nil

	case controller.KindGeomMorpher:
		rec := &nif.GeomMorpherController{Controller: base, Weights: d.Weights}
		for i, id := range d.Interpolators {
			mi, err := interpolatorFromDoc(id)
			if err != nil {
				return nil, fmt.Errorf("morph interpolator %d: %w", i, err)
			}
			rec.Interpolators = append(rec.Interpolators, mi)
		}
		if len(d.Morphs) > 0 {
			rec.Data = &nif.MorphData{Morphs: make([]nif.Morph, len(d.Morphs))}
			for i, md := range d.Morphs {
				seq, err := floatSequence(md.Keys)
				if err != nil {
					return nil, fmt.Errorf("morph %q: %w", md.Name, err)
				}
				rec.Data.Morphs[i] = nif.Morph{Name: md.Name, KeyFrames: seq}
			}
		}
		return rec, nil
	}
	return nil, fmt.Errorf("unsupported controller type %s", kind)
}

// interpolatorFromDoc builds an interpolator block. A nil doc is an absent slot.
func interpolatorFromDoc(d *interpolatorDoc) (nif.Interpolator, error) {
	if d == nil {
		return nil, nil
	}
	switch strings.ToLower(d.Type) {
	case "float":
		out := &nif.FloatInterpolator{}
		if len(d.Default) > 0 {
			out.DefaultValue = d.Default[0]
		}
		if d.Keys != nil {
			seq, err := floatSequence(d.Keys)
			if err != nil {
				return nil, err
			}
			out.Data = &nif.FloatData{KeyList: seq}
		}
		return out, nil
	case "point3":
		out := &nif.Point3Interpolator{}
		if len(d.Default) > 0 {
			v, err := vec3Value(d.Default)
			if err != nil {
				return nil, fmt.Errorf("default: %w", err)
			}
			out.DefaultValue = v
		}
		if d.Keys != nil {
			seq, err := vec3Sequence(d.Keys)
			if err != nil {
				return nil, err
			}
			out.Data = &nif.PosData{KeyList: seq}
		}
		return out, nil
	case "bool":
		out := &nif.BoolInterpolator{}
		if len(d.Default) > 0 {
			out.DefaultValue = d.Default[0] != 0
		}
		if d.Keys != nil {
			seq, err := boolSequence(d.Keys)
			if err != nil {
				return nil, err
			}
			out.Data = &nif.BoolData{KeyList: seq}
		}
		return out, nil
	case "transform":
		out := &nif.TransformInterpolator{DefaultRot: common.IdentityQuat(), DefaultScale: 1}
		if d.DefaultPos != nil {
			out.DefaultPos = common.Vec3(*d.DefaultPos)
		}
		if d.DefaultRot != nil {
			out.DefaultRot = common.Quat(*d.DefaultRot).Normalize()
		}
		if d.DefaultScale != nil {
			out.DefaultScale = *d.DefaultScale
		}
		data, err := keyframeDataFromDoc(d.Transform)
		if err != nil {
			return nil, err
		}
		out.Data = data
		return out, nil
	default:
		return nil, fmt.Errorf("unknown interpolator type %q", d.Type)
	}
}

func keyframeDataFromDoc(d *transformDoc) (*nif.KeyframeData, error) {
	if d == nil {
		return nil, nil
	}
	out := &nif.KeyframeData{}
	var err error
	if d.AxisOrder != "" {
		if out.AxisOrder, err = nif.ParseAxisOrder(strings.ToUpper(d.AxisOrder)); err != nil {
			return nil, err
		}
	}
	if out.Rotations, err = quatSequence(d.Rotations); err != nil {
		return nil, fmt.Errorf("rotations: %w", err)
	}
	if out.XRotations, err = floatSequence(d.XRotations); err != nil {
		return nil, fmt.Errorf("x rotations: %w", err)
	}
	if out.YRotations, err = floatSequence(d.YRotations); err != nil {
		return nil, fmt.Errorf("y rotations: %w", err)
	}
	if out.ZRotations, err = floatSequence(d.ZRotations); err != nil {
		return nil, fmt.Errorf("z rotations: %w", err)
	}
	if out.Translations, err = vec3Sequence(d.Translations); err != nil {
		return nil, fmt.Errorf("translations: %w", err)
	}
	if out.Scales, err = floatSequence(d.Scales); err != nil {
		return nil, fmt.Errorf("scales: %w", err)
	}
	return out, nil
}

// sequence converts a key track. A nil doc yields a nil sequence, which samples as empty.
func sequence[T keyframe.Value](d *keysDoc, width int, conv func([]float32) T) (*keyframe.Sequence[T], error) {
	if d == nil {
		return nil, nil
	}
	kind, err := parseInterpolation(d.Interpolation)
	if err != nil {
		return nil, err
	}
	keys := make([]keyframe.Key[T], len(d.Keys))
	for i, kd := range d.Keys {
		if len(kd.Value) != width {
			return nil, fmt.Errorf("key %d: want %d components, got %d", i, width, len(kd.Value))
		}
		keys[i] = keyframe.Key[T]{
			Time:       kd.Time,
			Value:      conv(kd.Value),
			Tension:    kd.Tension,
			Bias:       kd.Bias,
			Continuity: kd.Continuity,
		}
		if len(kd.In) == width {
			keys[i].InTan = conv(kd.In)
		}
		if len(kd.Out) == width {
			keys[i].OutTan = conv(kd.Out)
		}
	}
	return keyframe.NewSequence(kind, keys)
}

func floatSequence(d *keysDoc) (*keyframe.FloatSequence, error) {
	return sequence(d, 1, func(v []float32) float32 { return v[0] })
}

func vec3Sequence(d *keysDoc) (*keyframe.Vec3Sequence, error) {
	return sequence(d, 3, func(v []float32) common.Vec3 { return common.Vec3{v[0], v[1], v[2]} })
}

func quatSequence(d *keysDoc) (*keyframe.QuatSequence, error) {
	return sequence(d, 4, func(v []float32) common.Quat { return common.Quat{v[0], v[1], v[2], v[3]}.Normalize() })
}

func boolSequence(d *keysDoc) (*keyframe.BoolSequence, error) {
	return sequence(d, 1, func(v []float32) bool { return v[0] != 0 })
}

func vec3Value(v []float32) (common.Vec3, error) {
	if len(v) != 3 {
		return common.Vec3{}, fmt.Errorf("want 3 components, got %d", len(v))
	}
	return common.Vec3{v[0], v[1], v[2]}, nil
}

func materialFromDoc(d *materialDoc) material.Material {
	opts := []material.MaterialBuilderOption{material.WithName(d.Name), material.WithShininess(d.Shininess)}
	if d.Ambient != nil {
		opts = append(opts, material.WithAmbient(common.Vec4(*d.Ambient)))
	}
	if d.Diffuse != nil {
		opts = append(opts, material.WithDiffuse(common.Vec4(*d.Diffuse)))
	}
	if d.Specular != nil {
		opts = append(opts, material.WithSpecular(common.Vec4(*d.Specular)))
	}
	if d.Emission != nil {
		opts = append(opts, material.WithEmission(common.Vec4(*d.Emission)))
	}
	return material.NewMaterial(opts...)
}

// samplerFromDoc maps sampler names onto wgpu modes. A nil doc keeps the default sampler.
func samplerFromDoc(d *samplerDoc) (*common.SamplerStagingData, error) {
	s := common.DefaultSamplerData()
	if d == nil {
		return s, nil
	}
	switch strings.ToLower(d.Address) {
	case "", "repeat":
	case "clamp":
		s.AddressModeU, s.AddressModeV, s.AddressModeW = wgpu.AddressModeClampToEdge, wgpu.AddressModeClampToEdge, wgpu.AddressModeClampToEdge
	case "mirror":
		s.AddressModeU, s.AddressModeV, s.AddressModeW = wgpu.AddressModeMirrorRepeat, wgpu.AddressModeMirrorRepeat, wgpu.AddressModeMirrorRepeat
	default:
		return nil, fmt.Errorf("unknown address mode %q", d.Address)
	}
	switch strings.ToLower(d.Filter) {
	case "", "linear":
	case "nearest":
		s.MagFilter, s.MinFilter = wgpu.FilterModeNearest, wgpu.FilterModeNearest
	default:
		return nil, fmt.Errorf("unknown filter %q", d.Filter)
	}
	switch strings.ToLower(d.Mipmap) {
	case "", "linear":
	case "nearest":
		s.MipmapFilter = wgpu.MipmapFilterModeNearest
	default:
		return nil, fmt.Errorf("unknown mipmap filter %q", d.Mipmap)
	}
	return s, nil
}
