package scene

import (
	"github.com/Carmen-Shannon/oxy-nif/common"
	"github.com/Carmen-Shannon/oxy-nif/engine/controller"
)

// Transform is a node with a local rotation, translation and uniform scale.
type Transform struct {
	Group
	rotation    common.Quat
	translation common.Vec3
	scale       float32
	rest        common.Quat
}

var (
	_ Node                       = &Transform{}
	_ controller.TransformTarget = &Transform{}
)

// TransformBuilderOption is a functional option for configuring a Transform.
type TransformBuilderOption func(t *Transform)

// WithRotation sets the loaded rotation, which is also the rest rotation.
//
// Parameters:
//   - q: the rotation
//
// Returns:
//   - TransformBuilderOption: option function to apply
func WithRotation(q common.Quat) TransformBuilderOption {
	return func(t *Transform) {
		t.rotation = q
		t.rest = q
	}
}

// WithTranslation sets the loaded translation.
//
// Parameters:
//   - v: the translation
//
// Returns:
//   - TransformBuilderOption: option function to apply
func WithTranslation(v common.Vec3) TransformBuilderOption {
	return func(t *Transform) {
		t.translation = v
	}
}

// WithScale sets the loaded uniform scale.
//
// Parameters:
//   - s: the scale
//
// Returns:
//   - TransformBuilderOption: option function to apply
func WithScale(s float32) TransformBuilderOption {
	return func(t *Transform) {
		t.scale = s
	}
}

// NewTransform creates a Transform at the identity.
//
// Parameters:
//   - name: the node name
//   - options: functional options to configure the loaded transform
//
// Returns:
//   - *Transform: the new node
func NewTransform(name string, options ...TransformBuilderOption) *Transform {
	t := &Transform{
		Group:    *newGroup(name),
		rotation: common.IdentityQuat(),
		rest:     common.IdentityQuat(),
		scale:    1,
	}
	t.self = t
	for _, opt := range options {
		opt(t)
	}
	return t
}

func (t *Transform) Rotation() common.Quat {
	return t.rotation
}

func (t *Transform) SetRotation(q common.Quat) {
	t.rotation = q
}

func (t *Transform) Translation() common.Vec3 {
	return t.translation
}

func (t *Transform) SetTranslation(v common.Vec3) {
	t.translation = v
}

func (t *Transform) Scale() float32 {
	return t.scale
}

func (t *Transform) SetScale(s float32) {
	t.scale = s
}

func (t *Transform) RestRotation() common.Quat {
	return t.rest
}

// PreMultRotation applies q in the node's local frame before the current rotation.
func (t *Transform) PreMultRotation(q common.Quat) {
	t.rotation = t.rotation.Mul(q).Normalize()
}

// Matrix returns the local matrix translation * rotation * scale.
func (t *Transform) Matrix() common.Mat4 {
	tr := common.TranslateMat4(t.translation)
	r := common.RotationMat4(t.rotation)
	s := common.ScaleMat4(common.Vec3{t.scale, t.scale, t.scale})
	var m common.Mat4
	common.Mul4(m[:], r[:], s[:])
	common.Mul4(m[:], tr[:], m[:])
	return m
}

func (t *Transform) clone() Node {
	dup := &Transform{
		rotation:    t.rotation,
		translation: t.translation,
		scale:       t.scale,
		rest:        t.rest,
	}
	dup.self = dup
	t.Group.copyInto(&dup.Group)
	return dup
}

// MorphTarget is one named, weighted shape of a MorphGeometry.
type MorphTarget struct {
	name   string
	weight float32
}

// Name returns the morph target name.
func (m *MorphTarget) Name() string {
	return m.name
}

func (m *MorphTarget) Weight() float32 {
	return m.weight
}

func (m *MorphTarget) SetWeight(w float32) {
	m.weight = w
}

// MorphGeometry is a leaf geometry blending indexed morph targets. Target 0 is the base shape.
type MorphGeometry struct {
	Group
	targets []*MorphTarget
	dirty   bool
}

var (
	_ Node                           = &MorphGeometry{}
	_ controller.MorphGeometryTarget = &MorphGeometry{}
)

// NewMorphGeometry creates a MorphGeometry with one target per name. The base
// shape starts at weight 1, the others at 0.
//
// Parameters:
//   - name: the node name
//   - targetNames: the morph target names, base shape first
//
// Returns:
//   - *MorphGeometry: the new node
func NewMorphGeometry(name string, targetNames ...string) *MorphGeometry {
	g := &MorphGeometry{Group: *newGroup(name)}
	g.self = g
	for i, n := range targetNames {
		mt := &MorphTarget{name: n}
		if i == 0 {
			mt.weight = 1
		}
		g.targets = append(g.targets, mt)
	}
	return g
}

func (g *MorphGeometry) MorphTarget(i int) controller.MorphTarget {
	return g.targets[i]
}

func (g *MorphGeometry) MorphTargetCount() int {
	return len(g.targets)
}

// Target returns the i-th morph target.
func (g *MorphGeometry) Target(i int) *MorphTarget {
	return g.targets[i]
}

func (g *MorphGeometry) Dirty() {
	g.dirty = true
}

// IsDirty reports whether weights changed since the last ClearDirty.
func (g *MorphGeometry) IsDirty() bool {
	return g.dirty
}

// ClearDirty resets the dirty flag once the geometry has been re-blended.
func (g *MorphGeometry) ClearDirty() {
	g.dirty = false
}

func (g *MorphGeometry) clone() Node {
	dup := &MorphGeometry{dirty: g.dirty}
	dup.self = dup
	dup.targets = make([]*MorphTarget, len(g.targets))
	for i, mt := range g.targets {
		c := *mt
		dup.targets[i] = &c
	}
	g.Group.copyInto(&dup.Group)
	return dup
}

// ParticleSystem is the simulation state of a particle processor.
type ParticleSystem struct {
	frozen bool
}

// Frozen reports whether the simulation is halted.
func (p *ParticleSystem) Frozen() bool {
	return p.frozen
}

func (p *ParticleSystem) SetFrozen(frozen bool) {
	p.frozen = frozen
}

// ParticleProcessor is a node emitting into a particle system.
type ParticleProcessor struct {
	Group
	enabled bool
	system  *ParticleSystem
}

var (
	_ Node                               = &ParticleProcessor{}
	_ controller.ParticleProcessorTarget = &ParticleProcessor{}
)

// NewParticleProcessor creates an enabled ParticleProcessor with a running system.
func NewParticleProcessor(name string) *ParticleProcessor {
	p := &ParticleProcessor{Group: *newGroup(name), enabled: true, system: &ParticleSystem{}}
	p.self = p
	return p
}

// Enabled reports whether the processor emits.
func (p *ParticleProcessor) Enabled() bool {
	return p.enabled
}

func (p *ParticleProcessor) SetEnabled(enabled bool) {
	p.enabled = enabled
}

func (p *ParticleProcessor) ParticleSystem() controller.ParticleSystem {
	return p.system
}

// System returns the concrete particle system.
func (p *ParticleProcessor) System() *ParticleSystem {
	return p.system
}

func (p *ParticleProcessor) clone() Node {
	sys := *p.system
	dup := &ParticleProcessor{enabled: p.enabled, system: &sys}
	dup.self = dup
	p.Group.copyInto(&dup.Group)
	return dup
}
