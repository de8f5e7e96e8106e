package controller

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-nif/common"
	"github.com/Carmen-Shannon/oxy-nif/engine/keyframe"
	"github.com/Carmen-Shannon/oxy-nif/engine/material"
	"github.com/Carmen-Shannon/oxy-nif/engine/nif"
	"github.com/chewxy/math32"
)

const epsilon = 1e-4

func approx(a, b float32) bool {
	return math32.Abs(a-b) <= epsilon
}

func approxVec3(a, b common.Vec3) bool {
	return approx(a[0], b[0]) && approx(a[1], b[1]) && approx(a[2], b[2])
}

// sameRotation treats q and -q as equal.
func sameRotation(a, b common.Quat) bool {
	return approx(math32.Abs(a.Dot(b)), 1)
}

// window returns an active controller header with unit frequency over [start, stop].
func window(start, stop float32, mode nif.ExtrapolationMode) nif.Controller {
	return nif.Controller{Frequency: 1, TimeStart: start, TimeStop: stop, Flags: nif.NewFlags(mode, true)}
}

type fakeVisit struct {
	now        float64
	traversed  int
	onTraverse func()
}

func (v *fakeVisit) SimulationTime() float64 { return v.now }

func (v *fakeVisit) Traverse() {
	v.traversed++
	if v.onTraverse != nil {
		v.onTraverse()
	}
}

type fakeTransform struct {
	rotation    common.Quat
	translation common.Vec3
	scale       float32
	rest        common.Quat
	writes      int
}

func newFakeTransform() *fakeTransform {
	return &fakeTransform{rotation: common.IdentityQuat(), rest: common.IdentityQuat(), scale: 1}
}

func (n *fakeTransform) SetRotation(q common.Quat) { n.rotation = q; n.writes++ }
func (n *fakeTransform) SetTranslation(v common.Vec3) { n.translation = v; n.writes++ }
func (n *fakeTransform) SetScale(s float32) { n.scale = s; n.writes++ }
func (n *fakeTransform) RestRotation() common.Quat { return n.rest }
func (n *fakeTransform) PreMultRotation(q common.Quat) {
	n.rotation = n.rotation.Mul(q)
	n.writes++
}

type fakeStateSetNode struct {
	ss *material.StateSet
}

func (n *fakeStateSetNode) StateSet() *material.StateSet { return n.ss }

type fakeMaskNode struct {
	mask   uint32
	writes int
}

func (n *fakeMaskNode) SetNodeMask(mask uint32) { n.mask = mask; n.writes++ }

type fakeParticleSystem struct {
	frozen bool
}

func (p *fakeParticleSystem) SetFrozen(frozen bool) { p.frozen = frozen }

type fakeProcessor struct {
	enabled bool
	ps      *fakeParticleSystem
}

func (n *fakeProcessor) SetEnabled(enabled bool) { n.enabled = enabled }
func (n *fakeProcessor) ParticleSystem() ParticleSystem { return n.ps }

type fakeMorphTarget struct {
	weight float32
	sets   int
}

func (m *fakeMorphTarget) Weight() float32 { return m.weight }
func (m *fakeMorphTarget) SetWeight(w float32) { m.weight = w; m.sets++ }

type fakeMorphGeometry struct {
	targets []*fakeMorphTarget
	dirty   int
}

func newFakeMorphGeometry(n int) *fakeMorphGeometry {
	g := &fakeMorphGeometry{}
	for i := 0; i < n; i++ {
		g.targets = append(g.targets, &fakeMorphTarget{})
	}
	return g
}

func (g *fakeMorphGeometry) MorphTarget(i int) MorphTarget { return g.targets[i] }
func (g *fakeMorphGeometry) MorphTargetCount() int { return len(g.targets) }
func (g *fakeMorphGeometry) Dirty() { g.dirty++ }

func floatSeq(t *testing.T, kind keyframe.InterpolationType, keys ...keyframe.Key[float32]) *keyframe.FloatSequence {
	t.Helper()
	s, err := keyframe.NewSequence(kind, keys)
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	return s
}

func vec3Seq(t *testing.T, keys ...keyframe.Key[common.Vec3]) *keyframe.Vec3Sequence {
	t.Helper()
	s, err := keyframe.NewSequence(keyframe.InterpolationLinear, keys)
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	return s
}

func quatSeq(t *testing.T, keys ...keyframe.Key[common.Quat]) *keyframe.QuatSequence {
	t.Helper()
	s, err := keyframe.NewSequence(keyframe.InterpolationLinear, keys)
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	return s
}

func boolSeq(t *testing.T, keys ...keyframe.Key[bool]) *keyframe.BoolSequence {
	t.Helper()
	s, err := keyframe.NewSequence(keyframe.InterpolationLinear, keys)
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	return s
}

func fk(time, value float32) keyframe.Key[float32] {
	return keyframe.Key[float32]{Time: time, Value: value}
}
