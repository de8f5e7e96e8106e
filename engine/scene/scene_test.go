package scene

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-nif/common"
	"github.com/Carmen-Shannon/oxy-nif/engine/controller"
	"github.com/Carmen-Shannon/oxy-nif/engine/keyframe"
	"github.com/Carmen-Shannon/oxy-nif/engine/nif"
)

// recorder is a controller that logs entry and exit around its traversal.
type recorder struct {
	name     string
	prec     int
	log      *[]string
	traverse int
	input    controller.InputSource
}

func newRecorder(name string, prec int, log *[]string) *recorder {
	return &recorder{name: name, prec: prec, log: log, traverse: 1}
}

func (r *recorder) Kind() controller.Kind { return controller.KindVis }

func (r *recorder) Capability() controller.Capability { return controller.CapabilityNodeMask }

func (r *recorder) Source() controller.Source { return controller.SourceLegacy }

func (r *recorder) Function() controller.TimeFunction { return controller.IdentityFunction() }

func (r *recorder) SetFunction(controller.TimeFunction) {}

func (r *recorder) HasInput() bool { return r.input != nil }

func (r *recorder) Input() controller.InputSource { return r.input }

func (r *recorder) SetInput(in controller.InputSource) { r.input = in }

func (r *recorder) Precedence() int { return r.prec }

func (r *recorder) Clone() controller.Controller {
	dup := *r
	return &dup
}

func (r *recorder) Apply(_ any, v controller.Visit) {
	*r.log = append(*r.log, r.name)
	for i := 0; i < r.traverse; i++ {
		v.Traverse()
	}
	*r.log = append(*r.log, r.name+"/")
}

func window(start, stop float32) nif.Controller {
	return nif.Controller{Frequency: 1, TimeStart: start, TimeStop: stop, Flags: nif.NewFlags(nif.ExtrapolationConstant, true)}
}

func mustSeq[T keyframe.Value](t *testing.T, keys ...keyframe.Key[T]) *keyframe.Sequence[T] {
	t.Helper()
	s, err := keyframe.NewSequence(keyframe.InterpolationLinear, keys)
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	return s
}

func mustAdd(t *testing.T, n Node, c controller.Controller) {
	t.Helper()
	if err := n.AddController(c); err != nil {
		t.Fatalf("AddController: %v", err)
	}
}

func TestChainOrder(t *testing.T) {
	tests := []struct {
		name     string
		traverse map[string]int
		want     string
	}{
		{"nested", nil, "b c a d d/ a/ c/ b/"},
		{"no traverse", map[string]int{"b": 0}, "b b/ c a d d/ a/ c/"},
		{"double traverse", map[string]int{"c": 2}, "b c a d d/ a/ c/ b/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []string
			parent := NewGroup("parent")
			child := NewGroup("child")
			parent.AddChild(child)

			recs := map[string]*recorder{
				"a": newRecorder("a", 20, &log),
				"b": newRecorder("b", 10, &log),
				"c": newRecorder("c", 10, &log),
				"d": newRecorder("d", 0, &log),
			}
			for name, n := range tt.traverse {
				recs[name].traverse = n
			}
			mustAdd(t, parent, recs["a"])
			mustAdd(t, parent, recs["b"])
			mustAdd(t, parent, recs["c"])
			mustAdd(t, child, recs["d"])

			v := newVisitor(0)
			v.visit(parent)
			if got := strings.Join(log, " "); got != tt.want {
				t.Errorf("log = %q want %q", got, tt.want)
			}
			if v.invocations != 4 {
				t.Errorf("invocations = %d want 4", v.invocations)
			}
		})
	}
}

func TestAddControllerCapability(t *testing.T) {
	keyframeCtrl := func() controller.Controller {
		return controller.NewKeyframeController(&nif.KeyframeController{})
	}
	particleCtrl := func() controller.Controller {
		return controller.NewParticleSystemController(&nif.ParticleSystemController{})
	}
	morphCtrl := func() controller.Controller {
		return controller.NewGeomMorpherController(&nif.GeomMorpherController{})
	}
	visCtrl := func() controller.Controller {
		return controller.NewVisController(&nif.VisController{}, 0)
	}

	tests := []struct {
		name    string
		node    Node
		ctrl    controller.Controller
		wantErr bool
	}{
		{"keyframe on transform", NewTransform("t"), keyframeCtrl(), false},
		{"keyframe on group", NewGroup("g"), keyframeCtrl(), true},
		{"vis on group", NewGroup("g"), visCtrl(), false},
		{"vis on transform", NewTransform("t"), visCtrl(), false},
		{"particles on processor", NewParticleProcessor("p"), particleCtrl(), false},
		{"particles on transform", NewTransform("t"), particleCtrl(), true},
		{"morph on geometry", NewMorphGeometry("m", "base"), morphCtrl(), false},
		{"morph on group", NewGroup("g"), morphCtrl(), true},
		{"nil", NewGroup("g"), nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.AddController(tt.ctrl)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddController err = %v wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && len(tt.node.Controllers()) != 0 {
				t.Errorf("rejected controller was attached")
			}
		})
	}
}

func TestAddControllerInstallsDefaults(t *testing.T) {
	g := NewGroup("g")
	uv := controller.NewUVController(&nif.UVController{Controller: window(0, 1), Data: &nif.UVData{}}, []int{0})
	mustAdd(t, g, uv)
	if g.StateSet() == nil {
		t.Fatalf("state set not created on attach")
	}
	if g.StateSet().TexMat(0) == nil {
		t.Errorf("texture matrix not installed")
	}
}

func TestKeyframeWinsOverPath(t *testing.T) {
	node := NewTransform("walker")
	path := controller.NewPathController(&nif.PathController{
		Controller: window(0, 10),
		PosData: &nif.PosData{KeyList: mustSeq(t,
			keyframe.Key[common.Vec3]{Time: 0, Value: common.Vec3{0, 0, 0}},
			keyframe.Key[common.Vec3]{Time: 1, Value: common.Vec3{10, 0, 0}},
		)},
		FloatData: &nif.FloatData{KeyList: mustSeq(t,
			keyframe.Key[float32]{Time: 0, Value: 0},
			keyframe.Key[float32]{Time: 10, Value: 0.9},
		)},
	})
	key := controller.NewKeyframeController(&nif.KeyframeController{
		Controller: window(0, 10),
		Data: &nif.KeyframeData{Translations: mustSeq(t,
			keyframe.Key[common.Vec3]{Time: 0, Value: common.Vec3{0, 7, 0}},
		)},
	})
	mustAdd(t, node, key)
	mustAdd(t, node, path)
	if node.Controllers()[0] != controller.Controller(path) {
		t.Fatalf("path controller not first in chain")
	}

	s := NewScene("s", WithNodes(node))
	BindInput(s.Root(), controller.SceneTime{})
	if got := s.Update(5); got != 2 {
		t.Errorf("Update invocations = %d want 2", got)
	}
	if node.Translation() != (common.Vec3{0, 7, 0}) {
		t.Errorf("translation = %v want keyframe [0 7 0]", node.Translation())
	}
}

func TestKeyframeResetsRollEachFrame(t *testing.T) {
	node := NewTransform("wheel")
	key := controller.NewKeyframeController(&nif.KeyframeController{
		Controller: window(0, 10),
		Data: &nif.KeyframeData{Rotations: mustSeq(t,
			keyframe.Key[common.Quat]{Time: 0, Value: common.IdentityQuat()},
		)},
	})
	roll := controller.NewRollController(&nif.RollController{
		Controller: window(0, 10),
		Data: &nif.FloatData{KeyList: mustSeq(t,
			keyframe.Key[float32]{Time: 0, Value: 0.01},
		)},
	})
	mustAdd(t, node, key)
	mustAdd(t, node, roll)

	s := NewScene("s", WithNodes(node))
	BindInput(s.Root(), controller.SceneTime{})

	// Keyframe rewrites the rotation every frame, so only the latest roll
	// step survives: speed*dt*RollFrameRate about Z, never the running sum.
	tests := []struct {
		now float64
		dt  float32
	}{
		{1, 1},
		{2, 1},
		{4, 2},
	}
	for _, tt := range tests {
		s.Update(tt.now)
		want := common.QuatFromAxisAngle(0.01*tt.dt*controller.RollFrameRate, common.AxisZ)
		d := node.Rotation().Dot(want)
		if d < 0 {
			d = -d
		}
		if d < 1-1e-4 {
			t.Errorf("t=%v rotation = %v want %v", tt.now, node.Rotation(), want)
		}
	}
}

func TestCloneNodeIndependence(t *testing.T) {
	root := NewGroup("root")
	node := NewTransform("spinner", WithTranslation(common.Vec3{1, 0, 0}))
	root.AddChild(node)
	seq := mustSeq(t,
		keyframe.Key[common.Vec3]{Time: 0, Value: common.Vec3{0, 0, 0}},
		keyframe.Key[common.Vec3]{Time: 10, Value: common.Vec3{10, 0, 0}},
	)
	mustAdd(t, node, controller.NewKeyframeController(&nif.KeyframeController{
		Controller: window(0, 10),
		Data:       &nif.KeyframeData{Translations: seq},
	}))
	mustAdd(t, node, controller.NewAlphaController(&nif.AlphaController{Controller: window(0, 10), Data: &nif.FloatData{}}, nil))

	dup := CloneNode(root)
	dupNode := FindByName(dup, "spinner").(*Transform)
	if dupNode == node || dupNode.ID() == node.ID() {
		t.Fatalf("clone shares node identity")
	}
	if dupNode.Controllers()[0] == node.Controllers()[0] {
		t.Errorf("controllers shared between clones")
	}
	if dupNode.StateSet() == node.StateSet() {
		t.Errorf("state set shared between clones")
	}

	BindInput(dup, controller.SceneTime{})
	v := newVisitor(4)
	v.visit(dup)
	if d := dupNode.Translation().Sub(common.Vec3{4, 0, 0}); d.Length() > 1e-4 {
		t.Errorf("clone translation = %v want [4 0 0]", dupNode.Translation())
	}
	if node.Translation() != (common.Vec3{1, 0, 0}) {
		t.Errorf("original translation = %v want untouched [1 0 0]", node.Translation())
	}
	if node.Controllers()[0].HasInput() {
		t.Errorf("binding the clone bound the original")
	}
}

func TestCloneNodeKindsAndNil(t *testing.T) {
	if CloneNode(nil) != nil {
		t.Errorf("CloneNode(nil) != nil")
	}

	geom := NewMorphGeometry("face", "base", "smile")
	geom.Target(1).SetWeight(0.5)
	dupGeom := CloneNode(geom).(*MorphGeometry)
	dupGeom.Target(1).SetWeight(1)
	if geom.Target(1).Weight() != 0.5 {
		t.Errorf("morph targets shared between clones")
	}

	proc := NewParticleProcessor("sparks")
	dupProc := CloneNode(proc).(*ParticleProcessor)
	dupProc.System().SetFrozen(true)
	if proc.System().Frozen() {
		t.Errorf("particle system shared between clones")
	}
}

func TestTransform(t *testing.T) {
	rot := common.QuatFromAxisAngle(1, common.AxisY)
	node := NewTransform("t", WithRotation(rot), WithTranslation(common.Vec3{1, 2, 3}), WithScale(2))
	if node.RestRotation() != rot {
		t.Errorf("RestRotation() = %v want %v", node.RestRotation(), rot)
	}

	plain := NewTransform("p", WithTranslation(common.Vec3{1, 2, 3}), WithScale(2))
	m := plain.Matrix()
	if got := m.TransformPoint(common.Vec3{1, 0, 0}); got != (common.Vec3{3, 2, 3}) {
		t.Errorf("TransformPoint = %v want [3 2 3]", got)
	}
}

func TestMorphGeometryDefaults(t *testing.T) {
	geom := NewMorphGeometry("face", "base", "smile", "blink")
	if geom.MorphTargetCount() != 3 {
		t.Fatalf("MorphTargetCount() = %d want 3", geom.MorphTargetCount())
	}
	if geom.MorphTarget(0).Weight() != 1 || geom.MorphTarget(1).Weight() != 0 {
		t.Errorf("initial weights = %v, %v want 1, 0", geom.MorphTarget(0).Weight(), geom.MorphTarget(1).Weight())
	}
	geom.Dirty()
	if !geom.IsDirty() {
		t.Errorf("Dirty() not recorded")
	}
	geom.ClearDirty()
	if geom.IsDirty() {
		t.Errorf("ClearDirty() did not reset")
	}
}

func TestSceneUpdate(t *testing.T) {
	tests := []struct {
		name    string
		workers int
	}{
		{"serial", 1},
		{"parallel", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nodes []Node
			for _, name := range []string{"a", "b", "c"} {
				g := NewGroup(name)
				mustAdd(t, g, controller.NewVisController(&nif.VisController{
					Controller: window(0, 10),
					Data:       &nif.VisData{Vis: []nif.VisKey{{Time: 0, IsSet: false}}},
				}, 0x4))
				nodes = append(nodes, g)
			}
			s := NewScene("level", WithNodes(nodes...), WithUpdateWorkers(tt.workers), WithActive(true))
			if !s.Active() {
				t.Errorf("WithActive(true) not applied")
			}
			if got := BindInput(s.Root(), controller.SceneTime{}); got != 3 {
				t.Errorf("BindInput bound %d want 3", got)
			}
			if s.ControllerCount() != 3 {
				t.Errorf("ControllerCount() = %d want 3", s.ControllerCount())
			}
			if got := s.Update(1); got != 3 {
				t.Errorf("Update invocations = %d want 3", got)
			}
			if s.SimulationTime() != 1 {
				t.Errorf("SimulationTime() = %v want 1", s.SimulationTime())
			}
			for _, n := range nodes {
				if n.NodeMask() != 0x4 {
					t.Errorf("%s mask = %#x want 0x4", n.Name(), n.NodeMask())
				}
			}
		})
	}
}

func TestSceneInertControllerStillDescends(t *testing.T) {
	parent := NewTransform("parent")
	child := NewGroup("child")
	parent.AddChild(child)
	mustAdd(t, parent, controller.NewKeyframeController(&nif.KeyframeController{}))
	mustAdd(t, child, controller.NewVisController(&nif.VisController{
		Controller: window(0, 10),
		Data:       &nif.VisData{Vis: []nif.VisKey{{Time: 0, IsSet: false}}},
	}, 0))

	s := NewScene("s", WithNodes(parent))
	BindInput(s.Root(), controller.SceneTime{})
	if got := s.Update(2); got != 2 {
		t.Errorf("Update invocations = %d want 2", got)
	}
	if child.NodeMask() != 0 {
		t.Errorf("child below inert controller not updated")
	}
	if s.FindByName("child") != child {
		t.Errorf("FindByName(child) did not find the child")
	}
	if s.FindByName("missing") != nil {
		t.Errorf("FindByName(missing) != nil")
	}
}
