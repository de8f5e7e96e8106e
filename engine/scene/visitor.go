package scene

import (
	"github.com/Carmen-Shannon/oxy-nif/engine/controller"
)

// frame is one pending controller invocation on the visitor's stack.
type frame struct {
	node      Node
	next      int
	traversed bool
}

// visitor walks a subtree once per update, running each node's controller
// chain outermost first. A controller's Traverse continues with the next
// controller on the same node, then the node's children.
type visitor struct {
	simTime     float64
	frames      []frame
	invocations int
}

var _ controller.Visit = &visitor{}

func newVisitor(simTime float64) *visitor {
	return &visitor{simTime: simTime, frames: make([]frame, 0, 16)}
}

func (v *visitor) SimulationTime() float64 {
	return v.simTime
}

func (v *visitor) Traverse() {
	idx := len(v.frames) - 1
	if idx < 0 || v.frames[idx].traversed {
		return
	}
	v.frames[idx].traversed = true
	v.chain(v.frames[idx].node, v.frames[idx].next)
}

func (v *visitor) visit(n Node) {
	v.chain(n, 0)
}

// chain runs the i-th controller of n, or descends into the children once the chain is exhausted.
// If a controller returns without traversing, the rest of the chain still runs.
func (v *visitor) chain(n Node, i int) {
	ctrls := n.group().controllers
	if i >= len(ctrls) {
		for _, child := range n.Children() {
			v.visit(child)
		}
		return
	}

	v.frames = append(v.frames, frame{node: n, next: i + 1})
	idx := len(v.frames) - 1
	v.invocations++
	ctrls[i].Apply(n, v)
	if !v.frames[idx].traversed {
		v.frames[idx].traversed = true
		v.chain(n, i+1)
	}
	v.frames = v.frames[:idx]
}
