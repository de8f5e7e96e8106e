package keyframe

import (
	"github.com/Carmen-Shannon/oxy-nif/common"
)

// valueOps supplies the arithmetic each value kind needs for blending.
// Kinds without a meaningful tangent space (rotations, flags) degrade
// quadratic and TBC blending to their linear/step rule.
type valueOps[T Value] interface {
	lerp(a, b T, x float32) T
	hermite(a, aOut, b, bIn T, x float32) T
	tangents(prev, cur, next T, prevLen, nextLen, tension, bias, continuity float32) (in, out T)
	smooth() bool
}

// opsFor resolves the arithmetic for T once per interpolator.
func opsFor[T Value]() valueOps[T] {
	var zero T
	var ops any
	switch any(zero).(type) {
	case float32:
		ops = floatOps{}
	case common.Vec3:
		ops = vec3Ops{}
	case common.Quat:
		ops = quatOps{}
	case bool:
		ops = boolOps{}
	}
	return ops.(valueOps[T])
}

// hermiteBasis returns the four cubic Hermite basis weights at x.
func hermiteBasis(x float32) (h00, h01, h10, h11 float32) {
	x2 := x * x
	x3 := x2 * x
	h00 = 2*x3 - 3*x2 + 1
	h01 = -2*x3 + 3*x2
	h10 = x3 - 2*x2 + x
	h11 = x3 - x2
	return
}

// tbcWeights returns the Kochanek-Bartels weights applied to the previous and
// next deltas for the incoming and outgoing tangents, scaled for uneven key spacing.
func tbcWeights(prevLen, nextLen, tension, bias, continuity float32) (inPrev, inNext, outPrev, outNext float32) {
	sum := prevLen + nextLen
	if sum == 0 {
		return 0, 0, 0, 0
	}
	t := 1 - tension
	inScale := prevLen / sum
	outScale := nextLen / sum
	inPrev = t * (1 - continuity) * (1 + bias) * inScale
	inNext = t * (1 + continuity) * (1 - bias) * inScale
	outPrev = t * (1 + continuity) * (1 + bias) * outScale
	outNext = t * (1 - continuity) * (1 - bias) * outScale
	return
}

type floatOps struct{}

func (floatOps) lerp(a, b float32, x float32) float32 {
	return a*(1-x) + b*x
}

func (floatOps) hermite(a, aOut, b, bIn float32, x float32) float32 {
	h00, h01, h10, h11 := hermiteBasis(x)
	return a*h00 + b*h01 + aOut*h10 + bIn*h11
}

func (floatOps) tangents(prev, cur, next float32, prevLen, nextLen, tension, bias, continuity float32) (float32, float32) {
	inPrev, inNext, outPrev, outNext := tbcWeights(prevLen, nextLen, tension, bias, continuity)
	pd := cur - prev
	nd := next - cur
	return pd*inPrev + nd*inNext, pd*outPrev + nd*outNext
}

func (floatOps) smooth() bool { return true }

type vec3Ops struct{}

func (vec3Ops) lerp(a, b common.Vec3, x float32) common.Vec3 {
	return common.LerpVec3(a, b, x)
}

func (vec3Ops) hermite(a, aOut, b, bIn common.Vec3, x float32) common.Vec3 {
	h00, h01, h10, h11 := hermiteBasis(x)
	return a.Scale(h00).Add(b.Scale(h01)).Add(aOut.Scale(h10)).Add(bIn.Scale(h11))
}

func (vec3Ops) tangents(prev, cur, next common.Vec3, prevLen, nextLen, tension, bias, continuity float32) (common.Vec3, common.Vec3) {
	inPrev, inNext, outPrev, outNext := tbcWeights(prevLen, nextLen, tension, bias, continuity)
	pd := cur.Sub(prev)
	nd := next.Sub(cur)
	return pd.Scale(inPrev).Add(nd.Scale(inNext)), pd.Scale(outPrev).Add(nd.Scale(outNext))
}

func (vec3Ops) smooth() bool { return true }

type quatOps struct{}

func (quatOps) lerp(a, b common.Quat, x float32) common.Quat {
	return common.Slerp(a, b, x)
}

func (quatOps) hermite(a, _, b, _ common.Quat, x float32) common.Quat {
	return common.Slerp(a, b, x)
}

func (quatOps) tangents(_, _, _ common.Quat, _, _, _, _, _ float32) (common.Quat, common.Quat) {
	return common.Quat{}, common.Quat{}
}

func (quatOps) smooth() bool { return false }

type boolOps struct{}

func (boolOps) lerp(a, _ bool, _ float32) bool {
	return a
}

func (boolOps) hermite(a, _, _, _ bool, _ float32) bool {
	return a
}

func (boolOps) tangents(_, _, _ bool, _, _, _, _, _ float32) (bool, bool) {
	return false, false
}

func (boolOps) smooth() bool { return false }
