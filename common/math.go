package common

import (
	"github.com/chewxy/math32"
)

// Vec3 is a 3-component float vector (x, y, z).
type Vec3 [3]float32

// Vec4 is a 4-component float vector, used for RGBA colors.
type Vec4 [4]float32

// Quat is a rotation quaternion stored as (x, y, z, w).
type Quat [4]float32

// Mat4 is a 4x4 matrix stored in column-major order (OpenGL/WebGPU convention).
type Mat4 [16]float32

var (
	// AxisX is the unit X axis.
	AxisX = Vec3{1, 0, 0}
	// AxisY is the unit Y axis.
	AxisY = Vec3{0, 1, 0}
	// AxisZ is the unit Z axis.
	AxisZ = Vec3{0, 0, 1}
)

// Add returns a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale returns the vector multiplied by the scalar s.
func (a Vec3) Scale(s float32) Vec3 {
	return Vec3{a[0] * s, a[1] * s, a[2] * s}
}

// Dot returns a dot b.
func (a Vec3) Dot(b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Length returns the euclidean length of the vector.
func (a Vec3) Length() float32 {
	return math32.Sqrt(a.Dot(a))
}

// LerpVec3 computes a weighted average between two points.
// At frac == 0 the result is exactly a.
//
// Parameters:
//   - a: the start point
//   - b: the end point
//   - frac: the blend factor, 0 yields a and 1 yields b
//
// Returns:
//   - Vec3: the blended point
func LerpVec3(a, b Vec3, frac float32) Vec3 {
	fi := 1 - frac
	return Vec3{
		fi*a[0] + frac*b[0],
		fi*a[1] + frac*b[1],
		fi*a[2] + frac*b[2],
	}
}

// IdentityQuat returns the quaternion representing no rotation.
func IdentityQuat() Quat {
	return Quat{0, 0, 0, 1}
}

// QuatFromAxisAngle builds a rotation of angle radians about a unit axis.
//
// Parameters:
//   - angle: the rotation angle in radians
//   - axis: the unit rotation axis
//
// Returns:
//   - Quat: the rotation quaternion
func QuatFromAxisAngle(angle float32, axis Vec3) Quat {
	s, c := math32.Sincos(angle * 0.5)
	return Quat{axis[0] * s, axis[1] * s, axis[2] * s, c}
}

// Mul returns the Hamilton product q * r. Applied to a vector, the result
// rotates by r first and then by q.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		q[3]*r[0] + q[0]*r[3] + q[1]*r[2] - q[2]*r[1],
		q[3]*r[1] - q[0]*r[2] + q[1]*r[3] + q[2]*r[0],
		q[3]*r[2] + q[0]*r[1] - q[1]*r[0] + q[2]*r[3],
		q[3]*r[3] - q[0]*r[0] - q[1]*r[1] - q[2]*r[2],
	}
}

// Dot returns the 4D dot product of two quaternions.
func (q Quat) Dot(r Quat) float32 {
	return q[0]*r[0] + q[1]*r[1] + q[2]*r[2] + q[3]*r[3]
}

// Negate returns -q, which represents the same rotation.
func (q Quat) Negate() Quat {
	return Quat{-q[0], -q[1], -q[2], -q[3]}
}

// Conjugate returns the inverse rotation of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{-q[0], -q[1], -q[2], q[3]}
}

// Normalize returns q scaled to unit length. A zero quaternion yields identity.
func (q Quat) Normalize() Quat {
	l := math32.Sqrt(q.Dot(q))
	if l == 0 {
		return IdentityQuat()
	}
	inv := 1 / l
	return Quat{q[0] * inv, q[1] * inv, q[2] * inv, q[3] * inv}
}

// Rotate applies the rotation q to the vector v.
func (q Quat) Rotate(v Vec3) Vec3 {
	p := Quat{v[0], v[1], v[2], 0}
	r := q.Mul(p).Mul(q.Conjugate())
	return Vec3{r[0], r[1], r[2]}
}

// Slerp performs spherical linear interpolation along the shortest arc.
// If the quaternions lie in opposite hemispheres, b is negated first.
// Nearly parallel inputs fall back to a normalized linear blend.
//
// Parameters:
//   - a: the start rotation
//   - b: the end rotation
//   - t: the blend factor, 0 yields a and 1 yields b
//
// Returns:
//   - Quat: the interpolated rotation
func Slerp(a, b Quat, t float32) Quat {
	if t == 0 {
		return a
	}
	cosom := a.Dot(b)
	if cosom < 0 {
		cosom = -cosom
		b = b.Negate()
	}

	var scaleA, scaleB float32
	if 1-cosom > 1e-6 {
		omega := math32.Acos(cosom)
		sinom := math32.Sin(omega)
		scaleA = math32.Sin((1-t)*omega) / sinom
		scaleB = math32.Sin(t*omega) / sinom
	} else {
		scaleA = 1 - t
		scaleB = t
	}

	out := Quat{
		scaleA*a[0] + scaleB*b[0],
		scaleA*a[1] + scaleB*b[1],
		scaleA*a[2] + scaleB*b[2],
		scaleA*a[3] + scaleB*b[3],
	}
	if 1-cosom <= 1e-6 {
		return out.Normalize()
	}
	return out
}

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// IdentityMat4 returns a new identity matrix.
func IdentityMat4() Mat4 {
	var m Mat4
	Identity(m[:])
	return m
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// TranslateMat4 returns a translation matrix.
func TranslateMat4(v Vec3) Mat4 {
	m := IdentityMat4()
	m[12], m[13], m[14] = v[0], v[1], v[2]
	return m
}

// ScaleMat4 returns a non-uniform scale matrix.
func ScaleMat4(v Vec3) Mat4 {
	m := IdentityMat4()
	m[0], m[5], m[10] = v[0], v[1], v[2]
	return m
}

// RotationMat4 returns the rotation matrix of a unit quaternion.
func RotationMat4(q Quat) Mat4 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	m := IdentityMat4()
	m[0] = 1 - 2*(y*y+z*z)
	m[1] = 2 * (x*y + z*w)
	m[2] = 2 * (x*z - y*w)
	m[4] = 2 * (x*y - z*w)
	m[5] = 1 - 2*(x*x+z*z)
	m[6] = 2 * (y*z + x*w)
	m[8] = 2 * (x*z + y*w)
	m[9] = 2 * (y*z - x*w)
	m[10] = 1 - 2*(x*x+y*y)
	return m
}

// Translation returns the translation column of m.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// TransformPoint applies m to the point p (w = 1).
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12],
		m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13],
		m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14],
	}
}
