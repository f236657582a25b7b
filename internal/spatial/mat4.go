package spatial

import (
	"errors"
	"math"
)

// ErrSingularMatrix is returned when inverting a matrix with no inverse,
// such as a transform carrying a zero scale component.
var ErrSingularMatrix = errors.New("spatial: matrix is singular")

// Mat4 is a 4x4 affine transform stored row-major: element (row, col) lives
// at index row*4+col. Points transform as M * v with v a column vector.
type Mat4 [16]float64

// Identity returns the identity transform.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a pure translation transform.
func Translation(v Vec3) Mat4 {
	m := Identity()
	m[3] = v.X
	m[7] = v.Y
	m[11] = v.Z
	return m
}

// Scaling returns a pure axis-aligned scale transform.
func Scaling(v Vec3) Mat4 {
	m := Identity()
	m[0] = v.X
	m[5] = v.Y
	m[10] = v.Z
	return m
}

// Compose builds the local transform T * R * S: scale applied first, then
// rotation, then translation.
func Compose(loc Vec3, rot Euler, scale Vec3) Mat4 {
	return Translation(loc).Mul(rot.Mat4()).Mul(Scaling(scale))
}

// Mul returns the product m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * o[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// TransformPoint applies the full affine transform, translation included.
func (m Mat4) TransformPoint(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3],
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7],
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11],
	}
}

// TranslationPart returns the translation column of the transform.
func (m Mat4) TranslationPart() Vec3 {
	return Vec3{X: m[3], Y: m[7], Z: m[11]}
}

// Inverted returns the affine inverse. The upper 3x3 block is inverted via
// its adjugate and the translation follows as -R⁻¹ * t.
func (m Mat4) Inverted() (Mat4, error) {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[4], m[5], m[6]
	g, h, i := m[8], m[9], m[10]

	ca := e*i - f*h
	cb := f*g - d*i
	cc := d*h - e*g
	det := a*ca + b*cb + c*cc
	if math.Abs(det) < 1e-12 {
		return Mat4{}, ErrSingularMatrix
	}

	inv := Identity()
	inv[0] = ca / det
	inv[1] = (c*h - b*i) / det
	inv[2] = (b*f - c*e) / det
	inv[4] = cb / det
	inv[5] = (a*i - c*g) / det
	inv[6] = (c*d - a*f) / det
	inv[8] = cc / det
	inv[9] = (b*g - a*h) / det
	inv[10] = (a*e - b*d) / det

	t := m.TranslationPart()
	inv[3] = -(inv[0]*t.X + inv[1]*t.Y + inv[2]*t.Z)
	inv[7] = -(inv[4]*t.X + inv[5]*t.Y + inv[6]*t.Z)
	inv[11] = -(inv[8]*t.X + inv[9]*t.Y + inv[10]*t.Z)
	return inv, nil
}

// EulerXYZ extracts XYZ Euler angles from the rotation block. Basis columns
// are normalized first so scale does not skew the result. At gimbal lock
// (Y at ±90 degrees) the Z angle is folded into X and reported as zero.
func (m Mat4) EulerXYZ() Euler {
	col := func(j int) (float64, float64, float64) {
		x, y, z := m[j], m[4+j], m[8+j]
		n := math.Sqrt(x*x + y*y + z*z)
		if n < 1e-12 {
			return 0, 0, 0
		}
		return x / n, y / n, z / n
	}
	m00, m10, m20 := col(0)
	_, m11, m21 := col(1)
	_, m12, m22 := col(2)

	cy := math.Sqrt(m00*m00 + m10*m10)
	if cy > 1e-8 {
		return Euler{
			X: math.Atan2(m21, m22),
			Y: math.Atan2(-m20, cy),
			Z: math.Atan2(m10, m00),
		}
	}
	return Euler{
		X: math.Atan2(-m12, m11),
		Y: math.Atan2(-m20, cy),
		Z: 0,
	}
}
