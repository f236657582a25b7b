package spatial

import "math"

// Euler is a rotation expressed as XYZ Euler angles in radians: rotation
// about X applied first, then Y, then Z.
type Euler struct {
	X, Y, Z float64
}

// EulerFromVec3 reinterprets a vector of radian angles as an Euler rotation.
func EulerFromVec3(v Vec3) Euler {
	return Euler{X: v.X, Y: v.Y, Z: v.Z}
}

// Vec3 returns the angles as a plain vector.
func (e Euler) Vec3() Vec3 {
	return Vec3{X: e.X, Y: e.Y, Z: e.Z}
}

// Mat4 returns the rotation matrix R = Rz * Ry * Rx.
func (e Euler) Mat4() Mat4 {
	sx, cx := math.Sincos(e.X)
	sy, cy := math.Sincos(e.Y)
	sz, cz := math.Sincos(e.Z)

	m := Identity()
	m[0] = cy * cz
	m[1] = sx*sy*cz - cx*sz
	m[2] = cx*sy*cz + sx*sz
	m[4] = cy * sz
	m[5] = sx*sy*sz + cx*cz
	m[6] = cx*sy*sz - sx*cz
	m[8] = -sy
	m[9] = sx * cy
	m[10] = cx * cy
	return m
}
