package spatial

import "math"

// Vec3 is a three-component vector. Depending on context it carries a
// location, a scale, or a triple of Euler angles in radians.
type Vec3 struct {
	X, Y, Z float64
}

// Component returns the component for axis 0, 1, or 2. Other axes read as 0.
func (v Vec3) Component(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		return 0
	}
}

// SetComponent assigns the component for axis 0, 1, or 2. Other axes are
// ignored.
func (v *Vec3) SetComponent(axis int, value float64) {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	case 2:
		v.Z = value
	}
}

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// RadiansVec converts a vector of degree angles to radians component-wise.
func RadiansVec(v Vec3) Vec3 {
	return Vec3{X: Radians(v.X), Y: Radians(v.Y), Z: Radians(v.Z)}
}

// DegreesVec converts a vector of radian angles to degrees component-wise.
func DegreesVec(v Vec3) Vec3 {
	return Vec3{X: Degrees(v.X), Y: Degrees(v.Y), Z: Degrees(v.Z)}
}
