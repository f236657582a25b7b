// Package spatial implements the small amount of 3D math the transform
// adapter needs: three-component vectors, XYZ Euler rotations in radians,
// and 4x4 affine matrices with the column-vector convention (points are
// transformed as M * v, basis vectors live in matrix columns).
//
// Euler angles follow the XYZ application order: rotation about X first,
// then Y, then Z, giving the composite R = Rz * Ry * Rx. Matrix-to-Euler
// extraction normalizes the rotation basis first, so matrices carrying
// scale still extract a usable orientation. The affine inverse handles any
// invertible transform, including non-uniform scale, and reports singular
// matrices as errors rather than producing NaNs.
package spatial
