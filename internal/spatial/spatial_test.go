package spatial_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"segbake/internal/spatial"
)

const tolerance = 1e-9

func requireVecInDelta(t *testing.T, want, got spatial.Vec3, delta float64) {
	t.Helper()
	require.InDelta(t, want.X, got.X, delta)
	require.InDelta(t, want.Y, got.Y, delta)
	require.InDelta(t, want.Z, got.Z, delta)
}

// TestEulerRoundTrip converts angles to a matrix and back across a grid of
// rotations away from gimbal lock.
func TestEulerRoundTrip(t *testing.T) {
	angles := []float64{-2.5, -1.0, -0.3, 0, 0.4, 1.2, 2.8}
	for _, x := range angles {
		for _, y := range []float64{-1.2, -0.5, 0, 0.7, 1.3} {
			for _, z := range angles {
				e := spatial.Euler{X: x, Y: y, Z: z}
				got := e.Mat4().EulerXYZ()
				// Extraction may land on an equivalent angle triple, so
				// compare the recomposed matrices instead of raw angles.
				m1, m2 := e.Mat4(), got.Mat4()
				for i := range m1 {
					require.InDelta(t, m1[i], m2[i], 1e-9,
						"round trip mismatch for euler (%v, %v, %v)", x, y, z)
				}
			}
		}
	}
}

// TestEulerGimbalLock checks extraction stays finite and equivalent when the
// Y rotation sits at 90 degrees.
func TestEulerGimbalLock(t *testing.T) {
	e := spatial.Euler{X: 0.3, Y: math.Pi / 2, Z: 0.5}
	got := e.Mat4().EulerXYZ()
	require.Zero(t, got.Z, "gimbal extraction folds Z into X")
	m1, m2 := e.Mat4(), got.Mat4()
	for i := range m1 {
		require.InDelta(t, m1[i], m2[i], 1e-6)
	}
}

// TestRotationDirection pins the handedness: +90 degrees about Z carries the
// X axis onto the Y axis.
func TestRotationDirection(t *testing.T) {
	rot := spatial.Euler{Z: math.Pi / 2}.Mat4()
	got := rot.TransformPoint(spatial.Vec3{X: 1})
	requireVecInDelta(t, spatial.Vec3{Y: 1}, got, tolerance)
}

// TestComposeOrder verifies scale applies before rotation before translation.
func TestComposeOrder(t *testing.T) {
	m := spatial.Compose(
		spatial.Vec3{Z: 5},
		spatial.Euler{Z: math.Pi / 2},
		spatial.Vec3{X: 2, Y: 2, Z: 2},
	)
	got := m.TransformPoint(spatial.Vec3{X: 1})
	requireVecInDelta(t, spatial.Vec3{Y: 2, Z: 5}, got, tolerance)
}

// TestInverted checks M * M⁻¹ is the identity for a full TRS transform.
func TestInverted(t *testing.T) {
	m := spatial.Compose(
		spatial.Vec3{X: 3, Y: -1, Z: 2},
		spatial.Euler{X: 0.4, Y: -0.8, Z: 1.1},
		spatial.Vec3{X: 2, Y: 0.5, Z: 3},
	)
	inv, err := m.Inverted()
	require.NoError(t, err)

	id := m.Mul(inv)
	want := spatial.Identity()
	for i := range id {
		require.InDelta(t, want[i], id[i], 1e-9)
	}
}

// TestInvertedSingular ensures zero-scale transforms report an error instead
// of producing NaNs.
func TestInvertedSingular(t *testing.T) {
	m := spatial.Scaling(spatial.Vec3{X: 1, Y: 0, Z: 1})
	_, err := m.Inverted()
	require.ErrorIs(t, err, spatial.ErrSingularMatrix)
}

// TestInvertedMovesPointBack checks the inverse undoes a point transform.
func TestInvertedMovesPointBack(t *testing.T) {
	m := spatial.Compose(
		spatial.Vec3{X: 1, Y: 2, Z: 3},
		spatial.Euler{X: 0.2, Y: 0.3, Z: 0.4},
		spatial.Vec3{X: 1, Y: 1, Z: 1},
	)
	inv, err := m.Inverted()
	require.NoError(t, err)

	p := spatial.Vec3{X: -4, Y: 5, Z: 0.5}
	requireVecInDelta(t, p, inv.TransformPoint(m.TransformPoint(p)), 1e-9)
}

// TestEulerExtractionIgnoresScale confirms basis normalization: a scaled
// rotation extracts the same angles as the pure rotation.
func TestEulerExtractionIgnoresScale(t *testing.T) {
	e := spatial.Euler{X: 0.5, Y: -0.4, Z: 1.2}
	scaled := e.Mat4().Mul(spatial.Scaling(spatial.Vec3{X: 2, Y: 3, Z: 0.5}))
	got := scaled.EulerXYZ()
	require.InDelta(t, e.X, got.X, 1e-9)
	require.InDelta(t, e.Y, got.Y, 1e-9)
	require.InDelta(t, e.Z, got.Z, 1e-9)
}

func TestComponentAccess(t *testing.T) {
	v := spatial.Vec3{X: 1, Y: 2, Z: 3}
	require.Equal(t, 1.0, v.Component(0))
	require.Equal(t, 2.0, v.Component(1))
	require.Equal(t, 3.0, v.Component(2))
	require.Zero(t, v.Component(5))

	v.SetComponent(1, 9)
	require.Equal(t, 9.0, v.Y)
}

func TestAngleConversion(t *testing.T) {
	require.InDelta(t, math.Pi, spatial.Radians(180), tolerance)
	require.InDelta(t, 180.0, spatial.Degrees(math.Pi), tolerance)

	v := spatial.RadiansVec(spatial.Vec3{X: 180, Y: 90, Z: -90})
	requireVecInDelta(t, spatial.Vec3{X: math.Pi, Y: math.Pi / 2, Z: -math.Pi / 2}, v, tolerance)
	requireVecInDelta(t, spatial.Vec3{X: 180, Y: 90, Z: -90}, spatial.DegreesVec(v), tolerance)
}
