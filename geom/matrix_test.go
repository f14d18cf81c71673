package geom_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kjirou/curvedspaces/geom"
)

func TestGeometricInverseRoundTrip(t *testing.T) {
	testCases := []struct {
		name       string
		curvature  geom.Curvature
		dx, dy, dz float64
	}{
		{"spherical small", geom.Spherical, 0.1, -0.05, 0.02},
		{"flat small", geom.Flat, 0.3, 0.7, -1.2},
		{"hyperbolic small", geom.Hyperbolic, 0.2, -0.1, 0.15},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := geom.Translation(tc.curvature, tc.dx, tc.dy, tc.dz)
			inv := m.GeometricInverse(tc.curvature)
			product := geom.Product(m, inv)
			require.True(t, product.IsIdentity(1e-8), "m*inv(m) should be identity, got %+v", product)
		})
	}
}

func TestTranslationRoundTrip(t *testing.T) {
	curvatures := []geom.Curvature{geom.Spherical, geom.Flat, geom.Hyperbolic}
	for _, c := range curvatures {
		fwd := geom.Translation(c, 0.05, -0.02, 0.01)
		back := geom.Translation(c, -0.05, 0.02, -0.01)
		product := geom.Product(back, fwd)
		require.True(t, product.IsIdentity(1e-10), "curvature %s: translate then inverse-translate should be identity", c)
	}
}

func TestDeterminantParity(t *testing.T) {
	require.Equal(t, geom.Positive, geom.Identity().Parity())
	require.Equal(t, geom.Negative, geom.AntipodalMap().Parity())
}

func TestFastGramSchmidtRestoresIsometry(t *testing.T) {
	curvatures := []geom.Curvature{geom.Spherical, geom.Flat, geom.Hyperbolic}
	for _, c := range curvatures {
		step := geom.Translation(c, 0.002, 0, 0)
		m := geom.Identity()
		for i := 0; i < 1000; i++ {
			m = geom.Product(m, step)
		}
		m = geom.FastGramSchmidt(c, m)
		inv := m.GeometricInverse(c)
		product := geom.Product(m, inv)
		require.True(t, product.IsIdentity(1e-8), "curvature %s: M*geometric_inverse(M) should be identity after re-orthogonalization", c)
	}
}

func TestTernaryCrossOrthogonal(t *testing.T) {
	a := geom.Vector{X: 1, Y: 0, Z: 0, W: 0}
	b := geom.Vector{X: 0, Y: 1, Z: 0, W: 0}
	c := geom.Vector{X: 0, Y: 0, Z: 1, W: 0}
	n := geom.TernaryCross(a, b, c)
	require.InDelta(t, 0, n.EuclideanDot(a), 1e-12)
	require.InDelta(t, 0, n.EuclideanDot(b), 1e-12)
	require.InDelta(t, 0, n.EuclideanDot(c), 1e-12)
}

func TestNormalizeNonPositiveNorm(t *testing.T) {
	_, err := geom.Normalize(geom.Hyperbolic, geom.Vector{X: 1, Y: 0, Z: 0, W: 0})
	require.ErrorIs(t, err, geom.ErrNonPositiveNorm)
}
