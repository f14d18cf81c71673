package dirichlet_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kjirou/curvedspaces/dirichlet"
	"github.com/kjirou/curvedspaces/geom"
)

func cubicTorusGenerators() []geom.Matrix {
	return []geom.Matrix{
		geom.Translation(geom.Flat, 1, 0, 0),
		geom.Translation(geom.Flat, 0, 1, 0),
		geom.Translation(geom.Flat, 0, 0, 1),
	}
}

func TestSeedBananaProducesValidTopology(t *testing.T) {
	gens := cubicTorusGenerators()
	plane0 := dirichlet.ExportBisectorPlane(geom.Flat, gens[0])
	plane1 := dirichlet.ExportBisectorPlane(geom.Flat, gens[1])
	plane2 := dirichlet.ExportBisectorPlane(geom.Flat, gens[2])

	n := geom.TernaryCross(plane0, plane1, plane2)
	normalized, err := geom.Normalize(geom.Spherical, n)
	require.NoError(t, err)

	poly := dirichlet.ExportSeedBanana(geom.Flat, normalized,
		[3]geom.Vector{plane0, plane1, plane2},
		[3]geom.Matrix{gens[0], gens[1], gens[2]})

	require.Equal(t, 2, len(poly.Vertices))
	require.Equal(t, 3, len(poly.Faces))
	require.Equal(t, 2, poly.EulerCharacteristic())
	// Banana faces are bigons (two half-edges each), so Validate's
	// at-least-three-half-edges rule, which applies to finished domains,
	// does not hold for the seed; check the closed two-edge cycles directly.
	for _, f := range poly.Faces {
		require.Len(t, poly.FaceHalfEdges(f), 2)
	}
}

func TestSeedLensProducesValidTopology(t *testing.T) {
	const order = 5
	g1 := rotationOfOrder(order)
	g2 := g1.GeometricInverse(geom.Spherical)

	plane1 := dirichlet.ExportBisectorPlane(geom.Spherical, g1)
	plane2 := dirichlet.ExportBisectorPlane(geom.Spherical, g2)

	poly := dirichlet.ExportSeedLens(geom.Spherical, order, plane1, plane2, g1, g2)

	require.Equal(t, order, len(poly.Vertices))
	require.Equal(t, 2, len(poly.Faces))
	require.Equal(t, 2, poly.EulerCharacteristic())
	require.NoError(t, poly.Validate())
}

func TestLensOrderRecoversRotationCount(t *testing.T) {
	for _, order := range []int{3, 4, 5, 7} {
		g1 := rotationOfOrder(order)
		n, err := dirichlet.ExportLensOrder(g1)
		require.NoError(t, err)
		require.Equal(t, order, n)
	}
}

func TestLensOrderRejectsIdentity(t *testing.T) {
	_, err := dirichlet.ExportLensOrder(geom.Identity())
	require.Error(t, err)
}

// rotationOfOrder returns a spherical rotation in the z-w plane of exact
// order n, with +sin in M[z][w], the layout lensOrder reads.
func rotationOfOrder(n int) geom.Matrix {
	angle := 2 * math.Pi / float64(n)
	m := geom.Identity()
	c, s := math.Cos(angle), math.Sin(angle)
	m.Rows[2][2] = c
	m.Rows[2][3] = s
	m.Rows[3][2] = -s
	m.Rows[3][3] = c
	return m
}
