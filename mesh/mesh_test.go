package mesh_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kjirou/curvedspaces/dirichlet"
	"github.com/kjirou/curvedspaces/geom"
	"github.com/kjirou/curvedspaces/holonomy"
	"github.com/kjirou/curvedspaces/mesh"
)

func cubicTorusGenerators() []geom.Matrix {
	return []geom.Matrix{
		geom.Translation(geom.Flat, 1, 0, 0),
		geom.Translation(geom.Flat, 0, 1, 0),
		geom.Translation(geom.Flat, 0, 0, 1),
	}
}

func buildCubicTorus(t *testing.T) *dirichlet.Polyhedron {
	t.Helper()
	group, err := holonomy.BuildGroup(context.Background(), cubicTorusGenerators(), geom.Flat, 1.8)
	require.NoError(t, err)
	poly, err := dirichlet.Build(context.Background(), group)
	require.NoError(t, err)
	require.NotNil(t, poly)
	return poly
}

func TestWallsProducesTwoTrianglesPerEdge(t *testing.T) {
	poly := buildCubicTorus(t)
	buf := mesh.Walls(poly, 0.3)

	edgeCount := len(poly.HalfEdges)
	require.Equal(t, edgeCount*2, len(buf.Indices)/3)
	require.Equal(t, edgeCount*4, len(buf.Positions))
}

func TestWallsAtFullApertureIsEmpty(t *testing.T) {
	poly := buildCubicTorus(t)
	buf := mesh.Walls(poly, 1.0)
	require.Empty(t, buf.Positions)
	require.Empty(t, buf.Indices)
}

func TestVertexFiguresProducesLightAndDarkFacets(t *testing.T) {
	poly := buildCubicTorus(t)
	buf := mesh.VertexFigures(poly)

	edgeCount := len(poly.HalfEdges)
	require.Equal(t, edgeCount*4, len(buf.Indices)/3)

	lightSeen, darkSeen := false, false
	for _, c := range buf.Colors {
		if c[0] > 0.5 {
			lightSeen = true
		} else {
			darkSeen = true
		}
	}
	require.True(t, lightSeen)
	require.True(t, darkSeen)
}

func TestSphereLevelZeroIsIcosahedron(t *testing.T) {
	buf := mesh.Sphere(0)
	require.Equal(t, 12, len(buf.Positions))
	require.Equal(t, 20, len(buf.Indices)/3)
}

func TestSphereSubdivisionQuadruplesFaces(t *testing.T) {
	level0 := mesh.Sphere(0)
	level1 := mesh.Sphere(1)
	require.Equal(t, 4*len(level0.Indices), len(level1.Indices))
}

func TestSphereVerticesAreUnitLength(t *testing.T) {
	buf := mesh.Sphere(2)
	for _, v := range buf.Positions {
		n := v.X*v.X + v.Y*v.Y + v.Z*v.Z
		require.InDelta(t, 1.0, n, 1e-9)
	}
}

func TestObserverIsAClosedTetrahedron(t *testing.T) {
	buf := mesh.Observer()
	require.Equal(t, 4, len(buf.Positions))
	require.Equal(t, 4, len(buf.Indices)/3)
}

func TestGyroscopeHasThreeRings(t *testing.T) {
	buf := mesh.Gyroscope()
	require.Equal(t, 3*24*2, len(buf.Positions))
}

func TestCubeHasSixFaces(t *testing.T) {
	buf := mesh.Cube()
	require.Equal(t, 6*4, len(buf.Positions))
	require.Equal(t, 6*2, len(buf.Indices)/3)
}
