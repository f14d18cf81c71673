package honeycomb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kjirou/curvedspaces/geom"
	"github.com/kjirou/curvedspaces/holonomy"
	"github.com/kjirou/curvedspaces/honeycomb"
)

func torusGenerators() []geom.Matrix {
	return []geom.Matrix{
		geom.Translation(geom.Flat, 1, 0, 0),
		geom.Translation(geom.Flat, 0, 1, 0),
		geom.Translation(geom.Flat, 0, 0, 1),
	}
}

func TestBuildOneCellPerElement(t *testing.T) {
	group, err := holonomy.BuildGroup(context.Background(), torusGenerators(), geom.Flat, 1.8)
	require.NoError(t, err)

	hc := honeycomb.Build(group)
	require.Equal(t, len(group.Elements), len(hc.Cells))
	require.True(t, hc.Cells[0].Matrix.IsIdentity(1e-12))
}

func TestCullAndSortOrdersByDistance(t *testing.T) {
	group, err := holonomy.BuildGroup(context.Background(), torusGenerators(), geom.Flat, 1.8)
	require.NoError(t, err)

	hc := honeycomb.Build(group)
	sideNormals := [4]geom.Vector{
		{X: 1, Y: 0, Z: 0, W: 0},
		{X: -1, Y: 0, Z: 0, W: 0},
		{X: 0, Y: 1, Z: 0, W: 0},
		{X: 0, Y: -1, Z: 0, W: 0},
	}
	hc.CullAndSort(geom.Identity(), sideNormals, 5.0, 0.9, geom.Positive)

	require.NotEmpty(t, hc.Visible)
	for i := 1; i < len(hc.Visible); i++ {
		require.LessOrEqual(t, hc.Visible[i-1].Distance, hc.Visible[i].Distance)
	}
	require.Equal(t, len(hc.Visible), hc.Plain+hc.Reflected)
}

func TestSphericalAcceptsAllCells(t *testing.T) {
	g1 := geom.Translation(geom.Spherical, 0.3, 0, 0)
	group, err := holonomy.BuildGroup(context.Background(), []geom.Matrix{g1}, geom.Spherical, 2.0)
	require.NoError(t, err)

	hc := honeycomb.Build(group)
	var sideNormals [4]geom.Vector
	hc.CullAndSort(geom.Identity(), sideNormals, 0, 0, geom.Positive)
	require.Equal(t, len(hc.Cells), len(hc.Visible))
}

func TestInvertedTilesPairsWithAntipodalMap(t *testing.T) {
	group, err := holonomy.BuildGroup(context.Background(), torusGenerators(), geom.Flat, 1.2)
	require.NoError(t, err)

	hc := honeycomb.Build(group)
	inverted := hc.InvertedTiles(geom.Positive)
	require.Equal(t, len(hc.Cells), len(inverted))
	require.InDelta(t, -hc.Cells[0].Origin.W, inverted[0].Origin.W, 1e-9)
}
