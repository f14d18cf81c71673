package dirichlet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kjirou/curvedspaces/dirichlet"
	"github.com/kjirou/curvedspaces/geom"
	"github.com/kjirou/curvedspaces/holonomy"
)

func TestBuildCubicThreeTorus(t *testing.T) {
	group, err := holonomy.BuildGroup(context.Background(), cubicTorusGenerators(), geom.Flat, 1.8)
	require.NoError(t, err)

	poly, err := dirichlet.Build(context.Background(), group)
	require.NoError(t, err)
	require.NotNil(t, poly)

	require.Equal(t, 2, poly.EulerCharacteristic())
	require.NoError(t, poly.Validate())
	require.Equal(t, 8, len(poly.Vertices))
	require.Equal(t, 6, len(poly.Faces))
}

func TestBuildOddOrderLensSpace(t *testing.T) {
	const order = 5
	g1 := rotationOfOrder(order)
	group, err := holonomy.BuildGroup(context.Background(), []geom.Matrix{g1}, geom.Spherical, 4.0)
	require.NoError(t, err)

	poly, err := dirichlet.Build(context.Background(), group)
	require.NoError(t, err)
	require.NotNil(t, poly)
	require.Equal(t, 2, poly.EulerCharacteristic())
	require.NoError(t, poly.Validate())
	require.Equal(t, 2, len(poly.Faces))
}

func TestBuildTrivialGroupHasNoDomain(t *testing.T) {
	group := &holonomy.Group{
		Curvature: geom.Flat,
		Elements:  []holonomy.Element{{Matrix: geom.Identity(), Distance: 0}},
	}
	poly, err := dirichlet.Build(context.Background(), group)
	require.NoError(t, err)
	require.Nil(t, poly)
}

func TestBuildAntipodalPairHasNoDomain(t *testing.T) {
	group := &holonomy.Group{
		Curvature: geom.Spherical,
		Elements: []holonomy.Element{
			{Matrix: geom.Identity(), Distance: 0},
			{Matrix: geom.AntipodalMap(), Distance: 3.14159},
		},
	}
	poly, err := dirichlet.Build(context.Background(), group)
	require.NoError(t, err)
	require.Nil(t, poly)
}

func TestBuildFacesArePartneredByColor(t *testing.T) {
	group, err := holonomy.BuildGroup(context.Background(), cubicTorusGenerators(), geom.Flat, 1.8)
	require.NoError(t, err)

	poly, err := dirichlet.Build(context.Background(), group)
	require.NoError(t, err)
	require.NotNil(t, poly)

	counts := map[int]int{}
	for _, f := range poly.Faces {
		counts[f.ColorIndex]++
	}
	for index, count := range counts {
		require.Equalf(t, 2, count, "color index %d should pair exactly two faces", index)
	}
}

func TestWallStatsReportsPositiveBounds(t *testing.T) {
	group, err := holonomy.BuildGroup(context.Background(), cubicTorusGenerators(), geom.Flat, 1.8)
	require.NoError(t, err)

	poly, err := dirichlet.Build(context.Background(), group)
	require.NoError(t, err)
	require.NotNil(t, poly)

	stats := poly.WallStats()
	require.Greater(t, stats.MinBase, 0.0)
	require.LessOrEqual(t, stats.MinBase, stats.AvgBase)
	require.LessOrEqual(t, stats.AvgBase, stats.MaxBase)
	require.Equal(t, 1.0, stats.MaxBase)

	require.Greater(t, stats.MinArea, 0.0)
	require.LessOrEqual(t, stats.MinArea, stats.AvgArea)
	require.LessOrEqual(t, stats.AvgArea, stats.MaxArea)
}
