package holonomy_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kjirou/curvedspaces/geom"
	"github.com/kjirou/curvedspaces/holonomy"
)

func torusGenerators() []geom.Matrix {
	return []geom.Matrix{
		geom.Translation(geom.Flat, 1, 0, 0),
		geom.Translation(geom.Flat, 0, 1, 0),
		geom.Translation(geom.Flat, 0, 0, 1),
	}
}

func TestBuildGroupIdentityFirst(t *testing.T) {
	group, err := holonomy.BuildGroup(context.Background(), torusGenerators(), geom.Flat, 1.8)
	require.NoError(t, err)
	require.NotEmpty(t, group.Elements)
	require.True(t, group.Elements[0].Matrix.IsIdentity(1e-12))
	require.Equal(t, 0.0, group.Elements[0].Distance)
}

func TestBuildGroupSortedByDistance(t *testing.T) {
	group, err := holonomy.BuildGroup(context.Background(), torusGenerators(), geom.Flat, 1.8)
	require.NoError(t, err)
	for i := 1; i < len(group.Elements); i++ {
		require.LessOrEqual(t, group.Elements[i-1].Distance, group.Elements[i].Distance)
	}
}

func TestBuildGroupContainsInverses(t *testing.T) {
	group, err := holonomy.BuildGroup(context.Background(), torusGenerators(), geom.Flat, 1.8)
	require.NoError(t, err)
	require.True(t, group.ContainsInverse(1e-6))
}

func TestBuildGroupEmptyGenerators(t *testing.T) {
	_, err := holonomy.BuildGroup(context.Background(), nil, geom.Flat, 1.0)
	require.ErrorIs(t, err, holonomy.ErrEmptyGenerators)
}

func TestBuildGroupFixesOrigin(t *testing.T) {
	_, err := holonomy.BuildGroup(context.Background(), []geom.Matrix{geom.Identity()}, geom.Flat, 1.0)
	require.ErrorIs(t, err, holonomy.ErrFixesOrigin)
}

func TestBuildGroupInconsistentCurvature(t *testing.T) {
	gens := []geom.Matrix{geom.Translation(geom.Flat, 1, 0, 0)}
	_, err := holonomy.BuildGroup(context.Background(), gens, geom.Spherical, 1.0)
	require.ErrorIs(t, err, holonomy.ErrInconsistentCurvature)
}

func TestBuildGroupNotDiscreteGuardrail(t *testing.T) {
	// A dense rotation by an irrational multiple of pi never closes up
	// within a generous radius, so the frontier keeps growing past the
	// guardrail.
	gens := []geom.Matrix{geom.Translation(geom.Spherical, math.Sqrt2, math.Pi/7, math.E)}
	_, err := holonomy.BuildGroup(context.Background(), gens, geom.Spherical, 3.0)
	require.ErrorIs(t, err, holonomy.ErrNotDiscrete)
}
