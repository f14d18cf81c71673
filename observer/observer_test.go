package observer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kjirou/curvedspaces/geom"
	"github.com/kjirou/curvedspaces/observer"
)

func TestAdvanceMovesForwardAndStaysOrthogonal(t *testing.T) {
	o := observer.New(0.5)
	o.Speed = 1.0
	o.Advance(geom.Flat, nil, 0.1)

	require.InDelta(t, 0.1, o.Placement.Rows[3][2], 1e-9)
	m := o.Placement
	require.True(t, geom.EqualWithin(geom.Product(m, m.GeometricInverse(geom.Flat)), geom.Identity(), 1e-9))
}

func TestAdvanceClampsDeltaT(t *testing.T) {
	o := observer.New(0.5)
	o.Speed = 1.0
	o.Advance(geom.Flat, nil, 10.0)
	require.InDelta(t, 0.1, o.Placement.Rows[3][2], 1e-9)
}

func TestPinchClampsToUnitRange(t *testing.T) {
	o := observer.New(0.5)
	rebuilt := o.Pinch(10)
	require.True(t, rebuilt)
	require.Equal(t, 1.0, o.Aperture)

	o.Aperture = 0.1
	o.Pinch(-10)
	require.Equal(t, 0.0, o.Aperture)
}

func TestTapStashesAndRestoresSpeed(t *testing.T) {
	o := observer.New(0.5)
	o.Speed = 2.0
	o.Tap()
	require.Equal(t, 0.0, o.Speed)
	require.Equal(t, 2.0, o.PausedSpeed)

	o.Tap()
	require.Equal(t, 2.0, o.Speed)
}

func TestRotatePreservesOrthogonality(t *testing.T) {
	o := observer.New(0.5)
	o.Rotate(0.3)
	m := o.Placement
	require.True(t, geom.EqualWithin(geom.Product(m, m.GeometricInverse(geom.Flat)), geom.Identity(), 1e-9))
}

func TestAdvanceUnderHyperbolicCurvatureStaysAnIsometry(t *testing.T) {
	o := observer.New(0.5)
	o.Speed = 1.0
	o.Advance(geom.Hyperbolic, nil, 0.1)

	m := o.Placement
	product := geom.Product(m, m.GeometricInverse(geom.Hyperbolic))
	require.True(t, product.IsIdentity(1e-8), "hyperbolic forward step should remain in O(3,1), got %+v", product)
}
