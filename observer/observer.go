// Package observer implements per-frame observer kinematics: forward
// motion, return-to-cell, re-orthogonalization, and gesture primitives
// (spec §4.F).
package observer

import (
	"math"

	"github.com/kjirou/curvedspaces/dirichlet"
	"github.com/kjirou/curvedspaces/geom"
)

// maxDeltaT is the per-frame clamp on elapsed time, preventing a single
// slow frame from producing an implausibly large motion step.
const maxDeltaT = 0.1

// zAxis is the 2-plane axis forward motion boosts in, matching the z-w
// block Translation's dz boost uses.
const zAxis = 2

// Observer holds the user's placement matrix and the motion/gesture state
// spec §4.F and §5 describe as owned, under lock, by ModelData.
type Observer struct {
	Placement  geom.Matrix
	Speed      float64
	PausedSpeed float64
	Aperture   float64
}

// New returns an Observer at the origin, stationary, with the given
// initial aperture.
func New(aperture float64) *Observer {
	return &Observer{Placement: geom.Identity(), Aperture: aperture}
}

// Advance applies one frame of forward motion: the incremental
// curvature-appropriate boost in the z-w plane, folds back into the
// fundamental domain, and re-orthogonalizes (spec §4.F).
func (o *Observer) Advance(c geom.Curvature, poly *dirichlet.Polyhedron, deltaT float64) {
	if deltaT > maxDeltaT {
		deltaT = maxDeltaT
	}
	d := o.Speed * deltaT
	if d == 0 {
		return
	}
	step := forwardStep(c, d)
	o.Placement = geom.Product(step, o.Placement)
	o.Placement = dirichlet.StayInDomain(c, poly, o.Placement)
	o.Placement = geom.FastGramSchmidt(c, o.Placement)
}

// forwardStep builds the incremental forward-motion matrix for distance d
// under curvature c, in the z-w 2-plane (spherical/hyperbolic) or as a
// pure affine shift (flat) — the exact three cases spec §4.F lists.
// All three move the origin toward +z. Spherical is a genuine rotation
// (antisymmetric off-diagonal, preserving z²+w²); hyperbolic is a Minkowski boost (symmetric off-diagonal,
// preserving -z²+w² — spec §4.F's [[cosh d, sinh d], [sinh d, cosh d]]).
func forwardStep(c geom.Curvature, d float64) geom.Matrix {
	switch c {
	case geom.Flat:
		m := geom.Identity()
		m.Rows[3][2] = d
		return m
	case geom.Hyperbolic:
		m := geom.Identity()
		cd, sd := math.Cosh(d), math.Sinh(d)
		m.Rows[zAxis][zAxis] = cd
		m.Rows[zAxis][3] = sd
		m.Rows[3][zAxis] = sd
		m.Rows[3][3] = cd
		return m
	default: // Spherical
		m := geom.Identity()
		cd, sd := math.Cos(d), math.Sin(d)
		m.Rows[zAxis][zAxis] = cd
		m.Rows[zAxis][3] = -sd
		m.Rows[3][zAxis] = sd
		m.Rows[3][3] = cd
		return m
	}
}

// Rotate rotates the user body clockwise in the xy plane by theta (so the
// scenery appears to rotate counterclockwise), post-multiplying the
// placement (spec §4.F).
func (o *Observer) Rotate(theta float64) {
	c, s := math.Cos(theta), math.Sin(theta)
	m := geom.Identity()
	m.Rows[0][0], m.Rows[0][1] = c, s
	m.Rows[1][0], m.Rows[1][1] = -s, c
	o.Placement = geom.Product(o.Placement, m)
}

// Pinch adjusts aperture by half the pinch-scale deviation from 1,
// clamped to [0, 1], and reports whether a wall-mesh rebuild is now
// needed (spec §4.F).
func (o *Observer) Pinch(scale float64) (rebuildNeeded bool) {
	before := o.Aperture
	o.Aperture += 0.5 * (scale - 1)
	if o.Aperture < 0 {
		o.Aperture = 0
	} else if o.Aperture > 1 {
		o.Aperture = 1
	}
	return o.Aperture != before
}

// Tap toggles motion: if currently moving, stashes Speed into PausedSpeed
// and stops; if stationary, restores the stashed speed (spec §4.F).
func (o *Observer) Tap() {
	if o.Speed != 0 {
		o.PausedSpeed = o.Speed
		o.Speed = 0
		return
	}
	o.Speed, o.PausedSpeed = o.PausedSpeed, o.Speed
}
