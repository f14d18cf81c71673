// Package projection builds the screen-space projection matrix and view
// frustum side-plane normals shared by the honeycomb culler and the
// rasterizer collaborator (spec §4.E).
package projection

import (
	"math"

	"github.com/kjirou/curvedspaces/geom"
)

// ClipBox selects which half of the near/far wedge a projection matrix
// clips to.
type ClipBox int8

const (
	Full ClipBox = iota
	FrontHalf
	BackHalf
)

// wNear and wFar (by curvature) are the fixed corner w-values of the view
// wedge spec §4.E defines.
const wNear = 512

func wFar(c geom.Curvature) float64 {
	switch c {
	case geom.Spherical:
		return -512
	case geom.Hyperbolic:
		return 1
	default:
		return 0
	}
}

// CharacteristicViewSize returns the on-screen distance subtending a 45°
// half-angle for an image of width w and height h (spec §4.E).
func CharacteristicViewSize(w, h float64) float64 {
	if w > h {
		return 0.5 * w
	}
	return 0.5 * h
}

// MakeProjectionMatrix returns the 4x4 matrix taking the view wedge with
// corners (±w/c, ±h/c, 1, wNear) and (±w/c, ±h/c, 1, wFar) onto the clip
// wedge {-1 <= x, y <= 1, 0 <= z <= w}, per curvature and the requested
// clip box (spec §4.E).
func MakeProjectionMatrix(width, height float64, c geom.Curvature, box ClipBox) geom.Matrix {
	charSize := CharacteristicViewSize(width, height)
	far := wFar(c)

	var m geom.Matrix
	m.Rows[0][0] = charSize / width
	m.Rows[1][1] = charSize / height
	m.Rows[2][2] = 1

	// Map w in [wNear, far] linearly onto z in [0, w]: with z' = a*w + b*z
	// and w' = w (the clip-space w carries the original homogeneous w so
	// the perspective divide still works), solving the two endpoint
	// conditions z'(wNear)=0*wNear and z'(far)=1*far gives:
	denom := wNear - far
	a := -far / denom
	b := -a * wNear
	m.Rows[2][2] = b
	m.Rows[3][2] = a
	m.Rows[3][3] = 1

	switch box {
	case FrontHalf:
		m = geom.Product(m, zCompress(0, 0.5))
	case BackHalf:
		m = geom.Product(m, zCompress(0.5, 1))
	}
	return m
}

// zCompress maps z in [0, w] linearly onto the sub-band [lo, hi] of the
// same range, used to post-compose front/back half clipping onto the
// full projection matrix.
func zCompress(lo, hi float64) geom.Matrix {
	m := geom.Identity()
	m.Rows[2][2] = hi - lo
	m.Rows[3][2] = lo
	return m
}

// FrustumSideNormals returns the four inward unit normals of the view
// frustum's side hyperplanes for an image of width w and height h; all
// lie in the hyperplane w=0 (spec §4.D step 1).
func FrustumSideNormals(width, height float64) [4]geom.Vector {
	charSize := CharacteristicViewSize(width, height)
	nx := normalize2(charSize, width)
	ny := normalize2(charSize, height)
	return [4]geom.Vector{
		{X: nx.a, Y: 0, Z: nx.b, W: 0},
		{X: -nx.a, Y: 0, Z: nx.b, W: 0},
		{X: 0, Y: ny.a, Z: ny.b, W: 0},
		{X: 0, Y: -ny.a, Z: ny.b, W: 0},
	}
}

type pair struct{ a, b float64 }

// normalize2 returns the unit normal (a, b) to the line through (0,0) and
// (extent, charSize) in the (axis, z) plane, pointing inward (toward the
// z axis).
func normalize2(charSize, extent float64) pair {
	length := hypot(charSize, extent)
	return pair{a: -charSize / length, b: extent / length}
}

func hypot(a, b float64) float64 {
	return math.Sqrt(a*a + b*b)
}
