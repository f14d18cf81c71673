package geom

import (
	"fmt"
	"math"
)

// Origin is (0, 0, 0, 1), the basepoint shared by all three model spaces.
var Origin = Vector{W: 1}

// Vector is an ordered 4-tuple (x, y, z, w). Depending on curvature it
// represents a point on the unit 3-sphere, a point on the affine
// hyperplane w=1, or a point on the upper sheet of the Minkowski
// hyperboloid; see the package doc and spec §3.
type Vector struct {
	X, Y, Z, W float64
}

func (v Vector) String() string {
	return fmt.Sprintf("(%.6g, %.6g, %.6g, %.6g)", v.X, v.Y, v.Z, v.W)
}

// Add returns the component-wise sum of v and other.
func (v Vector) Add(other Vector) Vector {
	return Vector{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

// Sub returns the component-wise difference of v and other.
func (v Vector) Sub(other Vector) Vector {
	return Vector{v.X - other.X, v.Y - other.Y, v.Z - other.Z, v.W - other.W}
}

// Scale returns v scaled by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// EuclideanDot is the plain 4-dimensional dot product, curvature-agnostic.
// It backs InnerProduct for the spherical case and the plane-membership
// tests in the Dirichlet engine, which always work in raw ambient
// coordinates regardless of curvature.
func (v Vector) EuclideanDot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

// InnerProduct returns ⟨v, other⟩ under the curvature-appropriate form:
// the Euclidean form on R^4 (spherical), the translational form on the
// xyz part only (flat), or the Minkowski form with signature (-,-,-,+)
// (hyperbolic).
func InnerProduct(c Curvature, v, other Vector) float64 {
	switch c {
	case Flat:
		return v.X*other.X + v.Y*other.Y + v.Z*other.Z
	case Hyperbolic:
		return -v.X*other.X - v.Y*other.Y - v.Z*other.Z + v.W*other.W
	default: // Spherical and None fall back to the Euclidean form.
		return v.EuclideanDot(other)
	}
}

// Norm returns ⟨v, v⟩ under the curvature-appropriate inner product. It
// may be negative (hyperbolic, spacelike vectors) or zero.
func Norm(c Curvature, v Vector) float64 {
	return InnerProduct(c, v, v)
}

// Normalize divides v by √⟨v, v⟩ using the curvature-appropriate inner
// product. It fails with ErrNonPositiveNorm if v is null or has
// imaginary norm under that product.
func Normalize(c Curvature, v Vector) (Vector, error) {
	n := Norm(c, v)
	if n <= 0 {
		return Vector{}, fmt.Errorf("%w: curvature=%s norm=%g", ErrNonPositiveNorm, c, n)
	}
	return v.Scale(1 / math.Sqrt(n)), nil
}

// TernaryCross returns the 4-vector orthogonal, under the standard
// Euclidean pairing, to each of a, b, and c: the 4-vector analogue of the
// 3D cross product, computed as the signed 3-minors of the 3x4 matrix
// formed by stacking a, b, c. Used both to seed the Dirichlet domain's
// first vertex and to locate boundary-crossing vertices during half-space
// intersection (spec §4.C).
func TernaryCross(a, b, c Vector) Vector {
	m := [3][4]float64{
		{a.X, a.Y, a.Z, a.W},
		{b.X, b.Y, b.Z, b.W},
		{c.X, c.Y, c.Z, c.W},
	}
	minor := func(skipCol int) float64 {
		var cols [3]int
		n := 0
		for i := 0; i < 4; i++ {
			if i == skipCol {
				continue
			}
			cols[n] = i
			n++
		}
		return det3(
			m[0][cols[0]], m[0][cols[1]], m[0][cols[2]],
			m[1][cols[0]], m[1][cols[1]], m[1][cols[2]],
			m[2][cols[0]], m[2][cols[1]], m[2][cols[2]],
		)
	}
	return Vector{
		X: +minor(0),
		Y: -minor(1),
		Z: +minor(2),
		W: -minor(3),
	}
}

// DistanceBetween returns the intrinsic distance between two arbitrary
// points a and b under curvature c, generalizing Distance (which is the
// special case a = Origin) via the same inner product used by Norm:
// acos of the Euclidean dot product on the unit sphere, acosh of the
// Minkowski inner product on the hyperboloid, or plain Euclidean length
// of the translational part in flat space.
func DistanceBetween(c Curvature, a, b Vector) float64 {
	switch c {
	case Spherical:
		w := a.EuclideanDot(b)
		if w > 1 {
			w = 1
		} else if w < -1 {
			w = -1
		}
		return math.Acos(w)
	case Hyperbolic:
		w := InnerProduct(c, a, b)
		if w < 1 {
			w = 1
		}
		return math.Acosh(w)
	default: // Flat
		diff := b.Sub(a)
		return math.Sqrt(diff.X*diff.X + diff.Y*diff.Y + diff.Z*diff.Z)
	}
}

func det3(a, b, c, d, e, f, g, h, i float64) float64 {
	return a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
}

// Distance returns the intrinsic (curvature-appropriate) distance from
// the origin to a point whose image under an isometry is represented by
// v: acos(w) for spherical, the Euclidean length of the translational
// part for flat, acosh(w) for hyperbolic. Arguments are clamped to valid
// domains so rounding noise at the boundary never produces NaN. This is
// the same computation spec §4.B performs directly on M[3][3]: v is
// simply the image of Origin under that matrix, i.e. the matrix's last
// row.
func Distance(c Curvature, v Vector) float64 {
	switch c {
	case Spherical:
		w := v.W
		if w > 1 {
			w = 1
		} else if w < -1 {
			w = -1
		}
		return math.Acos(w)
	case Hyperbolic:
		w := v.W
		if w < 1 {
			w = 1
		}
		return math.Acosh(w)
	default: // Flat
		return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	}
}
