package geom

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Matrix is a 4x4 matrix whose rows act on the right: v' = v·M. Every
// Matrix constructed by this package is meant to be an isometry of the
// model space it was built for (O(4), the Euclidean group, or O(3,1)).
type Matrix struct {
	Rows [4][4]float64
}

// Identity returns the 4x4 identity matrix.
func Identity() Matrix {
	var m Matrix
	for i := 0; i < 4; i++ {
		m.Rows[i][i] = 1
	}
	return m
}

// IsIdentity reports whether m equals the identity within eps in every
// entry.
func (m Matrix) IsIdentity(eps float64) bool {
	return EqualWithin(m, Identity(), eps)
}

// Row returns row i of m as a Vector.
func (m Matrix) Row(i int) Vector {
	r := m.Rows[i]
	return Vector{r[0], r[1], r[2], r[3]}
}

// Apply returns v·m.
func (m Matrix) Apply(v Vector) Vector {
	in := [4]float64{v.X, v.Y, v.Z, v.W}
	var out [4]float64
	for j := 0; j < 4; j++ {
		var sum float64
		for i := 0; i < 4; i++ {
			sum += in[i] * m.Rows[i][j]
		}
		out[j] = sum
	}
	return Vector{out[0], out[1], out[2], out[3]}
}

// Product returns a·b, i.e. the matrix such that v·(a·b) = (v·a)·b.
func Product(a, b Matrix) Matrix {
	var out Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a.Rows[i][k] * b.Rows[k][j]
			}
			out.Rows[i][j] = sum
		}
	}
	return out
}

// EqualWithin reports whether every one of the 16 entries of a and b
// agree within tol, using gonum's absolute-tolerance scalar comparison.
// Spec §4.B's deduplication and §8's round-trip properties both use this
// at ε = 1e-6 or tighter.
func EqualWithin(a, b Matrix, tol float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if !scalar.EqualWithinAbs(a.Rows[i][j], b.Rows[i][j], tol) {
				return false
			}
		}
	}
	return true
}

// Determinant returns the determinant of m via Laplace expansion along
// the first row.
func (m Matrix) Determinant() float64 {
	r := m.Rows
	minor := func(skipRow, skipCol int) float64 {
		var vals [3][3]float64
		ri := 0
		for i := 0; i < 4; i++ {
			if i == skipRow {
				continue
			}
			ci := 0
			for j := 0; j < 4; j++ {
				if j == skipCol {
					continue
				}
				vals[ri][ci] = r[i][j]
				ci++
			}
			ri++
		}
		return det3(
			vals[0][0], vals[0][1], vals[0][2],
			vals[1][0], vals[1][1], vals[1][2],
			vals[2][0], vals[2][1], vals[2][2],
		)
	}
	var det float64
	sign := 1.0
	for j := 0; j < 4; j++ {
		det += sign * r[0][j] * minor(0, j)
		sign = -sign
	}
	return det
}

// Parity returns the sign of m's determinant.
func (m Matrix) Parity() Parity {
	if m.Determinant() < 0 {
		return Negative
	}
	return Positive
}

// AntipodalMap returns -I, the spherical antipodal map v -> -v. Used only
// for odd-order spherical manifolds' inverted-tile buffer (spec §4.D,
// §6).
func AntipodalMap() Matrix {
	var m Matrix
	for i := 0; i < 4; i++ {
		m.Rows[i][i] = -1
	}
	return m
}

// boost2 returns the 4x4 matrix that is the identity everywhere except a
// 2x2 block in rows/cols (a, w). Spherical is a genuine rotation — row a
// gets (cos d, -sin d) and row w gets (sin d, cos d), i.e. v'_a = v_a*cos(d)
// + v_w*sin(d), v'_w = -v_a*sin(d) + v_w*cos(d) — since that block must
// preserve the Euclidean quadratic form a²+w²; the origin moves to +sin d
// along axis a, the same direction as the hyperbolic case. Hyperbolic is a Minkowski
// boost — row a gets (cosh d, sinh d) and row w gets (sinh d, cosh d),
// symmetric rather than antisymmetric, since only the symmetric form
// preserves the Minkowski quadratic form -a²+w² (spec §4.F: the hyperbolic
// step is [[cosh d, sinh d], [sinh d, cosh d]]). This is the building block
// for both Translation and the observer's per-axis forward-motion step.
func boost2(c Curvature, axis int, d float64) Matrix {
	m := Identity()
	const w = 3
	switch c {
	case Hyperbolic:
		cd, sd := math.Cosh(d), math.Sinh(d)
		m.Rows[axis][axis] = cd
		m.Rows[axis][w] = sd
		m.Rows[w][axis] = sd
		m.Rows[w][w] = cd
	default: // Spherical
		cd, sd := math.Cos(d), math.Sin(d)
		m.Rows[axis][axis] = cd
		m.Rows[axis][w] = -sd
		m.Rows[w][axis] = sd
		m.Rows[w][w] = cd
	}
	return m
}

// Translation returns the isometry translating the origin by (dx, dy,
// dz) in the curvature-appropriate sense: a pure affine shift of the w=1
// hyperplane (flat), or the composition of three axis boosts in the
// x-w, y-w, z-w planes (spherical, hyperbolic).
func Translation(c Curvature, dx, dy, dz float64) Matrix {
	if c == Flat {
		m := Identity()
		m.Rows[3][0] = dx
		m.Rows[3][1] = dy
		m.Rows[3][2] = dz
		return m
	}
	return Product(Product(boost2(c, 0, dx), boost2(c, 1, dy)), boost2(c, 2, dz))
}

// rotation3 returns a standard 3x3-embedded rotation about one of the x
// (axis=0), y (axis=1), or z (axis=2) axes by angle d, leaving w fixed.
func rotation3(axis int, d float64) Matrix {
	m := Identity()
	cd, sd := math.Cos(d), math.Sin(d)
	i, j := (axis+1)%3, (axis+2)%3
	m.Rows[i][i] = cd
	m.Rows[i][j] = sd
	m.Rows[j][i] = -sd
	m.Rows[j][j] = cd
	return m
}

// RotationSmall composes three axis rotations (x, then y, then z) by
// dthx, dthy, dthz respectively, acting on the left (scenery rotates
// opposite the observer's gesture) per spec §4.F. Despite the name, it is
// an exact composition of rotation matrices; "small" describes the
// gesture-sized angles it is normally called with, not an approximation.
func RotationSmall(dthx, dthy, dthz float64) Matrix {
	return Product(Product(rotation3(0, dthx), rotation3(1, dthy)), rotation3(2, dthz))
}

// GeometricInverse returns the metric-adjoint of m under curvature c: the
// transpose (spherical), the rigid-motion inverse (flat), or the
// Minkowski-adjoint with signature (-,-,-,+) (hyperbolic). For any
// isometry m, Product(m, m.GeometricInverse(c)) is the identity within
// the matrix ε.
func (m Matrix) GeometricInverse(c Curvature) Matrix {
	switch c {
	case Flat:
		var out Matrix
		// Rotational 3x3 block transposed.
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				out.Rows[i][j] = m.Rows[j][i]
			}
		}
		out.Rows[3][3] = 1
		// Translation row negated and rotated by R^T.
		t := [3]float64{m.Rows[3][0], m.Rows[3][1], m.Rows[3][2]}
		for j := 0; j < 3; j++ {
			var sum float64
			for i := 0; i < 3; i++ {
				sum += t[i] * out.Rows[i][j]
			}
			out.Rows[3][j] = -sum
		}
		return out
	case Hyperbolic:
		sign := [4]float64{-1, -1, -1, 1}
		var out Matrix
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				out.Rows[i][j] = sign[i] * sign[j] * m.Rows[j][i]
			}
		}
		return out
	default: // Spherical
		var out Matrix
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				out.Rows[i][j] = m.Rows[j][i]
			}
		}
		return out
	}
}

// normalizeRow rescales row to unit length under curvature c's metric
// (|⟨row, row⟩| = 1, so hyperbolic spacelike rows are rescaled too).
// Rows that are already (numerically) null are left unchanged — this is
// a best-effort drift correction, not a validating Normalize.
func normalizeRow(c Curvature, row Vector) Vector {
	n := math.Abs(Norm(c, row))
	if n <= 0 {
		return row
	}
	return row.Scale(1 / math.Sqrt(n))
}

// FastGramSchmidt restores m to (approximate) membership in the
// curvature-appropriate isometry group after accumulated rounding drift.
// For spherical and hyperbolic curvature, where translation is encoded as
// boosts mixing every row with the w-axis, all four rows are unit vectors
// under the ambient metric: each is rescaled to unit length, then
// orthogonalized from the bottom row up using a single first-order
// correction per pair (not an iterative reorthogonalization). For flat
// curvature the translation lives entirely in row 3's xyz part, which is
// not a unit-norm quantity under any metric and is carried through
// unchanged; only the rotational 3x3 block (rows 0-2) is
// reorthonormalized, against each other only. Called after every observer
// motion update and every mouse-drag update (spec §5).
func FastGramSchmidt(c Curvature, m Matrix) Matrix {
	if c == Flat {
		return fastGramSchmidtFlat(m)
	}

	var rows [4]Vector
	for i := 0; i < 4; i++ {
		rows[i] = normalizeRow(c, m.Row(i))
	}
	for i := 2; i >= 0; i-- {
		for j := i + 1; j < 4; j++ {
			nj := Norm(c, rows[j])
			if nj == 0 {
				continue
			}
			proj := InnerProduct(c, rows[i], rows[j]) / nj
			rows[i] = rows[i].Sub(rows[j].Scale(proj))
		}
		rows[i] = normalizeRow(c, rows[i])
	}
	var out Matrix
	for i := 0; i < 4; i++ {
		out.Rows[i] = [4]float64{rows[i].X, rows[i].Y, rows[i].Z, rows[i].W}
	}
	return out
}

func fastGramSchmidtFlat(m Matrix) Matrix {
	var rows [3]Vector
	for i := 0; i < 3; i++ {
		rows[i] = normalizeRow(Flat, m.Row(i))
	}
	for i := 1; i >= 0; i-- {
		for j := i + 1; j < 3; j++ {
			proj := InnerProduct(Flat, rows[i], rows[j])
			rows[i] = rows[i].Sub(rows[j].Scale(proj))
		}
		rows[i] = normalizeRow(Flat, rows[i])
	}
	out := m
	for i := 0; i < 3; i++ {
		out.Rows[i] = [4]float64{rows[i].X, rows[i].Y, rows[i].Z, rows[i].W}
	}
	return out
}
