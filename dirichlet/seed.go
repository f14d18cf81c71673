package dirichlet

import (
	"math"

	"github.com/kjirou/curvedspaces/geom"
)

// epsPlane is the threshold on the squared ternary cross product used to
// decide whether three bisector planes are independent enough to seed a
// banana (spec §4.C).
const epsPlane = 1e-4

// bisectorPlane builds the half-space H(g) = {v : ⟨v, n(g)⟩ <= 0} for
// group element g under curvature c, per spec §4.C's three curvature
// adjustments. n(g) is returned as a homogeneous (a, b, c, d) coefficient
// vector to be dotted against a raw point.
func bisectorPlane(c geom.Curvature, g geom.Matrix) geom.Vector {
	image := g.Apply(geom.Origin)
	diff := image.Sub(geom.Origin)
	switch c {
	case geom.Flat:
		translationNormSq := diff.X*diff.X + diff.Y*diff.Y + diff.Z*diff.Z
		return geom.Vector{X: diff.X, Y: diff.Y, Z: diff.Z, W: -0.5 * translationNormSq}
	case geom.Hyperbolic:
		return geom.Vector{X: diff.X, Y: diff.Y, Z: diff.Z, W: -diff.W}
	default: // Spherical
		return diff
	}
}

// planeValue evaluates a half-space's coefficient vector against a raw
// point: interior satisfies planeValue(plane, v) <= 0.
func planeValue(plane, v geom.Vector) float64 {
	return plane.EuclideanDot(v)
}

func (p *Polyhedron) newMatedPair() (*HalfEdge, *HalfEdge) {
	a := p.newHalfEdge()
	b := p.newHalfEdge()
	a.Mate = b.ID
	b.Mate = a.ID
	return a, b
}

// seedBanana builds the 2-vertex, 3-face "lune in 3D" seed from three
// mutually independent bisector planes, per spec §4.C. N is the chosen
// near-(-w-axis) vertex position; -N is its antipode.
func seedBanana(c geom.Curvature, n geom.Vector, planes [3]geom.Vector, matrices [3]geom.Matrix) *Polyhedron {
	p := newPolyhedron(c)

	va := p.newVertex(n)
	vb := p.newVertex(n.Scale(-1))

	abEdges := make([]*HalfEdge, 3)
	baEdges := make([]*HalfEdge, 3)
	for i := 0; i < 3; i++ {
		ab, ba := p.newMatedPair()
		ab.Tip = vb.ID
		ba.Tip = va.ID
		abEdges[i] = ab
		baEdges[i] = ba
	}
	va.Out = abEdges[0].ID
	vb.Out = baEdges[0].ID

	for i := 0; i < 3; i++ {
		f := p.newFace(planes[i], matrices[i])
		f.Half = abEdges[i].ID
		abEdges[i].Face = f.ID
		next := (i + 1) % 3
		baEdges[next].Face = f.ID
		abEdges[i].Next = baEdges[next].ID
		baEdges[next].Next = abEdges[i].ID
	}

	return p
}

// seedLens builds the n-vertex, 2-face seed used when only two
// independent generators exist (spherical lens spaces, flat slabs).
func seedLens(c geom.Curvature, n int, plane1, plane2 geom.Vector, m1, m2 geom.Matrix) *Polyhedron {
	p := newPolyhedron(c)

	vertices := make([]*Vertex, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		var pos geom.Vector
		if c == geom.Flat {
			pos = geom.Vector{X: math.Cos(theta), Y: math.Sin(theta), Z: 0, W: 1}
		} else {
			pos = geom.Vector{X: math.Cos(theta), Y: math.Sin(theta), Z: 0, W: 0}
		}
		vertices[i] = p.newVertex(pos)
	}

	abEdges := make([]*HalfEdge, n)
	baEdges := make([]*HalfEdge, n)
	for i := 0; i < n; i++ {
		ab, ba := p.newMatedPair()
		ab.Tip = vertices[(i+1)%n].ID
		ba.Tip = vertices[i].ID
		abEdges[i] = ab
		baEdges[i] = ba
		vertices[i].Out = ab.ID
	}

	face0 := p.newFace(plane1, m1)
	face0.Half = abEdges[0].ID
	face1 := p.newFace(plane2, m2)
	face1.Half = baEdges[0].ID

	for i := 0; i < n; i++ {
		abEdges[i].Face = face0.ID
		abEdges[i].Next = abEdges[(i+1)%n].ID

		baEdges[i].Face = face1.ID
		baEdges[i].Next = baEdges[(i-1+n)%n].ID
	}

	return p
}

// lensOrder reads the rotation angle of g1 in the z-w plane as
// atan2(M[z][w], M[z][z]), i.e. a block with +sin in M[z][w] (the
// transpose of the block Translation and the observer's forward-motion
// step build for a positive distance), and returns the order n such that
// n full steps close the circle.
func lensOrder(g1 geom.Matrix) (int, error) {
	const zAxis = 2
	const wAxis = 3
	angle := math.Atan2(g1.Rows[zAxis][wAxis], g1.Rows[zAxis][zAxis])
	if angle == 0 {
		return 0, ErrLensOrderIndeterminate
	}
	raw := 2 * math.Pi / angle
	n := math.Round(raw)
	if math.Abs(raw-n) > 1e-6 {
		return 0, ErrLensOrderIndeterminate
	}
	if int(n) < 3 {
		return 0, ErrLensOrderTooSmall
	}
	return int(n), nil
}
