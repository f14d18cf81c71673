// Package mesh turns a Dirichlet polyhedron into the vertex/texture/color/
// index buffers a rasterizer collaborator consumes: wall trapezoids,
// vertex-figure annuli, and the icosahedral sphere used for centerpiece
// decorations (spec §4.G, §6).
package mesh

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/kjirou/curvedspaces/dirichlet"
	"github.com/kjirou/curvedspaces/geom"
)

// VertexBuffer is the flat set of per-vertex attribute arrays a rasterizer
// collaborator consumes: positions (4-tuple), texture coordinates
// (3-tuple), and premultiplied-alpha colors (4-tuple), plus a triangle
// index array (spec §6).
type VertexBuffer struct {
	Positions []geom.Vector
	TexCoords [][3]float64
	Colors    [][4]float64
	Indices   []int
}

func (b *VertexBuffer) addVertex(pos geom.Vector, tex [3]float64, col [4]float64) int {
	b.Positions = append(b.Positions, pos)
	b.TexCoords = append(b.TexCoords, tex)
	b.Colors = append(b.Colors, col)
	return len(b.Positions) - 1
}

func (b *VertexBuffer) addTriangle(a, c, d int) {
	b.Indices = append(b.Indices, a, c, d)
}

// append merges other into b, offsetting other's indices so they still
// point at the right vertices once appended.
func (b *VertexBuffer) append(other *VertexBuffer) {
	offset := len(b.Positions)
	b.Positions = append(b.Positions, other.Positions...)
	b.TexCoords = append(b.TexCoords, other.TexCoords...)
	b.Colors = append(b.Colors, other.Colors...)
	for _, idx := range other.Indices {
		b.Indices = append(b.Indices, idx+offset)
	}
}

// Walls builds the Dirichlet-wall mesh: each n-sided face is an annulus of
// n trapezoids between the face's outer boundary and an inner boundary
// interpolated toward the center by aperture alpha. If alpha is 1, walls
// are invisible and an empty buffer is returned (spec §4.G). Each face's
// trapezoid ring is independent of every other's, so the per-face work is
// fanned out and merged back in a stable face-ID order, keeping the result
// deterministic regardless of goroutine scheduling.
func Walls(poly *dirichlet.Polyhedron, aperture float64) *VertexBuffer {
	buf := &VertexBuffer{}
	if aperture >= 1 {
		return buf
	}

	ids := make([]dirichlet.FaceID, 0, len(poly.Faces))
	for id := range poly.Faces {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	sub := make([]*VertexBuffer, len(ids))
	g, _ := errgroup.WithContext(context.Background())
	for i, id := range ids {
		i, f := i, poly.Faces[id]
		g.Go(func() error {
			sub[i] = wallFace(poly, f, aperture)
			return nil
		})
	}
	_ = g.Wait()

	for _, s := range sub {
		buf.append(s)
	}
	return buf
}

// wallFace builds one face's trapezoid ring in isolation.
func wallFace(poly *dirichlet.Polyhedron, f *dirichlet.Face, aperture float64) *VertexBuffer {
	buf := &VertexBuffer{}
	color := [4]float64{f.Color.R, f.Color.G, f.Color.B, f.Color.A}

	walkFaceEdges(poly, f, func(i, n int, h *dirichlet.HalfEdge, next *dirichlet.HalfEdge) {
		nearOuter := h.OuterPoint
		farOuter := next.OuterPoint
		nearInner := wallInner(poly.Curvature, f.CenterNormalized, nearOuter, aperture)
		farInner := wallInner(poly.Curvature, f.CenterNormalized, farOuter, aperture)

		parity := float64(i % 2)
		iNI := buf.addVertex(nearInner, [3]float64{parity, 0, 0}, color)
		iFI := buf.addVertex(farInner, [3]float64{parity + 1, 0, 0}, color)
		iNO := buf.addVertex(nearOuter, [3]float64{parity, 1, 0}, color)
		iFO := buf.addVertex(farOuter, [3]float64{parity + 1, 1, 0}, color)

		buf.addTriangle(iNI, iNO, iFO)
		buf.addTriangle(iNI, iFO, iFI)
	})
	return buf
}

// wallInner interpolates from the face center toward the outer point by
// parameter aperture, then renormalizes (spec §4.G).
func wallInner(c geom.Curvature, center, outer geom.Vector, aperture float64) geom.Vector {
	v := center.Scale(1 - aperture).Add(outer.Scale(aperture))
	if c == geom.Flat {
		v.W = 1
		return v
	}
	n, err := geom.Normalize(c, v)
	if err != nil {
		return center
	}
	return n
}

// walkFaceEdges calls fn for every half-edge h in face f's cycle, along
// with its successor (for the far side of the trapezoid) and its index
// within the cycle (for alternating texture parity).
func walkFaceEdges(p *dirichlet.Polyhedron, f *dirichlet.Face, fn func(i, n int, h, next *dirichlet.HalfEdge)) {
	edges := p.FaceHalfEdges(f)
	n := len(edges)
	for i, h := range edges {
		next := edges[(i+1)%n]
		fn(i, n, h, next)
	}
}

// VertexFigures builds the two-sided (light outward-facing, dark
// inward-facing with reversed winding) annulus of trapezoids at every
// polyhedron vertex, one pair of facets per incident half-edge (spec
// §4.G).
func VertexFigures(poly *dirichlet.Polyhedron) *VertexBuffer {
	buf := &VertexBuffer{}
	light := [4]float64{0.9, 0.9, 0.9, 1}
	dark := [4]float64{0.1, 0.1, 0.1, 1}

	for _, v := range poly.Vertices {
		outbound := poly.VertexOutboundHalfEdges(v)
		n := len(outbound)
		for i, h := range outbound {
			next := outbound[(i+1)%n]
			a, b := h.OuterPoint, next.OuterPoint
			ia, ib := h.InnerPoint, next.InnerPoint

			i1 := buf.addVertex(a, [3]float64{0, 0, 0}, light)
			i2 := buf.addVertex(b, [3]float64{1, 0, 0}, light)
			i3 := buf.addVertex(ib, [3]float64{1, 1, 0}, light)
			i4 := buf.addVertex(ia, [3]float64{0, 1, 0}, light)
			buf.addTriangle(i1, i2, i3)
			buf.addTriangle(i1, i3, i4)

			j1 := buf.addVertex(a, [3]float64{0, 0, 0}, dark)
			j2 := buf.addVertex(ia, [3]float64{0, 1, 0}, dark)
			j3 := buf.addVertex(ib, [3]float64{1, 1, 0}, dark)
			j4 := buf.addVertex(b, [3]float64{1, 0, 0}, dark)
			buf.addTriangle(j1, j2, j3)
			buf.addTriangle(j1, j3, j4)
		}
	}
	return buf
}

// phi is the golden ratio used to place the icosahedron's twelve
// vertices.
var phi = (1 + math.Sqrt(5)) / 2

var icosahedronVertices = buildIcosahedronVertices()

func buildIcosahedronVertices() [12]geom.Vector {
	raw := [12][3]float64{
		{0, 1, phi}, {0, 1, -phi}, {0, -1, phi}, {0, -1, -phi},
		{1, phi, 0}, {1, -phi, 0}, {-1, phi, 0}, {-1, -phi, 0},
		{phi, 0, 1}, {phi, 0, -1}, {-phi, 0, 1}, {-phi, 0, -1},
	}
	scale := 1 / math.Sqrt(phi*phi+1)
	var out [12]geom.Vector
	for i, r := range raw {
		out[i] = geom.Vector{X: r[0] * scale, Y: r[1] * scale, Z: r[2] * scale, W: 0}
	}
	return out
}

var icosahedronFaces = [20][3]int{
	{0, 2, 8}, {0, 8, 4}, {0, 4, 6}, {0, 6, 10}, {0, 10, 2},
	{3, 1, 9}, {3, 9, 5}, {3, 5, 7}, {3, 7, 11}, {3, 11, 1},
	{2, 5, 8}, {8, 9, 4}, {4, 1, 6}, {6, 11, 10}, {10, 7, 2},
	{5, 2, 7}, {9, 8, 5}, {1, 4, 9}, {11, 6, 1}, {7, 10, 11},
}

// Sphere builds a unit-sphere triangle mesh by subdividing an
// icosahedron level times (level in 0..3), inserting re-normalized
// mid-edge points and sharing each one via a (v0, v1) keyed table so it is
// only created once (spec §4.G).
func Sphere(level int) *VertexBuffer {
	vertices := make([]geom.Vector, len(icosahedronVertices))
	copy(vertices, icosahedronVertices[:])
	triangles := make([][3]int, len(icosahedronFaces))
	for i, f := range icosahedronFaces {
		triangles[i] = f
	}

	for ; level > 0; level-- {
		midpoints := map[[2]int]int{}
		var next [][3]int
		mid := func(a, b int) int {
			key := [2]int{a, b}
			if a > b {
				key = [2]int{b, a}
			}
			if idx, ok := midpoints[key]; ok {
				return idx
			}
			sum := vertices[a].Add(vertices[b])
			n, err := geom.Normalize(geom.Spherical, sum)
			if err != nil {
				n = sum
			}
			vertices = append(vertices, n)
			idx := len(vertices) - 1
			midpoints[key] = idx
			return idx
		}
		for _, tri := range triangles {
			a, b, c := tri[0], tri[1], tri[2]
			ab, bc, ca := mid(a, b), mid(b, c), mid(c, a)
			next = append(next,
				[3]int{a, ab, ca},
				[3]int{b, bc, ab},
				[3]int{c, ca, bc},
				[3]int{ab, bc, ca},
			)
		}
		triangles = next
	}

	buf := &VertexBuffer{}
	white := [4]float64{1, 1, 1, 1}
	for _, v := range vertices {
		buf.addVertex(v, [3]float64{0, 0, 0}, white)
	}
	for _, tri := range triangles {
		buf.Indices = append(buf.Indices, tri[0], tri[1], tri[2])
	}
	return buf
}

// Observer builds the small fixed-topology marker drawn at the observer's
// own position when viewed from outside the current cell: a flattened
// tetrahedron pointing along its own forward direction, exact geometry
// meaningful only as vertex/index buffers to the rasterizer collaborator
// (spec §4.G, §9).
func Observer() *VertexBuffer {
	buf := &VertexBuffer{}
	color := [4]float64{0.9, 0.2, 0.2, 1}
	apex := geom.Vector{X: 0, Y: 0, Z: 0.6, W: 0}
	base := []geom.Vector{
		{X: 0.3, Y: 0, Z: -0.2, W: 0},
		{X: -0.15, Y: 0.26, Z: -0.2, W: 0},
		{X: -0.15, Y: -0.26, Z: -0.2, W: 0},
	}
	iApex := buf.addVertex(apex, [3]float64{0.5, 1, 0}, color)
	ib := make([]int, len(base))
	for i, v := range base {
		ib[i] = buf.addVertex(v, [3]float64{float64(i) / float64(len(base)), 0, 0}, color)
	}
	for i := range base {
		buf.addTriangle(iApex, ib[i], ib[(i+1)%len(base)])
	}
	buf.addTriangle(ib[0], ib[2], ib[1])
	return buf
}

// Gyroscope builds three mutually orthogonal rings, a fixed-topology
// centerpiece decoration with no dependence on the tiling's geometry
// (spec §4.G, §9).
func Gyroscope() *VertexBuffer {
	buf := &VertexBuffer{}
	colors := [3][4]float64{
		{0.9, 0.2, 0.2, 1},
		{0.2, 0.9, 0.2, 1},
		{0.2, 0.2, 0.9, 1},
	}
	const segments = 24
	for axis := 0; axis < 3; axis++ {
		for i := 0; i < segments; i++ {
			theta := 2 * math.Pi * float64(i) / segments
			next := 2 * math.Pi * float64(i+1) / segments
			p0 := ringPoint(axis, theta)
			p1 := ringPoint(axis, next)
			buf.addVertex(p0, [3]float64{float64(i) / segments, 0, 0}, colors[axis])
			buf.addVertex(p1, [3]float64{float64(i+1) / segments, 0, 0}, colors[axis])
		}
	}
	return buf
}

// ringPoint places a point on the unit circle in the plane perpendicular
// to the given axis (0=x, 1=y, 2=z).
func ringPoint(axis int, theta float64) geom.Vector {
	c, s := math.Cos(theta), math.Sin(theta)
	switch axis {
	case 0:
		return geom.Vector{X: 0, Y: c, Z: s, W: 0}
	case 1:
		return geom.Vector{X: c, Y: 0, Z: s, W: 0}
	default:
		return geom.Vector{X: c, Y: s, Z: 0, W: 0}
	}
}

// Cube builds a unit cube centered at the origin, a fixed-topology
// centerpiece decoration (spec §4.G, §9).
func Cube() *VertexBuffer {
	buf := &VertexBuffer{}
	color := [4]float64{0.7, 0.7, 0.9, 1}
	corners := [8]geom.Vector{
		{X: -0.5, Y: -0.5, Z: -0.5, W: 0}, {X: 0.5, Y: -0.5, Z: -0.5, W: 0},
		{X: 0.5, Y: 0.5, Z: -0.5, W: 0}, {X: -0.5, Y: 0.5, Z: -0.5, W: 0},
		{X: -0.5, Y: -0.5, Z: 0.5, W: 0}, {X: 0.5, Y: -0.5, Z: 0.5, W: 0},
		{X: 0.5, Y: 0.5, Z: 0.5, W: 0}, {X: -0.5, Y: 0.5, Z: 0.5, W: 0},
	}
	faces := [6][4]int{
		{0, 1, 2, 3}, {5, 4, 7, 6}, {4, 0, 3, 7},
		{1, 5, 6, 2}, {3, 2, 6, 7}, {4, 5, 1, 0},
	}
	for _, f := range faces {
		idx := make([]int, 4)
		for i, c := range f {
			idx[i] = buf.addVertex(corners[c], [3]float64{float64(i % 2), float64(i / 2), 0}, color)
		}
		buf.addTriangle(idx[0], idx[1], idx[2])
		buf.addTriangle(idx[0], idx[2], idx[3])
	}
	return buf
}
