package dirichlet

import (
	"sort"

	"github.com/kjirou/curvedspaces/geom"
)

const (
	outerPointStep   = 0.1 // geodesic step along an outbound half-edge (spec §4.C)
	innerPointBlend  = 0.7 // convex-combination parameter toward the vertex-figure face center
	colorSaturation  = 0.3
	colorLightness   = 0.5
	partnerTolerance = 1e-6
)

// normalize fills in Position/Sphere for every vertex and CenterRaw/
// CenterNormalized for every face, then derives Outradius as the largest
// intrinsic distance from the origin to any vertex (spec §3, §4.C).
func (p *Polyhedron) normalize() {
	for _, v := range p.Vertices {
		v.Position = normalizeToMetric(p.Curvature, v.Raw)
		sphere, err := geom.Normalize(geom.Spherical, v.Raw)
		if err == nil {
			v.Sphere = sphere
		}
	}

	p.Outradius = 0
	for _, v := range p.Vertices {
		d := geom.Distance(p.Curvature, v.Position)
		if d > p.Outradius {
			p.Outradius = d
		}
	}

	for _, f := range p.Faces {
		var sum geom.Vector
		n := 0
		walkFace(p, f, func(h *HalfEdge) {
			sum = sum.Add(p.Vertices[h.Tip].Sphere)
			n++
		})
		f.CenterRaw = sum
		if normalized, err := geom.Normalize(p.Curvature, sum); err == nil {
			f.CenterNormalized = normalized
		}
	}
}

// normalizeToMetric normalizes a raw vector to the curvature's intrinsic
// metric. For flat space the raw ray is divided by its w component, which
// puts it on the affine plane w=1 (a ray with w=0 is returned unchanged).
func normalizeToMetric(c geom.Curvature, v geom.Vector) geom.Vector {
	if c == geom.Flat {
		if v.W != 0 {
			return v.Scale(1 / v.W)
		}
		return v
	}
	n, err := geom.Normalize(c, v)
	if err != nil {
		return v
	}
	return n
}

// walkFace calls fn for every half-edge around f's boundary cycle.
func walkFace(p *Polyhedron, f *Face, fn func(h *HalfEdge)) {
	start := f.Half
	cur := start
	for {
		h := p.HalfEdges[cur]
		fn(h)
		cur = h.Next
		if cur == start {
			break
		}
	}
}

// wallGeometry computes, for every half-edge, the Base/Altitude of the
// triangle from its face's center to its edge, then rescales every Base so
// the longest one across the whole polyhedron is exactly 1 (spec §4.C).
func (p *Polyhedron) wallGeometry() {
	longest := 0.0
	for _, h := range p.HalfEdges {
		face := p.Faces[h.Face]
		tip := p.Vertices[h.Tip].Position
		tail := p.tail(h.ID).Position
		base := geom.DistanceBetween(p.Curvature, tail, tip)
		mid := tail.Add(tip).Scale(0.5)
		altitude := geom.DistanceBetween(p.Curvature, face.CenterNormalized, mid)
		h.Base = base
		h.Altitude = altitude
		if base > longest {
			longest = base
		}
	}
	if longest <= 0 {
		return
	}
	for _, h := range p.HalfEdges {
		h.Base /= longest
		h.Altitude /= longest
	}
}

// vertexFigures computes OuterPoint (a short geodesic step along each
// outbound half-edge) and InnerPoint (blended toward the vertex figure's
// own notional center) used to draw the small polygon around each vertex
// that shows which faces meet there (spec §4.C).
func (p *Polyhedron) vertexFigures() {
	sums := map[VertexID]geom.Vector{}
	counts := map[VertexID]int{}
	for _, h := range p.HalfEdges {
		tail := p.tail(h.ID)
		tip := p.Vertices[h.Tip].Position
		h.OuterPoint = geodesicStep(p.Curvature, tail.Position, tip, outerPointStep)
		sums[tail.ID] = sums[tail.ID].Add(h.OuterPoint)
		counts[tail.ID]++
	}
	for _, h := range p.HalfEdges {
		id := p.tail(h.ID).ID
		center := sums[id].Scale(1 / float64(counts[id]))
		h.InnerPoint = blend(p.Curvature, h.OuterPoint, center, innerPointBlend)
	}
}

// geodesicStep moves fraction t of the way from a toward b along the
// curvature's geodesic, then renormalizes to the intrinsic metric.
func geodesicStep(c geom.Curvature, a, b geom.Vector, t float64) geom.Vector {
	return blend(c, a, b, t)
}

// blend forms a convex combination under the ambient affine structure and
// renormalizes; for flat space this is an ordinary affine interpolation,
// for spherical/hyperbolic it is a chordal approximation to the geodesic
// blend, adequate at the short step lengths used here.
func blend(c geom.Curvature, a, b geom.Vector, t float64) geom.Vector {
	v := a.Scale(1 - t).Add(b.Scale(t))
	if c == geom.Flat {
		v.W = 1
		return v
	}
	n, err := geom.Normalize(c, v)
	if err != nil {
		return a
	}
	return n
}

// assignColors pairs each face with its partner (the face whose isometry
// is this face's geometric inverse) and assigns shared color indices, then
// derives an HSL-based color and a greyscale fallback for each (spec
// §4.C).
func (p *Polyhedron) assignColors() {
	ids := make([]FaceID, 0, len(p.Faces))
	for id := range p.Faces {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	visited := map[FaceID]bool{}
	nextIndex := 0
	for _, id := range ids {
		if visited[id] {
			continue
		}
		f := p.Faces[id]
		inverse := f.Matrix.GeometricInverse(p.Curvature)
		partner := findPartner(p, ids, id, inverse)
		f.ColorIndex = nextIndex
		visited[id] = true
		if partner != 0 && partner != id {
			p.Faces[partner].ColorIndex = nextIndex
			visited[partner] = true
		}
		nextIndex++
	}

	for _, id := range ids {
		f := p.Faces[id]
		f.Color = hslColor(f.ColorIndex, nextIndex)
	}
}

func findPartner(p *Polyhedron, ids []FaceID, self FaceID, inverse geom.Matrix) FaceID {
	for _, id := range ids {
		if id == self {
			continue
		}
		if geom.EqualWithin(p.Faces[id].Matrix, inverse, partnerTolerance) {
			return id
		}
	}
	return 0
}

func hslColor(index, count int) Color {
	if count <= 0 {
		count = 1
	}
	hue := float64(index) / float64(count)
	r, g, b := hslToRGB(hue, colorSaturation, colorLightness)
	grey := (float64(index)/float64(count) + 4) / 5
	return Color{R: r, G: g, B: b, A: 1, Grey: grey}
}

func hslToRGB(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	r = hueToRGB(p, q, h+1.0/3.0)
	g = hueToRGB(p, q, h)
	b = hueToRGB(p, q, h-1.0/3.0)
	return r, g, b
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

// finalize runs normalize, wallGeometry, vertexFigures, assignColors in
// sequence after the intersection loop has settled the final topology.
func (p *Polyhedron) finalize() {
	p.normalize()
	p.wallGeometry()
	p.vertexFigures()
	p.assignColors()
}
