// Package dirichlet builds the Dirichlet fundamental domain of a
// holonomy group as a half-edge polyhedron, using a unified projective
// model that treats spherical, flat, and hyperbolic curvature through a
// single set of curvature-parameterized adjustments (spec §4.C).
//
// The half-edge graph is an arena indexed by stable integer handles
// (VertexID, HalfEdgeID, FaceID) rather than raw pointers, in the spirit
// of conway's map[int]*Vertex/*Edge/*Face arenas — this keeps navigation
// O(1) while letting mark-and-sweep deletion during half-space
// intersection (spec §4.C) simply drop map entries instead of chasing
// cyclic ownership.
package dirichlet

import (
	"fmt"
	"math"

	"github.com/kjirou/curvedspaces/geom"
)

type VertexID int
type HalfEdgeID int
type FaceID int

// Vertex is a ray from the origin, carrying one outbound half-edge and
// the two normalized forms used downstream: Position (intrinsic metric)
// and Sphere (unit 3-sphere, used only for interpolation/centroid sums).
// Vertices at projective infinity are unsupported (spec §3).
type Vertex struct {
	ID       VertexID
	Raw      geom.Vector // raw 4-vector, valid during construction
	Position geom.Vector // normalized to the intrinsic curvature metric
	Sphere   geom.Vector // normalized to the unit 3-sphere
	Out      HalfEdgeID  // one outbound half-edge
	deleted  bool
}

// HalfEdge is a directed edge: Tip is the vertex it points to, Mate is
// the oppositely directed half-edge sharing the same underlying edge,
// Next is the successor within its Face's boundary cycle.
type HalfEdge struct {
	ID    HalfEdgeID
	Tip   VertexID
	Mate  HalfEdgeID
	Next  HalfEdgeID
	Face  FaceID

	// Base and Altitude describe the face-center-to-edge triangle,
	// normalized so the longest Base across the whole polyhedron is 1
	// (spec §4.C finalization).
	Base, Altitude float64

	// OuterPoint and InnerPoint are vertex-figure geometry computed at
	// finalization (spec §4.C).
	OuterPoint, InnerPoint geom.Vector

	deleted bool
}

// Color is a face's HSL-derived RGBA plus a greyscale fallback value for
// when color-coding is disabled (spec §4.C).
type Color struct {
	R, G, B, A float64
	Grey       float64
}

// Face is a half-space H = {v : ⟨v, Plane⟩ <= 0} together with the
// isometry whose bisector produced it.
type Face struct {
	ID     FaceID
	Half   HalfEdgeID  // one incident half-edge
	Plane  geom.Vector // half-space coefficients (a, b, c, d)
	Matrix geom.Matrix // isometry whose bisector produced this face
	ColorIndex int
	Color      Color
	CenterRaw, CenterNormalized geom.Vector

	deleted bool
}

// Polyhedron is a half-edge polyhedron: the three arenas, the curvature
// it was built under, and the derived outradius (spec §3).
type Polyhedron struct {
	Curvature geom.Curvature
	Vertices  map[VertexID]*Vertex
	HalfEdges map[HalfEdgeID]*HalfEdge
	Faces     map[FaceID]*Face
	Outradius float64

	nextVertexID   VertexID
	nextHalfEdgeID HalfEdgeID
	nextFaceID     FaceID
}

func newPolyhedron(c geom.Curvature) *Polyhedron {
	return &Polyhedron{
		Curvature: c,
		Vertices:  make(map[VertexID]*Vertex),
		HalfEdges: make(map[HalfEdgeID]*HalfEdge),
		Faces:     make(map[FaceID]*Face),
	}
}

func (p *Polyhedron) newVertex(raw geom.Vector) *Vertex {
	p.nextVertexID++
	v := &Vertex{ID: p.nextVertexID, Raw: raw}
	p.Vertices[v.ID] = v
	return v
}

func (p *Polyhedron) newHalfEdge() *HalfEdge {
	p.nextHalfEdgeID++
	h := &HalfEdge{ID: p.nextHalfEdgeID}
	p.HalfEdges[h.ID] = h
	return h
}

func (p *Polyhedron) newFace(plane geom.Vector, matrix geom.Matrix) *Face {
	p.nextFaceID++
	f := &Face{ID: p.nextFaceID, Plane: plane, Matrix: matrix}
	p.Faces[f.ID] = f
	return f
}

// mate, next, tip, tail are small accessors kept as methods purely for
// readability at call sites that read like the spec's prose.
func (p *Polyhedron) mate(h HalfEdgeID) *HalfEdge { return p.HalfEdges[p.HalfEdges[h].Mate] }
func (p *Polyhedron) next(h HalfEdgeID) *HalfEdge { return p.HalfEdges[p.HalfEdges[h].Next] }
func (p *Polyhedron) tip(h HalfEdgeID) *Vertex    { return p.Vertices[p.HalfEdges[h].Tip] }
func (p *Polyhedron) tail(h HalfEdgeID) *Vertex {
	return p.Vertices[p.HalfEdges[p.HalfEdges[h].Mate].Tip]
}

// link splices a pair of newly created mated half-edges (a points from
// tailV to tipV, b is its mate pointing the other way) and registers
// their Tip/Mate fields, leaving Next/Face for the caller to set.
func (p *Polyhedron) link(a, b *HalfEdge, tailVertex, tipVertex VertexID) {
	a.Tip = tipVertex
	b.Tip = tailVertex
	a.Mate = b.ID
	b.Mate = a.ID
}

// EulerCharacteristic returns V - E + F, expected to be 2 for every valid
// Dirichlet polyhedron (spec §8.1).
func (p *Polyhedron) EulerCharacteristic() int {
	v := len(p.Vertices)
	e := len(p.HalfEdges) / 2
	f := len(p.Faces)
	return v - e + f
}

// Validate checks the invariants spec §8.1 lists: Euler characteristic 2,
// mate involution, cycle closure, and every face visiting at least 3
// distinct half-edges.
func (p *Polyhedron) Validate() error {
	if ec := p.EulerCharacteristic(); ec != 2 {
		return fmt.Errorf("%w: V-E+F = %d", ErrInvalidTopology, ec)
	}
	for id, h := range p.HalfEdges {
		mate := p.HalfEdges[h.Mate]
		if mate == nil || mate.Mate != id {
			return fmt.Errorf("%w: half-edge %d's mate is not an involution", ErrInvalidTopology, id)
		}
	}
	for fid, f := range p.Faces {
		seen := map[HalfEdgeID]bool{}
		cur := f.Half
		for {
			if seen[cur] {
				return fmt.Errorf("%w: face %d cycle does not return to its start", ErrInvalidTopology, fid)
			}
			seen[cur] = true
			he := p.HalfEdges[cur]
			if he == nil || he.Face != fid {
				return fmt.Errorf("%w: face %d cycle left the face", ErrInvalidTopology, fid)
			}
			cur = he.Next
			if cur == f.Half {
				break
			}
		}
		if len(seen) < 3 {
			return fmt.Errorf("%w: face %d visits only %d half-edges", ErrInvalidTopology, fid, len(seen))
		}
	}
	return nil
}

// FaceHalfEdges returns every half-edge around f's boundary cycle, in
// cycle order, starting from f.Half.
func (p *Polyhedron) FaceHalfEdges(f *Face) []*HalfEdge {
	var out []*HalfEdge
	walkFace(p, f, func(h *HalfEdge) { out = append(out, h) })
	return out
}

// VertexOutboundHalfEdges returns every half-edge with tail v, in
// rotational order around v: starting from v.Out, each step moves to
// mate(h).Next, which shares v's tail because the face cycle containing
// mate(h) (an inbound edge to v) continues with the next outbound edge at
// the same vertex.
func (p *Polyhedron) VertexOutboundHalfEdges(v *Vertex) []*HalfEdge {
	var out []*HalfEdge
	start := v.Out
	cur := start
	for {
		h := p.HalfEdges[cur]
		out = append(out, h)
		cur = p.mate(cur).Next
		if cur == start {
			break
		}
	}
	return out
}

// Stats returns a short human-readable summary, in the style of
// conway's Polyhedron.Stats(), useful for demo binaries and debugging.
func (p *Polyhedron) Stats() string {
	colors := map[int]bool{}
	for _, f := range p.Faces {
		colors[f.ColorIndex] = true
	}
	return fmt.Sprintf("%s: V=%d E=%d F=%d (colors=%d) outradius=%.6f",
		p.Curvature, len(p.Vertices), len(p.HalfEdges)/2, len(p.Faces), len(colors), p.Outradius)
}

// WallStats reports min/max/avg wall base length and face area, in the
// style of conway's GeometryStats/CalculateGeometryStats, useful for
// picking a sane aperture default for a given space.
type WallStats struct {
	MinBase, MaxBase, AvgBase float64
	MinArea, MaxArea, AvgArea float64
}

func (p *Polyhedron) WallStats() WallStats {
	stats := WallStats{MinBase: math.Inf(1), MinArea: math.Inf(1)}
	if len(p.HalfEdges) == 0 || len(p.Faces) == 0 {
		return WallStats{}
	}

	var totalBase float64
	for _, h := range p.HalfEdges {
		if h.Base < stats.MinBase {
			stats.MinBase = h.Base
		}
		if h.Base > stats.MaxBase {
			stats.MaxBase = h.Base
		}
		totalBase += h.Base
	}
	stats.AvgBase = totalBase / float64(len(p.HalfEdges))

	var totalArea float64
	for _, f := range p.Faces {
		var area float64
		for _, h := range p.FaceHalfEdges(f) {
			area += 0.5 * h.Base * h.Altitude
		}
		if area < stats.MinArea {
			stats.MinArea = area
		}
		if area > stats.MaxArea {
			stats.MaxArea = area
		}
		totalArea += area
	}
	stats.AvgArea = totalArea / float64(len(p.Faces))

	return stats
}
