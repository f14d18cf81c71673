package dirichlet

import "github.com/kjirou/curvedspaces/geom"

// epsVertex is the raw (unnormalized) tolerance used to classify a
// vertex against a cutting half-space (spec §4.C phase 1).
const epsVertex = 1e-6

type classification int8

const (
	classInside classification = iota // zero value: also what lookups of vertices absent from the map return
	classBoundary
	classOutside
)

func classify(val float64) classification {
	switch {
	case val < -epsVertex:
		return classInside
	case val > epsVertex:
		return classOutside
	default:
		return classBoundary
	}
}

// intersectHalfSpace clips p by H(plane) = {v : <v, plane> <= 0}, the
// isometry that produced it being matrix. It performs the five phases of
// spec §4.C: classify, split crossed edges, split crossed faces, install
// the new face, and mark-and-sweep.
func (p *Polyhedron) intersectHalfSpace(plane geom.Vector, matrix geom.Matrix) {
	class := make(map[VertexID]classification, len(p.Vertices))
	anyOutside := false
	for id, v := range p.Vertices {
		c := classify(planeValue(plane, v.Raw))
		class[id] = c
		if c == classOutside {
			anyOutside = true
		}
	}
	if !anyOutside {
		return
	}

	isOutside := func(id VertexID) bool { return class[id] == classOutside }

	// Phase 1/2: classify + split crossed edges. Collect the crossing
	// half-edges first so mutation never races iteration order.
	type crossing struct {
		edge HalfEdgeID
	}
	var crossings []crossing
	for id, h := range p.HalfEdges {
		tailV := p.tail(id)
		tipV := p.Vertices[h.Tip]
		if !isOutside(tailV.ID) && isOutside(tipV.ID) {
			crossings = append(crossings, crossing{edge: id})
		}
	}

	nearVertex := map[FaceID]VertexID{}
	nearEdge := map[FaceID]HalfEdgeID{}
	farVertex := map[FaceID]VertexID{}
	farContinuation := map[FaceID]HalfEdgeID{}

	// Precompute, for every face, the predecessor of every half-edge in
	// its cycle, so splicing outerMate before mateH doesn't require a
	// live scan mid-mutation.
	pred := map[HalfEdgeID]HalfEdgeID{}
	for _, f := range p.Faces {
		start := f.Half
		cur := start
		for {
			h := p.HalfEdges[cur]
			pred[h.Next] = cur
			cur = h.Next
			if cur == start {
				break
			}
		}
	}

	for _, cr := range crossings {
		h := p.HalfEdges[cr.edge]
		mateH := p.HalfEdges[h.Mate]
		faceA := h.Face
		faceB := mateH.Face

		planeA := p.Faces[faceA].Plane
		planeB := p.Faces[faceB].Plane
		tailV := p.tail(cr.edge)
		tipV := p.Vertices[h.Tip]

		boundaryRaw := geom.TernaryCross(planeA, planeB, plane)
		dir := tipV.Raw.Sub(tailV.Raw)
		if boundaryRaw.EuclideanDot(dir) < 0 {
			boundaryRaw = boundaryRaw.Scale(-1)
		}
		newV := p.newVertex(boundaryRaw)
		class[newV.ID] = classBoundary

		oldTip := h.Tip
		oldHNext := h.Next
		h.Tip = newV.ID

		outer := p.newHalfEdge()
		outer.Tip = oldTip
		outer.Face = faceA
		outer.Next = oldHNext
		h.Next = outer.ID

		outerMate := p.newHalfEdge()
		outerMate.Tip = newV.ID
		outerMate.Face = faceB
		outer.Mate = outerMate.ID
		outerMate.Mate = outer.ID

		predOfMateH := pred[mateH.ID]
		p.HalfEdges[predOfMateH].Next = outerMate.ID
		outerMate.Next = mateH.ID

		nearVertex[faceA] = newV.ID
		nearEdge[faceA] = h.ID
		farVertex[faceB] = newV.ID
		farContinuation[faceB] = mateH.ID
	}

	// Phase 3/4: splice a cutIn/cutOut pair into every straddling face
	// and chain the cutOut edges into one new face carrying the cutting
	// half-space.
	newFace := p.newFace(plane, matrix)
	cutOutOf := map[FaceID]*HalfEdge{}
	nearVertexFace := map[VertexID]FaceID{}
	for f, v := range nearVertex {
		nearVertexFace[v] = f
	}

	for f, near := range nearVertex {
		far, ok := farVertex[f]
		if !ok {
			// Face f has only one crossing recorded so far; this
			// happens when the other crossing of f is itself the face
			// that provided `near` for a neighbor, and will resolve
			// once that neighbor's own processing fills farVertex[f].
			continue
		}
		cutIn := p.newHalfEdge()
		cutOut := p.newHalfEdge()
		cutIn.Mate, cutOut.Mate = cutOut.ID, cutIn.ID
		cutIn.Tip = far
		cutOut.Tip = near
		cutIn.Face = f
		cutOut.Face = newFace.ID

		p.HalfEdges[nearEdge[f]].Next = cutIn.ID
		cutIn.Next = farContinuation[f]

		cutOutOf[f] = cutOut
	}
	if newFace.Half == 0 {
		for _, co := range cutOutOf {
			newFace.Half = co.ID
			break
		}
	}
	for f, cutOut := range cutOutOf {
		nextFace, ok := nearVertexFace[farVertex[f]]
		if !ok {
			continue
		}
		cutOut.Next = cutOutOf[nextFace].ID
	}

	// Phase 5: mark and sweep.
	for id, v := range p.Vertices {
		if class[id] == classOutside {
			v.deleted = true
		}
	}
	for _, h := range p.HalfEdges {
		tailDeleted := p.Vertices[p.HalfEdges[h.Mate].Tip].deleted
		tipDeleted := p.Vertices[h.Tip].deleted
		if tailDeleted || tipDeleted {
			h.deleted = true
		}
	}
	for _, f := range p.Faces {
		if allHalfEdgesDeleted(p, f.ID) {
			f.deleted = true
		}
	}

	// Rewalk cycles and outbound pointers past deleted edges.
	for _, h := range p.HalfEdges {
		if h.deleted {
			continue
		}
		cur := h.Next
		for guard := 0; p.HalfEdges[cur].deleted && guard < len(p.HalfEdges)+1; guard++ {
			cur = p.HalfEdges[cur].Next
		}
		h.Next = cur
	}
	for _, f := range p.Faces {
		if f.deleted {
			continue
		}
		if p.HalfEdges[f.Half].deleted {
			for _, h := range p.HalfEdges {
				if !h.deleted && h.Face == f.ID {
					f.Half = h.ID
					break
				}
			}
		}
	}
	for _, v := range p.Vertices {
		if v.deleted {
			continue
		}
		if out, ok := p.HalfEdges[v.Out]; ok && !out.deleted && p.HalfEdges[out.Mate].Tip == v.ID {
			continue
		}
		for _, h := range p.HalfEdges {
			if !h.deleted && p.HalfEdges[h.Mate].Tip == v.ID {
				v.Out = h.ID
				break
			}
		}
	}

	for id, v := range p.Vertices {
		if v.deleted {
			delete(p.Vertices, id)
		}
	}
	for id, h := range p.HalfEdges {
		if h.deleted {
			delete(p.HalfEdges, id)
		}
	}
	for id, f := range p.Faces {
		if f.deleted {
			delete(p.Faces, id)
		}
	}
}

func allHalfEdgesDeleted(p *Polyhedron, fid FaceID) bool {
	any := false
	for _, h := range p.HalfEdges {
		if h.Face == fid {
			any = true
			if !h.deleted {
				return false
			}
		}
	}
	return any
}
