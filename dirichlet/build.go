package dirichlet

import (
	"context"

	"github.com/kjirou/curvedspaces/geom"
	"github.com/kjirou/curvedspaces/holonomy"
)

// Build constructs the Dirichlet fundamental domain of group around the
// origin: it seeds a banana or lens polyhedron from the first few group
// elements (by increasing distance), then iteratively clips it by every
// remaining element's bisecting half-space (spec §4.C).
//
// A group containing only the identity, or only the identity and a single
// antipodal involution, needs no visible domain at all and Build returns
// (nil, nil) for both (spec §7's "no space" boundary behaviors).
func Build(ctx context.Context, group *holonomy.Group) (*Polyhedron, error) {
	nonIdentity := group.Elements[1:]
	if len(nonIdentity) == 0 {
		return nil, nil
	}
	if len(nonIdentity) == 1 {
		g := nonIdentity[0].Matrix
		if geom.EqualWithin(geom.Product(g, g), geom.Identity(), 1e-6) {
			return nil, nil
		}
	}
	if len(nonIdentity) < 2 {
		return nil, ErrChimneyUnsupported
	}

	c := group.Curvature
	g1 := nonIdentity[0].Matrix
	g2 := nonIdentity[1].Matrix
	plane1 := bisectorPlane(c, g1)
	plane2 := bisectorPlane(c, g2)

	thirdIndex := -1
	for j := 2; j < len(nonIdentity); j++ {
		planeJ := bisectorPlane(c, nonIdentity[j].Matrix)
		cross := geom.TernaryCross(plane1, plane2, planeJ)
		if geom.Norm(geom.Spherical, cross) >= epsPlane {
			thirdIndex = j
			break
		}
	}

	var poly *Polyhedron
	if thirdIndex >= 0 {
		planeJ := bisectorPlane(c, nonIdentity[thirdIndex].Matrix)
		n := geom.TernaryCross(plane1, plane2, planeJ)
		normalized, err := geom.Normalize(geom.Spherical, n)
		if err != nil {
			return nil, ErrNoThirdIndependentElement
		}
		if normalized.W > 0 {
			normalized = normalized.Scale(-1)
		}
		poly = seedBanana(c, normalized, [3]geom.Vector{plane1, plane2, planeJ}, [3]geom.Matrix{g1, g2, nonIdentity[thirdIndex].Matrix})
	} else {
		if c == geom.Hyperbolic {
			return nil, ErrHyperbolicSlabUnsupported
		}
		n := 4
		if c != geom.Flat {
			var err error
			n, err = lensOrder(g1)
			if err != nil {
				return nil, err
			}
		}
		poly = seedLens(c, n, plane1, plane2, g1, g2)
	}

	originalVertexCount := len(poly.Vertices)

	for i, e := range nonIdentity {
		if i == thirdIndex {
			continue
		}
		if thirdIndex < 0 && i < 2 {
			continue
		}
		if thirdIndex >= 0 && (i == 0 || i == 1) {
			continue
		}
		plane := bisectorPlane(c, e.Matrix)
		poly.intersectHalfSpace(plane, e.Matrix)
	}

	if thirdIndex >= 0 && len(poly.Vertices) == originalVertexCount {
		return nil, ErrChimneyUnsupported
	}

	poly.finalize()
	return poly, nil
}
