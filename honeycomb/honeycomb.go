// Package honeycomb builds and per-frame culls the tiling of cells that
// carry copies of the Dirichlet fundamental domain around the observer,
// one cell per holonomy-group element (spec §4.D).
package honeycomb

import (
	"math"
	"sort"

	"github.com/kjirou/curvedspaces/geom"
	"github.com/kjirou/curvedspaces/holonomy"
)

// Cell is one tile of the honeycomb: the isometry placing the Dirichlet
// domain at this copy, its image of the origin, and the parity of that
// isometry (plain or reflected relative to the identity).
type Cell struct {
	Matrix   geom.Matrix
	Origin   geom.Vector
	Parity   geom.Parity
	Distance float64 // filled in by CullAndSort, 0 otherwise
}

// Honeycomb is the full set of cells (already in radial order, since the
// holonomy group is) plus the scratch buffer CullAndSort fills each
// frame.
type Honeycomb struct {
	Curvature geom.Curvature
	Cells     []Cell

	Visible   []Cell // scratch: filled by CullAndSort, read same frame
	Plain     int    // count of visible cells whose parity matches the view
	Reflected int    // count of visible cells whose parity is opposite
}

// Build constructs one cell per group element (spec §4.D step "Build").
func Build(group *holonomy.Group) *Honeycomb {
	cells := make([]Cell, len(group.Elements))
	for i, e := range group.Elements {
		origin := e.Matrix.Apply(geom.Origin)
		cells[i] = Cell{
			Matrix:   e.Matrix,
			Origin:   origin,
			Parity:   e.Matrix.Parity(),
			Distance: e.Distance,
		}
	}
	return &Honeycomb{Curvature: group.Curvature, Cells: cells}
}

// rTilde converts a Dirichlet outradius into the sign-test radius used by
// the cheap first cull pass: sinh (hyperbolic), identity (flat), sin
// (spherical) — see spec §4.D step 3.
func rTilde(c geom.Curvature, r float64) float64 {
	switch c {
	case geom.Hyperbolic:
		return math.Sinh(r)
	case geom.Spherical:
		return math.Sin(r)
	default:
		return r
	}
}

// CullAndSort fills Visible with the cells that could plausibly be seen
// from view with the given frustum side-plane normals, horizon radius
// horizonRadius, and Dirichlet outradius outradius, sorted front-to-back,
// and tallies Plain/Reflected counts against viewParity (spec §4.D).
func (hc *Honeycomb) CullAndSort(view geom.Matrix, sideNormals [4]geom.Vector, horizonRadius, outradius float64, viewParity geom.Parity) {
	hc.Visible = hc.Visible[:0]
	rTildeD := rTilde(hc.Curvature, outradius)

	for _, cell := range hc.Cells {
		p := view.Apply(cell.Origin)
		distance := geom.Distance(hc.Curvature, p)

		accept := hc.Curvature == geom.Spherical
		if !accept {
			accept = p.Z > -rTildeD &&
				distance < horizonRadius+outradius &&
				boundingSphereIntersectsFrustum(p, sideNormals, rTildeD)
		}
		if !accept {
			continue
		}
		cell.Distance = distance
		hc.Visible = append(hc.Visible, cell)
	}

	sort.Slice(hc.Visible, func(i, j int) bool { return hc.Visible[i].Distance < hc.Visible[j].Distance })

	hc.Plain, hc.Reflected = 0, 0
	for _, cell := range hc.Visible {
		if cell.Parity == viewParity {
			hc.Plain++
		} else {
			hc.Reflected++
		}
	}
}

func boundingSphereIntersectsFrustum(p geom.Vector, sideNormals [4]geom.Vector, rTildeD float64) bool {
	for _, n := range sideNormals {
		if p.EuclideanDot(n) < -rTildeD {
			return false
		}
	}
	return true
}

// InvertedTiles pairs every cell with geom.AntipodalMap(), producing a
// second scratch buffer for odd-order spherical manifolds where a single
// honeycomb pass under-covers the visible sphere (spec §6, E6).
func (hc *Honeycomb) InvertedTiles(viewParity geom.Parity) []Cell {
	antipodal := geom.AntipodalMap()
	inverted := make([]Cell, len(hc.Cells))
	for i, cell := range hc.Cells {
		m := geom.Product(cell.Matrix, antipodal)
		inverted[i] = Cell{
			Matrix:   m,
			Origin:   m.Apply(geom.Origin),
			Parity:   m.Parity(),
			Distance: cell.Distance,
		}
	}
	return inverted
}
