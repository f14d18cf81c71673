package dirichlet

import "github.com/kjirou/curvedspaces/geom"

// restoreEps is the small positive restoring tolerance a face's half-space
// value must exceed before StayInDomain folds the observer back across
// it, chosen so a flight path tangent to a wall does not oscillate
// between two adjacent cells every frame (spec §4.C, §5).
const restoreEps = 1e-8

// maxFoldSteps guards against oscillation between two nearly-parallel
// walls never settling.
const maxFoldSteps = 32

// StayInDomain folds position back into the fundamental domain whenever
// the observer has pushed through one of its walls: for as long as some
// face's half-space is violated, position is right-multiplied by the
// geometric inverse of that face's isometry (the "return to central cell" operation of spec §4.C
// and §5) and re-orthogonalized, up to maxFoldSteps corrections.
func StayInDomain(c geom.Curvature, poly *Polyhedron, position geom.Matrix) geom.Matrix {
	if poly == nil {
		return position
	}
	for step := 0; step < maxFoldSteps; step++ {
		origin := position.Apply(geom.Origin)
		crossed := (*Face)(nil)
		worst := restoreEps
		for _, f := range poly.Faces {
			v := planeValue(f.Plane, origin)
			if v > worst {
				worst = v
				crossed = f
			}
		}
		if crossed == nil {
			return position
		}
		position = geom.FastGramSchmidt(c, geom.Product(position, crossed.Matrix.GeometricInverse(c)))
	}
	return position
}
