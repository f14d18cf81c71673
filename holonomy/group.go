// Package holonomy grows a finite, radially sorted window of a discrete
// holonomy group Γ from a generator set, by breadth-first word closure up
// to a translation-distance bound (spec §4.B).
package holonomy

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kjirou/curvedspaces/geom"
)

// dedupEps is the matrix-entry tolerance used to decide whether a newly
// produced group element already has a representative in the group.
// Looser and reflections may merge; tighter and rounding noise causes
// double-counting (spec §4.B).
const dedupEps = 1e-6

// originFixedEps is how close a generator's image of the origin must be
// to the origin itself to be rejected as fixing it.
const originFixedEps = 1e-9

// maxElements guards against non-discrete (or accidentally dense)
// generator sets running away.
const maxElements = 200_000

// Element is one member of a holonomy group: the isometry itself and the
// intrinsic distance from the origin to its image of the origin.
type Element struct {
	Matrix   geom.Matrix
	Distance float64
}

// Group is a finite, radius-bounded window of a holonomy group, sorted by
// Distance ascending. Elements[0] is always the identity.
type Group struct {
	Curvature geom.Curvature
	Elements  []Element
}

// BuildGroup grows ⟨generators⟩ up to intrinsic radius r, including the
// identity as Elements[0]. generators is assumed to generate a discrete
// group acting freely on the origin; curvatures are assumed consistent,
// a claim this function verifies and reports via ErrInconsistentCurvature
// rather than trusting blindly.
func BuildGroup(ctx context.Context, generators []geom.Matrix, curvature geom.Curvature, radius float64) (*Group, error) {
	if len(generators) == 0 {
		return nil, ErrEmptyGenerators
	}
	for i, g := range generators {
		if got := geom.DetectCurvature(g.Rows[3][3]); got != curvature {
			return nil, fmt.Errorf("%w: generator %d has M[3][3]=%g implying %s, want %s",
				ErrInconsistentCurvature, i, g.Rows[3][3], got, curvature)
		}
		if d := geom.Distance(curvature, g.Apply(geom.Origin)); d < originFixedEps {
			return nil, fmt.Errorf("%w: generator %d", ErrFixesOrigin, i)
		}
	}

	gens := make([]geom.Matrix, 0, len(generators)*2)
	for _, g := range generators {
		gens = append(gens, g, g.GeometricInverse(curvature))
	}

	elements := []Element{{Matrix: geom.Identity(), Distance: 0}}
	frontier := []int{0}

	for len(frontier) > 0 {
		var mu sync.Mutex
		var nextFrontier []int

		eg, egCtx := errgroup.WithContext(ctx)
		for _, fi := range frontier {
			f := elements[fi]
			eg.Go(func() error {
				for _, gen := range gens {
					select {
					case <-egCtx.Done():
						return egCtx.Err()
					default:
					}

					candidate := geom.Product(f.Matrix, gen)
					dist := geom.Distance(curvature, candidate.Apply(geom.Origin))
					if dist > radius+dedupEps {
						continue
					}

					mu.Lock()
					if !containsWithin(elements, candidate, dedupEps) {
						elements = append(elements, Element{Matrix: candidate, Distance: dist})
						if len(elements) > maxElements {
							mu.Unlock()
							return ErrNotDiscrete
						}
						nextFrontier = append(nextFrontier, len(elements)-1)
					}
					mu.Unlock()
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		frontier = nextFrontier
	}

	sort.SliceStable(elements, func(i, j int) bool { return elements[i].Distance < elements[j].Distance })

	return &Group{Curvature: curvature, Elements: elements}, nil
}

func containsWithin(elements []Element, m geom.Matrix, eps float64) bool {
	for _, e := range elements {
		if geom.EqualWithin(e.Matrix, m, eps) {
			return true
		}
	}
	return false
}

// ContainsInverse reports whether, for every element g in the group,
// g's geometric inverse is also present (within eps). It is the property
// spec §8.4 tests, exposed here so callers can assert it directly.
func (g *Group) ContainsInverse(eps float64) bool {
	for _, e := range g.Elements {
		inv := e.Matrix.GeometricInverse(g.Curvature)
		if !containsWithin(g.Elements, inv, eps) {
			return false
		}
	}
	return true
}
