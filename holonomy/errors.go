package holonomy

import "errors"

// Static errors for err113 compliance.
var (
	// ErrEmptyGenerators is returned when BuildGroup is called with no
	// generators at all.
	ErrEmptyGenerators = errors.New("holonomy: generator list is empty")

	// ErrInconsistentCurvature is returned when a generator's M[3][3]
	// entry disagrees with the curvature BuildGroup was asked to build
	// for.
	ErrInconsistentCurvature = errors.New("holonomy: generators disagree on curvature")

	// ErrFixesOrigin is returned when a generator maps the origin to
	// itself, violating the free-action assumption the builder and the
	// Dirichlet engine both depend on.
	ErrFixesOrigin = errors.New("holonomy: a generator fixes the origin")

	// ErrNotDiscrete is returned when the element count exceeds the
	// guardrail before the frontier empties, surfaced so a bad (dense,
	// or not actually discrete) generator set is rejected rather than
	// looping forever.
	ErrNotDiscrete = errors.New("holonomy: group element count exceeded guardrail; generator set may not be discrete")
)
