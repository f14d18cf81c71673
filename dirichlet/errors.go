package dirichlet

import "errors"

// Static errors for err113 compliance.
var (
	// ErrChimneyUnsupported is returned when a banana seed's three initial
	// half-spaces never acquire a fourth hyperplane-independent element
	// — a chimney/slab space with only two independent generators,
	// explicitly out of scope (spec §1, §4.C).
	ErrChimneyUnsupported = errors.New("dirichlet: chimney space (fewer than 3 independent hyperplanes) is unsupported")

	// ErrLensOrderIndeterminate is returned when the lens seed's sample
	// count, derived from g1's rotation in the z-w plane, is not within
	// 1e-6 of an integer.
	ErrLensOrderIndeterminate = errors.New("dirichlet: lens seed order is not determinate")

	// ErrLensOrderTooSmall is returned when the deduced lens order is
	// less than 3.
	ErrLensOrderTooSmall = errors.New("dirichlet: lens seed order is too small")

	// ErrHyperbolicSlabUnsupported is returned when the lens-seed path
	// is reached with hyperbolic curvature: hyperbolic slab spaces are
	// not supported (spec §1, §4.C, §9).
	ErrHyperbolicSlabUnsupported = errors.New("dirichlet: hyperbolic slab spaces are unsupported")

	// ErrEmptyGroup names the case of a group containing only the
	// identity (or only ±I), where no Dirichlet domain is needed (spec §8,
	// boundary behaviors). Build returns (nil, nil) for such groups rather
	// than this error.
	ErrEmptyGroup = errors.New("dirichlet: group has no non-identity elements")

	// ErrNoThirdIndependentElement is returned when the banana seed's
	// vertex direction (the ternary cross of the three chosen bisector
	// planes) cannot be normalized.
	ErrNoThirdIndependentElement = errors.New("dirichlet: no element yields a usable hyperplane")

	// ErrInvalidTopology is returned by Validate when one of spec §8.1's
	// half-edge invariants fails.
	ErrInvalidTopology = errors.New("dirichlet: half-edge topology invariant violated")
)
