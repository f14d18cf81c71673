package geom

import "errors"

// Static errors for err113 compliance, matching the sentinel-error
// convention used throughout this module's packages.
var (
	// ErrNonPositiveNorm is returned by Normalize when the argument is
	// null or has imaginary norm under the requested curvature's inner
	// product (a zero vector in the spherical case, a vector with zero
	// xyz part in the flat case, or a spacelike or null vector in the
	// hyperbolic Minkowski case).
	ErrNonPositiveNorm = errors.New("geom: vector has non-positive norm")
)
