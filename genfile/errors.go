package genfile

import "errors"

var (
	// ErrMalformed covers a stream whose total numeric count is not a
	// positive multiple of 16, or whose first matrix is not the identity
	// (spec §6, §7).
	ErrMalformed = errors.New("generator file malformed")

	// ErrWrongUnicode is raised when a non-UTF-8 byte sequence is found
	// outside a tolerated leading BOM (spec §7).
	ErrWrongUnicode = errors.New("generator file has invalid unicode")

	// ErrBadCharacter is raised when a non-whitespace, non-comment,
	// non-numeric token appears in the numeric stream (spec §7).
	ErrBadCharacter = errors.New("generator file contains an unparseable token")

	// ErrInconsistentCurvature is raised when M[3][3] across the
	// non-identity matrices does not uniformly classify as spherical,
	// flat, or hyperbolic (spec §6, §7).
	ErrInconsistentCurvature = errors.New("generator file has inconsistent curvature")
)
