package model

import "errors"

// ErrNilReader is returned by Load when given a nil io.Reader — an
// interface-contract violation the caller should treat as fatal, not a
// malformed-file condition (spec §7's NullArgument class).
var ErrNilReader = errors.New("model: nil reader")
