package nodemaker

import "errors"

var (
	// ErrNotAFunction is returned when Make is given a non-func value.
	ErrNotAFunction = errors.New("nodemaker: value is not a function")

	// ErrArityMismatch is returned when the supplied input/output names
	// don't match the function's signature.
	ErrArityMismatch = errors.New("nodemaker: name count does not match function signature")
)
