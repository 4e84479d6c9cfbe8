package nodespace

import "errors"

var (
	// ErrNodeNotInSpace is returned when an operation names a node uuid
	// the space does not hold.
	ErrNodeNotInSpace = errors.New("nodespace: node not found")
)
