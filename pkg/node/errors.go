package node

import "errors"

// Sentinel errors for IO and node operations.
var (
	ErrNodeConnection       = errors.New("node: incompatible connection")
	ErrMultipleConnections  = errors.New("node: input already has a source")
	ErrSameNodeConnection   = errors.New("node: cannot connect IOs of the same node")
	ErrIONotFound           = errors.New("node: io not found")
	ErrIOValue              = errors.New("node: value rejected by type converter")
	ErrNodeTrigger          = errors.New("node: evaluator failed")
	ErrMissingRequiredInput = errors.New("node: missing required input")
)
