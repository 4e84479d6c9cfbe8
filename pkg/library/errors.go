package library

import "errors"

var (
	// ErrNodeClassNotFound is returned when a node_id has no match in the
	// library.
	ErrNodeClassNotFound = errors.New("library: node class not found")

	// ErrShelf is returned for malformed shelf definitions, such as two
	// distinct shelves registered under the same name at the same level.
	ErrShelf = errors.New("library: invalid shelf")

	// ErrDuplicateNodeID is returned when AddNodes is given a class
	// whose node_id is already registered to a different class.
	ErrDuplicateNodeID = errors.New("library: node_id already registered to a different class")
)
