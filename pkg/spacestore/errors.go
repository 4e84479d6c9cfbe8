package spacestore

import "errors"

var (
	// ErrNotFound is returned when a store operation names an unknown id.
	ErrNotFound = errors.New("spacestore: not found")

	// ErrNameRequired is returned by Create when name is empty.
	ErrNameRequired = errors.New("spacestore: name is required")
)
