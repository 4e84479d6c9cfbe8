package typesys

import "errors"

var (
	// ErrTypeAlreadyRegistered is returned by Registry.Register when name
	// is already bound to a converter.
	ErrTypeAlreadyRegistered = errors.New("typesys: type already registered")

	// ErrSchemaValidation is returned when a value fails a schema-backed
	// type's JSON Schema check.
	ErrSchemaValidation = errors.New("typesys: value does not satisfy schema")

	// ErrComputedRejected is returned when a computed type's expression
	// evaluates to false for a candidate value.
	ErrComputedRejected = errors.New("typesys: value rejected by computed type expression")
)
