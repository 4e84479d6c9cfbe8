package runtime

import "github.com/google/uuid"

// NewExecutionID returns a fresh, globally unique identifier for a single
// trigger run of a node or node space.
func NewExecutionID() string {
	return uuid.NewString()
}
