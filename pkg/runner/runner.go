package runner

import (
	"context"
	"fmt"
)

// Runner submits a callable for off-thread execution and returns its
// result once it completes. An error returned by the callable crosses
// the boundary unchanged; a panic is recovered and returned as a
// *PanicError.
type Runner interface {
	Submit(ctx context.Context, fn func() (map[string]interface{}, error)) (map[string]interface{}, error)
	Shutdown()
}

// PanicError wraps a recovered panic crossing the runner boundary,
// preserving the panic value as its message.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("runner: panic: %v", e.Value)
}
