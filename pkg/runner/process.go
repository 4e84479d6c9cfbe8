package runner

import "context"

// ProcessRunner presents the same Submit/Shutdown contract as
// ThreadRunner but is intended for evaluators that need stronger
// isolation than a goroutine provides. Go has no portable way to ship an
// arbitrary closure into a child process, so unlike a dynamic-language
// runtime this cannot fork the submitted callable itself; it bounds
// concurrency the same way ThreadRunner does and exists so node classes
// can declare a process-isolation preference without the engine caring
// which runner kind backs it. A concrete deployment wanting real process
// isolation supplies its own Runner that shells out to a worker binary.
type ProcessRunner struct {
	inner *ThreadRunner
}

// NewProcessRunner starts a process-runner stand-in allowing at most
// concurrency functions in flight at once.
func NewProcessRunner(concurrency int) *ProcessRunner {
	return &ProcessRunner{inner: NewThreadRunner(concurrency)}
}

// Submit runs fn through the underlying bounded pool.
func (r *ProcessRunner) Submit(ctx context.Context, fn func() (map[string]interface{}, error)) (map[string]interface{}, error) {
	return r.inner.Submit(ctx, fn)
}

// Shutdown stops accepting new work.
func (r *ProcessRunner) Shutdown() {
	r.inner.Shutdown()
}

var _ Runner = (*ProcessRunner)(nil)
