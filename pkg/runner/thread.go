package runner

import (
	"context"
)

type job struct {
	fn     func() (map[string]interface{}, error)
	result chan jobResult
}

type jobResult struct {
	value map[string]interface{}
	err   error
}

// ThreadRunner executes submitted functions on a bounded pool of
// goroutines, using a semaphore channel to cap concurrency.
type ThreadRunner struct {
	sem  chan struct{}
	jobs chan job
	done chan struct{}
}

// NewThreadRunner starts a thread runner allowing at most concurrency
// functions to run at once.
func NewThreadRunner(concurrency int) *ThreadRunner {
	if concurrency <= 0 {
		concurrency = 1
	}
	r := &ThreadRunner{
		sem:  make(chan struct{}, concurrency),
		jobs: make(chan job),
		done: make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *ThreadRunner) loop() {
	for {
		select {
		case j := <-r.jobs:
			r.sem <- struct{}{}
			go func(j job) {
				defer func() { <-r.sem }()
				defer func() {
					if rec := recover(); rec != nil {
						j.result <- jobResult{err: &PanicError{Value: rec}}
					}
				}()
				value, err := j.fn()
				j.result <- jobResult{value: value, err: err}
			}(j)
		case <-r.done:
			return
		}
	}
}

// Submit runs fn on the pool and blocks until it completes or ctx is
// cancelled.
func (r *ThreadRunner) Submit(ctx context.Context, fn func() (map[string]interface{}, error)) (map[string]interface{}, error) {
	j := job{fn: fn, result: make(chan jobResult, 1)}
	select {
	case r.jobs <- j:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-r.done:
		return nil, context.Canceled
	}

	select {
	case res := <-j.result:
		return res.value, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Shutdown stops accepting new work. In-flight submissions still settle.
func (r *ThreadRunner) Shutdown() {
	close(r.done)
}

var _ Runner = (*ThreadRunner)(nil)
