// Package runner implements the off-thread function runner contract: a
// two-operation service, Submit and Shutdown, that a node's evaluator
// can opt into for CPU-bound bodies so they run on a bounded pool.
// Submission is just another await from the engine's perspective — Submit
// blocks the calling goroutine (for an evaluator, that is the node's own
// goroutine) until the function completes or ctx is cancelled, while
// other nodes keep running on their own goroutines.
//
// ThreadRunner bounds concurrency with a semaphore channel, the same
// worker-pool idiom the teacher project uses for parallel DAG level
// execution.
package runner
