// Package node implements the typed input/output ports, connections, and
// the per-node trigger state machine that sits at the center of the
// engine.
//
// Go has no single-threaded cooperative event loop, so the "scheduler is
// single-threaded, nodes suspend only at await points" discipline is
// reproduced with a mutex-guarded state field and one goroutine per run:
// RequestTrigger on an idle node moves it to running and starts a
// goroutine that evaluates it, a request while it is running moves it to
// requested, and a request while it is already requested changes
// nothing. When an evaluation finishes, a requested node runs once more
// and a running node returns to idle, so any number of requests during
// one evaluation collapse into a single further evaluation.
package node
