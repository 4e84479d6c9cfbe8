// Package runtime holds the process-wide state that the rest of the
// engine consults rather than threading through every call: the registry
// of known node-class ids, the test-mode flag, and execution id
// generation.
//
// This mirrors the source project's module-level globals
// (REGISTERED_NODES, IN_NODE_TEST) but replaces the metaclass-based test
// flag with a plain atomic accessor pair, and the bare dict registry with
// a mutex-guarded map that rejects re-registering an id under a
// different class.
package runtime
