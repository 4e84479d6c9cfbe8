// Package nodespace implements the live graph instance: an ordered set
// of connected Node instances backed by a Library, with lifecycle
// operations, serialization, and whole-graph triggering.
package nodespace
