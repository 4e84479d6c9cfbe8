// Package spacestore is an in-memory, uuid-keyed CRUD store for
// persisted NodeSpace documents, grounded on the same registry idiom the
// engine uses for node classes: a mutex-guarded map keyed by a
// google/uuid identifier, with metadata (name, timestamps) alongside the
// serialized payload.
package spacestore
