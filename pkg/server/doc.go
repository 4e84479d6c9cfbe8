// Package server provides the node engine's HTTP management API. It
// exposes NodeSpace CRUD over a pkg/spacestore.Store, alongside
// health-check and Prometheus metrics endpoints. It is a thin
// collaborator: it stores and retrieves serialized graphs but does not
// evaluate them — loading a stored space into a live
// pkg/nodespace.Space and triggering it is the caller's job.
package server
