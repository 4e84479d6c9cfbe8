// Package events implements a per-object event emitter with before/after
// interception, the same shape the source project layers onto its nodes
// and node spaces: handlers registered on "before_x" run before the
// named event's default action and may veto it by returning an error;
// handlers registered on "after_x" run once it has happened and cannot
// undo it, so their errors are logged and swallowed rather than
// propagated.
//
// This replaces the teacher project's global observer/manager fan-out
// (pkg/observer) with an emitter owned by each node/space instance,
// since the node graph has no single execution loop to broadcast from.
package events
