// Package batch applies ordered edit operations to a parsed board.
//
// Operations are executed one at a time, each re-resolving its target
// footprint against the current tree state so that edits compose
// predictably. Per-operation failures are collected rather than aborting
// the batch, so one bad reference designator does not block edits to the
// others.
package batch
