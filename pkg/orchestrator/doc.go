// Package orchestrator wires the descriptor → entity lookup → widget tree →
// renderer pipeline, providing dependency injection friendly helpers for
// consumers that prefer a single entry point.
package orchestrator
