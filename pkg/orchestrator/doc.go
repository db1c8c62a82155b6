// Package orchestrator wires the parse → transform → theme → render pipeline,
// providing dependency injection friendly helpers for consumers that prefer a
// single entry point.
package orchestrator
