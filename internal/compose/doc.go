// Package compose builds and runs ordered multi-step operation chains
// spanning one or more capability sectors.
//
// An OperationChain is an ordered list of CompositionStep values, stably
// sorted by each step's explicit order. Advancing walks the chain one
// step at a time until it is marked completed. A ComposedOperation wraps
// a chain's execution: a per-step output trace, a final result, a merkle
// root over the ordered step outputs, and the total execution time.
// Completion and success are deliberately distinct: a chain can run to
// completion and still fail if it produced no result.
//
// Step operations are opaque identifiers; the Runner delegates each step
// to a caller-supplied function and only records the outcome.
package compose
