// Package ai holds the shared contracts for calls to external reasoning and
// embedding services. Every wrapper returns an explicit Outcome instead of
// leaking transport errors, so callers pattern-match on Ok/Fallback/Fatal
// rather than inspecting error types.
package ai

// OutcomeStatus discriminates the result of an external service call
type OutcomeStatus int

const (
	// OutcomeOK means the primary path produced a usable value
	OutcomeOK OutcomeStatus = iota
	// OutcomeFallback means the primary path failed in a recoverable way
	// and the caller should use its degraded strategy
	OutcomeFallback
	// OutcomeFatal means the failure must propagate to the caller
	OutcomeFatal
)

// Outcome is the explicit result of an external call wrapper
type Outcome[T any] struct {
	Status OutcomeStatus
	Value  T
	Reason string
	Err    error
}

// Ok wraps a successful value
func Ok[T any](value T) Outcome[T] {
	return Outcome[T]{Status: OutcomeOK, Value: value}
}

// Fallback signals a recoverable failure with a human-readable reason
func Fallback[T any](reason string) Outcome[T] {
	return Outcome[T]{Status: OutcomeFallback, Reason: reason}
}

// Fatal signals an unrecoverable failure
func Fatal[T any](err error) Outcome[T] {
	return Outcome[T]{Status: OutcomeFatal, Err: err}
}

// IsOK reports whether the primary path succeeded
func (o Outcome[T]) IsOK() bool { return o.Status == OutcomeOK }
