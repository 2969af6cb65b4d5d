// Package errors provides centralized error definitions and error handling
// utilities for the hivegrid codebase. It defines the coordination error
// taxonomy, domain error types with context wrapping, and classification
// helpers.
//
// # Error Taxonomy
//
// Coordination sentinels cover the recoverable failure conditions of task
// distribution:
//   - ErrQueueEmpty: distribution was requested with no queued tasks
//   - ErrNoCapableMember: no registered member serves a required sector
//     with spare capacity
//   - ErrMemberAtCapacity: a member's load already equals its capacity
//   - ErrMemberUnavailable: a member is not in the alive state
//   - ErrMemberNotFound: a member id is not present in the registry
//
// All of them are returned to callers as recoverable results, never as a
// fatal abort. Callers are expected to branch on the specific condition:
// an empty queue or exhausted capacity can be retried after re-submitting,
// while a missing capability is a hard routing failure.
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewCoordinationError("distribution failed", errors.ErrNoCapableMember).
//		WithTaskID("task-1")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrQueueEmpty) { ... }
//	if errors.IsRetryable(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Coordination sentinel errors
var (
	// ErrQueueEmpty indicates that distribution was requested with an empty backlog.
	ErrQueueEmpty = New("task queue is empty")
	// ErrNoCapableMember indicates that no member serves a required sector with spare capacity.
	ErrNoCapableMember = New("no capable member available")
	// ErrMemberAtCapacity indicates that a member's load already equals its capacity.
	ErrMemberAtCapacity = New("member at capacity")
	// ErrMemberUnavailable indicates that a member is not in the alive state.
	ErrMemberUnavailable = New("member unavailable")
	// ErrMemberNotFound indicates that a member id is not registered.
	ErrMemberNotFound = New("member not found")
)

// Composition sentinel errors
var (
	// ErrChainEmpty indicates that a chain has no steps.
	ErrChainEmpty = New("operation chain has no steps")
	// ErrChainCompleted indicates that a completed chain cannot run again.
	ErrChainCompleted = New("operation chain already completed")
	// ErrStepFailed indicates that a chain step's operation failed.
	ErrStepFailed = New("chain step failed")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// baseError provides common functionality for the domain error types.
type baseError struct {
	message   string
	cause     error
	severity  Severity
	retryable bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// CoordinationError represents errors from task distribution and member
// bookkeeping.
//
// Example:
//
//	err := errors.NewCoordinationError("assignment failed", errors.ErrMemberAtCapacity).
//		WithTaskID("task-1").
//		WithMemberID("m-review")
type CoordinationError struct {
	baseError
	TaskID      string
	MemberID    string
	MemberState string
}

// NewCoordinationError creates a new CoordinationError. Retryability is
// derived from the cause: empty-queue and capacity conditions clear up as
// members finish work, while a missing capability or member does not.
func NewCoordinationError(message string, cause error) *CoordinationError {
	return &CoordinationError{
		baseError: baseError{
			message:   message,
			cause:     cause,
			severity:  SeverityWarning,
			retryable: errors.Is(cause, ErrQueueEmpty) || errors.Is(cause, ErrMemberAtCapacity),
		},
	}
}

// WithTaskID adds a task ID to the error context.
func (e *CoordinationError) WithTaskID(id string) *CoordinationError {
	e.TaskID = id
	return e
}

// WithMemberID adds a member ID to the error context.
func (e *CoordinationError) WithMemberID(id string) *CoordinationError {
	e.MemberID = id
	return e
}

// WithMemberState adds the offending member state to the error context.
func (e *CoordinationError) WithMemberState(state string) *CoordinationError {
	e.MemberState = state
	return e
}

// WithSeverity sets the error severity.
func (e *CoordinationError) WithSeverity(s Severity) *CoordinationError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *CoordinationError) Error() string {
	var parts []string
	if e.TaskID != "" {
		parts = append(parts, fmt.Sprintf("task=%s", e.TaskID))
	}
	if e.MemberID != "" {
		parts = append(parts, fmt.Sprintf("member=%s", e.MemberID))
	}
	if e.MemberState != "" {
		parts = append(parts, fmt.Sprintf("state=%s", e.MemberState))
	}

	prefix := "coordination error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("coordination error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *CoordinationError) Is(target error) bool {
	if _, ok := target.(*CoordinationError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// CompositionError represents errors from building or running operation
// chains.
type CompositionError struct {
	baseError
	ChainID string
	StepID  string
}

// NewCompositionError creates a new CompositionError.
func NewCompositionError(message string, cause error) *CompositionError {
	return &CompositionError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityError,
		},
	}
}

// WithChainID adds a chain ID to the error context.
func (e *CompositionError) WithChainID(id string) *CompositionError {
	e.ChainID = id
	return e
}

// WithStepID adds a step ID to the error context.
func (e *CompositionError) WithStepID(id string) *CompositionError {
	e.StepID = id
	return e
}

// Error returns the formatted error message.
func (e *CompositionError) Error() string {
	var parts []string
	if e.ChainID != "" {
		parts = append(parts, fmt.Sprintf("chain=%s", e.ChainID))
	}
	if e.StepID != "" {
		parts = append(parts, fmt.Sprintf("step=%s", e.StepID))
	}

	prefix := "composition error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("composition error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *CompositionError) Is(target error) bool {
	if _, ok := target.(*CompositionError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or configuration.
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:  message,
			severity: SeverityWarning,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// classified is implemented by the domain error types above.
type classified interface {
	error
	Severity() Severity
	IsRetryable() bool
}

// IsRetryable returns true if the error represents a condition that may
// succeed on retry: the queue was empty or every capable member was
// temporarily at capacity. A missing capability is not retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var c classified
	if As(err, &c) {
		return c.IsRetryable()
	}

	return Is(err, ErrQueueEmpty) || Is(err, ErrMemberAtCapacity)
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that carry no classification.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var c classified
	if As(err, &c) {
		return c.Severity()
	}

	return SeverityError
}

// Wrap wraps an error with an additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
