// Package errors defines the error taxonomy shared by the resolver, the
// pipeline and the collaborators it drives.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for reporting and exit handling.
type Kind int

const (
	// Unknown is returned by KindOf for errors outside the taxonomy.
	Unknown Kind = iota
	// Validation indicates malformed or contradictory input.
	Validation
	// Precondition indicates a requirement discovered at execution time.
	Precondition
	// Authentication indicates no usable credential was found.
	Authentication
	// ExternalTool indicates an underlying tool or API reported failure.
	ExternalTool
	// Cancelled indicates the user declined or aborted.
	Cancelled
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Validation:
		return "ValidationError"
	case Precondition:
		return "PreconditionError"
	case Authentication:
		return "AuthenticationError"
	case ExternalTool:
		return "ExternalToolError"
	case Cancelled:
		return "UserCancellation"
	default:
		return "Unknown"
	}
}

// Error is the error type used across mkapp.
type Error struct {
	// Kind is the error classification.
	Kind Kind
	// Field names the offending input field, if any.
	Field string
	// Message is the human-readable message.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error naming the offending field.
func NewValidationError(field, message string) *Error {
	return &Error{Kind: Validation, Field: field, Message: message}
}

// WrapValidationError creates a validation error with a cause.
func WrapValidationError(field, message string, cause error) *Error {
	return &Error{Kind: Validation, Field: field, Message: message, Cause: cause}
}

// NewPreconditionError creates a precondition error.
func NewPreconditionError(message string, cause error) *Error {
	return &Error{Kind: Precondition, Message: message, Cause: cause}
}

// NewAuthenticationError creates an authentication error.
func NewAuthenticationError(message string, cause error) *Error {
	return &Error{Kind: Authentication, Message: message, Cause: cause}
}

// NewExternalToolError creates an external tool error.
func NewExternalToolError(message string, cause error) *Error {
	return &Error{Kind: ExternalTool, Message: message, Cause: cause}
}

// NewCancelledError creates a cancellation error.
func NewCancelledError(message string) *Error {
	return &Error{Kind: Cancelled, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
