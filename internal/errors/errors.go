// Package errors provides structured operator-facing errors and exit code mapping.
package errors

import (
	"errors"
	"fmt"

	"github.com/ipang84/retailmaster/internal/domain"
)

// ErrorType represents the category of error for exit codes and output formatting.
type ErrorType string

const (
	// TypeValidation indicates invalid operator input (exit 64)
	TypeValidation ErrorType = "validation"
	// TypeNotFound indicates a missing record (exit 3)
	TypeNotFound ErrorType = "not_found"
	// TypeConflict indicates the register is in the wrong state for the operation (exit 2)
	TypeConflict ErrorType = "conflict"
	// TypeInternal indicates a storage or unexpected failure (exit 1)
	TypeInternal ErrorType = "internal"
)

// Error represents a structured error with type, message, and context.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit code for this error type.
func (e *Error) ExitCode() int {
	switch e.Type {
	case TypeConflict:
		return 2
	case TypeNotFound:
		return 3
	case TypeValidation:
		return 64
	default:
		return 1
	}
}

// ValidationError creates a new validation error.
func ValidationError(message string) *Error {
	return &Error{
		Type:    TypeValidation,
		Message: message,
		Context: make(map[string]any),
	}
}

// NotFoundError creates a new not-found error.
func NotFoundError(message string, cause error) *Error {
	return &Error{
		Type:    TypeNotFound,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// ConflictError creates a new conflict error.
func ConflictError(message string, cause error) *Error {
	return &Error{
		Type:    TypeConflict,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// InternalError creates a new internal error.
func InternalError(message string, cause error) *Error {
	return &Error{
		Type:    TypeInternal,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// WithContext adds context fields to the error (chainable).
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// ErrorResponse represents the JSON structure printed in -json mode.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Type    ErrorType      `json:"type"`
	Context map[string]any `json:"context,omitempty"`
}

// ToResponse converts an Error to an ErrorResponse for JSON serialization.
func (e *Error) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Type:    e.Type,
		Context: e.Context,
	}
}

// AsStructuredError converts any error into a structured Error.
// If err is already an *Error, returns it unchanged. Register state errors
// become conflicts with an operator message; anything else is internal.
func AsStructuredError(err error) *Error {
	if err == nil {
		return nil
	}

	var structuredErr *Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	switch {
	case errors.Is(err, domain.ErrNoActiveSession):
		return ConflictError("no register session is open; open one first", err)
	case errors.Is(err, domain.ErrSessionActive):
		return ConflictError("a register session is already open; close it first", err)
	case errors.Is(err, domain.ErrSessionNotFound):
		return NotFoundError("register session not found", err)
	}

	return InternalError("register operation failed", err)
}
