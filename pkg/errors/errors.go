// Package errors provides structured error types for planarfaces.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures, surfaced at construction time
//   - DEGENERATE_CYCLE: An internal invariant of the cycle detector broke
//   - UNIMPLEMENTED: A documented capability that has no implementation
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidEdgeReference, "edge %d: vertex %d out of range", i, v)
//	if errors.Is(err, errors.ErrCodeInvalidEdgeReference) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeInvalidFormat        Code = "INVALID_FORMAT"
	ErrCodeInvalidEdgeReference Code = "INVALID_EDGE_REFERENCE"
	ErrCodeSelfLoop             Code = "SELF_LOOP"
	ErrCodeDuplicateEdge        Code = "DUPLICATE_EDGE"
	ErrCodeInvalidStrategy      Code = "INVALID_STRATEGY"

	// Lookup errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Algorithm errors
	ErrCodeDegenerateCycle Code = "DEGENERATE_CYCLE"

	// Internal errors
	ErrCodeInternal      Code = "INTERNAL_ERROR"
	ErrCodeUnimplemented Code = "UNIMPLEMENTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsInputError reports whether err was caused by malformed caller input,
// as opposed to an internal failure or a missing capability.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidEdgeReference,
		ErrCodeSelfLoop, ErrCodeDuplicateEdge, ErrCodeInvalidStrategy:
		return true
	}
	return false
}

// Unimplemented returns an UNIMPLEMENTED error naming the capability.
func Unimplemented(capability string) *Error {
	return New(ErrCodeUnimplemented, "%s is not implemented", capability)
}
