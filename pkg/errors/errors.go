// Package errors provides structured error types for opcpack.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and the CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The packaging engine distinguishes a small, closed set of failure kinds:
//   - PACKAGE_NOT_FOUND: the source does not exist or is not a container at all
//   - CORRUPTED_PACKAGE: the container opens but its structure is invalid
//   - NOT_XML: a part whose content type implies XML is not well-formed
//   - DUPLICATE_KEY: a relationship id or partname collides with an existing one
//   - LOOKUP: no content type or part type is known for a name
//   - NOT_FOUND: a requested relationship or part does not exist
//
// None of these are retried; all operations are local and deterministic.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeLookup, "no content type for partname %s", name)
//	if errors.Is(err, errors.ErrCodeLookup) {
//	    // Handle unknown extension
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeCorruptedPackage, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Container errors
	ErrCodePackageNotFound  Code = "PACKAGE_NOT_FOUND"
	ErrCodeCorruptedPackage Code = "CORRUPTED_PACKAGE"
	ErrCodeNotXML           Code = "NOT_XML"

	// Graph and naming errors
	ErrCodeDuplicateKey     Code = "DUPLICATE_KEY"
	ErrCodeLookup           Code = "LOOKUP"
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeInvalidPartname  Code = "INVALID_PARTNAME"
	ErrCodePartnameAssigned Code = "PARTNAME_ASSIGNED"
	ErrCodeInvalidState     Code = "INVALID_STATE"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidPath  Code = "INVALID_PATH"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// Only the outermost *Error in the chain is consulted, so wrapping a
// lookup failure as CORRUPTED_PACKAGE reports CORRUPTED_PACKAGE.
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
