// Package editerr provides the coded error type shared by the editing packages.
//
// Every failure that crosses a package boundary carries one of a small set of
// codes so callers (the MCP server, the script runner) can decide how to report
// it without string matching:
//
//   - OUT_OF_BOUNDS: pixel access outside the grid (programming error)
//   - INVALID_DIMENSION: a size or count parameter is out of range
//   - EMPTY_HISTORY: no image has been loaded or generated yet
//   - FILE_ACCESS: the file store could not read or write a path
//   - INVALID_INPUT: unknown filter/pattern name or malformed command
//
// # Usage
//
//	err := editerr.New(editerr.ErrCodeInvalidDimension, "seed count %d exceeds %d pixels", n, max)
//	if editerr.Is(err, editerr.ErrCodeInvalidDimension) {
//	    // report to caller, nothing was mutated
//	}
package editerr

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	ErrCodeOutOfBounds      Code = "OUT_OF_BOUNDS"
	ErrCodeInvalidDimension Code = "INVALID_DIMENSION"
	ErrCodeEmptyHistory     Code = "EMPTY_HISTORY"
	ErrCodeFileAccess       Code = "FILE_ACCESS"
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
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

// UserMessage returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
