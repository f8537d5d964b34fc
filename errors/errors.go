// Package errors defines the error taxonomy of SVG conversions.
//
// Every failure reported to a host carries a Code, so callers can tell a
// missing file from a malformed document without matching on text:
//
//	err := errors.Wrap(errors.ErrCodeParse, cause, "reading %s", name)
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // malformed markup
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	// ErrCodeNotFound reports a local file that does not exist.
	ErrCodeNotFound Code = "NOT_FOUND"
	// ErrCodeParse reports content that is not valid SVG markup.
	ErrCodeParse Code = "PARSE_ERROR"
	// ErrCodeIO reports any other failure opening or reading a source.
	ErrCodeIO Code = "IO_ERROR"
	// ErrCodeInvalidSize reports a requested or resolved size that
	// cannot back a raster surface.
	ErrCodeInvalidSize Code = "INVALID_SIZE"
	// ErrCodeInternal reports a failure inside the rendering libraries.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

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
// Returns the empty string if err does not wrap an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a message suitable for a host that only shows text.
// For *Error values the cause is appended to the message, without the
// code prefix.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}
