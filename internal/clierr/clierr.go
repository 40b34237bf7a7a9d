// Package clierr defines structured errors with machine-readable codes
// for CLI output and exit status.
package clierr

import (
	"fmt"
	"strconv"
)

// Error codes.
const (
	BoardNotFound    = "BOARD_NOT_FOUND"
	NotLoggedIn      = "NOT_LOGGED_IN"
	TaskNotFound     = "TASK_NOT_FOUND"
	InvalidStatus    = "INVALID_STATUS"
	InvalidDate      = "INVALID_DATE"
	InvalidInput     = "INVALID_INPUT"
	ValidationFailed = "VALIDATION_FAILED"
	StoreError       = "STORE_ERROR"
	SeedFailed       = "SEED_FAILED"
	InternalError    = "INTERNAL_ERROR"
)

// Error is a CLI error carrying a code and optional structured details.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// New creates an Error with the given code and message.
func New(code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// WithDetails attaches structured details and returns the same error.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode maps the error code to a process exit status.
// Internal and storage failures exit 2; everything else is a user error.
func (e *Error) ExitCode() int {
	switch e.Code {
	case InternalError, StoreError:
		return 2 //nolint:mnd // exit code 2 for internal errors
	default:
		return 1
	}
}

// SilentError signals a non-zero exit without printing anything further.
type SilentError struct {
	Code int
}

func (e *SilentError) Error() string {
	return "exit " + strconv.Itoa(e.Code)
}
