package output

import (
	"errors"
	"net/http"
)

// Exit codes:
// 0 = Success
// 1 = User error (bad flags, unreadable story, story not found)
// 2 = System error (backend unavailable, I/O error)
// 3 = Conflict (target file exists)
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitConflict    = 3
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
func NewUserError(message string) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message}
}

// NewUserErrorWithCause creates a user error wrapping the decode or read
// failure behind it.
func NewUserErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message, Cause: cause}
}

// NewSystemError creates an error for system failures (exit code 2).
func NewSystemError(message string) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message, Cause: cause}
}

// NewConflictError creates an error for conflict situations (exit code 3).
// Use for: output file already exists.
func NewConflictError(message string) *ExitError {
	return &ExitError{Code: ExitConflict, Message: message}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitUserError for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitUserError
}

// HTTPStatus maps an error onto the status code an HTTP handler returns.
// Untyped errors count as bad requests, like GetExitCode.
func HTTPStatus(err error) int {
	switch GetExitCode(err) {
	case ExitSuccess:
		return http.StatusOK
	case ExitSystemError:
		return http.StatusInternalServerError
	case ExitConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// ErrorCode is a short machine-readable name for an error's class.
func ErrorCode(err error) string {
	switch GetExitCode(err) {
	case ExitSuccess:
		return "ok"
	case ExitSystemError:
		return "system_error"
	case ExitConflict:
		return "conflict"
	default:
		return "invalid_request"
	}
}
