// Package errors provides the public error taxonomy for goAccountFinder.
// Following unified error response format: {"error": "message", "code": "ERROR_CODE"}
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Account lookup error codes
const (
	// Validation errors (400 Bad Request)
	ErrCodeInvalidArgument = "ACCOUNT_INVALID_ARGUMENT"
	ErrCodeUnsafeInput     = "UNSAFE_INPUT"

	// Backend errors (5xx)
	ErrCodeBackendUnavailable = "ACCOUNT_BACKEND_UNAVAILABLE"
	ErrCodeQueryFailed        = "ACCOUNT_QUERY_FAILED"
)

// Sentinels for errors.Is classification.
var (
	ErrInvalidArgument    = stderrors.New("invalid argument")
	ErrBackendUnavailable = stderrors.New("backend unavailable")
	ErrQueryFailed        = stderrors.New("query failed")
)

// InvalidArgumentError reports a parameter rejected before any I/O took place.
type InvalidArgumentError struct {
	Param  string
	Value  string
	Reason string
}

// NewInvalidArgumentError creates an InvalidArgumentError
func NewInvalidArgumentError(param, value, reason string) *InvalidArgumentError {
	return &InvalidArgumentError{Param: param, Value: value, Reason: reason}
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %q (%s)", e.Param, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidArgument
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// BackendError wraps a driver failure. Op names the stage that failed
// (connect, query, scan, rows).
type BackendError struct {
	Op          string
	Unavailable bool
	Err         error
}

func (e *BackendError) Error() string {
	if e.Unavailable {
		return fmt.Sprintf("backend unavailable during %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("backend %s failed: %v", e.Op, e.Err)
}

// Unwrap exposes the driver error
func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is matches ErrBackendUnavailable or ErrQueryFailed depending on Unavailable
func (e *BackendError) Is(target error) bool {
	if e.Unavailable {
		return target == ErrBackendUnavailable
	}
	return target == ErrQueryFailed
}

// AccountError represents a user-facing error with HTTP status mapping
type AccountError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

// Error implements the error interface
func (e *AccountError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// GetHTTPStatus returns the HTTP status code for the error
func (e *AccountError) GetHTTPStatus() int {
	return e.HTTPStatus
}

// NewAccountValidationError creates validation errors (400 Bad Request)
func NewAccountValidationError(errCode, message, details string) *AccountError {
	return &AccountError{
		Code:       errCode,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewAccountUnavailableError creates backend unavailable errors (503 Service Unavailable)
func NewAccountUnavailableError(message string) *AccountError {
	return &AccountError{
		Code:       ErrCodeBackendUnavailable,
		Message:    message,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// NewAccountQueryError creates query failures (500 Internal Server Error)
func NewAccountQueryError(message string) *AccountError {
	return &AccountError{
		Code:       ErrCodeQueryFailed,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// GetAccountError extracts AccountError from error
func GetAccountError(err error) (*AccountError, bool) {
	var accErr *AccountError
	ok := stderrors.As(err, &accErr)
	return accErr, ok
}

// IsInvalidArgument reports whether err was caused by a rejected parameter
func IsInvalidArgument(err error) bool {
	return stderrors.Is(err, ErrInvalidArgument)
}

// GetInvalidArgument extracts InvalidArgumentError from error
func GetInvalidArgument(err error) (*InvalidArgumentError, bool) {
	var argErr *InvalidArgumentError
	ok := stderrors.As(err, &argErr)
	return argErr, ok
}
