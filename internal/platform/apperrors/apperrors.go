// Package apperrors defines the structured error kinds the DCLG core and its
// transport layer agree on, with a mapping to HTTP status codes.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the kinds named in the error handling design: anchor
// lookup failure, bad caller input, upstream store failure, and a recoverable
// internal invariant break.
var (
	ErrAnchorNotFound    = errors.New("anchor sku not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrNoCandidates      = errors.New("no candidates after filtering")
	ErrInternalInvariant = errors.New("internal invariant violation")
)

// AppError is a structured application error with HTTP status mapping,
// mirrored on the teacher's own error type.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// AnchorNotFound creates a 404 error for an unknown anchor sku.
func AnchorNotFound(sku string) *AppError {
	return &AppError{
		Code:    "ANCHOR_NOT_FOUND",
		Message: fmt.Sprintf("anchor sku %q not found", sku),
		Status:  http.StatusNotFound,
		Err:     ErrAnchorNotFound,
	}
}

// InvalidArgument creates a 400 error, used for numLooks out of range.
func InvalidArgument(message string) *AppError {
	return &AppError{
		Code:    "INVALID_ARGUMENT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidArgument,
	}
}

// Internal creates a 500 error wrapping a panic or other unexpected failure
// so it flows through the same envelope as every other handler error,
// instead of a handler hand-rolling its own JSON error shape.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// StoreUnavailable creates a 503 error for a failed or timed-out upstream
// collaborator call.
func StoreUnavailable(err error) *AppError {
	return &AppError{
		Code:    "STORE_UNAVAILABLE",
		Message: "product or edge store is unavailable",
		Status:  http.StatusServiceUnavailable,
		Err:     errJoin(ErrStoreUnavailable, err),
	}
}

func errJoin(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %v", sentinel, cause)
}

// Wrap wraps an error with additional context, matching the teacher's helper.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for err, defaulting to 500 for
// anything not recognized. ErrNoCandidates and ErrInternalInvariant never
// reach this function as transport-facing errors: the service swallows them
// into a successful, empty-or-degraded response per the error handling design.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	switch {
	case errors.Is(err, ErrAnchorNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
