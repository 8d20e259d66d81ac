package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternal       = errors.New("internal error")
	ErrServiceUnavail = errors.New("service unavailable")

	// ErrIntentParse marks an intent-extraction response that was not valid
	// JSON after fence unwrapping or omitted required fields.
	ErrIntentParse = errors.New("intent parse failed")

	// ErrGenerationUnavailable marks a generation-service failure: network
	// error, timeout, or a non-2xx response. It is deliberately distinct
	// from ErrIntentParse so callers can tell a broken response apart from
	// an unreachable service.
	ErrGenerationUnavailable = errors.New("generation service unavailable")
)

// AppError represents a structured application error with HTTP status mapping.
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

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// IntentParse creates a 422 error for an unparseable intent-extraction
// response. It is surfaced to the caller rather than retried; the caller
// decides whether to fall back to an unfiltered search.
func IntentParse(message string) *AppError {
	return &AppError{
		Code:    "INTENT_PARSE_FAILED",
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrIntentParse,
	}
}

// GenerationUnavailable creates a 502 error for a failed generation call.
// Summary and cross-sell paths treat it as a degraded (non-fatal) state.
func GenerationUnavailable(err error) *AppError {
	return &AppError{
		Code:    "GENERATION_UNAVAILABLE",
		Message: "text generation service unavailable",
		Status:  http.StatusBadGateway,
		Err:     fmt.Errorf("%w: %w", ErrGenerationUnavailable, err),
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrIntentParse):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrGenerationUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, ErrServiceUnavail):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
