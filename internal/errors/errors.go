package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthenticated = stderrors.New("not logged in")
	ErrForbidden       = stderrors.New("staff access required")
)

// NetworkError wraps a transport failure (connection refused, timeout).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError represents a non-2xx response from the booking backend.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
}

// NewAPIError creates a new APIError with the given status and detail.
func NewAPIError(status int, detail string) *APIError {
	return &APIError{Status: status, Detail: detail}
}

// DecodeError is returned when a response body is not the JSON we expect.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return stderrors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// UserMessage turns err into the text shown to the user. Backend details and
// validation messages are shown as-is; everything else becomes fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if stderrors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	var valErr *ValidationError
	if stderrors.As(err, &valErr) {
		return valErr.Message
	}
	switch {
	case stderrors.Is(err, ErrUnauthenticated):
		return "Please log in again."
	case stderrors.Is(err, ErrForbidden):
		return "Staff access required."
	}
	return fallback
}
