package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthenticated means the session is missing or unusable. It is never
// shown to the user; callers redirect to the login page instead.
var ErrUnauthenticated = errors.New("unauthenticated")

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// APIError is a failed backend call: either a non-2xx response (Status set)
// or a transport failure (Cause set, Status zero).
type APIError struct {
	Endpoint string
	Status   int
	Message  string
	Cause    error
}

func (e *APIError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Endpoint, e.Cause)
	case e.Message != "":
		return fmt.Sprintf("%s: %d %s", e.Endpoint, e.Status, e.Message)
	default:
		return fmt.Sprintf("%s: %d %s", e.Endpoint, e.Status, http.StatusText(e.Status))
	}
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

func NewAPIError(endpoint string, status int, message string) *APIError {
	return &APIError{
		Endpoint: endpoint,
		Status:   status,
		Message:  message,
	}
}

func NewTransportError(endpoint string, cause error) *APIError {
	return &APIError{
		Endpoint: endpoint,
		Cause:    cause,
	}
}

func IsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

const networkMessage = "Network error. Please try again."

// UserMessage turns an error into notification text. fallback is used for
// backend failures that carry no message of their own.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if ve, ok := IsValidationError(err); ok {
		return ve.Message
	}
	if ae, ok := IsAPIError(err); ok {
		if ae.Cause != nil {
			return networkMessage
		}
		if ae.Message != "" {
			return ae.Message
		}
	}
	return fallback
}
