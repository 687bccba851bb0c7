package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is an error that maps directly to an HTTP response.
type AppError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Status  int         `json:"status"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAuthorization(message string) *AppError {
	return &AppError{Code: "AUTHORIZATION", Message: message, Status: http.StatusForbidden}
}

func NewInternal(message string) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: message, Status: http.StatusInternalServerError}
}

// UpstreamError is returned when the incident-query service answers with a
// non-2xx status. The response status mirrors the upstream one.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// ConnectivityError is returned when the upstream service cannot be reached
// at the transport level (timeout, refused connection, DNS failure).
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("error connecting to incident service: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// MapError resolves any error to the HTTP status and message/details pair
// used by the response envelope.
func MapError(err error) (status int, message string, details interface{}) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		details = appErr.Details
		if details == nil {
			details = appErr.Message
		}
		return appErr.Status, appErr.Message, details
	}

	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		status = upErr.StatusCode
		if status < 400 {
			status = http.StatusInternalServerError
		}
		return status, "Upstream Error", upErr.Error()
	}

	var connErr *ConnectivityError
	if errors.As(err, &connErr) {
		return http.StatusInternalServerError, "Internal Server Error", connErr.Error()
	}

	return http.StatusInternalServerError, "Internal Server Error", err.Error()
}
