package http

import (
	"encoding/json"
	"net/http"
)

const apiVersion = "1.0"

// ErrorEnvelope is the uniform error body across all handlers.
type ErrorEnvelope struct {
	Message string      `json:"message"`
	Details interface{} `json:"details"`
	Version string      `json:"version"`
}

// WriteJSON writes a success payload as-is.
func WriteJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// WriteError writes the uniform error envelope.
func WriteError(w http.ResponseWriter, statusCode int, message string, details interface{}) {
	if details == nil {
		details = message
	}
	WriteJSON(w, statusCode, ErrorEnvelope{
		Message: message,
		Details: details,
		Version: apiVersion,
	})
}

func Unauthorized(w http.ResponseWriter, details string) {
	WriteError(w, http.StatusUnauthorized, "Authentication Error", details)
}

func Forbidden(w http.ResponseWriter, details string) {
	WriteError(w, http.StatusForbidden, "Authorization Error", details)
}

func InternalServerError(w http.ResponseWriter, details interface{}) {
	WriteError(w, http.StatusInternalServerError, "Internal Server Error", details)
}
