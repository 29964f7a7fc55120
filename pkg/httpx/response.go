package httpx

import (
	"encoding/json"
	"net/http"
)

// APIError is the JSON error body used across the service.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (e *APIError) Error() string { return e.Code + ": " + e.Description }

// Write renders the error as JSON.
func (e *APIError) Write(w http.ResponseWriter) {
	WriteJSON(w, e.StatusCode, e)
}

var (
	ErrUnauthenticated = &APIError{StatusCode: http.StatusUnauthorized, Code: "unauthenticated", Description: "authentication required"}
	ErrNotFound        = &APIError{StatusCode: http.StatusNotFound, Code: "not_found", Description: "resource not found"}
	ErrBadRequest      = &APIError{StatusCode: http.StatusBadRequest, Code: "invalid_request", Description: "the request is malformed"}
	ErrServerError     = &APIError{StatusCode: http.StatusInternalServerError, Code: "server_error", Description: "internal server error"}
)

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// Forbidden writes a bare 403. Policy denials never carry a body.
func Forbidden(w http.ResponseWriter) {
	NoCache(w)
	w.WriteHeader(http.StatusForbidden)
}
