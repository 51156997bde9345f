// Package response defines the JSON envelope every endpoint answers with.
// Successful calls return {"success": true, "data": ...}; failures return
// {"success": false, "error": {...}}. No handler ever writes anything else.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Error codes returned in the envelope.
const (
	CodeInvalidArgument   = "INVALID_ARGUMENT"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeStorageError      = "STORAGE_ERROR"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeInconsistentState = "INCONSISTENT_STATE"
)

// Error is the structured error half of the envelope.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Envelope is the wrapper for every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// JSON writes the envelope with the given status code.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// Success writes a successful response carrying data.
func Success(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Envelope{Success: true, Data: data})
}

// Err writes a failed response carrying a structured error.
func Err(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}})
}

// ErrWithDetails writes a failed response with machine-readable details, for
// example the offending player IDs of a rejected keeper submission.
func ErrWithDetails(w http.ResponseWriter, status int, code, message string, details any) {
	JSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message, Details: details}})
}
