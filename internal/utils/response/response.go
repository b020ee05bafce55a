// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/aanand-mishra/students-api/internal/validate"
)

// Response is the standard envelope for errors and for write outcomes.
//
// Errors always look like:
//
//	{ "status": "error", "error": "Invalid email format" }
//
// Successful writes look like:
//
//	{ "status": "ok", "success": "Student added successfully", "id": 1 }
//
// An update also carries the record as stored under "student".
//
// Reads return the record or list itself, not an envelope.
type Response struct {
	Status  string                `json:"status"`
	Error   string                `json:"error,omitempty"`
	Success string                `json:"success,omitempty"`
	ID      int64                 `json:"id,omitempty"`
	Fields  []validate.FieldError `json:"fields,omitempty"`
	Student *types.Student        `json:"student,omitempty"`
}

// Status string constants — use these instead of raw string literals so
// a typo is caught by the compiler rather than silently sending "eroor".
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
// Only use it when err's text is safe to show to a client.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// Message builds an error Response from a fixed message. Handlers use it
// for server-side failures so database details stay in the logs.
func Message(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError converts a validate.Error into a Response whose error
// text joins every field message, with the per-field detail alongside.
//
// Example output:
//
//	{ "status": "error",
//	  "error": "Name must be at least 2 characters long, Invalid email format",
//	  "fields": [ { "field": "name", "message": "..." }, ... ] }
func ValidationError(err *validate.Error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
		Fields: err.Fields,
	}
}

// Success builds the envelope returned by add, update and delete.
func Success(msg string) Response {
	return Response{
		Status:  StatusOK,
		Success: msg,
	}
}
