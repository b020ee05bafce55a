// Package student contains all HTTP handlers related to the Student resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// The router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like a database.
// To inject dependencies we use a factory function that:
//  1. Accepts dependencies (storage)
//  2. Returns a function with the exact signature the router needs
//
//	r.Post("/add_student", student.New(storage))
//	//                     ^^^^^^^^^^^^^^^^^^^^
//	//     New(storage) is called ONCE at startup. It returns a handler
//	//     func which is called on EVERY incoming request.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/aanand-mishra/students-api/internal/utils/response"
	"github.com/aanand-mishra/students-api/internal/validate"
	"github.com/go-chi/chi/v5"
)

// Messages returned to clients. Database details never leave the server;
// they are logged instead.
const (
	msgAdded        = "Student added successfully"
	msgUpdated      = "Student updated successfully"
	msgDeleted      = "Student deleted successfully"
	msgNotFound     = "Student not found"
	msgDuplicate    = "Email already exists in database"
	msgAddFailed    = "Failed to add student"
	msgListFailed   = "Failed to fetch students"
	msgGetFailed    = "Failed to fetch student"
	msgUpdateFailed = "Failed to update student"
	msgDeleteFailed = "Failed to delete student"
)

var (
	errEmptyBody   = errors.New("request body is empty")
	errInvalidBody = errors.New("invalid request body")
	errInvalidID   = errors.New("invalid id: must be an integer")
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /add_student
// Creates a new student from the JSON request body.
//
// Request body (JSON):
//
//	{ "name": "Ann", "email": "a@b.com", "age": 20, "gender": "f" }
//
// Success response (200 OK):
//
//	{ "status": "ok", "success": "Student added successfully", "id": 1 }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, failed validation,
//	                   or the email is already taken
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		lastID, err := storage.CreateStudent(r.Context(), student)
		if err != nil {
			writeStoreError(w, err, msgAddFailed)
			return
		}

		slog.Info("student created", slog.Int64("id", lastID))

		resp := response.Success(msgAdded)
		resp.ID = lastID
		response.WriteJSON(w, http.StatusOK, resp)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /student/{id}
//
// Success response (200 OK):
//
//	{ "id": 1, "name": "Ann", "email": "a@b.com", "age": 20, "gender": "F" }
//
// Error responses:
//
//	400 Bad Request  — id is not a valid integer
//	404 Not Found    — no student has that id
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		slog.Info("getting a student", slog.Int64("id", id))

		student, err := storage.GetStudentByID(r.Context(), id)
		if err != nil {
			writeStoreError(w, err, msgGetFailed)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /students
// Returns a JSON array of all students, [] (not null) when there are none.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := storage.GetStudents(r.Context())
		if err != nil {
			writeStoreError(w, err, msgListFailed)
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /student/{id}
// Replaces ALL fields of an existing student; there is no partial update.
//
// Success response (200 OK):
//
//	{ "status": "ok", "success": "Student updated successfully",
//	  "student": { "id": 1, "name": "Ann", "email": "a@b.com", "age": 21, "gender": "F" } }
//
// Error responses:
//
//	400 Bad Request  — invalid id, empty body, validation failure,
//	                   or the new email belongs to another student
//	404 Not Found    — no student has that id
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		slog.Info("updating a student", slog.Int64("id", id))

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		updated, err := storage.UpdateStudentByID(r.Context(), id, student)
		if err != nil {
			writeStoreError(w, err, msgUpdateFailed)
			return
		}

		slog.Info("student updated", slog.Int64("id", id))

		resp := response.Success(msgUpdated)
		resp.Student = &updated
		response.WriteJSON(w, http.StatusOK, resp)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /student/{id}
// Permanently removes a student record; there is no soft delete.
//
// Error responses:
//
//	400 Bad Request  — invalid id
//	404 Not Found    — no student has that id
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a student", slog.Int64("id", id))

		if err := storage.DeleteStudentByID(r.Context(), id); err != nil {
			writeStoreError(w, err, msgDeleteFailed)
			return
		}

		slog.Info("student deleted", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, response.Success(msgDeleted))
	}
}

// parseID reads the {id} path segment. On failure it writes the 400 itself.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errInvalidID))
		return 0, false
	}
	return id, true
}

// decodeStudent decodes and validates the request body. On failure it
// writes the 400 itself. Nothing reaches storage unless every field passed.
func decodeStudent(w http.ResponseWriter, r *http.Request) (types.Student, bool) {
	var req types.StudentRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errEmptyBody))
		return types.Student{}, false
	}
	if err != nil {
		slog.Warn("malformed request body", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errInvalidBody))
		return types.Student{}, false
	}

	student, err := validate.Student(req)
	if err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(verr))
			return types.Student{}, false
		}
		slog.Error("validator failed", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.Message("Failed to validate student"))
		return types.Student{}, false
	}

	return student, true
}

// writeStoreError maps a storage error to its status code. Unclassified
// errors are logged and answered with failMsg.
func writeStoreError(w http.ResponseWriter, err error, failMsg string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.Message(msgNotFound))
	case errors.Is(err, storage.ErrDuplicateEmail):
		response.WriteJSON(w, http.StatusBadRequest, response.Message(msgDuplicate))
	default:
		slog.Error(failMsg, slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.Message(failMsg))
	}
}
