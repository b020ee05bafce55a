// Package storage defines the Storage interface, the contract any database
// backend must satisfy to work with this application, and the error kinds
// every backend reports.
//
// Handlers and the console depend only on this interface, so they never
// learn which SQL engine sits behind it, and tests can substitute a fake.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/students-api/internal/types"
)

// Error kinds. Backends wrap these with %w; callers test with errors.Is.
// Any other error returned by a Storage method is a store failure.
var (
	// ErrNotFound means no row has the requested id.
	ErrNotFound = errors.New("student not found")

	// ErrDuplicateEmail means the email uniqueness constraint rejected the write.
	ErrDuplicateEmail = errors.New("email already exists in database")
)

// Storage is the persistence boundary for student records.
// Every method issues a single parameterized statement (plus a re-read for
// updates) on its own connection.
type Storage interface {
	// CreateStudent inserts a validated record and returns the id the
	// database assigned. student.ID is ignored.
	CreateStudent(ctx context.Context, student types.Student) (int64, error)

	// GetStudentByID fetches a single student or returns ErrNotFound.
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)

	// GetStudents returns every student ordered by id.
	// Returns an empty slice (not nil) if there are no students.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// UpdateStudentByID rewrites all four fields of an existing student and
	// returns the stored row. Returns ErrNotFound if id does not exist.
	UpdateStudentByID(ctx context.Context, id int64, student types.Student) (types.Student, error)

	// DeleteStudentByID removes a student permanently.
	// Returns ErrNotFound if id does not exist.
	DeleteStudentByID(ctx context.Context, id int64) error

	// Close releases the underlying database handle.
	Close() error
}
