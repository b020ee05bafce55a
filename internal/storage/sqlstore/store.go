package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aanand-mishra/students-api/internal/metrics"
	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/jmoiron/sqlx"
)

// Statements use ? placeholders and are rebound per driver at call time.
// Selected columns carry lowercase aliases: SQLite reports a bare column
// under its declared (uppercase) name, and sqlx maps by the db tags on
// types.Student.
const (
	insertStudent = `INSERT INTO STUDENT_DETAILS (NAME, EMAIL, AGE, GENDER)
		VALUES (?, ?, ?, ?) RETURNING ID`

	selectStudents = `SELECT ID AS id, NAME AS name, EMAIL AS email, AGE AS age, GENDER AS gender
		FROM STUDENT_DETAILS ORDER BY ID`

	selectStudentByID = `SELECT ID AS id, NAME AS name, EMAIL AS email, AGE AS age, GENDER AS gender
		FROM STUDENT_DETAILS WHERE ID = ?`

	updateStudent = `UPDATE STUDENT_DETAILS
		SET NAME = ?, EMAIL = ?, AGE = ?, GENDER = ? WHERE ID = ?`

	deleteStudent = `DELETE FROM STUDENT_DETAILS WHERE ID = ?`
)

// Store is the SQL implementation of storage.Storage.
//
// Every method checks out its own connection from db and returns it before
// returning, on success and error paths alike. With MaxIdleConns set to 0
// (the default from config) the returned connection is closed, so no
// connection is reused between operations.
type Store struct {
	db      *sqlx.DB
	dialect Dialect
}

var _ storage.Storage = (*Store)(nil)

// Open connects with the dialect's driver, bootstraps the students table
// and returns a ready Store.
func Open(ctx context.Context, d Dialect, dsn string, maxIdleConns int) (*Store, error) {
	// sqlx.Open does NOT connect yet; the first Connx call does.
	db, err := sqlx.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore.Open: open db: %w", err)
	}
	db.SetMaxIdleConns(maxIdleConns)

	store, err := New(ctx, db, d)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an existing handle, ensuring the students table exists first.
func New(ctx context.Context, db *sqlx.DB, d Dialect) (*Store, error) {
	if err := EnsureTable(ctx, db, d); err != nil {
		return nil, fmt.Errorf("sqlstore.New: %w", err)
	}
	return &Store{db: db, dialect: d}, nil
}

// Close closes the underlying handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func observe(op string, start time.Time, errp *error) {
	metrics.RecordStoreOperation(op, time.Since(start), *errp)
}

// CreateStudent inserts a new row and returns the id the database assigned.
func (s *Store) CreateStudent(ctx context.Context, student types.Student) (id int64, err error) {
	defer observe("create", time.Now(), &err)

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: acquire conn: %w", err)
	}
	defer conn.Close()

	err = conn.QueryRowxContext(ctx, s.db.Rebind(insertStudent),
		student.Name, student.Email, student.Age, student.Gender,
	).Scan(&id)
	if err != nil {
		if s.dialect.IsUniqueViolation(err) {
			return 0, fmt.Errorf("CreateStudent: %w", storage.ErrDuplicateEmail)
		}
		return 0, fmt.Errorf("CreateStudent: insert: %w", err)
	}

	return id, nil
}

// GetStudentByID fetches exactly one student row matched by primary key.
func (s *Store) GetStudentByID(ctx context.Context, id int64) (student types.Student, err error) {
	defer observe("get", time.Now(), &err)

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: acquire conn: %w", err)
	}
	defer conn.Close()

	return s.getByID(ctx, conn, id)
}

func (s *Store) getByID(ctx context.Context, conn *sqlx.Conn, id int64) (types.Student, error) {
	var student types.Student
	err := conn.GetContext(ctx, &student, s.db.Rebind(selectStudentByID), id)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, fmt.Errorf("no student with id %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}
	return student, nil
}

// GetStudents returns all student rows ordered by id.
func (s *Store) GetStudents(ctx context.Context) (students []types.Student, err error) {
	defer observe("list", time.Now(), &err)

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: acquire conn: %w", err)
	}
	defer conn.Close()

	// Non-nil so an empty table encodes as [] rather than null.
	students = make([]types.Student, 0)
	if err := conn.SelectContext(ctx, &students, s.db.Rebind(selectStudents)); err != nil {
		return nil, fmt.Errorf("GetStudents: select: %w", err)
	}

	return students, nil
}

// UpdateStudentByID rewrites every field of the row and returns it as
// stored.
func (s *Store) UpdateStudentByID(ctx context.Context, id int64, student types.Student) (updated types.Student, err error) {
	defer observe("update", time.Now(), &err)

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: acquire conn: %w", err)
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, s.db.Rebind(updateStudent),
		student.Name, student.Email, student.Age, student.Gender, id,
	)
	if err != nil {
		if s.dialect.IsUniqueViolation(err) {
			return types.Student{}, fmt.Errorf("UpdateStudentByID: %w", storage.ErrDuplicateEmail)
		}
		return types.Student{}, fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}

	if err := requireAffected(result, id); err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: %w", err)
	}

	// Re-fetch the record so we return exactly what is stored in the DB.
	return s.getByID(ctx, conn, id)
}

// DeleteStudentByID removes a student row by primary key.
func (s *Store) DeleteStudentByID(ctx context.Context, id int64) (err error) {
	defer observe("delete", time.Now(), &err)

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: acquire conn: %w", err)
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, s.db.Rebind(deleteStudent), id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	if err := requireAffected(result, id); err != nil {
		return fmt.Errorf("DeleteStudentByID: %w", err)
	}
	return nil
}

func requireAffected(result sql.Result, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no student with id %d: %w", id, storage.ErrNotFound)
	}
	return nil
}
