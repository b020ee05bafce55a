package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/students-api/internal/config"
	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/storage/sqlstore"
	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env:      "dev",
		Database: config.Database{Driver: DriverName, DSN: filepath.Join(t.TempDir(), "students.db")},
	}
}

func TestNew_BootstrapsTable(t *testing.T) {
	cfg := testConfig(t)

	store, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	db, err := sqlx.Open(DriverName, cfg.Database.DSN)
	require.NoError(t, err)
	defer db.Close()

	exists, err := sqlstore.TableExists(context.Background(), db, Dialect{}, sqlstore.TableName)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDialect_ClassifiesErrors(t *testing.T) {
	ctx := context.Background()
	d := Dialect{}

	db, err := sqlx.Open(DriverName, filepath.Join(t.TempDir(), "errs.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx, d.CreateTableStatement(sqlstore.TableName))
	require.NoError(t, err)

	// A second CREATE is what a racing initializer sees.
	_, err = db.ExecContext(ctx, d.CreateTableStatement(sqlstore.TableName))
	require.Error(t, err)
	assert.True(t, d.IsTableExists(err))
	assert.False(t, d.IsUniqueViolation(err))

	insert := `INSERT INTO STUDENT_DETAILS (name, email, age, gender) VALUES (?, ?, ?, ?)`
	_, err = db.ExecContext(ctx, insert, "Ann", "a@b.com", 20, "F")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, insert, "Bob", "a@b.com", 30, "M")
	require.Error(t, err)
	assert.True(t, d.IsUniqueViolation(err))
	assert.False(t, d.IsTableExists(err))
}

func TestDialect_ForeignErrors(t *testing.T) {
	d := Dialect{}
	err := errors.New("table STUDENT_DETAILS already exists")

	assert.False(t, d.IsTableExists(err))
	assert.False(t, d.IsUniqueViolation(err))
	assert.False(t, d.IsTableExists(nil))
}

func TestNew_ReadsBackDeclaredColumns(t *testing.T) {
	ctx := context.Background()
	store, err := New(ctx, testConfig(t))
	require.NoError(t, err)
	defer store.Close()

	all, err := store.GetStudents(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = store.GetStudentByID(ctx, 42)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	id, err := store.CreateStudent(ctx, types.Student{Name: "Ann", Email: "a@b.com", Age: 20, Gender: "F"})
	require.NoError(t, err)

	updated, err := store.UpdateStudentByID(ctx, id, types.Student{Name: "Zed", Email: "z@b.com", Age: 21, Gender: "M"})
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: id, Name: "Zed", Email: "z@b.com", Age: 21, Gender: "M"}, updated)
}

func TestNew_RejectsInMemoryDSN(t *testing.T) {
	for _, dsn := range []string{
		":memory:",
		"file::memory:?cache=shared",
		"file:students?mode=memory&cache=shared",
	} {
		t.Run(dsn, func(t *testing.T) {
			cfg := &config.Config{Database: config.Database{Driver: DriverName, DSN: dsn}}

			store, err := New(context.Background(), cfg)
			assert.ErrorIs(t, err, ErrInMemoryDSN)
			assert.Nil(t, store)
		})
	}
}
