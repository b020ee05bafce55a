package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/students-api/internal/config"
	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SQLite(t *testing.T) {
	cfg := &config.Config{Database: config.Database{
		Driver: "sqlite3",
		DSN:    filepath.Join(t.TempDir(), "students.db"),
	}}

	store, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	id, err := store.CreateStudent(context.Background(), types.Student{Name: "Ann", Email: "a@b.com", Age: 20, Gender: "F"})
	require.NoError(t, err)
	assert.Positive(t, id)
}

func TestNew_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{Database: config.Database{Driver: "mysql", DSN: "x"}}

	store, err := New(context.Background(), cfg)
	assert.Nil(t, store)
	assert.ErrorContains(t, err, `unsupported database driver "mysql"`)
}
