package student

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/students-api/internal/storage/sqlite"
	"github.com/aanand-mishra/students-api/internal/storage/sqlstore"
	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The handlers against a real SQLite file, so every statement and scan
// actually runs.
func TestHandlers_SQLiteStore(t *testing.T) {
	store, err := sqlstore.Open(context.Background(), sqlite.Dialect{},
		filepath.Join(t.TempDir(), "students.db"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	h := routes(store)

	rec, _ := do(t, h, http.MethodGet, "/students", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec, resp := do(t, h, http.MethodPost, "/add_student",
		`{"name":"Ann","email":"a@b.com","age":20,"gender":"f"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, int64(1), resp.ID)

	rec, _ = do(t, h, http.MethodGet, "/student/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got types.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, types.Student{ID: 1, Name: "Ann", Email: "a@b.com", Age: 20, Gender: "F"}, got)

	rec, resp = do(t, h, http.MethodPut, "/student/1",
		`{"name":"Zed","email":"z@b.com","age":"33","gender":"m"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Student)
	assert.Equal(t, types.Student{ID: 1, Name: "Zed", Email: "z@b.com", Age: 33, Gender: "M"}, *resp.Student)

	rec, _ = do(t, h, http.MethodGet, "/students", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Zed","email":"z@b.com","age":33,"gender":"M"}]`, rec.Body.String())

	rec, resp = do(t, h, http.MethodGet, "/student/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgNotFound, resp.Error)

	rec, _ = do(t, h, http.MethodPut, "/student/42",
		`{"name":"Bob","email":"b@c.com","age":30,"gender":"M"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, h, http.MethodDelete, "/student/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, h, http.MethodDelete, "/student/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/student/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
