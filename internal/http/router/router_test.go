package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/aanand-mishra/students-api/internal/storage/sqlite"
	"github.com/aanand-mishra/students-api/internal/storage/sqlstore"
	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := sqlstore.Open(context.Background(), sqlite.Dialect{},
		filepath.Join(t.TempDir(), "students.db"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(New(store))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_CRUDLifecycle(t *testing.T) {
	srv := newServer(t)

	resp := call(t, srv, http.MethodPost, "/add_student",
		`{"name":"Ann","email":"a@b.com","age":20,"gender":"f"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created struct {
		Success string `json:"success"`
		ID      int64  `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Student added successfully", created.Success)

	path := "/student/" + strconv.FormatInt(created.ID, 10)

	resp = call(t, srv, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got types.Student
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, types.Student{ID: created.ID, Name: "Ann", Email: "a@b.com", Age: 20, Gender: "F"}, got)

	resp = call(t, srv, http.MethodPost, "/add_student",
		`{"name":"Other","email":"a@b.com","age":30,"gender":"M"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, srv, http.MethodPut, path,
		`{"name":"Ann Lee","email":"a@b.com","age":22,"gender":"O"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, srv, http.MethodGet, "/students", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []types.Student
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	require.Len(t, all, 1)
	assert.Equal(t, "Ann Lee", all[0].Name)

	resp = call(t, srv, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, srv, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, srv, http.MethodPut, "/student/999",
		`{"name":"Ann","email":"z@b.com","age":22,"gender":"O"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv := newServer(t)

	resp := call(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	call(t, srv, http.MethodGet, "/students", "")

	resp = call(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `students_api_http_requests_total{method="GET",path="/students",status="200"}`)
	assert.Contains(t, string(body), `students_api_store_operations_total{op="list",result="ok"}`)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	srv := newServer(t)

	resp := call(t, srv, http.MethodPatch, "/student/1", "{}")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
