// Package router wires the HTTP routes onto a chi router.
package router

import (
	"net/http"

	"github.com/aanand-mishra/students-api/internal/http/handlers/student"
	"github.com/aanand-mishra/students-api/internal/metrics"
	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/utils/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// New returns the application's handler.
//
// Route table:
//
//	POST   /add_student    → create a new student
//	GET    /students       → list all students
//	GET    /student/{id}   → get one student by ID
//	PUT    /student/{id}   → replace a student
//	DELETE /student/{id}   → delete a student
//	GET    /metrics        → Prometheus exposition
//	GET    /healthz        → liveness
func New(store storage.Storage) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.InstrumentHandler)

	r.Post("/add_student", student.New(store))
	r.Get("/students", student.GetList(store))
	r.Route("/student/{id}", func(r chi.Router) {
		r.Get("/", student.GetByID(store))
		r.Put("/", student.Update(store))
		r.Delete("/", student.Delete(store))
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": response.StatusOK})
	})

	return r
}
