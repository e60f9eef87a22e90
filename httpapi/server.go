/*
server.go - HTTP router and middleware configuration

Router: chi, for the same reasons the teacher picked it (lightweight,
context-based, RESTful route patterns). Middleware stack mirrors
api/server.go's: request logging, panic recovery, request IDs, and CORS
for browser-based callers. There is no static frontend here, so the
catch-all file-server branch is dropped.
*/
package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with /solve, /resume, and /export/{format}
// wired to h.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Post("/solve", h.Solve)
	r.Post("/resume", h.Resume)
	r.Get("/export/{format}", h.Export)

	return r
}
