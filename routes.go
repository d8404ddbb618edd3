package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

func (s *server) routes() {
	s.router.Use(s.logRequests)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("server healthy\n"))
	})

	s.router.Get("/api/books", s.requireAPIKey(s.handleGetBooks))
	s.router.Post("/api/books", s.requireAPIKey(s.handleCreateBook))
	s.router.Get("/api/books/search", s.requireAPIKey(s.handleSearchBooks))
	s.router.Get("/api/books/{bookID}", s.requireAPIKey(s.handleGetBook))
	s.router.Put("/api/books/{bookID}", s.requireAPIKey(s.handleUpdateBook))
	s.router.Delete("/api/books/{bookID}", s.requireAPIKey(s.handleDeleteBook))
	s.router.Post("/api/books/{bookID}/cover", s.requireAPIKey(s.handleUploadCover))
}

func (s *server) requireAPIKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-API-Key")
		if key == "" || key != s.config.APIKey {
			encode(w, http.StatusUnauthorized, &errorResponse{Error: "Invalid API key"})
			return
		}

		next(w, r)
	}
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
		)
	})
}
