// Package web is the thin JSON shell over the pantry store. Rendering and
// the actual clipboard/SMS hand-off live in external clients; this layer
// only moves state and strings.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/doc4437/pantri/internal/domain"
	"github.com/doc4437/pantri/internal/pantry"
)

type Server struct {
	store      *pantry.Store
	smsCapable bool
	mux        *http.ServeMux
	logger     *slog.Logger
}

func NewServer(store *pantry.Store, smsCapable bool, logger *slog.Logger) *Server {
	s := &Server{
		store:      store,
		smsCapable: smsCapable,
		mux:        http.NewServeMux(),
		logger:     logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /items", s.handleListItems)
	s.mux.HandleFunc("POST /items", s.handleCreateItem)
	s.mux.HandleFunc("PATCH /items/{id}", s.handleEditItem)
	s.mux.HandleFunc("DELETE /items/{id}", s.handleDeleteItem)
	s.mux.HandleFunc("POST /items/{id}/adjust", s.handleAdjustItem)
	s.mux.HandleFunc("POST /items/{id}/archive", s.handleArchiveItem)
	s.mux.HandleFunc("POST /items/{id}/select", s.handleToggleSelect)
	s.mux.HandleFunc("PUT /selection", s.handleSetSelection)
	s.mux.HandleFunc("DELETE /selection", s.handleClearSelection)
	s.mux.HandleFunc("PUT /preferences/{key}", s.handleSetPreference)
	s.mux.HandleFunc("GET /share", s.handleShare)
	s.mux.HandleFunc("POST /share/done", s.handleShareDone)
	s.mux.HandleFunc("GET /export", s.handleExport)
	s.mux.HandleFunc("POST /import", s.handleImport)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, s)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	var parseErr *domain.ParseError
	var persistErr *domain.PersistenceError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &vErr), errors.As(err, &parseErr):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &persistErr):
		status = http.StatusInternalServerError
	}

	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
