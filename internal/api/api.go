// Package api serves the HTTP interface over graph storage and queries.
//
// Routes live under /v1. Graphs are stored as documents and addressed by
// ID; query endpoints load the stored document, run the requested
// algorithm through the shared engine, and return JSON.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/caugraph/caugraph/pkg/engine"
	cgerrors "github.com/caugraph/caugraph/pkg/errors"
	"github.com/caugraph/caugraph/pkg/graph"
	"github.com/caugraph/caugraph/pkg/graphio"
	"github.com/caugraph/caugraph/pkg/store"
)

// Server bundles the dependencies of the HTTP handlers.
type Server struct {
	runner *engine.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates a server over the given runner and store.
func NewServer(runner *engine.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/graphs", func(r chi.Router) {
			r.Post("/", s.handleCreateGraph)
			r.Get("/", s.handleListGraphs)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetGraph)
				r.Delete("/", s.handleDeleteGraph)
				r.Get("/render", s.handleRender)
				r.Post("/trails", s.handleTrails)
				r.Post("/dsep", s.handleDSep)
				r.Post("/separator", s.handleSeparator)
				r.Post("/orient", s.handleOrient)
				r.Post("/extend", s.handleExtend)
			})
		})
		r.Route("/independencies", func(r chi.Router) {
			r.Post("/closure", s.handleClosure)
			r.Post("/entails", s.handleEntails)
			r.Post("/reduce", s.handleReduce)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// logRequests emits one structured log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

// errorResponse is the JSON body for all error statuses.
type errorResponse struct {
	Error string       `json:"error"`
	Code  cgerrors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP statuses and machine-readable codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := cgerrors.ErrCodeInternal
	switch {
	case errors.Is(err, store.ErrNotFound):
		status, code = http.StatusNotFound, cgerrors.ErrCodeGraphNotFound
	case errors.Is(err, graph.ErrNodeNotFound):
		status, code = http.StatusBadRequest, cgerrors.ErrCodeNodeNotFound
	case errors.Is(err, graph.ErrCycle):
		status, code = http.StatusBadRequest, cgerrors.ErrCodeCycle
	case errors.Is(err, graphio.ErrInvalidDocument):
		status, code = http.StatusBadRequest, cgerrors.ErrCodeInvalidDocument
	case errors.Is(err, graph.ErrNoSeparator):
		status, code = http.StatusUnprocessableEntity, cgerrors.ErrCodeNoSeparator
	case errors.Is(err, graph.ErrNoConsistentExtension):
		status, code = http.StatusUnprocessableEntity, cgerrors.ErrCodeNoExtension
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

// decodeBody parses a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
