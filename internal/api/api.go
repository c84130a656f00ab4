// Package api exposes the generation pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz      liveness probe
//	POST /v1/diagram   JSON descriptor in, .drawio XML out
//
// The handlers are thin: decode and validate, run the shared pipeline
// runner, map validation failures to 400 and everything else to 500.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matcluck/drawgen/pkg/descriptor"
	"github.com/matcluck/drawgen/pkg/pipeline"
)

// maxDescriptorBytes bounds request bodies; descriptors are small.
const maxDescriptorBytes = 1 << 20

// Server holds the API dependencies.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates an API server around a pipeline runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the chi router with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/diagram", s.handleDiagram)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleDiagram generates a .drawio document from the posted descriptor.
// Theme and layout overrides come from query parameters so callers can
// re-render a stored descriptor without editing it.
func (s *Server) handleDiagram(w http.ResponseWriter, req *http.Request) {
	d, err := descriptor.Decode(http.MaxBytesReader(w, req.Body, maxDescriptorBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	opts := pipeline.Options{
		Theme:  req.URL.Query().Get("theme"),
		Layout: req.URL.Query().Get("layout"),
	}
	if err := pipeline.ValidateTheme(opts.Theme); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := pipeline.ValidateLayout(opts.Layout); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	doc, err := s.runner.Generate(req.Context(), d, opts)
	if err != nil {
		s.logger.Errorf("generate: %v", err)
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(doc))
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
