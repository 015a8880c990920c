// Package http exposes pattern matching and pattern management as a JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/regula/internal/presentation/graph"
	"github.com/aretw0/regula/pkg/domain"
	"github.com/aretw0/regula/pkg/nfa"
	"github.com/aretw0/regula/pkg/pattern"
	"github.com/aretw0/regula/pkg/stream"
	"github.com/go-chi/chi/v5"
)

// MaxBodyBytes bounds every request body.
const MaxBodyBytes = 1 << 20

// Registry is the subset of the pattern registry the API needs.
type Registry interface {
	Match(ctx context.Context, name, input string) (domain.MatchResult, error)
	MatchExpr(expr, input string) (domain.MatchResult, error)
	MatchAll(ctx context.Context, input string) ([]domain.MatchResult, error)
	Automaton(ctx context.Context, name string) (domain.Pattern, *nfa.Automaton, error)
	Put(ctx context.Context, p domain.Pattern) error
	Remove(ctx context.Context, name string) error
	List(ctx context.Context) ([]domain.Pattern, error)
}

// MatchRequest evaluates Input against either an inline Pattern or a stored Name.
type MatchRequest struct {
	Pattern string `json:"pattern,omitempty"`
	Name    string `json:"name,omitempty"`
	Input   string `json:"input"`
}

// MatchAllResponse lists the verdict of every stored pattern.
type MatchAllResponse struct {
	Input   string               `json:"input"`
	Results []domain.MatchResult `json:"results"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server serves the regula API.
type Server struct {
	Registry Registry
	Logger   *slog.Logger
}

// Option configures the handler.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics http.Handler
}

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(o *options) {
		o.metrics = h
	}
}

// NewHandler creates a new HTTP handler for the registry.
func NewHandler(reg Registry, opts ...Option) http.Handler {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	server := &Server{Registry: reg, Logger: o.logger}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Post("/match", server.MatchOne)
	r.Post("/match/all", server.MatchAll)
	r.Route("/patterns", func(r chi.Router) {
		r.Get("/", server.ListPatterns)
		r.Get("/{name}", server.GetPattern)
		r.Put("/{name}", server.PutPattern)
		r.Delete("/{name}", server.DeletePattern)
		r.Get("/{name}/graph", server.GraphPattern)
	})
	if o.metrics != nil {
		r.Method(http.MethodGet, "/metrics", o.metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MatchOne handles POST /match.
func (s *Server) MatchOne(w http.ResponseWriter, r *http.Request) {
	var body MatchRequest
	if !s.decode(w, r, &body) {
		return
	}
	if (body.Pattern == "") == (body.Name == "") {
		s.writeError(w, http.StatusBadRequest, errors.New("exactly one of pattern or name is required"))
		return
	}

	var (
		res domain.MatchResult
		err error
	)
	if body.Name != "" {
		res, err = s.Registry.Match(r.Context(), body.Name, body.Input)
	} else {
		res, err = s.Registry.MatchExpr(body.Pattern, body.Input)
	}
	if err != nil {
		s.fail(w, "Match", err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// MatchAll handles POST /match/all.
func (s *Server) MatchAll(w http.ResponseWriter, r *http.Request) {
	var body MatchRequest
	if !s.decode(w, r, &body) {
		return
	}
	results, err := s.Registry.MatchAll(r.Context(), body.Input)
	if err != nil {
		s.fail(w, "MatchAll", err)
		return
	}
	s.writeJSON(w, http.StatusOK, MatchAllResponse{Input: body.Input, Results: results})
}

// ListPatterns handles GET /patterns.
func (s *Server) ListPatterns(w http.ResponseWriter, r *http.Request) {
	patterns, err := s.Registry.List(r.Context())
	if err != nil {
		s.fail(w, "ListPatterns", err)
		return
	}
	s.writeJSON(w, http.StatusOK, patterns)
}

// GetPattern handles GET /patterns/{name}.
func (s *Server) GetPattern(w http.ResponseWriter, r *http.Request) {
	p, _, err := s.Registry.Automaton(r.Context(), chi.URLParam(r, "name"))
	if err != nil && !errors.Is(err, domain.ErrInvalidPattern) {
		s.fail(w, "GetPattern", err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// PutPattern handles PUT /patterns/{name}. The name in the path wins over the body.
func (s *Server) PutPattern(w http.ResponseWriter, r *http.Request) {
	var p domain.Pattern
	if !s.decode(w, r, &p) {
		return
	}
	p.Name = chi.URLParam(r, "name")
	if err := s.Registry.Put(r.Context(), p); err != nil {
		s.fail(w, "PutPattern", err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// DeletePattern handles DELETE /patterns/{name}.
func (s *Server) DeletePattern(w http.ResponseWriter, r *http.Request) {
	if err := s.Registry.Remove(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.fail(w, "DeletePattern", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GraphPattern handles GET /patterns/{name}/graph. An input query parameter
// highlights the states active after consuming it.
func (s *Server) GraphPattern(w http.ResponseWriter, r *http.Request) {
	_, a, err := s.Registry.Automaton(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "GraphPattern", err)
		return
	}

	var overlay *graph.GraphOverlay
	if r.URL.Query().Has("input") {
		input := r.URL.Query().Get("input")
		overlay = &graph.GraphOverlay{Active: a.Starting(), Accepted: a.MatchString(input)}
		for _, active := range a.Trace(stream.String(input)) {
			overlay.Active = active
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(graph.GenerateMermaid(a, overlay))); err != nil {
		s.Logger.Error("GraphPattern response write failed", "error", err)
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.Logger.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.writeError(w, status, errors.New("invalid request body: "+err.Error()))
		return false
	}
	return true
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	var syntax *pattern.SyntaxError
	switch {
	case errors.Is(err, domain.ErrPatternNotFound):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrInvalidPattern), errors.As(err, &syntax):
		s.writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.Logger.Warn(op+" aborted", "error", err)
		s.writeError(w, http.StatusServiceUnavailable, err)
	default:
		s.Logger.Error(op+" failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, ErrorResponse{Error: strings.TrimSpace(err.Error())})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Response encode failed", "error", err)
	}
}
