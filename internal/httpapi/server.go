// Package httpapi exposes the settlement wizard as a JSON HTTP API.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vemurilakshmikanth/bill-splitter/internal/extraction"
	"github.com/vemurilakshmikanth/bill-splitter/internal/middleware"
	"github.com/vemurilakshmikanth/bill-splitter/internal/session"
	"github.com/vemurilakshmikanth/bill-splitter/internal/storage"
)

// Server wires the session manager and the extraction client into routes.
type Server struct {
	manager     *session.Manager
	extractor   extraction.Client
	concurrency int
	router      chi.Router
}

// New creates the API server. extractor may be nil when no extraction
// service is configured; uploads then fail with 503 while the rest of the
// API keeps working (bills can still arrive via the JSON endpoint).
func New(manager *session.Manager, extractor extraction.Client, concurrency int) *Server {
	s := &Server{
		manager:     manager,
		extractor:   extractor,
		concurrency: concurrency,
	}
	s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.CORS)
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", middleware.MetricsHandler())

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/bills", s.handleUploadBills)
			r.Post("/advance", s.handleAdvance)
			r.Post("/back", s.handleBack)
			r.Get("/settlement", s.handleSettlement)
			r.Get("/summary", s.handleSummary)
			r.Route("/bills/{billNumber}", func(r chi.Router) {
				r.Put("/payer", s.handleSetPayer)
				r.Route("/items/{itemNumber}", func(r chi.Router) {
					r.Put("/participants", s.handleAssign)
					r.Post("/visitors", s.handleAddVisitor)
				})
			})
		})
	})

	s.router = r
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// respondError maps domain errors onto HTTP statuses.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var incomplete *session.IncompleteAssignmentError
	var invalid *session.InvalidTransitionError
	switch {
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, session.ErrBillNotFound),
		errors.Is(err, session.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrEmptyName),
		errors.Is(err, session.ErrNoBills):
		status = http.StatusBadRequest
	case errors.As(err, &incomplete), errors.As(err, &invalid):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
