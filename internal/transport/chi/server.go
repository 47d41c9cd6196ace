// Package chi exposes the search API over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/aandreyev/kb-search-api/internal/domain"
	"github.com/aandreyev/kb-search-api/internal/domain/activity"
	"github.com/aandreyev/kb-search-api/internal/domain/search/request"
	"github.com/aandreyev/kb-search-api/internal/domain/search/result"
	"github.com/aandreyev/kb-search-api/internal/logger"
	"github.com/aandreyev/kb-search-api/internal/metrics"
	healthuc "github.com/aandreyev/kb-search-api/internal/usecase/health"
)

// searchService runs a validated search request.
type searchService interface {
	Search(ctx context.Context, req *request.Request) *result.Response
}

// activityService persists an activity entry synchronously.
type activityService interface {
	Record(ctx context.Context, e activity.Entry) error
}

// healthService aggregates component health.
type healthService interface {
	Check(ctx context.Context) healthuc.Report
}

// Server is the HTTP API server.
type Server struct {
	search   searchService
	activity activityService
	health   healthService
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(search searchService, act activityService, health healthService, log *zap.Logger) *Server {
	return &Server{
		search:   search,
		activity: act,
		health:   health,
		logger:   log,
	}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Use(requestIDMiddleware(s.logger))
	r.Use(metrics.Middleware())

	r.Post("/search", s.handleSearch)
	r.Post("/activity", s.handleActivity)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// handleSearch handles POST /search. Validation failures are the only 400;
// pipeline failures come back 200 with the error inside the envelope so the
// caller always gets the query echo.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var body searchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}

	req, err := request.New(body.toParams())
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	resp := s.search.Search(r.Context(), &req)
	writeJSON(w, http.StatusOK, searchResponseFromResult(resp))
}

// handleActivity handles POST /activity.
func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	var body activityRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}
	if body.EventType == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "event_type is required")
		return
	}

	if err := s.activity.Record(r.Context(), body.toEntry()); err != nil {
		s.logger.Warn("activity record failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", "failed to record activity")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}

// handleHealth handles GET /health. Degraded still answers 200: the service
// can serve keyword traffic, and orchestrators should not restart it.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// requestIDMiddleware tags every request with an id and stores a scoped
// logger in the context for downstream layers.
func requestIDMiddleware(base *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", id)

			reqLog := base.With(zap.String("request_id", id))
			ctx := logger.ContextWithLogger(r.Context(), reqLog)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
