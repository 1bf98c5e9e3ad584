package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/museum-search/internal/domain"
	"github.com/kailas-cloud/museum-search/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/museum-search/internal/usecase/health"
)

// maxRequestBody bounds POST /v1/search bodies.
const maxRequestBody = 64 << 10

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the catalog query API.
type Server struct {
	catalog       Catalog
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(catalog Catalog, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{catalog: catalog, logger: logger}
	// Order matters: provider failures are also inference failures.
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrEmbeddingProviderError,
			http.StatusBadGateway, ErrorResponseCodeEmbeddingProviderError),
		sentinelHandler(domain.ErrInference, http.StatusInternalServerError, ErrorResponseCodeInferenceFailed),
		sentinelHandler(domain.ErrResourceMissing,
			http.StatusServiceUnavailable, ErrorResponseCodeResourceUnavailable),
	}
	return s
}

// Handler mounts the API routes on r.
func Handler(s *Server, r chi.Router) http.Handler {
	r.Get("/v1/search", s.SearchQuery)
	r.Post("/v1/search", s.SearchBody)
	r.Get("/v1/exhibitions", s.ListExhibitions)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorResponseCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorResponseCodeMethodNotAllowed, "method not allowed")
	})
	return r
}

// SearchQuery handles GET /v1/search?q=...&top_k=N.
func (s *Server) SearchQuery(w http.ResponseWriter, r *http.Request) {
	var (
		query string
		topK  int
	)
	if err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &query); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter q")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "top_k", r.URL.Query(), &topK); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter top_k")
		return
	}
	s.search(w, r, query, topK)
}

// SearchBody handles POST /v1/search.
func (s *Server) SearchBody(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	topK := 0
	if req.TopK != nil {
		topK = *req.TopK
	}
	s.search(w, r, req.Query, topK)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request, query string, topK int) {
	results, err := s.catalog.Search(r.Context(), query, topK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]SearchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToResponse(&results[i])
	}
	writeJSON(w, http.StatusOK, SearchResultListResponse{Items: items, Total: len(items)})
}

// ListExhibitions handles GET /v1/exhibitions?top_k=N.
func (s *Server) ListExhibitions(w http.ResponseWriter, r *http.Request) {
	var topK int
	if err := runtime.BindQueryParameter("form", true, false, "top_k", r.URL.Query(), &topK); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid format for parameter top_k")
		return
	}

	groups, err := s.catalog.TopExhibitions(r.Context(), topK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]ExhibitionItem, len(groups))
	for i, g := range groups {
		items[i] = ExhibitionItem{
			Exhibition: g.Exhibition(),
			Collection: g.Collection(),
			Count:      g.Count(),
			Display:    s.catalog.Display(g),
		}
	}
	writeJSON(w, http.StatusOK, ExhibitionListResponse{Items: items})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.catalog.Health(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
// Invalid query errors carry the offending parameter and are returned whole.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidQuery) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrEmbeddingProviderError,
		domain.ErrInference,
		domain.ErrResourceMissing,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func searchResultToResponse(r *result.Result) SearchResultItem {
	authors := r.Authors()
	if authors == nil {
		authors = []string{}
	}
	return SearchResultItem{
		Row:         r.Row(),
		Name:        r.Name(),
		URL:         r.URL(),
		Authors:     authors,
		Description: r.Description(),
		Distance:    r.Distance(),
	}
}
