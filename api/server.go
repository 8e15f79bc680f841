// Package api - Thin JSON API over the estimation service and expense ledger.
// The API is ONLY responsible for: request validation, service calls, response serialization.
// The API NEVER performs cost logic.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"buildaide/core/engine"
	"buildaide/db/expense"
	apperrors "buildaide/internal/errors"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Server is the API server
type Server struct {
	service  *engine.Service
	expenses expense.Repository
	logger   *zap.Logger
	version  string

	mux     *http.ServeMux
	handler http.Handler
}

// NewServer creates a new API server
func NewServer(version string, service *engine.Service, expenses expense.Repository, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if expenses == nil {
		expenses = expense.NewMemoryRepository()
	}

	s := &Server{
		service:  service,
		expenses: expenses,
		logger:   logger,
		version:  version,
		mux:      http.NewServeMux(),
	}

	s.registerRoutes()
	s.handler = s.requestLogger(s.mux)
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Cost engine
	s.mux.HandleFunc("POST /api/cost-engine/estimate", s.handleEstimate)
	s.mux.HandleFunc("POST /api/cost-engine/what-if", s.handleWhatIf)
	s.mux.HandleFunc("GET /api/cost-engine/regional-insights/{zip}", s.handleRegionalInsight)
	s.mux.HandleFunc("GET /api/cost-engine/tables", s.handleTables)

	// Expense ledger
	s.mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	s.mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	s.mux.HandleFunc("GET /api/expenses/{id}", s.handleGetExpense)
	s.mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
	s.mux.Handle("GET /metrics", s.service.Metrics().Handler())
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "buildaide",
		"api_version": "v1",
	}, http.StatusOK)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}, status)
}

// writeAppError maps err onto a status code and error body
func (s *Server) writeAppError(w http.ResponseWriter, err error) {
	if errors.Is(err, expense.ErrNotFound) {
		s.writeError(w, string(apperrors.TypeNotFound), err.Error(), http.StatusNotFound)
		return
	}

	errType := apperrors.TypeOf(err)
	status := statusFor(errType)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("code", string(errType)), zap.Error(err))
	}
	s.writeError(w, string(errType), err.Error(), status)
}

func statusFor(t apperrors.Type) int {
	switch t {
	case apperrors.TypeInput, apperrors.TypeNotSupported:
		return http.StatusBadRequest
	case apperrors.TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
