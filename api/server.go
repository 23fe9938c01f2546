// Package api - Thin HTTP layer over the pricing engine
// The API is ONLY responsible for: input decoding, rate acquisition, engine
// invocation and output serialization. It NEVER performs tariff math.
package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"landed-cost/adapters/rates"
	"landed-cost/core/types"
	"landed-cost/internal/errors"
	"landed-cost/internal/logging"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Server is the API server
type Server struct {
	mux     *http.ServeMux
	handler http.Handler
	version string
	rates   rates.Source
	metrics *Metrics

	// defaults are the service-wide formula parameters; each calculation
	// receives a copy
	mu       sync.RWMutex
	defaults types.FormulaParameters
}

// NewServer creates a new API server
func NewServer(version string, defaults types.FormulaParameters, source rates.Source) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		version:  version,
		rates:    source,
		metrics:  NewMetrics(),
		defaults: defaults,
	}

	s.registerRoutes()
	s.handler = s.withMiddleware(s.mux)
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /calculate-price", s.handleCalculate)
	s.mux.HandleFunc("GET /exchange-rates", s.handleExchangeRates)
	s.mux.HandleFunc("GET /formula-params", s.handleGetParams)
	s.mux.HandleFunc("PUT /formula-params", s.handleUpdateParams)
	s.mux.HandleFunc("POST /update-formula-params", s.handleUpdateParams)

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
	s.mux.Handle("GET /metrics", s.metrics.Handler())
}

// Defaults returns a copy of the current service-wide parameters
func (s *Server) Defaults() types.FormulaParameters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
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
		"engine":      "landed-cost",
		"api_version": "v1",
	}, http.StatusOK)
}

// handleExchangeRates handles GET /exchange-rates
func (s *Server) handleExchangeRates(w http.ResponseWriter, r *http.Request) {
	result, err := s.rates.Fetch(r.Context())
	if err != nil {
		s.metrics.rateFailures.Inc()
		logging.Warn("exchange rate fetch failed", zap.Error(err))
		s.writeError(w, "", err)
		return
	}

	out := make(map[string]float64, len(result.Rates))
	for code, rate := range result.Rates {
		out[code.String()] = rate
	}

	s.writeJSON(w, &RatesResponse{
		Rates:     out,
		Source:    result.Source,
		FetchedAt: result.FetchedAt,
		Timestamp: time.Now(),
	}, http.StatusOK)
}

// handleGetParams handles GET /formula-params
func (s *Server) handleGetParams(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, &ParamsResponse{
		Params:    s.Defaults().AsMap(),
		Timestamp: time.Now(),
	}, http.StatusOK)
}

// handleUpdateParams merges overrides into the service-wide defaults
func (s *Server) handleUpdateParams(w http.ResponseWriter, r *http.Request) {
	var req UpdateParamsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, "", err)
		return
	}
	if err := req.Params.Validate(); err != nil {
		s.writeError(w, "", errors.InvalidParameter("invalid formula parameters", err))
		return
	}

	s.mu.Lock()
	s.defaults = req.Params.Resolve(s.defaults)
	updated := s.defaults
	s.mu.Unlock()

	logging.Info("formula defaults updated", zap.Any("changes", req.Params))

	s.writeJSON(w, &ParamsResponse{
		Message:   "formula parameters updated",
		Params:    updated.AsMap(),
		Timestamp: time.Now(),
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps a domain error onto an HTTP status
func (s *Server) writeError(w http.ResponseWriter, requestID string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsInput(err):
		status = http.StatusBadRequest
	case errors.IsType(err, errors.TypeRateUnavailable), errors.IsType(err, errors.TypeNetwork):
		status = http.StatusBadGateway
	}

	message := err.Error()
	if e, ok := err.(*errors.Error); ok {
		message = e.Message
		if e.Cause != nil {
			message += ": " + e.Cause.Error()
		}
	}

	s.writeJSON(w, &ErrorResponse{Error: ErrorBody{
		Code:      string(errors.TypeOf(err)),
		Message:   message,
		RequestID: requestID,
	}}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Helper functions

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.TypeInput, "invalid JSON body", err)
	}
	return nil
}

func computeInputHash(req *CalculateRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func generateRequestID() string {
	return uuid.New().String()
}
