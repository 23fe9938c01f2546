package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"landed-cost/internal/errors"
	"landed-cost/internal/logging"
)

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withMiddleware wraps the mux in recovery, access logging and CORS
func (s *Server) withMiddleware(next http.Handler) http.Handler {
	handler := corsMiddleware(next)
	handler = loggingMiddleware(handler)
	handler = s.recoveryMiddleware(handler)
	return handler
}

// corsMiddleware allows browser clients on any origin, as the pricing UI
// is served separately
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logging.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.Error("panic serving request",
					zap.String("path", r.URL.Path), zap.Any("panic", rec), zap.Stack("stack"))
				s.writeError(w, "", errors.New(errors.TypeInternal, "internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
