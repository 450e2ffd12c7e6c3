package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/blacklandcg/scoutiq/internal/api/handlers"
	"github.com/blacklandcg/scoutiq/pkg/logger"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	analysisHandler *handlers.AnalysisHandler,
	oracleHandler *handlers.OracleHandler,
	statusHandler *handlers.StatusHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")
	r.HandleFunc("/status", statusHandler.GetStatus).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Query + analysis endpoints
	api.HandleFunc("/query", analysisHandler.Query).Methods("POST")
	api.HandleFunc("/analyze", analysisHandler.Analyze).Methods("POST")
	api.HandleFunc("/analyze/batch", analysisHandler.AnalyzeBatch).Methods("POST")
	api.HandleFunc("/analyze/stream", analysisHandler.Stream).Methods("GET")
	api.HandleFunc("/upload-properties", analysisHandler.Upload).Methods("POST")

	// Oracle endpoints
	api.HandleFunc("/ai/batch", oracleHandler.Batch).Methods("POST")
	api.HandleFunc("/ai-logs", oracleHandler.Logs).Methods("GET")
	api.HandleFunc("/ai-statistics", oracleHandler.Statistics).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "scoutiq-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
