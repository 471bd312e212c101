package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-champ-stats/internal/interfaces"
)

// Server exposes the stats service over a local HTTP API
type Server struct {
	stats  interfaces.StatsProvider
	logger *zap.Logger
	server *http.Server
}

// NewServer creates the stats HTTP server
func NewServer(stats interfaces.StatsProvider, logger *zap.Logger) *Server {
	return &Server{
		stats:  stats,
		logger: logger,
	}
}

// Start starts the HTTP server on the given TCP address and blocks until it
// shuts down.
func (s *Server) Start(addr string) error {
	router := s.createRouter()

	s.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting stats HTTP server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping stats HTTP server")
	return s.server.Shutdown(ctx)
}

// createRouter creates and configures the HTTP router
func (s *Server) createRouter() *mux.Router {
	router := mux.NewRouter()

	// Stats endpoints
	router.HandleFunc("/api/counters/{alias}", s.handleCounters).Methods("GET")
	router.HandleFunc("/api/counterpicks/{alias}", s.handleCounterpicks).Methods("GET")
	router.HandleFunc("/api/build/{alias}", s.handleBuild).Methods("GET")
	router.HandleFunc("/api/runes/{alias}", s.handleRunes).Methods("GET")
	router.HandleFunc("/api/skills/{alias}", s.handleSkills).Methods("GET")
	router.HandleFunc("/api/bestpick", s.handleBestPick).Methods("GET")

	// Cache reset, fired when a new match starts
	router.HandleFunc("/api/cache/reset", s.handleCacheReset).Methods("POST")

	// Health check
	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return router
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}

// writeResponse writes JSON response
func (s *Server) writeResponse(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeErrorResponse writes error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := StatsResponse{
		Success: false,
		Error:   message,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("Failed to write error response", zap.Error(err))
	}
}
