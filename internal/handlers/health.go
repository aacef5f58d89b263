package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/chybatronik/goUserDirectory/internal/logging"
	"github.com/chybatronik/goUserDirectory/internal/types"
)

// HealthCheckResponse represents the structured health check response format
type HealthCheckResponse struct {
	Status        string                       `json:"status"` // healthy|unhealthy
	Timestamp     int64                        `json:"timestamp"`
	Service       string                       `json:"service"`
	Version       string                       `json:"version"`
	UptimeSeconds int64                        `json:"uptime_seconds"`
	Checks        map[string]types.HealthCheck `json:"checks"`
}

// HealthHandler provides health check functionality
type HealthHandler struct {
	checkers  []types.HealthChecker
	startTime time.Time
	version   string
	service   string
	mu        sync.RWMutex
	logger    *logging.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service, version string, logger *logging.Logger) *HealthHandler {
	return &HealthHandler{
		checkers:  make([]types.HealthChecker, 0),
		startTime: time.Now(),
		version:   version,
		service:   service,
		logger:    logger,
	}
}

// AddChecker adds a health checker to the handler
func (h *HealthHandler) AddChecker(checker types.HealthChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers = append(h.checkers, checker)
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	// Simple ping response for quick health checks
	if r.URL.Query().Get("ping") == "true" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
			"ping":   "pong",
		})
		return
	}

	response := HealthCheckResponse{
		Timestamp:     time.Now().Unix(),
		Service:       h.service,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Checks:        make(map[string]types.HealthCheck),
	}

	allHealthy := true
	h.mu.RLock()
	checkers := make([]types.HealthChecker, len(h.checkers))
	copy(checkers, h.checkers)
	h.mu.RUnlock()

	for _, checker := range checkers {
		healthCheck := checker.CheckHealth(ctx)
		response.Checks[checker.Name()] = healthCheck

		if healthCheck.Status != logging.StatusHealthy {
			allHealthy = false
			h.logger.HealthCheck("health check failed",
				logging.FieldCheckName, checker.Name(),
				logging.FieldCheckStatus, healthCheck.Status,
				logging.FieldError, healthCheck.Error,
			)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if allHealthy {
		response.Status = logging.StatusHealthy
		w.WriteHeader(http.StatusOK)
		h.logger.HealthCheck("health check completed successfully",
			logging.FieldResponseTime, time.Since(start).Milliseconds(),
		)
	} else {
		response.Status = logging.StatusUnhealthy
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode health response", logging.FieldError, err)
	}
}
