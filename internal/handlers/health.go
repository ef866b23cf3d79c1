package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/chybatronik/goAccountFinder/internal/logging"
)

// HealthCheckResponse represents the structured health check response format
type HealthCheckResponse struct {
	Status        string                 `json:"status"`         // healthy|unhealthy
	Timestamp     int64                  `json:"timestamp"`      // Unix timestamp
	Service       string                 `json:"service"`        // goAccountFinder
	Version       string                 `json:"version"`        // 1.0.0
	UptimeSeconds int64                  `json:"uptime_seconds"` // Uptime in seconds
	Checks        map[string]HealthCheck `json:"checks"`
}

// HealthCheck represents individual health check result with timing
type HealthCheck struct {
	Status         string `json:"status"`           // healthy|unhealthy
	ResponseTimeMs int64  `json:"response_time_ms"` // Response time in ms
	Error          string `json:"error,omitempty"`  // Only present if unhealthy
}

// HealthChecker interface for health check components
type HealthChecker interface {
	CheckHealth(ctx context.Context) HealthCheck
	Name() string
}

// HealthHandler provides health check functionality with performance metrics
type HealthHandler struct {
	checkers  []HealthChecker
	startTime time.Time
	version   string
	service   string
	mu        sync.RWMutex
	logger    *logging.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service, version string, logger *logging.Logger) *HealthHandler {
	return &HealthHandler{
		checkers:  make([]HealthChecker, 0),
		startTime: time.Now(),
		version:   version,
		service:   service,
		logger:    logger,
	}
}

// AddChecker adds a health checker to the handler
func (h *HealthHandler) AddChecker(checker HealthChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers = append(h.checkers, checker)
}

// ServeHTTP handles health check requests with proper format and performance tracking
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	w.Header().Set("Content-Type", "application/json")

	// Simple ping response for quick health checks
	if r.URL.Query().Get("ping") == "true" {
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
		Checks:        make(map[string]HealthCheck),
	}

	allHealthy := true
	h.mu.RLock()
	checkers := make([]HealthChecker, len(h.checkers))
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

	status := http.StatusOK
	response.Status = logging.StatusHealthy
	if !allHealthy {
		status = http.StatusServiceUnavailable
		response.Status = logging.StatusUnhealthy
	}

	h.logger.HealthCheck("health check completed",
		logging.FieldCheckStatus, response.Status,
		logging.FieldResponseTime, time.Since(start).Milliseconds(),
	)

	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode health check response", logging.FieldError, err)
	}
}
