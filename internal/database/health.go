// Package database provides the account lookup and its PostgreSQL plumbing.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/chybatronik/goAccountFinder/internal/handlers"
	"github.com/chybatronik/goAccountFinder/internal/logging"
)

// HealthChecker implements database health checking with timing
type HealthChecker struct {
	connector Connector
	logger    *logging.Logger
	timeout   time.Duration
}

// NewHealthChecker creates a new database health checker
func NewHealthChecker(connector Connector, logger *logging.Logger) *HealthChecker {
	return &HealthChecker{connector: connector, logger: logger, timeout: 5 * time.Second}
}

// Name implements the handlers.HealthChecker interface
func (h *HealthChecker) Name() string {
	return "database"
}

// CheckHealth opens a dedicated connection, pings it and closes it
func (h *HealthChecker) CheckHealth(ctx context.Context) handlers.HealthCheck {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	err := ValidateConnection(ctx, h.connector)
	responseTime := time.Since(start).Milliseconds()

	healthCheck := handlers.HealthCheck{
		Status:         logging.StatusHealthy,
		ResponseTimeMs: responseTime,
	}

	if err != nil {
		healthCheck.Status = logging.StatusUnhealthy
		healthCheck.Error = fmt.Sprintf("database connection failed: %v", err)
		if h.logger != nil {
			h.logger.DatabaseError("database health check failed", err)
		}
		return healthCheck
	}

	if h.logger != nil {
		h.logger.Database("database health check successful",
			logging.FieldResponseTime, responseTime,
		)
	}
	return healthCheck
}
