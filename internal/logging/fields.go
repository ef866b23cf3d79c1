// Package logging provides standard field definitions for structured logging
package logging

// Standard log field names and values
const (
	FieldRequestID    = "req_id"
	FieldHTTPMethod   = "method"
	FieldHTTPPath     = "path"
	FieldHTTPStatus   = "status"
	FieldLatencyMs    = "latency_ms"
	FieldBytes        = "bytes"
	FieldService      = "service"
	FieldVersion      = "version"
	FieldError        = "error"
	FieldResponseTime = "response_time_ms"
	FieldCheckName    = "check_name"
	FieldCheckStatus  = "check_status"
	FieldOperation    = "operation"
	FieldDurationMs   = "duration_ms"
	FieldConnectMs    = "connect_ms"
	FieldTable        = "table"
	FieldRowCount     = "row_count"

	// Log levels
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"

	// Health check statuses
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)
