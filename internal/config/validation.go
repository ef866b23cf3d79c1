package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Validate validates the configuration and returns any errors
func Validate(config *Config) error {
	var validationErrors []string

	if err := validateDatabaseConfig(&config.Database); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	if err := validateServerConfig(&config.Server); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	if err := validateLoggingConfig(&config.Logging); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	if err := validateApplicationConfig(&config.Application); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(validationErrors, "; "))
	}

	return nil
}

// validateDatabaseConfig validates database configuration
func validateDatabaseConfig(db *DatabaseConfig) error {
	if db.Host == "" {
		return errors.New("database host is required")
	}

	if db.Port <= 0 || db.Port > 65535 {
		return errors.New("database port must be between 1 and 65535")
	}

	if db.User == "" {
		return errors.New("database user is required")
	}

	if db.Database == "" {
		return errors.New("database name is required")
	}

	validSSLModes := []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}
	if !slices.Contains(validSSLModes, db.SSLMode) {
		return fmt.Errorf("invalid SSL mode: %s, must be one of: %s", db.SSLMode, strings.Join(validSSLModes, ", "))
	}

	if db.ConnectTimeout <= 0 {
		return errors.New("database connect timeout must be positive")
	}

	if db.QueryTimeout <= 0 {
		return errors.New("database query timeout must be positive")
	}

	return nil
}

// validateServerConfig validates server configuration
func validateServerConfig(server *ServerConfig) error {
	if server.Port <= 0 || server.Port > 65535 {
		return errors.New("server port must be between 1 and 65535")
	}

	if server.ReadTimeout <= 0 {
		return errors.New("server read timeout must be positive")
	}

	if server.WriteTimeout <= 0 {
		return errors.New("server write timeout must be positive")
	}

	if server.IdleTimeout <= 0 {
		return errors.New("server idle timeout must be positive")
	}

	return nil
}

// validateLoggingConfig validates logging configuration
func validateLoggingConfig(logging *LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, logging.Level) {
		return fmt.Errorf("invalid log level: %s, must be one of: %s", logging.Level, strings.Join(validLevels, ", "))
	}

	validFormats := []string{"json", "text"}
	if !slices.Contains(validFormats, logging.Format) {
		return fmt.Errorf("invalid log format: %s, must be one of: %s", logging.Format, strings.Join(validFormats, ", "))
	}

	if logging.SeqURL != "" && !strings.HasPrefix(logging.SeqURL, "http://") && !strings.HasPrefix(logging.SeqURL, "https://") {
		return fmt.Errorf("invalid seq url: %s, must start with http:// or https://", logging.SeqURL)
	}

	return nil
}

// validateApplicationConfig validates application configuration
func validateApplicationConfig(app *ApplicationConfig) error {
	validEnvironments := []string{"development", "staging", "production", "test"}
	if !slices.Contains(validEnvironments, app.Environment) {
		return fmt.Errorf("invalid environment: %s, must be one of: %s", app.Environment, strings.Join(validEnvironments, ", "))
	}

	if app.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}

	if app.RateLimitRequests <= 0 {
		return errors.New("rate limit requests must be positive")
	}

	if app.RateLimitBurst <= 0 {
		return errors.New("rate limit burst must be positive")
	}

	if window, err := time.ParseDuration(app.RateLimitWindow); err != nil || window <= 0 {
		return fmt.Errorf("invalid rate limit window: %q", app.RateLimitWindow)
	}

	return nil
}

// QueryTimeoutDuration returns the per-lookup timeout
func (db DatabaseConfig) QueryTimeoutDuration() time.Duration {
	return time.Duration(db.QueryTimeout) * time.Second
}

// RequestsPerSecond converts the configured window into a per-second rate.
// Callers must have run Validate first.
func (app ApplicationConfig) RequestsPerSecond() float64 {
	window, err := time.ParseDuration(app.RateLimitWindow)
	if err != nil || window <= 0 {
		return 0
	}
	return float64(app.RateLimitRequests) / window.Seconds()
}
