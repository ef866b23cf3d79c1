// Package config provides configuration loading and environment management
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s='%s': %s", e.Field, e.Value, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	msg := "configuration validation errors:\n"
	for _, err := range ve {
		msg += fmt.Sprintf("  - %s\n", err.Error())
	}
	return msg
}

// integerVariables must parse as integers when set
var integerVariables = []string{
	"DB_CONNECT_TIMEOUT",
	"DB_QUERY_TIMEOUT",
	"SERVER_READ_TIMEOUT",
	"SERVER_WRITE_TIMEOUT",
	"SERVER_IDLE_TIMEOUT",
	"SHUTDOWN_TIMEOUT",
	"RATE_LIMIT_REQUESTS",
	"RATE_LIMIT_BURST",
}

// ValidatePort validates that a port number is in valid range
func ValidatePort(envVar string) error {
	portStr := os.Getenv(envVar)
	if portStr == "" {
		return nil // skip validation if not set
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return ValidationError{
			Field:   envVar,
			Value:   portStr,
			Message: "must be a valid integer",
		}
	}

	if port < 1 || port > 65535 {
		return ValidationError{
			Field:   envVar,
			Value:   portStr,
			Message: "must be between 1 and 65535",
		}
	}

	return nil
}

// ValidateInteger validates that an environment variable, when set, is an integer
func ValidateInteger(envVar string) error {
	value := os.Getenv(envVar)
	if value == "" {
		return nil
	}
	if _, err := strconv.Atoi(value); err != nil {
		return ValidationError{
			Field:   envVar,
			Value:   value,
			Message: "must be a valid integer",
		}
	}
	return nil
}

// ValidateLogLevel validates log level value
func ValidateLogLevel() error {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return nil
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[level] {
		return ValidationError{
			Field:   "LOG_LEVEL",
			Value:   level,
			Message: "must be one of: debug, info, warn, error",
		}
	}

	return nil
}

// ValidateRateLimitWindow validates the rate limit window duration
func ValidateRateLimitWindow() error {
	window := os.Getenv("RATE_LIMIT_WINDOW")
	if window == "" {
		return nil
	}
	if d, err := time.ParseDuration(window); err != nil || d <= 0 {
		return ValidationError{
			Field:   "RATE_LIMIT_WINDOW",
			Value:   window,
			Message: "must be a positive duration such as 30s or 1m",
		}
	}
	return nil
}

// ValidateAll performs environment validation before the config is built
func ValidateAll() error {
	var errors ValidationErrors

	collect := func(err error) {
		if validationErr, ok := err.(ValidationError); ok {
			errors = append(errors, validationErr)
		}
	}

	for _, portVar := range []string{"PGPORT", "APP_PORT"} {
		collect(ValidatePort(portVar))
	}
	for _, intVar := range integerVariables {
		collect(ValidateInteger(intVar))
	}
	collect(ValidateLogLevel())
	collect(ValidateRateLimitWindow())

	if len(errors) > 0 {
		return errors
	}

	return nil
}

// Load loads and validates configuration from environment variables
func Load() (*Config, error) {
	// 1. Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// 2. Pre-load environment variable validation
	if err := ValidateAll(); err != nil {
		return nil, fmt.Errorf("environment validation failed: %w", err)
	}

	// 3. Load configuration with defaults
	config := &Config{
		Server:   loadServerConfig(),
		Database: LoadDatabaseConfig(),
		Logging: LoggingConfig{
			Level:   getEnv("LOG_LEVEL", "info"),
			Format:  getEnv("LOG_FORMAT", "json"),
			FileDir: getEnv("LOG_FILE_DIR", ""),
			SeqURL:  getEnv("LOG_SEQ_URL", ""),
		},
		HealthCheck: HealthCheckConfig{
			Enabled: getEnvBool("HEALTH_CHECK_ENABLED", true),
		},
		Application: loadApplicationConfig(),
	}

	// 4. Post-load configuration validation
	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:         getEnvInt("APP_PORT", 8080),
		Host:         getEnv("APP_HOST", "0.0.0.0"),
		ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 30),
		WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 30),
		IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 120),
	}
}

// LoadDatabaseConfig reads the libpq-style PG* variables. Unset variables fall
// back to the local test database.
func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:           getEnv("PGHOST", "localhost"),
		Port:           getEnvInt("PGPORT", 5432),
		User:           getEnv("PGUSER", "testuser"),
		Password:       getEnv("PGPASSWORD", "testpass"),
		Database:       getEnv("PGDATABASE", "testdb"),
		SSLMode:        getEnv("PGSSLMODE", "disable"),
		ConnectTimeout: getEnvInt("DB_CONNECT_TIMEOUT", 5),
		QueryTimeout:   getEnvInt("DB_QUERY_TIMEOUT", 5),
	}
}

func loadApplicationConfig() ApplicationConfig {
	return ApplicationConfig{
		Environment:       getEnv("ENVIRONMENT", "development"),
		ShutdownTimeout:   getEnvInt("SHUTDOWN_TIMEOUT", 30),
		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnv("RATE_LIMIT_WINDOW", "1m"),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 20),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets environment variable as integer with default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets environment variable as boolean with default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
