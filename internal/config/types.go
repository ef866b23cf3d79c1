// Package config provides configuration types and structures for the goAccountFinder service.
package config

// Config represents the application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Logging     LoggingConfig
	HealthCheck HealthCheckConfig
	Application ApplicationConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int    // Server port number
	Host         string // Server host address
	ReadTimeout  int    // Read timeout in seconds
	WriteTimeout int    // Write timeout in seconds
	IdleTimeout  int    // Idle timeout in seconds
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host           string // Database host address
	Port           int    // Database port number
	User           string // Database username
	Password       string // Database password
	Database       string // Database name
	SSLMode        string // SSL mode (disable, require, etc.)
	ConnectTimeout int    // Connect timeout in seconds
	QueryTimeout   int    // Per-lookup timeout in seconds
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string // Log level (debug, info, warn, error)
	Format  string // Log format (json, text)
	FileDir string // Directory for log files, empty disables file output
	SeqURL  string // Seq ingestion URL, empty disables Seq output
}

// HealthCheckConfig holds health check configuration
type HealthCheckConfig struct {
	Enabled bool // Enable database check on /health
}

// ApplicationConfig holds application-specific configuration
type ApplicationConfig struct {
	Environment       string // Environment (development, staging, production, test)
	ShutdownTimeout   int    // Shutdown timeout in seconds
	RateLimitRequests int    // Rate limit requests per window
	RateLimitWindow   string // Rate limit time window
	RateLimitBurst    int    // Rate limit burst size
}
