// Package config provides configuration types and structures for the goUserDirectory service.
package config

// Config represents the application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Cache       CacheConfig
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
	Debug        bool   // Enable debug mode
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string // Database host address
	Port     int    // Database port number
	User     string // Database username
	Password string // Database password
	Database string // Database name
	SSLMode  string // SSL mode (disable, require, etc.)
	MaxConns int    // Maximum database connections
	MinConns int    // Minimum database connections
}

// CacheConfig holds response cache configuration. The cache is file-backed
// and shared by every in-flight request of the process.
type CacheConfig struct {
	Dir        string // Directory holding one JSON file per cached response
	TTLSeconds int    // Entry lifetime; stale entries are treated as misses
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // Log level (debug, info, warn, error)
	Format string // Log format (json, text)
}

// HealthCheckConfig holds health check configuration
type HealthCheckConfig struct {
	Enabled bool // Enable health check endpoint
}

// ApplicationConfig holds application-specific configuration
type ApplicationConfig struct {
	Environment       string // Environment (development, staging, production)
	ShutdownTimeout   int    // Shutdown timeout in seconds
	RateLimitRequests int    // Rate limit requests per window
	RateLimitWindow   string // Rate limit time window
}
