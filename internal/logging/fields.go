package logging

// Standard log field names and values for structured logging
const (
	FieldTimestamp    = "ts"
	FieldLevel        = "level"
	FieldMessage      = "msg"
	FieldRequestID    = "req_id"
	FieldHTTPMethod   = "method"
	FieldHTTPPath     = "path"
	FieldHTTPStatus   = "status"
	FieldLatencyMs    = "latency_ms"
	FieldService      = "service"
	FieldVersion      = "version"
	FieldUptimeSec    = "uptime_seconds"
	FieldError        = "error"
	FieldResponseTime = "response_time_ms"
	FieldCheckName    = "check_name"
	FieldCheckStatus  = "check_status"
	FieldCacheKey     = "cache_key"
	FieldCacheHit     = "cache_hit"

	// Log levels
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"

	// Health check statuses
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusOK        = "ok"
	StatusFailed    = "failed"
)
