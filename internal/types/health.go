package types

import "context"

// HealthCheck is the result of a single component probe.
type HealthCheck struct {
	Status         string `json:"status"`
	ResponseTimeMs int64  `json:"response_time_ms"`
	Error          string `json:"error,omitempty"` // Only present if unhealthy
}

// HealthChecker is implemented by components that can report their health.
type HealthChecker interface {
	CheckHealth(ctx context.Context) HealthCheck
	Name() string
}

// HealthCheckerDatabase extends HealthChecker with a raw connectivity probe.
type HealthCheckerDatabase interface {
	HealthChecker
	Ping(ctx context.Context) error
}
