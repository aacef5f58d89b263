// Package logging provides structured logging functionality using log/slog
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with additional application-specific functionality
type Logger struct {
	*slog.Logger
	service string
	version string
}

// NewStructuredLogger creates a new structured logger. Format selects the
// slog handler: "text" for development consoles, anything else gets JSON.
func NewStructuredLogger(level, format string, service, version string) *Logger {
	return newStructuredLogger(os.Stdout, level, format, service, version)
}

func newStructuredLogger(w io.Writer, level, format string, service, version string) *Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &Logger{
		Logger:  slog.New(handler),
		service: service,
		version: version,
	}
}

// WithRequestID adds request ID to the logger
func (l *Logger) WithRequestID(reqID string) *Logger {
	return &Logger{
		Logger:  l.Logger.With(slog.String(FieldRequestID, reqID)),
		service: l.service,
		version: l.version,
	}
}

// WithHTTPRequest adds HTTP request context to the logger
func (l *Logger) WithHTTPRequest(method, path string, statusCode int, latencyMs int64) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			slog.String(FieldHTTPMethod, method),
			slog.String(FieldHTTPPath, path),
			slog.Int(FieldHTTPStatus, statusCode),
			slog.Int64(FieldLatencyMs, latencyMs),
		),
		service: l.service,
		version: l.version,
	}
}

// WithError adds error context to the logger
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return &Logger{
		Logger:  l.Logger.With(slog.String(FieldError, err.Error())),
		service: l.service,
		version: l.version,
	}
}

// WithServiceContext adds service context to the logger
func (l *Logger) WithServiceContext() *Logger {
	return &Logger{
		Logger: l.Logger.With(
			slog.String(FieldService, l.service),
			slog.String(FieldVersion, l.version),
		),
		service: l.service,
		version: l.version,
	}
}

// Startup logs application startup information
func (l *Logger) Startup(msg string, args ...any) {
	l.WithServiceContext().Info(msg, args...)
}

// Request logs HTTP request completion
func (l *Logger) Request(reqID, method, path string, statusCode int, latencyMs int64) {
	l.WithRequestID(reqID).
		WithHTTPRequest(method, path, statusCode, latencyMs).
		Info("HTTP request completed")
}

// Database logs database-related operations
func (l *Logger) Database(msg string, args ...any) {
	l.Logger.Info("database: "+msg, args...)
}

// DatabaseError logs database errors
func (l *Logger) DatabaseError(msg string, err error) {
	l.WithError(err).Error("database: " + msg)
}

// Cache logs response-cache operations
func (l *Logger) Cache(msg string, args ...any) {
	l.Logger.Debug("cache: "+msg, args...)
}

// HealthCheck logs health check operations
func (l *Logger) HealthCheck(msg string, args ...any) {
	l.Logger.Info("healthcheck: "+msg, args...)
}
