// Package handlers provides HTTP request handlers for the goUserDirectory service.
package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/chybatronik/goUserDirectory/internal/logging"
	"github.com/chybatronik/goUserDirectory/internal/middleware"
)

// ErrorResponse is the unified error body. Message carries a generic
// detail on 5xx responses and is omitted otherwise.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, logger *logging.Logger, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response",
			logging.FieldError, err,
			"status_code", statusCode,
		)
	}
}

// writeError writes the unified error body
func writeError(w http.ResponseWriter, logger *logging.Logger, statusCode int, errMsg, detail string) {
	writeJSON(w, logger, statusCode, ErrorResponse{Error: errMsg, Message: detail})
}

// writeMethodNotAllowed writes a 405 with the Allow header set
func writeMethodNotAllowed(w http.ResponseWriter, logger *logging.Logger, allowed string) {
	w.Header().Set("Allow", allowed)
	writeError(w, logger, http.StatusMethodNotAllowed, "Method not allowed. Use "+allowed+".", "")
}

// loadTimeMs returns elapsed wall time in milliseconds rounded to two
// decimals, matching the loadTime contract of the read endpoints.
func loadTimeMs(start time.Time) float64 {
	ms := float64(time.Since(start).Microseconds()) / 1000.0
	return math.Round(ms*100) / 100
}

// requestID extracts the request ID for per-request logging.
func requestID(r *http.Request) string {
	if reqID := middleware.GetRequestID(r.Context()); reqID != "" {
		return reqID
	}
	return "unknown"
}
