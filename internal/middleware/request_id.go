package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

// RequestIDKey is the context key type for request ID
type RequestIDKey string

const (
	// RequestIDContextKey is the context key for storing request ID
	RequestIDContextKey RequestIDKey = "req_id"
	// RequestIDHeader is the HTTP header name for request ID
	RequestIDHeader = "X-Request-ID"
)

// GenerateRequestID generates a unique request ID using crypto/rand
func GenerateRequestID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "req_fallback"
	}
	return hex.EncodeToString(b)
}

// GetRequestID extracts request ID from context
func GetRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(RequestIDContextKey).(string); ok {
		return reqID
	}
	return ""
}

// SetRequestID adds request ID to context
func SetRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, RequestIDContextKey, reqID)
}

// RequestIDMiddleware ensures request ID is present and adds it to context
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = GenerateRequestID()
		}

		// Echo the request ID for client correlation
		w.Header().Set(RequestIDHeader, reqID)

		ctx := SetRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
