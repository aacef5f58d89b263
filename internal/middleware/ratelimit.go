package middleware

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter implements IP-based rate limiting
type RateLimiter struct {
	visitors map[string]*Visitor
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

// Visitor tracks rate limiting state for a single IP
type Visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// SecurityRateLimit creates a rate limiting middleware.
// requestsPerSecond: sustained rate per IP; burst: maximum burst size.
func SecurityRateLimit(requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	limiter := &RateLimiter{
		visitors: make(map[string]*Visitor),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}

	go limiter.cleanupVisitors()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r)
			if ip == "" {
				// If we can't extract IP, allow request but log
				log.Printf("Rate limiting: unable to extract IP from %s", r.RemoteAddr)
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(ip) {
				log.Printf("Rate limit exceeded for IP: %s", ip)
				writeRateLimitErrorResponse(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Allow checks if an IP is allowed to make a request
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// If rate is 0, allow all requests
	if rl.rate == 0 {
		return true
	}

	visitor, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &Visitor{limiter, time.Now()}
		return limiter.Allow()
	}

	visitor.lastSeen = time.Now()
	return visitor.limiter.Allow()
}

// cleanupVisitors removes old visitors to prevent memory leaks
func (rl *RateLimiter) cleanupVisitors() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for ip, visitor := range rl.visitors {
			// Remove visitors not seen in the last 10 minutes
			if time.Since(visitor.lastSeen) > 10*time.Minute {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// extractIP extracts the real client IP from request
func extractIP(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs, take the first one
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		ip := strings.TrimSpace(ips[0])
		if isValidIP(ip) {
			return ip
		}
	}

	xri := r.Header.Get("X-Real-IP")
	if xri != "" && isValidIP(xri) {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if isValidIP(r.RemoteAddr) {
			return r.RemoteAddr
		}
		return ""
	}

	if isValidIP(host) {
		return host
	}

	return ""
}

// isValidIP checks if the string is a valid IP address
func isValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// writeRateLimitErrorResponse writes a rate limit error response
func writeRateLimitErrorResponse(w http.ResponseWriter) {
	response := map[string]string{
		"error": "Too many requests",
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "60")
	w.WriteHeader(http.StatusTooManyRequests)

	json.NewEncoder(w).Encode(response)
}
