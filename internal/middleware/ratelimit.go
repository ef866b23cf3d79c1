package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/chybatronik/goAccountFinder/internal/errors"
	"github.com/chybatronik/goAccountFinder/internal/logging"
	"golang.org/x/time/rate"
)

// RateLimiter implements IP-based rate limiting for security
type RateLimiter struct {
	visitors map[string]*Visitor
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int

	// Set when no cleanup goroutine runs; Allow prunes idle visitors itself
	pruneInline bool
	lastPrune   time.Time
}

const (
	visitorCleanupInterval = 5 * time.Minute
	visitorMaxIdle         = 10 * time.Minute
)

// Visitor tracks rate limiting state for a single IP
type Visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a per-IP limiter. A zero rate disables limiting.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*Visitor),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// SecurityRateLimit limits each client IP to requestsPerSecond with the given
// burst and answers 429 beyond it. Idle visitors are dropped by a goroutine
// that stops when done is closed; with a nil done no goroutine is started and
// requests prune idle visitors instead. A zero rate tracks nothing.
func SecurityRateLimit(logger *logging.Logger, requestsPerSecond float64, burst int, done <-chan struct{}) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(requestsPerSecond, burst)

	switch {
	case requestsPerSecond <= 0:
		// Allow tracks no visitors at a zero rate
	case done == nil:
		limiter.pruneInline = true
		limiter.lastPrune = time.Now()
	default:
		go limiter.cleanupVisitors(done, visitorCleanupInterval, visitorMaxIdle)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r)
			if ip == "" {
				// If we can't extract IP, allow request but log
				logger.Warn("Rate limiting: unable to extract IP", "remote_addr", r.RemoteAddr)
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(ip) {
				logger.WithRequestID(GetRequestID(r.Context())).Warn("Rate limit exceeded", "ip", ip)
				errors.WriteRateLimitError(w, r, nil)
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

	if rl.pruneInline && time.Since(rl.lastPrune) > visitorCleanupInterval {
		rl.removeIdleLocked(visitorMaxIdle)
		rl.lastPrune = time.Now()
	}

	visitor, exists := rl.visitors[ip]
	if !exists {
		// Create new limiter for this IP
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &Visitor{limiter, time.Now()}
		return limiter.Allow()
	}

	// Update last seen time
	visitor.lastSeen = time.Now()
	return visitor.limiter.Allow()
}

// cleanupVisitors drops visitors idle for longer than maxIdle every interval
func (rl *RateLimiter) cleanupVisitors(done <-chan struct{}, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			rl.removeIdle(maxIdle)
		}
	}
}

func (rl *RateLimiter) removeIdle(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.removeIdleLocked(maxIdle)
}

func (rl *RateLimiter) removeIdleLocked(maxIdle time.Duration) {
	for ip, visitor := range rl.visitors {
		if time.Since(visitor.lastSeen) > maxIdle {
			delete(rl.visitors, ip)
		}
	}
}

// Visitors returns the number of tracked IPs
func (rl *RateLimiter) Visitors() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.visitors)
}

// extractIP extracts the real client IP from request
func extractIP(r *http.Request) string {
	// Try X-Forwarded-For header first (for proxies/load balancers)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		ips := strings.Split(xff, ",")
		ip := strings.TrimSpace(ips[0])
		if isValidIP(ip) {
			return ip
		}
	}

	// Try X-Real-IP header
	xri := r.Header.Get("X-Real-IP")
	if xri != "" && isValidIP(xri) {
		return xri
	}

	// Fall back to RemoteAddr
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If SplitHostPort fails, try using RemoteAddr directly
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
