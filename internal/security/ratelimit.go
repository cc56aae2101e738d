package security

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter caps requests per client IP over a fixed window. Buckets are
// created on first sight, refilled inline once their window elapses, and
// swept lazily; there is no background goroutine to manage.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	remaining   int
	windowStart time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window per IP
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow reports whether a request from ip fits in its current window
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	b, ok := rl.buckets[ip]
	if !ok || now.Sub(b.windowStart) >= rl.window {
		b = &bucket{remaining: rl.limit, windowStart: now}
		rl.buckets[ip] = b
	}

	if b.remaining == 0 {
		return false
	}
	b.remaining--
	return true
}

// sweep drops buckets idle for two full windows, at most once per window
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now
	for ip, b := range rl.buckets {
		if now.Sub(b.windowStart) >= 2*rl.window {
			delete(rl.buckets, ip)
		}
	}
}

// GetClientIP extracts the client IP from the request. X-Forwarded-For may
// carry a proxy chain; the first entry is the originating client.
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if i := strings.Index(forwarded, ","); i >= 0 {
			return strings.TrimSpace(forwarded[:i])
		}
		return strings.TrimSpace(forwarded)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
