package security

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterExhaustsAndRefills(t *testing.T) {
	current := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(3, time.Minute)
	limiter.now = func() time.Time { return current }

	for i := 0; i < 3; i++ {
		if !limiter.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("1.2.3.4") {
		t.Error("request over the limit should be denied")
	}

	// other clients have independent buckets
	if !limiter.Allow("5.6.7.8") {
		t.Error("a different IP should not share the exhausted bucket")
	}

	// a full window later the bucket refills
	current = current.Add(time.Minute)
	if !limiter.Allow("1.2.3.4") {
		t.Error("request after the window elapsed should be allowed")
	}
}

func TestRateLimiterSweepsStaleBuckets(t *testing.T) {
	current := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(3, time.Minute)
	limiter.now = func() time.Time { return current }

	limiter.Allow("1.2.3.4")
	limiter.Allow("5.6.7.8")

	current = current.Add(3 * time.Minute)
	limiter.Allow("9.9.9.9")

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if _, ok := limiter.buckets["1.2.3.4"]; ok {
		t.Error("stale bucket should have been swept")
	}
	if _, ok := limiter.buckets["9.9.9.9"]; !ok {
		t.Error("active bucket should survive the sweep")
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name      string
		forwarded string
		realIP    string
		remote    string
		want      string
	}{
		{"remote addr only", "", "", "10.0.0.1:5000", "10.0.0.1:5000"},
		{"real ip header", "", "172.16.0.9", "10.0.0.1:5000", "172.16.0.9"},
		{"single forwarded", "203.0.113.7", "", "10.0.0.1:5000", "203.0.113.7"},
		{"forwarded chain keeps first", "203.0.113.7, 70.41.3.18, 150.172.238.178", "", "10.0.0.1:5000", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := GetClientIP(r); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
