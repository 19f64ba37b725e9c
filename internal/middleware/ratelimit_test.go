package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type manualClock struct{ t time.Time }

func (c *manualClock) now() time.Time { return c.t }

func newTestLimiter(limit int, period time.Duration) (*RateLimiter, *manualClock) {
	clock := &manualClock{t: time.Date(2026, 2, 4, 9, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, period)
	rl.now = clock.now
	return rl, clock
}

func TestRateLimiterAllow(t *testing.T) {
	rl, _ := newTestLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		if ok, _ := rl.Allow("key"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, retry := rl.Allow("key")
	if ok {
		t.Error("6th request should be denied")
	}
	if retry != time.Minute {
		t.Errorf("retry = %v, want %v", retry, time.Minute)
	}

	if ok, _ := rl.Allow("other"); !ok {
		t.Error("keys should be limited independently")
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl, clock := newTestLimiter(3, 10*time.Second)

	for i := 0; i < 3; i++ {
		rl.Allow("key")
	}
	if ok, _ := rl.Allow("key"); ok {
		t.Error("should be blocked within window")
	}

	clock.t = clock.t.Add(10 * time.Second)

	if ok, _ := rl.Allow("key"); !ok {
		t.Error("should be allowed after window expires")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl, clock := newTestLimiter(5, 10*time.Second)

	rl.Allow("expired")
	clock.t = clock.t.Add(15 * time.Second)
	rl.Allow("active")

	rl.Cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.windows["expired"]; ok {
		t.Error("expired entry should have been cleaned up")
	}
	if _, ok := rl.windows["active"]; !ok {
		t.Error("active entry should still exist")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl, _ := newTestLimiter(2, time.Minute)
	keyFunc := func(r *http.Request) string { return "test" }

	handler := RateLimit(rl, keyFunc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
		if rec.Code != http.StatusAccepted {
			t.Errorf("request %d: status = %d, want %d", i+1, rec.Code, http.StatusAccepted)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("3rd request: status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want 60", got)
	}
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "10.0.0.5:5555", "10.0.0.5"},
		{"real ip header", map[string]string{"X-Real-IP": "1.2.3.4"}, "10.0.0.5:5555", "1.2.3.4"},
		{"forwarded chain", map[string]string{"X-Forwarded-For": "5.6.7.8, 10.0.0.1"}, "10.0.0.5:5555", "5.6.7.8"},
		{"bare remote", nil, "unix", "unix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := RealIP(r); got != tt.want {
				t.Errorf("RealIP = %q, want %q", got, tt.want)
			}
		})
	}
}
