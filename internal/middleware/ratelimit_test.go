package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func newTestLimiter(t *testing.T, cfg RateLimitConfig) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(cfg)
	t.Cleanup(rl.Stop)
	return rl
}

func TestAllowWithinBudget(t *testing.T) {
	t.Parallel()

	rl := newTestLimiter(t, RateLimitConfig{Rate: 5, Window: time.Minute, Burst: 2})

	// Rate plus burst requests must all pass
	for i := 0; i < 7; i++ {
		allowed, _, _ := rl.Allow("user:01jbq2")
		if !allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	allowed, remaining, _ := rl.Allow("user:01jbq2")
	if allowed {
		t.Error("request beyond rate+burst must be denied")
	}
	if remaining != 0 {
		t.Errorf("expected zero remaining, got %d", remaining)
	}
}

func TestAllowRemainingCountsDown(t *testing.T) {
	t.Parallel()

	rl := newTestLimiter(t, RateLimitConfig{Rate: 3, Window: time.Minute, Burst: 1})

	_, first, _ := rl.Allow("user:a")
	_, second, _ := rl.Allow("user:a")

	if first != 3 || second != 2 {
		t.Errorf("expected remaining 3 then 2, got %d then %d", first, second)
	}
}

func TestAllowIsolatesKeys(t *testing.T) {
	t.Parallel()

	rl := newTestLimiter(t, RateLimitConfig{Rate: 1, Window: time.Minute, Burst: 0})

	rl.Allow("user:a")
	if allowed, _, _ := rl.Allow("user:a"); allowed {
		t.Error("second request for the same key must be denied")
	}
	if allowed, _, _ := rl.Allow("user:b"); !allowed {
		t.Error("a different key must have its own budget")
	}
}

func TestAllowRefillsAfterWindow(t *testing.T) {
	t.Parallel()

	rl := newTestLimiter(t, RateLimitConfig{Rate: 1, Window: 30 * time.Millisecond, Burst: 0})

	rl.Allow("user:a")
	if allowed, _, _ := rl.Allow("user:a"); allowed {
		t.Fatal("budget should be spent")
	}

	time.Sleep(40 * time.Millisecond)

	if allowed, _, _ := rl.Allow("user:a"); !allowed {
		t.Error("budget must refill after a full window")
	}
}

func TestDropIdleBuckets(t *testing.T) {
	t.Parallel()

	rl := newTestLimiter(t, RateLimitConfig{Rate: 1, Window: 5 * time.Millisecond, Burst: 0, Cleanup: time.Hour})

	rl.Allow("user:idle")
	time.Sleep(15 * time.Millisecond)
	rl.dropIdle()

	rl.mu.Lock()
	_, exists := rl.buckets["user:idle"]
	rl.mu.Unlock()
	if exists {
		t.Error("idle bucket should have been dropped")
	}
}

func TestRateLimitMiddlewareHeaders(t *testing.T) {
	t.Parallel()

	rl := newTestLimiter(t, RateLimitConfig{Rate: 10, Window: time.Minute, Burst: 0})
	handler := RateLimit(rl)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/invites/abc", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-RateLimit-Limit") != "10" {
		t.Errorf("expected limit header 10, got %q", rec.Header().Get("X-RateLimit-Limit"))
	}
	if rec.Header().Get("X-RateLimit-Remaining") == "" {
		t.Error("expected remaining header")
	}
	if rec.Header().Get("X-RateLimit-Reset") == "" {
		t.Error("expected reset header")
	}
}

func TestRateLimitMiddlewareRejects(t *testing.T) {
	t.Parallel()

	rl := newTestLimiter(t, RateLimitConfig{Rate: 1, Window: time.Minute, Burst: 0})
	handler := RateLimit(rl)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/invites/abc", nil)
	req.RemoteAddr = "203.0.113.9:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request should pass, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}

	retryAfter, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	if err != nil || retryAfter < 1 {
		t.Errorf("expected a positive Retry-After, got %q", rec.Header().Get("Retry-After"))
	}
}

func TestRateLimitKeysByUser(t *testing.T) {
	t.Parallel()

	rl := newTestLimiter(t, RateLimitConfig{Rate: 1, Window: time.Minute, Burst: 0})
	handler := RateLimit(rl)(okHandler())

	// Two authenticated users from the same address each get a budget
	send := func(userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/invites/abc", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		req = req.WithContext(context.WithValue(req.Context(), UserIDKey, userID))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("user:alice"); code != http.StatusOK {
		t.Fatalf("alice's first request should pass, got %d", code)
	}
	if code := send("user:bob"); code != http.StatusOK {
		t.Errorf("bob must not share alice's bucket, got %d", code)
	}
	if code := send("user:alice"); code != http.StatusTooManyRequests {
		t.Errorf("alice's second request should be limited, got %d", code)
	}
}
