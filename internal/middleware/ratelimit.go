package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/forgo/haven/api/internal/model"
)

// RateLimiter applies a token bucket per client key. Buckets refill
// continuously over the window and idle buckets are dropped by a
// background sweep.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	rate    int
	window  time.Duration
	burst   int
	cleanup time.Duration
	done    chan struct{}
}

type bucket struct {
	tokens   int
	refilled time.Time
}

// RateLimitConfig holds rate limiter settings. Zero values fall back to
// 100 requests per minute with a burst of 20 and a 5 minute sweep.
type RateLimitConfig struct {
	Rate    int
	Window  time.Duration
	Burst   int
	Cleanup time.Duration
}

// NewRateLimiter creates a rate limiter and starts its sweep goroutine
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Rate == 0 {
		cfg.Rate = 100
	}
	if cfg.Window == 0 {
		cfg.Window = time.Minute
	}
	if cfg.Burst == 0 {
		cfg.Burst = 20
	}
	if cfg.Cleanup == 0 {
		cfg.Cleanup = 5 * time.Minute
	}

	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    cfg.Rate,
		window:  cfg.Window,
		burst:   cfg.Burst,
		cleanup: cfg.Cleanup,
		done:    make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Stop ends the sweep goroutine
func (rl *RateLimiter) Stop() {
	close(rl.done)
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.dropIdle()
		case <-rl.done:
			return
		}
	}
}

// dropIdle removes buckets untouched for two full windows
func (rl *RateLimiter) dropIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-2 * rl.window)
	for key, b := range rl.buckets {
		if b.refilled.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

// Allow consumes one token for the key. It reports whether the request
// may proceed, how many tokens remain, and when the bucket next refills
// fully.
func (rl *RateLimiter) Allow(key string) (allowed bool, remaining int, reset time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	capacity := rl.rate + rl.burst

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: capacity - 1, refilled: now}
		rl.buckets[key] = b
		return true, b.tokens, now.Add(rl.window)
	}

	elapsed := now.Sub(b.refilled)
	if elapsed >= rl.window {
		b.tokens = capacity
		b.refilled = now
	} else if earned := int(float64(rl.rate) * (float64(elapsed) / float64(rl.window))); earned > 0 {
		b.tokens = min(b.tokens+earned, capacity)
		b.refilled = now
	}

	reset = b.refilled.Add(rl.window)
	if b.tokens <= 0 {
		return false, 0, reset
	}
	b.tokens--
	return true, b.tokens, reset
}

// RateLimit limits requests per authenticated user, falling back to the
// remote address for anonymous traffic. Limit state is exposed through
// the standard X-RateLimit headers.
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := GetUserID(r.Context())
			if key == "" {
				key = r.RemoteAddr
			}

			allowed, remaining, reset := limiter.Allow(key)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			if !allowed {
				retryAfter := max(int(time.Until(reset).Seconds()), 1)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				model.NewRateLimitError(retryAfter).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
