package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitConfigs(t *testing.T) {
	tests := []struct {
		name       string
		cfg        RateLimitConfig
		rpm, burst int
	}{
		{"default", DefaultRateLimitConfig(), 200, 50},
		{"auth", AuthRateLimitConfig(), 10, 5},
		{"upload", UploadRateLimitConfig(), 30, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cfg.RequestsPerMinute != tt.rpm || tt.cfg.BurstSize != tt.burst {
				t.Errorf("%s config = %d rpm / %d burst, want %d / %d",
					tt.name, tt.cfg.RequestsPerMinute, tt.cfg.BurstSize, tt.rpm, tt.burst)
			}
			if tt.cfg.CleanupInterval != 5*time.Minute {
				t.Errorf("CleanupInterval = %v, want 5m", tt.cfg.CleanupInterval)
			}
		})
	}
}

// newTestLimiter builds a limiter whose cleanup never fires mid-test.
func newTestLimiter(t *testing.T, rpm, burst int) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: rpm,
		BurstSize:         burst,
		CleanupInterval:   time.Hour,
	})
	t.Cleanup(rl.Stop)
	return rl
}

func TestRateLimiter_BurstIsTheCeiling(t *testing.T) {
	const burst = 3
	rl := newTestLimiter(t, 600, burst)

	allowed := 0
	for i := 0; i < burst+2; i++ {
		if rl.Allow("gallery-visitor") {
			allowed++
		}
	}
	if allowed != burst {
		t.Errorf("allowed %d requests with burst=%d, want exactly %d", allowed, burst, burst)
	}
}

func TestRateLimiter_TokensRefill(t *testing.T) {
	rl := newTestLimiter(t, 600, 2) // 10 tokens/sec
	for rl.Allow("refill") {
	}

	time.Sleep(150 * time.Millisecond)
	if !rl.Allow("refill") {
		t.Error("Allow() = false after waiting for a token to refill")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := newTestLimiter(t, 60, 2)
	for rl.Allow("visitor-a") {
	}
	if !rl.Allow("visitor-b") {
		t.Error("exhausting one key must not affect another")
	}
}

func TestRateLimiter_RemainingTokens(t *testing.T) {
	const burst = 10
	rl := newTestLimiter(t, 60, burst)

	if got := rl.RemainingTokens("never-seen"); got != burst {
		t.Errorf("RemainingTokens(unseen) = %d, want the full burst %d", got, burst)
	}

	rl.Allow("seen")
	if got := rl.RemainingTokens("seen"); got < 0 || got >= burst {
		t.Errorf("RemainingTokens after one request = %d, want within [0, %d)", got, burst)
	}
}

func TestGetRateLimitKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	makeCtx := func(remoteAddr string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remoteAddr
		c.Request = req
		return c
	}

	t.Run("authenticated user keys by user id", func(t *testing.T) {
		c := makeCtx("192.168.1.1:12345")
		c.Set("user_id", "user-123")
		if key := getRateLimitKey(c); key != "user:user-123" {
			t.Errorf("key = %q, want user:user-123", key)
		}
	})

	t.Run("anonymous request keys by ip", func(t *testing.T) {
		c := makeCtx("192.168.1.1:12345")
		if key := getRateLimitKey(c); len(key) < 3 || key[:3] != "ip:" {
			t.Errorf("key = %q, want an ip: prefix", key)
		}
	})

	t.Run("empty user id falls back to ip", func(t *testing.T) {
		c := makeCtx("10.0.0.1:9999")
		c.Set("user_id", "")
		if key := getRateLimitKey(c); len(key) < 3 || key[:3] != "ip:" {
			t.Errorf("key = %q, want an ip: prefix", key)
		}
	})
}

func rateLimitedGet(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	r.ServeHTTP(w, req)
	return w
}

func newRateLimitRouter(limiter *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(RateLimitMiddleware(limiter))
	r.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r
}

func TestRateLimitMiddleware_AllowedRequestCarriesHeaders(t *testing.T) {
	const rpm = 120
	rl := newTestLimiter(t, rpm, 20)
	r := newRateLimitRouter(rl)

	w := rateLimitedGet(r, "10.0.0.1:1234")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("X-RateLimit-Limit"); got != strconv.Itoa(rpm) {
		t.Errorf("X-RateLimit-Limit = %q, want %d", got, rpm)
	}
	if w.Header().Get("X-RateLimit-Remaining") == "" {
		t.Error("X-RateLimit-Remaining missing on an allowed request")
	}
}

func TestRateLimitMiddleware_BlocksPastBurst(t *testing.T) {
	rl := newTestLimiter(t, 1, 1)
	r := newRateLimitRouter(rl)

	if w := rateLimitedGet(r, "10.0.0.2:1234"); w.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", w.Code)
	}

	w := rateLimitedGet(r, "10.0.0.2:1234")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want 60", got)
	}
	if remaining, _ := strconv.Atoi(w.Header().Get("X-RateLimit-Remaining")); remaining < 0 {
		t.Errorf("X-RateLimit-Remaining = %d, want >= 0", remaining)
	}
}

func TestRateLimiter_CleanupEvictsStaleEntries(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 600,
		BurstSize:         10,
		CleanupInterval:   10 * time.Millisecond,
	})
	defer rl.Stop()

	rl.Allow("stale-client")

	// Back-date the entry so the next cleanup tick evicts it.
	rl.mu.Lock()
	if entry, ok := rl.entries["stale-client"]; ok {
		entry.lastUpdate = time.Now().Add(-11 * time.Minute)
	}
	rl.mu.Unlock()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		rl.mu.RLock()
		_, present := rl.entries["stale-client"]
		rl.mu.RUnlock()
		if !present {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("stale entry was never evicted by the cleanup goroutine")
}
