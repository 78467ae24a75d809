package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLimiter(perMinute int) (*Limiter, *fakeClock) {
	rl := NewLimiter(Config{RequestsPerMinute: perMinute, CleanupInterval: time.Hour})
	clk := &fakeClock{t: time.Date(2023, 10, 10, 8, 0, 0, 0, time.UTC)}
	rl.now = clk.now
	return rl, clk
}

func TestLimiterAllow(t *testing.T) {
	rl, clk := newTestLimiter(2)
	defer rl.Stop()

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "clients are counted separately")

	clk.t = clk.t.Add(30 * time.Second)
	assert.False(t, rl.Allow("a"), "window has not rolled over")
	assert.Equal(t, 30*time.Second, rl.RetryAfter("a"))

	clk.t = clk.t.Add(31 * time.Second)
	assert.True(t, rl.Allow("a"))
}

func TestLimiterCleanup(t *testing.T) {
	rl, clk := newTestLimiter(5)
	defer rl.Stop()

	rl.Allow("a")
	rl.Allow("b")
	clk.t = clk.t.Add(5 * time.Minute)
	rl.Allow("b")
	clk.t = clk.t.Add(6 * time.Minute)

	assert.Equal(t, 1, rl.cleanupStaleEntries())
	assert.Equal(t, 1, rl.ActiveClients())
}

func TestLimiterDefaults(t *testing.T) {
	rl := NewLimiter(Config{})
	defer rl.Stop()
	assert.Equal(t, DefaultConfig().RequestsPerMinute, rl.requestsPerMinute)
	rl.Stop()
}

func TestLimiterMiddleware(t *testing.T) {
	rl, _ := newTestLimiter(1)
	defer rl.Stop()

	limited := 0
	h := rl.Middleware(
		func(*http.Request) string { return "client" },
		func(*http.Request) { limited++ },
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "61", rec.Header().Get("Retry-After"))
	assert.Equal(t, 1, limited)
}
