package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, rpm int) (*Limiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)}
	rl := NewLimiter(Config{RequestsPerMinute: rpm, CleanupInterval: time.Hour, Now: clock.Now})
	t.Cleanup(rl.Stop)
	return rl, clock
}

func TestAllowWithinWindow(t *testing.T) {
	rl, clock := newTestLimiter(t, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.1.1.1"), "request %d", i)
	}
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"), "clients are independent")

	// A steady stream does not extend the window.
	clock.Advance(30 * time.Second)
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.Equal(t, 30*time.Second, rl.RetryAfter("1.1.1.1"))

	clock.Advance(30 * time.Second)
	assert.True(t, rl.Allow("1.1.1.1"))

	m := rl.GetMetrics()
	assert.Equal(t, int64(5), m.Allowed)
	assert.Equal(t, int64(2), m.Limited)
	assert.Equal(t, int64(2), m.ClientCount)
}

func TestCleanupStaleEntries(t *testing.T) {
	rl, clock := newTestLimiter(t, 10)
	rl.Allow("1.1.1.1")
	clock.Advance(5 * time.Minute)
	rl.Allow("2.2.2.2")
	clock.Advance(6 * time.Minute)

	assert.Equal(t, 1, rl.cleanupStaleEntries())
	assert.Equal(t, 1, rl.ActiveClients())
}

func TestMiddleware(t *testing.T) {
	rl, _ := newTestLimiter(t, 1)
	extract := func(r *http.Request) string { return "9.9.9.9" }
	h := rl.Middleware(extract, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "61", rec.Header().Get("Retry-After"))
}

func TestMiddlewareCustomOnLimit(t *testing.T) {
	rl, _ := newTestLimiter(t, 1)
	called := false
	onLimit := func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	h := rl.Middleware(func(*http.Request) string { return "x" }, onLimit)(http.NotFoundHandler())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStopIsIdempotent(t *testing.T) {
	rl := NewLimiter(Config{})
	rl.Stop()
	rl.Stop()
	assert.Equal(t, 120, rl.requestsPerMinute)
}
