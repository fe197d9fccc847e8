package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIPRateLimiter_BurstThenRefill(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(6, 2)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("203.0.113.7"))
	assert.True(t, l.Allow("203.0.113.7"))
	assert.False(t, l.Allow("203.0.113.7"))
	// Other clients have their own bucket.
	assert.True(t, l.Allow("198.51.100.1"))

	now = now.Add(10 * time.Second)
	assert.True(t, l.Allow("203.0.113.7"))
	assert.False(t, l.Allow("203.0.113.7"))
}

func TestIPRateLimiter_ForgetsIdleClients(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(1, 1)
	l.now = func() time.Time { return now }

	l.Allow("203.0.113.7")
	now = now.Add(11 * time.Minute)
	l.Allow("198.51.100.1")

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.limiters, "203.0.113.7")
	assert.Contains(t, l.limiters, "198.51.100.1")
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	h := l.Middleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/contact", nil)
	req.RemoteAddr = "203.0.113.7:51234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "[2001:db8::1]:443"
	assert.Equal(t, "2001:db8::1", ClientIP(req))

	req.RemoteAddr = "203.0.113.7"
	assert.Equal(t, "203.0.113.7", ClientIP(req))
}
