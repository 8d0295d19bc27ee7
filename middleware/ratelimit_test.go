// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func limitedHandler(rl *RateLimiter) http.HandlerFunc {
	return rl.Wrap(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRateLimiter(t *testing.T) {
	// One token per hour means only the burst gets through during the test.
	handler := limitedHandler(NewRateLimiter(rate.Every(time.Hour), 2, false))

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("DELETE", "/preferences", nil)
		req.RemoteAddr = ip + ":5555"
		w := httptest.NewRecorder()
		handler(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1").Code)
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1").Code)

	blocked := call("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))

	// Other clients have their own bucket
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2").Code)
}

func TestRateLimiter_IgnoresForwardedHeaders(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 1, false)
	handler := limitedHandler(rl)

	allowed := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("PUT", "/preferences/role", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("198.51.100.%d", i))
		w := httptest.NewRecorder()
		handler(w, req)
		if w.Code == http.StatusNoContent {
			allowed++
		}
	}

	assert.Equal(t, 1, allowed)
	assert.Equal(t, 1, rl.tracked())
}

func TestRateLimiter_TrustedProxy(t *testing.T) {
	handler := limitedHandler(NewRateLimiter(rate.Every(time.Hour), 1, true))

	call := func(forwarded string) int {
		req := httptest.NewRequest("PUT", "/preferences/role", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		handler(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, call("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("203.0.113.1"))
	assert.Equal(t, http.StatusNoContent, call("203.0.113.2"))
}

func TestRateLimiter_EvictsOldestAtCapacity(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 1, false)
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	for i := 0; i < maxTrackedClients+10; i++ {
		clock = clock.Add(time.Millisecond)
		rl.limiter(fmt.Sprintf("client-%d", i))
	}

	require.Equal(t, maxTrackedClients, rl.tracked())
	rl.mu.Lock()
	_, first := rl.clients["client-0"]
	_, last := rl.clients[fmt.Sprintf("client-%d", maxTrackedClients+9)]
	rl.mu.Unlock()
	assert.False(t, first, "least recently seen client is evicted")
	assert.True(t, last)
}

func TestRemoteIP(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"10.0.0.1:5555", "10.0.0.1"},
		{"[::1]:8080", "::1"},
		{"10.0.0.1", "10.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.addr
			assert.Equal(t, tt.want, RemoteIP(req))
		})
	}
}
