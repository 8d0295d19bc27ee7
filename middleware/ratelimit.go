// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the limiter map. Idle clients are pruned past
// it, then the least recently seen client is evicted.
const maxTrackedClients = 4096

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client IP.
type RateLimiter struct {
	limit rate.Limit
	burst int
	idle  time.Duration
	// trustProxy keys clients by X-Forwarded-For / X-Real-IP instead of
	// the connection address.
	trustProxy bool

	mu      sync.Mutex
	clients map[string]*clientLimiter
	now     func() time.Time
}

// NewRateLimiter allows each client limit requests per second with the given burst.
// Forwarded headers are only honoured when trustProxy is set.
func NewRateLimiter(limit rate.Limit, burst int, trustProxy bool) *RateLimiter {
	return &RateLimiter{
		limit:      limit,
		burst:      burst,
		idle:       10 * time.Minute,
		trustProxy: trustProxy,
		clients:    make(map[string]*clientLimiter),
		now:        time.Now,
	}
}

// Wrap rejects requests over the client's budget with 429
func (rl *RateLimiter) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lim := rl.limiter(rl.clientKey(r))
		if !lim.Allow() {
			retry := time.Duration(float64(time.Second) / float64(rl.limit))
			w.Header().Set("Retry-After", strconv.Itoa(max(1, int(retry.Round(time.Second).Seconds()))))
			ErrorResponse(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next(w, r)
	}
}

func (rl *RateLimiter) clientKey(r *http.Request) string {
	if rl.trustProxy {
		return GetClientIP(r)
	}
	return RemoteIP(r)
}

// RemoteIP returns the host part of the connection's remote address.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// tracked reports how many clients currently hold a limiter.
func (rl *RateLimiter) tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimiter) limiter(client string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if c, ok := rl.clients[client]; ok {
		c.lastSeen = now
		return c.limiter
	}

	if len(rl.clients) >= maxTrackedClients {
		rl.evict(now)
	}

	c := &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst), lastSeen: now}
	rl.clients[client] = c
	return c.limiter
}

// evict drops idle clients, or the least recently seen one when none are idle.
// Callers hold rl.mu.
func (rl *RateLimiter) evict(now time.Time) {
	var oldest string
	var oldestSeen time.Time
	found := false
	for ip, c := range rl.clients {
		if now.Sub(c.lastSeen) > rl.idle {
			delete(rl.clients, ip)
			continue
		}
		if !found || c.lastSeen.Before(oldestSeen) {
			oldest, oldestSeen, found = ip, c.lastSeen, true
		}
	}
	if len(rl.clients) >= maxTrackedClients {
		delete(rl.clients, oldest)
	}
}
