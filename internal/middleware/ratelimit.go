// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"ormtutor/internal/clock"
)

// window counts the requests of one client since start.
type window struct {
	start time.Time
	count int
}

// RateLimiter allows each client a fixed number of requests per period.
// Counters reset when the client's period ends; idle clients are swept
// lazily, at most once per period, so the limiter needs no goroutine.
type RateLimiter struct {
	// TrustProxy keys clients by X-Forwarded-For / X-Real-IP. Enable it
	// only behind a reverse proxy that sets those headers.
	TrustProxy bool

	mu      sync.Mutex
	clients map[string]*window
	limit   int
	period  time.Duration
	clock   clock.Clock
	swept   time.Time
}

// NewRateLimiter allows limit requests per period for each client,
// measured on clk (the real clock when nil).
func NewRateLimiter(limit int, period time.Duration, clk clock.Clock) *RateLimiter {
	if clk == nil {
		clk = clock.Real()
	}
	return &RateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		period:  period,
		clock:   clk,
		swept:   clk.Now(),
	}
}

// allow records a request for key. When the client is over its limit it
// returns false and the time left until its counter resets.
func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	now := rl.clock.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.swept) >= rl.period {
		rl.sweep(now)
	}

	w, ok := rl.clients[key]
	if !ok || now.Sub(w.start) >= rl.period {
		w = &window{start: now}
		rl.clients[key] = w
	}
	if w.count >= rl.limit {
		return false, w.start.Add(rl.period).Sub(now)
	}
	w.count++
	return true, 0
}

// sweep drops clients whose period has ended. rl.mu must be held.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, w := range rl.clients {
		if now.Sub(w.start) >= rl.period {
			delete(rl.clients, key)
		}
	}
	rl.swept = now
}

// Middleware rejects clients over their limit with 429 and a Retry-After
// header in whole seconds.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := rl.allow(rl.clientIP(r))
		if !ok {
			secs := int((wait + time.Second - 1) / time.Second)
			w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the address a request is counted against.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	if rl.TrustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
