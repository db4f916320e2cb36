// Package middleware provides the HTTP middleware stack for Qellum.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/risewynn/qellum/pkg/response"
)

// window tracks a fixed-window request count for one client.
type window struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

func (w *window) allow(max int, span time.Duration) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if now.After(w.resetAt) {
		w.count = 0
		w.resetAt = now.Add(span)
	}
	w.count++
	return w.count <= max
}

// limiter keys fixed windows by client IP and evicts stale entries in
// the background so the map cannot grow without bound.
type limiter struct {
	mu      sync.Mutex
	clients map[string]*window
	span    time.Duration
}

func newLimiter(span time.Duration) *limiter {
	l := &limiter{clients: map[string]*window{}, span: span}
	go l.evictLoop()
	return l
}

func (l *limiter) get(ip string) *window {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w, ok := l.clients[ip]; ok {
		return w
	}
	w := &window{resetAt: time.Now().Add(l.span)}
	l.clients[ip] = w
	return w
}

func (l *limiter) evictLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for ip, w := range l.clients {
			w.mu.Lock()
			stale := now.After(w.resetAt)
			w.mu.Unlock()
			if stale {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit limits each client IP to max requests per span.
// Example: middleware.RateLimit(120, time.Minute)
func RateLimit(max int, span time.Duration) func(http.Handler) http.Handler {
	l := newLimiter(span)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
				ip = fwd
			}

			if !l.get(ip).allow(max, span) {
				response.Error(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
