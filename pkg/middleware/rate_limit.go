package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"tutorhub/pkg/logger"
)

// CallerRateLimiter applies a sliding-window limit per caller. Authenticated
// requests are keyed by user ID so one noisy client cannot exhaust a shared
// NAT address; anonymous requests fall back to the remote IP.
type CallerRateLimiter struct {
	limit  int
	window time.Duration
	log    *logger.Logger

	mu      sync.Mutex
	callers map[string][]time.Time
	done    chan struct{}
}

func NewCallerRateLimiter(limit int, window time.Duration, log *logger.Logger) *CallerRateLimiter {
	rl := &CallerRateLimiter{
		limit:   limit,
		window:  window,
		log:     log,
		callers: make(map[string][]time.Time),
		done:    make(chan struct{}),
	}
	go rl.janitor()
	return rl
}

func (rl *CallerRateLimiter) Allow(key string) bool {
	now := time.Now()
	cutoff := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	recent := rl.callers[key][:0]
	for _, t := range rl.callers[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= rl.limit {
		rl.callers[key] = recent
		return false
	}

	rl.callers[key] = append(recent, now)
	return true
}

func (rl *CallerRateLimiter) Stop() {
	close(rl.done)
}

func (rl *CallerRateLimiter) janitor() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-rl.window)
			rl.mu.Lock()
			for key, stamps := range rl.callers {
				if len(stamps) == 0 || !stamps[len(stamps)-1].After(cutoff) {
					delete(rl.callers, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func RateLimit(rl *CallerRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := callerKey(r)
			if !rl.Allow(key) {
				rl.log.Warn("Rate limit exceeded",
					"request_id", requestID(r),
					"caller", key,
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Too many requests"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func callerKey(r *http.Request) string {
	if sess, ok := SessionFromContext(r.Context()); ok {
		return "user:" + sess.UserID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "addr:" + r.RemoteAddr
	}
	return "addr:" + host
}
