package middleware

import (
	"net/http"
	"sync"
	"time"

	"voltslot/pkg/errors"
	apphttp "voltslot/pkg/http"
)

// ActorRateLimiter caps request rates per actor using a sliding window.
// Keys are actor IDs taken from the identity header, so one noisy rider
// cannot starve the admission path for everyone else.
type ActorRateLimiter struct {
	mu          sync.Mutex
	requests    map[string][]time.Time
	maxRequests int
	window      time.Duration
	stopCh      chan struct{}
}

func NewActorRateLimiter(maxRequests int, window time.Duration) *ActorRateLimiter {
	limiter := &ActorRateLimiter{
		requests:    make(map[string][]time.Time),
		maxRequests: maxRequests,
		window:      window,
		stopCh:      make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *ActorRateLimiter) Allow(actorID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	recent := rl.requests[actorID][:0]
	for _, t := range rl.requests[actorID] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= rl.maxRequests {
		rl.requests[actorID] = recent
		return false
	}

	rl.requests[actorID] = append(recent, now)
	return true
}

func (rl *ActorRateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := time.Now().Add(-rl.window)
			for actorID, times := range rl.requests {
				recent := times[:0]
				for _, t := range times {
					if t.After(cutoff) {
						recent = append(recent, t)
					}
				}
				if len(recent) == 0 {
					delete(rl.requests, actorID)
				} else {
					rl.requests[actorID] = recent
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *ActorRateLimiter) Stop() {
	close(rl.stopCh)
}

func RateLimit(limiter *ActorRateLimiter, headerName string) func(http.Handler) http.Handler {
	if headerName == "" {
		headerName = "X-Actor-ID"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actorID := r.Header.Get(headerName)
			if actorID == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(actorID) {
				appErr := errors.New(errors.CodeUnavailable, "rate limit exceeded, try again later", http.StatusTooManyRequests)
				_ = apphttp.WriteError(w, appErr)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
