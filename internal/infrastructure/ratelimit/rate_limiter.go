package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limit describes a token bucket: Burst tokens, refilled at Every.
type Limit struct {
	Burst int
	Every time.Duration
}

// PerMinute spreads n tokens evenly across a minute with a burst of n.
func PerMinute(n int) Limit {
	if n <= 0 {
		n = 1
	}
	return Limit{Burst: n, Every: time.Minute / time.Duration(n)}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key and action.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	limits   map[string]Limit
	fallback Limit
	now      func() time.Time
}

func NewRateLimiter(limits map[string]Limit) *RateLimiter {
	l := make(map[string]Limit, len(limits))
	for action, limit := range limits {
		l[action] = limit
	}
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		limits:   l,
		fallback: PerMinute(20),
		now:      time.Now,
	}
}

// Allow consumes a token for key:action. When none is left it returns the
// wait until the next one.
func (rl *RateLimiter) Allow(key, action string) (bool, time.Duration) {
	now := rl.now()
	b := rl.bucketFor(key, action, now)

	r := b.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Duration(0)
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (rl *RateLimiter) bucketFor(key, action string, now time.Time) *bucket {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	id := key + ":" + action
	b, ok := rl.buckets[id]
	if !ok {
		limit, known := rl.limits[action]
		if !known {
			limit = rl.fallback
		}
		b = &bucket{limiter: rate.NewLimiter(rate.Every(limit.Every), limit.Burst)}
		rl.buckets[id] = b
	}
	b.lastSeen = now
	return b
}

// Cleanup drops buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for id, b := range rl.buckets {
		if now.Sub(b.lastSeen) > maxIdle {
			delete(rl.buckets, id)
		}
	}
}

// StartCleanupRoutine runs Cleanup every interval until stop is closed.
func (rl *RateLimiter) StartCleanupRoutine(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			case <-stop:
				return
			}
		}
	}()
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}
