// Package ratelimit provides rate limiting functionality using token bucket algorithm.
package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket tracks one client's request budget. Tokens refill at a
// steady rate up to the burst capacity.
type tokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	return &tokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity), // start with full bucket
		lastRefill: time.Now(),
	}
}

// allow checks if a token is available and consumes it if so.
func (tb *tokenBucket) allow() (bool, int) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true, int(tb.tokens)
	}
	return false, 0
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter manages per-client token buckets. A zero or negative
// per-minute limit disables limiting entirely.
type Limiter struct {
	perMinute int
	burst     int

	mu         sync.Mutex
	buckets    map[string]*tokenBucket
	lastAccess map[string]time.Time

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a rate limiter allowing perMinute requests per
// client with the given burst capacity.
func NewLimiter(perMinute, burst int) *Limiter {
	if burst <= 0 {
		burst = perMinute
	}

	l := &Limiter{
		perMinute:  perMinute,
		burst:      burst,
		buckets:    make(map[string]*tokenBucket),
		lastAccess: make(map[string]time.Time),
	}

	if perMinute > 0 {
		l.cleanupTicker = time.NewTicker(5 * time.Minute)
		l.cleanupStop = make(chan struct{})
		go l.cleanup()
	}

	return l
}

// Allow checks if a request from the given client is allowed.
func (l *Limiter) Allow(clientID string) Info {
	if l.perMinute <= 0 {
		return Info{Allowed: true}
	}

	l.mu.Lock()
	bucket, ok := l.buckets[clientID]
	if !ok {
		bucket = newTokenBucket(l.burst, float64(l.perMinute)/60.0)
		l.buckets[clientID] = bucket
	}
	l.lastAccess[clientID] = time.Now()
	l.mu.Unlock()

	allowed, remaining := bucket.allow()
	info := Info{
		Allowed:   allowed,
		Limit:     l.perMinute,
		Remaining: remaining,
	}
	if !allowed {
		info.RetryAfter = time.Duration(60.0/float64(l.perMinute)*float64(time.Second)) + time.Second
	}
	return info
}

// Stop halts the background cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
		close(l.cleanupStop)
	}
}

// cleanup drops buckets for clients idle longer than 10 minutes.
func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			cutoff := time.Now().Add(-10 * time.Minute)
			l.mu.Lock()
			for clientID, last := range l.lastAccess {
				if last.Before(cutoff) {
					delete(l.buckets, clientID)
					delete(l.lastAccess, clientID)
				}
			}
			l.mu.Unlock()
		case <-l.cleanupStop:
			return
		}
	}
}
