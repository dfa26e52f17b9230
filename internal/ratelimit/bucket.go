package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type bucketEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// TokenBucket keeps one x/time/rate limiter per key.
type TokenBucket struct {
	mu      sync.Mutex
	buckets map[string]*bucketEntry
	limit   rate.Limit
	burst   int
	idle    time.Duration
	stop    chan struct{}
	once    sync.Once
}

// NewTokenBucket allows perSecond requests per key with the given burst.
func NewTokenBucket(perSecond float64, burst int) *TokenBucket {
	if burst <= 0 {
		burst = 1
	}
	b := &TokenBucket{
		buckets: make(map[string]*bucketEntry),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idle:    5 * time.Minute,
		stop:    make(chan struct{}),
	}
	go b.cleanup()
	return b
}

// Allow consumes one token for key.
func (b *TokenBucket) Allow(key string) bool {
	b.mu.Lock()
	entry, ok := b.buckets[key]
	if !ok {
		entry = &bucketEntry{limiter: rate.NewLimiter(b.limit, b.burst)}
		b.buckets[key] = entry
	}
	entry.lastSeen = time.Now()
	b.mu.Unlock()

	return entry.limiter.Allow()
}

// RetryAfter estimates when the next token becomes available.
func (b *TokenBucket) RetryAfter() time.Duration {
	if b.limit <= 0 {
		return time.Second
	}
	wait := time.Duration(float64(time.Second) / float64(b.limit))
	if wait < time.Second {
		return time.Second
	}
	return wait
}

// Close stops the background cleanup.
func (b *TokenBucket) Close() {
	b.once.Do(func() { close(b.stop) })
}

func (b *TokenBucket) cleanup() {
	ticker := time.NewTicker(b.idle)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-b.idle)
			b.mu.Lock()
			for key, entry := range b.buckets {
				if entry.lastSeen.Before(cutoff) {
					delete(b.buckets, key)
				}
			}
			b.mu.Unlock()
		case <-b.stop:
			return
		}
	}
}
