package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter 是进程内的滑动窗口计数器，重启后清零
type MemoryLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
	now      func() time.Time
	stop     chan struct{}
	once     sync.Once
}

// NewMemoryLimiter creates a MemoryLimiter that allows max attempts per window.
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go l.cleanup()
	return l
}

// Close stops the background cleanup.
func (l *MemoryLimiter) Close() {
	l.once.Do(func() { close(l.stop) })
}

func (l *MemoryLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			for key := range l.attempts {
				l.pruneLocked(key)
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}

// pruneLocked 丢弃窗口外的记录，调用方需持有锁
func (l *MemoryLimiter) pruneLocked(key string) []time.Time {
	cutoff := l.now().Add(-l.window)
	hits := l.attempts[key]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(l.attempts, key)
		return nil
	}
	l.attempts[key] = kept
	return kept
}

// Hit records an attempt for key when it is still under the limit.
// Rejected attempts are not stored, so the window does not grow under a flood.
func (l *MemoryLimiter) Hit(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.pruneLocked(key)
	if len(kept) < l.max {
		l.attempts[key] = append(kept, l.now())
		return Decision{Allowed: true, Remaining: l.max - len(kept) - 1}, nil
	}

	// 最早一次记录滑出窗口后即可重试
	retry := kept[0].Add(l.window).Sub(l.now())
	if retry < time.Second {
		retry = time.Second
	}
	return Decision{Allowed: false, RetryAfter: retry}, nil
}

// Reset forgets all attempts for key.
func (l *MemoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.attempts, key)
	l.mu.Unlock()
	return nil
}
