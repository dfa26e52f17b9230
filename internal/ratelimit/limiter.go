package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Decision 描述一次限流检查的结果
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter counts attempts per key inside a time window.
// Hit records the attempt and checks the limit in one step; callers Reset on success.
type Limiter interface {
	Hit(ctx context.Context, key string) (Decision, error)
	Reset(ctx context.Context, key string) error
}

// New 在提供可用的 redis 客户端时使用共享计数，否则退回进程内滑动窗口
func New(client *redis.Client, max int, window time.Duration) Limiter {
	if max <= 0 {
		max = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	if client != nil {
		return NewRedisLimiter(client, "sitecms:ratelimit:", max, window)
	}
	return NewMemoryLimiter(max, window)
}
