package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sitecms/internal/config"
)

// RedisLimiter 使用 INCR + PEXPIRE 脚本的固定窗口计数，多实例共享
type RedisLimiter struct {
	client *redis.Client
	prefix string
	max    int
	window time.Duration
}

// NewRedisLimiter creates a RedisLimiter storing counters under prefix.
func NewRedisLimiter(client *redis.Client, prefix string, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix, max: max, window: window}
}

// hitScript 原子地自增并在缺少过期时间时补上窗口，返回 {count, pttl}
var hitScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// Hit increments the counter and reports whether it is still within max.
func (l *RedisLimiter) Hit(ctx context.Context, key string) (Decision, error) {
	res, err := hitScript.Run(ctx, l.client, []string{l.prefix + key}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("record rate limit hit: %w", err)
	}
	if len(res) != 2 {
		return Decision{}, fmt.Errorf("record rate limit hit: unexpected reply %v", res)
	}

	count, ttl := int(res[0]), time.Duration(res[1])*time.Millisecond
	if count <= l.max {
		return Decision{Allowed: true, Remaining: l.max - count}, nil
	}
	if ttl < time.Second {
		ttl = time.Second
	}
	return Decision{Allowed: false, RetryAfter: ttl}, nil
}

// Reset deletes the counter.
func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.prefix+key).Err(); err != nil {
		return fmt.Errorf("reset rate limit counter: %w", err)
	}
	return nil
}

// NewRedisClient 返回可用的客户端；未配置或连接失败时返回 nil，由调用方降级到内存实现
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, log *slog.Logger) *redis.Client {
	if cfg.Addr == "" {
		log.Info("redis not configured, using in-memory rate limiting")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable, using in-memory rate limiting", "addr", cfg.Addr, "error", err)
		client.Close()
		return nil
	}

	log.Info("connected to redis", "addr", cfg.Addr, "db", cfg.DB)
	return client
}
