package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

type ctxKey struct{}

var (
	mu  sync.RWMutex
	log *slog.Logger
)

// Init 初始化全局日志：development 使用可读文本格式，其余环境输出 JSON。
func Init(env string) *slog.Logger {
	return InitWithWriter(env, os.Stdout)
}

// InitWithWriter is Init with an explicit destination, mainly for tests.
func InitWithWriter(env string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if env == "development" {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(handler)

	mu.Lock()
	log = l
	mu.Unlock()

	slog.SetDefault(l)
	return l
}

// Get returns the global logger, falling back to slog's default when Init was not called.
func Get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if log == nil {
		return slog.Default()
	}
	return log
}

// WithRequestID stores a request-scoped logger carrying the request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, Get().With("request_id", requestID))
}

// FromContext returns the request-scoped logger, or the global one.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return Get()
}
