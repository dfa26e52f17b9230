package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sitecms/internal/config"
)

// ErrInvalidKey is returned for keys that escape the storage root.
var ErrInvalidKey = errors.New("invalid storage key")

// Store 是媒体对象存储的抽象，Put 返回可公开访问的 URL
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// NewKey 生成形如 2025/01/<uuid>.png 的对象键
func NewKey(now time.Time, ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("%s/%s%s", now.UTC().Format("2006/01"), uuid.NewString(), ext)
}

// New 根据配置选择本地磁盘或 S3 存储
func New(ctx context.Context, cfg config.AppConfig) (Store, error) {
	switch cfg.Storage.Driver {
	case "", "local":
		return NewLocalStore(cfg.Upload.Dir, cfg.Upload.URLPath)
	case "s3":
		return NewS3Store(ctx, cfg.Storage)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

func cleanKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean("/" + trimmed)
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." || strings.HasPrefix(cleaned, "..") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
