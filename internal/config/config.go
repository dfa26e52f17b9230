package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	Env           string
	ListenAddr    string
	Port          string
	GinMode       string
	SiteBaseURL   string
	SessionSecret string

	Database DatabaseConfig
	Auth     AuthConfig
	Upload   UploadConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Limits   RateLimitConfig
}

// DatabaseConfig 描述数据库驱动与连接串。
type DatabaseConfig struct {
	Driver string
	Path   string
	DSN    string
}

// AuthConfig 描述 JWT 与初始管理员。
type AuthConfig struct {
	JWTSecret     string
	JWTTTL        time.Duration
	AdminEmail    string
	AdminPassword string
}

// UploadConfig 描述本地媒体目录与上传上限。
type UploadConfig struct {
	Dir      string
	URLPath  string
	MaxBytes int64
}

// StorageConfig selects the media object store.
type StorageConfig struct {
	Driver    string
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

// RedisConfig is optional; an empty Addr keeps rate limiting in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RateLimitConfig bounds login attempts and public reads per client IP.
type RateLimitConfig struct {
	LoginMax        int
	LoginWindow     time.Duration
	PublicPerSecond float64
	PublicBurst     int
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// Load 从 .env 与环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	// .env 不存在时直接使用进程环境变量
	_ = godotenv.Load()

	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "production")
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("SITE_BASE_URL", "http://localhost:8080")
	v.SetDefault("SESSION_SECRET", "sitecms-dev-secret")

	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_PATH", "sitecms.db")

	v.SetDefault("JWT_SECRET", "sitecms-dev-jwt-secret")
	v.SetDefault("JWT_TTL", "24h")

	v.SetDefault("UPLOAD_DIR", "web/static/uploads")
	v.SetDefault("UPLOAD_URL_PATH", "/static/uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)

	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("S3_REGION", "us-east-1")

	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOGIN_RATE_LIMIT", 5)
	v.SetDefault("LOGIN_RATE_WINDOW", "15m")
	v.SetDefault("PUBLIC_RATE_PER_SECOND", 20)
	v.SetDefault("PUBLIC_RATE_BURST", 40)
	return v
}

// FromViper builds the configuration from an already populated viper instance.
func FromViper(v *viper.Viper) AppConfig {
	port := trimmed(v, "PORT")
	if port == "" {
		port = "8080"
	}

	listenAddr := trimmed(v, "LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	driver := strings.ToLower(trimmed(v, "DATABASE_DRIVER"))
	if driver == "" {
		driver = "sqlite"
	}

	jwtTTL := v.GetDuration("JWT_TTL")
	if jwtTTL <= 0 {
		jwtTTL = 24 * time.Hour
	}

	maxBytes := v.GetInt64("UPLOAD_MAX_BYTES")
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}

	loginMax := v.GetInt("LOGIN_RATE_LIMIT")
	if loginMax <= 0 {
		loginMax = 5
	}
	loginWindow := v.GetDuration("LOGIN_RATE_WINDOW")
	if loginWindow <= 0 {
		loginWindow = 15 * time.Minute
	}

	publicRate := v.GetFloat64("PUBLIC_RATE_PER_SECOND")
	if publicRate <= 0 {
		publicRate = 20
	}
	publicBurst := v.GetInt("PUBLIC_RATE_BURST")
	if publicBurst <= 0 {
		publicBurst = 40
	}

	return AppConfig{
		Env:           strings.ToLower(trimmed(v, "APP_ENV")),
		ListenAddr:    listenAddr,
		Port:          port,
		GinMode:       trimmed(v, "GIN_MODE"),
		SiteBaseURL:   strings.TrimRight(trimmed(v, "SITE_BASE_URL"), "/"),
		SessionSecret: trimmed(v, "SESSION_SECRET"),
		Database: DatabaseConfig{
			Driver: driver,
			Path:   trimmed(v, "DATABASE_PATH"),
			DSN:    trimmed(v, "DATABASE_DSN"),
		},
		Auth: AuthConfig{
			JWTSecret:     trimmed(v, "JWT_SECRET"),
			JWTTTL:        jwtTTL,
			AdminEmail:    trimmed(v, "ADMIN_EMAIL"),
			AdminPassword: trimmed(v, "ADMIN_PASSWORD"),
		},
		Upload: UploadConfig{
			Dir:      trimmed(v, "UPLOAD_DIR"),
			URLPath:  trimmed(v, "UPLOAD_URL_PATH"),
			MaxBytes: maxBytes,
		},
		Storage: StorageConfig{
			Driver:    strings.ToLower(trimmed(v, "STORAGE_DRIVER")),
			Bucket:    trimmed(v, "S3_BUCKET"),
			Region:    trimmed(v, "S3_REGION"),
			Endpoint:  trimmed(v, "S3_ENDPOINT"),
			AccessKey: trimmed(v, "S3_ACCESS_KEY"),
			SecretKey: trimmed(v, "S3_SECRET_KEY"),
			PublicURL: strings.TrimRight(trimmed(v, "S3_PUBLIC_URL"), "/"),
		},
		Redis: RedisConfig{
			Addr:     trimmed(v, "REDIS_ADDR"),
			Password: trimmed(v, "REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Limits: RateLimitConfig{
			LoginMax:        loginMax,
			LoginWindow:     loginWindow,
			PublicPerSecond: publicRate,
			PublicBurst:     publicBurst,
		},
	}
}

func trimmed(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}
