package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitecms/internal/config"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/handler"
	"github.com/sitecms/internal/logger"
	"github.com/sitecms/internal/ratelimit"
	"github.com/sitecms/internal/router"
	"github.com/sitecms/internal/service"
	"github.com/sitecms/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.Env)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// 初始化数据库
	if err := db.Init(cfg.Database); err != nil {
		log.Error("failed to initialize database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}

	created, err := db.EnsureUser(db.DB, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, db.RoleAdmin)
	if err != nil {
		log.Error("failed to seed admin user", "error", err)
		os.Exit(1)
	}
	if created {
		log.Info("seeded admin user", "email", cfg.Auth.AdminEmail)
	}

	seeded, err := db.EnsureSections(db.DB)
	if err != nil {
		log.Error("failed to seed section visibility", "error", err)
		os.Exit(1)
	}
	if seeded > 0 {
		log.Info("seeded default sections", "count", seeded)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.New(ctx, cfg)
	if err != nil {
		log.Error("failed to initialize media storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}

	redisClient := ratelimit.NewRedisClient(ctx, cfg.Redis, log)
	if redisClient != nil {
		defer redisClient.Close()
	}
	loginLimiter := ratelimit.New(redisClient, cfg.Limits.LoginMax, cfg.Limits.LoginWindow)
	if mem, ok := loginLimiter.(*ratelimit.MemoryLimiter); ok {
		defer mem.Close()
	}
	publicBucket := ratelimit.NewTokenBucket(cfg.Limits.PublicPerSecond, cfg.Limits.PublicBurst)
	defer publicBucket.Close()

	if cfg.Auth.JWTSecret == "sitecms-dev-jwt-secret" && !cfg.IsDevelopment() {
		log.Warn("JWT_SECRET is using the development default")
	}

	api := handler.NewAPI(handler.Options{
		DB:           db.DB,
		Store:        store,
		Tokens:       service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL),
		LoginLimiter: loginLimiter,
		PublicBucket: publicBucket,
		MaxUpload:    cfg.Upload.MaxBytes,
		SiteBaseURL:  cfg.SiteBaseURL,
	})

	routerCfg := router.Config{
		SessionSecret: cfg.SessionSecret,
		SecureCookies: !cfg.IsDevelopment(),
	}
	// 只有本地存储需要由本服务提供静态文件
	if local, ok := store.(*storage.LocalStore); ok {
		routerCfg.UploadDir = local.Root()
		routerCfg.UploadURL = local.URLPath()
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router.SetupRouter(api, routerCfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", cfg.ListenAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	if sqlDB, err := db.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
