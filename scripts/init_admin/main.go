package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sitecms/internal/config"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.Env)

	email := flag.String("email", cfg.Auth.AdminEmail, "管理员邮箱，默认读取 ADMIN_EMAIL")
	password := flag.String("password", cfg.Auth.AdminPassword, "管理员密码，默认读取 ADMIN_PASSWORD")
	flag.Parse()

	if strings.TrimSpace(*email) == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: init_admin -email admin@example.com -password <secret>")
		os.Exit(2)
	}
	if len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "password must be at least 8 characters")
		os.Exit(2)
	}

	// 初始化数据库
	if err := db.Init(cfg.Database); err != nil {
		log.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	created, err := db.EnsureUser(db.DB, *email, *password, db.RoleAdmin)
	if err != nil {
		log.Error("failed to create admin", "error", err)
		os.Exit(1)
	}
	if !created {
		fmt.Println("用户已存在，无需初始化")
		return
	}

	fmt.Println("管理员创建成功")
	fmt.Println("邮箱:", strings.ToLower(strings.TrimSpace(*email)))
}
