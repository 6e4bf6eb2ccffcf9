package main

import (
	"context"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"plantya-platform/internal/app"
	"plantya-platform/internal/core/config"
	"plantya-platform/internal/core/server"
	"plantya-platform/internal/feature/auth"
	"plantya-platform/internal/feature/user"
	"plantya-platform/internal/transport/http/handler"
	"plantya-platform/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad(os.Getenv("CONFIG_PATH"))
	log, cleanup := app.NewLogger(cfg)
	defer cleanup()

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer a.Close()

	users := user.NewService(a.DB, a.Events, log)

	// 首次启动种子管理员
	if b := cfg.Bootstrap; b.AdminEmail != "" {
		created, err := users.EnsureAdmin(context.Background(), b.AdminEmail, b.AdminName, b.AdminPassword)
		if err != nil {
			log.Fatal("bootstrap admin failed", zap.Error(err))
		}
		if !created {
			log.Info("admin already present, bootstrap skipped")
		}
	}

	reg := &router.Registry{}
	reg.Register(
		handler.NewAuthHandler(auth.NewService(a.DB, users, a.JWT, log), cfg.JWT.CookieSecure),
		handler.NewUserHandler(users),
	)
	r := router.NewAdminEngine(log, a.DB, a.JWT, cfg.App.HTTP, reg)

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second)

	// 启动前打印可点击地址
	host4human := cfg.App.Admin.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.Admin.Port)
	log.Info("admin api",
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("admin_v1", baseURL+"/admin/v1"),
	)

	if err := server.Serve(srv, log, "admin api"); err != nil {
		log.Error("admin api exited", zap.Error(err))
	}
}
