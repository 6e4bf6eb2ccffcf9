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
	"plantya-platform/internal/feature/cluster"
	"plantya-platform/internal/feature/device"
	"plantya-platform/internal/feature/history"
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

	reg := &router.Registry{}
	reg.Register(
		handler.NewAuthHandler(auth.NewService(a.DB, users, a.JWT, log), cfg.JWT.CookieSecure),
		handler.NewHistoryHandler(history.NewService(a.DB, cfg.App.Location(), log)),
		handler.NewDeviceHandler(device.NewService(a.DB, a.Cache, a.Events, log)),
		handler.NewClusterHandler(cluster.NewService(a.DB, a.Cache, a.Events, log)),
	)
	r := router.NewAPIEngine(log, a.DB, a.JWT, cfg.App.HTTP, reg)

	h := cfg.App.HTTP
	addr := server.Addr(h.Host, h.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := h.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(h.Port)
	log.Info("field api",
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	if err := server.Serve(srv, log, "field api"); err != nil {
		log.Error("field api exited", zap.Error(err))
	}
}
