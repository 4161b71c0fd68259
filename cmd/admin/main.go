package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-gin-gorm-shop/internal/bootstrap"
	"go-gin-gorm-shop/internal/core/config"
	"go-gin-gorm-shop/internal/core/logger"
	"go-gin-gorm-shop/internal/core/server"
	"go-gin-gorm-shop/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.New(cfg.Log)
	defer cleanup()
	log = log.With(zap.String("server", "admin"))

	if cfg.App.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logger.ToWriter(log, zapcore.DebugLevel)

	app, err := bootstrap.New(cfg, log)
	if err != nil {
		log.Fatal("bootstrap failed", zap.Error(err))
	}
	defer func() { _ = app.Close() }()

	r := router.NewAdminEngine(log, cfg.App.Admin, app.Registry, app.Tokens)
	srv := server.BuildServer(cfg.App.Admin, r)

	log.Info("admin api starting",
		zap.String("addr", srv.Addr),
		zap.String("admin_v1", "http://"+srv.Addr+"/admin/v1"),
		zap.String("metrics", "http://"+srv.Addr+"/metrics"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := server.Run(ctx, srv, log, 10*time.Second); err != nil {
		log.Error("admin api stopped with error", zap.Error(err))
		return
	}
	log.Info("admin api stopped gracefully")
}
