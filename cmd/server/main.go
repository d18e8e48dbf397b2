package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staff-directory/internal/app"
	"staff-directory/internal/config"
	"staff-directory/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", true)
		fallback.Error("failed to load config", zap.Error(err))
		fallback.Sync()
		os.Exit(1)
	}

	log := logger.New(cfg.App.LogLevel, cfg.App.Environment != "production")
	defer log.Sync()

	bootstrap, cleanup, err := app.Bootstrap(cfg, log)
	if err != nil {
		log.Error("failed to bootstrap app", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Warn("cleanup error", zap.Error(err))
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.Error("invalid HTTP port", zap.Error(err))
		return
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- bootstrap.Fiber.Listen(addr)
	}()
	log.Info("server listening",
		zap.String("addr", addr),
		zap.String("canonical_tenant", cfg.Directory.CanonicalTenant))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", zap.Error(err))
		}
	case sig := <-sigCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(ctx); err != nil {
			log.Warn("shutdown error", zap.Error(err))
		}
	}
}
