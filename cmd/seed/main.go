package main

import (
	"context"
	"os"
	"time"

	"staff-directory/internal/app"
	"staff-directory/internal/config"
	"staff-directory/internal/database/seeder"
	"staff-directory/internal/logger"
	"staff-directory/internal/tenant"

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

	log := logger.New(cfg.App.LogLevel, true)
	defer log.Sync()

	c, err := app.NewContainer(cfg, log)
	if err != nil {
		log.Error("failed to init container", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
	defer func() {
		_ = c.Close()
	}()

	t := tenant.ID(cfg.Directory.DefaultTenant)
	if t == "" {
		t = tenant.ID(cfg.Directory.CanonicalTenant)
	}

	runner := seeder.Runner{Seeders: []seeder.Seeder{
		seeder.DemoOrgSeeder{Tenant: t},
		seeder.DemoContentSeeder{Tenant: t},
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := runner.Run(ctx, c.DB); err != nil {
		log.Error("seeding failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
	log.Info("seeding complete", zap.String("tenant", t.String()))
}
