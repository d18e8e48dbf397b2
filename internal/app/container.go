package app

import (
	"context"
	"time"

	"staff-directory/internal/config"
	"staff-directory/internal/database"
	dbpostgres "staff-directory/internal/database/postgres"
	"staff-directory/internal/database/schema"
	"staff-directory/internal/infrastructure/legacy"
	"staff-directory/internal/logger"
)

// Container holds the long-lived process dependencies: the connection
// pool and the legacy bookmark mirror. Close releases both.
type Container struct {
	Config config.Config
	Log    logger.Logger
	DB     database.DB
	Mirror *legacy.Mirror
}

func NewContainer(cfg config.Config, log logger.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := schema.Ensure(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	mirror := legacy.NewMirror(cfg.Redis, log)

	return &Container{Config: cfg, Log: log, DB: db, Mirror: mirror}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Mirror != nil {
		c.Mirror.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
