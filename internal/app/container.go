package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mentorlink/internal/config"
	"mentorlink/internal/database"
	"mentorlink/internal/database/migration"
	dbpostgres "mentorlink/internal/database/postgres"
	"mentorlink/internal/domain/follow"
	"mentorlink/internal/domain/user"
	"mentorlink/internal/infrastructure/cache"
	"mentorlink/internal/pkg/jwt"
	"mentorlink/internal/repository"
	"mentorlink/migrations"

	"github.com/rs/zerolog"
)

// Container owns the long lived dependencies. Users and FollowRequests may
// be swapped for another store before New is called.
type Container struct {
	Config config.Config
	Logger zerolog.Logger

	DB    database.DB
	Cache *cache.Redis
	JWT   *jwt.HMACService

	Users          user.Repository
	FollowRequests follow.Repository
}

func NewContainer(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Container, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:         cfg,
		Logger:         logger,
		DB:             db,
		Cache:          cache.NewRedis(ctx, cfg.Redis, logger),
		JWT:            jwt.NewHMACServiceFromConfig(cfg.JWT),
		Users:          repository.NewPostgresUserRepository(db),
		FollowRequests: repository.NewPostgresFollowRequestRepository(db),
	}, nil
}

// Migrate applies pending schema migrations. MIGRATIONS_DIR overrides the
// embedded set.
func (c *Container) Migrate(ctx context.Context) error {
	if c == nil || c.DB == nil {
		return fmt.Errorf("nil db")
	}

	r := migration.Runner{FS: migrations.FS, Logger: c.Logger}
	if dir := strings.TrimSpace(c.Config.Migrations.Dir); dir != "" {
		r = migration.Runner{Dir: dir, Logger: c.Logger}
	}

	n, err := r.Run(ctx, c.DB.SQLDB())
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	c.Logger.Info().Int("applied", n).Msg("[Migration] schema up to date")
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var firstErr error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
