package main

import (
	"context"
	"flag"
	"os"
	"time"

	"mentorlink/internal/app"
	"mentorlink/internal/config"
	"mentorlink/internal/database/seeder"
	"mentorlink/internal/pkg/logger"
	"mentorlink/internal/usecase"

	"github.com/joho/godotenv"
)

const seedLockKey = "mentorlink:seed:lock"

func main() {
	password := flag.String("password", os.Getenv("SEED_PASSWORD"), "password given to every demo user")
	migrate := flag.Bool("migrate", true, "apply migrations before seeding")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("mentorlink-seed", "", true)
		boot.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.New(cfg.App.AppName+"-seed", cfg.App.Environment, cfg.IsLocal())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init container")
	}
	defer func() {
		_ = c.Close()
	}()

	if *migrate {
		if err := c.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	}

	pw := *password
	if pw == "" {
		pw = "mentorlink123"
	}

	locked, err := c.Cache.SetIfNotExists(ctx, seedLockKey, "1", 2*time.Minute)
	if err != nil {
		log.Warn().Err(err).Msg("seed lock unavailable, continuing without it")
	} else if !locked && c.Cache.Ping(ctx) == nil {
		log.Fatal().Msg("another seed run holds the lock")
	}

	r := seeder.Runner{Seeders: seeder.Defaults(pw), Logger: log}
	if err := r.Run(ctx, c.DB); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	if err := usecase.InvalidateUserSearch(ctx, c.Cache); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate user search cache")
	}
	if locked {
		_ = c.Cache.DeleteByPattern(ctx, seedLockKey)
	}
	log.Info().Msg("seed complete")
}
