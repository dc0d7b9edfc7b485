package main

import (
	"context"
	"flag"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"eggslist/internal/cache"
	"eggslist/internal/config"
	"eggslist/internal/database"
	"eggslist/internal/database/migration"
	"eggslist/internal/logging"
	"eggslist/internal/repository/postgres"
	"eggslist/internal/seed"
	"eggslist/internal/service"
)

func main() {
	file := flag.String("file", "fixtures/seed.yaml", "path to the YAML fixture")
	flag.Parse()

	cfg := config.Load()
	logger, err := logging.New(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg, *file, logger); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, path string, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fh.Close()
	fixture, err := seed.Load(fh)
	if err != nil {
		return err
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		return err
	}

	// Writes invalidate the cached lists, so point at the API's Redis when it has one.
	var kv cache.Cache
	if cfg.Cache.RedisURL != "" {
		kv, err = cache.NewRedis(ctx, cfg.Cache.RedisURL)
	} else {
		kv, err = cache.NewMemory(cfg.Cache.LocalSize)
	}
	if err != nil {
		return err
	}

	ttl := time.Duration(cfg.Cache.TimeoutSec) * time.Second
	locations := service.NewLocationService(postgres.NewLocationPostgres(db), kv, ttl, float64(cfg.DefaultLookupRadius), logger)
	// Team member images are not seeded, so no object storage is needed.
	content := service.NewContentService(postgres.NewContentPostgres(db), nil, logger)

	st, err := seed.NewSeeder(locations, content, logger).Apply(ctx, fixture)
	if err != nil {
		return err
	}
	logger.Info("seed complete",
		zap.String("file", path),
		zap.Int("countries", st.Countries),
		zap.Int("states", st.States),
		zap.Int("cities", st.Cities),
		zap.Int("zip_codes", st.ZipCodes),
		zap.Int("testimonials", st.Testimonials),
		zap.Int("faqs", st.FAQs),
		zap.Int("team_members", st.TeamMembers),
	)
	return nil
}
