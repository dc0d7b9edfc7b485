package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"eggslist/docs"
	"eggslist/internal/auth"
	"eggslist/internal/cache"
	"eggslist/internal/config"
	"eggslist/internal/database"
	"eggslist/internal/database/migration"
	handlers "eggslist/internal/http/handler"
	"eggslist/internal/http/middleware"
	"eggslist/internal/logging"
	"eggslist/internal/mail"
	"eggslist/internal/otel"
	"eggslist/internal/repository/postgres"
	"eggslist/internal/service"
	"eggslist/internal/storage"
)

const (
	bodyLimit       = 10 * 1024 * 1024
	shutdownTimeout = 10 * time.Second
)

// @title Eggslist Site Configuration API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	logger, err := logging.New(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	kv, err := newCache(ctx, cfg.Cache, reg, logger)
	if err != nil {
		return err
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		return err
	}

	// Initialize repositories and services
	locationRepo := postgres.NewLocationPostgres(db)
	brandingRepo := postgres.NewBrandingPostgres(db)
	contentRepo := postgres.NewContentPostgres(db)
	userRepo := postgres.NewUserPostgres(db)

	if cfg.Auth.SecretKey == "" {
		return errors.New("SECRET_KEY is required")
	}
	tokens := auth.NewTokenManager(cfg.Auth.SecretKey, time.Duration(cfg.Auth.AccessTokenTTLHrs)*time.Hour)
	cacheTTL := time.Duration(cfg.Cache.TimeoutSec) * time.Second

	brandingSvc := service.NewBrandingService(brandingRepo, kv, objStore, logger)
	authSvc := service.NewAuthService(userRepo, tokens, logger)

	mailer, err := newMailer(cfg, brandingSvc, logger)
	if err != nil {
		return err
	}

	svcs := handlers.Services{
		Location: service.NewLocationService(locationRepo, kv, cacheTTL, float64(cfg.DefaultLookupRadius), logger),
		Branding: brandingSvc,
		Content:  service.NewContentService(contentRepo, objStore, logger),
		Auth:     authSvc,
		Mailing:  service.NewMailingService(userRepo, mailer),
	}

	if err := authSvc.EnsureSuperuser(ctx, cfg.Auth.SuperuserEmail, cfg.Auth.SuperuserPassword); err != nil {
		return err
	}

	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(logger),
		BodyLimit:    bodyLimit,
	})

	// Register global middleware. Tracing runs first so the request ID can tag its span.
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == middleware.MetricsPath
	})))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(prom.Handler())
	app.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, kv, svcs)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	logger.Info("server starting", zap.String("addr", addr), zap.String("environment", cfg.Environment))
	return app.Listen(addr)
}

// newCache returns Redis when REDIS_URL is set and the in-process LRU otherwise,
// wrapped with hit/miss metrics.
func newCache(ctx context.Context, cfg config.CacheConfig, reg prometheus.Registerer, logger *zap.Logger) (cache.Cache, error) {
	var (
		backend cache.Cache
		err     error
	)
	if cfg.RedisURL != "" {
		backend, err = cache.NewRedis(ctx, cfg.RedisURL)
		logger.Info("cache configured", zap.String("backend", "redis"))
	} else {
		backend, err = cache.NewMemory(cfg.LocalSize)
		logger.Info("cache configured", zap.String("backend", "memory"), zap.Int("size", cfg.LocalSize))
	}
	if err != nil {
		return nil, err
	}
	return cache.NewInstrumented(backend, reg)
}

// newMailer sends over SMTP when EMAIL_HOST is set and logs messages otherwise.
func newMailer(cfg *config.AppConfig, site mail.SiteNamer, logger *zap.Logger) (*mail.Mailer, error) {
	var transport mail.Transport
	if cfg.Email.Host != "" {
		smtp, err := mail.NewSMTP(cfg.Email)
		if err != nil {
			return nil, err
		}
		transport = smtp
	} else {
		logger.Warn("EMAIL_HOST not set, mail is written to the log")
		transport = mail.NewConsole(cfg.Email.From, logger)
	}
	return mail.New(transport, site, cfg.SiteURL, logger)
}
