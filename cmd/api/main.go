package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"travelapi/internal/auth"
	"travelapi/internal/cache"
	"travelapi/internal/calendar"
	"travelapi/internal/config"
	"travelapi/internal/database"
	"travelapi/internal/database/migration"
	handlers "travelapi/internal/http/handler"
	"travelapi/internal/http/middleware"
	"travelapi/internal/logging"
	"travelapi/internal/otel"
	"travelapi/internal/repository/postgres"
	"travelapi/internal/service"
	"travelapi/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Travel Companion API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Fatal("config_load_failed", zap.Error(err))
	}

	loc, err := cfg.Location()
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Fatal("timezone_load_failed", zap.Error(err))
	}

	log, err := logging.New(cfg.LogLevel, loc)
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Fatal("logger_init_failed", zap.Error(err))
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.Tracing, log)
	if err != nil {
		log.Fatal("tracing_init_failed", zap.Error(err))
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal("database_connect_failed", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(db, log, cfg.Database.Host); err != nil {
			log.Fatal("database_migration_failed", zap.Error(err))
		}
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatal("object_storage_init_failed", zap.Error(err))
	}

	var sessions cache.Cache
	readiness := []handlers.Pinger{objStore}
	if cfg.Redis.URL != "" {
		rc, err := cache.NewRedis(ctx, cfg.Redis, "travelapi:")
		if err != nil {
			log.Fatal("redis_connect_failed", zap.Error(err))
		}
		defer rc.Close()
		sessions = rc
		readiness = append(readiness, rc)
	} else {
		log.Warn("redis_not_configured", zap.String("fallback", "in-memory sessions and cache"))
		sessions = cache.NewMemory()
	}

	cal := calendar.New(cfg.Calendar)
	log.Info("calendar_sync_configured", zap.Bool("enabled", cal.Enabled()))

	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TokenTTL, cfg.JWT.Issuer)
	if err != nil {
		log.Fatal("token_manager_init_failed", zap.Error(err))
	}

	clock := service.SystemClock(loc)
	userRepo := postgres.NewUserPostgres(db)
	profileRepo := postgres.NewProfilePostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)

	svcs := handlers.Services{
		Auth:          service.NewAuthService(userRepo, tokens, sessions, clock),
		Profiles:      service.NewProfileService(objStore, profileRepo, clock, cfg.MinIO.SignedURLTTL),
		Documents:     service.NewDocumentService(objStore, docRepo, cal, clock, cfg.MinIO.SignedURLTTL),
		Notifications: service.NewNotificationService(docRepo, clock),
		Reviews:       service.NewReviewService(postgres.NewReviewPostgres(db), profileRepo, clock),
		Notes:         service.NewNoteService(postgres.NewNotePostgres(db), clock),
		Visa:          service.NewVisaService(postgres.NewVisaPostgres(db), sessions, cfg.Redis.VisaCacheTTL),
		Uploads:       service.NewUploadService(objStore),
	}

	metrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("metrics_init_failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(log),
		BodyLimit:    cfg.MaxUploadSize,
	})

	// RequestID runs first so every later middleware and log line can see the ID
	app.Use(middleware.RequestID())
	app.Use(recover.New())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())

	handlers.RegisterRoutes(app, db, svcs, handlers.Options{
		Gatherer:    prometheus.DefaultGatherer,
		AuthLimiter: middleware.NewIPRateLimiter(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst),
		Readiness:   readiness,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", handlers.SwaggerUI())

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		log.Info("shutdown_started")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			log.Error("http_shutdown_failed", zap.Error(err))
		}
		if err := shutdownTracing(sctx); err != nil {
			log.Error("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server_starting", zap.String("addr", addr), zap.String("timezone", loc.String()))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server_start_failed", zap.Error(err))
	}
	<-stopped
	log.Info("server_stopped")
}
