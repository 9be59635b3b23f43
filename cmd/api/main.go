package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docscan/docs"
	"docscan/internal/compose"
	"docscan/internal/config"
	"docscan/internal/database"
	"docscan/internal/database/migration"
	handlers "docscan/internal/http/handler"
	"docscan/internal/http/middleware"
	"docscan/internal/logging"
	"docscan/internal/ocr"
	tracing "docscan/internal/otel"
	"docscan/internal/redis"
	"docscan/internal/repository"
	"docscan/internal/repository/postgres"
	"docscan/internal/service"
	"docscan/internal/storage"
	"docscan/internal/table"
)

// multipartOverhead is the slack allowed above the upload limit for multipart framing.
const multipartOverhead = 1 << 20

// @title Docscan API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logger := logging.Stdout(cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, logger)
	if err != nil {
		fatal(logger, "tracing_init_failed", err)
	}

	store, err := storage.New(cfg.Storage, cfg.MinIO)
	if err != nil {
		fatal(logger, "storage_init_failed", err)
	}

	// The upload ledger is optional
	var (
		db     *sql.DB
		ledger repository.UploadRepository
	)
	db, err = database.NewPostgres(ctx, cfg.Database)
	switch {
	case errors.Is(err, database.ErrDisabled):
		logger.Info("ledger_disabled", map[string]any{"component": "database"})
	case err != nil:
		fatal(logger, "database_connect_failed", err)
	default:
		defer db.Close()
		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
			fatal(logger, "database_migration_failed", err)
		}
		ledger = postgres.NewUploadPostgres(db)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var cache *redis.Client
	if cfg.Redis.Addr != "" {
		cache, err = redis.NewRedisClient(cfg.Redis)
		if err != nil {
			fatal(logger, "redis_connect_failed", err)
		}
		defer cache.Close()
	}

	ocrClient, err := newOCRClient(cfg.OCR, cache, reg, logger)
	if err != nil {
		fatal(logger, "ocr_init_failed", err)
	}

	composer := compose.New(table.New(cfg.OCR.TableMarker))
	docSvc := service.NewDocumentService(store, ledger, ocrClient, composer, logger, service.Options{
		MaxUploadBytes:    cfg.Storage.MaxUploadBytes,
		AllowedExtensions: cfg.Storage.AllowedExtensions,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    int(cfg.Storage.MaxUploadBytes) + multipartOverhead,
	})

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		fatal(logger, "metrics_init_failed", err)
	}

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(logger))
	app.Use(promMiddleware.Handler())
	app.Use(cors.New())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	deps := []handlers.Pinger{store}
	if db != nil {
		deps = append(deps, db)
	}
	if cache != nil {
		deps = append(deps, cache)
	}
	handlers.RegisterRoutes(app, docSvc, deps...)

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

	addr := ":" + cfg.Port
	go func() {
		logger.Info("server_listening", map[string]any{
			"addr":            addr,
			"storage_backend": cfg.Storage.Backend,
			"ledger_enabled":  ledger != nil,
			"ocr_enabled":     cfg.OCR.URL != "",
			"ocr_cache":       cache != nil,
		})
		if err := app.Listen(addr); err != nil {
			logger.Error("server_failed", err, nil)
			stop()
		}
	}()

	<-ctx.Done()

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("server_shutdown_failed", err, nil)
	}
	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		logger.Error("tracing_shutdown_failed", err, nil)
	}
}

// newOCRClient stacks the OCR decorators: cache, then metrics, then HTTP.
// Cache hits are therefore not counted as OCR requests.
func newOCRClient(cfg config.OCRConfig, cache *redis.Client, reg prometheus.Registerer, logger *logging.Logger) (ocr.Client, error) {
	var client ocr.Client = ocr.Disabled()
	if cfg.URL != "" {
		client = ocr.NewHTTPClient(cfg.URL, time.Duration(cfg.TimeoutSec)*time.Second)
	}

	instrumented, err := ocr.NewInstrumentedClient(client, reg)
	if err != nil {
		return nil, err
	}
	client = instrumented

	if cache != nil && cfg.URL != "" {
		client = ocr.NewCachedClient(client, cache, time.Duration(cfg.CacheTTLSec)*time.Second, logger)
	}
	return client, nil
}

func fatal(logger *logging.Logger, msg string, err error) {
	logger.Error(msg, err, nil)
	os.Exit(1)
}
