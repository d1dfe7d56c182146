package main

import (
	"context"
	"log"
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

	docs "rhdocs/docs/backend"
	"rhdocs/internal/config"
	"rhdocs/internal/database"
	"rhdocs/internal/database/migration"
	"rhdocs/internal/http/apierror"
	handlers "rhdocs/internal/http/handler"
	"rhdocs/internal/http/middleware"
	"rhdocs/internal/logger"
	"rhdocs/internal/otel"
	"rhdocs/internal/repository/postgres"
	"rhdocs/internal/service"
	"rhdocs/internal/storage"
)

// @title RH Documents Backend
// @version 1.0
// @description Reference backend storing supporting documents in PostgreSQL and MinIO.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Env, cfg.Location())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, "rhdocs-backend", lg)
	if err != nil {
		lg.Fatal("tracing_init_failed", zap.Error(err))
	}

	db, err := database.NewPostgres(ctx, cfg.Database, lg)
	if err != nil {
		lg.Fatal("db_connect_failed", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, lg, cfg.Database.Host); err != nil {
		lg.Fatal("db_migration_failed", zap.Error(err))
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		lg.Fatal("storage_init_failed", zap.Error(err))
	}

	repo := postgres.NewPiecePostgres(db)
	svc := service.NewPieceService(objStore, repo, lg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(reg, "backend")
	if err != nil {
		lg.Fatal("metrics_init_failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          apierror.ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(lg))
	app.Use(metrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}
		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}
		return swagger.HandlerDefault(c)
	})
	handlers.RegisterRoutes(app, db, svc)

	go func() {
		lg.Info("server_starting", zap.String("addr", ":"+cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			lg.Error("server_failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	lg.Info("server_stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		lg.Error("server_shutdown_failed", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		lg.Error("tracing_shutdown_failed", zap.Error(err))
	}
}
