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

	docs "rhdocs/docs/gateway"
	"rhdocs/internal/backend"
	"rhdocs/internal/config"
	"rhdocs/internal/gateway"
	"rhdocs/internal/http/apierror"
	"rhdocs/internal/http/middleware"
	"rhdocs/internal/logger"
	"rhdocs/internal/otel"
	"rhdocs/internal/session"
)

// @title RH Documents Gateway
// @version 1.0
// @description Same-origin gateway for collaborator supporting documents.
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

	shutdownTracing, err := otel.Init(ctx, "rhdocs-gateway", lg)
	if err != nil {
		lg.Fatal("tracing_init_failed", zap.Error(err))
	}

	if cfg.Gateway.JWTSecret == "" {
		lg.Warn("jwt_secret_missing", zap.String("effect", "session tokens are decoded without signature verification and admin capabilities are withheld"))
	}

	client := backend.NewClient(cfg.Gateway.BackendBaseURL, backend.WithTimeout(cfg.Gateway.BackendTimeout))
	h := gateway.NewHandler(client, lg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(reg, "gateway")
	if err != nil {
		lg.Fatal("metrics_init_failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          apierror.ErrorHandler(),
		BodyLimit:             cfg.Gateway.MaxUploadBytes,
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(lg))
	app.Use(metrics.Handler())
	app.Use(middleware.Session(session.NewDecoder(cfg.Gateway.JWTSecret), lg))

	app.Get("/health", gateway.HealthCheck(client))
	app.Get("/healthz", gateway.LivenessProbe())
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
	gateway.RegisterRoutes(app, h)

	go func() {
		lg.Info("server_starting",
			zap.String("addr", ":"+cfg.Gateway.Port),
			zap.String("backend_base_url", client.BaseURL()),
		)
		if err := app.Listen(":" + cfg.Gateway.Port); err != nil {
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
