package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"bikeshare-dashboard/internal/config"
	"bikeshare-dashboard/internal/middleware"
	"bikeshare-dashboard/internal/observability"
	"bikeshare-dashboard/internal/server"
	"bikeshare-dashboard/internal/services"
)

// newHandler wires the router and the middleware chain.
func newHandler(cfg *config.Config, analytics *services.Analytics, metrics *observability.Metrics, logger *slog.Logger) http.Handler {
	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	return server.NewServer(analytics, logger, server.Options{
		DefaultVariant: cfg.Data.DefaultVariant,
		Metrics:        metrics,
		Middleware: []middleware.Middleware{
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.Logger(logger),
			middleware.Tracing(),
			middleware.Metrics(metrics),
			middleware.SecurityHeaders(),
			middleware.CORS(cfg.Security),
			middleware.TrustedProxy(cfg.Security),
			middleware.RateLimit(rateLimiter, logger),
		},
	})
}

func newMetrics() *observability.Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return observability.NewMetrics(reg)
}

// loadData performs the initial load. A failure is logged and the server
// still starts, showing the failure on every page until the file is fixed.
func loadData(cfg *config.Config, analytics *services.Analytics, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Data.LoadTimeout)
	defer cancel()

	if err := analytics.LoadFromCSV(ctx, cfg.Data.CSVFile); err != nil {
		logger.Error("failed to load CSV data", "error", err)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"config", cfg,
	)

	shutdownTracing, err := observability.SetupTracing(cfg.Tracing, os.Stdout)
	if err != nil {
		logger.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}

	metrics := newMetrics()
	analytics := services.NewAnalytics(
		services.WithLogger(logger),
		services.WithMetrics(metrics),
	)
	loadData(cfg, analytics, logger)

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if cfg.Data.Watch {
		go func() {
			if err := analytics.Watch(watchCtx, cfg.Data.WatchDebounce); err != nil {
				logger.Warn("data file watcher stopped", "error", err)
			}
		}()
	}

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      newHandler(cfg, analytics, metrics, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("stopping data file watcher")
		stopWatch()
		return nil
	})
	gracefulServer.RegisterShutdownHook(shutdownTracing)

	logger.Info("starting graceful server")
	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
