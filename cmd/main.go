package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/taproom/internal/api"
	"github.com/UnknownOlympus/taproom/internal/catalog"
	"github.com/UnknownOlympus/taproom/internal/config"
	"github.com/UnknownOlympus/taproom/internal/metrics"
	"github.com/UnknownOlympus/taproom/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	provider, err := catalog.NewProvider(catalog.ProviderConfig{
		Type:      catalog.ProviderType(cfg.Catalog.ProviderType),
		BaseURL:   cfg.Catalog.BaseURL,
		Timeout:   cfg.Catalog.Timeout,
		RateLimit: cfg.Catalog.RateLimit,
		DataFile:  cfg.Catalog.StaticFile,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create catalog provider: %v", err)
	}

	logger.InfoContext(ctx, "Catalog provider initialized", "type", cfg.Catalog.ProviderType)

	breweries := service.NewBreweryService(logger, provider, cfg.Catalog.ProviderType, appMetrics)
	router := api.NewRouter(logger, breweries, cfg.AllowedOrigins, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	if err = runServer(ctx, logger, router, cfg.Port); err != nil {
		logger.ErrorContext(ctx, "API server failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// runServer serves handler on port until ctx is canceled, then shuts the server down.
func runServer(ctx context.Context, log *slog.Logger, handler http.Handler, port int) error {
	const (
		readTimeout     = 5 * time.Second
		writeTimeout    = 30 * time.Second
		shutdownTimeout = 10 * time.Second
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "Starting API server", "port", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down API server: %w", err)
	}

	return nil
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
