package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/fars-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/fars-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/fars-dashboard/internal/adapter/mapbox"
	"github.com/couchcryptid/fars-dashboard/internal/adapter/source"
	"github.com/couchcryptid/fars-dashboard/internal/config"
	"github.com/couchcryptid/fars-dashboard/internal/domain"
	"github.com/couchcryptid/fars-dashboard/internal/observability"
	"github.com/couchcryptid/fars-dashboard/internal/pipeline"
	"github.com/couchcryptid/fars-dashboard/internal/presentation"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	// The cache outlives a single load, so reloads reuse resolved centroids.
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		cached, err := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		if err != nil {
			logger.Error("failed to create geocode cache", "error", err)
			return 1
		}
		geocoder = cached
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	var sinks []pipeline.Loader
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		sinks = append(sinks, writer)
		logger.Info("kafka sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	}

	loader := source.NewLoader(cfg, logger, metrics)
	transformer := pipeline.NewTransformer(cfg.DatasetYear, cfg.InvalidNumberPolicy, geocoder, logger, metrics)
	p := pipeline.New(loader, transformer, logger, metrics, sinks...)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Load the datasets; a failed first load leaves nothing to show.
	loadErr := make(chan error, 1)
	go func() {
		res, err := p.Run(ctx)
		if err == nil {
			err = install(srv, res)
		}
		if err != nil {
			loadErr <- err
			return
		}
		logger.Info("dashboard ready", "states", res.Dataset.Len(), "addr", cfg.HTTPAddr)

		if cfg.ReloadInterval > 0 {
			logger.Info("dataset reload enabled", "interval", cfg.ReloadInterval)
			p.Watch(ctx, cfg.ReloadInterval, func(res pipeline.Result) {
				if err := install(srv, res); err != nil {
					logger.Warn("reloaded dataset rejected, keeping previous dashboard", "error", err)
					return
				}
				logger.Info("dashboard reloaded", "states", res.Dataset.Len())
			})
		}
	}()

	code := 0
	select {
	case <-ctx.Done():
	case err := <-loadErr:
		if ctx.Err() == nil {
			logger.Error("dataset load failed", "error", err)
			code = 1
		}
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
	return code
}

// install renders a pipeline result and makes it the served dashboard.
// A new dashboard starts at the whole-country selection.
func install(srv *httpadapter.Server, res pipeline.Result) error {
	dash, err := presentation.Render(res.Dataset, res.Geography, presentation.DefaultLayout())
	if err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	srv.SetDashboard(dash)
	return nil
}
