package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/hazard-analysis-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/hazard-analysis-service/internal/adapter/kafka"
	"github.com/couchcryptid/hazard-analysis-service/internal/adapter/openweather"
	"github.com/couchcryptid/hazard-analysis-service/internal/analysis"
	"github.com/couchcryptid/hazard-analysis-service/internal/catalog"
	"github.com/couchcryptid/hazard-analysis-service/internal/config"
	"github.com/couchcryptid/hazard-analysis-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Tracing, logger)
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	cat, err := catalog.Load()
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}
	logger.Info("catalog loaded", "states", len(cat.States()))

	var opts []analysis.Option

	// Live weather (feature-flagged via WEATHER_ENABLED / OPENWEATHER_API_KEY).
	if cfg.WeatherEnabled {
		client := openweather.NewClient(cfg.WeatherAPIKey, cfg.WeatherBaseURL, cfg.WeatherTimeout, metrics, logger)
		opts = append(opts, analysis.WithWeather(client))
		logger.Info("live weather enabled", "timeout", cfg.WeatherTimeout)
	} else {
		logger.Info("live weather disabled, environmental data is simulated")
	}

	// Analysis events (feature-flagged via ANALYSIS_EVENTS_ENABLED).
	var writer *kafkaadapter.Writer
	if cfg.EventsEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		opts = append(opts, analysis.WithPublisher(writer))
		logger.Info("analysis events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaAnalysisTopic)
	}

	svc := analysis.New(cat, logger, metrics, opts...)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, svc, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	// Fail readiness first so load balancers stop routing here while
	// in-flight requests finish.
	svc.BeginDrain()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := svc.Drain(shutdownCtx); err != nil {
		logger.Error("drain analysis events", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	observability.ShutdownTracing(shutdownCtx, shutdownTracing, logger)

	logger.Info("shutdown complete")
}
