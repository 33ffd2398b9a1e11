// Command statewise-api serves report conversion over HTTP.
//
//	curl --data-binary @report.txt 'localhost:8080/convert?day=2020-04-01'
//
// Converted reports are also published to Kafka when KAFKA_BROKERS is set.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/statewise-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/statewise-etl/internal/adapter/kafka"
	"github.com/couchcryptid/statewise-etl/internal/config"
	"github.com/couchcryptid/statewise-etl/internal/observability"
	"github.com/couchcryptid/statewise-etl/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// noDependencies is ready as soon as the server is up.
type noDependencies struct{}

func (noDependencies) CheckReadiness(context.Context) error { return nil }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	var (
		loaders []pipeline.Loader
		ready   sharedobs.ReadinessChecker = noDependencies{}
		writer  *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled() {
		writer = kafkaadapter.NewWriter(cfg, logger)
		loaders = append(loaders, writer)
		ready = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	p := pipeline.New(pipeline.NewConverter(logger), loaders, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, ready, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
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
}
