// Command statewise converts a plain-text statewise case-count report into a
// single line of JSON on stdout.
//
// Usage:
//
//	statewise <report-path> <day>
//
// The day label is copied into the output as-is. Setting KAFKA_BROKERS also
// publishes the report to Kafka; setting PUSHGATEWAY_URL pushes run metrics.
// Logs are written to stderr.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/statewise-etl/internal/adapter/file"
	kafkaadapter "github.com/couchcryptid/statewise-etl/internal/adapter/kafka"
	"github.com/couchcryptid/statewise-etl/internal/adapter/stdout"
	"github.com/couchcryptid/statewise-etl/internal/config"
	"github.com/couchcryptid/statewise-etl/internal/observability"
	"github.com/couchcryptid/statewise-etl/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus"
)

const usage = "usage: statewise <report-path> <day>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, usage)
		return 2
	}
	path, day := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loaders := []pipeline.Loader{stdout.NewWriter(out)}
	if cfg.KafkaEnabled() {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		loaders = append(loaders, writer)
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic)
	}

	p := pipeline.New(pipeline.NewConverter(logger), loaders, logger, metrics)
	_, runErr := p.Run(ctx, file.NewReader(path, logger), day)
	if runErr != nil {
		logger.Error("conversion failed", "path", path, "day", day, "error", runErr)
	}

	if cfg.PushgatewayURL != "" {
		pushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := observability.Push(pushCtx, cfg.PushgatewayURL, cfg.PushgatewayJob, prometheus.DefaultGatherer); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
	}

	if runErr != nil {
		return 1
	}
	return 0
}
