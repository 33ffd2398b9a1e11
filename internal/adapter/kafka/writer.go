package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/statewise-etl/internal/config"
	"github.com/couchcryptid/statewise-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer used by Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes converted reports to a Kafka topic, wrapped in the
// success envelope and keyed by source and day.
// It implements pipeline.Loader.
type Writer struct {
	writer  messageWriter
	brokers []string
	source  string
	logger  *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		WriteTimeout: cfg.KafkaWriteTimeout,
	}
	return &Writer{writer: w, brokers: cfg.KafkaBrokers, source: cfg.ReportSource, logger: logger}
}

func (w *Writer) Name() string { return "kafka" }

// Load publishes a single report.
func (w *Writer) Load(ctx context.Context, report domain.StatewiseReport) error {
	msg, err := serializeToMessage(report, w.source)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write report %s: %w", msg.Key, err)
	}
	w.logger.Debug("report published", "key", string(msg.Key), "states", len(report.Statewise))
	return nil
}

// CheckReadiness dials the first reachable broker.
func (w *Writer) CheckReadiness(ctx context.Context) error {
	var errs []error
	for _, broker := range w.brokers {
		conn, err := kafkago.DialContext(ctx, "tcp", broker)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return conn.Close()
	}
	if len(errs) == 0 {
		return errors.New("no kafka brokers configured")
	}
	return fmt.Errorf("kafka unreachable: %w", errors.Join(errs...))
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage wraps a report in its envelope and marshals it into a
// Kafka message.
func serializeToMessage(report domain.StatewiseReport, source string) (kafkago.Message, error) {
	env := domain.NewEnvelope(report, source)
	data, err := json.Marshal(env)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize statewise report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(domain.StoreKey(source, report.Day)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte(source)},
			{Key: "day", Value: []byte(report.Day)},
			{Key: "processed_at", Value: []byte(env.LastRefreshed.Format(time.RFC3339))},
		},
	}, nil
}
