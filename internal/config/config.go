package config

import (
	"errors"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all settings, populated from environment variables.
// Every setting is optional: with no environment the converter only writes
// to stdout.
type Config struct {
	LogLevel        string
	LogFormat       string
	ReportSource    string
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// Kafka publishing is enabled when at least one broker is configured.
	KafkaBrokers      []string
	KafkaTopic        string
	KafkaWriteTimeout time.Duration

	// Metrics push for one-shot runs; disabled when the URL is empty.
	PushgatewayURL string
	PushgatewayJob string
}

// KafkaEnabled reports whether converted reports are published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	writeTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("KAFKA_WRITE_TIMEOUT", "10s"))
	if err != nil || writeTimeout <= 0 {
		return nil, errors.New("invalid KAFKA_WRITE_TIMEOUT")
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		LogLevel:          sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ReportSource:      sharedcfg.EnvOrDefault("REPORT_SOURCE", "covid19india.org"),
		HTTPAddr:          sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout:   shutdownTimeout,
		KafkaBrokers:      brokers,
		KafkaTopic:        sharedcfg.EnvOrDefault("KAFKA_TOPIC", "statewise-reports"),
		KafkaWriteTimeout: writeTimeout,
		PushgatewayURL:    os.Getenv("PUSHGATEWAY_URL"),
		PushgatewayJob:    sharedcfg.EnvOrDefault("PUSHGATEWAY_JOB", "statewise_convert"),
	}

	if cfg.ReportSource == "" {
		return nil, errors.New("REPORT_SOURCE must not be empty")
	}
	if cfg.KafkaEnabled() && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, errors.New("LOG_FORMAT must be json or text")
	}

	return cfg, nil
}
