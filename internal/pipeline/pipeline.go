package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/statewise-etl/internal/domain"
	"github.com/couchcryptid/statewise-etl/internal/observability"
)

// Extractor reads the lines of one report from its source.
type Extractor interface {
	Extract(ctx context.Context) (domain.RawReport, error)
}

// Converter turns raw report lines into a statewise report for a day.
type Converter interface {
	Convert(ctx context.Context, raw domain.RawReport, day string) (domain.StatewiseReport, domain.ConversionStats, error)
}

// Loader writes a converted report to a destination.
type Loader interface {
	Name() string
	Load(ctx context.Context, report domain.StatewiseReport) error
}

// Pipeline runs a single extract-convert-load pass per report.
type Pipeline struct {
	converter Converter
	loaders   []Loader
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline. Loaders run in order; the first failure stops the run.
func New(c Converter, loaders []Loader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		converter: c,
		loaders:   loaders,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run extracts a report from e, converts it for day and hands the result to
// every loader. It returns the converted report so callers can reuse it.
func (p *Pipeline) Run(ctx context.Context, e Extractor, day string) (domain.StatewiseReport, error) {
	start := time.Now()

	raw, err := e.Extract(ctx)
	if err != nil {
		p.metrics.ConversionErrors.WithLabelValues("extract").Inc()
		return domain.StatewiseReport{}, err
	}
	p.metrics.LinesRead.Add(float64(len(raw.Lines)))

	report, stats, err := p.converter.Convert(ctx, raw, day)
	p.recordStats(stats)
	if err != nil {
		p.metrics.ConversionErrors.WithLabelValues("convert").Inc()
		return domain.StatewiseReport{}, err
	}

	for _, l := range p.loaders {
		if err := l.Load(ctx, report); err != nil {
			p.metrics.LoadErrors.WithLabelValues(l.Name()).Inc()
			p.metrics.ConversionErrors.WithLabelValues("load").Inc()
			return report, fmt.Errorf("load %s: %w", l.Name(), err)
		}
		p.metrics.ReportsLoaded.WithLabelValues(l.Name()).Inc()
	}

	p.metrics.ReportsConverted.Inc()
	p.metrics.ConversionDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("report converted",
		"source", raw.Source,
		"day", day,
		"states", len(report.Statewise),
		"skipped", stats.Skipped,
		"noise", stats.Noise,
	)
	return report, nil
}

func (p *Pipeline) recordStats(stats domain.ConversionStats) {
	p.metrics.NoiseLines.Add(float64(stats.Noise))
	p.metrics.RowsParsed.Add(float64(stats.Parsed))
	p.metrics.RowsSkipped.Add(float64(stats.Skipped))
}
