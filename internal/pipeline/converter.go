package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/statewise-etl/internal/domain"
)

// ReportConverter implements Converter using the domain conversion and logs
// the rows it had to skip.
type ReportConverter struct {
	logger *slog.Logger
}

// NewConverter creates a ReportConverter.
func NewConverter(logger *slog.Logger) *ReportConverter {
	return &ReportConverter{logger: logger}
}

func (c *ReportConverter) Convert(ctx context.Context, raw domain.RawReport, day string) (domain.StatewiseReport, domain.ConversionStats, error) {
	report, stats, err := domain.Convert(raw.Lines, day)

	for _, n := range stats.SkippedLines {
		c.logger.DebugContext(ctx, "row skipped, unexpected shape",
			"source", raw.Source,
			"line", n,
			"text", raw.Lines[n-1],
		)
	}
	if err != nil {
		c.logger.WarnContext(ctx, "no data rows in report",
			"source", raw.Source,
			"lines", stats.Lines,
			"noise", stats.Noise,
			"skipped", stats.Skipped,
		)
	}

	return report, stats, err
}
