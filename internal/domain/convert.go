package domain

import (
	"fmt"
	"strings"
)

// Convert turns the lines of a report into a StatewiseReport for the given
// day label. The day is opaque and copied as-is.
//
// Lines are trimmed, digit-only lines are dropped, then the first remaining
// line is dropped as the header. Every other line is parsed with ParseLine;
// non-matching lines are skipped and their 1-based input line numbers are
// recorded in the returned stats. The first parsed row becomes the total.
//
// It returns ErrNoDataRows when no row parses.
func Convert(lines []string, day string) (StatewiseReport, ConversionStats, error) {
	stats := ConversionStats{Lines: len(lines)}
	records := make([]StateRecord, 0, len(lines))

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if IsNoiseLine(line) {
			stats.Noise++
			continue
		}
		if !stats.Header {
			stats.Header = true
			continue
		}

		rec, ok := ParseLine(line)
		if !ok {
			stats.Skipped++
			stats.SkippedLines = append(stats.SkippedLines, i+1)
			continue
		}
		stats.Parsed++
		records = append(records, rec)
	}

	if len(records) == 0 {
		return StatewiseReport{}, stats, fmt.Errorf("convert report for %q: %w", day, ErrNoDataRows)
	}

	return StatewiseReport{
		Day:       day,
		Total:     records[0].Counts,
		Statewise: records[1:],
	}, stats, nil
}

// NewEnvelope wraps a report for publishing. Both refresh timestamps are set
// to the current time of the package clock, in UTC.
func NewEnvelope(report StatewiseReport, source string) Envelope {
	now := clock.Now().UTC()
	return Envelope{
		Success: true,
		Data: EnvelopeData{
			Source:          source,
			LastRefreshed:   now,
			StatewiseReport: report,
		},
		LastRefreshed:    now,
		LastOriginUpdate: now,
	}
}

// StoreKey is the key under which a day's statewise report for a source is
// published, e.g. "cached_unofficial_src_covid19india.org_statewise/2020-04-01".
func StoreKey(source, day string) string {
	return "cached_unofficial_src_" + source + "_statewise/" + day
}
