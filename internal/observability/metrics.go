package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for report conversion.
type Metrics struct {
	LinesRead          prometheus.Counter
	NoiseLines         prometheus.Counter
	RowsParsed         prometheus.Counter
	RowsSkipped        prometheus.Counter
	ReportsConverted   prometheus.Counter
	ConversionErrors   *prometheus.CounterVec // labels: stage={extract,convert,load}
	ConversionDuration prometheus.Histogram

	// Sink metrics.
	ReportsLoaded *prometheus.CounterVec // labels: sink={stdout,kafka}
	LoadErrors    *prometheus.CounterVec // labels: sink={stdout,kafka}
}

// NewMetrics creates and registers all conversion metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.LinesRead,
		m.NoiseLines,
		m.RowsParsed,
		m.RowsSkipped,
		m.ReportsConverted,
		m.ConversionErrors,
		m.ConversionDuration,
		m.ReportsLoaded,
		m.LoadErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		LinesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "statewise_etl",
			Name:      "lines_read_total",
			Help:      "Total report lines read.",
		}),
		NoiseLines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "statewise_etl",
			Name:      "noise_lines_total",
			Help:      "Digit-only lines dropped as page numbers or footers.",
		}),
		RowsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "statewise_etl",
			Name:      "rows_parsed_total",
			Help:      "Rows matching the data-row shape, aggregate rows included.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "statewise_etl",
			Name:      "rows_skipped_total",
			Help:      "Rows skipped because they did not match the data-row shape.",
		}),
		ReportsConverted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "statewise_etl",
			Name:      "reports_converted_total",
			Help:      "Reports converted and delivered to every sink.",
		}),
		ConversionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "statewise_etl",
			Name:      "conversion_errors_total",
			Help:      "Failed conversions by pipeline stage.",
		}, []string{"stage"}),
		ConversionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "statewise_etl",
			Name:      "conversion_duration_seconds",
			Help:      "Duration of a complete extract-convert-load run.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		ReportsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "statewise_etl",
			Name:      "reports_loaded_total",
			Help:      "Reports written by sink.",
		}, []string{"sink"}),
		LoadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "statewise_etl",
			Name:      "load_errors_total",
			Help:      "Sink write failures by sink.",
		}, []string{"sink"}),
	}
}
