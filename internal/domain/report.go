package domain

import (
	"errors"
	"time"
)

// ErrNoDataRows is returned when a report has no row matching the data-row
// shape after noise and header removal.
var ErrNoDataRows = errors.New("no data rows found")

// RawReport holds the lines of a report as read by an extractor.
type RawReport struct {
	Source string // file path or request identifier, used for logging
	Lines  []string
}

// Counts is the set of case counters shared by the aggregate and every state.
type Counts struct {
	Confirmed int `json:"confirmed"`
	Recovered int `json:"recovered"`
	Deaths    int `json:"deaths"`
	Active    int `json:"active"`
}

// StateRecord is a single region's row of counts.
type StateRecord struct {
	State string `json:"state"`
	Counts
}

// StatewiseReport is the converted form of a report for one day.
type StatewiseReport struct {
	Day       string        `json:"day"`
	Total     Counts        `json:"total"`
	Statewise []StateRecord `json:"statewise"`
}

// ConversionStats describes how the lines of a report were consumed.
type ConversionStats struct {
	Lines   int  // lines read
	Noise   int  // digit-only lines dropped
	Header  bool // whether a header line was dropped
	Parsed  int  // rows matching the data-row shape, aggregate included
	Skipped int  // rows not matching the data-row shape

	SkippedLines []int // 1-based input line numbers of skipped rows
}

// Envelope is the published form of a report. It mirrors the payload served
// by the statewise API: a success flag, the report tagged with its source,
// and refresh timestamps.
type Envelope struct {
	Success          bool         `json:"success"`
	Data             EnvelopeData `json:"data"`
	LastRefreshed    time.Time    `json:"lastRefreshed"`
	LastOriginUpdate time.Time    `json:"lastOriginUpdate"`
}

// EnvelopeData flattens the report fields next to the source metadata.
type EnvelopeData struct {
	Source        string    `json:"source"`
	LastRefreshed time.Time `json:"lastRefreshed"`
	StatewiseReport
}
