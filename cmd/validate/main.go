// Command validate performs data integrity checks on a converted statewise
// report against the text report it came from. It verifies row parity with a
// fresh conversion, field integrity, and the arithmetic relations between
// the aggregate row and the state rows.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -report data/mohfw_20200401.txt \
//	  -json data/statewise_20200401.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/statewise-etl/internal/adapter/file"
	"github.com/couchcryptid/statewise-etl/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	reportPath := flag.String("report", "", "path to the source text report")
	jsonPath := flag.String("json", "", "path to the converted JSON report")
	flag.Parse()

	if *reportPath == "" || *jsonPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*reportPath, *jsonPath, os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

func run(reportPath, jsonPath string, out, errOut io.Writer) int {
	fmt.Fprintln(out, "=== Statewise Report Integrity Validation ===")
	fmt.Fprintln(out)

	converted, err := loadConverted(jsonPath)
	if err != nil {
		fmt.Fprintf(errOut, "FATAL: load converted JSON: %v\n", err)
		return 1
	}

	f, err := os.Open(reportPath)
	if err != nil {
		fmt.Fprintf(errOut, "FATAL: open report: %v\n", err)
		return 1
	}
	defer f.Close()

	lines, err := file.ReadLines(context.Background(), f)
	if err != nil {
		fmt.Fprintf(errOut, "FATAL: read report: %v\n", err)
		return 1
	}

	expected, stats, err := domain.Convert(lines, converted.Day)
	if err != nil {
		fmt.Fprintf(errOut, "FATAL: convert report: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateRowParity(converted, expected),
		validateFieldIntegrity(converted),
		validateTotalConsistency(converted),
		validateActiveConsistency(converted),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Lines: %d read, %d noise, %d parsed, %d skipped; %d states in JSON\n",
		stats.Lines, stats.Noise, stats.Parsed, stats.Skipped, len(converted.Statewise))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func loadConverted(path string) (domain.StatewiseReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.StatewiseReport{}, err
	}
	var report domain.StatewiseReport
	if err := json.Unmarshal(data, &report); err != nil {
		return domain.StatewiseReport{}, err
	}
	return report, nil
}

// ── Phase 1: Row Parity ──
// The JSON must match a fresh conversion of the text report row for row.

func validateRowParity(converted, expected domain.StatewiseReport) *phase {
	p := &phase{name: "Phase 1: Row Parity (JSON vs report)"}

	if converted.Total != expected.Total {
		p.errorf("total: expected %+v, got %+v", expected.Total, converted.Total)
	}
	if len(converted.Statewise) != len(expected.Statewise) {
		p.errorf("state count: expected %d, got %d", len(expected.Statewise), len(converted.Statewise))
		return p
	}
	for i := range expected.Statewise {
		if converted.Statewise[i] != expected.Statewise[i] {
			p.errorf("row %d: expected %+v, got %+v", i+1, expected.Statewise[i], converted.Statewise[i])
		}
	}
	return p
}

// ── Phase 2: Field Integrity ──

func validateFieldIntegrity(r domain.StatewiseReport) *phase {
	p := &phase{name: "Phase 2: Field Integrity"}

	if r.Day == "" {
		p.errorf("day: missing")
	}
	checkNonNegative(p, "total", r.Total)

	seen := make(map[string]int, len(r.Statewise))
	for i, s := range r.Statewise {
		if s.State == "" {
			p.errorf("row %d: missing state name", i+1)
		} else if prev, ok := seen[s.State]; ok {
			p.errorf("row %d: state %q already listed at row %d", i+1, s.State, prev)
		} else {
			seen[s.State] = i + 1
		}
		checkNonNegative(p, fmt.Sprintf("row %d (%s)", i+1, s.State), s.Counts)
	}
	return p
}

func checkNonNegative(p *phase, label string, c domain.Counts) {
	fields := []struct {
		name  string
		value int
	}{
		{"confirmed", c.Confirmed},
		{"recovered", c.Recovered},
		{"deaths", c.Deaths},
		{"active", c.Active},
	}
	for _, f := range fields {
		if f.value < 0 {
			p.errorf("%s: negative %s %d", label, f.name, f.value)
		}
	}
}

// ── Phase 3: Total Consistency ──
// The aggregate row should equal the sum of the state rows.

func validateTotalConsistency(r domain.StatewiseReport) *phase {
	p := &phase{name: "Phase 3: Total Consistency"}

	var sum domain.Counts
	for _, s := range r.Statewise {
		sum.Confirmed += s.Confirmed
		sum.Recovered += s.Recovered
		sum.Deaths += s.Deaths
		sum.Active += s.Active
	}

	if sum.Confirmed != r.Total.Confirmed {
		p.errorf("confirmed: total %d, sum of states %d", r.Total.Confirmed, sum.Confirmed)
	}
	if sum.Recovered != r.Total.Recovered {
		p.errorf("recovered: total %d, sum of states %d", r.Total.Recovered, sum.Recovered)
	}
	if sum.Deaths != r.Total.Deaths {
		p.errorf("deaths: total %d, sum of states %d", r.Total.Deaths, sum.Deaths)
	}
	// Reports without an active column leave every active count at 0.
	if r.Total.Active != 0 && sum.Active != r.Total.Active {
		p.errorf("active: total %d, sum of states %d", r.Total.Active, sum.Active)
	}
	return p
}

// ── Phase 4: Active Consistency ──
// Where present, active = confirmed - recovered - deaths.

func validateActiveConsistency(r domain.StatewiseReport) *phase {
	p := &phase{name: "Phase 4: Active Consistency"}

	check := func(label string, c domain.Counts) {
		if c.Active == 0 {
			return
		}
		if want := c.Confirmed - c.Recovered - c.Deaths; c.Active != want {
			p.errorf("%s: active %d, expected %d", label, c.Active, want)
		}
	}

	check("total", r.Total)
	for i, s := range r.Statewise {
		check(fmt.Sprintf("row %d (%s)", i+1, s.State), s.Counts)
	}
	return p
}
