// Package file reads report lines from files and streams.
package file

import (
	"bufio"
	"context"
	"fmt"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/statewise-etl/internal/domain"
)

// Reader reads a report from a file path.
// It implements pipeline.Extractor.
type Reader struct {
	path   string
	logger *slog.Logger
}

// NewReader creates a Reader for the report at path.
func NewReader(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// Extract opens the file, reads every line and closes it.
func (r *Reader) Extract(ctx context.Context) (domain.RawReport, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return domain.RawReport{}, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	lines, err := ReadLines(ctx, f)
	if err != nil {
		return domain.RawReport{}, fmt.Errorf("read report %s: %w", r.path, err)
	}
	r.logger.Debug("report read", "path", r.path, "lines", len(lines))

	return domain.RawReport{Source: r.path, Lines: lines}, nil
}

// StreamReader reads a report from an arbitrary stream, such as a request body.
// It implements pipeline.Extractor.
type StreamReader struct {
	source string
	r      io.Reader
}

// NewStreamReader creates a StreamReader. The source name is only used to
// label the resulting RawReport.
func NewStreamReader(source string, r io.Reader) *StreamReader {
	return &StreamReader{source: source, r: r}
}

func (s *StreamReader) Extract(ctx context.Context) (domain.RawReport, error) {
	lines, err := ReadLines(ctx, s.r)
	if err != nil {
		return domain.RawReport{}, fmt.Errorf("read report %s: %w", s.source, err)
	}
	return domain.RawReport{Source: s.source, Lines: lines}, nil
}

// ReadLines returns the lines of r without their line terminators ("\n" or
// "\r\n"). A final line without terminator is included. Lines have no length
// limit; PDF-to-text dumps can flatten a whole table into one line.
func ReadLines(ctx context.Context, r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)

	var lines []string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
