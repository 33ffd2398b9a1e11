// Package stdout writes converted reports as JSON lines.
package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/couchcryptid/statewise-etl/internal/domain"
)

// Writer encodes each report as one line of JSON.
// It implements pipeline.Loader.
type Writer struct {
	w io.Writer
}

// NewWriter creates a Writer on top of w, usually os.Stdout.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Name() string { return "stdout" }

// Load writes the report followed by a newline.
func (w *Writer) Load(_ context.Context, report domain.StatewiseReport) error {
	return Encode(w.w, report)
}

// Encode writes v as a single JSON line. HTML characters are left unescaped
// so region names like "Jammu & Kashmir" read as they do in the source.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
