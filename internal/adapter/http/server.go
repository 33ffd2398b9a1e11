package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/statewise-etl/internal/adapter/file"
	"github.com/couchcryptid/statewise-etl/internal/adapter/stdout"
	"github.com/couchcryptid/statewise-etl/internal/domain"
	"github.com/couchcryptid/statewise-etl/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxReportSize bounds the request body of /convert.
const maxReportSize = 10 << 20

// ReportRunner converts the report produced by an extractor.
type ReportRunner interface {
	Run(ctx context.Context, e pipeline.Extractor, day string) (domain.StatewiseReport, error)
}

// Server exposes the conversion endpoint plus health, readiness, and metrics.
type Server struct {
	httpServer *http.Server
	runner     ReportRunner
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /convert, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, runner ReportRunner, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		runner: runner,
		logger: logger,
	}

	mux.HandleFunc("POST /convert", s.handleConvert)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleConvert converts the report in the request body for the day given
// in the "day" query parameter.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	if day == "" {
		writeError(w, http.StatusBadRequest, "missing day query parameter")
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxReportSize)
	report, err := s.runner.Run(r.Context(), file.NewStreamReader("request", body), day)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "report too large")
		case errors.Is(err, domain.ErrNoDataRows):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			s.logger.Error("convert request failed", "error", err, "day", day)
			writeError(w, http.StatusInternalServerError, "conversion failed")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	stdout.Encode(w, report) //nolint:errcheck // client may have gone away
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}
