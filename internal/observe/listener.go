package observe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Listener serves the local observability endpoints: Prometheus metrics
// under /metrics plus whatever routes the caller registers (health probes).
type Listener struct {
	srv *http.Server
	ln  net.Listener
}

// NewListener binds addr and starts serving in a background goroutine. The
// OTel Prometheus bridge installed by [InitProvider] feeds the default
// registry that /metrics exposes. register, when non-nil, is called with the
// mux so callers can attach additional routes.
func NewListener(addr string, m *Metrics, register func(mux *http.ServeMux)) (*Listener, error) {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	if register != nil {
		register(mux)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("observe: listen %q: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           Instrument(m, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	l := &Listener{srv: srv, ln: ln}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("observe: metrics listener failed", "addr", addr, "err", err)
		}
	}()
	slog.Info("observe: metrics listener started", "addr", ln.Addr().String())
	return l, nil
}

// Addr returns the bound address, useful when addr was ":0".
func (l *Listener) Addr() string {
	return l.ln.Addr().String()
}

// Shutdown gracefully stops the listener.
func (l *Listener) Shutdown(ctx context.Context) error {
	return l.srv.Shutdown(ctx)
}

// Instrument wraps next so that every request records its latency to
// [Metrics.HTTPRequestDuration] and logs its completion.
func Instrument(m *Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		m.HTTPRequestDuration.Record(r.Context(), duration.Seconds(),
			metric.WithAttributes(
				attribute.String("method", r.Method),
				attribute.String("path", r.URL.Path),
			),
		)
		slog.LogAttrs(r.Context(), slog.LevelDebug, "observe: request completed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.statusCode),
			slog.Duration("duration", duration),
		)
	})
}

// statusRecorder wraps [http.ResponseWriter] to capture the status code
// written by the downstream handler.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code and delegates to the wrapped writer.
func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}
