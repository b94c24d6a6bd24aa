package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/p0wz/goalsniperai-sub000/internal/config"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/logging"
)

// NewDiagnosticsHandler serves pprof under /debug/pprof/ and the given
// registry under /metrics.
func NewDiagnosticsHandler(registry *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	if registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	}

	return otelhttp.NewHandler(mux, "goalsniper-diagnostics",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return !strings.HasPrefix(r.URL.Path, "/debug/pprof/")
		}),
	)
}

// StartDiagnosticsServer serves NewDiagnosticsHandler on DIAGNOSTICS_ADDR
// in the background. It returns nil when diagnostics are disabled.
func StartDiagnosticsServer(cfg config.Config, registry *prometheus.Registry, logger *logging.Logger) *http.Server {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.DiagnosticsEnabled {
		logger.Info("diagnostics server disabled", "reason", "DIAGNOSTICS_ENABLED=false")
		return nil
	}

	srv := &http.Server{
		Addr:              cfg.DiagnosticsAddr,
		Handler:           NewDiagnosticsHandler(registry),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("diagnostics server starting", "addr", cfg.DiagnosticsAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("diagnostics server failed", "error", err)
		}
	}()

	return srv
}

func StopDiagnosticsServer(srv *http.Server, logger *logging.Logger, timeout time.Duration) error {
	if srv == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("diagnostics server stopped")

	return nil
}
