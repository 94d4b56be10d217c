package commands

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/cosmocash/internal/config"
	"github.com/mmynk/cosmocash/internal/household"
	"github.com/mmynk/cosmocash/internal/metrics"
	"github.com/mmynk/cosmocash/internal/middleware"
	"github.com/mmynk/cosmocash/internal/service"
)

// newRouter wires the Connect services, downloads, metrics and the static
// client into one handler.
func newRouter(cfg *config.Config, h *household.Household, m *metrics.Metrics, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(loggingMiddleware)
	r.Use(corsMiddleware)

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(h),
		middleware.MetricsInterceptor(m),
	)
	mount := func(path string, handler http.Handler) {
		r.Handle(path+"*", handler)
	}
	mount(service.NewHouseholdServiceHandler(service.NewHouseholdService(h), interceptors))
	mount(service.NewLedgerServiceHandler(service.NewLedgerService(h), interceptors))
	mount(service.NewReportServiceHandler(service.NewReportService(h), interceptors))

	export := service.NewExportHandler(h)
	r.Route("/export", func(r chi.Router) {
		r.Get("/expenses.csv", export.CSV)
		r.Get("/expenses.xlsx", export.XLSX)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})

	if cfg.Metrics {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	}

	r.NotFound(staticHandler(cfg.StaticPath))
	return r
}

// staticHandler serves the web client. Unknown paths fall back to
// index.html so client-side routes resolve.
func staticHandler(staticPath string) http.HandlerFunc {
	staticDir, err := filepath.Abs(staticPath)
	if err != nil {
		staticDir = staticPath
	}
	slog.Info("Serving static files", "path", staticDir)

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		// Connect procedures that did not match a registered service
		if strings.HasPrefix(r.URL.Path, "/cosmocash.v1.") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}
		filePath := filepath.Join(staticDir, filepath.Clean("/"+urlPath))

		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			index := filepath.Join(staticDir, "index.html")
			if _, err := os.Stat(index); err != nil {
				http.NotFound(w, r)
				return
			}
			http.ServeFile(w, r, index)
			return
		}
		http.ServeFile(w, r, filePath)
	}
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		slog.Debug("Request completed",
			"request_id", chimiddleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware lets a separately served view call the RPCs and read the
// export filename and request id.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms, "+chimiddleware.RequestIDHeader)
		h.Set("Access-Control-Expose-Headers", "Content-Disposition, "+chimiddleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
