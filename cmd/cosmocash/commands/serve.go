package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/cosmocash/internal/backend"
	"github.com/mmynk/cosmocash/internal/household"
	"github.com/mmynk/cosmocash/internal/metrics"
	"github.com/mmynk/cosmocash/internal/persist"
)

const shutdownTimeout = 5 * time.Second

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CosmoCash HTTP server",
	Long: `Start the CosmoCash HTTP server. It serves the Connect API for the household,
the ledger and the reports, the CSV and XLSX downloads, Prometheus metrics
and the static web client.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	store, err := backend.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	var writer persist.Writer
	if cfg.AsyncWrites {
		worker := persist.NewWorker(store, persist.WithErrorHandler(m.FlushFailed))
		defer worker.Close()
		writer = worker
	} else {
		writer = persist.NewDirect(store, persist.WithErrorHandler(m.FlushFailed))
	}

	h := household.Open(ctx, store, writer)
	reg.MustRegister(metrics.NewHouseholdCollector(h))

	srv := &http.Server{
		Addr: cfg.Addr(),
		// h2c serves HTTP/2 without TLS for Connect clients
		Handler:           h2c.NewHandler(newRouter(cfg, h, m, reg), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	figure.NewColorFigure("CosmoCash", "puffy", "green", true).Print()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		slog.Info("HTTP server exited gracefully")
		return nil
	})
	return g.Wait()
}
