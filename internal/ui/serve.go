package ui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/abastecimentos/internal/export"
	"github.com/javiermolinar/abastecimentos/internal/logger"
	"github.com/javiermolinar/abastecimentos/internal/scheduler"
	"github.com/javiermolinar/abastecimentos/internal/server"
	"github.com/javiermolinar/abastecimentos/internal/supply"
)

// shutdownTimeout bounds the graceful shutdown of serve.
const shutdownTimeout = 10 * time.Second

func (a *App) serveCmd() *cobra.Command {
	var (
		addr     string
		schedule string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the history API from the local store",
		Long: `Serve the supply history API from the local SQLite store.

Exposes GET /abastecimentos/historico, GET /produtos and GET /healthz.
When a schedule is configured, a CSV snapshot of the first page is
written to the export directory on every run.`,
		Example: `  abastecimentos serve
  abastecimentos serve --addr=:9090 --schedule="0 6 * * *"`,
		RunE: func(_ *cobra.Command, _ []string) error {
			base, err := logger.New()
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer func() { _ = base.Sync() }()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.serve(ctx, addr, schedule, base)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", a.config.Server.Addr, "Listen address")
	cmd.Flags().StringVar(&schedule, "schedule", a.config.Export.Schedule, "Cron schedule for CSV snapshots (empty disables)")

	return cmd
}

// serve runs the HTTP server, and the snapshot scheduler when schedule is
// set, until ctx is cancelled.
func (a *App) serve(ctx context.Context, addr, schedule string, base *zap.Logger) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}

	if schedule != "" {
		loc, err := a.location()
		if err != nil {
			return err
		}
		sink := export.NewFileSink(a.config.Export.Dir, false, export.WithLogger(logger.Named(base, "export")))
		params := supply.NewFilter(a.config.History.PageSize, a.config.Sort()).Params()
		sched, err := scheduler.New(schedule, store, sink, params, loc, logger.Named(base, "scheduler"))
		if err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
	}

	handler := server.NewHistoryHandler(store, logger.Named(base, "handlers.history"))
	engine := server.NewRouter(handler, logger.Named(base, "router"))
	srv := server.NewHTTPServer(addr, engine)

	errCh := make(chan error, 1)
	go func() {
		base.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	base.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		base.Error("graceful shutdown failed", zap.Error(err))
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
