package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/spetersoncode/relay/config"
	"github.com/spetersoncode/relay/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the relay HTTP API.

Endpoints:
  GET    /                         liveness message
  GET    /health                   health check
  POST   /ask                      {"prompt", "model", "conversation_id"}
  POST   /compare                  {"message", "models", "conversation_id"}
  GET    /conversations            conversation summaries
  DELETE /conversations/{id}       delete one conversation
  POST   /cleanup?days_old=N       delete conversations older than N days

Conversations older than RELAY_RETENTION_DAYS are removed on
RELAY_CLEANUP_SCHEDULE (default @daily). A retention of 0 disables the job.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "8000", "listen port")
	_ = v.BindPFlag(config.KeyPort, serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler, err := startCleanup(ctx, a.store, a.cfg, a.logger)
	if err != nil {
		return err
	}
	if scheduler != nil {
		defer func() { <-scheduler.Stop().Done() }()
	}

	server := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           NewHandler(a.router, a.comparer, a.store, a.cfg.AllowedOrigins, a.logger),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("relay server starting", "addr", server.Addr, "origins", a.cfg.AllowedOrigins)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	a.logger.Info("server stopped")
	return nil
}

// startCleanup schedules the retention job. It returns nil when retention is disabled.
func startCleanup(ctx context.Context, st store.Store, cfg *config.Config, logger *slog.Logger) (*cron.Cron, error) {
	if cfg.RetentionDays == 0 {
		logger.Info("retention cleanup disabled")
		return nil, nil
	}

	log := logger.With("component", "cleanup")
	c := cron.New()
	_, err := c.AddFunc(cfg.CleanupSchedule, func() {
		n, err := st.Cleanup(ctx, cfg.Retention())
		if err != nil {
			log.Error("retention cleanup failed", "error", err)
			return
		}
		log.Info("retention cleanup complete", "deleted", n, "retention_days", cfg.RetentionDays)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cleanup schedule %q: %w", cfg.CleanupSchedule, err)
	}

	c.Start()
	log.Info("retention cleanup scheduled", "schedule", cfg.CleanupSchedule, "retention_days", cfg.RetentionDays)
	return c, nil
}
