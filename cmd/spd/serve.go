package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/groblegark/seasonplan/internal/config"
	"github.com/groblegark/seasonplan/internal/events"
	"github.com/groblegark/seasonplan/internal/server"
	"github.com/groblegark/seasonplan/internal/store"
	"github.com/groblegark/seasonplan/internal/store/postgres"
	plansync "github.com/groblegark/seasonplan/internal/sync"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the seasonplan server",
	// Override PersistentPreRunE so we don't create an HTTP client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		st, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}

		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				st.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (SEASONPLAN_NATS_URL not set)")
		}

		planServer := server.NewPlanServer(st, publisher)
		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: planServer.NewHTTPHandler(cfg.AuthToken),
		}
		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		scheduler := startSyncScheduler(cfg, st, logger)

		logger.Info("seasonplan server started", "http_addr", cfg.HTTPAddr)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		if scheduler != nil {
			scheduler.Stop()
			logger.Info("sync scheduler stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := st.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}

// startSyncScheduler wires the configured export destinations and starts
// the periodic sync. Returns nil when syncing is disabled or no
// destination is configured.
func startSyncScheduler(cfg *config.Config, st store.Store, logger *slog.Logger) *plansync.Scheduler {
	if cfg.SyncInterval <= 0 {
		return nil
	}

	var dests []plansync.Destination
	if cfg.SyncS3Bucket != "" {
		s3Dest, err := plansync.NewS3Destination(
			context.Background(),
			cfg.SyncS3Bucket,
			cfg.SyncS3Key,
			cfg.SyncS3Region,
			cfg.SyncS3Endpoint,
		)
		if err != nil {
			logger.Error("failed to create S3 sync destination", "err", err)
		} else {
			dests = append(dests, s3Dest)
			logger.Info("sync S3 destination enabled", "bucket", cfg.SyncS3Bucket, "key", cfg.SyncS3Key)
		}
	}
	if cfg.SyncGitRepo != "" {
		dests = append(dests, plansync.NewGitDestination(cfg.SyncGitRepo, cfg.SyncGitFile, cfg.SyncGitBranch))
		logger.Info("sync git destination enabled", "repo", cfg.SyncGitRepo, "file", cfg.SyncGitFile)
	}
	if len(dests) == 0 {
		return nil
	}

	scheduler := plansync.NewScheduler(st, dests, cfg.SyncInterval, logger)
	scheduler.Start()
	logger.Info("sync scheduler started", "interval", cfg.SyncInterval)
	return scheduler
}
