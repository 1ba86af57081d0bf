package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docoutline/internal/api"
	"github.com/dgallion1/docoutline/internal/cache"
	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/logging"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/dgallion1/docoutline/internal/pipeline"
	"github.com/dgallion1/docoutline/internal/stats"
	"github.com/spf13/cobra"
)

func newLogger(cfg config.Config) (*slog.Logger, io.Closer) {
	return logging.New(cfg)
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, closer := newLogger(cfg)
			defer closer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			proc := pipeline.NewProcessor(
				parser.Options{LinesPerPage: cfg.LinesPerPage},
				cache.New(cfg.ResultCacheTTL),
				stats.NewTracker(cfg.StatsWindow),
			)
			orch := pipeline.NewOrchestrator(cfg, proc, log)
			orch.Start(ctx)

			httpServer := &http.Server{
				Addr:         ":" + cfg.Port,
				Handler:      api.NewServer(orch, log, cfg),
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 120 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			// Graceful shutdown. Handlers drain before the worker pool stops so
			// no submit races the closed queue.
			drained := make(chan struct{})
			go func() {
				defer close(drained)
				<-ctx.Done()
				log.Info("shutting down...")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				httpServer.Shutdown(shutdownCtx)
			}()

			log.Info("starting docoutline", "port", cfg.Port, "workers", cfg.WorkerCount, "auth", cfg.APIKey != "")
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("server error", "error", err)
				stop()
				<-drained
				orch.Stop()
				return err
			}
			<-drained
			orch.Stop()
			return nil
		},
	}
	cmd.Flags().StringP("port", "p", "", "Listen port (overrides PORT)")
	return cmd
}
