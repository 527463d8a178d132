package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/newthinker/recruitdash/internal/api"
	"github.com/newthinker/recruitdash/internal/export"
	"github.com/newthinker/recruitdash/internal/logger"
	"github.com/newthinker/recruitdash/internal/metrics"
	"github.com/newthinker/recruitdash/internal/storage/archive"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
	}

	dash, cleanup, err := newApp(ctx, cfg, reg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	// Export storage is optional for serving; the render routes work without it.
	store, err := archive.New(cfg.Export)
	if err != nil {
		log.Warn("export storage unavailable", zap.Error(err))
		store = nil
	}

	server, err := api.NewServer(api.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		APIKey:       cfg.Server.APIKey,
		TemplatesDir: cfg.Server.TemplatesDir,
		Title:        cfg.Dashboard.Title,
		MetricsPath:  cfg.Metrics.Path,
		RateLimit:    cfg.RateLimit.RequestsPerMinute,
	}, api.Dependencies{
		App:      dash,
		Exporter: export.NewExporter(store, reg, log),
		Metrics:  reg,
	}, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	log.Info("starting recruitdash",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Duration("refresh_interval", cfg.Dashboard.RefreshInterval),
	)

	go func() {
		if err := dash.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("refresh loop error", zap.Error(err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	log.Info("shutting down recruitdash")
	dash.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
