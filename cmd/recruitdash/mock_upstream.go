package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/newthinker/recruitdash/internal/collector/sample"
	"github.com/newthinker/recruitdash/internal/logger"
	"github.com/newthinker/recruitdash/internal/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mockAddr string

var mockUpstreamCmd = &cobra.Command{
	Use:   "mock-upstream",
	Short: "Serve the sample datasets on the upstream endpoints",
	Long: `mock-upstream serves /data/bar-chart, /data/radar-chart and /data/line-chart
from the embedded sample datasets, for local development without the real
data service.`,
	RunE: runMockUpstream,
}

func init() {
	mockUpstreamCmd.Flags().StringVar(&mockAddr, "addr", "127.0.0.1:8000", "listen address")
	rootCmd.AddCommand(mockUpstreamCmd)
}

func runMockUpstream(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              mockAddr,
		Handler:           metrics.LoggingMiddleware(log)(sample.New().Handler()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("serving sample datasets", zap.String("addr", mockAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mock upstream: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
