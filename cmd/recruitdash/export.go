package main

import (
	"context"
	"fmt"
	"time"

	"github.com/newthinker/recruitdash/internal/app"
	"github.com/newthinker/recruitdash/internal/export"
	"github.com/newthinker/recruitdash/internal/logger"
	"github.com/newthinker/recruitdash/internal/storage/archive"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportPath    string
	exportTimeout time.Duration
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Fetch all datasets once and archive PNG charts plus a workbook",
	Long: `export loads the dashboard once and writes <timestamp>/<kind>.png for each
panel with data and <timestamp>/dashboard.xlsx to the configured export
storage (local directory or S3).`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportPath, "path", "", "override export.path for local storage")
	exportCmd.Flags().DurationVar(&exportTimeout, "timeout", time.Minute, "overall export timeout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if exportPath != "" {
		cfg.Export.Path = exportPath
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), exportTimeout)
	defer cancel()

	dash, cleanup, err := newApp(ctx, cfg, nil, log)
	if err != nil {
		return err
	}
	defer cleanup()

	store, err := archive.New(cfg.Export)
	if err != nil {
		return fmt.Errorf("creating export storage: %w", err)
	}

	panels := dash.Load(ctx)
	for _, p := range panels {
		if p.State == app.StateError {
			log.Warn("panel has no data", zap.String("dataset", string(p.Kind)), zap.String("error", p.Error))
		}
	}

	written, err := export.NewExporter(store, nil, log).Archive(ctx, panels)
	if err != nil {
		return fmt.Errorf("exporting dashboard: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, path := range written {
		fmt.Fprintln(out, path)
	}
	return nil
}
