package export

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/newthinker/recruitdash/internal/app"
	"github.com/newthinker/recruitdash/internal/core"
	"github.com/newthinker/recruitdash/internal/logger"
	"github.com/newthinker/recruitdash/internal/metrics"
	"github.com/newthinker/recruitdash/internal/storage/archive"
	"go.uber.org/zap"
)

// Content types of exported files.
const (
	ContentTypePNG  = "image/png"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const stampLayout = "20060102T150405Z"

// Exporter renders panels and records export metrics. With a Storage it can
// also archive a full dashboard export.
type Exporter struct {
	store   archive.Storage
	metrics *metrics.Registry
	logger  *zap.Logger
	now     func() time.Time
}

// NewExporter creates an Exporter. store and reg may be nil.
func NewExporter(store archive.Storage, reg *metrics.Registry, log *zap.Logger) *Exporter {
	return &Exporter{
		store:   store,
		metrics: reg,
		logger:  logger.OrNop(log),
		now:     time.Now,
	}
}

// PNG renders one panel.
func (e *Exporter) PNG(p app.Panel) ([]byte, error) {
	start := time.Now()
	data, err := RenderPNG(p)
	e.record("png", err, start)
	return data, err
}

// XLSX renders all panels into a workbook.
func (e *Exporter) XLSX(panels []app.Panel) ([]byte, error) {
	start := time.Now()
	data, err := Workbook(panels)
	e.record("xlsx", err, start)
	return data, err
}

// Archive writes <timestamp>/<kind>.png for each panel with data and
// <timestamp>/dashboard.xlsx to the configured storage. It returns the paths
// written.
func (e *Exporter) Archive(ctx context.Context, panels []app.Panel) ([]string, error) {
	if e.store == nil {
		return nil, core.WrapError(core.ErrExportFailed, errors.New("no export storage configured"))
	}

	dir := e.now().UTC().Format(stampLayout)
	var written []string

	for _, p := range panels {
		data, err := e.PNG(p)
		if errors.Is(err, core.ErrNoData) {
			e.logger.Info("skipping empty panel", zap.String("dataset", string(p.Kind)))
			continue
		}
		if err != nil {
			return written, err
		}
		name := path.Join(dir, string(p.Kind)+".png")
		if err := e.store.Write(ctx, name, data, ContentTypePNG); err != nil {
			return written, core.WrapError(core.ErrExportFailed, fmt.Errorf("write %s: %w", name, err))
		}
		written = append(written, name)
	}

	data, err := e.XLSX(panels)
	if err != nil {
		return written, err
	}
	name := path.Join(dir, "dashboard.xlsx")
	if err := e.store.Write(ctx, name, data, ContentTypeXLSX); err != nil {
		return written, core.WrapError(core.ErrExportFailed, fmt.Errorf("write %s: %w", name, err))
	}
	written = append(written, name)

	e.logger.Info("dashboard exported",
		zap.String("dir", dir),
		zap.Int("files", len(written)),
	)
	return written, nil
}

func (e *Exporter) record(format string, err error, start time.Time) {
	if e.metrics == nil {
		return
	}
	e.metrics.RecordExport(format, err == nil, time.Since(start).Seconds())
}
