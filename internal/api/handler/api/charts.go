// internal/api/handler/api/charts.go
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/newthinker/recruitdash/internal/api/response"
	"github.com/newthinker/recruitdash/internal/app"
	"github.com/newthinker/recruitdash/internal/core"
	"github.com/newthinker/recruitdash/internal/export"
	"go.uber.org/zap"
)

// Dashboard is the panel source behind the chart endpoints.
type Dashboard interface {
	Load(ctx context.Context) []app.Panel
	LoadOne(ctx context.Context, kind core.Kind) (app.Panel, error)
	RunOnce(ctx context.Context) []app.Panel
	Stats() map[string]any
}

// ChartsHandler serves panels as JSON, PNG and XLSX.
type ChartsHandler struct {
	dash     Dashboard
	exporter *export.Exporter
	logger   *zap.Logger
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(dash Dashboard, exporter *export.Exporter, logger *zap.Logger) *ChartsHandler {
	if exporter == nil {
		exporter = export.NewExporter(nil, nil, logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChartsHandler{dash: dash, exporter: exporter, logger: logger}
}

// List returns every panel.
func (h *ChartsHandler) List(w http.ResponseWriter, r *http.Request) {
	panels := h.dash.Load(r.Context())
	response.JSON(w, http.StatusOK, map[string]any{
		"panels": panels,
	})
}

// Get returns the panel named by the {kind} URL parameter.
func (h *ChartsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.panel(r)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

// PNG renders the panel named by {kind} as an image.
func (h *ChartsHandler) PNG(w http.ResponseWriter, r *http.Request) {
	p, err := h.panel(r)
	if err != nil {
		response.Fail(w, err)
		return
	}

	data, err := h.exporter.PNG(p)
	if err != nil {
		h.logger.Warn("png export failed", zap.String("dataset", string(p.Kind)), zap.Error(err))
		response.Fail(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentTypePNG)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", string(p.Kind)+".png"))
	w.Header().Set("X-Panel-State", string(p.State))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// XLSX returns every panel as a workbook download.
func (h *ChartsHandler) XLSX(w http.ResponseWriter, r *http.Request) {
	panels := h.dash.Load(r.Context())

	data, err := h.exporter.XLSX(panels)
	if err != nil {
		h.logger.Warn("xlsx export failed", zap.Error(err))
		response.Fail(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="recruitment-dashboard.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// PanelStatus summarises one panel after a refresh.
type PanelStatus struct {
	Kind  core.Kind `json:"kind"`
	State app.State `json:"state"`
	Error string    `json:"error,omitempty"`
}

// Refresh runs one refresh cycle and reports each panel's state.
func (h *ChartsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	panels := h.dash.RunOnce(r.Context())

	statuses := make([]PanelStatus, len(panels))
	for i, p := range panels {
		statuses[i] = PanelStatus{Kind: p.Kind, State: p.State, Error: p.Error}
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"panels": statuses,
		"stats":  h.dash.Stats(),
	})
}

func (h *ChartsHandler) panel(r *http.Request) (app.Panel, error) {
	kind, err := core.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		return app.Panel{}, err
	}
	return h.dash.LoadOne(r.Context(), kind)
}
