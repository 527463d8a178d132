// internal/api/handler/api/charts_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/newthinker/recruitdash/internal/api/response"
	"github.com/newthinker/recruitdash/internal/app"
	"github.com/newthinker/recruitdash/internal/collector/sample"
	"github.com/newthinker/recruitdash/internal/core"
)

type failingFetcher struct{}

func (failingFetcher) Name() string { return "failing" }
func (failingFetcher) Fetch(ctx context.Context, ds core.Dataset) ([]core.DataPoint, error) {
	return nil, core.WrapError(core.ErrFetchFailed, errors.New("connection refused"))
}

func newRouter(dash Dashboard) http.Handler {
	h := NewChartsHandler(dash, nil, nil)
	r := chi.NewRouter()
	r.Get("/api/v1/charts", h.List)
	r.Get("/api/v1/charts/{kind}", h.Get)
	r.Get("/api/v1/charts/{kind}/png", h.PNG)
	r.Get("/api/v1/export.xlsx", h.XLSX)
	r.Post("/api/v1/refresh", h.Refresh)
	return r
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestChartsHandler_List(t *testing.T) {
	h := newRouter(app.New(sample.New(), nil, nil))

	w := do(t, h, "GET", "/api/v1/charts")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data struct {
			Panels []app.Panel `json:"panels"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(resp.Data.Panels) != 3 {
		t.Fatalf("expected 3 panels, got %d", len(resp.Data.Panels))
	}
	for _, p := range resp.Data.Panels {
		if p.State != app.StateReady {
			t.Errorf("%s: expected ready, got %s", p.Kind, p.State)
		}
		if len(p.Chart.Categories()) != len(p.Chart.Values()) {
			t.Errorf("%s: categories and values not aligned", p.Kind)
		}
	}
}

func TestChartsHandler_Get(t *testing.T) {
	h := newRouter(app.New(sample.New(), nil, nil))

	w := do(t, h, "GET", "/api/v1/charts/Radar")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data app.Panel `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Kind != core.KindRadar {
		t.Errorf("expected radar, got %s", resp.Data.Kind)
	}
	if resp.Data.Chart.Type != "radar" {
		t.Errorf("expected radar chart, got %s", resp.Data.Chart.Type)
	}
}

func TestChartsHandler_UnknownKind(t *testing.T) {
	h := newRouter(app.New(sample.New(), nil, nil))

	for _, path := range []string{"/api/v1/charts/pie", "/api/v1/charts/pie/png"} {
		w := do(t, h, "GET", path)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, w.Code)
		}
		var resp response.ErrorResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Error.Code != "DATASET_NOT_FOUND" {
			t.Errorf("%s: expected DATASET_NOT_FOUND, got %s", path, resp.Error.Code)
		}
	}
}

func TestChartsHandler_PNG(t *testing.T) {
	h := newRouter(app.New(sample.New(), nil, nil))

	w := do(t, h, "GET", "/api/v1/charts/line/png")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("unexpected content type %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("body is not a PNG")
	}
	if w.Header().Get("X-Panel-State") != "ready" {
		t.Errorf("unexpected panel state header %q", w.Header().Get("X-Panel-State"))
	}
}

func TestChartsHandler_PNGWithoutData(t *testing.T) {
	h := newRouter(app.New(failingFetcher{}, nil, nil))

	w := do(t, h, "GET", "/api/v1/charts/bar/png")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var resp response.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Code != "NO_DATA" {
		t.Errorf("expected NO_DATA, got %s", resp.Error.Code)
	}
}

func TestChartsHandler_XLSX(t *testing.T) {
	h := newRouter(app.New(sample.New(), nil, nil))

	w := do(t, h, "GET", "/api/v1/export.xlsx")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="recruitment-dashboard.xlsx"` {
		t.Errorf("unexpected disposition %q", got)
	}
	// xlsx files are zip archives
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Error("body is not an xlsx archive")
	}
}

func TestChartsHandler_Refresh(t *testing.T) {
	h := newRouter(app.New(failingFetcher{}, nil, nil))

	w := do(t, h, "POST", "/api/v1/refresh")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data struct {
			Panels []PanelStatus   `json:"panels"`
			Stats  map[string]any `json:"stats"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data.Panels) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(resp.Data.Panels))
	}
	for _, s := range resp.Data.Panels {
		if s.State != app.StateError || s.Error == "" {
			t.Errorf("%s: expected error state with message, got %+v", s.Kind, s)
		}
	}
	if _, ok := resp.Data.Stats["last_refresh"]; !ok {
		t.Error("expected last_refresh in stats")
	}
}
