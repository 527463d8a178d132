// internal/api/server_test.go
package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/newthinker/recruitdash/internal/app"
	"github.com/newthinker/recruitdash/internal/collector/sample"
	"github.com/newthinker/recruitdash/internal/metrics"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, cfg Config, reg *metrics.Registry) *Server {
	t.Helper()
	var opts []app.Option
	if reg != nil {
		opts = append(opts, app.WithMetrics(reg))
	}
	deps := Dependencies{
		App:     app.New(sample.New(), nil, zap.NewNop(), opts...),
		Metrics: reg,
	}
	cfg.Host = "localhost"
	srv, err := NewServer(cfg, deps, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)

	w := serve(srv, httptest.NewRequest("GET", "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected request id header")
	}
}

func TestServer_NeedsApp(t *testing.T) {
	if _, err := NewServer(Config{}, Dependencies{}, nil); err == nil {
		t.Error("expected error without app")
	}
}

func TestServer_DashboardPage(t *testing.T) {
	srv := newTestServer(t, Config{Title: "Hiring Overview"}, nil)

	w := serve(srv, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Hiring Overview") {
		t.Error("expected configured title")
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("expected secure headers")
	}
	if !strings.Contains(w.Header().Get("Content-Security-Policy"), "cdn.jsdelivr.net") {
		t.Error("CSP must allow the chart library")
	}
}

func TestServer_ChartRoutes(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)

	tests := []struct {
		path string
		want int
	}{
		{"/api/v1/charts", http.StatusOK},
		{"/api/v1/charts/bar", http.StatusOK},
		{"/api/v1/charts/unknown", http.StatusNotFound},
		{"/api/v1/charts/bar/png", http.StatusOK},
		{"/api/v1/export.xlsx", http.StatusOK},
		{"/metrics", http.StatusNotFound},
	}

	for _, tc := range tests {
		w := serve(srv, httptest.NewRequest("GET", tc.path, nil))
		if w.Code != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.path, tc.want, w.Code)
		}
	}
}

func TestServer_RefreshAuth(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		header string
		want   int
	}{
		{"required", "test-key", "", http.StatusUnauthorized},
		{"valid key", "test-key", "test-key", http.StatusOK},
		{"disabled", "", "", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, Config{APIKey: tc.apiKey}, nil)

			req := httptest.NewRequest("POST", "/api/v1/refresh", nil)
			if tc.header != "" {
				req.Header.Set("X-API-Key", tc.header)
			}
			if w := serve(srv, req); w.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestServer_RefreshRejectsGet(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)

	w := serve(srv, httptest.NewRequest("GET", "/api/v1/refresh", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestServer_RateLimitsRenderRoutes(t *testing.T) {
	srv := newTestServer(t, Config{RateLimit: 2}, nil)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/v1/charts/radar/png", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		codes = append(codes, serve(srv, req).Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("unexpected status sequence %v", codes)
	}

	// JSON routes are not limited
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/v1/charts/radar", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		if w := serve(srv, req); w.Code != http.StatusOK {
			t.Errorf("json route limited on request %d: %d", i, w.Code)
		}
	}
}

func TestServer_Metrics(t *testing.T) {
	reg := metrics.NewRegistry()
	srv := newTestServer(t, Config{MetricsPath: "/metrics"}, reg)

	serve(srv, httptest.NewRequest("GET", "/api/v1/charts", nil))

	w := serve(srv, httptest.NewRequest("GET", "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`recruitdash_fetches_total{dataset="bar",status="ok"} 1`,
		`http_requests_total{method="GET",path="/api/v1/charts",status="2xx"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
