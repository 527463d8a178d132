// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	apihandler "github.com/newthinker/recruitdash/internal/api/handler/api"
	"github.com/newthinker/recruitdash/internal/api/handler/web"
	"github.com/newthinker/recruitdash/internal/api/middleware"
	"github.com/newthinker/recruitdash/internal/app"
	"github.com/newthinker/recruitdash/internal/core"
	"github.com/newthinker/recruitdash/internal/export"
	"github.com/newthinker/recruitdash/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// contentSecurityPolicy allows the charting library and fonts from their CDNs.
const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
	"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; " +
	"font-src https://fonts.gstatic.com; " +
	"img-src 'self' data:"

// Server represents the dashboard HTTP server
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	router     chi.Router
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	APIKey       string
	TemplatesDir string
	Title        string
	MetricsPath  string
	// RateLimit is requests per minute per client on render routes; 0 disables it.
	RateLimit int
}

// Dependencies holds the services the routes are backed by.
type Dependencies struct {
	App      *app.App
	Exporter *export.Exporter
	// Metrics is optional; nil disables the metrics route and middleware.
	Metrics *metrics.Registry
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.App == nil {
		return nil, core.WrapError(core.ErrConfigMissing, fmt.Errorf("server needs an app"))
	}

	r := chi.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		router: r,
	}

	if err := s.setupRoutes(cfg, deps); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and all HTTP routes
func (s *Server) setupRoutes(cfg Config, deps Dependencies) error {
	s.router.Use(chimw.RealIP)
	s.router.Use(chimw.Recoverer)
	s.router.Use(metrics.LoggingMiddleware(s.logger))
	if deps.Metrics != nil {
		s.router.Use(metrics.HTTPMiddleware(deps.Metrics))
	}
	s.router.Use(secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: contentSecurityPolicy,
	}).Handler)

	webHandler, err := web.NewHandler(cfg.TemplatesDir, deps.App, s.logger)
	if err != nil {
		return fmt.Errorf("creating web handler: %w", err)
	}
	webHandler.SetTitle(cfg.Title)

	exporter := deps.Exporter
	if exporter == nil {
		exporter = export.NewExporter(nil, deps.Metrics, s.logger)
	}
	charts := apihandler.NewChartsHandler(deps.App, exporter, s.logger)

	s.router.Get("/", webHandler.Dashboard)
	s.router.Get("/api/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/charts", charts.List)
		r.Get("/charts/{kind}", charts.Get)

		r.Group(func(r chi.Router) {
			if cfg.RateLimit > 0 {
				r.Use(rateLimiter(cfg.RateLimit))
			}
			r.Get("/charts/{kind}/png", charts.PNG)
			r.Get("/export.xlsx", charts.XLSX)
		})

		r.With(middleware.APIKeyAuth(cfg.APIKey)).Post("/refresh", charts.Refresh)
	})

	if deps.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.router.Handle(path, promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	return nil
}

func rateLimiter(perMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
