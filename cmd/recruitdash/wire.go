package main

import (
	"context"
	"fmt"
	"time"

	"github.com/newthinker/recruitdash/internal/app"
	"github.com/newthinker/recruitdash/internal/collector"
	"github.com/newthinker/recruitdash/internal/collector/sample"
	"github.com/newthinker/recruitdash/internal/collector/upstream"
	"github.com/newthinker/recruitdash/internal/config"
	"github.com/newthinker/recruitdash/internal/metrics"
	"github.com/newthinker/recruitdash/internal/notifier"
	"github.com/newthinker/recruitdash/internal/notifier/webhook"
	"github.com/newthinker/recruitdash/internal/storage/snapshot"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// loadConfig reads --config (defaults plus env overrides when unset) and
// validates it.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	if cfgFile == "" {
		log.Warn("no config file specified, using defaults")
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// newFetcher registers every fetcher and picks the configured one.
func newFetcher(cfg *config.Config) (collector.Fetcher, error) {
	reg := collector.NewRegistry()
	reg.Register(upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout))
	reg.Register(sample.New())
	return reg.Lookup(cfg.Upstream.Source)
}

// newSnapshotStore returns the configured store and a cleanup func.
func newSnapshotStore(ctx context.Context, cfg config.SnapshotConfig, log *zap.Logger) (snapshot.Store, func(), error) {
	if cfg.Type != "redis" {
		return snapshot.NewMemoryStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	store := snapshot.NewRedisStore(client, cfg.Redis.Prefix, cfg.Redis.TTL)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
	}

	log.Info("using redis snapshot store",
		zap.String("addr", cfg.Redis.Addr),
		zap.String("prefix", cfg.Redis.Prefix),
	)
	return store, func() { client.Close() }, nil
}

// newNotifier returns nil when no notification target is configured.
func newNotifier(cfg config.NotifyConfig) (*notifier.Registry, error) {
	if cfg.Webhook.URL == "" {
		return nil, nil
	}
	wh, err := webhook.New(cfg.Webhook.URL, cfg.Webhook.Headers, cfg.Webhook.Timeout)
	if err != nil {
		return nil, err
	}
	reg := notifier.NewRegistry()
	if err := reg.Register(wh); err != nil {
		return nil, err
	}
	return reg, nil
}

// newApp wires the dashboard service from cfg.
func newApp(ctx context.Context, cfg *config.Config, reg *metrics.Registry, log *zap.Logger) (*app.App, func(), error) {
	fetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, nil, err
	}

	notify, err := newNotifier(cfg.Notify)
	if err != nil {
		return nil, nil, fmt.Errorf("configuring notifications: %w", err)
	}

	store, cleanup, err := newSnapshotStore(ctx, cfg.Snapshot, log)
	if err != nil {
		return nil, nil, err
	}

	opts := []app.Option{app.WithInterval(cfg.Dashboard.RefreshInterval)}
	if reg != nil {
		opts = append(opts, app.WithMetrics(reg))
	}
	if notify != nil {
		opts = append(opts, app.WithNotifier(notify))
		log.Info("dataset notifications enabled", zap.Strings("notifiers", notify.Names()))
	}

	log.Info("dashboard source",
		zap.String("fetcher", fetcher.Name()),
		zap.String("base_url", cfg.Upstream.BaseURL),
	)
	return app.New(fetcher, store, log, opts...), cleanup, nil
}
