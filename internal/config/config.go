package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/newthinker/recruitdash/internal/core"
	"github.com/spf13/viper"
)

const envPrefix = "RECRUITDASH"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
	Export    ExportConfig    `mapstructure:"export"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Notify    NotifyConfig    `mapstructure:"notify"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port" validate:"min=1,max=65535"`
	APIKey       string `mapstructure:"api_key"`
	TemplatesDir string `mapstructure:"templates_dir"`
}

// UpstreamConfig points the fetcher at the dataset endpoints.
type UpstreamConfig struct {
	Source  string        `mapstructure:"source" validate:"oneof=upstream sample"`
	BaseURL string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DashboardConfig controls background refreshing. A zero interval disables it.
type DashboardConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	Title           string        `mapstructure:"title"`
}

// SnapshotConfig selects where last-good datasets are kept.
type SnapshotConfig struct {
	Type  string      `mapstructure:"type" validate:"oneof=memory redis"`
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db" validate:"min=0"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ExportConfig selects the archive backend for chart exports.
type ExportConfig struct {
	Type string   `mapstructure:"type" validate:"oneof=localfs s3"`
	Path string   `mapstructure:"path"`
	S3   S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// RateLimitConfig bounds the render-heavy export endpoints, per client IP.
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute" validate:"min=0"`
}

// NotifyConfig configures dataset state notifications. An empty webhook URL
// disables them.
type NotifyConfig struct {
	Webhook WebhookConfig `mapstructure:"webhook"`
}

type WebhookConfig struct {
	URL     string            `mapstructure:"url" validate:"omitempty,url"`
	Headers map[string]string `mapstructure:"headers"`
	Timeout time.Duration     `mapstructure:"timeout"`
}

// Load reads configuration from file. An empty path yields the defaults with
// environment overrides applied.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	// Support environment variable overrides
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every default with viper so AutomaticEnv can
// override keys the file does not mention.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.api_key", d.Server.APIKey)
	v.SetDefault("server.templates_dir", d.Server.TemplatesDir)
	v.SetDefault("upstream.source", d.Upstream.Source)
	v.SetDefault("upstream.base_url", d.Upstream.BaseURL)
	v.SetDefault("upstream.timeout", d.Upstream.Timeout)
	v.SetDefault("dashboard.refresh_interval", d.Dashboard.RefreshInterval)
	v.SetDefault("dashboard.title", d.Dashboard.Title)
	v.SetDefault("snapshot.type", d.Snapshot.Type)
	v.SetDefault("snapshot.redis.addr", d.Snapshot.Redis.Addr)
	v.SetDefault("snapshot.redis.password", d.Snapshot.Redis.Password)
	v.SetDefault("snapshot.redis.db", d.Snapshot.Redis.DB)
	v.SetDefault("snapshot.redis.prefix", d.Snapshot.Redis.Prefix)
	v.SetDefault("snapshot.redis.ttl", d.Snapshot.Redis.TTL)
	v.SetDefault("export.type", d.Export.Type)
	v.SetDefault("export.path", d.Export.Path)
	v.SetDefault("export.s3.bucket", d.Export.S3.Bucket)
	v.SetDefault("export.s3.endpoint", d.Export.S3.Endpoint)
	v.SetDefault("export.s3.region", d.Export.S3.Region)
	v.SetDefault("export.s3.access_key", d.Export.S3.AccessKey)
	v.SetDefault("export.s3.secret_key", d.Export.S3.SecretKey)
	v.SetDefault("export.s3.prefix", d.Export.S3.Prefix)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
	v.SetDefault("rate_limit.requests_per_minute", d.RateLimit.RequestsPerMinute)
	v.SetDefault("notify.webhook.url", d.Notify.Webhook.URL)
	v.SetDefault("notify.webhook.timeout", d.Notify.Webhook.Timeout)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Upstream: UpstreamConfig{
			Source:  "upstream",
			BaseURL: "http://127.0.0.1:8000",
			Timeout: 10 * time.Second,
		},
		Dashboard: DashboardConfig{
			Title: "Recruitment Dashboard",
		},
		Snapshot: SnapshotConfig{
			Type: "memory",
			Redis: RedisConfig{
				Addr:   "127.0.0.1:6379",
				Prefix: "recruitdash:snapshot",
				TTL:    24 * time.Hour,
			},
		},
		Export: ExportConfig{
			Type: "localfs",
			Path: "exports",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 10,
		},
		Notify: NotifyConfig{
			Webhook: WebhookConfig{Timeout: 10 * time.Second},
		},
	}
}

var validate = validator.New()

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("%s failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		return core.WrapError(core.ErrConfigInvalid, err)
	}

	if c.Upstream.Source == "upstream" && c.Upstream.BaseURL == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("upstream.base_url required when source is upstream"))
	}
	if c.Upstream.Timeout < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("upstream.timeout cannot be negative, got %s", c.Upstream.Timeout))
	}
	if c.Dashboard.RefreshInterval < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("dashboard.refresh_interval cannot be negative, got %s", c.Dashboard.RefreshInterval))
	}

	switch c.Snapshot.Type {
	case "redis":
		if c.Snapshot.Redis.Addr == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("snapshot.redis.addr required when snapshot type is redis"))
		}
	}

	switch c.Export.Type {
	case "localfs":
		if c.Export.Path == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("export.path required when export type is localfs"))
		}
	case "s3":
		if c.Export.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("export.s3.bucket required when export type is s3"))
		}
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("metrics.path must start with /, got %q", c.Metrics.Path))
	}

	return nil
}
