// Package config loads the compiler configuration from a YAML file and
// overlays FEATWEAVER_* environment variables.
package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/feat-weaver/internal/errors"
)

const envPrefix = "FEATWEAVER_"

// Defaults applied before the file is read
const (
	DefaultMaxLeaves   = 100000
	DefaultConcurrency = 4
	DefaultCacheTTL    = 24 * time.Hour
)

// Config is the root configuration structure.
type Config struct {
	InstallPaths []string      `yaml:"install_paths" env:"INSTALL_PATHS" envSeparator:","`
	OutputDir    string        `yaml:"output_dir" env:"OUTPUT_DIR"`
	MaxLeaves    int           `yaml:"max_leaves" env:"MAX_LEAVES"`
	Concurrency  int           `yaml:"concurrency" env:"CONCURRENCY"`
	Cache        CacheConfig   `yaml:"cache" envPrefix:"CACHE_"`
	Logging      LoggingConfig `yaml:"logging" envPrefix:"LOG_"`
	Metrics      MetricsConfig `yaml:"metrics" envPrefix:"METRICS_"`
}

// CacheConfig configures the snapshot cache. An empty address disables it.
type CacheConfig struct {
	RedisAddr string        `yaml:"redis_addr" env:"REDIS_ADDR"`
	TTL       time.Duration `yaml:"ttl" env:"TTL"`
}

// Enabled reports whether a cache server is configured
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`   // "debug", "info", "warn", "error"
	Format string `yaml:"format" env:"FORMAT"` // "text" or "json"
}

// MetricsConfig configures the Prometheus textfile. An empty path disables it.
type MetricsConfig struct {
	Textfile string `yaml:"textfile" env:"TEXTFILE"`
}

// Default returns a config holding every default value
func Default() *Config {
	return &Config{
		MaxLeaves:   DefaultMaxLeaves,
		Concurrency: DefaultConcurrency,
		Cache:       CacheConfig{TTL: DefaultCacheTTL},
		Logging:     LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads configuration from a YAML file, applies the environment
// overlay and validates the result. An empty path loads from the
// environment alone.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NotFoundf("config file %s not found", path)
			}
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to parse config %s", path)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if len(c.InstallPaths) == 0 {
		vb.RequiredField("install_paths")
	}
	for _, p := range c.InstallPaths {
		if strings.TrimSpace(p) == "" {
			vb.InvalidField("install_paths", "empty path")
			break
		}
	}
	errors.ValidatePositive("max_leaves", c.MaxLeaves, vb)
	errors.ValidatePositive("concurrency", c.Concurrency, vb)
	if c.Cache.Enabled() && c.Cache.TTL <= 0 {
		vb.Field("cache.ttl", "must be greater than zero")
	}
	errors.ValidateEnum("logging.level", c.Logging.Level, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("logging.format", c.Logging.Format, []string{"text", "json"}, vb)

	return vb.Build()
}

// SlogLevel returns the slog level for the configured name
func (l LoggingConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a logger writing to w in the configured format
func (l LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
