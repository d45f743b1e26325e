// Package config provides unified configuration loading.
// Supports YAML files, environment variables, and programmatic overrides.
package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"gapscan/internal/scoring"
)

// Duration parses YAML strings like "30s" or bare nanosecond integers.
// yaml.v3 cannot decode duration strings into time.Duration directly.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration value")
	}
	*d = Duration(n)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all configuration for the gap analysis engine.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Crawler CrawlerConfig `yaml:"crawler"`
	Scoring ScoringConfig `yaml:"scoring"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string   `yaml:"host"`
	Port             int      `yaml:"port"`
	ReadTimeout      Duration `yaml:"read_timeout"`
	WriteTimeout     Duration `yaml:"write_timeout"`
	IdleTimeout      Duration `yaml:"idle_timeout"`
	GracefulShutdown Duration `yaml:"graceful_shutdown"`
}

// CrawlerConfig holds page fetch settings.
type CrawlerConfig struct {
	Timeout      Duration `yaml:"timeout"`
	DialTimeout  Duration `yaml:"dial_timeout"`
	RequestDelay Duration `yaml:"request_delay"`
	MaxBodySize  int64    `yaml:"max_body_size"`
}

// ScoringConfig holds opportunity scoring weights.
type ScoringConfig struct {
	Weights scoring.Weights `yaml:"weights"`
}

// StorageConfig holds report persistence settings.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// Load reads configuration from a YAML file and applies environment overrides.
// An empty path loads defaults only.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8080,
			ReadTimeout:      Duration(30 * time.Second),
			WriteTimeout:     Duration(5 * time.Minute),
			IdleTimeout:      Duration(120 * time.Second),
			GracefulShutdown: Duration(10 * time.Second),
		},
		Crawler: CrawlerConfig{
			Timeout:      Duration(20 * time.Second),
			DialTimeout:  Duration(8 * time.Second),
			RequestDelay: Duration(500 * time.Millisecond),
			MaxBodySize:  3 << 20,
		},
		Scoring: ScoringConfig{
			Weights: scoring.DefaultWeights(),
		},
		Storage: StorageConfig{
			Path: "gapscan.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Crawler.Timeout <= 0 {
		return fmt.Errorf("crawler timeout must be positive")
	}
	if c.Crawler.MaxBodySize <= 0 {
		return fmt.Errorf("crawler max_body_size must be positive")
	}
	w := c.Scoring.Weights
	for name, v := range map[string]float64{
		"volume":      w.Volume,
		"relevance":   w.Relevance,
		"difficulty":  w.Difficulty,
		"intent":      w.Intent,
		"competition": w.Competition,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("scoring weight %s out of range: %f", name, v)
		}
	}
	sum := w.Volume + w.Relevance + w.Difficulty + w.Intent + w.Competition
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("scoring weights must sum to 1, got %f", sum)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path must not be empty")
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GAPSCAN_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("GAPSCAN_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GAPSCAN_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("GAPSCAN_REQUEST_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Crawler.RequestDelay = Duration(d)
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
