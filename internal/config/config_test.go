package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gapscan/internal/scoring"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Crawler.Timeout.Std())
	assert.Equal(t, "gapscan.db", cfg.Storage.Path)
	assert.Equal(t, 0.30, cfg.Scoring.Weights.Relevance)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
crawler:
  request_delay: 2s
scoring:
  weights:
    volume: 0.4
    relevance: 0.2
storage:
  path: /tmp/test-gapscan.db
logging:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Crawler.RequestDelay.Std())
	assert.Equal(t, 0.4, cfg.Scoring.Weights.Volume)
	assert.Equal(t, 0.2, cfg.Scoring.Weights.Relevance)
	// untouched fields keep defaults
	assert.Equal(t, 0.20, cfg.Scoring.Weights.Difficulty)
	assert.Equal(t, "/tmp/test-gapscan.db", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GAPSCAN_PORT", "7070")
	t.Setenv("GAPSCAN_DB_PATH", "/tmp/env-gapscan.db")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/tmp/env-gapscan.db", cfg.Storage.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Scoring.Weights.Volume = 1.5
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Storage.Path = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsWeightsNotSummingToOne(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scoring.Weights = scoring.Weights{
		Volume:      1,
		Relevance:   1,
		Difficulty:  1,
		Intent:      1,
		Competition: 1,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1")

	// The default split passes, as does any other unit-sum split.
	cfg.Scoring.Weights = scoring.Weights{
		Volume:      0.2,
		Relevance:   0.2,
		Difficulty:  0.2,
		Intent:      0.2,
		Competition: 0.2,
	}
	assert.NoError(t, cfg.Validate())
}
