package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "elimination.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadOverrides(t *testing.T) {
	path := writeFile(t, "log_level: debug\nworkers: 8\ndebounce: 1s\nmetrics_file: out.prom\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, time.Second, cfg.Debounce)
	assert.Equal(t, "out.prom", cfg.MetricsFile)
	assert.Equal(t, "auto", cfg.Color, "unset fields keep their defaults")
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad level", "log_level: loud\n"},
		{"no workers", "workers: 0\n"},
		{"bad color", "color: sometimes\n"},
		{"not yaml", "workers: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}
