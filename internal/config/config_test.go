package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gantt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, Columns{ID: 35, Name: 230, Date: 90}, cfg.Columns)
	assert.Equal(t, 7, cfg.Layout.SplitterWidth)
	assert.Equal(t, 17, cfg.Layout.ScrollbarWidth)
	assert.Equal(t, 0, cfg.Zoom.Level)
	assert.Equal(t, 500*time.Millisecond, cfg.Refresh.ResizeDebounce)
	assert.Equal(t, "Local", cfg.Timezone)
	require.NoError(t, cfg.Validate())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
columns:
  name: 300
layout:
  container_width: 1600
zoom:
  level: 2
refresh:
  resize_debounce: 250ms
timezone: UTC
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 35, cfg.Columns.ID)
	assert.Equal(t, 300, cfg.Columns.Name)
	assert.Equal(t, 90, cfg.Columns.Date)
	assert.Equal(t, 1600, cfg.Layout.ContainerWidth)
	assert.Equal(t, 30, cfg.Layout.RowHeight)
	assert.Equal(t, 2, cfg.Zoom.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Refresh.ResizeDebounce)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed yaml", "columns: [1, 2"},
		{"zoom out of range", "zoom:\n  level: 4\n"},
		{"negative column", "columns:\n  id: -1\n"},
		{"negative height", "layout:\n  row_height: -30\n"},
		{"bar taller than row", "layout:\n  row_height: 20\n  bar_height: 25\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateFillsZeroValues(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.Validate())

	want := Default()
	assert.Equal(t, want, cfg)
}
