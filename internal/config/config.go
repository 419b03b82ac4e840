// Package config holds the chart settings loaded from an optional YAML file
// and overridden by command-line flags.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmboucher/go-gantt-chart/internal/core/constants"
	"gopkg.in/yaml.v3"
)

// Columns are the widths of the task-list pane's columns in pixels. The date
// column is used twice, for start and end.
type Columns struct {
	ID   int `yaml:"id"`
	Name int `yaml:"name"`
	Date int `yaml:"date"`
}

// Layout holds the pane and row dimensions in pixels.
type Layout struct {
	ContainerWidth int `yaml:"container_width"` // 0 probes the terminal
	SplitterWidth  int `yaml:"splitter_width"`
	ScrollbarWidth int `yaml:"scrollbar_width"`
	RowHeight      int `yaml:"row_height"`
	BarHeight      int `yaml:"bar_height"`
	HeaderHeight   int `yaml:"header_height"`
}

// Zoom holds the initial zoom level.
type Zoom struct {
	Level int `yaml:"level"`
}

// Refresh holds the relayout trigger settings.
type Refresh struct {
	ResizeDebounce time.Duration `yaml:"resize_debounce"`
}

// Config is the full chart configuration.
type Config struct {
	Columns  Columns `yaml:"columns"`
	Layout   Layout  `yaml:"layout"`
	Zoom     Zoom    `yaml:"zoom"`
	Refresh  Refresh `yaml:"refresh"`
	Timezone string  `yaml:"timezone"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Columns: Columns{
			ID:   constants.DefaultIDColumnWidth,
			Name: constants.DefaultNameColumnWidth,
			Date: constants.DefaultDateColumnWidth,
		},
		Layout: Layout{
			SplitterWidth:  constants.DefaultSplitterWidth,
			ScrollbarWidth: constants.DefaultScrollbarWidth,
			RowHeight:      constants.DefaultRowHeight,
			BarHeight:      constants.DefaultBarHeight,
			HeaderHeight:   constants.DefaultHeaderHeight,
		},
		Zoom:     Zoom{Level: constants.DefaultZoomLevel},
		Refresh:  Refresh{ResizeDebounce: constants.ResizeDebounce},
		Timezone: "Local",
	}
}

// Load reads path on top of Default. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate fills zero values with defaults and rejects values the layout
// cannot use.
func (c *Config) Validate() error {
	def := Default()

	if c.Columns.ID < 0 || c.Columns.Name < 0 || c.Columns.Date < 0 {
		return fmt.Errorf("column widths must not be negative")
	}
	if c.Layout.ContainerWidth < 0 || c.Layout.SplitterWidth < 0 || c.Layout.ScrollbarWidth < 0 {
		return fmt.Errorf("layout widths must not be negative")
	}
	if c.Layout.RowHeight < 0 || c.Layout.BarHeight < 0 || c.Layout.HeaderHeight < 0 {
		return fmt.Errorf("layout heights must not be negative")
	}
	if c.Zoom.Level < constants.ZoomLevelMin || c.Zoom.Level > constants.ZoomLevelMax {
		return fmt.Errorf("zoom level %d out of range %d..%d", c.Zoom.Level, constants.ZoomLevelMin, constants.ZoomLevelMax)
	}
	if c.Refresh.ResizeDebounce < 0 {
		return fmt.Errorf("resize debounce must not be negative")
	}

	if c.Columns.ID == 0 {
		c.Columns.ID = def.Columns.ID
	}
	if c.Columns.Name == 0 {
		c.Columns.Name = def.Columns.Name
	}
	if c.Columns.Date == 0 {
		c.Columns.Date = def.Columns.Date
	}
	if c.Layout.SplitterWidth == 0 {
		c.Layout.SplitterWidth = def.Layout.SplitterWidth
	}
	if c.Layout.ScrollbarWidth == 0 {
		c.Layout.ScrollbarWidth = def.Layout.ScrollbarWidth
	}
	if c.Layout.RowHeight == 0 {
		c.Layout.RowHeight = def.Layout.RowHeight
	}
	if c.Layout.BarHeight == 0 {
		c.Layout.BarHeight = def.Layout.BarHeight
	}
	if c.Layout.BarHeight > c.Layout.RowHeight {
		return fmt.Errorf("bar height %d exceeds row height %d", c.Layout.BarHeight, c.Layout.RowHeight)
	}
	if c.Layout.HeaderHeight == 0 {
		c.Layout.HeaderHeight = def.Layout.HeaderHeight
	}
	if c.Refresh.ResizeDebounce == 0 {
		c.Refresh.ResizeDebounce = def.Refresh.ResizeDebounce
	}
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	return nil
}
