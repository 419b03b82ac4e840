// Package viewer wires a chart to its data files, renderers and the
// terminal for the CLI commands.
package viewer

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmboucher/go-gantt-chart/internal/config"
)

// ViewerConfig contains configuration for the render, watch and view commands
type ViewerConfig struct {
	// Data files, concatenated in order
	DataFiles []string

	// Chart settings
	Chart config.Config

	// Container width in pixels; zero probes the terminal
	Width int

	// Groups to collapse after loading
	Collapse    []string
	CollapseAll bool

	// SVG output for render and watch
	Output string

	// Performance settings
	Concurrency int

	// Refresh settings
	Debounce         time.Duration
	SizePollInterval time.Duration
}

// Validate checks if the configuration is valid and fills defaults
func (c *ViewerConfig) Validate() error {
	if len(c.DataFiles) == 0 {
		return fmt.Errorf("no data file given")
	}
	if err := c.Chart.Validate(); err != nil {
		return err
	}
	if c.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", c.Width)
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.Debounce <= 0 {
		c.Debounce = c.Chart.Refresh.ResizeDebounce
	}
	if c.SizePollInterval <= 0 {
		c.SizePollInterval = time.Second
	}
	return nil
}

// OutputPath returns the SVG path: Output when set, otherwise the first
// data file with its extension replaced by .svg.
func (c *ViewerConfig) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	if len(c.DataFiles) == 0 {
		return "chart.svg"
	}
	first := c.DataFiles[0]
	return strings.TrimSuffix(first, filepath.Ext(first)) + ".svg"
}
