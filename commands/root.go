package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dmboucher/go-gantt-chart/internal/application/viewer"
	"github.com/dmboucher/go-gantt-chart/internal/config"
	"github.com/dmboucher/go-gantt-chart/internal/presentation/formatter"
	"github.com/dmboucher/go-gantt-chart/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Input data
	dataFiles  []string
	configFile string

	// Chart settings
	timezone  string
	zoomLevel int
	width     int

	// Group visibility
	collapse    []string
	collapseAll bool

	// Output related
	outputFormat string

	logFile = defaultLogFile

	rootCmd = &cobra.Command{
		Use:   "go-gantt-chart [flags] [data files]",
		Short: "Gantt chart layout and connector routing tool",
		Long: `go-gantt-chart lays out task lists as Gantt charts and routes the
dependency connectors between their bars.

Task files are JSON arrays or one JSON task per line. Several files are
concatenated in the order given.

Examples:
  go-gantt-chart plan.json                          # Print the task table
  go-gantt-chart plan.json --format csv             # Print the rows as CSV
  go-gantt-chart render plan.json -o plan.svg       # Write an SVG chart
  go-gantt-chart render plan.json --collapse-all    # Only group heads
  go-gantt-chart layout plan.json --zoom 2          # Dump the computed layout
  go-gantt-chart watch plan.json                    # Re-render on every save
  go-gantt-chart view plan.json                     # Interactive terminal chart`,
		Args: cobra.ArbitraryArgs,
		RunE: runTable,
	}
)

const (
	defaultLogFile = "~/.go-gantt-chart/logs/app.log"
)

func init() {
	// Input data configuration
	rootCmd.PersistentFlags().StringSliceVarP(&dataFiles, "data", "f", nil,
		"Task data files (JSON array or JSON lines); positional arguments are added")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"YAML config file")

	// Chart settings
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone setting (e.g., Europe/Paris, UTC)")
	rootCmd.PersistentFlags().IntVarP(&zoomLevel, "zoom", "z", 0,
		"Zoom level (0 fits the chart, 1-3 zoom in)")
	rootCmd.PersistentFlags().IntVarP(&width, "width", "w", 0,
		"Container width in pixels (0 = terminal width)")

	// Group visibility
	rootCmd.PersistentFlags().StringSliceVar(&collapse, "collapse", nil,
		"Group ids to collapse")
	rootCmd.PersistentFlags().BoolVar(&collapseAll, "collapse-all", false,
		"Collapse every group")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "format", "o", "table",
		"Output format (table, json, csv)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func runTable(cmd *cobra.Command, args []string) error {
	if len(dataFiles) == 0 && len(args) == 0 {
		return cmd.Help()
	}

	cfg, err := newViewerConfig(cmd, args)
	if err != nil {
		return err
	}

	o, err := viewer.NewOrchestrator(cfg)
	if err != nil {
		return err
	}
	defer o.Close()

	if err := o.Load(); err != nil {
		return err
	}

	f, err := formatter.New(outputFormat, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return f.Format(viewer.TaskRows(o.Chart().Snapshot()))
}

func Execute() error {
	return rootCmd.Execute()
}

// newViewerConfig sets up logging and the time provider, then merges the
// config file with the flags that were given.
func newViewerConfig(cmd *cobra.Command, args []string) (*viewer.ViewerConfig, error) {
	if err := initLogging(); err != nil {
		return nil, err
	}

	path := ""
	if configFile != "" {
		path = expandPath(configFile)
	}
	chartCfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flagChanged(cmd, "timezone") || chartCfg.Timezone == "" {
		chartCfg.Timezone = timezone
	}
	if chartCfg.Timezone == "auto" {
		chartCfg.Timezone = "Local"
	}
	if flagChanged(cmd, "zoom") {
		chartCfg.Zoom.Level = zoomLevel
	}
	if err := util.InitializeTimeProvider(chartCfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", chartCfg.Timezone, err)
	}

	var files []string
	for _, f := range append(append([]string(nil), dataFiles...), args...) {
		files = append(files, expandPath(f))
	}

	cfg := &viewer.ViewerConfig{
		DataFiles:   files,
		Chart:       chartCfg,
		Width:       width,
		Collapse:    collapse,
		CollapseAll: collapseAll,
		Concurrency: runtime.NumCPU(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func initLogging() error {
	// Determine log level based on debug flag
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	path := expandPath(logFile)
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return util.InitLogger(util.LoggerOptions{
		Level:   logLevel,
		File:    path,
		Console: debug,
	})
}

// Helper functions

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

func printf(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format, args...)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
