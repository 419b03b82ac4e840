package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/dmboucher/go-gantt-chart/internal/application/viewer"
	"github.com/dmboucher/go-gantt-chart/internal/util"
	"github.com/spf13/cobra"
)

var watchOutput string

var watchCmd = &cobra.Command{
	Use:   "watch [data files]",
	Short: "Re-render the SVG whenever a data file changes",
	Long: `Renders the chart once, then watches the data files and renders again
after every change. Group states survive reloads. Bursts of writes are
collapsed into one render.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "",
		"SVG output path (default: first data file with .svg extension)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := newViewerConfig(cmd, args)
	if err != nil {
		return err
	}
	if watchOutput != "" {
		cfg.Output = expandPath(watchOutput)
	}

	o, err := viewer.NewOrchestrator(cfg)
	if err != nil {
		return err
	}
	if err := o.Load(); err != nil {
		o.Close()
		return err
	}
	path, err := o.RenderSVG()
	if err != nil {
		o.Close()
		return err
	}

	out := cmd.OutOrStdout()
	printf(out, "Rendered %s, watching for changes (Ctrl+C to stop)\n", path)

	// Set up signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return o.Watch(ctx, func(path string, err error) {
		if err != nil {
			util.LogErrorf("Render failed: %v", err)
			printf(out, "Render failed: %v\n", err)
			return
		}
		printf(out, "Rendered %s\n", path)
	})
}
