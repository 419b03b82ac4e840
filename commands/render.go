package commands

import (
	"github.com/dmboucher/go-gantt-chart/internal/application/viewer"
	"github.com/spf13/cobra"
)

var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render [data files]",
	Short: "Render the chart to an SVG file",
	Long: `Lays the chart out and writes it as an SVG document with the task grid,
the date header, the bars, the today line and the connector arrows.

Without --output the SVG is written next to the first data file.`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "",
		"SVG output path (default: first data file with .svg extension)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := newViewerConfig(cmd, args)
	if err != nil {
		return err
	}
	if renderOutput != "" {
		cfg.Output = expandPath(renderOutput)
	}

	o, err := viewer.NewOrchestrator(cfg)
	if err != nil {
		return err
	}
	defer o.Close()

	if err := o.Load(); err != nil {
		return err
	}
	path, err := o.RenderSVG()
	if err != nil {
		return err
	}
	printf(cmd.OutOrStdout(), "Rendered %s\n", path)
	return nil
}
