package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/dmboucher/go-gantt-chart/internal/application/viewer"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [data files]",
	Short: "Show the chart interactively in the terminal",
	Long: `Draws the chart in the terminal and reloads it when a data file changes.

Keys:
  + / -      zoom in / out
  e / c      expand / collapse all groups
  1-9        toggle the nth group
  j k ↑ ↓    scroll rows
  h l ← →    scroll days
  [ ]        move the splitter
  t          switch layout
  r          reload
  ?          help
  q          quit`,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := newViewerConfig(cmd, args)
	if err != nil {
		return err
	}

	o, err := viewer.NewOrchestrator(cfg)
	if err != nil {
		return err
	}

	// Set up signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return o.Run(ctx)
}
