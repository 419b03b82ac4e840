package commands

import (
	"github.com/bytedance/sonic"
	"github.com/dmboucher/go-gantt-chart/internal/application/viewer"
	"github.com/spf13/cobra"
)

var layoutCompact bool

var layoutCmd = &cobra.Command{
	Use:   "layout [data files]",
	Short: "Print the computed chart layout as JSON",
	Long: `Lays the chart out and prints the complete snapshot as JSON: the date
range, header rows, bar geometry, row assignment, group states and the
routed connector paths.`,
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)

	layoutCmd.Flags().BoolVar(&layoutCompact, "compact", false,
		"Print the JSON on one line")
}

func runLayout(cmd *cobra.Command, args []string) error {
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

	snap := o.Chart().Snapshot()
	var data []byte
	if layoutCompact {
		data, err = sonic.Marshal(snap)
	} else {
		data, err = sonic.MarshalIndent(snap, "", "  ")
	}
	if err != nil {
		return err
	}
	printf(cmd.OutOrStdout(), "%s\n", data)
	return nil
}
