package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/drew/planview/internal/planfile"
	"github.com/drew/planview/internal/report"
	"github.com/drew/planview/internal/ui"
)

func newShowCmd(opts *globalOptions) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Draw a plan in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			pred, err := cfg.Predicate()
			if err != nil {
				return err
			}
			plans, err := planfile.Load(args[0])
			if err != nil {
				return err
			}

			if width <= 0 {
				width = ui.GetTerminalWidth()
			}
			out := cmd.OutOrStdout()
			colors := ui.NewColors(out, !opts.noColor && out == os.Stdout && ui.IsColorEnabled(os.Stdout))
			gantt := ui.NewGantt(colors, cfg.ViewOptions(), width, logger)

			return renderGantt(out, gantt, plans, report.Options{Predicate: pred})
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "Output width in columns (default: terminal width)")
	return cmd
}
