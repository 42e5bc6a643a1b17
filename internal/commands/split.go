package commands

import (
	"github.com/spf13/cobra"
)

func newSplitCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "split <amount>",
		Short: "Round an amount to 5, split it 60/25/15 and record it",
		Example: `  splitledger split 1000
  splitledger split -- -5   # rejected: not positive after rounding`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, opts)
			if err != nil {
				return err
			}
			view, err := p.tracker.Submit(args[0])
			if err != nil {
				return err
			}
			return renderView(cmd.OutOrStdout(), view)
		},
	}
}

func newTotalsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "totals",
		Aliases: []string{"reload"},
		Short:   "Show the last entry and running total of every bucket",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, opts)
			if err != nil {
				return err
			}
			view, err := p.tracker.Reload()
			if err != nil {
				return err
			}
			return renderView(cmd.OutOrStdout(), view)
		},
	}
}
