package commands

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/splitledger/splitledger/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "splitledger",
		Short: "Split amounts 60/25/15 into income, savings and reserve ledgers",
		Long: `splitledger rounds an amount to the nearest 5, splits it 60/25/15 across the
Income, Savings and Reserve buckets, and appends one record per bucket to
plain ledger files.

Run without arguments in a terminal to open the interactive shell.`,
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return cmd.Help()
			}
			return runShell(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.repoDir, "repo", ".", "project directory")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error, disabled)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newSplitCommand(opts))
	rootCmd.AddCommand(newTotalsCommand(opts))
	rootCmd.AddCommand(newHistoryCommand(opts))
	rootCmd.AddCommand(newEntriesCommand(opts))
	rootCmd.AddCommand(newImportCommand(opts))
	rootCmd.AddCommand(newShellCommand(opts))

	return rootCmd
}
