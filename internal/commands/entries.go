package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/splitledger/splitledger/internal/model"
)

func newEntriesCommand(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "entries <bucket>",
		Short: "List the records of one bucket's ledger (income, savings or reserve)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := model.ParseBucket(strings.ToLower(strings.TrimSpace(args[0])))
			if err != nil {
				return err
			}

			p, err := openProject(cmd, opts)
			if err != nil {
				return err
			}
			entries, err := p.store.Entries(b)
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}
			return renderEntries(cmd.OutOrStdout(), b, entries)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of most recent records to show (0 = all)")

	return cmd
}
