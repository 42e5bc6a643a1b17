package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/splitledger/splitledger/internal/importer"
	"github.com/splitledger/splitledger/internal/tracker"
)

func newImportCommand(opts *globalOptions) *cobra.Command {
	var format string
	var keep bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Split every deposit found in bank exports under import/",
		Long: `Split every deposit found in bank exports under import/.

Each deposit is rounded to whole units and recorded like "split". Files are
moved to import/processed/ once every deposit in them is recorded. If a ledger
write fails partway through a file, the deposits recorded before the failure
stay in the ledgers and the file stays in import/: importing it again records
those deposits a second time, so remove them from the file first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format %q (known: %v)", format, importer.DefaultRegistry().Formats())
			}

			p, err := openProject(cmd, opts)
			if err != nil {
				return err
			}
			return runImport(cmd, p, parser, keep)
		},
	}

	cmd.Flags().StringVar(&format, "format", "chase", "bank export format")
	cmd.Flags().BoolVar(&keep, "keep", false, "leave files in import/ instead of moving them to import/processed/")

	return cmd
}

func runImport(cmd *cobra.Command, p *project, parser importer.Parser, keep bool) error {
	out := cmd.OutOrStdout()

	files, err := importer.Scan(p.root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "Nothing to import.")
		return nil
	}

	for _, file := range files {
		txns, err := importer.ParseFile(parser, file.Path)
		if err != nil {
			return err
		}

		split, skipped := 0, 0
		for _, txn := range importer.Deposits(txns) {
			_, err := p.tracker.Record(txn.WholeUnits(), txn.Date, "import:"+file.Name)
			if tracker.IsInputError(err) {
				p.log.Info().Str("file", file.Name).Str("ref", txn.Reference).Err(err).Msg("deposit skipped")
				skipped++
				continue
			}
			if err != nil {
				return fmt.Errorf("importing %s: %d deposits recorded before the failure, file left in import/: %w", file.Name, split, err)
			}
			split++
		}

		if !keep {
			if err := importer.MarkProcessed(p.root, file.Name); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "Imported %s: %d deposits split, %d skipped\n", file.Name, split, skipped)
	}

	view, err := p.tracker.Reload()
	if err != nil {
		return err
	}
	return renderView(out, view)
}
