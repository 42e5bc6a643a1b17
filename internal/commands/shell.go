package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const shellHelp = `Enter an amount to split and record it.
  r, reload   reload totals
  h, help     show this help
  q, quit     exit`

func newShellCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive prompt: enter amounts, reload totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}
}

// runShell loops until quit or end of input. Rejected input and storage
// errors are printed and the loop keeps going.
func runShell(cmd *cobra.Command, opts *globalOptions) error {
	p, err := openProject(cmd, opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	view, err := p.tracker.Reload()
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
	} else if err := renderView(out, view); err != nil {
		return err
	}
	fmt.Fprintln(out, `Type an amount, "r" to reload, "q" to quit.`)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "amount> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "q", "quit", "exit":
			return nil
		case "h", "help", "?":
			fmt.Fprintln(out, shellHelp)
			continue
		case "r", "reload":
			view, err = p.tracker.Reload()
		default:
			view, err = p.tracker.Submit(line)
		}

		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if err := renderView(out, view); err != nil {
			return err
		}
	}
}
