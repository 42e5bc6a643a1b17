package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/splitledger/splitledger/internal/history"
	"github.com/splitledger/splitledger/internal/model"
	"github.com/splitledger/splitledger/internal/tracker"
)

func renderView(w io.Writer, view tracker.View) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BUCKET\tLAST\tTOTAL")
	for _, row := range view.Rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", row.Label, row.Last, row.Total)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if view.Status != "" {
		_, err := fmt.Fprintln(w, view.Status)
		return err
	}
	return nil
}

func renderHistory(w io.Writer, entries []history.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No rounds recorded yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROUND\tWHEN\tSOURCE\tAMOUNT\tINCOME\tSAVINGS\tRESERVE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			e.RoundID,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.Source,
			e.Amount,
			e.Allocation.Income,
			e.Allocation.Savings,
			e.Allocation.Reserve,
		)
	}
	return tw.Flush()
}

func renderEntries(w io.Writer, b model.Bucket, entries []model.LedgerEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintf(w, "No records in %s.\n", b.Label())
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTIME\tAMOUNT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", e.Timestamp.Format("2006-01-02"), e.Timestamp.Format("15:04:05"), e.Amount)
	}
	return tw.Flush()
}
