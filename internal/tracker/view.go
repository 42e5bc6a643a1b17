package tracker

import (
	"fmt"

	"github.com/splitledger/splitledger/internal/model"
)

// StatusReloaded is the status line after a plain reload.
const StatusReloaded = "Totals reloaded."

// Row is one bucket's line in the view.
type Row struct {
	Bucket model.Bucket
	Label  string
	Last   int64
	Total  int64
}

// View is what a UI renders after each command.
type View struct {
	Rows   []Row
	Status string
}

// Row returns the row for bucket b.
func (v View) Row(b model.Bucket) (Row, bool) {
	for _, r := range v.Rows {
		if r.Bucket == b {
			return r, true
		}
	}
	return Row{}, false
}

// SplitStatus formats the status line reporting a split.
func SplitStatus(a model.Allocation) string {
	return fmt.Sprintf("Split OK: Income %d | Savings %d | Reserve %d", a.Income, a.Savings, a.Reserve)
}
