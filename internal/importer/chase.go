package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/model"
)

// ChaseParser parses Chase checking exports. Columns are located by header
// name, so reordered or trailing-comma exports still parse.
type ChaseParser struct{}

const chaseDateFormat = "01/02/2006"

var chaseColumns = []string{"Posting Date", "Description", "Amount", "Type"}

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV and returns BankTransactions.
func (p *ChaseParser) Parse(r io.Reader) ([]model.BankTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	cols, err := columnIndex(records[0], chaseColumns)
	if err != nil {
		return nil, fmt.Errorf("chase header: %w", err)
	}

	var txns []model.BankTransaction
	for i, rec := range records[1:] {
		txn, err := parseChaseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseChaseRow(rec []string, cols map[string]int) (model.BankTransaction, error) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	date, err := time.ParseInLocation(chaseDateFormat, field("Posting Date"), time.Local)
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing date %q: %w", field("Posting Date"), err)
	}

	amount, err := decimal.NewFromString(field("Amount"))
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing amount %q: %w", field("Amount"), err)
	}

	desc := field("Description")
	return model.BankTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Reference:   makeRef("chase", date, desc),
		Type:        field("Type"),
	}, nil
}

// columnIndex maps each wanted header name to its position.
func columnIndex(header, want []string) (map[string]int, error) {
	cols := make(map[string]int, len(want))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
		for _, w := range want {
			if strings.EqualFold(h, w) {
				cols[w] = i
			}
		}
	}
	for _, w := range want {
		if _, ok := cols[w]; !ok {
			return nil, fmt.Errorf("missing column %q", w)
		}
	}
	return cols, nil
}

// makeRef creates a reference like chase_20250103_PAYROLLACM.
func makeRef(prefix string, date time.Time, desc string) string {
	clean := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(clean) > 10 {
		clean = clean[:10]
	}
	return fmt.Sprintf("%s_%s_%s", prefix, date.Format("20060102"), clean)
}
