package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction represents a parsed bank CSV row.
type BankTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = withdrawal, positive = deposit
	Reference   string
	Type        string // bank transaction type (ACH_CREDIT, etc.)
}

// IsDeposit reports whether the transaction brings money in.
func (t BankTransaction) IsDeposit() bool {
	return t.Amount.IsPositive()
}

// WholeUnits rounds the amount to whole currency units, half away from zero.
func (t BankTransaction) WholeUnits() int64 {
	return t.Amount.Round(0).IntPart()
}
