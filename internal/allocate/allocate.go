// Package allocate splits an amount across the fixed buckets.
package allocate

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/model"
)

// ErrNegativeAmount is returned when a negative amount reaches the allocator.
var ErrNegativeAmount = errors.New("amount must not be negative")

var (
	incomeShare  = mustShare(model.BucketIncome)
	savingsShare = mustShare(model.BucketSavings)
)

// Allocate splits amount 60/25/15. Income and savings are floored; reserve
// takes whatever remains so the three parts always sum to amount.
func Allocate(amount int64) (model.Allocation, error) {
	if amount < 0 {
		return model.Allocation{}, ErrNegativeAmount
	}

	total := decimal.NewFromInt(amount)
	income := total.Mul(incomeShare).Floor().IntPart()
	savings := total.Mul(savingsShare).Floor().IntPart()

	return model.Allocation{
		Income:  income,
		Savings: savings,
		Reserve: amount - income - savings,
	}, nil
}

func mustShare(b model.Bucket) decimal.Decimal {
	info, ok := b.Info()
	if !ok {
		panic("allocate: missing bucket " + string(b))
	}
	return info.Share
}
