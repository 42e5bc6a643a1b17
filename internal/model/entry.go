package model

import "time"

// LedgerEntry is one record in a bucket's ledger.
type LedgerEntry struct {
	Timestamp time.Time
	Amount    int64
}

// Allocation is the result of splitting one amount across the three buckets.
type Allocation struct {
	Income  int64
	Savings int64
	Reserve int64
}

// Total returns the sum of all three parts.
func (a Allocation) Total() int64 {
	return a.Income + a.Savings + a.Reserve
}

// For returns the part assigned to b.
func (a Allocation) For(b Bucket) int64 {
	switch b {
	case BucketIncome:
		return a.Income
	case BucketSavings:
		return a.Savings
	case BucketReserve:
		return a.Reserve
	default:
		return 0
	}
}
