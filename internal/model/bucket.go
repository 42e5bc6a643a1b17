package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bucket identifies one of the fixed allocation categories.
type Bucket string

const (
	BucketIncome  Bucket = "income"
	BucketSavings Bucket = "savings"
	BucketReserve Bucket = "reserve"
)

// BucketInfo describes a bucket in the static bucket table.
type BucketInfo struct {
	Bucket Bucket
	Label  string
	Share  decimal.Decimal // fraction of the split amount, e.g. 0.60
}

var bucketTable = []BucketInfo{
	{Bucket: BucketIncome, Label: "Income 60%", Share: decimal.RequireFromString("0.60")},
	{Bucket: BucketSavings, Label: "Savings 25%", Share: decimal.RequireFromString("0.25")},
	{Bucket: BucketReserve, Label: "Reserve 15%", Share: decimal.RequireFromString("0.15")},
}

// Buckets returns the bucket table in display order.
func Buckets() []BucketInfo {
	out := make([]BucketInfo, len(bucketTable))
	copy(out, bucketTable)
	return out
}

// Info returns the table entry for b.
func (b Bucket) Info() (BucketInfo, bool) {
	for _, info := range bucketTable {
		if info.Bucket == b {
			return info, true
		}
	}
	return BucketInfo{}, false
}

// Label returns the display label, or the raw key for unknown buckets.
func (b Bucket) Label() string {
	if info, ok := b.Info(); ok {
		return info.Label
	}
	return string(b)
}

// Valid reports whether b is one of the enumerated buckets.
func (b Bucket) Valid() bool {
	_, ok := b.Info()
	return ok
}

// ParseBucket converts a bucket key ("income", "savings", "reserve").
func ParseBucket(s string) (Bucket, error) {
	b := Bucket(s)
	if !b.Valid() {
		return "", fmt.Errorf("unknown bucket %q", s)
	}
	return b, nil
}
