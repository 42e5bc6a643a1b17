package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketsOrderAndShares(t *testing.T) {
	buckets := Buckets()
	require.Len(t, buckets, 3)
	assert.Equal(t, BucketIncome, buckets[0].Bucket)
	assert.Equal(t, BucketSavings, buckets[1].Bucket)
	assert.Equal(t, BucketReserve, buckets[2].Bucket)

	sum := decimal.Zero
	for _, b := range buckets {
		sum = sum.Add(b.Share)
	}
	assert.True(t, sum.Equal(decimal.NewFromInt(1)), "shares should sum to 1, got %s", sum)
}

func TestBucketsReturnsCopy(t *testing.T) {
	buckets := Buckets()
	buckets[0].Label = "changed"
	assert.Equal(t, "Income 60%", BucketIncome.Label())
}

func TestParseBucket(t *testing.T) {
	b, err := ParseBucket("savings")
	require.NoError(t, err)
	assert.Equal(t, BucketSavings, b)

	_, err = ParseBucket("checking")
	assert.Error(t, err)
	assert.Equal(t, "checking", Bucket("checking").Label())
}

func TestAllocationFor(t *testing.T) {
	a := Allocation{Income: 600, Savings: 250, Reserve: 150}
	assert.Equal(t, int64(600), a.For(BucketIncome))
	assert.Equal(t, int64(250), a.For(BucketSavings))
	assert.Equal(t, int64(150), a.For(BucketReserve))
	assert.Equal(t, int64(0), a.For(Bucket("other")))
	assert.Equal(t, int64(1000), a.Total())
}

func TestBankTransactionWholeUnits(t *testing.T) {
	tests := []struct {
		amount  string
		deposit bool
		units   int64
	}{
		{"3500.00", true, 3500},
		{"127.50", true, 128},
		{"127.49", true, 127},
		{"-4.00", false, -4},
		{"0", false, 0},
	}
	for _, tt := range tests {
		txn := BankTransaction{Amount: decimal.RequireFromString(tt.amount)}
		assert.Equal(t, tt.deposit, txn.IsDeposit(), "amount %s", tt.amount)
		assert.Equal(t, tt.units, txn.WholeUnits(), "amount %s", tt.amount)
	}
}
