package allocate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitledger/splitledger/internal/model"
)

func TestAllocate_Examples(t *testing.T) {
	tests := []struct {
		amount int64
		want   model.Allocation
	}{
		{1000, model.Allocation{Income: 600, Savings: 250, Reserve: 150}},
		{17, model.Allocation{Income: 10, Savings: 4, Reserve: 3}},
		{0, model.Allocation{}},
		{5, model.Allocation{Income: 3, Savings: 1, Reserve: 1}},
		{20, model.Allocation{Income: 12, Savings: 5, Reserve: 3}},
		{1005, model.Allocation{Income: 603, Savings: 251, Reserve: 151}},
	}
	for _, tt := range tests {
		got, err := Allocate(tt.amount)
		require.NoError(t, err, "amount %d", tt.amount)
		assert.Equal(t, tt.want, got, "amount %d", tt.amount)
	}
}

func TestAllocate_SumInvariant(t *testing.T) {
	check := func(a int64) {
		got, err := Allocate(a)
		require.NoError(t, err)
		require.Equal(t, a, got.Income+got.Savings+got.Reserve, "amount %d", a)
		require.GreaterOrEqual(t, got.Reserve, int64(0), "amount %d", a)
	}

	for a := int64(0); a <= 20_000; a++ {
		check(a)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20_000; i++ {
		check(rng.Int63n(10_000_001))
	}
	check(10_000_000)
}

func TestAllocate_ReserveDeviation(t *testing.T) {
	// Multiples of 20 split exactly; otherwise reserve absorbs at most 2 units.
	for a := int64(0); a <= 2_000; a++ {
		got, err := Allocate(a)
		require.NoError(t, err)

		exact := a * 15 / 100
		dev := got.Reserve - exact
		if a%20 == 0 {
			assert.Equal(t, exact, got.Reserve, "amount %d", a)
		}
		assert.True(t, dev >= 0 && dev <= 2, "amount %d: reserve %d deviates by %d", a, got.Reserve, dev)
	}
}

func TestAllocate_Negative(t *testing.T) {
	_, err := Allocate(-5)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}
