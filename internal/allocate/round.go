package allocate

import "github.com/shopspring/decimal"

// DefaultStep is the smallest meaningful denomination.
const DefaultStep = 5

// RoundToStep rounds x to the nearest multiple of step, halves away from zero.
// A step below 1 leaves x unchanged.
func RoundToStep(x, step int64) int64 {
	if step <= 1 {
		return x
	}
	d := decimal.NewFromInt(step)
	return decimal.NewFromInt(x).Div(d).Round(0).Mul(d).IntPart()
}

// Round5 rounds x to the nearest multiple of 5.
func Round5(x int64) int64 {
	return RoundToStep(x, DefaultStep)
}
