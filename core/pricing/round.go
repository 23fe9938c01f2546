package pricing

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// RoundFloat rounds the exact binary value of v to places decimals, ties to
// even. 2.675 is stored as 2.67499999... and therefore rounds to 2.67.
// Non-finite values are returned unchanged.
func RoundFloat(v float64, places int) float64 {
	if !finite(v) {
		return v
	}
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	return r
}

// RoundTo is RoundFloat as a decimal carrying exactly places digits.
// Callers must pass a finite value.
func RoundTo(v float64, places int) decimal.Decimal {
	if !finite(v) {
		return decimal.Zero
	}
	return decimal.RequireFromString(strconv.FormatFloat(v, 'f', places, 64))
}

// Round rounds a monetary amount to 2 decimal places for presentation
func Round(v float64) decimal.Decimal {
	return RoundTo(v, 2)
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
