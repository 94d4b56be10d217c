package calculator

import (
	"math"

	"github.com/shopspring/decimal"
)

// Tolerance is the absolute slack allowed when matching split totals.
const Tolerance = 0.01

// ValidAmount reports whether v is a usable positive money amount.
func ValidAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatAmount renders v with exactly two decimals (e.g. "12.50").
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Add sums amounts in decimal arithmetic so repeated contributions do not
// accumulate binary floating point drift.
func Add(amounts ...float64) float64 {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(decimal.NewFromFloat(a))
	}
	return sum.InexactFloat64()
}

// Remaining returns target - current, computed in decimal arithmetic.
func Remaining(target, current float64) float64 {
	return decimal.NewFromFloat(target).Sub(decimal.NewFromFloat(current)).InexactFloat64()
}

// Exceeds reports whether amount is strictly greater than limit when both
// are compared as decimals.
func Exceeds(amount, limit float64) bool {
	return decimal.NewFromFloat(amount).GreaterThan(decimal.NewFromFloat(limit))
}

// SumWithin reports whether values sum to want within Tolerance. The sum
// and the comparison are done in decimal arithmetic.
func SumWithin(values []float64, want float64) bool {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum.Sub(decimal.NewFromFloat(want)).Abs().LessThanOrEqual(decimal.NewFromFloat(Tolerance))
}
