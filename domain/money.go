package domain

import "github.com/shopspring/decimal"

// Epsilon absorbs floating-point representation error left over from
// repeated rounding when comparing a requested weight against stock.
const Epsilon = 1e-9

// Round2 rounds a monetary value to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Round3 rounds a weight to 3 decimal places (gram resolution), half away
// from zero. This is the single rounding point of the money-to-weight
// conversion.
func Round3(v float64) float64 {
	return decimal.NewFromFloat(v).Round(3).InexactFloat64()
}

// FormatMoney renders a monetary value as "<prefix><value to 2 dp>".
func FormatMoney(prefix string, v float64) string {
	return prefix + decimal.NewFromFloat(v).StringFixed(2)
}

// FormatKg renders a weight as "<value to 3 dp> kg".
func FormatKg(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(3) + " kg"
}

// SumMoney adds monetary values with decimal arithmetic so report totals
// do not pick up float accumulation drift.
func SumMoney(values []float64) float64 {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum.InexactFloat64()
}
