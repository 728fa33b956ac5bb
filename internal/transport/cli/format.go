package cli

import (
	"math"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders v as a dollar amount with two decimals, e.g. $1200.50.
// NaN and infinities have no currency form and render as N/A.
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}
