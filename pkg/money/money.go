package money

import "github.com/shopspring/decimal"

// FormatCents renders an amount in minor units as dollars, e.g. 15000 -> "$150.00".
func FormatCents(cents int64) string {
	dollars := decimal.New(cents, -2)
	if dollars.IsNegative() {
		return "-$" + dollars.Abs().StringFixed(2)
	}
	return "$" + dollars.StringFixed(2)
}
