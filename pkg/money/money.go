package money

import "github.com/shopspring/decimal"

// Format renders a whole-dollar amount with exactly two decimal places,
// e.g. 10 -> "10.00".
func Format(dollars int) string {
	return decimal.NewFromInt(int64(dollars)).StringFixed(2)
}

// FormatCents renders a cent amount as dollars with two decimal places.
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
