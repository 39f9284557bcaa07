package ui

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Money formats an amount with two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// NullMoney formats an optional amount; missing values print as "-".
func NullMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return Money(d.Decimal)
}

// Int formats n, or "-" when it is zero.
func Int(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
