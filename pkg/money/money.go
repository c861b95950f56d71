// Package money provides formatting helpers for decimal monetary amounts,
// shared by the output formatters.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders an amount as USD with cents, e.g. "$1,234.56".
func Format(amount decimal.Decimal) string {
	return "$" + Comma(amount)
}

// FormatWhole renders an amount as USD without cents, e.g. "$1,234".
func FormatWhole(amount decimal.Decimal) string {
	s := Comma(amount)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	return "$" + s
}

// Comma renders an amount with thousands separators and two decimal places.
func Comma(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteByte(',')
		}
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// Percent renders a fractional rate as a percentage, e.g. 0.07 -> "7.00%".
func Percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
