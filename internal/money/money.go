// Package money provides currency parsing and formatting helpers.
//
// Prices cross the API boundary as display strings ("$1,250.00"); internally
// every amount is a decimal.Decimal so repeated additions never drift.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts a currency display string into a decimal amount. Any
// non-numeric runes (currency symbols, thousands separators, whitespace) are
// stripped before parsing, mirroring how clients format prices. Returns the
// zero decimal and false when nothing parseable remains.
func Parse(s string) (decimal.Decimal, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Format renders an amount as a dollar display string with two decimal places
// and thousands separators, e.g. "$1,250.00".
func Format(d decimal.Decimal) string {
	neg := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteString(fracPart)
	return b.String()
}

// ValidAmount reports whether d is a positive amount representable at two
// decimal places without loss.
func ValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Round(2))
}

// FundedPercentage computes how far price has progressed toward target,
// capped at 100. A zero or negative target yields 0.
func FundedPercentage(price, target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}
	pct := price.Div(target).Mul(decimal.NewFromInt(100))
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return 100
	}
	f, _ := pct.Float64()
	return f
}
