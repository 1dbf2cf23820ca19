package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"Plain number", "100", "100", true},
		{"Dollar sign", "$100.00", "100", true},
		{"Thousands separators", "$1,250.50", "1250.5", true},
		{"Whitespace", " 42.10 ", "42.1", true},
		{"Negative", "-$5.00", "-5", true},
		{"Empty", "", "0", false},
		{"Symbols only", "$ ,", "0", false},
		{"Lone dot", ".", "0", false},
		{"Garbage", "abc", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, d.Equal(decimal.RequireFromString(tt.expected)),
				"got %s, want %s", d, tt.expected)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Small", "5", "$5.00"},
		{"Two decimals", "42.1", "$42.10"},
		{"Thousands", "1250", "$1,250.00"},
		{"Millions", "1234567.89", "$1,234,567.89"},
		{"Zero", "0", "$0.00"},
		{"Negative", "-99.5", "-$99.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	d, ok := Parse("$1,250.00")
	assert.True(t, ok)
	assert.Equal(t, "$1,250.00", Format(d))
}

func TestValidAmount(t *testing.T) {
	assert.True(t, ValidAmount(decimal.RequireFromString("0.01")))
	assert.True(t, ValidAmount(decimal.RequireFromString("100")))
	assert.False(t, ValidAmount(decimal.Zero))
	assert.False(t, ValidAmount(decimal.RequireFromString("-10")))
	assert.False(t, ValidAmount(decimal.RequireFromString("1.005")), "sub-cent precision rejected")
}

func TestFundedPercentage(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		target   string
		expected float64
	}{
		{"Partial", "150", "500", 30},
		{"Exact", "500", "500", 100},
		{"Over target capped", "600", "500", 100},
		{"Zero target", "150", "0", 0},
		{"Negative target", "150", "-1", 0},
		{"Zero price", "0", "500", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FundedPercentage(
				decimal.RequireFromString(tt.price),
				decimal.RequireFromString(tt.target),
			)
			assert.InDelta(t, tt.expected, got, 0.0001)
		})
	}
}
