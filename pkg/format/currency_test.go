package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0"},
		{"999", "$999"},
		{"1000", "$1,000"},
		{"128000000", "$128,000,000"},
		{"2160000.49", "$2,160,000"},
		{"2160000.5", "$2,160,001"},
		{"-1234.4", "-$1,234"},
		{"-0.4", "$0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestYearsAndPercent(t *testing.T) {
	assert.Equal(t, "1.5", Years(decimal.NewFromFloat(1.5)))
	assert.Equal(t, "1.0", Years(decimal.NewFromInt(1)))
	assert.Equal(t, "0.6", Years(decimal.NewFromInt(7).Div(decimal.NewFromInt(12))))
	assert.Equal(t, "40.0%", Percent(decimal.NewFromFloat(0.4)))
	assert.Equal(t, "0.1%", Percent(decimal.NewFromFloat(0.001)))
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "$128.0M", Compact(decimal.NewFromInt(128_000_000)))
	assert.Equal(t, "$1.28B", Compact(decimal.NewFromInt(1_280_000_000)))
	assert.Equal(t, "$560K", Compact(decimal.NewFromInt(560_000)))
	assert.Equal(t, "-$2.2M", Compact(decimal.NewFromInt(-2_160_000)))
	assert.Equal(t, "$12", Compact(decimal.NewFromInt(12)))
}
