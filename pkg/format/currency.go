// Package format renders decimal amounts for tables, charts and exports.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
)

// Currency returns whole dollars with thousands separators, e.g. "$1,234,567" or "-$1,234".
// Halves round away from zero.
func Currency(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	digits := groupThousands(rounded.Abs().StringFixed(0))
	if rounded.IsNegative() {
		return "-$" + digits
	}
	return "$" + digits
}

// Years renders a duration in years with one decimal, e.g. "1.5".
func Years(years decimal.Decimal) string {
	return years.StringFixed(1)
}

// Percent renders a fraction as a percentage with one decimal, e.g. 0.4 -> "40.0%".
func Percent(fraction decimal.Decimal) string {
	return fraction.Mul(hundred).StringFixed(1) + "%"
}

// Compact abbreviates large amounts for chart axes and cards, e.g. "$128.0M".
func Compact(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	abs := amount.Abs()
	switch {
	case abs.GreaterThanOrEqual(billion):
		return sign + "$" + abs.Div(billion).StringFixed(2) + "B"
	case abs.GreaterThanOrEqual(million):
		return sign + "$" + abs.Div(million).StringFixed(1) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return sign + "$" + abs.Div(thousand).StringFixed(0) + "K"
	}
	return sign + "$" + abs.StringFixed(0)
}

func groupThousands(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}
	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return b.String()
}
