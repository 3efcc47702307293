package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BarWidth scales value against max into [0, width] cells. Negative values and an empty
// max give zero; any positive value gets at least one cell so it stays visible.
func BarWidth(value, max decimal.Decimal, width int) int {
	if width <= 0 || !max.IsPositive() || !value.IsPositive() {
		return 0
	}
	if value.GreaterThanOrEqual(max) {
		return width
	}
	cells := int(value.Mul(decimal.NewFromInt(int64(width))).Div(max).Round(0).IntPart())
	if cells < 1 {
		cells = 1
	}
	return cells
}

// BarPercent is BarWidth over a width of 100, for CSS widths.
func BarPercent(value, max decimal.Decimal) int {
	return BarWidth(value, max, 100)
}

// Bar draws a bar of the given cell count using block characters.
func Bar(cells int) string {
	if cells <= 0 {
		return ""
	}
	return strings.Repeat("█", cells)
}
