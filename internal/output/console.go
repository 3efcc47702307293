package output

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rgehrsitz/gcalc/internal/compare"
	"github.com/rgehrsitz/gcalc/pkg/format"
)

const consoleBarWidth = 40

// ConsoleFormatter prints the summary table followed by the three charts as text bars.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(comp *compare.Comparison) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString((&compare.TableFormatter{}).Format(comp))

	for _, chart := range comp.Charts() {
		buf.WriteString("\n")
		writeChart(&buf, chart)
	}
	return buf.Bytes(), nil
}

func writeChart(buf *bytes.Buffer, chart compare.Chart) {
	buf.WriteString(strings.ToUpper(chart.Title) + "\n")
	buf.WriteString(strings.Repeat("-", utf8.RuneCountInString(chart.Title)) + "\n")

	max := chart.MaxValue()
	labelWidth := 0
	for _, cat := range chart.Categories {
		for _, s := range chart.Series {
			if n := utf8.RuneCountInString(barLabel(chart, cat, s.Name)); n > labelWidth {
				labelWidth = n
			}
		}
	}

	for i, cat := range chart.Categories {
		for _, s := range chart.Series {
			if i >= len(s.Values) {
				continue
			}
			v := s.Values[i]
			label := barLabel(chart, cat, s.Name)
			cells := BarWidth(v, max, consoleBarWidth)
			fmt.Fprintf(buf, "  %s%s %s %s\n",
				label, strings.Repeat(" ", labelWidth-utf8.RuneCountInString(label)),
				Bar(cells)+strings.Repeat(" ", consoleBarWidth-cells), format.Compact(v))
		}
	}
}

// Single-series charts label bars by category only.
func barLabel(chart compare.Chart, category, series string) string {
	if len(chart.Series) == 1 {
		return category
	}
	return category + " / " + series
}
