package compare

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const tableRule = 100

// TableFormatter formats the comparison as a console table
type TableFormatter struct{}

// Format generates the summary table followed by the worked calculations and conclusion
func (tf *TableFormatter) Format(comp *Comparison) string {
	var sb strings.Builder

	sb.WriteString("GUARANTEE COST COMPARISON\n")
	sb.WriteString(strings.Repeat("=", tableRule) + "\n")
	if comp.Project != "" {
		sb.WriteString(fmt.Sprintf("Project: %s\n", comp.Project))
	}
	sb.WriteString("\n")

	header := SummaryRow{Metric: "Metric", Original: OriginalStructure, Phased: PhasedStructure, Savings: SavingsColumn}
	widths := columnWidths(header, comp.Summary)

	sb.WriteString(tf.formatRow(header, widths))
	sb.WriteString(strings.Repeat("-", tableRule) + "\n")
	for _, row := range comp.Summary {
		sb.WriteString(tf.formatRow(row, widths))
	}
	sb.WriteString(strings.Repeat("=", tableRule) + "\n")

	writeSection(&sb, "ORIGINAL STRUCTURE", comp.OriginalDetails)
	writeSection(&sb, "PHASED STRUCTURE", comp.PhasedDetails)
	writeSection(&sb, "CONCLUSION", comp.Conclusion)

	return sb.String()
}

func (tf *TableFormatter) formatRow(row SummaryRow, widths [4]int) string {
	return fmt.Sprintf("%s  %s  %s  %s\n",
		padRight(row.Metric, widths[0]),
		padLeft(row.Original, widths[1]),
		padLeft(row.Phased, widths[2]),
		padLeft(row.Savings, widths[3]))
}

func writeSection(sb *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	sb.WriteString("\n" + title + "\n")
	sb.WriteString(strings.Repeat("-", len(title)) + "\n")
	for _, line := range lines {
		sb.WriteString("  " + line + "\n")
	}
}

func columnWidths(header SummaryRow, rows []SummaryRow) [4]int {
	var w [4]int
	for _, r := range append([]SummaryRow{header}, rows...) {
		for i, cell := range []string{r.Metric, r.Original, r.Phased, r.Savings} {
			if n := utf8.RuneCountInString(cell); n > w[i] {
				w[i] = n
			}
		}
	}
	return w
}

// fmt pads by bytes, so pad by runes for cells that may hold non-ASCII text.
func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
