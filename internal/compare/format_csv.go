package compare

import (
	"encoding/csv"
	"io"
	"strings"
)

// CSVHeader is the header row of the exported results table.
var CSVHeader = []string{"Metric", OriginalStructure, PhasedStructure, SavingsColumn}

// CSVFormatter formats the summary table as CSV
type CSVFormatter struct{}

// Format generates CSV output for the summary table
func (cf *CSVFormatter) Format(comp *Comparison) (string, error) {
	var sb strings.Builder
	if err := cf.Write(&sb, comp); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write streams the summary table as CSV to w.
func (cf *CSVFormatter) Write(w io.Writer, comp *Comparison) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, row := range comp.Summary {
		if err := writer.Write([]string{row.Metric, row.Original, row.Phased, row.Savings}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
