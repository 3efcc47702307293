package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rgehrsitz/gcalc/internal/compare"
	"github.com/rgehrsitz/gcalc/internal/domain"
)

// Formatter renders a comparison into a byte slice.
type Formatter interface {
	Name() string
	Format(comp *compare.Comparison) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(comp *compare.Comparison) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(comp *compare.Comparison) ([]byte, error) { return f.F(comp) }

// TableFormatter is the plain summary table.
type TableFormatter struct{}

func (TableFormatter) Name() string { return "table" }

func (TableFormatter) Format(comp *compare.Comparison) ([]byte, error) {
	return []byte((&compare.TableFormatter{}).Format(comp)), nil
}

// CSVFormatter is the downloadable summary table.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(comp *compare.Comparison) ([]byte, error) {
	s, err := (&compare.CSVFormatter{}).Format(comp)
	return []byte(s), err
}

// JSONFormatter emits the whole comparison as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(comp *compare.Comparison) ([]byte, error) {
	s, err := (&compare.JSONFormatter{Pretty: true}).Format(comp)
	return []byte(s), err
}

var registry = map[string]Formatter{
	"table":   TableFormatter{},
	"console": ConsoleFormatter{},
	"csv":     CSVFormatter{},
	"json":    JSONFormatter{},
	"html":    HTMLFormatter{},
}

var aliases = map[string]string{
	"text":   "table",
	"charts": "console",
	"htm":    "html",
}

// AvailableFormatterNames returns the registered formatter names in sorted order.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the accepted alternative names in sorted order.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetFormatterByName resolves a formatter or alias; nil when unknown.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		name = target
	}
	return registry[name]
}

// DefaultFileName returns the report file name used when the caller gives none.
func DefaultFileName(f Formatter) string {
	switch f.Name() {
	case "csv":
		return domain.DefaultResultsFileName
	case "html":
		return "guarantee_cost_calculator_report.html"
	case "json":
		return "guarantee_cost_calculator_results.json"
	default:
		return "guarantee_cost_calculator_report.txt"
	}
}

// WriteFormatted renders comp with f and writes it to filename, or to the formatter's
// default file name when filename is empty. It returns the path written.
func WriteFormatted(f Formatter, comp *compare.Comparison, filename string) (string, error) {
	data, err := f.Format(comp)
	if err != nil {
		return "", fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}

	if filename == "" {
		filename = DefaultFileName(f)
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
