package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/gcalc/internal/compare"
	"github.com/rgehrsitz/gcalc/pkg/format"
)

// HTMLFormatter produces a standalone HTML report with CSS bar charts.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    format.Currency,
	"compact": format.Compact,
	"pct":     format.Percent,
	"bar":     BarPercent,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(comp *compare.Comparison) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, comp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
