package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/gcalc/internal/compare"
	"github.com/rgehrsitz/gcalc/internal/output"
	"github.com/rgehrsitz/gcalc/internal/tui/tuistyles"
	"github.com/rgehrsitz/gcalc/pkg/format"
)

// BarChart draws a grouped horizontal bar chart of a comparison chart
type BarChart struct {
	Chart      compare.Chart
	Width      int // Bar width in cells
	ShowLegend bool
}

// NewBarChart creates a new bar chart
func NewBarChart(chart compare.Chart) *BarChart {
	return &BarChart{
		Chart:      chart,
		Width:      30,
		ShowLegend: true,
	}
}

// WithWidth sets the bar width
func (c *BarChart) WithWidth(width int) *BarChart {
	c.Width = width
	return c
}

// Render returns the styled chart
func (c *BarChart) Render() string {
	if len(c.Chart.Series) == 0 || len(c.Chart.Categories) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render(c.Chart.Title))
	content.WriteString("\n")

	labelWidth := 0
	for _, cat := range c.Chart.Categories {
		labelWidth = max(labelWidth, lipgloss.Width(cat))
	}
	labelStyle := lipgloss.NewStyle().Width(labelWidth).Foreground(tuistyles.ColorMuted)

	peak := c.Chart.MaxValue()
	for i, cat := range c.Chart.Categories {
		for si, s := range c.Chart.Series {
			if i >= len(s.Values) {
				continue
			}
			label := ""
			if si == 0 {
				label = cat
			}
			cells := output.BarWidth(s.Values[i], peak, c.Width)
			bar := lipgloss.NewStyle().Foreground(tuistyles.SeriesColor(si)).Render(output.Bar(cells))

			content.WriteString(labelStyle.Render(label))
			content.WriteString(" ")
			content.WriteString(bar)
			content.WriteString(strings.Repeat(" ", c.Width-cells+1))
			content.WriteString(format.Compact(s.Values[i]))
			content.WriteString("\n")
		}
	}

	if c.ShowLegend && len(c.Chart.Series) > 1 {
		content.WriteString(c.renderLegend())
		content.WriteString("\n")
	}

	return content.String()
}

func (c *BarChart) renderLegend() string {
	items := make([]string, 0, len(c.Chart.Series))
	for si, s := range c.Chart.Series {
		swatch := lipgloss.NewStyle().Foreground(tuistyles.SeriesColor(si)).Render("■")
		items = append(items, swatch+" "+s.Name)
	}
	return strings.Join(items, "   ")
}
