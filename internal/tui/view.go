package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/gcalc/internal/tui/components"
	"github.com/rgehrsitz/gcalc/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	left := m.renderParameters()

	var right string
	switch {
	case m.err != nil:
		right = tuistyles.ErrorStyle.Render("Cannot calculate: " + m.err.Error())
	case m.pane == PaneCharts:
		right = m.renderCharts()
	default:
		right = m.renderSummary()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	if m.width < 110 {
		body = lipgloss.JoinVertical(lipgloss.Left, left, right)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		body,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("Guarantee Cost Calculator")
	sub := "Original single project vs phased structure"
	if m.project != "" {
		sub = m.project + " · " + sub
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(sub))
}

func (m Model) renderParameters() string {
	var b strings.Builder

	b.WriteString(tuistyles.SectionStyle.Render("Original Structure"))
	b.WriteString("\n")
	for i, f := range m.fields {
		if i == firstPhasedField {
			b.WriteString(tuistyles.SectionStyle.Render("Phased Structure"))
			b.WriteString("\n")
		}
		if i == firstFinancingField {
			b.WriteString(tuistyles.SectionStyle.Render("Financing"))
			b.WriteString("\n")
		}
		b.WriteString(f.slider.RenderCompact())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.fields[m.focus].slider.Render())
	return b.String()
}

func (m Model) renderSummary() string {
	comp := m.comparison
	r := comp.Result

	cards := components.MetricRow(
		components.NewSavingsCard("Total Guarantee Cost", r.TotalCostOriginal, r.TotalCostPhased, "saved").WithWidth(34),
		components.NewSavingsCard("Peak Credit Line", r.CreditLineOriginal, r.CreditLinePhased, "freed").WithWidth(34),
	)

	widths := [4]int{22, 16, 24, 20}
	row := func(style lipgloss.Style, cells ...string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			align := lipgloss.Right
			if i == 0 {
				align = lipgloss.Left
			}
			parts[i] = style.Width(widths[i]).Align(align).Render(c)
		}
		return strings.Join(parts, " ")
	}

	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n\n")
	b.WriteString(row(tuistyles.TableHeaderStyle, "Metric", "Original", "Phased", "Savings"))
	b.WriteString("\n")
	for _, s := range comp.Summary {
		b.WriteString(row(tuistyles.TableCellStyle, s.Metric, s.Original, s.Phased, s.Savings))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, line := range comp.Conclusion {
		b.WriteString(tuistyles.InfoStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCharts() string {
	charts := m.comparison.Charts()
	rendered := make([]string, 0, len(charts))
	for _, c := range charts {
		rendered = append(rendered, components.NewBarChart(c).WithWidth(30).Render())
	}
	return strings.Join(rendered, "\n")
}

func (m Model) renderStatusBar() string {
	help := make([]string, 0, 8)
	for _, b := range m.keys.shortHelp() {
		h := b.Help()
		help = append(help, tuistyles.HelpKeyStyle.Render(h.Key)+" "+tuistyles.HelpDescStyle.Render(h.Desc))
	}
	line := strings.Join(help, " • ")
	if m.status != "" {
		line = tuistyles.InfoStyle.Render(m.status) + "\n" + line
	}
	return tuistyles.StatusBarStyle.Render(line)
}
