package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/gcalc/internal/domain"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ExportCompleteMsg:
		if msg.Err != nil {
			m.status = "Export failed: " + msg.Err.Error()
		} else {
			m.status = "Exported " + msg.Path
		}
		return m, nil
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)

	case key.Matches(msg, m.keys.Increase):
		if m.fields[m.focus].slider.Increment() {
			m.applyFocused()
		}

	case key.Matches(msg, m.keys.Decrease):
		if m.fields[m.focus].slider.Decrement() {
			m.applyFocused()
		}

	case key.Matches(msg, m.keys.View):
		if m.pane == PaneSummary {
			m.pane = PaneCharts
		} else {
			m.pane = PaneSummary
		}

	case key.Matches(msg, m.keys.Export):
		if m.comparison == nil {
			m.status = "Nothing to export: fix the parameters first"
			return m, nil
		}
		return m, exportCmd(m.comparison, m.exportDir)

	case key.Matches(msg, m.keys.Reset):
		focus := m.focus
		m.params = domain.DefaultInputParameters()
		m.fields = buildFields(m.params)
		m.focus = focus
		m.fields[focus].slider.SetFocused(true)
		m.recompute()
		m.status = "Parameters reset"
	}
	return m, nil
}

// moveFocus cycles the focused slider by delta.
func (m *Model) moveFocus(delta int) {
	m.fields[m.focus].slider.SetFocused(false)
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	m.fields[m.focus].slider.SetFocused(true)
}
