package tui

// ExportCompleteMsg reports the outcome of a CSV export
type ExportCompleteMsg struct {
	Path string
	Err  error
}

// Pane selects what the results area shows
type Pane int

const (
	PaneSummary Pane = iota
	PaneCharts
)

func (p Pane) String() string {
	switch p {
	case PaneSummary:
		return "Summary"
	case PaneCharts:
		return "Charts"
	default:
		return "Unknown"
	}
}
