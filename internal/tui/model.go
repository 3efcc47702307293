package tui

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/gcalc/internal/compare"
	"github.com/rgehrsitz/gcalc/internal/config"
	"github.com/rgehrsitz/gcalc/internal/domain"
	"github.com/rgehrsitz/gcalc/internal/output"
	"github.com/rgehrsitz/gcalc/internal/tui/components"
)

var million = decimal.NewFromInt(1_000_000)

// Slider positions where the phased and financing groups start.
const (
	firstPhasedField    = 5
	firstFinancingField = 9
)

// field binds one slider to the parameter it edits. apply runs only when the slider
// moves, so values loaded off the slider grid survive until the user changes them.
type field struct {
	slider *components.ParameterSlider
	apply  func(p *domain.InputParameters, s *components.ParameterSlider)
}

// Model is the calculator screen: ten sliders on the left, the comparison on the right.
// params is the source of truth; every slider change writes one parameter and
// recomputes the comparison.
type Model struct {
	project string
	engine  *compare.CompareEngine
	keys    keyMap

	fields []field
	focus  int
	pane   Pane

	params     domain.InputParameters
	comparison *compare.Comparison
	err        error

	exportDir string
	status    string

	width  int
	height int
}

// NewModel creates the calculator preloaded with cfg's parameters.
func NewModel(cfg *domain.Configuration, engine *compare.CompareEngine) Model {
	if cfg == nil {
		cfg = &domain.Configuration{Parameters: domain.DefaultInputParameters()}
	}
	if engine == nil {
		engine = compare.NewCompareEngine(nil)
	}

	m := Model{
		project: cfg.Project,
		engine:  engine,
		keys:    defaultKeyMap(),
		width:   120,
		height:  40,
	}
	m.params = config.ClampParameters(cfg.Parameters)
	m.fields = buildFields(m.params)
	m.fields[0].slider.SetFocused(true)
	m.recompute()
	m.status = m.roundedNotice()
	return m
}

// WithExportDir sets the directory CSV exports are written to.
func (m Model) WithExportDir(dir string) Model {
	m.exportDir = dir
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Parameters returns the parameters currently set on the sliders.
func (m Model) Parameters() domain.InputParameters { return m.params }

// Comparison returns the latest comparison, nil when the parameters are invalid.
func (m Model) Comparison() *compare.Comparison { return m.comparison }

func buildFields(p domain.InputParameters) []field {
	pct := func(label string, v decimal.Decimal, set func(*domain.InputParameters, decimal.Decimal)) field {
		s := components.NewParameterSlider(label, config.ToPercent(v), 0, 100, 0.5).
			WithDecimals(1).WithUnit("%")
		return field{slider: s, apply: func(p *domain.InputParameters, s *components.ParameterSlider) {
			set(p, config.FromPercent(s.Value))
		}}
	}
	months := func(label string, v int, rng domain.IntRange, set func(*domain.InputParameters, int)) field {
		s := components.NewParameterSlider(label, float64(v), float64(rng.Min), float64(rng.Max), 1).
			WithUnit(" mo")
		return field{slider: s, apply: func(p *domain.InputParameters, s *components.ParameterSlider) {
			set(p, s.IntValue())
		}}
	}

	contract := components.NewParameterSlider("Total Contract Value",
		p.TotalContractValue.Div(million).InexactFloat64(), 0, 5000, 10).
		WithPrefix("$").WithUnit("M")
	phases := components.NewParameterSlider("Number of Phases",
		float64(p.NumberOfPhases), float64(domain.PhaseCountRange.Min), float64(domain.PhaseCountRange.Max), 1)
	rate := components.NewParameterSlider("Bank Fee Rate (annual)",
		config.ToPercent(p.AnnualBankFeeRate), 0.1, 10, 0.1).
		WithDecimals(1).WithUnit("%")

	return []field{
		{contract, func(p *domain.InputParameters, s *components.ParameterSlider) {
			p.TotalContractValue = s.DecimalValue().Mul(million)
		}},
		pct("Advance Payment %", p.AdvancePaymentPercentOriginal, func(p *domain.InputParameters, v decimal.Decimal) {
			p.AdvancePaymentPercentOriginal = v
		}),
		pct("Performance Guarantee %", p.PerformanceGuaranteePercentOriginal, func(p *domain.InputParameters, v decimal.Decimal) {
			p.PerformanceGuaranteePercentOriginal = v
		}),
		months("Construction Duration", p.ConstructionDurationOriginalMonths, domain.ConstructionOriginalRange, func(p *domain.InputParameters, v int) {
			p.ConstructionDurationOriginalMonths = v
		}),
		months("Defects Liability Period", p.DefectsLiabilityDurationOriginalMonths, domain.DefectsLiabilityRange, func(p *domain.InputParameters, v int) {
			p.DefectsLiabilityDurationOriginalMonths = v
		}),
		{phases, func(p *domain.InputParameters, s *components.ParameterSlider) {
			p.NumberOfPhases = s.IntValue()
		}},
		pct("Phased PG %", p.PerformanceGuaranteePercentPhased, func(p *domain.InputParameters, v decimal.Decimal) {
			p.PerformanceGuaranteePercentPhased = v
		}),
		months("Phase Construction Duration", p.ConstructionDurationPhasedMonths, domain.ConstructionPhasedRange, func(p *domain.InputParameters, v int) {
			p.ConstructionDurationPhasedMonths = v
		}),
		months("Phase DLP Duration", p.DefectsLiabilityDurationPhasedMonths, domain.DefectsLiabilityRange, func(p *domain.InputParameters, v int) {
			p.DefectsLiabilityDurationPhasedMonths = v
		}),
		{rate, func(p *domain.InputParameters, s *components.ParameterSlider) {
			p.AnnualBankFeeRate = config.FromPercent(s.Value)
		}},
	}
}

// applyFocused writes the focused slider into params and recomputes.
func (m *Model) applyFocused() {
	m.fields[m.focus].apply(&m.params, m.fields[m.focus].slider)
	m.params = config.ClampParameters(m.params)
	m.recompute()
	m.status = m.roundedNotice()
}

// recompute reruns the comparison for params.
func (m *Model) recompute() {
	comp, err := m.engine.CompareParameters(m.project, m.params)
	if err != nil {
		m.comparison = nil
		m.err = err
		return
	}
	m.comparison = comp
	m.err = nil
}

// roundedNotice names the sliders whose position does not match the parameter they
// hold, which happens for file values that fall between slider steps.
func (m Model) roundedNotice() string {
	var labels []string
	for _, f := range m.fields {
		p := m.params
		f.apply(&p, f.slider)
		if !sameParameters(p, m.params) {
			labels = append(labels, f.slider.Label)
		}
	}
	if len(labels) == 0 {
		return ""
	}
	return "Shown rounded: " + strings.Join(labels, ", ") + " (results use the loaded values)"
}

func sameParameters(a, b domain.InputParameters) bool {
	return a.TotalContractValue.Equal(b.TotalContractValue) &&
		a.AdvancePaymentPercentOriginal.Equal(b.AdvancePaymentPercentOriginal) &&
		a.PerformanceGuaranteePercentOriginal.Equal(b.PerformanceGuaranteePercentOriginal) &&
		a.ConstructionDurationOriginalMonths == b.ConstructionDurationOriginalMonths &&
		a.DefectsLiabilityDurationOriginalMonths == b.DefectsLiabilityDurationOriginalMonths &&
		a.NumberOfPhases == b.NumberOfPhases &&
		a.PerformanceGuaranteePercentPhased.Equal(b.PerformanceGuaranteePercentPhased) &&
		a.ConstructionDurationPhasedMonths == b.ConstructionDurationPhasedMonths &&
		a.DefectsLiabilityDurationPhasedMonths == b.DefectsLiabilityDurationPhasedMonths &&
		a.AnnualBankFeeRate.Equal(b.AnnualBankFeeRate)
}

// exportCmd writes the current summary table as CSV.
func exportCmd(comp *compare.Comparison, dir string) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, domain.DefaultResultsFileName)
		written, err := output.WriteFormatted(output.CSVFormatter{}, comp, path)
		return ExportCompleteMsg{Path: written, Err: err}
	}
}
