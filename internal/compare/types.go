package compare

import (
	"fmt"

	"github.com/rgehrsitz/gcalc/internal/domain"
	"github.com/rgehrsitz/gcalc/pkg/format"
	"github.com/shopspring/decimal"
)

// Structure column headings shared by the table, CSV and chart outputs.
const (
	OriginalStructure = "Original Structure"
	PhasedStructure   = "Phased Structure"
	SavingsColumn     = "Savings/Improvement"
)

// SummaryRow is one formatted line of the results table. Savings is empty for rows
// that have no meaningful difference (values, durations, annual costs).
type SummaryRow struct {
	Metric   string `json:"metric"`
	Original string `json:"original"`
	Phased   string `json:"phased"`
	Savings  string `json:"savings"`
}

// ChartSeries is one coloured bar group of a chart.
type ChartSeries struct {
	Name   string            `json:"name"`
	Values []decimal.Decimal `json:"values"`
}

// Chart is a grouped bar chart: every series has one value per category.
type Chart struct {
	Title      string        `json:"title"`
	Categories []string      `json:"categories"`
	Series     []ChartSeries `json:"series"`
}

// MaxValue returns the largest value across all series, or zero for an empty chart.
func (c Chart) MaxValue() decimal.Decimal {
	max := decimal.Zero
	for _, s := range c.Series {
		for _, v := range s.Values {
			if v.GreaterThan(max) {
				max = v
			}
		}
	}
	return max
}

// Comparison is the presentation model of one calculation: the summary table, the three
// charts, the worked calculations and the conclusion.
type Comparison struct {
	Project    string                    `json:"project,omitempty"`
	Parameters domain.InputParameters    `json:"parameters"`
	Result     *domain.CalculationResult `json:"result"`

	Summary         []SummaryRow `json:"summary"`
	CostChart       Chart        `json:"costChart"`
	SavingsChart    Chart        `json:"savingsChart"`
	CreditLineChart Chart        `json:"creditLineChart"`

	OriginalDetails []string `json:"originalDetails"`
	PhasedDetails   []string `json:"phasedDetails"`
	Conclusion      []string `json:"conclusion"`
}

// Charts returns the three charts in display order.
func (c *Comparison) Charts() []Chart {
	return []Chart{c.CostChart, c.SavingsChart, c.CreditLineChart}
}

// NewComparison builds the presentation model for a computed result.
func NewComparison(project string, params domain.InputParameters, r *domain.CalculationResult) *Comparison {
	return &Comparison{
		Project:         project,
		Parameters:      params,
		Result:          r,
		Summary:         buildSummary(r),
		CostChart:       buildCostChart(r),
		SavingsChart:    buildSavingsChart(r),
		CreditLineChart: buildCreditLineChart(r),
		OriginalDetails: buildOriginalDetails(params, r),
		PhasedDetails:   buildPhasedDetails(params, r),
		Conclusion:      buildConclusion(r),
	}
}

func buildSummary(r *domain.CalculationResult) []SummaryRow {
	perPhase := func(s string) string { return s + " per phase" }
	c := format.Currency
	y := format.Years

	return []SummaryRow{
		{"APG Value", c(r.APGValueOriginal), perPhase(c(r.APGValuePhased)), ""},
		{"PG Value", c(r.PGValueOriginal), perPhase(c(r.PGValuePhased)), ""},
		{"APG Duration (years)", y(r.APGDurationOriginal), perPhase(y(r.APGDurationPhased)), ""},
		{"PG Duration (years)", y(r.PGDurationOriginal), perPhase(y(r.PGDurationPhased)), ""},
		{"APG Annual Cost", c(r.APGAnnualCostOriginal), perPhase(c(r.APGAnnualCostPhased)), ""},
		{"PG Annual Cost", c(r.PGAnnualCostOriginal), perPhase(c(r.PGAnnualCostPhased)), ""},
		{"APG Total Cost", c(r.APGTotalCostOriginal), c(r.APGTotalCostPhased), c(r.APGSavings)},
		{"PG Total Cost", c(r.PGTotalCostOriginal), c(r.PGTotalCostPhased), c(r.PGSavings)},
		{"Total Cost", c(r.TotalCostOriginal), c(r.TotalCostPhased), c(r.TotalSavings)},
		{"Credit Line Required", c(r.CreditLineOriginal), c(r.CreditLinePhased) + " at any time", c(r.CreditLineSavings) + " freed"},
	}
}

func buildCostChart(r *domain.CalculationResult) Chart {
	return Chart{
		Title:      "Cost Comparison: Original vs Phased",
		Categories: []string{"APG", "PG", "Total"},
		Series: []ChartSeries{
			{Name: OriginalStructure, Values: []decimal.Decimal{r.APGTotalCostOriginal, r.PGTotalCostOriginal, r.TotalCostOriginal}},
			{Name: PhasedStructure, Values: []decimal.Decimal{r.APGTotalCostPhased, r.PGTotalCostPhased, r.TotalCostPhased}},
		},
	}
}

func buildSavingsChart(r *domain.CalculationResult) Chart {
	return Chart{
		Title:      "Savings from Phased Structure",
		Categories: []string{"APG Savings", "PG Savings", "Total Savings"},
		Series: []ChartSeries{
			{Name: "Amount", Values: []decimal.Decimal{r.APGSavings, r.PGSavings, r.TotalSavings}},
		},
	}
}

func buildCreditLineChart(r *domain.CalculationResult) Chart {
	return Chart{
		Title:      "Credit Line Requirements",
		Categories: []string{"Original", "Phased"},
		Series: []ChartSeries{
			{Name: "Credit Line Required", Values: []decimal.Decimal{r.CreditLineOriginal, r.CreditLinePhased}},
		},
	}
}

func buildOriginalDetails(p domain.InputParameters, r *domain.CalculationResult) []string {
	c := format.Currency
	rate := format.Percent(p.AnnualBankFeeRate)
	return []string{
		fmt.Sprintf("APG Value: %s × %s = %s", c(p.TotalContractValue), format.Percent(p.AdvancePaymentPercentOriginal), c(r.APGValueOriginal)),
		fmt.Sprintf("PG Value: %s × %s = %s", c(p.TotalContractValue), format.Percent(p.PerformanceGuaranteePercentOriginal), c(r.PGValueOriginal)),
		fmt.Sprintf("APG Duration: %d ÷ 12 = %s years", p.ConstructionDurationOriginalMonths, format.Years(r.APGDurationOriginal)),
		fmt.Sprintf("PG Duration: (%d+%d) ÷ 12 = %s years", p.ConstructionDurationOriginalMonths, p.DefectsLiabilityDurationOriginalMonths, format.Years(r.PGDurationOriginal)),
		fmt.Sprintf("APG Total Cost: %s × %s × %s = %s", c(r.APGValueOriginal), rate, format.Years(r.APGDurationOriginal), c(r.APGTotalCostOriginal)),
		fmt.Sprintf("PG Total Cost: %s × %s × %s = %s", c(r.PGValueOriginal), rate, format.Years(r.PGDurationOriginal), c(r.PGTotalCostOriginal)),
	}
}

func buildPhasedDetails(p domain.InputParameters, r *domain.CalculationResult) []string {
	c := format.Currency
	rate := format.Percent(p.AnnualBankFeeRate)
	return []string{
		fmt.Sprintf("Phase Contract Value: %s ÷ %d = %s", c(p.TotalContractValue), p.NumberOfPhases, c(r.PhaseContractValue)),
		fmt.Sprintf("APG per Phase: %s × %s = %s", c(r.PhaseContractValue), format.Percent(p.AdvancePaymentPercentOriginal), c(r.APGValuePhased)),
		fmt.Sprintf("PG per Phase: %s × %s = %s", c(r.PhaseContractValue), format.Percent(p.PerformanceGuaranteePercentPhased), c(r.PGValuePhased)),
		fmt.Sprintf("APG Total Cost: %s × %s × %s × %d = %s", c(r.APGValuePhased), rate, format.Years(r.APGDurationPhased), p.NumberOfPhases, c(r.APGTotalCostPhased)),
		fmt.Sprintf("PG Total Cost: %s × %s × %s × %d = %s", c(r.PGValuePhased), rate, format.Years(r.PGDurationPhased), p.NumberOfPhases, c(r.PGTotalCostPhased)),
	}
}

func buildConclusion(r *domain.CalculationResult) []string {
	c := format.Currency
	lines := make([]string, 0, 3)

	if r.TotalSavings.IsNegative() {
		lines = append(lines, fmt.Sprintf("Additional Cost of Phasing: %s", c(r.TotalSavings.Neg())))
	} else {
		lines = append(lines, fmt.Sprintf("Direct Cost Savings: %s", c(r.TotalSavings)))
	}

	if r.CreditLineSavings.IsNegative() {
		lines = append(lines, fmt.Sprintf("Credit Line Increase: %s (from %s to %s)",
			c(r.CreditLineSavings.Neg()), c(r.CreditLineOriginal), c(r.CreditLinePhased)))
		return lines
	}

	lines = append(lines,
		fmt.Sprintf("Credit Line Reduction: %s (from %s to %s)",
			c(r.CreditLineSavings), c(r.CreditLineOriginal), c(r.CreditLinePhased)),
		fmt.Sprintf("Improved cash flow by requiring only %s at any time instead of %s",
			c(r.CreditLinePhased), c(r.CreditLineOriginal)),
	)
	return lines
}
