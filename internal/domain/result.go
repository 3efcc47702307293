package domain

import (
	"github.com/shopspring/decimal"
)

// CalculationResult is everything derived from one InputParameters value.
// Durations are in years; phased costs named Total are summed over all phases.
type CalculationResult struct {
	NumberOfPhases int `json:"numberOfPhases"`

	// Guarantee values
	APGValueOriginal   decimal.Decimal `json:"apgValueOriginal"`
	PGValueOriginal    decimal.Decimal `json:"pgValueOriginal"`
	PhaseContractValue decimal.Decimal `json:"phaseContractValue"`
	APGValuePhased     decimal.Decimal `json:"apgValuePhased"`
	PGValuePhased      decimal.Decimal `json:"pgValuePhased"`

	// Durations
	APGDurationOriginal decimal.Decimal `json:"apgDurationOriginal"`
	PGDurationOriginal  decimal.Decimal `json:"pgDurationOriginal"`
	APGDurationPhased   decimal.Decimal `json:"apgDurationPhased"`
	PGDurationPhased    decimal.Decimal `json:"pgDurationPhased"`

	// Original structure costs
	APGAnnualCostOriginal decimal.Decimal `json:"apgAnnualCostOriginal"`
	APGTotalCostOriginal  decimal.Decimal `json:"apgTotalCostOriginal"`
	PGAnnualCostOriginal  decimal.Decimal `json:"pgAnnualCostOriginal"`
	PGTotalCostOriginal   decimal.Decimal `json:"pgTotalCostOriginal"`
	TotalCostOriginal     decimal.Decimal `json:"totalCostOriginal"`

	// Phased structure costs
	APGAnnualCostPhased decimal.Decimal `json:"apgAnnualCostPhased"`
	APGCostPerPhase     decimal.Decimal `json:"apgCostPerPhase"`
	APGTotalCostPhased  decimal.Decimal `json:"apgTotalCostPhased"`
	PGAnnualCostPhased  decimal.Decimal `json:"pgAnnualCostPhased"`
	PGCostPerPhase      decimal.Decimal `json:"pgCostPerPhase"`
	PGTotalCostPhased   decimal.Decimal `json:"pgTotalCostPhased"`
	TotalCostPhased     decimal.Decimal `json:"totalCostPhased"`

	// Savings (original minus phased)
	APGSavings   decimal.Decimal `json:"apgSavings"`
	PGSavings    decimal.Decimal `json:"pgSavings"`
	TotalSavings decimal.Decimal `json:"totalSavings"`

	// Credit line exposure
	CreditLineOriginal decimal.Decimal `json:"creditLineOriginal"`
	CreditLinePhased   decimal.Decimal `json:"creditLinePhased"`
	CreditLineSavings  decimal.Decimal `json:"creditLineSavings"`
}

// IsPhasedCheaper reports whether the phased structure costs less in total.
func (r *CalculationResult) IsPhasedCheaper() bool {
	return r.TotalSavings.IsPositive()
}
