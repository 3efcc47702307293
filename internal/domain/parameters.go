package domain

import (
	"github.com/shopspring/decimal"
)

// InputParameters holds the ten scalar inputs of a single guarantee cost comparison.
// Percentages and the bank fee rate are fractions (0.40 means 40%).
type InputParameters struct {
	// Original single-project structure
	TotalContractValue                     decimal.Decimal `yaml:"total_contract_value" json:"totalContractValue"`
	AdvancePaymentPercentOriginal          decimal.Decimal `yaml:"advance_payment_percent_original" json:"advancePaymentPercentOriginal"`
	PerformanceGuaranteePercentOriginal    decimal.Decimal `yaml:"performance_guarantee_percent_original" json:"performanceGuaranteePercentOriginal"`
	ConstructionDurationOriginalMonths     int             `yaml:"construction_duration_original_months" json:"constructionDurationOriginalMonths"`
	DefectsLiabilityDurationOriginalMonths int             `yaml:"defects_liability_duration_original_months" json:"defectsLiabilityDurationOriginalMonths"`

	// Phased structure
	NumberOfPhases                       int             `yaml:"number_of_phases" json:"numberOfPhases"`
	PerformanceGuaranteePercentPhased    decimal.Decimal `yaml:"performance_guarantee_percent_phased" json:"performanceGuaranteePercentPhased"`
	ConstructionDurationPhasedMonths     int             `yaml:"construction_duration_phased_months" json:"constructionDurationPhasedMonths"`
	DefectsLiabilityDurationPhasedMonths int             `yaml:"defects_liability_duration_phased_months" json:"defectsLiabilityDurationPhasedMonths"`

	// Shared
	AnnualBankFeeRate decimal.Decimal `yaml:"annual_bank_fee_rate" json:"annualBankFeeRate"`
}

// IntRange is an inclusive integer range.
type IntRange struct {
	Min int
	Max int
}

// Contains reports whether v lies within the range.
func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp limits v to the range.
func (r IntRange) Clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// DecimalRange is an inclusive decimal range.
type DecimalRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Contains reports whether v lies within the range.
func (r DecimalRange) Contains(v decimal.Decimal) bool {
	return v.GreaterThanOrEqual(r.Min) && v.LessThanOrEqual(r.Max)
}

// Clamp limits v to the range.
func (r DecimalRange) Clamp(v decimal.Decimal) decimal.Decimal {
	if v.LessThan(r.Min) {
		return r.Min
	}
	if v.GreaterThan(r.Max) {
		return r.Max
	}
	return v
}

// Declared parameter ranges.
var (
	ContractValueRange        = DecimalRange{Min: decimal.Zero, Max: decimal.New(1, 12)}
	PercentRange              = DecimalRange{Min: decimal.Zero, Max: decimal.NewFromInt(1)}
	BankFeeRateRange          = DecimalRange{Min: decimal.NewFromFloat(0.001), Max: decimal.NewFromFloat(0.10)}
	ConstructionOriginalRange = IntRange{Min: 1, Max: 24}
	ConstructionPhasedRange   = IntRange{Min: 1, Max: 6}
	DefectsLiabilityRange     = IntRange{Min: 0, Max: 12}
	PhaseCountRange           = IntRange{Min: 1, Max: 5}
	MonthsPerYear             = decimal.NewFromInt(12)
)

// Bounds on how decimal inputs are written. A value such as "1e1000000" is tiny to send
// but expands to a million digits once formatted.
const (
	MaxDecimalPlaces   = 12
	MaxDecimalExponent = 15
)

// DefaultResultsFileName is the name offered for CSV downloads and exports.
const DefaultResultsFileName = "guarantee_cost_calculator_results.csv"

// DefaultInputParameters returns the reference project: a 320M contract split into four phases.
func DefaultInputParameters() InputParameters {
	return InputParameters{
		TotalContractValue:                     decimal.NewFromInt(320_000_000),
		AdvancePaymentPercentOriginal:          decimal.NewFromFloat(0.40),
		PerformanceGuaranteePercentOriginal:    decimal.NewFromFloat(0.30),
		ConstructionDurationOriginalMonths:     12,
		DefectsLiabilityDurationOriginalMonths: 6,
		NumberOfPhases:                         4,
		PerformanceGuaranteePercentPhased:      decimal.NewFromFloat(0.10),
		ConstructionDurationPhasedMonths:       3,
		DefectsLiabilityDurationPhasedMonths:   6,
		AnnualBankFeeRate:                      decimal.NewFromFloat(0.01),
	}
}
