package config

import (
	"fmt"

	"github.com/rgehrsitz/gcalc/internal/calculation"
	"github.com/rgehrsitz/gcalc/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ClampParameters pulls every parameter into its declared range. Collectors call it
// before handing input to the engine; a negative contract value becomes zero and is
// still rejected by the engine. Run CheckPrecision first on untrusted input.
func ClampParameters(p domain.InputParameters) domain.InputParameters {
	p.TotalContractValue = domain.ContractValueRange.Clamp(p.TotalContractValue)
	p.AdvancePaymentPercentOriginal = domain.PercentRange.Clamp(p.AdvancePaymentPercentOriginal)
	p.PerformanceGuaranteePercentOriginal = domain.PercentRange.Clamp(p.PerformanceGuaranteePercentOriginal)
	p.PerformanceGuaranteePercentPhased = domain.PercentRange.Clamp(p.PerformanceGuaranteePercentPhased)
	p.ConstructionDurationOriginalMonths = domain.ConstructionOriginalRange.Clamp(p.ConstructionDurationOriginalMonths)
	p.DefectsLiabilityDurationOriginalMonths = domain.DefectsLiabilityRange.Clamp(p.DefectsLiabilityDurationOriginalMonths)
	p.NumberOfPhases = domain.PhaseCountRange.Clamp(p.NumberOfPhases)
	p.ConstructionDurationPhasedMonths = domain.ConstructionPhasedRange.Clamp(p.ConstructionDurationPhasedMonths)
	p.DefectsLiabilityDurationPhasedMonths = domain.DefectsLiabilityRange.Clamp(p.DefectsLiabilityDurationPhasedMonths)
	p.AnnualBankFeeRate = domain.BankFeeRateRange.Clamp(p.AnnualBankFeeRate)
	return p
}

// CheckPrecision rejects decimal inputs written with more than domain.MaxDecimalPlaces
// fractional digits or an exponent above domain.MaxDecimalExponent.
func CheckPrecision(p domain.InputParameters) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"total contract value", p.TotalContractValue},
		{"advance payment percent (original)", p.AdvancePaymentPercentOriginal},
		{"performance guarantee percent (original)", p.PerformanceGuaranteePercentOriginal},
		{"performance guarantee percent (phased)", p.PerformanceGuaranteePercentPhased},
		{"annual bank fee rate", p.AnnualBankFeeRate},
	}
	for _, f := range fields {
		exp := f.value.Exponent()
		if exp < -domain.MaxDecimalPlaces {
			return fmt.Errorf("%s has more than %d decimal places: %w", f.name, domain.MaxDecimalPlaces, calculation.ErrInvalidInput)
		}
		if exp > domain.MaxDecimalExponent {
			return fmt.Errorf("%s exponent %d exceeds %d: %w", f.name, exp, domain.MaxDecimalExponent, calculation.ErrInvalidInput)
		}
	}
	return nil
}

// FromPercent converts a percentage as typed by a user (40 for 40%) to a fraction.
func FromPercent(pct float64) decimal.Decimal {
	return decimal.NewFromFloat(pct).Div(hundred)
}

// ToPercent converts a fraction to a percentage.
func ToPercent(fraction decimal.Decimal) float64 {
	return fraction.Mul(hundred).InexactFloat64()
}
