package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/gcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidInput marks a parameter outside its declared range.
var ErrInvalidInput = errors.New("invalid input")

// CalculationEngine derives guarantee values, durations, costs and savings for the
// original and phased structures. It holds no state between calls.
type CalculationEngine struct {
	Logger Logger
	Debug  bool // Log every intermediate figure at debug level
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger replaces the engine logger; nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Compute runs the full comparison for params. Out-of-range input fails with an error
// wrapping ErrInvalidInput and no partial result.
func (ce *CalculationEngine) Compute(params domain.InputParameters) (*domain.CalculationResult, error) {
	if err := ValidateParameters(params); err != nil {
		ce.logger().Warnf("rejected parameters: %v", err)
		return nil, err
	}

	phases := decimal.NewFromInt(int64(params.NumberOfPhases))
	rate := params.AnnualBankFeeRate
	r := &domain.CalculationResult{NumberOfPhases: params.NumberOfPhases}

	// Original single-project structure
	r.APGValueOriginal = params.TotalContractValue.Mul(params.AdvancePaymentPercentOriginal)
	r.PGValueOriginal = params.TotalContractValue.Mul(params.PerformanceGuaranteePercentOriginal)
	r.APGDurationOriginal = monthsToYears(params.ConstructionDurationOriginalMonths)
	r.PGDurationOriginal = monthsToYears(params.ConstructionDurationOriginalMonths + params.DefectsLiabilityDurationOriginalMonths)

	r.APGAnnualCostOriginal, r.APGTotalCostOriginal = calcCosts(r.APGValueOriginal, rate, r.APGDurationOriginal)
	r.PGAnnualCostOriginal, r.PGTotalCostOriginal = calcCosts(r.PGValueOriginal, rate, r.PGDurationOriginal)
	r.TotalCostOriginal = r.APGTotalCostOriginal.Add(r.PGTotalCostOriginal)

	// Phased structure. The advance payment share is the original one; phases only
	// change the performance guarantee percentage and the durations.
	r.PhaseContractValue = params.TotalContractValue.Div(phases)
	r.APGValuePhased = r.PhaseContractValue.Mul(params.AdvancePaymentPercentOriginal)
	r.PGValuePhased = r.PhaseContractValue.Mul(params.PerformanceGuaranteePercentPhased)
	r.APGDurationPhased = monthsToYears(params.ConstructionDurationPhasedMonths)
	r.PGDurationPhased = monthsToYears(params.ConstructionDurationPhasedMonths + params.DefectsLiabilityDurationPhasedMonths)

	// Totals over all phases are taken on the whole contract so that the division by
	// the phase count only reaches per-phase figures.
	_, r.APGTotalCostPhased = calcCosts(params.TotalContractValue.Mul(params.AdvancePaymentPercentOriginal), rate, r.APGDurationPhased)
	_, r.PGTotalCostPhased = calcCosts(params.TotalContractValue.Mul(params.PerformanceGuaranteePercentPhased), rate, r.PGDurationPhased)
	r.TotalCostPhased = r.APGTotalCostPhased.Add(r.PGTotalCostPhased)
	r.APGAnnualCostPhased = r.APGValuePhased.Mul(rate)
	r.PGAnnualCostPhased = r.PGValuePhased.Mul(rate)
	r.APGCostPerPhase = r.APGTotalCostPhased.Div(phases)
	r.PGCostPerPhase = r.PGTotalCostPhased.Div(phases)

	// Savings
	r.APGSavings = r.APGTotalCostOriginal.Sub(r.APGTotalCostPhased)
	r.PGSavings = r.PGTotalCostOriginal.Sub(r.PGTotalCostPhased)
	r.TotalSavings = r.TotalCostOriginal.Sub(r.TotalCostPhased)

	// Credit line: only the APG is outstanding at peak in the original structure,
	// a single phase's APG and PG overlap in the phased one.
	r.CreditLineOriginal = r.APGValueOriginal
	r.CreditLinePhased = r.APGValuePhased.Add(r.PGValuePhased)
	r.CreditLineSavings = r.CreditLineOriginal.Sub(r.CreditLinePhased)

	if ce.Debug {
		ce.logResult(r)
	}
	return r, nil
}

// calcCosts returns the annual and total bank fee for a guarantee held for durationYears.
func calcCosts(value, rate, durationYears decimal.Decimal) (annual, total decimal.Decimal) {
	annual = value.Mul(rate)
	total = annual.Mul(durationYears)
	return annual, total
}

func monthsToYears(months int) decimal.Decimal {
	return decimal.NewFromInt(int64(months)).Div(domain.MonthsPerYear)
}

// ValidateParameters checks every parameter against its declared range.
func ValidateParameters(p domain.InputParameters) error {
	if !p.TotalContractValue.IsPositive() {
		return fmt.Errorf("total contract value must be positive, got %s: %w", p.TotalContractValue, ErrInvalidInput)
	}
	percents := []struct {
		name  string
		value decimal.Decimal
	}{
		{"advance payment percent (original)", p.AdvancePaymentPercentOriginal},
		{"performance guarantee percent (original)", p.PerformanceGuaranteePercentOriginal},
		{"performance guarantee percent (phased)", p.PerformanceGuaranteePercentPhased},
	}
	for _, pc := range percents {
		if !domain.PercentRange.Contains(pc.value) {
			return fmt.Errorf("%s must be between 0 and 1, got %s: %w", pc.name, pc.value, ErrInvalidInput)
		}
	}

	counts := []struct {
		name  string
		value int
		rng   domain.IntRange
	}{
		{"construction duration (original) months", p.ConstructionDurationOriginalMonths, domain.ConstructionOriginalRange},
		{"defects liability duration (original) months", p.DefectsLiabilityDurationOriginalMonths, domain.DefectsLiabilityRange},
		{"number of phases", p.NumberOfPhases, domain.PhaseCountRange},
		{"construction duration (phased) months", p.ConstructionDurationPhasedMonths, domain.ConstructionPhasedRange},
		{"defects liability duration (phased) months", p.DefectsLiabilityDurationPhasedMonths, domain.DefectsLiabilityRange},
	}
	for _, c := range counts {
		if !c.rng.Contains(c.value) {
			return fmt.Errorf("%s must be between %d and %d, got %d: %w", c.name, c.rng.Min, c.rng.Max, c.value, ErrInvalidInput)
		}
	}

	if !domain.BankFeeRateRange.Contains(p.AnnualBankFeeRate) {
		return fmt.Errorf("annual bank fee rate must be between %s and %s, got %s: %w",
			domain.BankFeeRateRange.Min, domain.BankFeeRateRange.Max, p.AnnualBankFeeRate, ErrInvalidInput)
	}
	return nil
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

func (ce *CalculationEngine) logResult(r *domain.CalculationResult) {
	l := ce.logger()
	l.Debugf("original: APG value=%s (%s yrs) PG value=%s (%s yrs)",
		r.APGValueOriginal.StringFixed(2), r.APGDurationOriginal.StringFixed(2),
		r.PGValueOriginal.StringFixed(2), r.PGDurationOriginal.StringFixed(2))
	l.Debugf("original: APG cost=%s PG cost=%s total=%s",
		r.APGTotalCostOriginal.StringFixed(2), r.PGTotalCostOriginal.StringFixed(2), r.TotalCostOriginal.StringFixed(2))
	l.Debugf("phased x%d: phase value=%s APG=%s PG=%s total cost=%s",
		r.NumberOfPhases, r.PhaseContractValue.StringFixed(2), r.APGValuePhased.StringFixed(2),
		r.PGValuePhased.StringFixed(2), r.TotalCostPhased.StringFixed(2))
	l.Debugf("savings=%s credit line %s -> %s",
		r.TotalSavings.StringFixed(2), r.CreditLineOriginal.StringFixed(2), r.CreditLinePhased.StringFixed(2))
}
