package calculation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rgehrsitz/gcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestLogger struct {
	debug []string
	warn  []string
}

func (l *TestLogger) Debugf(format string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}
func (l *TestLogger) Infof(string, ...any) {}
func (l *TestLogger) Warnf(format string, args ...any) {
	l.warn = append(l.warn, fmt.Sprintf(format, args...))
}
func (l *TestLogger) Errorf(string, ...any) {}

// perPhaseTolerance bounds the error that division by the phase count leaves in
// per-phase figures (decimal.DivisionPrecision digits after the point).
var perPhaseTolerance = decimal.New(1, -9)

func assertDecimalNear(t *testing.T, expected, actual decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, expected.Sub(actual).Abs().LessThanOrEqual(perPhaseTolerance),
		"%s: expected %s, got %s", field, expected, actual)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, field string) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	assert.True(t, want.Equal(actual), "%s: expected %s, got %s", field, want, actual)
}

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.False(t, engine.Debug)
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCompute_ReferenceProject(t *testing.T) {
	engine := NewCalculationEngine()

	r, err := engine.Compute(domain.DefaultInputParameters())
	require.NoError(t, err)
	require.NotNil(t, r)

	assert.Equal(t, 4, r.NumberOfPhases)

	// Original structure
	assertDecimal(t, "128000000", r.APGValueOriginal, "APGValueOriginal")
	assertDecimal(t, "96000000", r.PGValueOriginal, "PGValueOriginal")
	assertDecimal(t, "1", r.APGDurationOriginal, "APGDurationOriginal")
	assertDecimal(t, "1.5", r.PGDurationOriginal, "PGDurationOriginal")
	assertDecimal(t, "1280000", r.APGAnnualCostOriginal, "APGAnnualCostOriginal")
	assertDecimal(t, "1280000", r.APGTotalCostOriginal, "APGTotalCostOriginal")
	assertDecimal(t, "960000", r.PGAnnualCostOriginal, "PGAnnualCostOriginal")
	assertDecimal(t, "1440000", r.PGTotalCostOriginal, "PGTotalCostOriginal")
	assertDecimal(t, "2720000", r.TotalCostOriginal, "TotalCostOriginal")

	// Phased structure
	assertDecimal(t, "80000000", r.PhaseContractValue, "PhaseContractValue")
	assertDecimal(t, "32000000", r.APGValuePhased, "APGValuePhased")
	assertDecimal(t, "8000000", r.PGValuePhased, "PGValuePhased")
	assertDecimal(t, "0.25", r.APGDurationPhased, "APGDurationPhased")
	assertDecimal(t, "0.75", r.PGDurationPhased, "PGDurationPhased")
	assertDecimal(t, "320000", r.APGAnnualCostPhased, "APGAnnualCostPhased")
	assertDecimal(t, "80000", r.APGCostPerPhase, "APGCostPerPhase")
	assertDecimal(t, "320000", r.APGTotalCostPhased, "APGTotalCostPhased")
	assertDecimal(t, "80000", r.PGAnnualCostPhased, "PGAnnualCostPhased")
	assertDecimal(t, "60000", r.PGCostPerPhase, "PGCostPerPhase")
	assertDecimal(t, "240000", r.PGTotalCostPhased, "PGTotalCostPhased")
	assertDecimal(t, "560000", r.TotalCostPhased, "TotalCostPhased")

	// Savings and credit line
	assertDecimal(t, "960000", r.APGSavings, "APGSavings")
	assertDecimal(t, "1200000", r.PGSavings, "PGSavings")
	assertDecimal(t, "2160000", r.TotalSavings, "TotalSavings")
	assertDecimal(t, "128000000", r.CreditLineOriginal, "CreditLineOriginal")
	assertDecimal(t, "40000000", r.CreditLinePhased, "CreditLinePhased")
	assertDecimal(t, "88000000", r.CreditLineSavings, "CreditLineSavings")
	assert.True(t, r.IsPhasedCheaper())
}

func TestCompute_Identities(t *testing.T) {
	engine := NewCalculationEngine()

	for phases := domain.PhaseCountRange.Min; phases <= domain.PhaseCountRange.Max; phases++ {
		for _, months := range []int{1, 7, 24} {
			p := domain.DefaultInputParameters()
			p.NumberOfPhases = phases
			p.ConstructionDurationOriginalMonths = months
			p.DefectsLiabilityDurationOriginalMonths = 12
			p.ConstructionDurationPhasedMonths = 5
			p.DefectsLiabilityDurationPhasedMonths = 0

			r, err := engine.Compute(p)
			require.NoError(t, err)

			name := fmt.Sprintf("phases=%d months=%d", phases, months)
			assert.False(t, r.TotalCostOriginal.IsNegative(), name)
			assert.False(t, r.TotalCostPhased.IsNegative(), name)
			assert.True(t, r.TotalSavings.Equal(r.TotalCostOriginal.Sub(r.TotalCostPhased)), name)
			assert.True(t, r.APGSavings.Add(r.PGSavings).Equal(r.TotalSavings), name)
			assert.True(t, r.CreditLinePhased.Equal(r.APGValuePhased.Add(r.PGValuePhased)), name)
			assert.True(t, r.CreditLineSavings.Equal(r.CreditLineOriginal.Sub(r.CreditLinePhased)), name)
			assert.True(t, r.CreditLineOriginal.Equal(r.APGValueOriginal), name)
			assert.True(t, r.PhaseContractValue.Equal(p.TotalContractValue.Div(decimal.NewFromInt(int64(phases)))), name)
			n := decimal.NewFromInt(int64(phases))
			assertDecimalNear(t, r.APGTotalCostPhased, r.APGCostPerPhase.Mul(n), name+" APG per phase")
			assertDecimalNear(t, r.PGTotalCostPhased, r.PGCostPerPhase.Mul(n), name+" PG per phase")
			assertDecimalNear(t, r.APGCostPerPhase, r.APGAnnualCostPhased.Mul(r.APGDurationPhased), name+" APG annual")
		}
	}
}

func TestCompute_ScalesWithContractValue(t *testing.T) {
	engine := NewCalculationEngine()
	two := decimal.NewFromInt(2)

	for phases := domain.PhaseCountRange.Min; phases <= domain.PhaseCountRange.Max; phases++ {
		base := domain.DefaultInputParameters()
		base.NumberOfPhases = phases
		base.ConstructionDurationOriginalMonths = 7
		doubled := base
		doubled.TotalContractValue = base.TotalContractValue.Mul(two)

		r1, err := engine.Compute(base)
		require.NoError(t, err)
		r2, err := engine.Compute(doubled)
		require.NoError(t, err)

		// Built from products of the inputs only, so doubling is exact.
		exact := map[string][2]decimal.Decimal{
			"APGValueOriginal":      {r1.APGValueOriginal, r2.APGValueOriginal},
			"PGValueOriginal":       {r1.PGValueOriginal, r2.PGValueOriginal},
			"APGAnnualCostOriginal": {r1.APGAnnualCostOriginal, r2.APGAnnualCostOriginal},
			"APGTotalCostOriginal":  {r1.APGTotalCostOriginal, r2.APGTotalCostOriginal},
			"PGTotalCostOriginal":   {r1.PGTotalCostOriginal, r2.PGTotalCostOriginal},
			"TotalCostOriginal":     {r1.TotalCostOriginal, r2.TotalCostOriginal},
			"APGTotalCostPhased":    {r1.APGTotalCostPhased, r2.APGTotalCostPhased},
			"PGTotalCostPhased":     {r1.PGTotalCostPhased, r2.PGTotalCostPhased},
			"TotalCostPhased":       {r1.TotalCostPhased, r2.TotalCostPhased},
			"APGSavings":            {r1.APGSavings, r2.APGSavings},
			"PGSavings":             {r1.PGSavings, r2.PGSavings},
			"TotalSavings":          {r1.TotalSavings, r2.TotalSavings},
			"CreditLineOriginal":    {r1.CreditLineOriginal, r2.CreditLineOriginal},
		}
		for field, pair := range exact {
			assert.True(t, pair[0].Mul(two).Equal(pair[1]), "phases=%d %s: %s doubled should be %s", phases, field, pair[0], pair[1])
		}

		// Per-phase figures pass through the division by the phase count.
		near := map[string][2]decimal.Decimal{
			"PhaseContractValue": {r1.PhaseContractValue, r2.PhaseContractValue},
			"APGValuePhased":     {r1.APGValuePhased, r2.APGValuePhased},
			"PGValuePhased":      {r1.PGValuePhased, r2.PGValuePhased},
			"APGCostPerPhase":    {r1.APGCostPerPhase, r2.APGCostPerPhase},
			"CreditLinePhased":   {r1.CreditLinePhased, r2.CreditLinePhased},
			"CreditLineSavings":  {r1.CreditLineSavings, r2.CreditLineSavings},
		}
		for field, pair := range near {
			assertDecimalNear(t, pair[1], pair[0].Mul(two), fmt.Sprintf("phases=%d %s", phases, field))
		}

		// Durations do not depend on the contract value
		assert.True(t, r1.PGDurationOriginal.Equal(r2.PGDurationOriginal))
		assert.True(t, r1.APGDurationPhased.Equal(r2.APGDurationPhased))
	}
}

func TestCompute_UnevenPhaseCountKeepsTotalsExact(t *testing.T) {
	engine := NewCalculationEngine()
	p := domain.DefaultInputParameters()
	p.NumberOfPhases = 3

	r, err := engine.Compute(p)
	require.NoError(t, err)

	assertDecimal(t, "106666666.6666666666666667", r.PhaseContractValue, "PhaseContractValue")
	assertDecimal(t, "320000", r.APGTotalCostPhased, "APGTotalCostPhased")
	assertDecimal(t, "240000", r.PGTotalCostPhased, "PGTotalCostPhased")
	assertDecimal(t, "560000", r.TotalCostPhased, "TotalCostPhased")
	assertDecimal(t, "2160000", r.TotalSavings, "TotalSavings")
	assertDecimalNear(t, decimal.RequireFromString("80000").Mul(decimal.NewFromInt(4)).Div(decimal.NewFromInt(3)),
		r.APGCostPerPhase, "APGCostPerPhase")
	assertDecimalNear(t, decimal.RequireFromString("42666666.6666666666666667"), r.APGValuePhased, "APGValuePhased")
}

func TestCompute_Idempotent(t *testing.T) {
	engine := NewCalculationEngine()
	p := domain.DefaultInputParameters()
	p.NumberOfPhases = 3

	r1, err := engine.Compute(p)
	require.NoError(t, err)
	r2, err := engine.Compute(p)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, r1.PhaseContractValue.String(), r2.PhaseContractValue.String())
}

func TestCompute_SinglePhaseMatchesOriginalValues(t *testing.T) {
	engine := NewCalculationEngine()
	p := domain.DefaultInputParameters()
	p.NumberOfPhases = 1
	p.PerformanceGuaranteePercentPhased = p.PerformanceGuaranteePercentOriginal

	r, err := engine.Compute(p)
	require.NoError(t, err)

	assert.True(t, r.PhaseContractValue.Equal(p.TotalContractValue))
	assert.True(t, r.APGValuePhased.Equal(r.APGValueOriginal))
	assert.True(t, r.PGValuePhased.Equal(r.PGValueOriginal))
}

func TestCompute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.InputParameters)
		field  string
	}{
		{"zero contract", func(p *domain.InputParameters) { p.TotalContractValue = decimal.Zero }, "total contract value"},
		{"negative contract", func(p *domain.InputParameters) { p.TotalContractValue = decimal.NewFromInt(-1) }, "total contract value"},
		{"advance over 100%", func(p *domain.InputParameters) { p.AdvancePaymentPercentOriginal = decimal.NewFromFloat(1.2) }, "advance payment"},
		{"negative pg", func(p *domain.InputParameters) { p.PerformanceGuaranteePercentPhased = decimal.NewFromFloat(-0.1) }, "performance guarantee percent (phased)"},
		{"zero phases", func(p *domain.InputParameters) { p.NumberOfPhases = 0 }, "number of phases"},
		{"six phases", func(p *domain.InputParameters) { p.NumberOfPhases = 6 }, "number of phases"},
		{"zero construction", func(p *domain.InputParameters) { p.ConstructionDurationOriginalMonths = 0 }, "construction duration (original)"},
		{"long phase", func(p *domain.InputParameters) { p.ConstructionDurationPhasedMonths = 7 }, "construction duration (phased)"},
		{"long dlp", func(p *domain.InputParameters) { p.DefectsLiabilityDurationOriginalMonths = 13 }, "defects liability duration (original)"},
		{"negative dlp", func(p *domain.InputParameters) { p.DefectsLiabilityDurationPhasedMonths = -1 }, "defects liability duration (phased)"},
		{"rate too low", func(p *domain.InputParameters) { p.AnnualBankFeeRate = decimal.NewFromFloat(0.0005) }, "bank fee rate"},
		{"rate too high", func(p *domain.InputParameters) { p.AnnualBankFeeRate = decimal.NewFromFloat(0.11) }, "bank fee rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &TestLogger{}
			engine := NewCalculationEngine()
			engine.SetLogger(logger)

			p := domain.DefaultInputParameters()
			tt.mutate(&p)

			r, err := engine.Compute(p)
			assert.Nil(t, r, "Should return no partial result")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.field)
			assert.Len(t, logger.warn, 1)
		})
	}
}

func TestCompute_BoundaryValuesAccepted(t *testing.T) {
	engine := NewCalculationEngine()

	p := domain.DefaultInputParameters()
	p.AdvancePaymentPercentOriginal = decimal.Zero
	p.PerformanceGuaranteePercentOriginal = decimal.NewFromInt(1)
	p.ConstructionDurationOriginalMonths = 24
	p.DefectsLiabilityDurationOriginalMonths = 0
	p.NumberOfPhases = 5
	p.ConstructionDurationPhasedMonths = 6
	p.DefectsLiabilityDurationPhasedMonths = 12
	p.AnnualBankFeeRate = decimal.NewFromFloat(0.001)

	r, err := engine.Compute(p)
	require.NoError(t, err)
	assert.True(t, r.APGValueOriginal.IsZero())
	assertDecimal(t, "2", r.PGDurationOriginal, "PGDurationOriginal")
	assertDecimal(t, "1.5", r.PGDurationPhased, "PGDurationPhased")
}

func TestCompute_DebugLogging(t *testing.T) {
	logger := &TestLogger{}
	engine := NewCalculationEngine()
	engine.SetLogger(logger)
	engine.Debug = true

	_, err := engine.Compute(domain.DefaultInputParameters())
	require.NoError(t, err)

	require.Len(t, logger.debug, 4)
	assert.Contains(t, logger.debug[0], "128000000.00")
	assert.Contains(t, logger.debug[3], "2160000.00")
}
