package config

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/gcalc/internal/calculation"
	"github.com/rgehrsitz/gcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampParameters(t *testing.T) {
	p := domain.InputParameters{
		TotalContractValue:                     decimal.NewFromInt(-5),
		AdvancePaymentPercentOriginal:          decimal.NewFromFloat(-0.2),
		PerformanceGuaranteePercentOriginal:    decimal.NewFromFloat(1.5),
		ConstructionDurationOriginalMonths:     0,
		DefectsLiabilityDurationOriginalMonths: 30,
		NumberOfPhases:                         0,
		PerformanceGuaranteePercentPhased:      decimal.NewFromFloat(0.1),
		ConstructionDurationPhasedMonths:       12,
		DefectsLiabilityDurationPhasedMonths:   -3,
		AnnualBankFeeRate:                      decimal.Zero,
	}

	c := ClampParameters(p)

	assert.True(t, c.TotalContractValue.IsZero())
	assert.True(t, c.AdvancePaymentPercentOriginal.IsZero())
	assert.True(t, c.PerformanceGuaranteePercentOriginal.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, 1, c.ConstructionDurationOriginalMonths)
	assert.Equal(t, 12, c.DefectsLiabilityDurationOriginalMonths)
	assert.Equal(t, 1, c.NumberOfPhases)
	assert.True(t, c.PerformanceGuaranteePercentPhased.Equal(decimal.NewFromFloat(0.1)))
	assert.Equal(t, 6, c.ConstructionDurationPhasedMonths)
	assert.Equal(t, 0, c.DefectsLiabilityDurationPhasedMonths)
	assert.True(t, c.AnnualBankFeeRate.Equal(decimal.NewFromFloat(0.001)))
}

func TestClampParameters_ContractValueCeiling(t *testing.T) {
	p := domain.DefaultInputParameters()
	p.TotalContractValue = decimal.RequireFromString("1e15")

	c := ClampParameters(p)
	assert.True(t, c.TotalContractValue.Equal(domain.ContractValueRange.Max), "got %s", c.TotalContractValue)
}

func TestCheckPrecision(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *domain.InputParameters)
		wantErr string
	}{
		{"defaults", func(p *domain.InputParameters) {}, ""},
		{"plain large contract", func(p *domain.InputParameters) { p.TotalContractValue = decimal.RequireFromString("999999999999999999") }, ""},
		{"exponent at limit", func(p *domain.InputParameters) { p.TotalContractValue = decimal.RequireFromString("1e15") }, ""},
		{"huge exponent", func(p *domain.InputParameters) { p.TotalContractValue = decimal.RequireFromString("1e1000000") }, "total contract value exponent"},
		{"tiny exponent", func(p *domain.InputParameters) { p.AnnualBankFeeRate = decimal.RequireFromString("1e-1000000") }, "annual bank fee rate has more than"},
		{"long fraction", func(p *domain.InputParameters) {
			p.PerformanceGuaranteePercentPhased = decimal.RequireFromString("0.1234567890123")
		}, "performance guarantee percent (phased)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.DefaultInputParameters()
			tt.mutate(&p)

			err := CheckPrecision(p)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, calculation.ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClampParameters_InRangeUnchanged(t *testing.T) {
	p := domain.DefaultInputParameters()
	assert.Equal(t, p, ClampParameters(p))
}

func TestPercentConversions(t *testing.T) {
	assert.True(t, FromPercent(40).Equal(decimal.NewFromFloat(0.4)))
	assert.True(t, FromPercent(0.1).Equal(decimal.NewFromFloat(0.001)))
	assert.InDelta(t, 30.0, ToPercent(decimal.NewFromFloat(0.3)), 1e-9)
}
