package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/gcalc/internal/config"
	"github.com/rgehrsitz/gcalc/internal/domain"
)

// Parameter override flags. Percentages are given in percent, as typed on the form.
const (
	flagContractValue      = "contract-value"
	flagAdvancePaymentPct  = "advance-payment-pct"
	flagPGPct              = "pg-pct"
	flagConstructionMonths = "construction-months"
	flagDLPMonths          = "dlp-months"
	flagPhases             = "phases"
	flagPhasedPGPct        = "phased-pg-pct"
	flagPhaseConstruction  = "phase-construction-months"
	flagPhaseDLPMonths     = "phase-dlp-months"
	flagBankFeePct         = "bank-fee-pct"
)

func addParameterFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64(flagContractValue, 0, "Total contract value ($)")
	f.Float64(flagAdvancePaymentPct, 0, "Advance payment percentage (0-100)")
	f.Float64(flagPGPct, 0, "Performance guarantee percentage, original structure (0-100)")
	f.Int(flagConstructionMonths, 0, "Construction duration, original structure (1-24 months)")
	f.Int(flagDLPMonths, 0, "Defects liability period, original structure (0-12 months)")
	f.Int(flagPhases, 0, "Number of phases (1-5)")
	f.Float64(flagPhasedPGPct, 0, "Performance guarantee percentage per phase (0-100)")
	f.Int(flagPhaseConstruction, 0, "Construction duration per phase (1-6 months)")
	f.Int(flagPhaseDLPMonths, 0, "Defects liability period per phase (0-12 months)")
	f.Float64(flagBankFeePct, 0, "Annual bank fee rate (0.1-10 percent)")
}

// applyParameterFlags overwrites p with every flag the user set explicitly.
func applyParameterFlags(cmd *cobra.Command, p *domain.InputParameters) error {
	f := cmd.Flags()

	floats := []struct {
		name string
		set  func(float64)
	}{
		{flagContractValue, func(v float64) { p.TotalContractValue = decimal.NewFromFloat(v) }},
		{flagAdvancePaymentPct, func(v float64) { p.AdvancePaymentPercentOriginal = config.FromPercent(v) }},
		{flagPGPct, func(v float64) { p.PerformanceGuaranteePercentOriginal = config.FromPercent(v) }},
		{flagPhasedPGPct, func(v float64) { p.PerformanceGuaranteePercentPhased = config.FromPercent(v) }},
		{flagBankFeePct, func(v float64) { p.AnnualBankFeeRate = config.FromPercent(v) }},
	}
	for _, fl := range floats {
		if !f.Changed(fl.name) {
			continue
		}
		v, err := f.GetFloat64(fl.name)
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", fl.name, err)
		}
		fl.set(v)
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{flagConstructionMonths, &p.ConstructionDurationOriginalMonths},
		{flagDLPMonths, &p.DefectsLiabilityDurationOriginalMonths},
		{flagPhases, &p.NumberOfPhases},
		{flagPhaseConstruction, &p.ConstructionDurationPhasedMonths},
		{flagPhaseDLPMonths, &p.DefectsLiabilityDurationPhasedMonths},
	}
	for _, fl := range ints {
		if !f.Changed(fl.name) {
			continue
		}
		v, err := f.GetInt(fl.name)
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", fl.name, err)
		}
		*fl.dst = v
	}
	return nil
}
