package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/gcalc/internal/calculation"
	"github.com/rgehrsitz/gcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
	assert.False(t, parser.Clamp)
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	config, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.yaml")

	err := os.WriteFile(invalidFile, []byte("invalid: yaml: content: [unclosed"), 0644)
	require.NoError(t, err)

	parser := NewInputParser()
	config, err := parser.LoadFromFile(invalidFile)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to parse YAML", "Should have specific error message")
}

func TestInputParser_LoadFromFile_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	validFile := filepath.Join(tmpDir, "valid.yaml")

	validYAML := `
project: "Nairobi bypass"
parameters:
  total_contract_value: 150000000
  advance_payment_percent_original: 0.25
  performance_guarantee_percent_original: 0.10
  construction_duration_original_months: 18
  defects_liability_duration_original_months: 12
  number_of_phases: 3
  performance_guarantee_percent_phased: 0.05
  construction_duration_phased_months: 6
  defects_liability_duration_phased_months: 6
  annual_bank_fee_rate: 0.015
`
	require.NoError(t, os.WriteFile(validFile, []byte(validYAML), 0644))

	parser := NewInputParser()
	config, err := parser.LoadFromFile(validFile)
	require.NoError(t, err)
	require.NotNil(t, config)

	p := config.Parameters
	assert.Equal(t, "Nairobi bypass", config.Project)
	assert.True(t, p.TotalContractValue.Equal(decimal.NewFromInt(150_000_000)))
	assert.True(t, p.AdvancePaymentPercentOriginal.Equal(decimal.NewFromFloat(0.25)))
	assert.True(t, p.PerformanceGuaranteePercentOriginal.Equal(decimal.NewFromFloat(0.10)))
	assert.Equal(t, 18, p.ConstructionDurationOriginalMonths)
	assert.Equal(t, 12, p.DefectsLiabilityDurationOriginalMonths)
	assert.Equal(t, 3, p.NumberOfPhases)
	assert.True(t, p.PerformanceGuaranteePercentPhased.Equal(decimal.NewFromFloat(0.05)))
	assert.Equal(t, 6, p.ConstructionDurationPhasedMonths)
	assert.Equal(t, 6, p.DefectsLiabilityDurationPhasedMonths)
	assert.True(t, p.AnnualBankFeeRate.Equal(decimal.NewFromFloat(0.015)))
}

func TestInputParser_Parse_MissingFieldsKeepDefaults(t *testing.T) {
	parser := NewInputParser()

	config, err := parser.Parse([]byte("parameters:\n  number_of_phases: 2\n"))
	require.NoError(t, err)

	defaults := domain.DefaultInputParameters()
	assert.Equal(t, 2, config.Parameters.NumberOfPhases)
	assert.True(t, config.Parameters.TotalContractValue.Equal(defaults.TotalContractValue))
	assert.True(t, config.Parameters.AnnualBankFeeRate.Equal(defaults.AnnualBankFeeRate))
}

func TestInputParser_Parse_OutOfRange(t *testing.T) {
	parser := NewInputParser()

	config, err := parser.Parse([]byte("parameters:\n  number_of_phases: 9\n"))

	assert.Nil(t, config)
	require.Error(t, err)
	assert.True(t, errors.Is(err, calculation.ErrInvalidInput))
	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.Contains(t, err.Error(), "number of phases")
}

func TestInputParser_Parse_ClampMode(t *testing.T) {
	parser := &InputParser{Clamp: true}

	config, err := parser.Parse([]byte(`
parameters:
  number_of_phases: 9
  annual_bank_fee_rate: 0.5
  advance_payment_percent_original: 1.4
`))
	require.NoError(t, err)

	assert.Equal(t, 5, config.Parameters.NumberOfPhases)
	assert.True(t, config.Parameters.AnnualBankFeeRate.Equal(decimal.NewFromFloat(0.10)))
	assert.True(t, config.Parameters.AdvancePaymentPercentOriginal.Equal(decimal.NewFromInt(1)))
}

func TestInputParser_Parse_ContractValueLimits(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("parameters:\n  total_contract_value: \"2e12\"\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, calculation.ErrInvalidInput))
	assert.Contains(t, err.Error(), "must not exceed")

	config, err := (&InputParser{Clamp: true}).Parse([]byte("parameters:\n  total_contract_value: \"2e12\"\n"))
	require.NoError(t, err)
	assert.True(t, config.Parameters.TotalContractValue.Equal(domain.ContractValueRange.Max))

	_, err = (&InputParser{Clamp: true}).Parse([]byte("parameters:\n  total_contract_value: \"1e1000000\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exponent")
}

func TestInputParser_ValidateConfiguration_Nil(t *testing.T) {
	parser := NewInputParser()
	assert.Error(t, parser.ValidateConfiguration(nil))
}

func TestSaveConfiguration_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "example.yaml")

	parser := NewInputParser()
	example := parser.CreateExampleConfiguration()
	require.NoError(t, SaveConfiguration(example, file))

	loaded, err := parser.LoadFromFile(file)
	require.NoError(t, err)

	assert.Equal(t, example.Project, loaded.Project)
	assert.Equal(t, example.Description, loaded.Description)
	assert.True(t, loaded.Parameters.TotalContractValue.Equal(example.Parameters.TotalContractValue))
	assert.True(t, loaded.Parameters.PerformanceGuaranteePercentPhased.Equal(example.Parameters.PerformanceGuaranteePercentPhased))
	assert.Equal(t, example.Parameters.NumberOfPhases, loaded.Parameters.NumberOfPhases)
}
