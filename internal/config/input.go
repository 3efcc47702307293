package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/gcalc/internal/calculation"
	"github.com/rgehrsitz/gcalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of parameter files
type InputParser struct {
	// Clamp pulls out-of-range values back into range instead of failing validation.
	Clamp bool
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a parameter document from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and checks a YAML parameter document. Fields missing from the document
// keep their default values.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	config := domain.Configuration{Parameters: domain.DefaultInputParameters()}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := CheckPrecision(config.Parameters); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if ip.Clamp {
		config.Parameters = ClampParameters(config.Parameters)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil {
		return fmt.Errorf("configuration is required")
	}
	if err := calculation.ValidateParameters(config.Parameters); err != nil {
		return err
	}
	if max := domain.ContractValueRange.Max; config.Parameters.TotalContractValue.GreaterThan(max) {
		return fmt.Errorf("total contract value must not exceed %s, got %s: %w",
			max, config.Parameters.TotalContractValue, calculation.ErrInvalidInput)
	}
	return nil
}

// CreateExampleConfiguration returns a document holding the reference project.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Project:     "Reference project",
		Description: "320M contract, original single project vs four sequential phases",
		Parameters:  domain.DefaultInputParameters(),
	}
}

// SaveConfiguration writes a configuration to a YAML file
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return os.WriteFile(filename, data, 0644)
}
