package compare

import (
	"fmt"

	"github.com/rgehrsitz/gcalc/internal/calculation"
	"github.com/rgehrsitz/gcalc/internal/domain"
)

// CompareEngine runs the calculation and builds the presentation model around it
type CompareEngine struct {
	CalcEngine *calculation.CalculationEngine
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{CalcEngine: calcEngine}
}

// Compare computes the configuration's parameters and returns the full comparison.
func (ce *CompareEngine) Compare(config *domain.Configuration) (*Comparison, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	return ce.CompareParameters(config.Project, config.Parameters)
}

// CompareParameters computes params directly.
func (ce *CompareEngine) CompareParameters(project string, params domain.InputParameters) (*Comparison, error) {
	result, err := ce.CalcEngine.Compute(params)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate guarantee costs: %w", err)
	}
	return NewComparison(project, params, result), nil
}
