package server

import (
	"github.com/rgehrsitz/gcalc/internal/compare"
	"github.com/rgehrsitz/gcalc/internal/domain"
)

// CalculateResponse is the body of a successful calculation.
type CalculateResponse struct {
	Parameters domain.InputParameters    `json:"parameters"`
	Result     *domain.CalculationResult `json:"result"`
	Comparison *compare.Comparison       `json:"comparison"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// HealthResponse is the body of the health check.
type HealthResponse struct {
	Status string `json:"status"`
}
