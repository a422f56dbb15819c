package model

import (
	"github.com/shopspring/decimal"

	"tax-engine/internal/jsonpatch"
)

// ComparisonRequest runs two calculations side by side, e.g. the same
// amount as salary and as presumptive business receipts.
type ComparisonRequest struct {
	Baseline CalculationRequest `json:"baseline"`
	Scenario CalculationRequest `json:"scenario"`
}

// ComparisonResponse carries both responses. Changes and TotalTaxDelta are
// only set when both calculations succeeded.
type ComparisonResponse struct {
	Baseline      *CalculationResponse `json:"baseline"`
	Scenario      *CalculationResponse `json:"scenario"`
	TotalTaxDelta *decimal.Decimal     `json:"total_tax_delta"`
	Changes       []jsonpatch.Op       `json:"changes"`
}
