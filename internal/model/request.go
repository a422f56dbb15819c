package model

import "github.com/shopspring/decimal"

// CalculationRequest is the wire form of a calculation. Amounts accept
// JSON numbers or numeric strings.
type CalculationRequest struct {
	IncomeType        string           `json:"income_type"`
	GrossAmount       decimal.Decimal  `json:"gross_amount"`
	ComputationMethod string           `json:"computation_method,omitempty"`
	BusinessExpenses  *decimal.Decimal `json:"business_expenses,omitempty"`
}

// Input converts the request into engine input. Callers must validate first.
func (r *CalculationRequest) Input() TaxInput {
	in := TaxInput{
		IncomeType:        IncomeType(r.IncomeType),
		GrossAmount:       r.GrossAmount,
		ComputationMethod: ComputationMethod(r.ComputationMethod),
		BusinessExpenses:  decimal.Zero,
	}
	if r.BusinessExpenses != nil {
		in.BusinessExpenses = *r.BusinessExpenses
	}
	if in.IncomeType == IncomeFreelancerBusiness && in.ComputationMethod == "" {
		in.ComputationMethod = MethodNormal
	}
	return in
}
