package model

import "github.com/shopspring/decimal"

type IncomeType string

const (
	IncomeSalaried           IncomeType = "salaried"
	IncomeFreelancerBusiness IncomeType = "freelancer_business"
)

type ComputationMethod string

const (
	MethodNormal      ComputationMethod = "normal"
	MethodPresumptive ComputationMethod = "presumptive"
	MethodNone        ComputationMethod = "none"
)

// TaxInput is the validated input to a single calculation.
// BusinessExpenses only matters for the normal method.
type TaxInput struct {
	IncomeType        IncomeType
	GrossAmount       decimal.Decimal
	ComputationMethod ComputationMethod
	BusinessExpenses  decimal.Decimal
}
