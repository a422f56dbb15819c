package model

import "github.com/shopspring/decimal"

// TaxResult is the full monetary breakdown of one calculation.
type TaxResult struct {
	GrossIncome             decimal.Decimal   `json:"gross_income"`
	StandardDeduction       decimal.Decimal   `json:"standard_deduction"`
	BusinessExpensesApplied decimal.Decimal   `json:"business_expenses_applied"`
	TaxableIncome           decimal.Decimal   `json:"taxable_income"`
	TaxBeforeRebate         decimal.Decimal   `json:"tax_before_rebate"`
	RebateEligible          bool              `json:"rebate_eligible"`
	RebateApplied           decimal.Decimal   `json:"rebate_applied"`
	TaxAfterRebate          decimal.Decimal   `json:"tax_after_rebate"`
	Cess                    decimal.Decimal   `json:"cess"`
	TotalTax                decimal.Decimal   `json:"total_tax"`
	MethodUsed              ComputationMethod `json:"method_used"`
}
