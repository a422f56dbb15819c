package income

import (
	"github.com/shopspring/decimal"

	"tax-engine/internal/model"
	"tax-engine/internal/regime"
)

// SalariedHandler applies the flat standard deduction to annual salary.
type SalariedHandler struct{}

func (h *SalariedHandler) Validate(reg regime.Regime, req *model.CalculationRequest) []model.CalculationMessage {
	if msgs := validateAmounts(req); len(msgs) > 0 {
		return msgs
	}

	var msgs []model.CalculationMessage
	if req.ComputationMethod != "" {
		msgs = append(msgs, warning(model.CodeMethodIgnored, "Computation method only applies to freelancer or business income"))
	}
	if req.BusinessExpenses != nil && !req.BusinessExpenses.IsZero() {
		msgs = append(msgs, warning(model.CodeExpensesIgnored, "Business expenses are not deductible from salary"))
	}
	return msgs
}

func (h *SalariedHandler) Apply(reg regime.Regime, in model.TaxInput, res *model.TaxResult) {
	res.GrossIncome = in.GrossAmount
	res.StandardDeduction = reg.StandardDeduction
	res.BusinessExpensesApplied = decimal.Zero
	res.TaxableIncome = decimal.Max(decimal.Zero, in.GrossAmount.Sub(reg.StandardDeduction))
	res.MethodUsed = model.MethodNone
}
