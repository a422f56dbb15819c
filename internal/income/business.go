package income

import (
	"fmt"

	"github.com/shopspring/decimal"

	"tax-engine/internal/model"
	"tax-engine/internal/regime"
)

// BusinessHandler covers freelancer and business receipts under either the
// normal method (actual expenses) or the presumptive scheme (deemed income).
type BusinessHandler struct{}

func (h *BusinessHandler) Validate(reg regime.Regime, req *model.CalculationRequest) []model.CalculationMessage {
	if msgs := validateAmounts(req); len(msgs) > 0 {
		return msgs
	}

	method := model.ComputationMethod(req.ComputationMethod)
	if method == "" {
		method = model.MethodNormal
	}

	var msgs []model.CalculationMessage
	switch method {
	case model.MethodPresumptive:
		if req.GrossAmount.GreaterThan(reg.PresumptiveTurnoverLimit) {
			return []model.CalculationMessage{critical(
				model.CodePresumptiveTurnoverExceeded,
				fmt.Sprintf("Presumptive scheme is limited to receipts of %s, got %s",
					reg.PresumptiveTurnoverLimit, req.GrossAmount),
			)}
		}
		if req.BusinessExpenses != nil && !req.BusinessExpenses.IsZero() {
			msgs = append(msgs, warning(model.CodeExpensesIgnored, "Business expenses are not deducted under the presumptive scheme"))
		}
	case model.MethodNormal:
		if req.BusinessExpenses != nil && req.BusinessExpenses.GreaterThan(req.GrossAmount) {
			msgs = append(msgs, warning(model.CodeExpensesExceedReceipts, "Business expenses exceed gross receipts; taxable income is zero"))
		}
	default:
		return []model.CalculationMessage{critical(
			model.CodeUnknownComputationMethod,
			fmt.Sprintf("Unknown computation method: %s", req.ComputationMethod),
		)}
	}
	return msgs
}

func (h *BusinessHandler) Apply(reg regime.Regime, in model.TaxInput, res *model.TaxResult) {
	res.GrossIncome = in.GrossAmount
	res.StandardDeduction = decimal.Zero

	if in.ComputationMethod == model.MethodPresumptive {
		res.BusinessExpensesApplied = decimal.Zero
		res.TaxableIncome = in.GrossAmount.Mul(reg.PresumptiveIncomeRate)
		res.MethodUsed = model.MethodPresumptive
		return
	}

	res.BusinessExpensesApplied = in.BusinessExpenses
	res.TaxableIncome = decimal.Max(decimal.Zero, in.GrossAmount.Sub(in.BusinessExpenses))
	res.MethodUsed = model.MethodNormal
}
