package income

import (
	"tax-engine/internal/model"
	"tax-engine/internal/regime"
)

// Handler implements the taxable-income step for one income type.
// Validate runs at the input boundary; Apply assumes Validate reported no
// CRITICAL message and fills the first-step fields of res.
type Handler interface {
	Validate(reg regime.Regime, req *model.CalculationRequest) []model.CalculationMessage
	Apply(reg regime.Regime, in model.TaxInput, res *model.TaxResult)
}

func critical(code, message string) model.CalculationMessage {
	return model.CalculationMessage{Level: model.LevelCritical, Code: code, Message: message}
}

func warning(code, message string) model.CalculationMessage {
	return model.CalculationMessage{Level: model.LevelWarning, Code: code, Message: message}
}

// validateAmounts rejects negative gross and expense figures.
func validateAmounts(req *model.CalculationRequest) []model.CalculationMessage {
	if req.GrossAmount.IsNegative() {
		return []model.CalculationMessage{critical(model.CodeNegativeGrossAmount, "Gross amount must not be negative")}
	}
	if req.BusinessExpenses != nil && req.BusinessExpenses.IsNegative() {
		return []model.CalculationMessage{critical(model.CodeNegativeBusinessExpenses, "Business expenses must not be negative")}
	}
	return nil
}
