package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

// Validation codes reported at the input boundary.
const (
	CodeUnknownIncomeType           = "UNKNOWN_INCOME_TYPE"
	CodeUnknownComputationMethod    = "UNKNOWN_COMPUTATION_METHOD"
	CodeNegativeGrossAmount         = "NEGATIVE_GROSS_AMOUNT"
	CodeNegativeBusinessExpenses    = "NEGATIVE_BUSINESS_EXPENSES"
	CodePresumptiveTurnoverExceeded = "PRESUMPTIVE_TURNOVER_EXCEEDED"
	CodeExpensesIgnored             = "EXPENSES_IGNORED"
	CodeMethodIgnored               = "METHOD_IGNORED"
	CodeExpensesExceedReceipts      = "EXPENSES_EXCEED_RECEIPTS"
)

// HasCritical reports whether any message blocks the calculation.
func HasCritical(msgs []CalculationMessage) bool {
	for _, m := range msgs {
		if m.Level == LevelCritical {
			return true
		}
	}
	return false
}
