package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"tax-engine/internal/income"
	"tax-engine/internal/model"
	"tax-engine/internal/regime"
)

// MoneyPlaces is the precision (paise) that slab tax and cess are rounded to.
const MoneyPlaces int32 = 2

// Engine computes tax breakdowns against one regime. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	regime regime.Regime
}

func New(reg regime.Regime) *Engine {
	return &Engine{regime: reg}
}

var defaultEngine = New(regime.Default())

// Compute runs the calculation against the default regime.
func Compute(in model.TaxInput) model.TaxResult {
	return defaultEngine.Compute(in)
}

func (e *Engine) Regime() regime.Regime { return e.regime }

// Compute maps a validated input to its full breakdown. Negative amounts and
// unsupported income types are precondition violations; callers go through
// Process (or the income validators) to reject them first.
func (e *Engine) Compute(in model.TaxInput) model.TaxResult {
	h, ok := income.Get(in.IncomeType)
	if !ok {
		panic(fmt.Sprintf("engine: unsupported income type %q", in.IncomeType))
	}

	var res model.TaxResult
	h.Apply(e.regime, in, &res)

	res.TaxBeforeRebate = e.regime.SlabTax(res.TaxableIncome).Round(MoneyPlaces)

	// Section 87A
	res.RebateEligible = res.TaxableIncome.LessThanOrEqual(e.regime.RebateIncomeLimit)
	res.RebateApplied = decimal.Zero
	if res.RebateEligible && res.TaxBeforeRebate.IsPositive() {
		res.RebateApplied = decimal.Min(res.TaxBeforeRebate, e.regime.MaxRebate)
	}
	res.TaxAfterRebate = res.TaxBeforeRebate.Sub(res.RebateApplied)

	// Health & education cess is only charged on a positive liability.
	res.Cess = decimal.Zero
	if res.TaxAfterRebate.IsPositive() {
		res.Cess = res.TaxAfterRebate.Mul(e.regime.CessRate).Round(MoneyPlaces)
	}
	res.TotalTax = res.TaxAfterRebate.Add(res.Cess)

	return res
}
