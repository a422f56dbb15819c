package regime

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultName identifies the built-in New Tax Regime table.
const DefaultName = "NEW_REGIME_FY2025_26"

// Slab is one marginal band. Lower is inclusive; a nil Upper means the band
// has no ceiling and consumes all remaining income.
type Slab struct {
	Lower decimal.Decimal  `json:"lower"`
	Upper *decimal.Decimal `json:"upper"`
	Rate  decimal.Decimal  `json:"rate"`
}

func (s Slab) Unbounded() bool { return s.Upper == nil }

// Span returns Upper-Lower, or false for the unbounded band.
func (s Slab) Span() (decimal.Decimal, bool) {
	if s.Upper == nil {
		return decimal.Zero, false
	}
	return s.Upper.Sub(s.Lower), true
}

// Regime holds the slab table and every named constant the engine reads.
type Regime struct {
	Name                     string          `json:"name"`
	Slabs                    []Slab          `json:"slabs"`
	StandardDeduction        decimal.Decimal `json:"standard_deduction"`
	RebateIncomeLimit        decimal.Decimal `json:"rebate_income_limit"`
	MaxRebate                decimal.Decimal `json:"max_rebate"`
	CessRate                 decimal.Decimal `json:"cess_rate"`
	PresumptiveIncomeRate    decimal.Decimal `json:"presumptive_income_rate"`
	PresumptiveTurnoverLimit decimal.Decimal `json:"presumptive_turnover_limit"`
}

// Default returns the New Tax Regime for FY 2025-26 (AY 2026-27).
// Each call builds a fresh value so callers can never mutate the table.
func Default() Regime {
	return Regime{
		Name: DefaultName,
		Slabs: []Slab{
			bounded(0, 400000, "0"),
			bounded(400000, 800000, "0.05"),
			bounded(800000, 1200000, "0.10"),
			bounded(1200000, 1600000, "0.15"),
			bounded(1600000, 2000000, "0.20"),
			bounded(2000000, 2400000, "0.25"),
			{Lower: decimal.NewFromInt(2400000), Rate: decimal.RequireFromString("0.30")},
		},
		StandardDeduction:        decimal.NewFromInt(50000),
		RebateIncomeLimit:        decimal.NewFromInt(1200000),
		MaxRebate:                decimal.NewFromInt(60000),
		CessRate:                 decimal.RequireFromString("0.04"),
		PresumptiveIncomeRate:    decimal.RequireFromString("0.50"),
		PresumptiveTurnoverLimit: decimal.NewFromInt(7500000),
	}
}

func bounded(lower, upper int64, rate string) Slab {
	u := decimal.NewFromInt(upper)
	return Slab{Lower: decimal.NewFromInt(lower), Upper: &u, Rate: decimal.RequireFromString(rate)}
}

// SlabTax walks the bands in ascending order and sums the marginal tax on
// taxable. Income below a threshold is never taxed at a higher band's rate.
func (r Regime) SlabTax(taxable decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	for _, b := range r.Breakdown(taxable) {
		tax = tax.Add(b.Tax)
	}
	return tax
}

// BandTax is the portion of income that fell into one slab.
type BandTax struct {
	Slab   Slab            `json:"slab"`
	Amount decimal.Decimal `json:"amount"`
	Tax    decimal.Decimal `json:"tax"`
}

// Breakdown returns the per-band amounts for taxable, stopping at the first
// band the income does not reach.
func (r Regime) Breakdown(taxable decimal.Decimal) []BandTax {
	var out []BandTax
	remaining := taxable
	for _, s := range r.Slabs {
		if !remaining.IsPositive() {
			break
		}
		inBand := remaining
		if span, ok := s.Span(); ok {
			inBand = decimal.Min(remaining, span)
		}
		out = append(out, BandTax{Slab: s, Amount: inBand, Tax: inBand.Mul(s.Rate)})
		remaining = remaining.Sub(inBand)
	}
	return out
}

// Validate checks that the bands are contiguous from zero, exhaustive over
// [0, inf) and that every constant is in range.
func (r Regime) Validate() error {
	if len(r.Slabs) == 0 {
		return errors.New("regime has no slabs")
	}
	if !r.Slabs[0].Lower.IsZero() {
		return fmt.Errorf("slabs[0].lower must be 0, got %s", r.Slabs[0].Lower)
	}

	one := decimal.NewFromInt(1)
	for i, s := range r.Slabs {
		if s.Rate.IsNegative() || s.Rate.GreaterThan(one) {
			return fmt.Errorf("slabs[%d].rate %s outside [0, 1]", i, s.Rate)
		}
		if i > 0 && s.Rate.LessThan(r.Slabs[i-1].Rate) {
			return fmt.Errorf("slabs[%d].rate %s is lower than the previous band", i, s.Rate)
		}
		last := i == len(r.Slabs)-1
		if s.Unbounded() {
			if !last {
				return fmt.Errorf("slabs[%d] is unbounded but not the last band", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("slabs[%d] is the last band and must be unbounded", i)
		}
		if !s.Upper.GreaterThan(s.Lower) {
			return fmt.Errorf("slabs[%d] upper %s must exceed lower %s", i, s.Upper, s.Lower)
		}
		if !r.Slabs[i+1].Lower.Equal(*s.Upper) {
			return fmt.Errorf("slabs[%d].lower %s leaves a gap after %s", i+1, r.Slabs[i+1].Lower, s.Upper)
		}
	}

	for name, v := range map[string]decimal.Decimal{
		"standard_deduction":         r.StandardDeduction,
		"rebate_income_limit":        r.RebateIncomeLimit,
		"max_rebate":                 r.MaxRebate,
		"presumptive_turnover_limit": r.PresumptiveTurnoverLimit,
	} {
		if v.IsNegative() {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	for name, v := range map[string]decimal.Decimal{
		"cess_rate":               r.CessRate,
		"presumptive_income_rate": r.PresumptiveIncomeRate,
	} {
		if v.IsNegative() || v.GreaterThan(one) {
			return fmt.Errorf("%s %s outside [0, 1]", name, v)
		}
	}
	return nil
}
