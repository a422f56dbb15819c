package engine

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"tax-engine/internal/model"
	"tax-engine/internal/regime"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func salaried(gross int64) model.TaxInput {
	return model.TaxInput{IncomeType: model.IncomeSalaried, GrossAmount: d(gross)}
}

func business(method model.ComputationMethod, gross, expenses int64) model.TaxInput {
	return model.TaxInput{
		IncomeType:        model.IncomeFreelancerBusiness,
		GrossAmount:       d(gross),
		ComputationMethod: method,
		BusinessExpenses:  d(expenses),
	}
}

func expectAmount(t *testing.T, field string, got decimal.Decimal, want int64) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Fatalf("%s: expected %d, got %s", field, want, got)
	}
}

func TestSalariedWithinRebate(t *testing.T) {
	res := Compute(salaried(800000))

	expectAmount(t, "standard_deduction", res.StandardDeduction, 50000)
	expectAmount(t, "taxable_income", res.TaxableIncome, 750000)
	expectAmount(t, "tax_before_rebate", res.TaxBeforeRebate, 17500)
	if !res.RebateEligible {
		t.Fatal("expected rebate eligibility")
	}
	expectAmount(t, "rebate_applied", res.RebateApplied, 17500)
	expectAmount(t, "tax_after_rebate", res.TaxAfterRebate, 0)
	expectAmount(t, "cess", res.Cess, 0)
	expectAmount(t, "total_tax", res.TotalTax, 0)
	if res.MethodUsed != model.MethodNone {
		t.Fatalf("expected method none, got %s", res.MethodUsed)
	}
}

func TestSalariedAboveRebateLimit(t *testing.T) {
	res := Compute(salaried(1300000))

	expectAmount(t, "taxable_income", res.TaxableIncome, 1250000)
	expectAmount(t, "tax_before_rebate", res.TaxBeforeRebate, 67500)
	if res.RebateEligible {
		t.Fatal("1250000 must not be rebate eligible")
	}
	expectAmount(t, "rebate_applied", res.RebateApplied, 0)
	expectAmount(t, "cess", res.Cess, 2700)
	expectAmount(t, "total_tax", res.TotalTax, 70200)
}

func TestSalariedBelowStandardDeduction(t *testing.T) {
	res := Compute(salaried(30000))

	expectAmount(t, "gross_income", res.GrossIncome, 30000)
	expectAmount(t, "taxable_income", res.TaxableIncome, 0)
	expectAmount(t, "total_tax", res.TotalTax, 0)
	if !res.RebateEligible {
		t.Fatal("zero taxable income is rebate eligible")
	}
	expectAmount(t, "rebate_applied", res.RebateApplied, 0)
}

func TestFreelancerPresumptive(t *testing.T) {
	res := Compute(business(model.MethodPresumptive, 2000000, 0))

	expectAmount(t, "standard_deduction", res.StandardDeduction, 0)
	expectAmount(t, "taxable_income", res.TaxableIncome, 1000000)
	expectAmount(t, "tax_before_rebate", res.TaxBeforeRebate, 40000)
	expectAmount(t, "rebate_applied", res.RebateApplied, 40000)
	expectAmount(t, "total_tax", res.TotalTax, 0)
	if res.MethodUsed != model.MethodPresumptive {
		t.Fatalf("expected presumptive, got %s", res.MethodUsed)
	}
}

func TestFreelancerPresumptiveIgnoresExpenses(t *testing.T) {
	res := Compute(business(model.MethodPresumptive, 2000000, 900000))

	expectAmount(t, "business_expenses_applied", res.BusinessExpensesApplied, 0)
	expectAmount(t, "taxable_income", res.TaxableIncome, 1000000)
}

func TestFreelancerNormalAllBands(t *testing.T) {
	res := Compute(business(model.MethodNormal, 3000000, 500000))

	expectAmount(t, "business_expenses_applied", res.BusinessExpensesApplied, 500000)
	expectAmount(t, "taxable_income", res.TaxableIncome, 2500000)
	expectAmount(t, "tax_before_rebate", res.TaxBeforeRebate, 330000)
	if res.RebateEligible {
		t.Fatal("2500000 must not be rebate eligible")
	}
	expectAmount(t, "cess", res.Cess, 13200)
	expectAmount(t, "total_tax", res.TotalTax, 343200)
	if res.MethodUsed != model.MethodNormal {
		t.Fatalf("expected normal, got %s", res.MethodUsed)
	}
}

func TestFreelancerExpensesExceedReceipts(t *testing.T) {
	res := Compute(business(model.MethodNormal, 500000, 800000))

	expectAmount(t, "taxable_income", res.TaxableIncome, 0)
	expectAmount(t, "total_tax", res.TotalTax, 0)
}

func TestEmptyMethodDefaultsToNormal(t *testing.T) {
	res := Compute(business("", 1000000, 100000))

	expectAmount(t, "taxable_income", res.TaxableIncome, 900000)
	if res.MethodUsed != model.MethodNormal {
		t.Fatalf("expected normal, got %s", res.MethodUsed)
	}
}

func TestRebateBoundary(t *testing.T) {
	// 1250000 gross salary lands exactly on the rebate ceiling.
	res := Compute(salaried(1250000))
	expectAmount(t, "taxable_income", res.TaxableIncome, 1200000)
	expectAmount(t, "tax_before_rebate", res.TaxBeforeRebate, 60000)
	if !res.RebateEligible {
		t.Fatal("taxable income at the ceiling must be rebate eligible")
	}
	expectAmount(t, "total_tax", res.TotalTax, 0)

	// One rupee above loses the rebate entirely.
	res = Compute(salaried(1250001))
	if res.RebateEligible {
		t.Fatal("taxable income above the ceiling must not be rebate eligible")
	}
	if !res.TaxBeforeRebate.Equal(decimal.RequireFromString("60000.15")) {
		t.Fatalf("expected 60000.15, got %s", res.TaxBeforeRebate)
	}
	if !res.TotalTax.Equal(decimal.RequireFromString("62400.16")) {
		t.Fatalf("expected 62400.16, got %s", res.TotalTax)
	}
}

func TestRebateCappedAtMaximum(t *testing.T) {
	// A regime whose tax inside the rebate ceiling exceeds the maximum rebate.
	reg := regime.Default()
	reg.MaxRebate = d(10000)
	res := New(reg).Compute(salaried(850000))

	expectAmount(t, "tax_before_rebate", res.TaxBeforeRebate, 20000)
	expectAmount(t, "rebate_applied", res.RebateApplied, 10000)
	expectAmount(t, "tax_after_rebate", res.TaxAfterRebate, 10000)
	expectAmount(t, "cess", res.Cess, 400)
	expectAmount(t, "total_tax", res.TotalTax, 10400)
}

func TestRebateProperties(t *testing.T) {
	reg := regime.Default()
	for v := int64(0); v <= 1250000; v += 7919 {
		res := Compute(salaried(v))
		if !res.RebateEligible {
			continue
		}
		noRebate := res.TaxBeforeRebate.Add(res.TaxBeforeRebate.Mul(reg.CessRate))
		if res.TotalTax.GreaterThan(noRebate) {
			t.Fatalf("gross %d: total %s exceeds tax without rebate %s", v, res.TotalTax, noRebate)
		}
		if res.TaxBeforeRebate.LessThanOrEqual(reg.MaxRebate) && !res.TotalTax.IsZero() {
			t.Fatalf("gross %d: expected zero total, got %s", v, res.TotalTax)
		}
	}
}

func TestCessIsRoundedFourPercent(t *testing.T) {
	for v := int64(1200000); v <= 6000000; v += 33331 {
		res := Compute(business(model.MethodNormal, v, 0))
		want := res.TaxAfterRebate.Mul(decimal.RequireFromString("0.04")).Round(MoneyPlaces)
		if !res.Cess.Equal(want) {
			t.Fatalf("gross %d: cess %s, expected %s", v, res.Cess, want)
		}
		if !res.TotalTax.Equal(res.TaxAfterRebate.Add(res.Cess)) {
			t.Fatalf("gross %d: total %s does not equal tax after rebate plus cess", v, res.TotalTax)
		}
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	in := business(model.MethodNormal, 4321987, 123456)
	a := fmt.Sprintf("%+v", Compute(in))
	b := fmt.Sprintf("%+v", Compute(in))
	if a != b {
		t.Fatalf("expected identical results, got %s and %s", a, b)
	}
}

func TestComputePanicsOnUnknownIncomeType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unsupported income type")
		}
	}()
	Compute(model.TaxInput{IncomeType: "pension", GrossAmount: d(1)})
}
