package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tax-engine/internal/model"
)

func ptr(v int64) *decimal.Decimal {
	x := decimal.NewFromInt(v)
	return &x
}

func TestProcessSuccess(t *testing.T) {
	resp := Process(&model.CalculationRequest{
		IncomeType:  "salaried",
		GrossAmount: decimal.NewFromInt(1300000),
	})

	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if _, err := uuid.Parse(resp.CalculationMetadata.CalculationID); err != nil {
		t.Fatalf("expected uuid calculation_id, got %q", resp.CalculationMetadata.CalculationID)
	}
	if resp.CalculationMetadata.Regime == "" {
		t.Fatal("expected regime name in metadata")
	}
	if len(resp.Messages) != 0 {
		t.Fatalf("expected 0 messages, got %d", len(resp.Messages))
	}
	if resp.CalculationResult == nil {
		t.Fatal("expected a result")
	}
	if !resp.CalculationResult.TotalTax.Equal(decimal.NewFromInt(70200)) {
		t.Fatalf("expected total 70200, got %s", resp.CalculationResult.TotalTax)
	}
}

func TestProcessDefaultsBusinessMethodToNormal(t *testing.T) {
	resp := Process(&model.CalculationRequest{
		IncomeType:       "freelancer_business",
		GrossAmount:      decimal.NewFromInt(3000000),
		BusinessExpenses: ptr(500000),
	})

	if resp.CalculationResult == nil {
		t.Fatalf("expected a result, messages: %+v", resp.Messages)
	}
	if resp.CalculationResult.MethodUsed != model.MethodNormal {
		t.Fatalf("expected normal, got %s", resp.CalculationResult.MethodUsed)
	}
	if !resp.CalculationResult.TotalTax.Equal(decimal.NewFromInt(343200)) {
		t.Fatalf("expected total 343200, got %s", resp.CalculationResult.TotalTax)
	}
}

func TestProcessRejections(t *testing.T) {
	cases := []struct {
		name string
		req  model.CalculationRequest
		code string
	}{
		{
			name: "unknown income type",
			req:  model.CalculationRequest{IncomeType: "pension", GrossAmount: decimal.NewFromInt(1)},
			code: model.CodeUnknownIncomeType,
		},
		{
			name: "negative salary",
			req:  model.CalculationRequest{IncomeType: "salaried", GrossAmount: decimal.NewFromInt(-1)},
			code: model.CodeNegativeGrossAmount,
		},
		{
			name: "negative expenses",
			req: model.CalculationRequest{
				IncomeType:       "freelancer_business",
				GrossAmount:      decimal.NewFromInt(100),
				BusinessExpenses: ptr(-5),
			},
			code: model.CodeNegativeBusinessExpenses,
		},
		{
			name: "unknown method",
			req: model.CalculationRequest{
				IncomeType:        "freelancer_business",
				GrossAmount:       decimal.NewFromInt(100),
				ComputationMethod: "hybrid",
			},
			code: model.CodeUnknownComputationMethod,
		},
		{
			name: "presumptive above ceiling",
			req: model.CalculationRequest{
				IncomeType:        "freelancer_business",
				GrossAmount:       decimal.NewFromInt(7500001),
				ComputationMethod: "presumptive",
			},
			code: model.CodePresumptiveTurnoverExceeded,
		},
	}

	for _, c := range cases {
		resp := Process(&c.req)
		if resp.CalculationMetadata.CalculationOutcome != model.OutcomeFailure {
			t.Fatalf("%s: expected FAILURE, got %s", c.name, resp.CalculationMetadata.CalculationOutcome)
		}
		if resp.CalculationResult != nil {
			t.Fatalf("%s: expected no result", c.name)
		}
		if len(resp.Messages) != 1 {
			t.Fatalf("%s: expected 1 message, got %d", c.name, len(resp.Messages))
		}
		if resp.Messages[0].Code != c.code {
			t.Fatalf("%s: expected %s, got %s", c.name, c.code, resp.Messages[0].Code)
		}
		if resp.Messages[0].Level != model.LevelCritical {
			t.Fatalf("%s: expected CRITICAL, got %s", c.name, resp.Messages[0].Level)
		}
	}
}

func TestProcessPresumptiveAtCeiling(t *testing.T) {
	resp := Process(&model.CalculationRequest{
		IncomeType:        "freelancer_business",
		GrossAmount:       decimal.NewFromInt(7500000),
		ComputationMethod: "presumptive",
	})

	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		t.Fatalf("expected SUCCESS at the ceiling, got %+v", resp.Messages)
	}
	if !resp.CalculationResult.TaxableIncome.Equal(decimal.NewFromInt(3750000)) {
		t.Fatalf("expected taxable 3750000, got %s", resp.CalculationResult.TaxableIncome)
	}
}

func TestProcessWarningsKeepResult(t *testing.T) {
	resp := Process(&model.CalculationRequest{
		IncomeType:        "salaried",
		GrossAmount:       decimal.NewFromInt(800000),
		ComputationMethod: "presumptive",
		BusinessExpenses:  ptr(1000),
	})

	if resp.CalculationMetadata.CalculationOutcome != model.OutcomeSuccess {
		t.Fatalf("expected SUCCESS, got %s", resp.CalculationMetadata.CalculationOutcome)
	}
	if len(resp.Messages) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(resp.Messages))
	}
	if resp.Messages[0].Code != model.CodeMethodIgnored || resp.Messages[1].Code != model.CodeExpensesIgnored {
		t.Fatalf("unexpected warning codes: %+v", resp.Messages)
	}
	for i, m := range resp.Messages {
		if m.ID != i {
			t.Fatalf("expected message id %d, got %d", i, m.ID)
		}
		if m.Level != model.LevelWarning {
			t.Fatalf("expected WARNING, got %s", m.Level)
		}
	}
	if resp.CalculationResult.MethodUsed != model.MethodNone {
		t.Fatalf("expected method none for salaried, got %s", resp.CalculationResult.MethodUsed)
	}
}
