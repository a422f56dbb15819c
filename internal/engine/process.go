package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"tax-engine/internal/income"
	"tax-engine/internal/model"
)

// Process is the input boundary: it validates the request, computes the
// breakdown when nothing CRITICAL was reported and wraps both in a response.
func Process(req *model.CalculationRequest) *model.CalculationResponse {
	return defaultEngine.Process(req)
}

func (e *Engine) Process(req *model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()

	var msgs []model.CalculationMessage
	var result *model.TaxResult

	h, ok := income.Get(model.IncomeType(req.IncomeType))
	if !ok {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    model.CodeUnknownIncomeType,
			Message: fmt.Sprintf("Unknown income type: %q", req.IncomeType),
		})
	} else {
		msgs = append(msgs, h.Validate(e.regime, req)...)
	}

	outcome := model.OutcomeFailure
	if !model.HasCritical(msgs) {
		res := e.Compute(req.Input())
		result = &res
		outcome = model.OutcomeSuccess
	}

	for i := range msgs {
		msgs[i].ID = i
	}
	if msgs == nil {
		msgs = []model.CalculationMessage{}
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			Regime:                 e.regime.Name,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		Messages:          msgs,
		CalculationResult: result,
	}
}
