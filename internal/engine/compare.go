package engine

import (
	"tax-engine/internal/jsonpatch"
	"tax-engine/internal/model"
)

// Compare processes both requests and, when both succeed, reports how the
// scenario's breakdown differs from the baseline as a JSON Patch over the
// result fields.
func (e *Engine) Compare(req *model.ComparisonRequest) (*model.ComparisonResponse, error) {
	resp := &model.ComparisonResponse{
		Baseline: e.Process(&req.Baseline),
		Scenario: e.Process(&req.Scenario),
		Changes:  []jsonpatch.Op{},
	}

	base, scen := resp.Baseline.CalculationResult, resp.Scenario.CalculationResult
	if base == nil || scen == nil {
		return resp, nil
	}

	delta := scen.TotalTax.Sub(base.TotalTax)
	resp.TotalTaxDelta = &delta

	ops, err := jsonpatch.Between(base, scen)
	if err != nil {
		return nil, err
	}
	if ops != nil {
		resp.Changes = ops
	}
	return resp, nil
}
