package income

import "tax-engine/internal/model"

var registry = map[model.IncomeType]Handler{
	model.IncomeSalaried:           &SalariedHandler{},
	model.IncomeFreelancerBusiness: &BusinessHandler{},
}

func Get(t model.IncomeType) (Handler, bool) {
	h, ok := registry[t]
	return h, ok
}

// Types lists the supported income types in display order.
func Types() []model.IncomeType {
	return []model.IncomeType{model.IncomeSalaried, model.IncomeFreelancerBusiness}
}
