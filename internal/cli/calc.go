package cli

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"tax-engine/internal/model"
)

func newCalcCmd(a *app) *cobra.Command {
	var (
		incomeType string
		amount     string
		method     string
		expenses   string
		asJSON     bool
		query      string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate tax for one income",
		Example: `  tax-engine calc --amount 1300000
  tax-engine calc --type freelancer_business --amount 2000000 --method presumptive
  tax-engine calc --type freelancer_business --amount 3000000 --expenses 500000 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := buildRequest(incomeType, amount, method, expenses)
			if err != nil {
				return err
			}

			resp := a.engine.Process(req)
			out := cmd.OutOrStdout()

			switch {
			case query != "":
				if err := printQuery(out, resp, query); err != nil {
					return err
				}
			case asJSON:
				b, err := json.MarshalIndent(resp, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
			default:
				renderMessages(out, resp.Messages)
				if resp.CalculationResult != nil {
					renderBreakdown(out, a.engine.Regime(), resp.CalculationResult)
				}
			}

			if resp.CalculationMetadata.CalculationOutcome == model.OutcomeFailure {
				return errors.New("calculation rejected")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&incomeType, "type", string(model.IncomeSalaried), "income type: salaried or freelancer_business")
	cmd.Flags().StringVar(&amount, "amount", "", "annual salary or gross receipts")
	cmd.Flags().StringVar(&method, "method", "", "normal or presumptive (freelancer_business only)")
	cmd.Flags().StringVar(&expenses, "expenses", "", "business expenses (normal method only)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full response as JSON")
	cmd.Flags().StringVar(&query, "query", "", "print only the value at this JSONPath, e.g. $.calculation_result.total_tax")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

// buildRequest turns flag values into a request; amounts accept Indian
// grouping such as 12,50,000.
func buildRequest(incomeType, amount, method, expenses string) (*model.CalculationRequest, error) {
	if incomeType == "freelancer" || incomeType == "business" {
		incomeType = string(model.IncomeFreelancerBusiness)
	}

	gross, err := parseAmount("amount", amount)
	if err != nil {
		return nil, err
	}
	req := &model.CalculationRequest{
		IncomeType:        incomeType,
		GrossAmount:       gross,
		ComputationMethod: method,
	}
	if strings.TrimSpace(expenses) != "" {
		exp, err := parseAmount("expenses", expenses)
		if err != nil {
			return nil, err
		}
		req.BusinessExpenses = &exp
	}
	return req, nil
}

func parseAmount(flag, raw string) (decimal.Decimal, error) {
	clean := strings.NewReplacer(",", "", "₹", "", "_", "").Replace(strings.TrimSpace(raw))
	v, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, &model.OpError{
			Op:   "cli.parse_" + flag,
			Kind: model.KindInvalidInput,
			Err:  fmt.Errorf("--%s must be a number, got %q", flag, raw),
		}
	}
	return v, nil
}
