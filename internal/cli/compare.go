package cli

import (
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"tax-engine/internal/format"
	"tax-engine/internal/model"
)

type requestFlags struct {
	incomeType, amount, method, expenses string
}

func (f *requestFlags) bind(cmd *cobra.Command, prefix, what string) {
	cmd.Flags().StringVar(&f.incomeType, prefix+"type", string(model.IncomeSalaried), what+" income type")
	cmd.Flags().StringVar(&f.amount, prefix+"amount", "", what+" salary or gross receipts")
	cmd.Flags().StringVar(&f.method, prefix+"method", "", what+" computation method")
	cmd.Flags().StringVar(&f.expenses, prefix+"expenses", "", what+" business expenses")
}

func newCompareCmd(a *app) *cobra.Command {
	var (
		base, scen requestFlags
		asJSON     bool
		query      string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two calculations, e.g. salary against presumptive receipts",
		Example: `  tax-engine compare --amount 1300000 --vs-type freelancer_business --vs-method presumptive`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if scen.amount == "" {
				scen.amount = base.amount
			}
			baseReq, err := buildRequest(base.incomeType, base.amount, base.method, base.expenses)
			if err != nil {
				return err
			}
			scenReq, err := buildRequest(scen.incomeType, scen.amount, scen.method, scen.expenses)
			if err != nil {
				return err
			}

			resp, err := a.engine.Compare(&model.ComparisonRequest{Baseline: *baseReq, Scenario: *scenReq})
			if err != nil {
				return err
			}

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
				renderComparison(out, resp)
			}

			if resp.TotalTaxDelta == nil {
				return errors.New("comparison incomplete: a calculation was rejected")
			}
			return nil
		},
	}

	base.bind(cmd, "", "baseline")
	scen.bind(cmd, "vs-", "scenario")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the comparison as JSON")
	cmd.Flags().StringVar(&query, "query", "", "print only the value at this JSONPath, e.g. $.total_tax_delta")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func renderComparison(w io.Writer, resp *model.ComparisonResponse) {
	st := newStyles(w)
	for _, side := range []struct {
		name string
		resp *model.CalculationResponse
	}{{"Baseline", resp.Baseline}, {"Scenario", resp.Scenario}} {
		renderMessages(w, side.resp.Messages)
		if r := side.resp.CalculationResult; r != nil {
			fmt.Fprintln(w, st.label.Render(side.name+" ("+string(r.MethodUsed)+")")+st.value.Render(format.Rupees(r.TotalTax)))
		}
	}
	if resp.TotalTaxDelta == nil {
		return
	}
	fmt.Fprintln(w, st.label.Render("Difference")+st.total.Render(format.Rupees(*resp.TotalTaxDelta)))
	for _, op := range resp.Changes {
		fmt.Fprintln(w, st.faint.Render(fmt.Sprintf("  %s %s -> %v", op.Op, op.Path, op.Value)))
	}
}
