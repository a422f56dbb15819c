package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tax-engine/internal/model"
	"tax-engine/internal/reference"
)

func newReferenceCmd(a *app) *cobra.Command {
	var deduction string

	cmd := &cobra.Command{
		Use:       "reference [deductions|filing|gst|benefits]",
		Short:     "Print the tax reference guides",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"deductions", "filing", "gst", "benefits"},
		RunE: func(cmd *cobra.Command, args []string) error {
			section := "deductions"
			if len(args) == 1 {
				section = args[0]
			}
			out := cmd.OutOrStdout()
			c := a.content

			switch section {
			case "deductions":
				if deduction != "" {
					d, ok := c.Deduction(deduction)
					if !ok {
						return &model.OpError{Op: "cli.reference", Kind: model.KindNotFound, Err: fmt.Errorf("no deduction %q", deduction)}
					}
					printDeduction(out, d)
					return nil
				}
				for _, d := range c.Deductions {
					printDeduction(out, d)
				}
			case "filing":
				for _, s := range c.FilingSteps {
					fmt.Fprintf(out, "%d. %s\n   %s\n", s.Step, s.Title, s.Description)
					for _, item := range s.Checklist {
						fmt.Fprintf(out, "   - %s\n", item)
					}
				}
			case "gst":
				st := newStyles(out)
				fmt.Fprintln(out, st.title.Render("GST portal: "+c.GST.Portal))
				for _, w := range c.GST.WhoNeeds {
					mark := "optional"
					if w.Required {
						mark = "required"
					}
					fmt.Fprintf(out, "  [%s] %s\n", mark, w.Condition)
				}
				fmt.Fprintln(out, st.title.Render(c.GST.Freelancer.Title))
				for _, p := range c.GST.Freelancer.Points {
					fmt.Fprintf(out, "  - %s\n", p)
				}
				for _, r := range c.GST.Returns {
					fmt.Fprintf(out, "  %s (%s): %s. %s\n", r.Form, r.Frequency, r.Description, r.Details)
				}
			case "benefits":
				for _, b := range c.NewRegimeBenefits {
					fmt.Fprintf(out, "%s: %s\n  %s\n", b.Title, b.Value, b.Description)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&deduction, "section", "", "show a single deduction, e.g. 80c")
	return cmd
}

func printDeduction(w io.Writer, d reference.Deduction) {
	st := newStyles(w)
	fmt.Fprintln(w, st.title.Render(strings.ToUpper(d.ID)+"  "+d.Title)+"  "+st.faint.Render("limit "+d.Limit))
	fmt.Fprintf(w, "  %s\n", d.Description)
	for _, it := range d.Items {
		fmt.Fprintf(w, "  - %s: %s\n", it.Name, it.Detail)
	}
	if d.Note != "" {
		fmt.Fprintf(w, "  %s\n", st.faint.Render(d.Note))
	}
	fmt.Fprintln(w)
}
