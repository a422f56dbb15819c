package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"tax-engine/internal/deadlines"
	"tax-engine/internal/format"
	"tax-engine/internal/model"
	"tax-engine/internal/regime"
)

type styles struct {
	title    lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	total    lipgloss.Style
	critical lipgloss.Style
	warning  lipgloss.Style
	faint    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label:    r.NewStyle().Width(30),
		value:    r.NewStyle().Width(16).Align(lipgloss.Right),
		total:    r.NewStyle().Width(16).Align(lipgloss.Right).Bold(true),
		critical: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warning:  r.NewStyle().Foreground(lipgloss.Color("11")),
		faint:    r.NewStyle().Faint(true),
	}
}

func renderMessages(w io.Writer, msgs []model.CalculationMessage) {
	st := newStyles(w)
	for _, m := range msgs {
		s := st.warning
		if m.Level == model.LevelCritical {
			s = st.critical
		}
		fmt.Fprintf(w, "%s %s\n", s.Render(m.Level+" "+m.Code), m.Message)
	}
}

func renderBreakdown(w io.Writer, reg regime.Regime, res *model.TaxResult) {
	st := newStyles(w)
	row := func(label string, v decimal.Decimal) {
		fmt.Fprintln(w, st.label.Render(label)+st.value.Render(format.Rupees(v)))
	}

	fmt.Fprintln(w, st.title.Render("Tax breakdown ("+reg.Name+")"))
	row("Gross income", res.GrossIncome)
	if res.StandardDeduction.IsPositive() {
		row("Standard deduction", res.StandardDeduction)
	}
	if res.MethodUsed == model.MethodNormal {
		row("Business expenses", res.BusinessExpensesApplied)
	}
	if res.MethodUsed == model.MethodPresumptive {
		fmt.Fprintln(w, st.faint.Render(fmt.Sprintf("Presumptive scheme: %s of receipts deemed income", format.Percent(reg.PresumptiveIncomeRate))))
	}
	row("Taxable income", res.TaxableIncome)

	for _, b := range reg.Breakdown(res.TaxableIncome) {
		band := format.Compact(b.Slab.Lower) + " and above"
		if b.Slab.Upper != nil {
			band = format.Compact(b.Slab.Lower) + " - " + format.Compact(*b.Slab.Upper)
		}
		label := fmt.Sprintf("  %s @ %s", band, format.Percent(b.Slab.Rate))
		fmt.Fprintln(w, st.faint.Render(st.label.Render(label)+st.value.Render(format.Rupees(b.Tax))))
	}

	row("Tax before rebate", res.TaxBeforeRebate)
	if res.RebateEligible {
		row("Section 87A rebate", res.RebateApplied.Neg())
	} else {
		fmt.Fprintln(w, st.faint.Render("Not eligible for Section 87A rebate (taxable income above "+format.Rupees(reg.RebateIncomeLimit)+")"))
	}
	row("Tax after rebate", res.TaxAfterRebate)
	row("Health & education cess", res.Cess)
	fmt.Fprintln(w, st.label.Render("Total tax payable")+st.total.Render(format.Rupees(res.TotalTax)))
}

func renderSlabs(w io.Writer, reg regime.Regime) {
	st := newStyles(w)
	fmt.Fprintln(w, st.title.Render("Slabs ("+reg.Name+")"))
	for _, s := range reg.Slabs {
		band := "Above " + format.Rupees(s.Lower)
		if s.Upper != nil {
			band = format.Rupees(s.Lower) + " - " + format.Rupees(*s.Upper)
		}
		fmt.Fprintln(w, st.label.Render(band)+st.value.Render(format.Percent(s.Rate)))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, st.label.Render("Standard deduction (salaried)")+st.value.Render(format.Rupees(reg.StandardDeduction)))
	fmt.Fprintln(w, st.label.Render("87A rebate income limit")+st.value.Render(format.Rupees(reg.RebateIncomeLimit)))
	fmt.Fprintln(w, st.label.Render("87A maximum rebate")+st.value.Render(format.Rupees(reg.MaxRebate)))
	fmt.Fprintln(w, st.label.Render("Cess")+st.value.Render(format.Percent(reg.CessRate)))
	fmt.Fprintln(w, st.label.Render("Presumptive turnover limit")+st.value.Render(format.Rupees(reg.PresumptiveTurnoverLimit)))
}

func renderReminders(w io.Writer, reminders []deadlines.Reminder) {
	st := newStyles(w)
	title := st.label.Width(44)
	for _, r := range reminders {
		s := st.faint
		switch r.Urgency {
		case deadlines.Overdue, deadlines.Urgent:
			s = st.critical
		case deadlines.Soon:
			s = st.warning
		}
		name := r.Title
		if r.Cumulative != "" {
			name += " (" + r.Cumulative + ")"
		}
		fmt.Fprintln(w, title.Render(name)+st.value.Render(r.DueDate)+"  "+s.Render(deadlines.DaysText(r.DaysRemaining)))
	}
}
