// Package format renders amounts the way Indian tax documents print them:
// lakh/crore digit grouping and a rupee prefix. It never changes the value.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	lakh  = decimal.NewFromInt(100000)
	crore = decimal.NewFromInt(10000000)
)

// Rupees formats d rounded to whole rupees, e.g. ₹12,50,000.
func Rupees(d decimal.Decimal) string {
	s := Group(d.Round(0))
	if strings.HasPrefix(s, "-") {
		return "-₹" + s[1:]
	}
	return "₹" + s
}

// Group applies Indian digit grouping (last three digits, then pairs) to
// the integer part of d. The fractional part is kept as is.
func Group(d decimal.Decimal) string {
	s := d.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	if len(intPart) <= 3 {
		b.WriteString(intPart)
	} else {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		lead := len(head) % 2
		if lead == 1 {
			b.WriteString(head[:1])
		}
		for i := lead; i < len(head); i += 2 {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(head[i : i+2])
		}
		b.WriteByte(',')
		b.WriteString(tail)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// Compact abbreviates large amounts: 1.25 Cr, 12.50 L, otherwise grouped digits.
func Compact(d decimal.Decimal) string {
	abs := d.Abs()
	switch {
	case abs.GreaterThanOrEqual(crore):
		return d.Div(crore).StringFixed(2) + " Cr"
	case abs.GreaterThanOrEqual(lakh):
		return d.Div(lakh).StringFixed(2) + " L"
	}
	return Group(d)
}

// Percent renders a fractional rate as a percentage, e.g. 0.05 -> 5%.
func Percent(rate decimal.Decimal) string {
	return rate.Shift(2).String() + "%"
}
