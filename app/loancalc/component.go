// Package loancalc is the mortgage calculator component, written the way the
// compiler emits components for the kernel: a slot store, a recompute
// function keyed on dirty slots, and a fragment that patches by slot.
package loancalc

import (
	"math"
	"strconv"

	"github.com/delaneyj/slotparty/dom"
	"github.com/delaneyj/slotparty/kernel"
	"github.com/dustin/go-humanize"
)

// Slots of the calculator store.
const (
	PageTitle = iota
	LoanAmount
	Years
	InterestRateInput
	InterestRate
	MonthlyPayment
	TotalPaid
	InterestPaid
	TotalPayments
	MonthlyInterestRate
	CalculatedInterest

	amountHandler
	yearsHandler
	rateHandler

	slotCount
)

const (
	DefaultTitle     = "Mortgage Calculator"
	DefaultAmount    = 10000.0
	DefaultYears     = 12
	DefaultRateInput = 100
)

// Definition returns the calculator component. Props: pageTitle, loanAmount,
// years and interestRateInput (hundredths of a percent).
func Definition() kernel.Definition {
	return kernel.Definition{
		Setup:    setup,
		Update:   update,
		Fragment: newFragment,
		PropSlots: map[string]int{
			"pageTitle":         PageTitle,
			"loanAmount":        LoanAmount,
			"years":             Years,
			"interestRateInput": InterestRateInput,
		},
	}
}

func setup(in *kernel.Instance, props kernel.Props, invalidate kernel.Invalidator) []any {
	title, ok := props["pageTitle"].(string)
	if !ok {
		title = DefaultTitle
	}

	store := make([]any, slotCount)
	store[PageTitle] = title
	store[LoanAmount] = toFloat(props["loanAmount"], DefaultAmount)
	store[Years] = toInt(props["years"], DefaultYears)
	store[InterestRateInput] = toInt(props["interestRateInput"], DefaultRateInput)

	// the input handlers live in the store like any other instance value
	store[amountHandler] = dom.Listener(func(node *dom.Node, _ string) {
		if v, err := strconv.ParseFloat(dom.InputValue(node), 64); err == nil {
			invalidate(LoanAmount, v)
		}
	})
	store[yearsHandler] = dom.Listener(func(node *dom.Node, _ string) {
		if v, ok := parseInt(dom.InputValue(node)); ok {
			invalidate(Years, v)
		}
	})
	store[rateHandler] = dom.Listener(func(node *dom.Node, _ string) {
		if v, ok := parseInt(dom.InputValue(node)); ok {
			invalidate(InterestRateInput, v)
		}
	})
	return store
}

// update derives slots 4 to 10 from the inputs, in dependency order.
func update(in *kernel.Instance) error {
	d := in.Dirty()
	set := func(slot int, v any) {
		in.Invalidate(slot, v)
		d = in.Dirty()
	}

	if d.Has(InterestRateInput) {
		set(InterestRate, float64(kernel.Slot[int](in, InterestRateInput))/100)
	}
	if d.Has(Years) {
		set(TotalPayments, kernel.Slot[int](in, Years)*12)
	}
	if d.Has(InterestRate) {
		set(MonthlyInterestRate, kernel.Slot[float64](in, InterestRate)/100/12)
	}
	if d.Any(MonthlyInterestRate, TotalPayments) {
		set(CalculatedInterest, math.Pow(
			kernel.Slot[float64](in, MonthlyInterestRate)+1,
			float64(kernel.Slot[int](in, TotalPayments)),
		))
	}
	if d.Any(LoanAmount, CalculatedInterest, MonthlyInterestRate) {
		amount := kernel.Slot[float64](in, LoanAmount)
		ci := kernel.Slot[float64](in, CalculatedInterest)
		mir := kernel.Slot[float64](in, MonthlyInterestRate)
		set(MonthlyPayment, amount*ci*mir/(ci-1))
	}
	if d.Any(TotalPayments, MonthlyPayment) {
		set(TotalPaid, float64(kernel.Slot[int](in, TotalPayments))*kernel.Slot[float64](in, MonthlyPayment))
	}
	if d.Any(TotalPaid, LoanAmount) {
		set(InterestPaid, kernel.Slot[float64](in, TotalPaid)-kernel.Slot[float64](in, LoanAmount))
	}
	return nil
}

// FormatAmount renders a dollar amount with thousands separators and cents.
func FormatAmount(amount float64) string {
	switch {
	case math.IsNaN(amount):
		return "$NaN"
	case math.IsInf(amount, 1):
		return "$∞"
	case math.IsInf(amount, -1):
		return "-$∞"
	case amount < 0:
		return "-$" + humanize.FormatFloat("#,###.##", -amount)
	}
	return "$" + humanize.FormatFloat("#,###.##", amount)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 2, 64)
}

func plural(years int) string {
	if years > 1 {
		return "s"
	}
	return ""
}

func parseInt(s string) (int, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

func toFloat(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	}
	return def
}

func toInt(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint:
		return int(n)
	case float64:
		return int(n)
	}
	return def
}
