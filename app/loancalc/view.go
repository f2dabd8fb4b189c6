package loancalc

import (
	"io"
	"strconv"

	"github.com/delaneyj/slotparty/dom"
	"github.com/delaneyj/slotparty/kernel"
	"github.com/pkg/errors"
)

// View is the calculator state formatted for the page template.
type View struct {
	Title     string
	Amount    string
	Years     int
	Plural    string
	RateInput int
	Rate      string
	Monthly   string
	Total     string
	Interest  string
}

// ViewOf formats the current store of a calculator instance.
func ViewOf(in *kernel.Instance) *View {
	years := kernel.Slot[int](in, Years)
	return &View{
		Title:     kernel.Slot[string](in, PageTitle),
		Amount:    formatNumber(kernel.Slot[float64](in, LoanAmount)),
		Years:     years,
		Plural:    plural(years),
		RateInput: kernel.Slot[int](in, InterestRateInput),
		Rate:      formatRate(kernel.Slot[float64](in, InterestRate)),
		Monthly:   FormatAmount(kernel.Slot[float64](in, MonthlyPayment)),
		Total:     FormatAmount(kernel.Slot[float64](in, TotalPaid)),
		Interest:  FormatAmount(kernel.Slot[float64](in, InterestPaid)),
	}
}

// Prerender computes the calculator for props without mounting it and writes
// the full page to w.
func Prerender(w io.Writer, rt *kernel.Runtime, props kernel.Props) error {
	h, err := kernel.Instantiate(rt, Definition(), kernel.Options{Props: props})
	if err != nil {
		return errors.Wrap(err, "compute calculator")
	}
	defer h.Destroy()
	WritePage(w, ViewOf(h.Instance()))
	return nil
}

// Mount renders the calculator into target. With hydrate set the existing
// children of target, usually parsed from Body, are adopted.
func Mount(rt *kernel.Runtime, target *dom.Node, props kernel.Props, hydrate bool) (*kernel.Handle, error) {
	h, err := kernel.Instantiate(rt, Definition(), kernel.Options{
		Target:  target,
		Props:   props,
		Hydrate: hydrate,
	})
	if err != nil {
		return nil, errors.Wrap(err, "mount calculator")
	}
	return h, nil
}

// Input simulates typing value into one of the calculator inputs and
// flushes the resulting update.
func Input(h *kernel.Handle, slot int, value string) error {
	f, ok := h.Instance().Fragment().(*fragment)
	if !ok || !f.mounted {
		return errors.New("calculator is not mounted")
	}

	var node *dom.Node
	switch slot {
	case LoanAmount:
		node = f.amount.input
	case Years:
		node = f.years.input
	case InterestRateInput:
		node = f.rate.input
	default:
		return errors.Errorf("slot %d is not an input", slot)
	}

	rt := h.Instance().Runtime()
	return rt.Do(func() {
		dom.SetInputValue(node, value)
		rt.Events().Dispatch(node, "input")
	})
}

// InputName maps a property name to its input slot.
func InputName(name string) (int, bool) {
	switch name {
	case "loanAmount", "amount":
		return LoanAmount, true
	case "years":
		return Years, true
	case "interestRateInput", "rate":
		return InterestRateInput, true
	}
	return 0, false
}

// Summary returns the labelled results in display order.
func Summary(in *kernel.Instance) [][2]string {
	v := ViewOf(in)
	return [][2]string{
		{"Loan amount", FormatAmount(kernel.Slot[float64](in, LoanAmount))},
		{"Term", strconv.Itoa(v.Years) + " year" + v.Plural},
		{"Interest rate", v.Rate + "%"},
		{"Monthly payment", v.Monthly},
		{"Total paid", v.Total},
		{"Interest paid", v.Interest},
	}
}
