package loancalc_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/delaneyj/slotparty/app/loancalc"
	"github.com/delaneyj/slotparty/dom"
	"github.com/delaneyj/slotparty/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outputs(t *testing.T, target *dom.Node) []string {
	t.Helper()
	var texts []string
	main := dom.Find(target, "main", "container")
	require.NotNil(t, main)
	for _, row := range dom.Children(main) {
		if v, ok := dom.Attr(row, "class"); ok && v == "row outputs" {
			texts = append(texts, dom.TextContent(row))
		}
	}
	return texts
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$0.00", loancalc.FormatAmount(0))
	assert.Equal(t, "$5.00", loancalc.FormatAmount(5))
	assert.Equal(t, "$1,234.50", loancalc.FormatAmount(1234.5))
	assert.Equal(t, "$1,264.14", loancalc.FormatAmount(1264.1360469859308))
	assert.Equal(t, "-$616.16", loancalc.FormatAmount(-616.1582155626311))
	assert.Equal(t, "$NaN", loancalc.FormatAmount(math.NaN()))
}

func TestRecompute(t *testing.T) {
	rt := kernel.NewRuntime()
	h, err := kernel.Instantiate(rt, loancalc.Definition(), kernel.Options{})
	require.NoError(t, err)
	in := h.Instance()

	assert.Equal(t, loancalc.DefaultTitle, in.Get(loancalc.PageTitle))
	assert.Equal(t, 1.0, in.Get(loancalc.InterestRate))
	assert.Equal(t, 144, in.Get(loancalc.TotalPayments))
	assert.InDelta(t, 73.72332094140717, in.Get(loancalc.MonthlyPayment), 1e-9)
	assert.InDelta(t, 10616.158215562631, in.Get(loancalc.TotalPaid), 1e-6)
	assert.InDelta(t, 616.1582155626311, in.Get(loancalc.InterestPaid), 1e-6)

	// only the chain below the changed input is recomputed
	require.NoError(t, h.Set(kernel.Props{"years": 30, "interestRateInput": 650, "loanAmount": 200000.0}))
	require.NoError(t, rt.Tick())
	assert.InDelta(t, 1264.1360469859308, in.Get(loancalc.MonthlyPayment), 1e-6)
	assert.InDelta(t, 255088.97691493505, in.Get(loancalc.InterestPaid), 1e-4)
	assert.True(t, in.Dirty().IsClean())

	// nothing was mounted, nothing to detach
	h.Destroy()
	assert.True(t, in.Destroyed())
}

func TestCreateAndInput(t *testing.T) {
	rt := kernel.NewRuntime()
	target := dom.Body()
	h, err := loancalc.Mount(rt, target, kernel.Props{"pageTitle": "Loans"}, false)
	require.NoError(t, err)

	h1 := dom.Find(target, "h1", "title")
	require.NotNil(t, h1)
	assert.Equal(t, "Loans", dom.TextContent(h1))
	assert.Equal(t, []string{
		"Monthly Payments: $73.72",
		"Total Paid: $10,616.16",
		"Interest Paid: $616.16",
	}, outputs(t, target))

	years := dom.Find(target, "div", "columns six outputs")
	require.NotNil(t, years)
	assert.Equal(t, "12 years", dom.TextContent(years))

	require.NoError(t, loancalc.Input(h, loancalc.Years, "1"))
	assert.Equal(t, "1 year", dom.TextContent(years))
	assert.Equal(t, []string{
		"Monthly Payments: $837.85",
		"Total Paid: $10,054.25",
		"Interest Paid: $54.25",
	}, outputs(t, target))

	require.NoError(t, loancalc.Input(h, loancalc.LoanAmount, "5000"))
	require.NoError(t, loancalc.Input(h, loancalc.Years, "2"))
	require.NoError(t, loancalc.Input(h, loancalc.InterestRateInput, "1200"))
	assert.Equal(t, []string{
		"Monthly Payments: $235.37",
		"Total Paid: $5,648.82",
		"Interest Paid: $648.82",
	}, outputs(t, target))

	// unparsable input is ignored
	require.NoError(t, loancalc.Input(h, loancalc.LoanAmount, "abc"))
	assert.Equal(t, 5000.0, h.Instance().Get(loancalc.LoanAmount))

	assert.Error(t, loancalc.Input(h, loancalc.TotalPaid, "1"))
}

func TestPropsPatchInputs(t *testing.T) {
	rt := kernel.NewRuntime()
	target := dom.Body()
	h, err := loancalc.Mount(rt, target, nil, false)
	require.NoError(t, err)

	input := dom.Find(target, "input", "u-full-width")
	require.NotNil(t, input)
	assert.Equal(t, "10000", dom.InputValue(input))

	require.NoError(t, h.Set(kernel.Props{"loanAmount": 2500.5, "pageTitle": "Other"}))
	require.NoError(t, rt.Tick())
	assert.Equal(t, "2500.5", dom.InputValue(input))
	assert.Equal(t, "Other", dom.TextContent(dom.Find(target, "h1", "")))
}

func TestPrerenderHydratesWithoutMoves(t *testing.T) {
	server := kernel.NewRuntime()
	var page bytes.Buffer
	props := kernel.Props{"pageTitle": "Mortgage <Calculator>"}
	require.NoError(t, loancalc.Prerender(&page, server, props))
	assert.Contains(t, page.String(), "<!DOCTYPE html>")
	assert.Contains(t, page.String(), "<title>Mortgage &lt;Calculator&gt;</title>")

	head, err := kernel.Instantiate(server, loancalc.Definition(), kernel.Options{Props: props})
	require.NoError(t, err)
	markup := loancalc.Body(loancalc.ViewOf(head.Instance()))

	target := dom.Body()
	require.NoError(t, dom.ParseInto(target, markup))
	adopted := dom.Find(target, "main", "container")

	client := kernel.NewRuntime()
	h, err := loancalc.Mount(client, target, props, true)
	require.NoError(t, err)
	assert.Same(t, adopted, dom.Find(target, "main", "container"))
	assert.Equal(t, 0, client.Hydration().Moves())

	fresh := dom.Body()
	_, err = loancalc.Mount(kernel.NewRuntime(), fresh, props, false)
	require.NoError(t, err)

	hydrated, err := dom.Render(target)
	require.NoError(t, err)
	created, err := dom.Render(fresh)
	require.NoError(t, err)
	assert.Equal(t, created, hydrated)

	// adopted inputs are live
	require.NoError(t, loancalc.Input(h, loancalc.Years, "1"))
	assert.Equal(t, "1 year", dom.TextContent(dom.Find(target, "div", "columns six outputs")))
}

func TestHydrateRepairsStaleMarkup(t *testing.T) {
	server := kernel.NewRuntime()
	stale, err := kernel.Instantiate(server, loancalc.Definition(), kernel.Options{
		Props: kernel.Props{"years": 30},
	})
	require.NoError(t, err)

	target := dom.Body()
	require.NoError(t, dom.ParseInto(target, loancalc.Body(loancalc.ViewOf(stale.Instance()))+`<footer>extra</footer>`))

	_, err = loancalc.Mount(kernel.NewRuntime(), target, nil, true)
	require.NoError(t, err)

	assert.Nil(t, dom.Find(target, "footer", ""))
	assert.Equal(t, "12 years", dom.TextContent(dom.Find(target, "div", "columns six outputs")))
	assert.Equal(t, "Monthly Payments: $73.72", outputs(t, target)[0])
}

func TestDestroyDetachesAndUnlistens(t *testing.T) {
	rt := kernel.NewRuntime()
	target := dom.Body()
	h, err := loancalc.Mount(rt, target, nil, false)
	require.NoError(t, err)

	input := dom.Find(target, "input", "")
	require.NotNil(t, input)
	assert.Equal(t, 1, rt.Events().Count(input))

	h.Destroy()
	assert.Nil(t, target.FirstChild)
	assert.Equal(t, 0, rt.Events().Count(input))
	assert.Error(t, loancalc.Input(h, loancalc.Years, "3"))
}

func TestInputName(t *testing.T) {
	slot, ok := loancalc.InputName("rate")
	assert.True(t, ok)
	assert.Equal(t, loancalc.InterestRateInput, slot)
	_, ok = loancalc.InputName("monthlyPayment")
	assert.False(t, ok)
}
