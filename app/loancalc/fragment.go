package loancalc

import (
	"strconv"

	"github.com/delaneyj/slotparty/dirty"
	"github.com/delaneyj/slotparty/dom"
	"github.com/delaneyj/slotparty/hydrate"
	"github.com/delaneyj/slotparty/kernel"
)

// field is a labelled input: <div><label>caption</label> <input></div>.
type field struct {
	box, label, caption, gap, input *dom.Node
}

func newField(caption string) field {
	return field{
		box:     dom.Element("div"),
		label:   dom.Element("label"),
		caption: dom.Text(caption),
		gap:     dom.Space(),
		input:   dom.Element("input"),
	}
}

func claimField(c *hydrate.Claimer, caption string) field {
	f := field{box: c.ClaimElement("div")}
	box := c.Children(f.box)
	f.label = box.ClaimElement("label")
	label := box.Children(f.label)
	f.caption = label.ClaimText(caption)
	label.Detach()
	f.gap = box.ClaimSpace()
	f.input = box.ClaimElement("input")
	box.Detach()
	return f
}

func (f field) edges() [][2]*dom.Node {
	return [][2]*dom.Node{
		{f.box, f.label},
		{f.label, f.caption},
		{f.box, f.gap},
		{f.box, f.input},
	}
}

// readout is a row or column of text nodes.
type readout struct {
	box  *dom.Node
	text []*dom.Node
}

func newReadout(text ...string) readout {
	r := readout{box: dom.Element("div")}
	for _, t := range text {
		r.text = append(r.text, dom.Text(t))
	}
	return r
}

func claimReadout(c *hydrate.Claimer, text ...string) readout {
	r := readout{box: c.ClaimElement("div")}
	box := c.Children(r.box)
	for _, t := range text {
		r.text = append(r.text, box.ClaimText(t))
	}
	box.Detach()
	return r
}

func (r readout) edges() [][2]*dom.Node {
	edges := make([][2]*dom.Node, len(r.text))
	for i, t := range r.text {
		edges[i] = [2]*dom.Node{r.box, t}
	}
	return edges
}

type fragment struct {
	in      *kernel.Instance
	session *hydrate.Session
	events  *dom.Events

	lead      *dom.Node
	main      *dom.Node
	titleRow  *dom.Node
	heading   *dom.Node
	titleText *dom.Node
	gaps      [6]*dom.Node

	amount   field
	yearsRow *dom.Node
	years    field
	yearsGap *dom.Node
	yearsOut readout
	rateRow  *dom.Node
	rate     field
	rateGap  *dom.Node
	rateOut  readout
	monthly  readout
	total    readout
	interest readout

	mounted bool
	dispose []func()
}

var _ kernel.Fragment = (*fragment)(nil)

func newFragment(in *kernel.Instance) kernel.Fragment {
	return &fragment{
		in:      in,
		session: in.Runtime().Hydration(),
		events:  in.Runtime().Events(),
	}
}

// text values shown for the current store, in document order per readout
func (f *fragment) yearsText() []string {
	years := kernel.Slot[int](f.in, Years)
	return []string{strconv.Itoa(years), " year", plural(years)}
}

func (f *fragment) rateText() []string {
	return []string{formatRate(kernel.Slot[float64](f.in, InterestRate)), "\u00a0%"}
}

func (f *fragment) amountText(label string, slot int) []string {
	return []string{label, FormatAmount(kernel.Slot[float64](f.in, slot))}
}

func (f *fragment) Create() error {
	f.lead = dom.Space()
	f.main = dom.Element("main")
	f.titleRow = dom.Element("div")
	f.heading = dom.Element("h1")
	f.titleText = dom.Text(kernel.Slot[string](f.in, PageTitle))
	for i := range f.gaps {
		f.gaps[i] = dom.Space()
	}
	f.amount = newField("Loan Amount")
	f.yearsRow = dom.Element("div")
	f.years = newField("Years")
	f.yearsGap = dom.Space()
	f.yearsOut = newReadout(f.yearsText()...)
	f.rateRow = dom.Element("div")
	f.rate = newField("Interest Rate")
	f.rateGap = dom.Space()
	f.rateOut = newReadout(f.rateText()...)
	f.monthly = newReadout(f.amountText("Monthly Payments: ", MonthlyPayment)...)
	f.total = newReadout(f.amountText("Total Paid: ", TotalPaid)...)
	f.interest = newReadout(f.amountText("Interest Paid: ", InterestPaid)...)
	f.attrs()
	return nil
}

func (f *fragment) Claim(c *hydrate.Claimer) error {
	f.lead = c.ClaimSpace()
	f.main = c.ClaimElement("main")
	main := c.Children(f.main)

	f.titleRow = main.ClaimElement("div")
	row := main.Children(f.titleRow)
	f.heading = row.ClaimElement("h1")
	heading := row.Children(f.heading)
	f.titleText = heading.ClaimText(kernel.Slot[string](f.in, PageTitle))
	heading.Detach()
	row.Detach()

	f.gaps[0] = main.ClaimSpace()
	f.amount = claimField(main, "Loan Amount")
	f.gaps[1] = main.ClaimSpace()

	f.yearsRow = main.ClaimElement("div")
	row = main.Children(f.yearsRow)
	f.years = claimField(row, "Years")
	f.yearsGap = row.ClaimSpace()
	f.yearsOut = claimReadout(row, f.yearsText()...)
	row.Detach()
	f.gaps[2] = main.ClaimSpace()

	f.rateRow = main.ClaimElement("div")
	row = main.Children(f.rateRow)
	f.rate = claimField(row, "Interest Rate")
	f.rateGap = row.ClaimSpace()
	f.rateOut = claimReadout(row, f.rateText()...)
	row.Detach()
	f.gaps[3] = main.ClaimSpace()

	f.monthly = claimReadout(main, f.amountText("Monthly Payments: ", MonthlyPayment)...)
	f.gaps[4] = main.ClaimSpace()
	f.total = claimReadout(main, f.amountText("Total Paid: ", TotalPaid)...)
	f.gaps[5] = main.ClaimSpace()
	f.interest = claimReadout(main, f.amountText("Interest Paid: ", InterestPaid)...)
	main.Detach()

	f.attrs()
	return nil
}

// attrs sets the static attributes, on fresh and claimed nodes alike.
func (f *fragment) attrs() {
	const outputs = "row outputs"
	dom.SetAttr(f.heading, "class", "title")
	dom.SetAttr(f.titleRow, "class", "row")
	dom.SetAttr(f.amount.label, "for", "")
	setAttrs(f.amount.input,
		"type", "number",
		"min", "1",
		"class", "u-full-width",
		"placeholder", "Enter loan amount",
	)
	dom.SetAttr(f.amount.box, "class", "row")
	dom.SetAttr(f.years.label, "for", "")
	setAttrs(f.years.input,
		"type", "range",
		"min", "1",
		"max", "50",
		"class", "u-full-width",
	)
	dom.SetAttr(f.years.box, "class", "columns six")
	dom.SetAttr(f.yearsOut.box, "class", "columns six outputs")
	dom.SetAttr(f.yearsRow, "class", "row")
	dom.SetAttr(f.rate.label, "for", "")
	setAttrs(f.rate.input,
		"type", "range",
		"min", "0",
		"max", "2000",
		"step", "10",
		"class", "u-full-width",
	)
	dom.SetAttr(f.rate.box, "class", "columns six")
	dom.SetAttr(f.rateOut.box, "class", "columns six outputs")
	dom.SetAttr(f.rateRow, "class", "row")
	dom.SetAttr(f.monthly.box, "class", outputs)
	dom.SetAttr(f.total.box, "class", outputs)
	dom.SetAttr(f.interest.box, "class", outputs)
	dom.SetAttr(f.main, "class", "container")
}

func setAttrs(node *dom.Node, kv ...string) {
	for i := 0; i+1 < len(kv); i += 2 {
		dom.SetAttr(node, kv[i], kv[i+1])
	}
}

// edges lists every parent/child link below main in document order.
func (f *fragment) edges() [][2]*dom.Node {
	edges := [][2]*dom.Node{
		{f.main, f.titleRow},
		{f.titleRow, f.heading},
		{f.heading, f.titleText},
		{f.main, f.gaps[0]},
		{f.main, f.amount.box},
	}
	edges = append(edges, f.amount.edges()...)
	edges = append(edges,
		[2]*dom.Node{f.main, f.gaps[1]},
		[2]*dom.Node{f.main, f.yearsRow},
		[2]*dom.Node{f.yearsRow, f.years.box},
	)
	edges = append(edges, f.years.edges()...)
	edges = append(edges,
		[2]*dom.Node{f.yearsRow, f.yearsGap},
		[2]*dom.Node{f.yearsRow, f.yearsOut.box},
	)
	edges = append(edges, f.yearsOut.edges()...)
	edges = append(edges,
		[2]*dom.Node{f.main, f.gaps[2]},
		[2]*dom.Node{f.main, f.rateRow},
		[2]*dom.Node{f.rateRow, f.rate.box},
	)
	edges = append(edges, f.rate.edges()...)
	edges = append(edges,
		[2]*dom.Node{f.rateRow, f.rateGap},
		[2]*dom.Node{f.rateRow, f.rateOut.box},
	)
	edges = append(edges, f.rateOut.edges()...)
	edges = append(edges,
		[2]*dom.Node{f.main, f.gaps[3]},
		[2]*dom.Node{f.main, f.monthly.box},
	)
	edges = append(edges, f.monthly.edges()...)
	edges = append(edges,
		[2]*dom.Node{f.main, f.gaps[4]},
		[2]*dom.Node{f.main, f.total.box},
	)
	edges = append(edges, f.total.edges()...)
	edges = append(edges,
		[2]*dom.Node{f.main, f.gaps[5]},
		[2]*dom.Node{f.main, f.interest.box},
	)
	return append(edges, f.interest.edges()...)
}

func (f *fragment) Mount(target, anchor *dom.Node) error {
	f.session.Insert(target, f.lead, anchor)
	f.session.Insert(target, f.main, anchor)
	for _, e := range f.edges() {
		f.session.Append(e[0], e[1])
	}
	dom.SetInputValue(f.amount.input, formatNumber(kernel.Slot[float64](f.in, LoanAmount)))
	dom.SetInputValue(f.years.input, strconv.Itoa(kernel.Slot[int](f.in, Years)))
	dom.SetInputValue(f.rate.input, strconv.Itoa(kernel.Slot[int](f.in, InterestRateInput)))

	if !f.mounted {
		amount := kernel.Slot[dom.Listener](f.in, amountHandler)
		years := kernel.Slot[dom.Listener](f.in, yearsHandler)
		rate := kernel.Slot[dom.Listener](f.in, rateHandler)
		f.dispose = []func(){
			f.events.Listen(f.amount.input, "input", amount),
			f.events.Listen(f.years.input, "change", years),
			f.events.Listen(f.years.input, "input", years),
			f.events.Listen(f.rate.input, "change", rate),
			f.events.Listen(f.rate.input, "input", rate),
		}
		f.mounted = true
	}
	return nil
}

func (f *fragment) Patch(changed dirty.Mask) error {
	in := f.in
	if changed.Has(PageTitle) {
		dom.SetData(f.titleText, kernel.Slot[string](in, PageTitle))
	}
	if changed.Has(LoanAmount) {
		amount := kernel.Slot[float64](in, LoanAmount)
		// leave the input alone while it already holds this number
		if v, err := strconv.ParseFloat(dom.InputValue(f.amount.input), 64); err != nil || v != amount {
			dom.SetInputValue(f.amount.input, formatNumber(amount))
		}
	}
	if changed.Has(Years) {
		dom.SetInputValue(f.years.input, strconv.Itoa(kernel.Slot[int](in, Years)))
		setTexts(f.yearsOut, f.yearsText())
	}
	if changed.Has(InterestRateInput) {
		dom.SetInputValue(f.rate.input, strconv.Itoa(kernel.Slot[int](in, InterestRateInput)))
	}
	if changed.Has(InterestRate) {
		setTexts(f.rateOut, f.rateText())
	}
	if changed.Has(MonthlyPayment) {
		setTexts(f.monthly, f.amountText("Monthly Payments: ", MonthlyPayment))
	}
	if changed.Has(TotalPaid) {
		setTexts(f.total, f.amountText("Total Paid: ", TotalPaid))
	}
	if changed.Has(InterestPaid) {
		setTexts(f.interest, f.amountText("Interest Paid: ", InterestPaid))
	}
	return nil
}

func setTexts(r readout, text []string) {
	for i, t := range text {
		dom.SetData(r.text[i], t)
	}
}

func (f *fragment) Intro(local bool) {}

func (f *fragment) Outro(local bool) {}

func (f *fragment) Destroy(detaching bool) {
	if detaching && f.mounted {
		dom.Detach(f.lead)
		dom.Detach(f.main)
	}
	f.mounted = false
	for _, fn := range f.dispose {
		fn()
	}
	f.dispose = nil
}
