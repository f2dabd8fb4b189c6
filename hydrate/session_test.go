package hydrate_test

import (
	"testing"

	"github.com/delaneyj/slotparty/dom"
	"github.com/delaneyj/slotparty/hydrate"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionAppendReordersOnce(t *testing.T) {
	s := hydrate.NewSession(logrus.New())
	parent := dom.Element("ul")

	// physical order c, a, b with logical order a, b, c
	a, b, c := dom.Element("li"), dom.Element("li"), dom.Element("li")
	for _, n := range []*dom.Node{c, a, b} {
		dom.Append(parent, n)
	}
	s.SetClaimOrder(a, 0)
	s.SetClaimOrder(b, 1)
	s.SetClaimOrder(c, 2)

	s.Start()
	require.True(t, s.Hydrating())
	s.Append(parent, a)
	s.Append(parent, b)
	s.Append(parent, c)
	s.End()

	assert.Equal(t, []*dom.Node{a, b, c}, dom.Children(parent))
	assert.Equal(t, 1, s.Moves())

	// a fresh node appended after hydration ended goes to the end
	d := dom.Element("li")
	s.Append(parent, d)
	assert.Same(t, d, parent.LastChild)
	assert.Equal(t, 1, s.Moves())
}

func TestSessionAppendInsertsCreatedNodes(t *testing.T) {
	s := hydrate.NewSession(nil)
	parent := dom.Element("div")
	existing := dom.Text("kept")
	dom.Append(parent, existing)
	s.SetClaimOrder(existing, 1)

	created := dom.Element("span")
	s.SetClaimOrder(created, 0)

	s.Start()
	s.Append(parent, created)
	s.Append(parent, existing)
	s.End()

	assert.Equal(t, []*dom.Node{created, existing}, dom.Children(parent))
}

func TestSessionAppendMovesChildToEnd(t *testing.T) {
	s := hydrate.NewSession(nil)
	parent := dom.Element("p")
	a, b := dom.Text("a"), dom.Text("b")
	dom.Append(parent, a)
	dom.Append(parent, b)

	s.Append(parent, a)
	assert.Equal(t, "ba", dom.TextContent(parent))

	// already last, nothing to do
	s.Append(parent, a)
	assert.Equal(t, "ba", dom.TextContent(parent))
}

func TestSessionAppendStepsOverUnorderedChildren(t *testing.T) {
	s := hydrate.NewSession(nil)
	parent := dom.Element("div")
	x, a, b := dom.Text("x"), dom.Text("a"), dom.Text("b")
	for _, n := range []*dom.Node{x, a, b} {
		dom.Append(parent, n)
	}
	// x was never claimed
	s.SetClaimOrder(a, 1)
	s.SetClaimOrder(b, 2)

	s.Start()
	s.Append(parent, a)
	s.Append(parent, b)
	s.End()

	assert.Equal(t, []*dom.Node{x, a, b}, dom.Children(parent))
	assert.Zero(t, s.Moves())
}

func TestSessionAppendLeavesUnorderedChildInPlace(t *testing.T) {
	s := hydrate.NewSession(nil)
	parent := dom.Element("div")
	a := dom.Text("a")
	dom.Append(parent, a)
	s.SetClaimOrder(a, 0)

	s.Start()
	s.Append(parent, a)
	y, z := dom.Text("y"), dom.Text("z")
	dom.Append(parent, y)
	dom.Append(parent, z)
	s.Append(parent, y)

	// a node from another container is still inserted
	w := dom.Text("w")
	s.Append(parent, w)
	s.End()

	assert.Equal(t, "ayzw", dom.TextContent(parent))
}

func TestSessionInsertOutsideHydration(t *testing.T) {
	s := hydrate.NewSession(nil)
	parent := dom.Element("div")
	a, b := dom.Text("a"), dom.Text("b")
	s.Insert(parent, b, nil)
	s.Insert(parent, a, b)
	assert.Equal(t, "ab", dom.TextContent(parent))
}

func TestClaimer(t *testing.T) {
	s := hydrate.NewSession(nil)
	body := dom.Body()
	require.NoError(t, dom.ParseInto(body, `<h1 class="x" id="stale">Title</h1>Hello world<p>gone</p>`))

	c := s.Claim(dom.Children(body))
	h1 := c.ClaimElement("h1", "class")
	assert.Equal(t, "h1", h1.Data)
	_, hasID := dom.Attr(h1, "id")
	assert.False(t, hasID)
	_, hasClass := dom.Attr(h1, "class")
	assert.True(t, hasClass)

	title := c.Children(h1).ClaimText("Title")
	assert.Equal(t, "Title", title.Data)

	hello := c.ClaimText("Hello")
	assert.Equal(t, "Hello", hello.Data)
	world := c.ClaimText(" world")
	assert.Equal(t, " world", world.Data)
	assert.Same(t, hello.NextSibling, world)

	// no <section> in the markup so one is created
	section := c.ClaimElement("section")
	assert.Nil(t, section.Parent)

	for i, n := range []*dom.Node{h1, hello, world, section} {
		o, ok := s.ClaimOrder(n)
		require.True(t, ok)
		assert.Equal(t, i, o)
	}

	require.Len(t, c.Remaining(), 1)
	c.Detach()
	assert.Empty(t, c.Remaining())
	assert.Nil(t, dom.Find(body, "p", ""))
}
