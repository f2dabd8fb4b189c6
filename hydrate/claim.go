package hydrate

import (
	"strings"

	"github.com/delaneyj/slotparty/dom"
	"golang.org/x/net/html"
)

// Claimer hands out existing nodes from a list of candidates to a fragment
// that is being hydrated. Every node it returns, claimed or freshly created,
// gets the next claim order.
type Claimer struct {
	s         *Session
	nodes     []*dom.Node
	lastIndex int
	claimed   int
}

// Claim starts claiming from nodes. The slice is owned by the Claimer.
func (s *Session) Claim(nodes []*dom.Node) *Claimer {
	return &Claimer{s: s, nodes: nodes}
}

// Children starts claiming the children of parent.
func (c *Claimer) Children(parent *dom.Node) *Claimer {
	return c.s.Claim(dom.Children(parent))
}

// Remaining returns the candidates nobody claimed.
func (c *Claimer) Remaining() []*dom.Node {
	return c.nodes
}

// Detach removes every unclaimed candidate from the tree.
func (c *Claimer) Detach() {
	for _, n := range c.nodes {
		if n.Parent != nil {
			dom.Detach(n)
		}
	}
	c.nodes = nil
}

// process returns the node that replaces the claimed one in the candidate
// list, or nil to drop it.
type process func(node *dom.Node) (replacement *dom.Node)

func (c *Claimer) take(i int, node *dom.Node, fn process) {
	if r := fn(node); r != nil {
		c.nodes[i] = r
	} else {
		c.nodes = append(c.nodes[:i], c.nodes[i+1:]...)
	}
}

func (c *Claimer) claim(match func(*dom.Node) bool, fn process, create func() *dom.Node, keepLastIndex bool) *dom.Node {
	node := func() *dom.Node {
		for i := c.lastIndex; i < len(c.nodes); i++ {
			node := c.nodes[i]
			if !match(node) {
				continue
			}
			c.take(i, node, fn)
			if !keepLastIndex {
				c.lastIndex = i
			}
			return node
		}

		// search backwards from the cursor when nothing matched ahead of it
		for i := min(c.lastIndex, len(c.nodes)) - 1; i >= 0; i-- {
			node := c.nodes[i]
			if !match(node) {
				continue
			}
			before := len(c.nodes)
			c.take(i, node, fn)
			if !keepLastIndex {
				c.lastIndex = i
			} else if len(c.nodes) < before {
				c.lastIndex--
			}
			return node
		}
		return create()
	}()

	c.s.SetClaimOrder(node, c.claimed)
	c.claimed++
	return node
}

// ClaimElement adopts the next element named name, dropping every attribute
// not listed in keep. A new element is created when none matches.
func (c *Claimer) ClaimElement(name string, keep ...string) *dom.Node {
	return c.claim(
		func(n *dom.Node) bool {
			return n.Type == html.ElementNode && n.Data == name
		},
		func(n *dom.Node) *dom.Node {
			attrs := n.Attr[:0]
			for _, a := range n.Attr {
				for _, k := range keep {
					if a.Key == k {
						attrs = append(attrs, a)
						break
					}
				}
			}
			n.Attr = attrs
			return nil
		},
		func() *dom.Node { return dom.Element(name) },
		false,
	)
}

// ClaimText adopts the next text node. When the candidate holds more text
// than data, as happens when the parser merged adjacent text nodes, it is
// split and the remainder stays claimable.
func (c *Claimer) ClaimText(data string) *dom.Node {
	return c.claim(
		func(n *dom.Node) bool {
			return n.Type == html.TextNode
		},
		func(n *dom.Node) *dom.Node {
			if strings.HasPrefix(n.Data, data) && len(n.Data) != len(data) {
				return splitText(n, len(data))
			}
			n.Data = data
			return nil
		},
		func() *dom.Node { return dom.Text(data) },
		true,
	)
}

func (c *Claimer) ClaimSpace() *dom.Node {
	return c.ClaimText(" ")
}

func splitText(n *dom.Node, at int) *dom.Node {
	rest := dom.Text(n.Data[at:])
	n.Data = n.Data[:at]
	if n.Parent != nil {
		if n.NextSibling != nil {
			n.Parent.InsertBefore(rest, n.NextSibling)
		} else {
			n.Parent.AppendChild(rest)
		}
	}
	return rest
}
