package hydrate

import (
	"github.com/delaneyj/slotparty/dom"
	"github.com/sirupsen/logrus"
)

type target struct {
	reconciled bool
	endKnown   bool
	end        *dom.Node
}

// Session holds the hydration state of one runtime: whether mounting is
// currently adopting markup, the claim order of every claimed node, and the
// per-container cursor used while appending.
type Session struct {
	log       logrus.FieldLogger
	hydrating bool
	orders    map[*dom.Node]int
	targets   map[*dom.Node]*target
	moves     int
}

func NewSession(log logrus.FieldLogger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Session{
		log:     log,
		orders:  map[*dom.Node]int{},
		targets: map[*dom.Node]*target{},
	}
}

func (s *Session) Start() {
	s.hydrating = true
}

func (s *Session) End() {
	s.hydrating = false
}

func (s *Session) Hydrating() bool {
	return s.hydrating
}

// Moves is the total number of nodes Reconcile relocated in this session.
func (s *Session) Moves() int {
	return s.moves
}

func (s *Session) SetClaimOrder(node *dom.Node, order int) {
	s.orders[node] = order
}

// ClaimOrder returns the order assigned to node. Nodes that were never
// claimed report ok == false.
func (s *Session) ClaimOrder(node *dom.Node) (order int, ok bool) {
	order, ok = s.orders[node]
	return order, ok
}

func (s *Session) order(node *dom.Node) int {
	return s.orders[node]
}

func (s *Session) target(node *dom.Node) *target {
	t, ok := s.targets[node]
	if !ok {
		t = &target{}
		s.targets[node] = t
	}
	return t
}

// reconcile runs once per container, the first time something is appended
// to it while hydrating.
func (s *Session) reconcile(parent *dom.Node, t *target) {
	if t.reconciled {
		return
	}
	t.reconciled = true
	moved := Reconcile(parent, s.order)
	s.moves += moved
	if moved > 0 {
		s.log.WithFields(logrus.Fields{
			"target": parent.Data,
			"moves":  moved,
		}).Debug("reordered claimed children")
	}
}

// Append places node at the logical end of target. While hydrating the
// target's claimed children are reordered first and a cursor walks them, so
// nodes already in position are left untouched. Children without a claim
// order are stepped over and never moved.
func (s *Session) Append(parent, node *dom.Node) {
	if !s.hydrating {
		if node.Parent != parent || node.NextSibling != nil {
			dom.Append(parent, node)
		}
		return
	}

	t := s.target(parent)
	s.reconcile(parent, t)

	if !t.endKnown || (t.end != nil && t.end.Parent != parent) {
		t.endKnown = true
		t.end = parent.FirstChild
	}
	for t.end != nil {
		if _, ok := s.orders[t.end]; ok {
			break
		}
		t.end = t.end.NextSibling
	}

	if node == t.end {
		t.end = node.NextSibling
		return
	}
	if _, ok := s.orders[node]; ok || node.Parent != parent {
		dom.Insert(parent, node, t.end)
	}
}

// Insert places node before anchor, or at the logical end when anchor is nil.
func (s *Session) Insert(parent, node, anchor *dom.Node) {
	if s.hydrating && anchor == nil {
		s.Append(parent, node)
		return
	}
	if node.Parent != parent || (anchor != nil && node.NextSibling != anchor) {
		dom.Insert(parent, node, anchor)
	}
}
