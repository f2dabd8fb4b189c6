package kernel

import (
	"github.com/delaneyj/slotparty/dirty"
	"github.com/delaneyj/slotparty/dom"
	"github.com/delaneyj/slotparty/hydrate"
)

// Fragment is the renderable unit an instance owns. Generated code supplies
// it; the runtime drives it. Implementations must be comparable, which in
// practice means pointers.
type Fragment interface {
	// Create builds fresh nodes.
	Create() error
	// Claim adopts existing nodes instead of creating them.
	Claim(c *hydrate.Claimer) error
	Mount(target, anchor *dom.Node) error
	// Patch updates the nodes that depend on the changed slots.
	Patch(changed dirty.Mask) error
	Intro(local bool)
	Outro(local bool)
	Destroy(detaching bool)
}

// Block adapts a set of optional functions to Fragment. Missing functions
// are no-ops.
type Block struct {
	C func() error
	L func(c *hydrate.Claimer) error
	M func(target, anchor *dom.Node) error
	P func(changed dirty.Mask) error
	I func(local bool)
	O func(local bool)
	D func(detaching bool)
}

var _ Fragment = (*Block)(nil)

func (b *Block) Create() error {
	if b.C == nil {
		return nil
	}
	return b.C()
}

func (b *Block) Claim(c *hydrate.Claimer) error {
	if b.L == nil {
		return nil
	}
	return b.L(c)
}

func (b *Block) Mount(target, anchor *dom.Node) error {
	if b.M == nil {
		return nil
	}
	return b.M(target, anchor)
}

func (b *Block) Patch(changed dirty.Mask) error {
	if b.P == nil {
		return nil
	}
	return b.P(changed)
}

func (b *Block) Intro(local bool) {
	if b.I != nil {
		b.I(local)
	}
}

func (b *Block) Outro(local bool) {
	if b.O != nil {
		b.O(local)
	}
}

func (b *Block) Destroy(detaching bool) {
	if b.D != nil {
		b.D(detaching)
	}
}
