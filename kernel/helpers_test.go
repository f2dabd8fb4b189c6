package kernel_test

import (
	"github.com/delaneyj/slotparty/dirty"
	"github.com/delaneyj/slotparty/dom"
	"github.com/delaneyj/slotparty/kernel"
	"github.com/sirupsen/logrus"
)

// recorder records what the runtime asked a fragment to do.
type recorder struct {
	created   int
	mounted   int
	destroyed int
	detached  bool
	intros    int
	patches   []dirty.Mask
	patchErr  error
	onPatch   func(in *kernel.Instance)
	in        *kernel.Instance
}

func (p *recorder) definition(slots int) kernel.Definition {
	return kernel.Definition{
		Setup: func(in *kernel.Instance, props kernel.Props, invalidate kernel.Invalidator) []any {
			p.in = in
			return make([]any, slots)
		},
		Fragment: func(in *kernel.Instance) kernel.Fragment {
			return &kernel.Block{
				C: func() error {
					p.created++
					return nil
				},
				M: func(target, anchor *dom.Node) error {
					p.mounted++
					return nil
				},
				P: func(changed dirty.Mask) error {
					p.patches = append(p.patches, changed)
					if p.onPatch != nil {
						p.onPatch(in)
					}
					return p.patchErr
				},
				I: func(local bool) {
					p.intros++
				},
				D: func(detaching bool) {
					p.destroyed++
					p.detached = detaching
				},
			}
		},
	}
}

func newRuntime() *kernel.Runtime {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)
	return kernel.NewRuntime(kernel.WithLogger(log))
}

func mount(rt *kernel.Runtime, def kernel.Definition) (*kernel.Handle, error) {
	return kernel.Instantiate(rt, def, kernel.Options{Target: dom.Body()})
}
