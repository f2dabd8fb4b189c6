package kernel

import (
	"fmt"
	"maps"
	"slices"

	"github.com/delaneyj/slotparty/dirty"
	"github.com/delaneyj/slotparty/dom"
	"github.com/delaneyj/slotparty/hydrate"
)

// Invalidator stores value (or ret when no value is given) in a slot and
// marks it dirty when it changed. It returns ret so generated code can wrap
// assignments in it.
type Invalidator func(slot int, ret any, value ...any) any

type Props map[string]any

// Definition is what code generation produces for one component.
type Definition struct {
	// Setup builds the slot store. It may register hooks on in and keep
	// invalidate for event handlers.
	Setup func(in *Instance, props Props, invalidate Invalidator) []any
	// Update recomputes derived slots from in.Dirty().
	Update func(in *Instance) error
	// Fragment builds the instance's fragment. Nil means headless.
	Fragment func(in *Instance) Fragment
	// Changed reports whether a slot write is a change. Defaults to SafeNotEqual.
	Changed ChangeFunc
	// PropSlots maps public property names to slot indices.
	PropSlots map[string]int
}

type Options struct {
	Props  Props
	Target *dom.Node
	Anchor *dom.Node
	// Hydrate adopts the existing children of Target. Every child must end up
	// with a unique claim order.
	Hydrate bool
	Intro   bool
	// Context seeds the context of a root instance. Nested instances copy
	// their parent's context instead.
	Context map[Key]any
	// InitialDirty is what Update sees during construction. Defaults to
	// every slot.
	InitialDirty *dirty.Mask
}

type eventCallback struct {
	fn func(detail any)
}

type Instance struct {
	rt  *Runtime
	id  int
	def Definition

	store    []any
	mask     dirty.Mask
	fragment Fragment
	context  map[Key]any
	bound    map[int]func(value any)
	events   map[string][]*eventCallback

	onMount      []func() func()
	onDestroy    []func()
	beforeUpdate []func()
	afterUpdate  []*callback

	ready     bool
	built     bool
	created   bool
	skipBound bool
	destroyed bool
}

// Instantiate builds a component instance. With a Target the fragment is
// created (or claimed when hydrating), mounted and flushed before returning.
func Instantiate(rt *Runtime, def Definition, opts Options) (*Handle, error) {
	parent := rt.current
	rt.nextID++
	in := &Instance{
		rt:     rt,
		id:     rt.nextID,
		def:    def,
		mask:   dirty.All(),
		bound:  map[int]func(any){},
		events: map[string][]*eventCallback{},
	}
	if opts.InitialDirty != nil {
		in.mask = *opts.InitialDirty
	}
	if parent != nil {
		in.context = maps.Clone(parent.context)
	} else {
		in.context = maps.Clone(opts.Context)
	}
	if in.context == nil {
		in.context = map[Key]any{}
	}
	if in.def.Changed == nil {
		in.def.Changed = SafeNotEqual
	}

	rt.current = in
	defer func() {
		rt.current = parent
	}()

	h := &Handle{in: in}
	op := fmt.Sprintf("construct component %d", in.id)
	if def.Setup != nil {
		if err := guardFunc(op, func() {
			in.store = def.Setup(in, opts.Props, in.Invalidate)
		}); err != nil {
			return nil, err
		}
	}
	if in.store == nil {
		in.store = []any{}
	}
	if def.Update != nil {
		if err := guard(op, func() error { return def.Update(in) }); err != nil {
			return nil, err
		}
	}
	in.mask = dirty.New(len(in.store))
	in.ready = true

	for _, fn := range in.beforeUpdate {
		if err := guardFunc(op, fn); err != nil {
			return nil, err
		}
	}
	if def.Fragment != nil {
		if err := guardFunc(op, func() {
			in.fragment = def.Fragment(in)
		}); err != nil {
			return nil, err
		}
	}
	in.built = true

	if opts.Target == nil {
		return h, nil
	}

	if err := in.render(opts); err != nil {
		return h, err
	}
	return h, rt.Flush()
}

func (in *Instance) render(opts Options) error {
	session := in.rt.session
	if opts.Hydrate {
		session.Start()
		defer session.End()

		claimer := session.Claim(dom.Children(opts.Target))
		if err := in.Claim(claimer); err != nil {
			return err
		}
		claimer.Detach()
	} else if err := in.Create(); err != nil {
		return err
	}

	if opts.Intro {
		in.rt.TransitionIn(in.fragment, false)
	}
	return in.Mount(opts.Target, opts.Anchor)
}

// Create builds the fragment's nodes. Parents call it for nested instances.
func (in *Instance) Create() error {
	if in.fragment == nil {
		return nil
	}
	if err := guard(fmt.Sprintf("create component %d", in.id), in.fragment.Create); err != nil {
		return err
	}
	in.created = true
	return nil
}

// Claim adopts existing nodes for the fragment.
func (in *Instance) Claim(c *hydrate.Claimer) error {
	if in.fragment == nil {
		return nil
	}
	err := guard(fmt.Sprintf("claim component %d", in.id), func() error {
		return in.fragment.Claim(c)
	})
	if err != nil {
		return err
	}
	in.created = true
	return nil
}

// Mount inserts the fragment and defers the on-mount hooks to the next
// render callback pass, so they observe a patched fragment.
func (in *Instance) Mount(target, anchor *dom.Node) error {
	if in.fragment != nil {
		op := fmt.Sprintf("mount component %d", in.id)
		if err := guard(op, func() error { return in.fragment.Mount(target, anchor) }); err != nil {
			return err
		}
	}

	in.rt.AddRenderCallback(func() {
		var cleanups []func()
		for _, fn := range in.onMount {
			if cleanup := fn(); cleanup != nil {
				cleanups = append(cleanups, cleanup)
			}
		}
		in.onMount = nil
		if in.destroyed {
			// destroyed before it settled, nothing will call these later
			for _, cleanup := range cleanups {
				cleanup()
			}
			return
		}
		in.onDestroy = append(in.onDestroy, cleanups...)
	})
	for _, cb := range in.afterUpdate {
		in.rt.addRender(cb)
	}
	return nil
}

// Invalidate is the Invalidator bound to this instance.
func (in *Instance) Invalidate(slot int, ret any, value ...any) any {
	if in.destroyed || in.store == nil {
		return ret
	}
	if slot < 0 || slot >= len(in.store) {
		panic(fmt.Sprintf("kernel: component %d has no slot %d", in.id, slot))
	}

	v := ret
	if len(value) > 0 {
		v = value[0]
	}
	old := in.store[slot]
	in.store[slot] = v
	if !in.def.Changed(old, v) {
		return ret
	}
	if !in.skipBound {
		if fn, ok := in.bound[slot]; ok {
			fn(v)
		}
	}
	if in.ready {
		in.MarkDirty(slot)
	}
	return ret
}

// MarkDirty flags slot as changed, queueing the instance on the first mark
// since the last flush.
func (in *Instance) MarkDirty(slot int) {
	if in.mask.Mark(slot) {
		in.rt.enqueue(in)
	}
}

// Destroy runs on-destroy hooks and tears down the fragment. Only the first
// call has an effect.
func (in *Instance) Destroy(detaching bool) {
	if in.destroyed {
		return
	}
	in.destroyed = true

	for _, fn := range in.onDestroy {
		fn()
	}
	if in.fragment != nil {
		in.fragment.Destroy(detaching)
	}
	in.onDestroy = nil
	in.fragment = nil
	in.store = nil
	clear(in.bound)
	clear(in.events)

	// the running flush indexes renders, so queued callbacks are only marked
	for _, cb := range in.afterUpdate {
		cb.dropped = true
	}
	if !in.rt.flushing {
		in.rt.renders = slices.DeleteFunc(in.rt.renders, func(cb *callback) bool {
			return cb.dropped
		})
	}
	in.afterUpdate = nil
}

func (in *Instance) Runtime() *Runtime {
	return in.rt
}

func (in *Instance) ID() int {
	return in.id
}

func (in *Instance) Destroyed() bool {
	return in.destroyed
}

func (in *Instance) Fragment() Fragment {
	return in.fragment
}

// Dirty is the mask being accumulated. During construction it reports every
// slot as changed.
func (in *Instance) Dirty() dirty.Mask {
	return in.mask
}

func (in *Instance) Get(slot int) any {
	if slot < 0 || slot >= len(in.store) {
		return nil
	}
	return in.store[slot]
}

// Store returns a copy of the slot values.
func (in *Instance) Store() []any {
	return slices.Clone(in.store)
}

// Slot reads a slot as T, returning the zero value on a type mismatch.
func Slot[T any](in *Instance, slot int) T {
	v, _ := in.Get(slot).(T)
	return v
}

// OnMount registers fn to run once the instance is mounted and patched. A
// returned function runs when the instance is destroyed.
func (in *Instance) OnMount(fn func() func()) {
	in.onMount = append(in.onMount, fn)
}

func (in *Instance) OnDestroy(fn func()) {
	in.onDestroy = append(in.onDestroy, fn)
}

func (in *Instance) BeforeUpdate(fn func()) {
	in.beforeUpdate = append(in.beforeUpdate, fn)
}

func (in *Instance) AfterUpdate(fn func()) {
	in.afterUpdate = append(in.afterUpdate, &callback{fn: fn})
}

// Dispatch calls the listeners subscribed to event through Handle.On.
func (in *Instance) Dispatch(event string, detail any) bool {
	list := in.events[event]
	if len(list) == 0 {
		return false
	}
	for _, cb := range slices.Clone(list) {
		cb.fn(detail)
	}
	return true
}
