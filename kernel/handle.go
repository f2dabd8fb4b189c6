package kernel

import (
	"slices"
	"sort"
)

// Handle is what the application holds for a component.
type Handle struct {
	in *Instance
}

func (h *Handle) Instance() *Instance {
	return h.in
}

// Set writes public properties. Names without a slot are ignored. Two-way
// binding callbacks are not invoked for values coming in this way.
func (h *Handle) Set(props Props) error {
	in := h.in
	if in.destroyed {
		return ErrDestroyed
	}
	if len(props) == 0 || len(in.def.PropSlots) == 0 {
		return nil
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	in.skipBound = true
	defer func() {
		in.skipBound = false
	}()
	for _, name := range names {
		if slot, ok := in.def.PropSlots[name]; ok {
			in.Invalidate(slot, props[name])
		}
	}
	return nil
}

// On subscribes fn to a component event and returns the unsubscribe function.
func (h *Handle) On(event string, fn func(detail any)) (unsubscribe func()) {
	in := h.in
	cb := &eventCallback{fn: fn}
	in.events[event] = append(in.events[event], cb)
	return func() {
		list := in.events[event]
		if i := slices.Index(list, cb); i != -1 {
			in.events[event] = slices.Delete(list, i, i+1)
		}
	}
}

// Destroy detaches and destroys the component. Later calls do nothing.
func (h *Handle) Destroy() {
	h.in.Destroy(true)
}

// Bind registers a two-way binding on a public property of child: fn is
// called now with the current value and again whenever the child changes it.
func Bind(child *Handle, name string, fn func(value any)) bool {
	in := child.in
	slot, ok := in.def.PropSlots[name]
	if !ok || in.destroyed {
		return false
	}
	in.bound[slot] = fn
	fn(in.Get(slot))
	return true
}
