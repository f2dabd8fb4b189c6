package kernel

// outroGroup collects the completion callbacks of outros started together.
// They run once every held outro released.
type outroGroup struct {
	held      int
	callbacks []func()
	parent    *outroGroup
}

// GroupOutros opens a group. Every TransitionOut until the matching
// CheckOutros belongs to it.
func (rt *Runtime) GroupOutros() {
	rt.outros = &outroGroup{parent: rt.outros}
}

// CheckOutros closes the current group, running its callbacks right away if
// no outro is still held.
func (rt *Runtime) CheckOutros() {
	g := rt.outros
	if g == nil {
		return
	}
	if g.held == 0 {
		runAll(g.callbacks)
		g.callbacks = nil
	}
	rt.outros = g.parent
}

// HoldOutros keeps the current group open for an outro that completes later,
// such as an animation. release must be called exactly once.
func (rt *Runtime) HoldOutros() (release func()) {
	g := rt.outros
	if g == nil {
		return func() {}
	}
	g.held++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		g.held--
		if g.held == 0 {
			runAll(g.callbacks)
			g.callbacks = nil
		}
	}
}

// TransitionIn starts the intro of f, cancelling a pending outro.
func (rt *Runtime) TransitionIn(f Fragment, local bool) {
	if f == nil {
		return
	}
	rt.outroing.Remove(f)
	f.Intro(local)
}

// TransitionOut starts the outro of f. When the group completes, f is
// destroyed if detach is set and then done runs. Outside a group the outro
// completes immediately.
func (rt *Runtime) TransitionOut(f Fragment, local, detach bool, done func()) {
	if f == nil {
		if done != nil {
			done()
		}
		return
	}
	if rt.outroing.Contains(f) {
		return
	}

	own := rt.outros == nil
	if own {
		rt.GroupOutros()
	}
	rt.outroing.Add(f)
	rt.outros.callbacks = append(rt.outros.callbacks, func() {
		rt.outroing.Remove(f)
		if done != nil {
			if detach {
				f.Destroy(true)
			}
			done()
		}
	})
	f.Outro(local)
	if own {
		rt.CheckOutros()
	}
}

// Outroing reports whether f has an outro in progress.
func (rt *Runtime) Outroing(f Fragment) bool {
	return rt.outroing.Contains(f)
}

func runAll(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
