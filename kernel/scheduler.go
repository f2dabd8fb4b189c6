package kernel

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type callback struct {
	fn func()
	// dropped callbacks belong to a destroyed instance
	dropped bool
}

// RequestFlush schedules one deferred Flush. Calls made before that flush
// runs are absorbed by it.
func (rt *Runtime) RequestFlush() {
	if rt.scheduled {
		return
	}
	rt.scheduled = true
	rt.queueMicrotask(func() {
		if err := rt.Flush(); err != nil {
			rt.report(err)
		}
	})
}

func (rt *Runtime) report(err error) {
	rt.log.WithError(err).Error("deferred flush failed")
	if rt.onError != nil {
		rt.onError(err)
	}
	rt.taskErr = err
}

func (rt *Runtime) takeTaskErr() error {
	err := rt.taskErr
	rt.taskErr = nil
	return err
}

// AddRenderCallback runs fn after the components of the current pass are
// patched.
func (rt *Runtime) AddRenderCallback(fn func()) {
	rt.addRender(&callback{fn: fn})
}

func (rt *Runtime) addRender(cb *callback) {
	rt.renders = append(rt.renders, cb)
}

// AddBindingCallback runs fn after the current pass patched its components,
// before render callbacks. Binding callbacks run last in, first out.
func (rt *Runtime) AddBindingCallback(fn func()) {
	rt.bindings = append(rt.bindings, fn)
}

// AddFlushCallback runs fn once the flush converged. Flush callbacks run
// last in, first out.
func (rt *Runtime) AddFlushCallback(fn func()) {
	rt.flushes = append(rt.flushes, fn)
}

func (rt *Runtime) enqueue(in *Instance) {
	rt.dirty = append(rt.dirty, in)
	rt.RequestFlush()
}

// Flush patches every dirty component until nothing is dirty. It does
// nothing when called while a flush is already running; work scheduled
// during a flush is picked up by the running flush.
//
// The first failure aborts the flush and is returned. Components that were
// not processed stay queued and a new flush is requested for them.
func (rt *Runtime) Flush() (err error) {
	if rt.flushing {
		return nil
	}
	rt.flushing = true
	prev := rt.current

	passes, patched := 0, 0
	defer func() {
		rt.current = prev
		rt.seen.Clear()
		rt.scheduled = false
		rt.flushing = false
		rt.flushCount++

		if err != nil {
			if len(rt.dirty) > 0 || len(rt.renders) > 0 || len(rt.bindings) > 0 {
				rt.RequestFlush()
			}
			return
		}
		rt.log.WithFields(logrus.Fields{
			"passes":  passes,
			"patched": patched,
		}).Debug("flushed")
	}()

	for {
		passes++

		// the queue may grow while iterating, those components run in this pass
		for i := 0; i < len(rt.dirty); i++ {
			in := rt.dirty[i]
			requeue, err := rt.update(in)
			if err != nil {
				rest := rt.dirty[i+1:]
				if requeue {
					rest = rt.dirty[i:]
				}
				rt.dirty = append([]*Instance(nil), rest...)
				return err
			}
			patched++
		}
		rt.current = nil
		clear(rt.dirty)
		rt.dirty = rt.dirty[:0]

		for len(rt.bindings) > 0 {
			last := len(rt.bindings) - 1
			fn := rt.bindings[last]
			rt.bindings[last] = nil
			rt.bindings = rt.bindings[:last]
			if err := guardFunc("binding callback", fn); err != nil {
				return err
			}
		}

		for i := 0; i < len(rt.renders); i++ {
			cb := rt.renders[i]
			if cb.dropped || rt.seen.Contains(cb) {
				continue
			}
			rt.seen.Add(cb)
			if err := guardFunc("render callback", cb.fn); err != nil {
				rt.renders = append([]*callback(nil), rt.renders[i+1:]...)
				return err
			}
		}
		clear(rt.renders)
		rt.renders = rt.renders[:0]

		if len(rt.dirty) == 0 {
			break
		}
	}

	for len(rt.flushes) > 0 {
		last := len(rt.flushes) - 1
		fn := rt.flushes[last]
		rt.flushes[last] = nil
		rt.flushes = rt.flushes[:last]
		if err := guardFunc("flush callback", fn); err != nil {
			return err
		}
	}
	return nil
}

// update runs one dirty instance through recompute, before-update hooks and
// patch. requeue reports whether the instance is still marked because the
// failure happened before its mask was consumed.
func (rt *Runtime) update(in *Instance) (requeue bool, err error) {
	if in.destroyed {
		return false, nil
	}
	if !in.built {
		// create or claim will read the current store
		in.mask.Reset()
		return false, nil
	}

	rt.current = in
	op := fmt.Sprintf("update component %d", in.id)
	if in.def.Update != nil {
		if err := guard(op, func() error { return in.def.Update(in) }); err != nil {
			return true, err
		}
	}
	for _, fn := range in.beforeUpdate {
		if err := guardFunc(op, fn); err != nil {
			return true, err
		}
	}

	snapshot := in.mask.Take()
	// headless instances keep their store current without nodes to patch
	if in.fragment != nil && in.created {
		op := fmt.Sprintf("patch component %d", in.id)
		if err := guard(op, func() error { return in.fragment.Patch(snapshot) }); err != nil {
			return false, err
		}
	}
	for _, cb := range in.afterUpdate {
		rt.addRender(cb)
	}
	return false, nil
}
