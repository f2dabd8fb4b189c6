// Package kernel is the component runtime: a scheduler that coalesces slot
// invalidations into one deferred flush, the component instance container
// and its lifecycle, and the fragment contract generated code implements.
package kernel

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/slotparty/dom"
	"github.com/delaneyj/slotparty/hydrate"
	"github.com/sirupsen/logrus"
)

// OnErrorFunc receives the error of a deferred flush.
type OnErrorFunc func(err error)

// Runtime owns every queue a flush drains. It is not safe for concurrent
// use; independent runtimes may live on different goroutines.
type Runtime struct {
	log     logrus.FieldLogger
	onError OnErrorFunc
	deferFn func(task func())

	microtasks []func()
	ticking    bool
	batchDepth int

	dirty      []*Instance
	bindings   []func()
	renders    []*callback
	flushes    []func()
	seen       mapset.Set[*callback]
	scheduled  bool
	flushing   bool
	flushCount int
	taskErr    error

	current *Instance
	nextID  int

	session *hydrate.Session
	events  *dom.Events

	outros   *outroGroup
	outroing mapset.Set[Fragment]
}

type Option func(rt *Runtime)

func WithLogger(log logrus.FieldLogger) Option {
	return func(rt *Runtime) {
		rt.log = log
	}
}

// WithOnError receives errors of flushes that ran from the microtask queue,
// where no caller is waiting for them.
func WithOnError(fn OnErrorFunc) Option {
	return func(rt *Runtime) {
		rt.onError = fn
	}
}

// WithDeferrer replaces the internal microtask queue. fn must run task after
// the current synchronous unit of work completes, on the runtime's goroutine.
func WithDeferrer(fn func(task func())) Option {
	return func(rt *Runtime) {
		rt.deferFn = fn
	}
}

func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{
		seen:     mapset.NewThreadUnsafeSet[*callback](),
		events:   dom.NewEvents(),
		outroing: mapset.NewThreadUnsafeSet[Fragment](),
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		rt.log = l
	}
	rt.session = hydrate.NewSession(rt.log)
	return rt
}

func (rt *Runtime) Hydration() *hydrate.Session {
	return rt.session
}

func (rt *Runtime) Events() *dom.Events {
	return rt.events
}

// Current is the instance being constructed or updated, if any.
func (rt *Runtime) Current() *Instance {
	return rt.current
}

// Flushes counts Flush runs, failed ones included.
func (rt *Runtime) Flushes() int {
	return rt.flushCount
}

func (rt *Runtime) queueMicrotask(task func()) {
	if rt.deferFn != nil {
		rt.deferFn(task)
		return
	}
	rt.microtasks = append(rt.microtasks, task)
}

// Pending reports how many microtasks wait for the next Tick.
func (rt *Runtime) Pending() int {
	return len(rt.microtasks)
}

// Tick ends the current synchronous unit: it drains the microtask queue,
// including tasks queued while draining. It stops at the first failing task
// and returns its error; anything still queued runs on the next Tick.
func (rt *Runtime) Tick() error {
	if rt.ticking || rt.flushing {
		return nil
	}
	rt.ticking = true
	defer func() {
		rt.ticking = false
	}()

	for len(rt.microtasks) > 0 {
		task := rt.microtasks[0]
		rt.microtasks[0] = nil
		rt.microtasks = rt.microtasks[1:]

		if err := guardFunc("microtask", task); err != nil {
			return err
		}
		if err := rt.takeTaskErr(); err != nil {
			return err
		}
	}
	return nil
}

// Do runs fn as one synchronous unit and then ticks, unless a batch is open.
func (rt *Runtime) Do(fn func()) error {
	fn()
	if rt.batchDepth > 0 {
		return nil
	}
	return rt.Tick()
}

func (rt *Runtime) StartBatch() {
	rt.batchDepth++
}

func (rt *Runtime) EndBatch() error {
	rt.batchDepth--
	if rt.batchDepth == 0 {
		return rt.Tick()
	}
	return nil
}

// Batch holds back ticking until cb and every nested batch returned.
func (rt *Runtime) Batch(cb func()) error {
	rt.StartBatch()
	cb()
	return rt.EndBatch()
}
