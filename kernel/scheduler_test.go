package kernel_test

import (
	"testing"

	"github.com/delaneyj/slotparty/dirty"
	"github.com/delaneyj/slotparty/kernel"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatesInOneStepPatchOnceWithUnion(t *testing.T) {
	rt := newRuntime()
	p := &recorder{}
	_, err := mount(rt, p.definition(40))
	require.NoError(t, err)
	require.Empty(t, p.patches)

	err = rt.Do(func() {
		p.in.Invalidate(0, 1)
		p.in.Invalidate(0, 2)
		p.in.Invalidate(3, "x")
		p.in.Invalidate(35, true)
		// same value, not a change
		p.in.Invalidate(3, "x")
	})
	require.NoError(t, err)

	require.Len(t, p.patches, 1)
	assert.Equal(t, []int{0, 3, 35}, p.patches[0].Slots())
	assert.Equal(t, 2, p.in.Get(0))
	assert.True(t, p.in.Dirty().IsClean())
}

func TestRequestFlushCoalesces(t *testing.T) {
	rt := newRuntime()
	p := &recorder{}
	_, err := mount(rt, p.definition(2))
	require.NoError(t, err)
	before := rt.Flushes()

	p.in.Invalidate(0, 1)
	for i := 0; i < 10; i++ {
		rt.RequestFlush()
	}
	p.in.Invalidate(1, 1)
	assert.Equal(t, 1, rt.Pending())

	require.NoError(t, rt.Tick())
	assert.Equal(t, before+1, rt.Flushes())
	require.Len(t, p.patches, 1)
	assert.Equal(t, []int{0, 1}, p.patches[0].Slots())

	// a new request after the flush schedules a new one
	rt.RequestFlush()
	assert.Equal(t, 1, rt.Pending())
}

func TestConstructionInvalidationsNeverFlush(t *testing.T) {
	rt := newRuntime()
	updates := 0
	def := kernel.Definition{
		Setup: func(in *kernel.Instance, props kernel.Props, invalidate kernel.Invalidator) []any {
			// store does not exist yet, this is dropped
			invalidate(0, 99)
			return []any{1, nil}
		},
		Update: func(in *kernel.Instance) error {
			updates++
			if in.Dirty().Has(0) {
				in.Invalidate(1, kernel.Slot[int](in, 0)*2)
			}
			return nil
		},
	}

	h, err := kernel.Instantiate(rt, def, kernel.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, rt.Pending())
	assert.Equal(t, 0, rt.Flushes())
	assert.Equal(t, 1, updates)
	assert.Equal(t, []any{1, 2}, h.Instance().Store())
}

func TestFlushConvergesAcrossComponents(t *testing.T) {
	rt := newRuntime()
	a, b := &recorder{}, &recorder{}
	_, err := mount(rt, a.definition(1))
	require.NoError(t, err)
	_, err = mount(rt, b.definition(1))
	require.NoError(t, err)

	//  A --afterUpdate--> B
	a.in.AfterUpdate(func() {
		b.in.Invalidate(0, kernel.Slot[int](a.in, 0))
	})

	before := rt.Flushes()
	a.in.Invalidate(0, 7)
	require.NoError(t, rt.Tick())

	assert.Equal(t, before+1, rt.Flushes())
	require.Len(t, a.patches, 1)
	require.Len(t, b.patches, 1)
	assert.Equal(t, 7, b.in.Get(0))
	assert.True(t, b.in.Dirty().IsClean())
	assert.Equal(t, 0, rt.Pending())
}

func TestRenderCallbackRunsOncePerFlush(t *testing.T) {
	rt := newRuntime()
	p := &recorder{}
	_, err := mount(rt, p.definition(1))
	require.NoError(t, err)

	hookRuns := 0
	p.in.AfterUpdate(func() {
		hookRuns++
		// feeds back into itself, bounded by the seen set
		p.in.Invalidate(0, hookRuns+100)
	})

	p.in.Invalidate(0, 1)
	require.NoError(t, rt.Tick())
	assert.Equal(t, 1, hookRuns)
	assert.Len(t, p.patches, 2)

	// seen is per flush, the next one runs the hook again
	p.in.Invalidate(0, 2)
	require.NoError(t, rt.Tick())
	assert.Equal(t, 2, hookRuns)
}

func TestFlushIsNotReentrant(t *testing.T) {
	rt := newRuntime()
	p := &recorder{}
	_, err := mount(rt, p.definition(1))
	require.NoError(t, err)

	nested := 0
	p.onPatch = func(in *kernel.Instance) {
		nested++
		assert.NoError(t, rt.Flush())
		assert.NoError(t, rt.Tick())
	}
	p.in.Invalidate(0, 1)
	require.NoError(t, rt.Tick())
	assert.Equal(t, 1, nested)
}

func TestMarksDuringPatchStartNewCycle(t *testing.T) {
	rt := newRuntime()
	p := &recorder{}
	_, err := mount(rt, p.definition(2))
	require.NoError(t, err)

	p.onPatch = func(in *kernel.Instance) {
		if len(p.patches) == 1 {
			in.Invalidate(1, "from patch")
		}
	}
	p.in.Invalidate(0, 1)
	require.NoError(t, rt.Tick())

	require.Len(t, p.patches, 2)
	assert.Equal(t, []int{0}, p.patches[0].Slots())
	assert.Equal(t, []int{1}, p.patches[1].Slots())
}

func TestPatchFailureLeavesRestQueued(t *testing.T) {
	var reported []error
	rt := kernel.NewRuntime(kernel.WithOnError(func(err error) {
		reported = append(reported, err)
	}))
	a, b := &recorder{}, &recorder{}
	_, err := mount(rt, a.definition(1))
	require.NoError(t, err)
	_, err = mount(rt, b.definition(1))
	require.NoError(t, err)

	boom := errors.New("boom")
	a.patchErr = boom
	a.in.Invalidate(0, 1)
	b.in.Invalidate(0, 1)

	err = rt.Tick()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "patch component")
	require.Len(t, reported, 1)
	assert.Empty(t, b.patches)
	assert.False(t, b.in.Dirty().IsClean())

	// the retry is queued for the next tick
	assert.Equal(t, 1, rt.Pending())
	require.NoError(t, rt.Tick())
	assert.Len(t, b.patches, 1)
	assert.Len(t, a.patches, 1)
}

func TestUpdateFailureKeepsComponentMarked(t *testing.T) {
	rt := newRuntime()
	fail := true
	p := &recorder{}
	def := p.definition(1)
	def.Update = func(in *kernel.Instance) error {
		// construction sees a full mask, only fail on real updates
		if fail && in.Dirty().State() == dirty.Dirty {
			return errors.New("recompute")
		}
		return nil
	}
	_, err := mount(rt, def)
	require.NoError(t, err)

	p.in.Invalidate(0, 1)
	require.Error(t, rt.Tick())
	assert.Empty(t, p.patches)

	fail = false
	require.NoError(t, rt.Tick())
	require.Len(t, p.patches, 1)
	assert.Equal(t, []int{0}, p.patches[0].Slots())
}

func TestPanicsBecomeErrors(t *testing.T) {
	rt := newRuntime()
	p := &recorder{}
	_, err := mount(rt, p.definition(1))
	require.NoError(t, err)

	p.onPatch = func(in *kernel.Instance) {
		panic("kaboom")
	}
	p.in.Invalidate(0, 1)
	err = rt.Tick()

	var pe *kernel.PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "kaboom", pe.Value)
	assert.NotEmpty(t, pe.StackTrace)
}

func TestCallbackOrdering(t *testing.T) {
	rt := newRuntime()
	p := &recorder{}
	_, err := mount(rt, p.definition(1))
	require.NoError(t, err)

	var order []string
	p.onPatch = func(in *kernel.Instance) {
		order = append(order, "patch")
		rt.AddBindingCallback(func() { order = append(order, "bind1") })
		rt.AddBindingCallback(func() { order = append(order, "bind2") })
		rt.AddRenderCallback(func() { order = append(order, "render") })
	}
	rt.AddFlushCallback(func() { order = append(order, "flush1") })
	rt.AddFlushCallback(func() { order = append(order, "flush2") })

	p.in.Invalidate(0, 1)
	require.NoError(t, rt.Tick())
	assert.Equal(t, []string{"patch", "bind2", "bind1", "render", "flush2", "flush1"}, order)
}

func TestBatchDefersTick(t *testing.T) {
	rt := newRuntime()
	p := &recorder{}
	_, err := mount(rt, p.definition(2))
	require.NoError(t, err)

	err = rt.Batch(func() {
		require.NoError(t, rt.Do(func() { p.in.Invalidate(0, 1) }))
		assert.Empty(t, p.patches)
		require.NoError(t, rt.Batch(func() { p.in.Invalidate(1, 1) }))
		assert.Empty(t, p.patches)
	})
	require.NoError(t, err)
	require.Len(t, p.patches, 1)
	assert.Equal(t, []int{0, 1}, p.patches[0].Slots())
}

func TestExternalDeferrer(t *testing.T) {
	var tasks []func()
	rt := kernel.NewRuntime(kernel.WithDeferrer(func(task func()) {
		tasks = append(tasks, task)
	}))
	p := &recorder{}
	_, err := mount(rt, p.definition(1))
	require.NoError(t, err)

	p.in.Invalidate(0, 1)
	p.in.Invalidate(0, 2)
	assert.Equal(t, 0, rt.Pending())
	require.Len(t, tasks, 1)

	tasks[0]()
	require.Len(t, p.patches, 1)
}
