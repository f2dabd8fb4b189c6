// Package dirty tracks which reactive slots of a component changed since the
// last flush consumed them.
package dirty

import "fmt"

// BitsPerWord is the number of slot flags packed in each word.
const BitsPerWord = 31

// State is the queueing state of a Mask.
type State uint8

const (
	// Clean means nothing changed and the owner is not queued for a flush.
	Clean State = iota
	// Dirty means at least one slot was marked and the owner is queued.
	Dirty
	// Full reports every slot as changed. Used for the initial recompute.
	Full
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	case Full:
		return "full"
	default:
		return fmt.Sprintf("state(%d)", s)
	}
}

// Mask is a packed set of slot indices, word = i/31 and bit = i%31.
// The zero value is Clean.
type Mask struct {
	state State
	words []uint32
}

// New returns a clean mask with room for slots without growing.
func New(slots int) Mask {
	return Mask{words: make([]uint32, wordsFor(slots))}
}

// All returns a mask in the Full state.
func All() Mask {
	return Mask{state: Full}
}

// Of returns a dirty mask with the given slots set.
func Of(slots ...int) Mask {
	var m Mask
	for _, i := range slots {
		m.Mark(i)
	}
	return m
}

func wordsFor(slots int) int {
	if slots <= 0 {
		return 1
	}
	return (slots + BitsPerWord - 1) / BitsPerWord
}

func (m Mask) State() State {
	return m.state
}

func (m Mask) IsClean() bool {
	return m.state == Clean
}

// Mark sets slot i. It reports true when the mask just left the Clean state,
// which is the only moment the owner must be enqueued.
func (m *Mask) Mark(i int) (queued bool) {
	if i < 0 {
		panic(fmt.Sprintf("dirty: negative slot %d", i))
	}
	switch m.state {
	case Full:
		return false
	case Clean:
		m.state = Dirty
		clear(m.words)
		queued = true
	}

	w := i / BitsPerWord
	if w >= len(m.words) {
		grown := make([]uint32, w+1)
		copy(grown, m.words)
		m.words = grown
	}
	m.words[w] |= 1 << (i % BitsPerWord)
	return queued
}

// Take returns the current mask and leaves the receiver Clean. Marks made
// after Take accumulate into a new cycle.
func (m *Mask) Take() Mask {
	snapshot := *m
	*m = Mask{words: make([]uint32, len(snapshot.words))}
	return snapshot
}

// Reset drops every mark and returns to Clean.
func (m *Mask) Reset() {
	m.state = Clean
	clear(m.words)
}

// Has reports whether slot i changed.
func (m Mask) Has(i int) bool {
	switch m.state {
	case Full:
		return true
	case Clean:
		return false
	}
	w := i / BitsPerWord
	if i < 0 || w >= len(m.words) {
		return false
	}
	return m.words[w]&(1<<(i%BitsPerWord)) != 0
}

// Any reports whether at least one of the slots changed.
func (m Mask) Any(slots ...int) bool {
	for _, i := range slots {
		if m.Has(i) {
			return true
		}
	}
	return false
}

// Word returns packed word n. A Full mask returns every bit set.
func (m Mask) Word(n int) uint32 {
	switch m.state {
	case Full:
		return 1<<BitsPerWord - 1
	case Clean:
		return 0
	}
	if n < 0 || n >= len(m.words) {
		return 0
	}
	return m.words[n]
}

// Slots lists the marked slot indices in ascending order. Full and Clean
// masks return nil.
func (m Mask) Slots() []int {
	if m.state != Dirty {
		return nil
	}
	var slots []int
	for w, word := range m.words {
		for b := 0; b < BitsPerWord; b++ {
			if word&(1<<b) != 0 {
				slots = append(slots, w*BitsPerWord+b)
			}
		}
	}
	return slots
}

// Union merges other into m. Merging anything into a Clean mask makes it
// Dirty without reporting a queue transition.
func (m *Mask) Union(other Mask) {
	switch {
	case other.state == Clean || m.state == Full:
		return
	case other.state == Full:
		m.state = Full
		m.words = nil
		return
	}
	if m.state == Clean {
		m.state = Dirty
		clear(m.words)
	}
	if len(other.words) > len(m.words) {
		grown := make([]uint32, len(other.words))
		copy(grown, m.words)
		m.words = grown
	}
	for i, w := range other.words {
		m.words[i] |= w
	}
}

func (m Mask) String() string {
	switch m.state {
	case Dirty:
		return fmt.Sprintf("dirty%v", m.Slots())
	default:
		return m.state.String()
	}
}
