package kernel

import (
	"maps"

	"github.com/cespare/xxhash/v2"
)

// Key identifies a context entry.
type Key uint64

// NewKey derives a stable key from a name so separately compiled components
// agree on it.
func NewKey(name string) Key {
	return Key(xxhash.Sum64String(name))
}

// SetContext stores value for key on this instance. Instances created while
// this one is constructing or updating inherit a copy.
func (in *Instance) SetContext(key Key, value any) any {
	in.context[key] = value
	return value
}

func (in *Instance) GetContext(key Key) (any, bool) {
	v, ok := in.context[key]
	return v, ok
}

func (in *Instance) HasContext(key Key) bool {
	_, ok := in.context[key]
	return ok
}

// AllContexts returns a copy of the instance's context.
func (in *Instance) AllContexts() map[Key]any {
	return maps.Clone(in.context)
}

// ContextValue reads a context entry as T, reporting false when it is
// missing or of another type.
func ContextValue[T any](in *Instance, key Key) (T, bool) {
	v, ok := in.context[key].(T)
	return v, ok
}
