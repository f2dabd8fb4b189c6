package kernel

import (
	"math"
	"reflect"
)

// ChangeFunc reports whether writing next over prev counts as a change.
type ChangeFunc func(prev, next any) bool

// SafeNotEqual treats values that may be mutated in place (pointers, maps,
// slices, funcs, channels, structs or arrays holding them or holding
// interfaces) as always changed. NaN equals NaN.
func SafeNotEqual(prev, next any) bool {
	if isNaN(prev) {
		return !isNaN(next)
	}
	if mutable(prev) || mutable(next) {
		return true
	}
	return !comparableEqual(prev, next)
}

// NotEqual is the change check for immutable data: mutable references only
// count as changed when they point elsewhere.
func NotEqual(prev, next any) bool {
	if isNaN(prev) {
		return !isNaN(next)
	}
	return !comparableEqual(prev, next)
}

func isNaN(v any) bool {
	switch f := v.(type) {
	case float64:
		return math.IsNaN(f)
	case float32:
		return math.IsNaN(float64(f))
	}
	return false
}

func mutable(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	case reflect.Struct, reflect.Array:
		t := reflect.TypeOf(v)
		return !t.Comparable() || holdsInterface(t)
	}
	return false
}

// holdsInterface reports whether a value of t can carry an interface, whose
// dynamic value may be a slice or map.
func holdsInterface(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Array:
		return holdsInterface(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if holdsInterface(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}

func comparableEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if !ta.Comparable() {
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		switch ta.Kind() {
		case reflect.Map, reflect.Slice, reflect.Func:
			return va.Pointer() == vb.Pointer()
		}
		return false
	}
	// interface fields may hold uncomparable values
	if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}
