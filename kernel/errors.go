package kernel

import (
	"fmt"
	"runtime/debug"

	"github.com/pkg/errors"
)

var ErrDestroyed = errors.New("kernel: component destroyed")

// PanicError is a panic recovered while the runtime was running component
// code during a flush or construction.
type PanicError struct {
	// Op is what was running, e.g. "patch component 3".
	Op         string
	Value      any
	StackTrace string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: panic: %v", e.Op, e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// guard runs fn, converting a panic into a *PanicError and wrapping a
// returned error with op.
func guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Op: op, Value: r, StackTrace: string(debug.Stack())}
		}
	}()
	if err := fn(); err != nil {
		return errors.Wrap(err, op)
	}
	return nil
}

func guardFunc(op string, fn func()) error {
	return guard(op, func() error {
		fn()
		return nil
	})
}
