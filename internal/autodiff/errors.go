package autodiff

import (
	"errors"
	"fmt"
	"runtime"
)

// Engine errors. They are returned unchanged (possibly wrapped with the name
// of the primitive involved) to the caller of a transform.
var (
	ErrNoVJP             = errors.New("autodiff: no VJP rule registered")
	ErrNoJVP             = errors.New("autodiff: no JVP rule registered")
	ErrNonScalarOutput   = errors.New("autodiff: gradient requires a scalar output")
	ErrRegistryFrozen    = errors.New("autodiff: registry is frozen")
	ErrAlreadyDefined    = errors.New("autodiff: rules already defined for primitive")
	ErrArity             = errors.New("autodiff: wrong number of inputs")
	ErrNotDifferentiable = errors.New("autodiff: value is not differentiable")
	ErrTreeMismatch      = errors.New("autodiff: argument trees differ in structure")
)

// PrimitiveError reports a failure raised by a primitive's implementation
// while it was being traced.
type PrimitiveError struct {
	Primitive string
	Err       error
}

// Error implements the error interface.
func (e *PrimitiveError) Error() string {
	return fmt.Sprintf("%s: %v", e.Primitive, e.Err)
}

// Unwrap returns the underlying error.
func (e *PrimitiveError) Unwrap() error {
	return e.Err
}

// catch runs fn and converts an error panic raised by traced code into a
// returned error. Runtime errors and non-error panics are re-raised.
func catch(fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, isRuntime := r.(runtime.Error); isRuntime {
			panic(r)
		}
		if e, ok := r.(error); ok {
			err = e
			return
		}
		panic(r)
	}()
	return fn()
}
