package autodiff

import (
	"fmt"

	"github.com/born-ml/adjoint/internal/tensor"
)

// Func is a function of one argument tree returning a traced node.
type Func func(x any) (*Node, error)

// Pullback maps an output cotangent to the gradient tree of the argument.
type Pullback func(g any) (any, error)

type options struct {
	registry *Registry
}

// Option configures a transform.
type Option func(*options)

// WithRegistry selects the rule registry a transform consults.
// The default is Default().
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

func buildOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = Default()
	}
	return o
}

// trace evaluates fn on a traced copy of x.
func trace(fn Func, x any) (*tracer, *Node, error) {
	tr := &tracer{}
	var out *Node
	err := catch(func() error {
		traced := tr.trace(x)
		var err error
		out, err = fn(traced)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	if out == nil {
		return nil, nil, fmt.Errorf("%w: function returned a nil node", ErrNotDifferentiable)
	}
	return tr, out, nil
}

// Eval runs fn on x without differentiating it. Errors raised by
// primitives while fn runs are returned.
func Eval(fn Func, x any) (*Node, error) {
	_, out, err := trace(fn, x)
	return out, err
}

// VJP evaluates fn at x and returns its output together with a pullback
// that maps an output cotangent to the gradient tree of x.
//
// The pullback may be called several times. Rule contexts are built lazily,
// during the pullback, and only for inputs that depend on x.
func VJP(fn Func, x any, opts ...Option) (*Node, Pullback, error) {
	o := buildOptions(opts)
	tr, out, err := trace(fn, x)
	if err != nil {
		return nil, nil, err
	}
	tp := newTape(out, tr.leaves)

	pullback := func(g any) (any, error) {
		seed, err := Lift(g)
		if err != nil {
			return nil, err
		}
		if !seed.Shape().Equal(out.Shape()) {
			return nil, fmt.Errorf("cotangent: %w: got %v, want %v", tensor.ErrDimension, seed.Shape(), out.Shape())
		}

		var grads map[*Node]*Node
		err = catch(func() error {
			var err error
			grads, err = tp.backward(seed, o.registry)
			return err
		})
		if err != nil {
			return nil, err
		}

		values := make([]*Node, len(tr.leaves))
		for i, leaf := range tr.leaves {
			if gl, ok := grads[leaf]; ok {
				values[i] = gl
			} else {
				values[i] = Const(tensor.ZerosLike(leaf.value))
			}
		}
		return untrace(x, tr.kinds, values), nil
	}
	return out, pullback, nil
}

// JVP evaluates fn at x and pushes the tangent tree v (same structure as x;
// nil leaves are zero) forward, returning the output and its tangent.
func JVP(fn Func, x, v any, opts ...Option) (*Node, *Node, error) {
	o := buildOptions(opts)
	tangents, err := matchLeaves(x, v)
	if err != nil {
		return nil, nil, err
	}
	tr, out, err := trace(fn, x)
	if err != nil {
		return nil, nil, err
	}

	seeds := make(map[*Node]*Node, len(tr.leaves))
	for i, leaf := range tr.leaves {
		tan := tangents[i]
		if tan == nil {
			continue
		}
		if !tan.Shape().Equal(leaf.Shape()) {
			return nil, nil, fmt.Errorf("tangent %d: %w: got %v, want %v", i, tensor.ErrDimension, tan.Shape(), leaf.Shape())
		}
		seeds[leaf] = tan
	}

	tp := newTape(out, tr.leaves)
	var tans map[*Node]*Node
	err = catch(func() error {
		var err error
		tans, err = tp.forward(seeds, o.registry)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	if tan, ok := tans[out]; ok {
		return out, tan, nil
	}
	return out, Const(tensor.ZerosLike(out.value)), nil
}

// ValueAndGrad returns a function computing fn's value and its gradient with
// respect to the whole argument tree, in a single pass. fn must return a
// one-element node.
func ValueAndGrad(fn Func, opts ...Option) func(x any) (*tensor.Array, any, error) {
	return func(x any) (*tensor.Array, any, error) {
		out, pullback, err := VJP(fn, x, opts...)
		if err != nil {
			return nil, nil, err
		}
		if out.value.NumElements() != 1 {
			return nil, nil, fmt.Errorf("%w: output shape %v", ErrNonScalarOutput, out.Shape())
		}
		grad, err := pullback(tensor.Ones(out.Shape()))
		if err != nil {
			return nil, nil, err
		}
		return out.value, grad, nil
	}
}

// Grad returns a function computing the gradient of fn with respect to the
// whole argument tree. The gradient has the structure of the argument.
func Grad(fn Func, opts ...Option) func(x any) (any, error) {
	vg := ValueAndGrad(fn, opts...)
	return func(x any) (any, error) {
		_, grad, err := vg(x)
		return grad, err
	}
}
