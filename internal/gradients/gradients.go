// Package gradients differentiates a function with respect to all of its
// arguments at once and returns the gradient keyed by parameter name.
//
// The adapter binds the call against the function's signature, then asks the
// engine to differentiate one synthetic function of the whole ArgumentMap:
//
//	m ↦ f(sig.Call(m))
//
// The engine returns a gradient with the structure of m, which is the
// GradientMap. Gradient identity is therefore the declared parameter name,
// not the call-site position.
package gradients

import (
	"fmt"

	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/signature"
	"github.com/born-ml/adjoint/internal/tensor"
)

// Target is a function in the adapter's calling convention: positional
// arguments and keyword arguments, returning a one-element traced node.
// Differentiable arguments (arrays, float64) arrive as *autodiff.Node.
type Target func(args []any, kwargs map[string]any) (*autodiff.Node, error)

// Func has the call surface of the wrapped target and returns its gradient.
type Func func(args []any, kwargs map[string]any) (GradientMap, error)

// ValueFunc is Func that also returns the target's value.
type ValueFunc func(args []any, kwargs map[string]any) (float64, GradientMap, error)

// Gradients wraps f so that calling the result returns the gradient of f
// with respect to every parameter, keyed by name.
func Gradients(sig *signature.Signature, f Target, opts ...autodiff.Option) Func {
	vg := ValueAndGradients(sig, f, opts...)
	return func(args []any, kwargs map[string]any) (GradientMap, error) {
		_, grads, err := vg(args, kwargs)
		return grads, err
	}
}

// ValueAndGradients is Gradients that also returns f's value, computed in
// the same pass.
func ValueAndGradients(sig *signature.Signature, f Target, opts ...autodiff.Option) ValueFunc {
	synthetic := func(x any) (*autodiff.Node, error) {
		args, kwargs := sig.Call(signature.ArgumentMap(x.(map[string]any)))
		return f(args, kwargs)
	}
	valueAndGrad := autodiff.ValueAndGrad(synthetic, opts...)

	return func(args []any, kwargs map[string]any) (float64, GradientMap, error) {
		bound, err := sig.Bind(args, kwargs)
		if err != nil {
			return 0, nil, err
		}
		value, grad, err := valueAndGrad(map[string]any(bound))
		if err != nil {
			return 0, nil, err
		}
		grads, ok := grad.(map[string]any)
		if !ok {
			return 0, nil, fmt.Errorf("gradients: unexpected gradient type %T", grad)
		}
		return value.Item(), GradientMap(grads), nil
	}
}

// GradientMap maps each parameter name to the gradient of its argument.
// Values mirror the argument: *tensor.Array for arrays, float64 for floats,
// []any for the positional collector, map[string]any for the keyword
// collector and nil for arguments that are not differentiable.
type GradientMap map[string]any

// Array returns the array gradient of a parameter, or nil.
func (g GradientMap) Array(name string) *tensor.Array {
	a, _ := g[name].(*tensor.Array)
	return a
}

// Float returns the scalar gradient of a float64 parameter.
func (g GradientMap) Float(name string) (float64, bool) {
	f, ok := g[name].(float64)
	return f, ok
}

// Seq returns the gradients of a positional collector.
func (g GradientMap) Seq(name string) []any {
	s, _ := g[name].([]any)
	return s
}

// Map returns the gradients of a keyword collector.
func (g GradientMap) Map(name string) map[string]any {
	m, _ := g[name].(map[string]any)
	return m
}

// Keys returns the parameter names present in the map.
func (g GradientMap) Keys() []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	return keys
}
