package ops

import (
	"math"

	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/tensor"
)

// sinPrim computes sin(x).
//
// Backward pass:
//   - d(sin(x))/dx = cos(x)
var sinPrim = autodiff.NewPrimitive("sin", 1, func(_ any, in ...*tensor.Array) (*tensor.Array, error) {
	return tensor.Map(in[0], math.Sin), nil
})

func init() {
	define(sinPrim,
		vjp(func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node { return Mul(g, Cos(c.Inputs[0])) }),
		jvp(func(c *autodiff.Call, _ int, t *autodiff.Node) *autodiff.Node { return Mul(t, Cos(c.Inputs[0])) }),
	)
}

// Sin returns sin(x) element-wise.
func Sin(x *autodiff.Node) *autodiff.Node {
	return sinPrim.Apply(nil, x)
}
