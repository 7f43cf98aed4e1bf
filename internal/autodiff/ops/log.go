package ops

import (
	"math"

	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/tensor"
)

// logPrim computes the natural logarithm.
//
// Backward pass:
//   - d(log(x))/dx = 1/x, so grad_x = outputGrad / x
//
// Note: Input values must be positive.
var logPrim = autodiff.NewPrimitive("log", 1, func(_ any, in ...*tensor.Array) (*tensor.Array, error) {
	return tensor.Map(in[0], math.Log), nil
})

func init() {
	define(logPrim,
		vjp(func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node { return Div(g, c.Inputs[0]) }),
		jvp(func(c *autodiff.Call, _ int, t *autodiff.Node) *autodiff.Node { return Div(t, c.Inputs[0]) }),
	)
}

// Log returns ln(x) element-wise.
func Log(x *autodiff.Node) *autodiff.Node {
	return logPrim.Apply(nil, x)
}
