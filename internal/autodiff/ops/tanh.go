package ops

import (
	"math"

	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/tensor"
)

// tanhPrim computes tanh(x).
//
// Backward pass:
//   - d(tanh(x))/dx = 1 - tanh²(x), so grad_x = outputGrad * (1 - output²)
var tanhPrim = autodiff.NewPrimitive("tanh", 1, func(_ any, in ...*tensor.Array) (*tensor.Array, error) {
	return tensor.Map(in[0], math.Tanh), nil
})

func tanhDerivative(c *autodiff.Call) *autodiff.Node {
	ones := autodiff.Const(tensor.Ones(c.Output.Shape()))
	return Sub(ones, Mul(c.Output, c.Output))
}

func init() {
	define(tanhPrim,
		vjp(func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node { return Mul(g, tanhDerivative(c)) }),
		jvp(func(c *autodiff.Call, _ int, t *autodiff.Node) *autodiff.Node { return Mul(t, tanhDerivative(c)) }),
	)
}

// Tanh returns tanh(x) element-wise.
func Tanh(x *autodiff.Node) *autodiff.Node {
	return tanhPrim.Apply(nil, x)
}
