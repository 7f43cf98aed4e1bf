package ops

import (
	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/tensor"
)

// divPrim computes a / b element-wise.
//
// Backward pass:
//   - grad_a = outputGrad / b
//   - grad_b = -outputGrad * a / b² = -outputGrad * output / b
var divPrim = autodiff.NewPrimitive("div", 2, func(_ any, in ...*tensor.Array) (*tensor.Array, error) {
	return tensor.Div(in[0], in[1])
})

func init() {
	quotientGrad := func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node {
		return Neg(Mul(g, Div(c.Output, c.Inputs[1])))
	}
	define(divPrim,
		vjp(
			func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node { return Div(g, c.Inputs[1]) },
			quotientGrad,
		),
		jvp(
			func(c *autodiff.Call, _ int, t *autodiff.Node) *autodiff.Node { return Div(t, c.Inputs[1]) },
			func(c *autodiff.Call, _ int, t *autodiff.Node) *autodiff.Node { return quotientGrad(c, t) },
		),
	)
}

// Div returns a / b for same-shaped nodes.
func Div(a, b *autodiff.Node) *autodiff.Node {
	return divPrim.Apply(nil, a, b)
}
