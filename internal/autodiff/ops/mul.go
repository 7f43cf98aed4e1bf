package ops

import (
	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/tensor"
)

// mulPrim computes a * b element-wise.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
var mulPrim = autodiff.NewPrimitive("mul", 2, func(_ any, in ...*tensor.Array) (*tensor.Array, error) {
	return tensor.Mul(in[0], in[1])
})

func init() {
	define(mulPrim,
		vjp(
			func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node { return Mul(g, c.Inputs[1]) },
			func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node { return Mul(g, c.Inputs[0]) },
		),
		jvp(
			func(c *autodiff.Call, _ int, t *autodiff.Node) *autodiff.Node { return Mul(t, c.Inputs[1]) },
			func(c *autodiff.Call, _ int, t *autodiff.Node) *autodiff.Node { return Mul(c.Inputs[0], t) },
		),
	)
}

// Mul returns a * b for same-shaped nodes.
func Mul(a, b *autodiff.Node) *autodiff.Node {
	return mulPrim.Apply(nil, a, b)
}

// Dot returns the inner product of two same-shaped nodes as a scalar node.
func Dot(a, b *autodiff.Node) *autodiff.Node {
	return Sum(Mul(a, b))
}
