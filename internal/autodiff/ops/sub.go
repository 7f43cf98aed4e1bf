package ops

import (
	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/tensor"
)

// subPrim computes a - b.
//
// Backward pass:
//   - grad_a = outputGrad
//   - grad_b = -outputGrad
var subPrim = autodiff.NewPrimitive("sub", 2, func(_ any, in ...*tensor.Array) (*tensor.Array, error) {
	return tensor.Sub(in[0], in[1])
})

func init() {
	define(subPrim,
		vjp(
			func(_ *autodiff.Call, g *autodiff.Node) *autodiff.Node { return g },
			func(_ *autodiff.Call, g *autodiff.Node) *autodiff.Node { return Neg(g) },
		),
		jvp(
			func(_ *autodiff.Call, _ int, t *autodiff.Node) *autodiff.Node { return t },
			func(_ *autodiff.Call, _ int, t *autodiff.Node) *autodiff.Node { return Neg(t) },
		),
	)
}

// Sub returns a - b for same-shaped nodes.
func Sub(a, b *autodiff.Node) *autodiff.Node {
	return subPrim.Apply(nil, a, b)
}
