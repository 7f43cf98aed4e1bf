package ops

import (
	"math"

	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/tensor"
)

// expPrim computes exp(x).
//
// Backward pass:
//   - d(exp(x))/dx = exp(x), so grad_x = outputGrad * output
var expPrim = autodiff.NewPrimitive("exp", 1, func(_ any, in ...*tensor.Array) (*tensor.Array, error) {
	return tensor.Map(in[0], math.Exp), nil
})

func init() {
	define(expPrim,
		vjp(func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node { return Mul(g, c.Output) }),
		jvp(func(c *autodiff.Call, _ int, t *autodiff.Node) *autodiff.Node { return Mul(t, c.Output) }),
	)
}

// Exp returns e^x element-wise.
func Exp(x *autodiff.Node) *autodiff.Node {
	return expPrim.Apply(nil, x)
}
