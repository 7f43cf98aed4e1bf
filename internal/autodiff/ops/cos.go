package ops

import (
	"math"

	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/tensor"
)

// cosPrim computes cos(x).
//
// Backward pass:
//   - d(cos(x))/dx = -sin(x)
var cosPrim = autodiff.NewPrimitive("cos", 1, func(_ any, in ...*tensor.Array) (*tensor.Array, error) {
	return tensor.Map(in[0], math.Cos), nil
})

func init() {
	define(cosPrim,
		vjp(func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node { return Neg(Mul(g, Sin(c.Inputs[0]))) }),
		jvp(func(c *autodiff.Call, _ int, t *autodiff.Node) *autodiff.Node { return Neg(Mul(t, Sin(c.Inputs[0]))) }),
	)
}

// Cos returns cos(x) element-wise.
func Cos(x *autodiff.Node) *autodiff.Node {
	return cosPrim.Apply(nil, x)
}
