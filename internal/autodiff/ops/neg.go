package ops

import (
	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/tensor"
)

var negPrim = autodiff.NewPrimitive("neg", 1, func(_ any, in ...*tensor.Array) (*tensor.Array, error) {
	return tensor.Neg(in[0]), nil
})

// scalePrim multiplies by a constant carried in params (a float64).
var scalePrim = autodiff.NewPrimitive("scale", 1, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
	return tensor.Scale(in[0], params.(float64)), nil
})

func init() {
	define(negPrim,
		vjp(func(_ *autodiff.Call, g *autodiff.Node) *autodiff.Node { return Neg(g) }),
		[]autodiff.JVPRule{autodiff.Same},
	)
	define(scalePrim,
		vjp(func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node { return Scale(g, c.Params.(float64)) }),
		[]autodiff.JVPRule{autodiff.Same},
	)
}

// Neg returns -x.
func Neg(x *autodiff.Node) *autodiff.Node {
	return negPrim.Apply(nil, x)
}

// Scale returns c * x.
func Scale(x *autodiff.Node, c float64) *autodiff.Node {
	return scalePrim.Apply(c, x)
}
