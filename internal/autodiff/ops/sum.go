package ops

import (
	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/tensor"
)

// sumPrim reduces all elements to a zero-dimensional array.
//
// Backward pass:
//   - d(sum(x))/dx_i = 1, so grad_x = broadcast(outputGrad, shape(x))
var sumPrim = autodiff.NewPrimitive("sum", 1, func(_ any, in ...*tensor.Array) (*tensor.Array, error) {
	return tensor.Scalar(tensor.Sum(in[0])), nil
})

// broadcastPrim fills params (a tensor.Shape) with the single element of its input.
var broadcastPrim = autodiff.NewPrimitive("broadcast_to", 1, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
	return tensor.Broadcast(in[0], params.(tensor.Shape))
})

// reshapePrim changes the shape (params, a tensor.Shape) without moving data.
var reshapePrim = autodiff.NewPrimitive("reshape", 1, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
	return in[0].Reshape(params.(tensor.Shape))
})

func init() {
	define(sumPrim,
		vjp(func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node {
			return BroadcastTo(g, c.Inputs[0].Shape())
		}),
		[]autodiff.JVPRule{autodiff.Same},
	)
	define(broadcastPrim,
		vjp(func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node {
			return Reshape(Sum(g), c.Inputs[0].Shape())
		}),
		[]autodiff.JVPRule{autodiff.Same},
	)
	define(reshapePrim,
		vjp(func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node {
			return Reshape(g, c.Inputs[0].Shape())
		}),
		[]autodiff.JVPRule{autodiff.Same},
	)
}

// Sum returns the sum of all elements of x as a scalar node.
func Sum(x *autodiff.Node) *autodiff.Node {
	return sumPrim.Apply(nil, x)
}

// BroadcastTo expands a one-element node to the given shape.
func BroadcastTo(x *autodiff.Node, shape tensor.Shape) *autodiff.Node {
	return broadcastPrim.Apply(shape.Clone(), x)
}

// Reshape returns x with a new shape holding the same number of elements.
func Reshape(x *autodiff.Node, shape tensor.Shape) *autodiff.Node {
	return reshapePrim.Apply(shape.Clone(), x)
}
