package autodiff

import (
	"fmt"
	"sync/atomic"

	"github.com/born-ml/adjoint/internal/tensor"
)

// nextID orders nodes by creation. Inputs are always created before the
// outputs that consume them, so ascending id is a topological order.
var nextID atomic.Uint64

// Node is a traced value: an array together with the Call that produced it.
// Leaves and constants have no Call.
type Node struct {
	id    uint64
	value *tensor.Array
	call  *Call
}

// Call records one application of a Primitive. It is immutable once
// recorded and is what VJP makers and JVP rules receive.
type Call struct {
	Prim   *Primitive
	Inputs []*Node
	Params any
	Output *Node
}

func newNode(value *tensor.Array) *Node {
	return &Node{
		id:    nextID.Add(1),
		value: value,
	}
}

// Const wraps an array as an untraced node.
func Const(a *tensor.Array) *Node {
	return newNode(a)
}

// Scalar wraps v as a zero-dimensional constant node.
func Scalar(v float64) *Node {
	return newNode(tensor.Scalar(v))
}

// Lift converts a value into a node: nodes are returned as is, arrays and
// float64 scalars become constants.
func Lift(v any) (*Node, error) {
	switch x := v.(type) {
	case *Node:
		return x, nil
	case *tensor.Array:
		return Const(x), nil
	case float64:
		return Scalar(x), nil
	case int:
		return Scalar(float64(x)), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotDifferentiable, v)
	}
}

// Value returns the node's array.
func (n *Node) Value() *tensor.Array {
	return n.value
}

// Shape returns the shape of the node's array.
func (n *Node) Shape() tensor.Shape {
	return n.value.Shape()
}

// Item returns the single element of a one-element node.
func (n *Node) Item() float64 {
	return n.value.Item()
}

// Call returns the call that produced the node, or nil for leaves and constants.
func (n *Node) Call() *Call {
	return n.call
}

// String describes the node for debugging.
func (n *Node) String() string {
	if n.call == nil {
		return fmt.Sprintf("Node#%d%v", n.id, n.value.Shape())
	}
	return fmt.Sprintf("Node#%d%v=%s(...)", n.id, n.value.Shape(), n.call.Prim.name)
}
