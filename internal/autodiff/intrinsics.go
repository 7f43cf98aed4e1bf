package autodiff

import "github.com/born-ml/adjoint/internal/tensor"

// The engine needs two operations of its own: addition, to accumulate
// cotangents and tangents, and identity, to start a nested trace from a node
// of an enclosing one.
var (
	addPrim = NewPrimitive("add", 2, func(_ any, in ...*tensor.Array) (*tensor.Array, error) {
		return tensor.Add(in[0], in[1])
	})
	identityPrim = NewPrimitive("identity", 1, func(_ any, in ...*tensor.Array) (*tensor.Array, error) {
		return in[0], nil
	})
)

// passThrough is the VJP of every slot of add and of identity.
var passThrough = VJPFunc(func(_ *Call, g *Node) *Node { return g })

// tangentThrough is the matching JVP.
var tangentThrough = JVPFunc(func(_ *Call, _ int, t *Node) *Node { return t })

func registerIntrinsics(r *Registry) {
	r.vjps[addPrim] = []VJPMaker{passThrough, passThrough}
	r.jvps[addPrim] = []JVPRule{tangentThrough, tangentThrough}
	r.vjps[identityPrim] = []VJPMaker{passThrough}
	r.jvps[identityPrim] = []JVPRule{tangentThrough}
}

// Add returns a + b for same-shaped nodes.
func Add(a, b *Node) *Node {
	return addPrim.Apply(nil, a, b)
}

// Identity returns a new node equal to n whose call links back to n.
func Identity(n *Node) *Node {
	return identityPrim.Apply(nil, n)
}
