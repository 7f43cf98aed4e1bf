package autodiff

import (
	"fmt"

	"github.com/born-ml/adjoint/internal/tensor"
)

// Impl computes a primitive's output from its auxiliary parameters and its
// array inputs. It must not modify the inputs.
type Impl func(params any, inputs ...*tensor.Array) (*tensor.Array, error)

// Primitive is an opaque operation the engine does not look into. Its
// derivatives come exclusively from the rules registered for it.
//
// Array arguments are inputs (one rule slot each); everything else the
// operation needs (bandwidths, sigma, boundary mode) travels in params.
type Primitive struct {
	name string
	nin  int
	impl Impl
}

// NewPrimitive marks impl as a traced primitive with nin array inputs.
func NewPrimitive(name string, nin int, impl Impl) *Primitive {
	return &Primitive{name: name, nin: nin, impl: impl}
}

// Name returns the primitive's name.
func (p *Primitive) Name() string {
	return p.name
}

// NumInputs returns the number of array inputs.
func (p *Primitive) NumInputs() int {
	return p.nin
}

// Eval runs the primitive on plain arrays without tracing.
func (p *Primitive) Eval(params any, inputs ...*tensor.Array) (*tensor.Array, error) {
	if len(inputs) != p.nin {
		return nil, fmt.Errorf("%s: %w: want %d, got %d", p.name, ErrArity, p.nin, len(inputs))
	}
	out, err := p.impl(params, inputs...)
	if err != nil {
		return nil, &PrimitiveError{Primitive: p.name, Err: err}
	}
	return out, nil
}

// Apply runs the primitive on traced inputs and records the call.
//
// Failures panic with the error; transforms recover it and return it to
// their caller, so traced code can be written without error plumbing.
func (p *Primitive) Apply(params any, inputs ...*Node) *Node {
	values := make([]*tensor.Array, len(inputs))
	for i, in := range inputs {
		values[i] = in.value
	}
	out, err := p.Eval(params, values...)
	if err != nil {
		panic(err)
	}

	node := newNode(out)
	node.call = &Call{
		Prim:   p,
		Inputs: append([]*Node(nil), inputs...),
		Params: params,
		Output: node,
	}
	return node
}

// WithInput returns a copy of the call's inputs with the given slot replaced.
func (c *Call) WithInput(slot int, n *Node) []*Node {
	inputs := append([]*Node(nil), c.Inputs...)
	inputs[slot] = n
	return inputs
}
