package autodiff

import (
	"fmt"
	"sort"

	"github.com/born-ml/adjoint/internal/tensor"
)

// tape holds the part of the trace between a set of leaves and an output,
// in creation (topological) order.
//
// Usage:
//
//	tp := newTape(out, leaves)
//	grads, err := tp.backward(seed, registry)   // reverse mode
//	tans, err := tp.forward(tangents, registry) // forward mode
type tape struct {
	nodes  []*Node        // reachable from the output, ascending id
	leaves map[*Node]bool // traversal stops here
	live   map[*Node]bool // depends on at least one leaf
	output *Node
}

// newTape collects every node the output depends on, without walking past
// the leaves, and marks which of them depend on a leaf.
func newTape(output *Node, leaves []*Node) *tape {
	t := &tape{
		leaves: make(map[*Node]bool, len(leaves)),
		live:   make(map[*Node]bool),
		output: output,
	}
	for _, l := range leaves {
		t.leaves[l] = true
	}

	seen := make(map[*Node]bool)
	stack := []*Node{output}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		t.nodes = append(t.nodes, n)
		if t.leaves[n] || n.call == nil {
			continue
		}
		stack = append(stack, n.call.Inputs...)
	}
	sort.Slice(t.nodes, func(i, j int) bool { return t.nodes[i].id < t.nodes[j].id })

	for _, n := range t.nodes {
		if t.leaves[n] {
			t.live[n] = true
			continue
		}
		if n.call == nil {
			continue
		}
		for _, in := range n.call.Inputs {
			if t.live[in] {
				t.live[n] = true
				break
			}
		}
	}
	return t
}

// numOps returns the number of recorded calls on the tape.
func (t *tape) numOps() int {
	n := 0
	for _, node := range t.nodes {
		if node.call != nil && !t.leaves[node] {
			n++
		}
	}
	return n
}

// backward computes cotangents for every live node by walking the tape in
// reverse.
//
// Algorithm:
//  1. Seed the output with the given cotangent
//  2. Walk calls in reverse creation order
//  3. For each call, ask the registry for the VJP of every live input
//  4. Accumulate when the same node feeds several calls
func (t *tape) backward(seed *Node, reg *Registry) (map[*Node]*Node, error) {
	grads := make(map[*Node]*Node)
	if !t.live[t.output] {
		return grads, nil
	}
	grads[t.output] = seed

	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := t.nodes[i]
		if t.leaves[n] || n.call == nil {
			continue
		}
		g, hasGrad := grads[n]
		if !hasGrad {
			continue
		}
		inputGrads, err := t.computeInputGrads(n.call, g, reg)
		if err != nil {
			return nil, err
		}
		t.accumulateGrads(n.call, inputGrads, grads)
	}
	return grads, nil
}

// computeInputGrads evaluates the VJP of each live input of a call.
func (t *tape) computeInputGrads(call *Call, g *Node, reg *Registry) ([]*Node, error) {
	inputGrads := make([]*Node, len(call.Inputs))
	for slot, in := range call.Inputs {
		if !t.live[in] {
			continue
		}
		maker, ok := reg.vjp(call.Prim, slot)
		if !ok {
			return nil, fmt.Errorf("%s: %w", call.Prim.name, ErrNoVJP)
		}
		if maker == nil {
			continue
		}
		gi := maker.MakeVJP(call).Apply(g)
		if !gi.Shape().Equal(in.Shape()) {
			return nil, fmt.Errorf("%s: VJP for input %d: %w: got %v, want %v",
				call.Prim.name, slot, tensor.ErrDimension, gi.Shape(), in.Shape())
		}
		inputGrads[slot] = gi
	}
	return inputGrads, nil
}

// accumulateGrads adds each input cotangent into the running totals.
func (t *tape) accumulateGrads(call *Call, inputGrads []*Node, grads map[*Node]*Node) {
	for slot, in := range call.Inputs {
		gi := inputGrads[slot]
		if gi == nil {
			continue
		}
		if existing, ok := grads[in]; ok {
			grads[in] = Add(existing, gi)
		} else {
			grads[in] = gi
		}
	}
}

// forward pushes leaf tangents through the tape in creation order.
// A missing tangent is zero.
func (t *tape) forward(tangents map[*Node]*Node, reg *Registry) (map[*Node]*Node, error) {
	tans := make(map[*Node]*Node, len(t.nodes))
	for leaf, tan := range tangents {
		if tan != nil {
			tans[leaf] = tan
		}
	}

	for _, n := range t.nodes {
		if t.leaves[n] || n.call == nil || !t.live[n] {
			continue
		}
		var acc *Node
		for slot, in := range n.call.Inputs {
			tan, ok := tans[in]
			if !ok {
				continue
			}
			rule := reg.jvp(n.call.Prim, slot)
			if rule == nil {
				return nil, fmt.Errorf("%s: input %d: %w", n.call.Prim.name, slot, ErrNoJVP)
			}
			ti := rule.JVP(n.call, slot, tan)
			if !ti.Shape().Equal(n.Shape()) {
				return nil, fmt.Errorf("%s: JVP for input %d: %w: got %v, want %v",
					n.call.Prim.name, slot, tensor.ErrDimension, ti.Shape(), n.Shape())
			}
			if acc == nil {
				acc = ti
			} else {
				acc = Add(acc, ti)
			}
		}
		if acc != nil {
			tans[n] = acc
		}
	}
	return tans, nil
}
