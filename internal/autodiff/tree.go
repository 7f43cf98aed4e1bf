package autodiff

import (
	"fmt"
	"sort"

	"github.com/born-ml/adjoint/internal/tensor"
)

// Argument trees are nested map[string]any and []any containers. Their
// leaves are differentiable when they are *tensor.Array, float64 or *Node;
// any other leaf is carried through untouched and gets a nil gradient.

type leafKind int

const (
	leafArray leafKind = iota
	leafFloat
	leafNode
)

// tracer replaces differentiable leaves with fresh trace leaves.
type tracer struct {
	leaves []*Node
	kinds  []leafKind
}

func (t *tracer) trace(x any) any {
	switch v := x.(type) {
	case *tensor.Array:
		return t.add(newNode(v), leafArray)
	case float64:
		return t.add(newNode(tensor.Scalar(v)), leafFloat)
	case *Node:
		// A node from an enclosing trace: keep it connected.
		return t.add(Identity(v), leafNode)
	case map[string]any:
		out := make(map[string]any, len(v))
		for _, k := range sortedKeys(v) {
			out[k] = t.trace(v[k])
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = t.trace(item)
		}
		return out
	default:
		return x
	}
}

func (t *tracer) add(n *Node, kind leafKind) *Node {
	t.leaves = append(t.leaves, n)
	t.kinds = append(t.kinds, kind)
	return n
}

// untrace rebuilds x's structure with values[i] in place of the i-th
// differentiable leaf, converted back to that leaf's kind.
func untrace(x any, kinds []leafKind, values []*Node) any {
	i := 0
	var walk func(x any) any
	walk = func(x any) any {
		switch v := x.(type) {
		case *tensor.Array, float64, *Node:
			n := values[i]
			kind := kinds[i]
			i++
			switch kind {
			case leafFloat:
				return n.Item()
			case leafNode:
				return n
			default:
				return n.value
			}
		case map[string]any:
			out := make(map[string]any, len(v))
			for _, k := range sortedKeys(v) {
				out[k] = walk(v[k])
			}
			return out
		case []any:
			out := make([]any, len(v))
			for j, item := range v {
				out[j] = walk(item)
			}
			return out
		default:
			return nil
		}
	}
	return walk(x)
}

// matchLeaves walks v alongside x and returns v's value at each
// differentiable leaf of x, lifted to a node (nil stays nil, meaning zero).
func matchLeaves(x, v any) ([]*Node, error) {
	var out []*Node
	var walk func(x, v any, path string) error
	walk = func(x, v any, path string) error {
		switch xv := x.(type) {
		case *tensor.Array, float64, *Node:
			if v == nil {
				out = append(out, nil)
				return nil
			}
			n, err := Lift(v)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			out = append(out, n)
			return nil
		case map[string]any:
			vm, ok := v.(map[string]any)
			if !ok && v != nil {
				return fmt.Errorf("%s: %w: want map, got %T", path, ErrTreeMismatch, v)
			}
			for _, k := range sortedKeys(xv) {
				if err := walk(xv[k], vm[k], path+"."+k); err != nil {
					return err
				}
			}
			return nil
		case []any:
			vs, ok := v.([]any)
			if v != nil && (!ok || len(vs) != len(xv)) {
				return fmt.Errorf("%s: %w: want sequence of %d", path, ErrTreeMismatch, len(xv))
			}
			for i, item := range xv {
				var vi any
				if vs != nil {
					vi = vs[i]
				}
				if err := walk(item, vi, fmt.Sprintf("%s[%d]", path, i)); err != nil {
					return err
				}
			}
			return nil
		default:
			return nil
		}
	}
	if err := walk(x, v, "$"); err != nil {
		return nil, err
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
