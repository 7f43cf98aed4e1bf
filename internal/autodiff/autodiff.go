// Package autodiff implements the automatic differentiation engine that the
// rule packages extend.
//
// Architecture:
//   - Eager tracing: every Primitive.Apply computes its value immediately and
//     records a Call linking the output Node to its inputs.
//   - Registry: write-once table mapping a Primitive to one VJP maker and one
//     JVP rule per input slot.
//   - Tape: the nodes reachable from an output, in creation order. Walked in
//     reverse for VJP (reverse mode) and forward for JVP (forward mode).
//   - Rules return Nodes built from other primitives, so the cotangent
//     computation is itself traced and can be differentiated again.
//
// Usage:
//
//	reg := autodiff.NewRegistry()
//	ops.Register(reg)
//	reg.Freeze()
//
//	grad := autodiff.Grad(func(x any) (*autodiff.Node, error) {
//		v := x.(*autodiff.Node)
//		return ops.Sum(ops.Mul(v, v)), nil
//	}, autodiff.WithRegistry(reg))
//	g, err := grad(tensor.Vector(1, 2, 3)) // g = [2, 4, 6]
package autodiff

import "sync"

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry. It is empty (apart from the
// engine intrinsics) until rule sets are registered into it at start-up.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}
