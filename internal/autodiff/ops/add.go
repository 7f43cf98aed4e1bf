package ops

import "github.com/born-ml/adjoint/internal/autodiff"

// Add returns a + b for same-shaped nodes.
//
// Addition is an engine intrinsic (it accumulates cotangents), so its rules
// are present in every registry:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
func Add(a, b *autodiff.Node) *autodiff.Node {
	return autodiff.Add(a, b)
}
