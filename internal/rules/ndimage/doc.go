// Package ndimage differentiates multi-dimensional filters.
//
// Every filter is a linear operator F on its input, so its JVP is F itself
// and its VJP is the adjoint Fᵀ. The filters fall into three classes:
//
//   - SelfAdjoint: Fᵀ = F (symmetric kernels)
//   - SignFlipAdjoint: Fᵀ = -F (antisymmetric kernels: prewitt, sobel)
//   - ShiftAdjoint: Fᵀ is F with the shift negated (fourier_shift)
//
// The identity Fᵀ = ±F only holds when the boundary mode preserves the
// kernel's symmetry. Outside the validated modes listed in each FilterRule
// the gradients are silently wrong; FilterRule.Exact reports which modes
// are safe for any parameters and FilterRule.ExactFor decides for the
// parameters of one call.
package ndimage
