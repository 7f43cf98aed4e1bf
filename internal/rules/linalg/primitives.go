package linalg

import (
	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/backend/cpu"
	"github.com/born-ml/adjoint/internal/tensor"
)

// Every primitive here carries its bandwidths (cpu.Bandwidths) as params.
var (
	solvePrim = autodiff.NewPrimitive("solve_banded", 2, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
		return cpu.SolveBanded(params.(cpu.Bandwidths), in[0], in[1])
	})
	transposePrim = autodiff.NewPrimitive("transpose_banded", 1, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
		return cpu.TransposeBanded(params.(cpu.Bandwidths), in[0])
	})
	outerPrim = autodiff.NewPrimitive("band_outer", 2, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
		return cpu.BandOuter(params.(cpu.Bandwidths), in[0], in[1])
	})
	rowContractPrim = autodiff.NewPrimitive("band_row_contract", 2, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
		return cpu.BandRowContract(params.(cpu.Bandwidths), in[0], in[1])
	})
	colContractPrim = autodiff.NewPrimitive("band_col_contract", 2, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
		return cpu.BandColContract(params.(cpu.Bandwidths), in[0], in[1])
	})
)

// SolveBanded solves a·x = b for the banded matrix a stored in ab with
// bandwidths lu. b has shape (n,) or (n, k).
func SolveBanded(lu cpu.Bandwidths, ab, b *autodiff.Node) *autodiff.Node {
	return solvePrim.Apply(lu, ab, b)
}

// TransposeBanded returns the band storage of aᵀ (bandwidths lu.Swap()).
func TransposeBanded(lu cpu.Bandwidths, ab *autodiff.Node) *autodiff.Node {
	return transposePrim.Apply(lu, ab)
}

// BandOuter projects s·xᵀ onto band storage with bandwidths lu.
func BandOuter(lu cpu.Bandwidths, s, x *autodiff.Node) *autodiff.Node {
	return outerPrim.Apply(lu, s, x)
}

// BandRowContract is the adjoint of BandOuter in its first operand.
func BandRowContract(lu cpu.Bandwidths, g, x *autodiff.Node) *autodiff.Node {
	return rowContractPrim.Apply(lu, g, x)
}

// BandColContract is the adjoint of BandOuter in its second operand.
func BandColContract(lu cpu.Bandwidths, g, s *autodiff.Node) *autodiff.Node {
	return colContractPrim.Apply(lu, g, s)
}
