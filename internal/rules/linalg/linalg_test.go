package linalg

import (
	"strings"
	"testing"

	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/autodiff/ops"
	"github.com/born-ml/adjoint/internal/backend/cpu"
	"github.com/born-ml/adjoint/internal/gradcheck"
	"github.com/born-ml/adjoint/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) *autodiff.Registry {
	t.Helper()
	reg := autodiff.NewRegistry()
	require.NoError(t, ops.Register(reg))
	require.NoError(t, Register(reg))
	reg.Freeze()
	return reg
}

// wellConditioned returns band storage of a random diagonally dominant
// n×n matrix with bandwidths lu.
func wellConditioned(t *testing.T, seed uint64, lu cpu.Bandwidths, n int) *tensor.Array {
	t.Helper()
	dense := tensor.Randn(tensor.NewRand(seed), tensor.Shape{n, n})
	for i := 0; i < n; i++ {
		dense.Set(dense.At(i, i)+float64(2*(lu.Lower+lu.Upper)+4), i, i)
	}
	ab, err := cpu.ToBanded(lu, dense)
	require.NoError(t, err)
	return ab
}

func TestSolveBanded_Traced(t *testing.T) {
	lu := cpu.Bandwidths{Lower: 1, Upper: 1}
	ab := tensor.MustFromSlice([]float64{
		0, 1, 1,
		4, 4, 4,
		1, 1, 0,
	}, tensor.Shape{3, 3})
	out, err := autodiff.Eval(func(x any) (*autodiff.Node, error) {
		return SolveBanded(lu, autodiff.Const(ab), x.(*autodiff.Node)), nil
	}, tensor.Vector(6, 12, 14))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, out.Value().Data(), 1e-12)
}

func TestSolveBanded_Gradients(t *testing.T) {
	reg := newRegistry(t)
	tests := []struct {
		name  string
		lu    cpu.Bandwidths
		n     int
		shape tensor.Shape
	}{
		{"tridiagonal vector", cpu.Bandwidths{Lower: 1, Upper: 1}, 5, tensor.Shape{5}},
		{"lower only", cpu.Bandwidths{Lower: 2, Upper: 0}, 4, tensor.Shape{4}},
		{"upper only", cpu.Bandwidths{Lower: 0, Upper: 2}, 4, tensor.Shape{4, 2}},
		{"asymmetric matrix", cpu.Bandwidths{Lower: 1, Upper: 2}, 6, tensor.Shape{6, 3}},
		{"wide bands", cpu.Bandwidths{Lower: 4, Upper: 3}, 3, tensor.Shape{3, 2}},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := wellConditioned(t, uint64(i+1), tt.lu, tt.n)
			b := tensor.Randn(tensor.NewRand(uint64(100+i)), tt.shape)

			solve := func(xs []*autodiff.Node) *autodiff.Node {
				return SolveBanded(tt.lu, xs[0], xs[1])
			}
			cfg := gradcheck.DefaultConfig()
			cfg.Modes = []gradcheck.Mode{gradcheck.Reverse}
			cfg.Seed = uint64(i)
			require.NoError(t, gradcheck.Check(solve, []*tensor.Array{ab, b}, cfg, autodiff.WithRegistry(reg)))

			// Forward mode is available for b alone.
			wrtB := func(xs []*autodiff.Node) *autodiff.Node {
				return SolveBanded(tt.lu, autodiff.Const(ab), xs[0])
			}
			cfg.Modes = []gradcheck.Mode{gradcheck.Forward, gradcheck.Reverse}
			require.NoError(t, gradcheck.Check(wrtB, []*tensor.Array{b}, cfg, autodiff.WithRegistry(reg)))
		})
	}
}

func TestSolveBanded_GradientOfLoss(t *testing.T) {
	// L = sum(x) with a·x = b gives dL/db = a⁻ᵀ·1 and dL/da = -(a⁻ᵀ·1)·xᵀ.
	reg := newRegistry(t)
	lu := cpu.Bandwidths{Lower: 1, Upper: 1}
	ab := tensor.MustFromSlice([]float64{
		0, 1, 1,
		4, 4, 4,
		1, 1, 0,
	}, tensor.Shape{3, 3})
	b := tensor.Vector(6, 12, 14)

	grad := autodiff.Grad(func(x any) (*autodiff.Node, error) {
		args := x.(map[string]any)
		return ops.Sum(SolveBanded(lu, args["ab"].(*autodiff.Node), args["b"].(*autodiff.Node))), nil
	}, autodiff.WithRegistry(reg))
	g, err := grad(map[string]any{"ab": ab, "b": b})
	require.NoError(t, err)
	grads := g.(map[string]any)

	// a is symmetric, so a⁻ᵀ·1 = a⁻¹·1 = [3, 2, 3]/14.
	s := []float64{3.0 / 14, 2.0 / 14, 3.0 / 14}
	assert.InDeltaSlice(t, s, grads["b"].(*tensor.Array).Data(), 1e-12)

	x := []float64{1, 2, 3}
	gab := grads["ab"].(*tensor.Array)
	assert.Equal(t, tensor.Shape{3, 3}, gab.Shape())
	for r := 0; r < 3; r++ {
		for j := 0; j < 3; j++ {
			i := r + j - lu.Upper
			want := 0.0
			if i >= 0 && i < 3 {
				want = -s[i] * x[j]
			}
			assert.InDelta(t, want, gab.At(r, j), 1e-12, "ab[%d, %d]", r, j)
		}
	}
}

func TestSolveBanded_NoForwardRuleForMatrix(t *testing.T) {
	reg := newRegistry(t)
	lu := cpu.Bandwidths{Lower: 1, Upper: 1}
	ab := wellConditioned(t, 3, lu, 4)
	fn := func(x any) (*autodiff.Node, error) {
		return SolveBanded(lu, x.(*autodiff.Node), autodiff.Const(tensor.Ones(tensor.Shape{4}))), nil
	}
	_, _, err := autodiff.JVP(fn, ab, tensor.Ones(ab.Shape()), autodiff.WithRegistry(reg))
	assert.ErrorIs(t, err, autodiff.ErrNoJVP)
}

func TestTransposeBanded_Involution(t *testing.T) {
	lu := cpu.Bandwidths{Lower: 2, Upper: 1}
	dense := tensor.Randn(tensor.NewRand(4), tensor.Shape{5, 5})
	ab, err := cpu.ToBanded(lu, dense)
	require.NoError(t, err)

	out, err := autodiff.Eval(func(x any) (*autodiff.Node, error) {
		return TransposeBanded(lu.Swap(), TransposeBanded(lu, x.(*autodiff.Node))), nil
	}, ab)
	require.NoError(t, err)
	assert.Equal(t, ab.Data(), out.Value().Data())
}

func TestBandPrimitives_Gradients(t *testing.T) {
	reg := newRegistry(t)
	lu := cpu.Bandwidths{Lower: 1, Upper: 2}
	rng := tensor.NewRand(8)
	g := tensor.Randn(rng, tensor.Shape{lu.Rows(), 5})
	s := tensor.Randn(rng, tensor.Shape{5, 2})
	x := tensor.Randn(rng, tensor.Shape{5, 2})

	tests := []struct {
		name string
		fn   gradcheck.Func
		args []*tensor.Array
	}{
		{"transpose_banded", func(xs []*autodiff.Node) *autodiff.Node { return TransposeBanded(lu, xs[0]) }, []*tensor.Array{g}},
		{"band_outer", func(xs []*autodiff.Node) *autodiff.Node { return BandOuter(lu, xs[0], xs[1]) }, []*tensor.Array{s, x}},
		{"band_row_contract", func(xs []*autodiff.Node) *autodiff.Node { return BandRowContract(lu, xs[0], xs[1]) }, []*tensor.Array{g, x}},
		{"band_col_contract", func(xs []*autodiff.Node) *autodiff.Node { return BandColContract(lu, xs[0], xs[1]) }, []*tensor.Array{g, s}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, gradcheck.Check(tt.fn, tt.args, gradcheck.DefaultConfig(), autodiff.WithRegistry(reg)))
		})
	}
}

func TestSolveBanded_DimensionErrors(t *testing.T) {
	reg := newRegistry(t)
	lu := cpu.Bandwidths{Lower: 1, Upper: 1}
	tests := []struct {
		name string
		ab   *tensor.Array
		b    *tensor.Array
	}{
		{"storage rows", tensor.Ones(tensor.Shape{2, 4}), tensor.Ones(tensor.Shape{4})},
		{"right-hand side length", tensor.Ones(tensor.Shape{3, 4}), tensor.Ones(tensor.Shape{5})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grad := autodiff.Grad(func(x any) (*autodiff.Node, error) {
				xs := x.([]any)
				return ops.Sum(SolveBanded(lu, xs[0].(*autodiff.Node), xs[1].(*autodiff.Node))), nil
			}, autodiff.WithRegistry(reg))
			_, err := grad([]any{tt.ab, tt.b})
			require.Error(t, err)
			assert.ErrorIs(t, err, tensor.ErrDimension)

			var perr *autodiff.PrimitiveError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "solve_banded", perr.Primitive)
		})
	}
}

func TestBandedErrors_NamePrimitiveOnce(t *testing.T) {
	reg := newRegistry(t)
	lu := cpu.Bandwidths{Lower: 1, Upper: 1}

	solve := autodiff.Grad(func(x any) (*autodiff.Node, error) {
		xs := x.([]any)
		return ops.Sum(SolveBanded(lu, xs[0].(*autodiff.Node), xs[1].(*autodiff.Node))), nil
	}, autodiff.WithRegistry(reg))
	_, err := solve([]any{tensor.Zeros(tensor.Shape{3, 3}), tensor.Ones(tensor.Shape{3})})
	require.ErrorIs(t, err, cpu.ErrSingular)
	var perr *autodiff.PrimitiveError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "solve_banded: cpu: singular matrix", perr.Error())

	transpose := autodiff.Grad(func(x any) (*autodiff.Node, error) {
		return ops.Sum(TransposeBanded(lu, x.(*autodiff.Node))), nil
	}, autodiff.WithRegistry(reg))
	_, err = transpose(tensor.Ones(tensor.Shape{2, 4}))
	require.ErrorIs(t, err, tensor.ErrDimension)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "transpose_banded", perr.Primitive)
	assert.Equal(t, 1, strings.Count(perr.Error(), "transpose_banded"))
}

func TestRegister_Twice(t *testing.T) {
	reg := autodiff.NewRegistry()
	require.NoError(t, Register(reg))
	assert.ErrorIs(t, Register(reg), autodiff.ErrAlreadyDefined)

	frozen := autodiff.NewRegistry()
	frozen.Freeze()
	assert.ErrorIs(t, Register(frozen), autodiff.ErrRegistryFrozen)
}
