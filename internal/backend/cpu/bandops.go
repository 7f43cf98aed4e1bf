package cpu

import (
	"fmt"

	"github.com/born-ml/adjoint/internal/tensor"
)

// TransposeBanded returns the band storage of aᵀ, whose bandwidths are
// lu.Swap():
//
//	at[r, j] = ab[l+u-r, r+j-l]  when 0 ≤ r+j-l < n, else 0
//
// Padding entries of ab are never read, so the map is a partial
// permutation and TransposeBanded(lu.Swap(), ·) is its adjoint.
func TransposeBanded(lu Bandwidths, ab *tensor.Array) (*tensor.Array, error) {
	n, err := CheckBanded(lu, ab)
	if err != nil {
		return nil, err
	}
	rows := lu.Rows()
	src := ab.Data()
	out := tensor.Zeros(tensor.Shape{rows, n})
	dst := out.Data()
	for r := 0; r < rows; r++ {
		for j := 0; j < n; j++ {
			col := r + j - lu.Lower
			if col < 0 || col >= n {
				continue
			}
			dst[r*n+j] = src[(rows-1-r)*n+col]
		}
	}
	return out, nil
}

// bandOperands validates a pair of (n,) or (n, k) operands and returns n, k.
func bandOperands(op string, s, x *tensor.Array) (n, k int, err error) {
	if !s.Shape().Equal(x.Shape()) {
		return 0, 0, fmt.Errorf("%s: %w: operands %v and %v", op, tensor.ErrDimension, s.Shape(), x.Shape())
	}
	shape := s.Shape()
	switch len(shape) {
	case 1:
		return shape[0], 1, nil
	case 2:
		return shape[0], shape[1], nil
	default:
		return 0, 0, fmt.Errorf("%s: %w: operands must be 1-d or 2-d, got %v", op, tensor.ErrDimension, shape)
	}
}

// bandCotangent checks that g is band storage for an n×n matrix.
func bandCotangent(op string, lu Bandwidths, g *tensor.Array, n int) error {
	want := tensor.Shape{lu.Rows(), n}
	if !g.Shape().Equal(want) {
		return fmt.Errorf("%s: %w: band operand %v, want %v", op, tensor.ErrDimension, g.Shape(), want)
	}
	return nil
}

// BandOuter projects the outer product s·xᵀ onto band storage:
//
//	out[r, j] = Σ_k s[r+j-u, k]·x[j, k]  when 0 ≤ r+j-u < n, else 0
//
// s and x share a shape of (n,) or (n, k).
func BandOuter(lu Bandwidths, s, x *tensor.Array) (*tensor.Array, error) {
	n, k, err := bandOperands("band_outer", s, x)
	if err != nil {
		return nil, err
	}
	rows := lu.Rows()
	sd, xd := s.Data(), x.Data()
	out := tensor.Zeros(tensor.Shape{rows, n})
	dst := out.Data()
	for r := 0; r < rows; r++ {
		for j := 0; j < n; j++ {
			i := r + j - lu.Upper
			if i < 0 || i >= n {
				continue
			}
			sum := 0.0
			for c := 0; c < k; c++ {
				sum += sd[i*k+c] * xd[j*k+c]
			}
			dst[r*n+j] = sum
		}
	}
	return out, nil
}

// BandRowContract contracts a band-shaped g with x over the columns of the
// matrix g represents:
//
//	out[i, k] = Σ_r g[r, i+u-r]·x[i+u-r, k]
//
// It is the derivative of <g, BandOuter(s, x)> with respect to s.
func BandRowContract(lu Bandwidths, g, x *tensor.Array) (*tensor.Array, error) {
	n, k, err := bandOperands("band_row_contract", x, x)
	if err != nil {
		return nil, err
	}
	if err := bandCotangent("band_row_contract", lu, g, n); err != nil {
		return nil, err
	}
	gd, xd := g.Data(), x.Data()
	out := tensor.ZerosLike(x)
	dst := out.Data()
	for r := 0; r < lu.Rows(); r++ {
		for i := 0; i < n; i++ {
			j := i + lu.Upper - r
			if j < 0 || j >= n {
				continue
			}
			w := gd[r*n+j]
			for c := 0; c < k; c++ {
				dst[i*k+c] += w * xd[j*k+c]
			}
		}
	}
	return out, nil
}

// BandColContract contracts a band-shaped g with s over the rows of the
// matrix g represents:
//
//	out[j, k] = Σ_r g[r, j]·s[r+j-u, k]
//
// It is the derivative of <g, BandOuter(s, x)> with respect to x.
func BandColContract(lu Bandwidths, g, s *tensor.Array) (*tensor.Array, error) {
	n, k, err := bandOperands("band_col_contract", s, s)
	if err != nil {
		return nil, err
	}
	if err := bandCotangent("band_col_contract", lu, g, n); err != nil {
		return nil, err
	}
	gd, sd := g.Data(), s.Data()
	out := tensor.ZerosLike(s)
	dst := out.Data()
	for r := 0; r < lu.Rows(); r++ {
		for j := 0; j < n; j++ {
			i := r + j - lu.Upper
			if i < 0 || i >= n {
				continue
			}
			w := gd[r*n+j]
			for c := 0; c < k; c++ {
				dst[j*k+c] += w * sd[i*k+c]
			}
		}
	}
	return out, nil
}
