package cpu

import (
	"errors"
	"fmt"
	"math"

	"github.com/born-ml/adjoint/internal/tensor"
	"gonum.org/v1/gonum/mat"
)

// Bandwidths is the (l, u) pair of a banded matrix: the number of
// sub-diagonals and super-diagonals.
type Bandwidths struct {
	Lower int
	Upper int
}

// Swap exchanges the sub- and super-diagonal counts, giving the bandwidths
// of the transposed matrix.
func (b Bandwidths) Swap() Bandwidths {
	return Bandwidths{Lower: b.Upper, Upper: b.Lower}
}

// Rows returns the number of rows of the band storage, l + u + 1.
func (b Bandwidths) Rows() int {
	return b.Lower + b.Upper + 1
}

// String formats the pair as (l, u).
func (b Bandwidths) String() string {
	return fmt.Sprintf("(%d, %d)", b.Lower, b.Upper)
}

// CheckBanded validates band storage against its declared bandwidths and
// returns the matrix dimension n.
//
// The storage ab has shape (l+u+1, n) and holds a[i, j] at ab[u+i-j, j].
func CheckBanded(lu Bandwidths, ab *tensor.Array) (int, error) {
	if lu.Lower < 0 || lu.Upper < 0 {
		return 0, fmt.Errorf("%w: negative bandwidths %v", tensor.ErrDimension, lu)
	}
	shape := ab.Shape()
	if len(shape) != 2 {
		return 0, fmt.Errorf("%w: band storage must be 2-d, got %v", tensor.ErrDimension, shape)
	}
	if shape[0] != lu.Rows() {
		return 0, fmt.Errorf("%w: band storage has %d rows, bandwidths %v need %d",
			tensor.ErrDimension, shape[0], lu, lu.Rows())
	}
	return shape[1], nil
}

// checkRHS validates a right-hand side of shape (n,) or (n, k) and returns k.
func checkRHS(n int, b *tensor.Array) (int, error) {
	shape := b.Shape()
	switch {
	case len(shape) == 1 && shape[0] == n:
		return 1, nil
	case len(shape) == 2 && shape[0] == n:
		return shape[1], nil
	default:
		return 0, fmt.Errorf("%w: right-hand side %v does not match matrix dimension %d",
			tensor.ErrDimension, shape, n)
	}
}

// BandedMatrix expands band storage into a gonum banded matrix.
func BandedMatrix(lu Bandwidths, ab *tensor.Array) (*mat.BandDense, error) {
	n, err := CheckBanded(lu, ab)
	if err != nil {
		return nil, err
	}
	// gonum requires each bandwidth to fit inside the matrix.
	kl, ku := min(lu.Lower, n-1), min(lu.Upper, n-1)
	a := mat.NewBandDense(n, n, kl, ku, nil)
	for r := 0; r < lu.Rows(); r++ {
		for j := 0; j < n; j++ {
			i := r + j - lu.Upper
			if i < 0 || i >= n || i-j > kl || j-i > ku {
				continue
			}
			a.SetBand(i, j, ab.At(r, j))
		}
	}
	return a, nil
}

// SolveBanded solves a·x = b for the banded matrix a given in band storage.
// b has shape (n,) or (n, k); x has the shape of b.
func SolveBanded(lu Bandwidths, ab, b *tensor.Array) (*tensor.Array, error) {
	a, err := BandedMatrix(lu, ab)
	if err != nil {
		return nil, err
	}
	n, _ := a.Dims()
	k, err := checkRHS(n, b)
	if err != nil {
		return nil, err
	}

	rhs := mat.NewDense(n, k, append([]float64(nil), b.Data()...))
	var x mat.Dense
	if err := x.Solve(a, rhs); err != nil {
		var cond mat.Condition
		switch {
		case errors.Is(err, mat.ErrSingular):
			return nil, ErrSingular
		case !errors.As(err, &cond):
			return nil, err
		case math.IsInf(float64(cond), 1):
			return nil, ErrSingular
		}
		// Ill-conditioned but solvable: keep the result.
	}

	out := tensor.Zeros(b.Shape())
	data := out.Data()
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			data[i*k+j] = x.At(i, j)
		}
	}
	return out, nil
}

// ToBanded packs a dense square matrix into band storage with the given
// bandwidths. Entries outside the band are dropped.
func ToBanded(lu Bandwidths, a *tensor.Array) (*tensor.Array, error) {
	shape := a.Shape()
	if len(shape) != 2 || shape[0] != shape[1] {
		return nil, fmt.Errorf("%w: need a square matrix, got %v", tensor.ErrDimension, shape)
	}
	n := shape[0]
	ab := tensor.Zeros(tensor.Shape{lu.Rows(), n})
	for r := 0; r < lu.Rows(); r++ {
		for j := 0; j < n; j++ {
			i := r + j - lu.Upper
			if i >= 0 && i < n {
				ab.Set(a.At(i, j), r, j)
			}
		}
	}
	return ab, nil
}

// FromBanded expands band storage into a dense (n, n) array.
func FromBanded(lu Bandwidths, ab *tensor.Array) (*tensor.Array, error) {
	n, err := CheckBanded(lu, ab)
	if err != nil {
		return nil, err
	}
	a := tensor.Zeros(tensor.Shape{n, n})
	for r := 0; r < lu.Rows(); r++ {
		for j := 0; j < n; j++ {
			i := r + j - lu.Upper
			if i >= 0 && i < n {
				a.Set(ab.At(r, j), i, j)
			}
		}
	}
	return a, nil
}
