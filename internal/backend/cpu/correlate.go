package cpu

import (
	"fmt"

	"github.com/born-ml/adjoint/internal/parallel"
	"github.com/born-ml/adjoint/internal/tensor"
)

// Correlate1D correlates every line of in along axis with an odd-length,
// centred weight vector:
//
//	out[i] = Σ_j w[j] · in[i + j - r],  r = len(w)/2
//
// with out-of-range positions resolved by mode. Lines are processed in
// parallel for large inputs.
func Correlate1D(in *tensor.Array, axis int, weights []float64, mode Mode) (*tensor.Array, error) {
	if len(weights)%2 == 0 {
		return nil, fmt.Errorf("%w: correlation weights must have odd length, got %d", ErrInvalidParameter, len(weights))
	}
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	axis, err := in.Shape().NormalizeAxis(axis)
	if err != nil {
		return nil, err
	}

	out := tensor.ZerosLike(in)
	src, dst := in.Data(), out.Data()
	shape := in.Shape()
	n := shape[axis]
	inner := in.Strides()[axis]
	outer := len(src) / (n * inner)
	radius := len(weights) / 2

	parallel.ForChunks(outer*inner, func(start, end int) {
		line := make([]float64, n)
		for l := start; l < end; l++ {
			base := (l/inner)*n*inner + l%inner
			for i := 0; i < n; i++ {
				line[i] = src[base+i*inner]
			}
			for i := 0; i < n; i++ {
				sum := 0.0
				for j, w := range weights {
					if idx, ok := mode.index(i+j-radius, n); ok {
						sum += w * line[idx]
					}
				}
				dst[base+i*inner] = sum
			}
		}
	}, parallel.DefaultConfig())
	return out, nil
}

// expandFloats broadcasts a per-axis parameter of length 1 to ndim entries.
func expandFloats(name string, vals []float64, ndim int) ([]float64, error) {
	switch len(vals) {
	case ndim:
		return vals, nil
	case 1:
		out := make([]float64, ndim)
		for i := range out {
			out[i] = vals[0]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s has %d entries for a %d-d input", tensor.ErrDimension, name, len(vals), ndim)
	}
}

// expandInts is expandFloats for integer parameters.
func expandInts(name string, vals []int, ndim int) ([]int, error) {
	switch len(vals) {
	case ndim:
		return vals, nil
	case 1:
		out := make([]int, ndim)
		for i := range out {
			out[i] = vals[0]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s has %d entries for a %d-d input", tensor.ErrDimension, name, len(vals), ndim)
	}
}
