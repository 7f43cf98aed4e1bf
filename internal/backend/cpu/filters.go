package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/adjoint/internal/tensor"
)

// GaussianOptions configures the Gaussian filters.
type GaussianOptions struct {
	// Truncate cuts the kernel off at this many standard deviations.
	Truncate float64
}

// DefaultGaussianOptions returns the options scipy.ndimage uses.
func DefaultGaussianOptions() GaussianOptions {
	return GaussianOptions{Truncate: 4.0}
}

// Validate checks the options.
func (o GaussianOptions) Validate() error {
	if !(o.Truncate > 0) {
		return fmt.Errorf("%w: truncate must be positive, got %g", ErrInvalidParameter, o.Truncate)
	}
	return nil
}

// GaussianKernel returns the sampled 1-d Gaussian of the given standard
// deviation, or its second derivative when order is 2. The kernel has
// radius int(truncate*sigma + 0.5) and the order-0 kernel sums to one.
func GaussianKernel(sigma float64, order int, truncate float64) ([]float64, error) {
	if !(sigma > 0) {
		return nil, fmt.Errorf("%w: sigma must be positive, got %g", ErrInvalidParameter, sigma)
	}
	if order != 0 && order != 2 {
		return nil, fmt.Errorf("%w: gaussian derivative order %d", ErrInvalidParameter, order)
	}
	radius := int(truncate*sigma + 0.5)
	w := make([]float64, 2*radius+1)
	sum := 0.0
	for i := range w {
		x := float64(i - radius)
		w[i] = math.Exp(-0.5 * x * x / (sigma * sigma))
		sum += w[i]
	}
	s2 := sigma * sigma
	for i := range w {
		w[i] /= sum
		if order == 2 {
			x := float64(i - radius)
			w[i] *= (x*x - s2) / (s2 * s2)
		}
	}
	return w, nil
}

// checkInput rejects arrays the filters cannot run along.
func checkInput(name string, in *tensor.Array) error {
	if in.NDim() == 0 {
		return fmt.Errorf("%s: %w: input must have at least one axis", name, tensor.ErrDimension)
	}
	return nil
}

// separable applies one 1-d kernel per axis in turn.
func separable(in *tensor.Array, kernels [][]float64, mode Mode) (*tensor.Array, error) {
	out := in
	for axis, w := range kernels {
		var err error
		out, err = Correlate1D(out, axis, w, mode)
		if err != nil {
			return nil, err
		}
	}
	if out == in {
		out = in.Clone()
	}
	return out, nil
}

// gaussianKernels builds the per-axis kernels of a Gaussian filter whose
// derivative orders are given per axis.
func gaussianKernels(sigma []float64, orders []int, opts GaussianOptions) ([][]float64, error) {
	kernels := make([][]float64, len(sigma))
	for axis, s := range sigma {
		w, err := GaussianKernel(s, orders[axis], opts.Truncate)
		if err != nil {
			return nil, err
		}
		kernels[axis] = w
	}
	return kernels, nil
}

// GaussianFilter smooths in with a separable Gaussian. sigma holds one
// standard deviation per axis, or a single value for all of them.
func GaussianFilter(in *tensor.Array, sigma []float64, mode Mode, opts GaussianOptions) (*tensor.Array, error) {
	if err := checkInput("gaussian_filter", in); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	sigma, err := expandFloats("sigma", sigma, in.NDim())
	if err != nil {
		return nil, err
	}
	kernels, err := gaussianKernels(sigma, make([]int, len(sigma)), opts)
	if err != nil {
		return nil, err
	}
	return separable(in, kernels, mode)
}

// GaussianLaplace computes the Laplacian of in smoothed by a Gaussian: the
// sum over axes of the second Gaussian derivative along that axis.
func GaussianLaplace(in *tensor.Array, sigma []float64, mode Mode, opts GaussianOptions) (*tensor.Array, error) {
	if err := checkInput("gaussian_laplace", in); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	ndim := in.NDim()
	sigma, err := expandFloats("sigma", sigma, ndim)
	if err != nil {
		return nil, err
	}

	out := tensor.ZerosLike(in)
	for axis := 0; axis < ndim; axis++ {
		orders := make([]int, ndim)
		orders[axis] = 2
		kernels, err := gaussianKernels(sigma, orders, opts)
		if err != nil {
			return nil, err
		}
		term, err := separable(in, kernels, mode)
		if err != nil {
			return nil, err
		}
		if out, err = tensor.Add(out, term); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Laplace approximates the Laplacian with second differences [1, -2, 1]
// along every axis.
func Laplace(in *tensor.Array, mode Mode) (*tensor.Array, error) {
	if err := checkInput("laplace", in); err != nil {
		return nil, err
	}
	out := tensor.ZerosLike(in)
	for axis := 0; axis < in.NDim(); axis++ {
		term, err := Correlate1D(in, axis, []float64{1, -2, 1}, mode)
		if err != nil {
			return nil, err
		}
		if out, err = tensor.Add(out, term); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UniformFilter replaces each element by the mean over a centred box. size
// holds one odd window length per axis, or a single value for all of them.
func UniformFilter(in *tensor.Array, size []int, mode Mode) (*tensor.Array, error) {
	if err := checkInput("uniform_filter", in); err != nil {
		return nil, err
	}
	size, err := expandInts("size", size, in.NDim())
	if err != nil {
		return nil, err
	}
	kernels := make([][]float64, len(size))
	for axis, s := range size {
		if s < 1 || s%2 == 0 {
			return nil, fmt.Errorf("%w: uniform window size must be odd and positive, got %d", ErrInvalidParameter, s)
		}
		w := make([]float64, s)
		for i := range w {
			w[i] = 1 / float64(s)
		}
		kernels[axis] = w
	}
	return separable(in, kernels, mode)
}

// Prewitt computes the Prewitt gradient along axis: a central difference
// along it, box smoothing [1, 1, 1] along every other axis.
func Prewitt(in *tensor.Array, axis int, mode Mode) (*tensor.Array, error) {
	return edgeFilter("prewitt", in, axis, []float64{1, 1, 1}, mode)
}

// Sobel computes the Sobel gradient along axis: a central difference along
// it, triangle smoothing [1, 2, 1] along every other axis.
func Sobel(in *tensor.Array, axis int, mode Mode) (*tensor.Array, error) {
	return edgeFilter("sobel", in, axis, []float64{1, 2, 1}, mode)
}

func edgeFilter(name string, in *tensor.Array, axis int, smooth []float64, mode Mode) (*tensor.Array, error) {
	if err := checkInput(name, in); err != nil {
		return nil, err
	}
	axis, err := in.Shape().NormalizeAxis(axis)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	kernels := make([][]float64, in.NDim())
	for a := range kernels {
		if a == axis {
			kernels[a] = []float64{-1, 0, 1}
		} else {
			kernels[a] = smooth
		}
	}
	return separable(in, kernels, mode)
}
