package ndimage

import "github.com/born-ml/adjoint/internal/backend/cpu"

// GaussianParams configures gaussian_filter and gaussian_laplace.
type GaussianParams struct {
	Sigma    []float64
	Mode     cpu.Mode
	Truncate float64
}

// UniformParams configures uniform_filter.
type UniformParams struct {
	Size []int
	Mode cpu.Mode
}

// LaplaceParams configures laplace.
type LaplaceParams struct {
	Mode cpu.Mode
}

// EdgeParams configures prewitt and sobel.
type EdgeParams struct {
	Axis int
	Mode cpu.Mode
}

// FourierParams configures the fourier_* filters. Values holds sigma,
// size or shift, depending on the filter.
type FourierParams struct {
	Values []float64
	Layout cpu.Spectrum
}

// negated returns the parameters of the adjoint shift.
func (p FourierParams) negated() FourierParams {
	vals := make([]float64, len(p.Values))
	for i, v := range p.Values {
		vals[i] = -v
	}
	return FourierParams{Values: vals, Layout: p.Layout}
}

// GaussianOption adjusts GaussianParams.
type GaussianOption func(*GaussianParams)

// WithTruncate cuts Gaussian kernels off at t standard deviations.
func WithTruncate(t float64) GaussianOption {
	return func(p *GaussianParams) {
		p.Truncate = t
	}
}

func gaussianParams(sigma []float64, mode cpu.Mode, opts []GaussianOption) GaussianParams {
	p := GaussianParams{
		Sigma:    append([]float64(nil), sigma...),
		Mode:     mode,
		Truncate: cpu.DefaultGaussianOptions().Truncate,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
