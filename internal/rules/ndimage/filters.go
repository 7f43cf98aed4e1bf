package ndimage

import (
	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/backend/cpu"
	"github.com/born-ml/adjoint/internal/tensor"
)

var (
	gaussianPrim = autodiff.NewPrimitive("gaussian_filter", 1, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
		p := params.(GaussianParams)
		return cpu.GaussianFilter(in[0], p.Sigma, p.Mode, cpu.GaussianOptions{Truncate: p.Truncate})
	})
	gaussianLaplacePrim = autodiff.NewPrimitive("gaussian_laplace", 1, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
		p := params.(GaussianParams)
		return cpu.GaussianLaplace(in[0], p.Sigma, p.Mode, cpu.GaussianOptions{Truncate: p.Truncate})
	})
	laplacePrim = autodiff.NewPrimitive("laplace", 1, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
		return cpu.Laplace(in[0], params.(LaplaceParams).Mode)
	})
	uniformPrim = autodiff.NewPrimitive("uniform_filter", 1, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
		p := params.(UniformParams)
		return cpu.UniformFilter(in[0], p.Size, p.Mode)
	})
	prewittPrim = autodiff.NewPrimitive("prewitt", 1, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
		p := params.(EdgeParams)
		return cpu.Prewitt(in[0], p.Axis, p.Mode)
	})
	sobelPrim = autodiff.NewPrimitive("sobel", 1, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
		p := params.(EdgeParams)
		return cpu.Sobel(in[0], p.Axis, p.Mode)
	})
	fourierGaussianPrim = autodiff.NewPrimitive("fourier_gaussian", 1, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
		p := params.(FourierParams)
		return cpu.FourierGaussian(in[0], p.Values, p.Layout)
	})
	fourierUniformPrim = autodiff.NewPrimitive("fourier_uniform", 1, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
		p := params.(FourierParams)
		return cpu.FourierUniform(in[0], p.Values, p.Layout)
	})
	fourierEllipsoidPrim = autodiff.NewPrimitive("fourier_ellipsoid", 1, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
		p := params.(FourierParams)
		return cpu.FourierEllipsoid(in[0], p.Values, p.Layout)
	})
	fourierShiftPrim = autodiff.NewPrimitive("fourier_shift", 1, func(params any, in ...*tensor.Array) (*tensor.Array, error) {
		return cpu.FourierShift(in[0], params.(FourierParams).Values)
	})
)

// GaussianFilter smooths x with a Gaussian of standard deviation sigma
// (one value, or one per axis).
func GaussianFilter(x *autodiff.Node, sigma []float64, mode cpu.Mode, opts ...GaussianOption) *autodiff.Node {
	return gaussianPrim.Apply(gaussianParams(sigma, mode, opts), x)
}

// GaussianLaplace computes the Laplacian of x using Gaussian second
// derivatives.
func GaussianLaplace(x *autodiff.Node, sigma []float64, mode cpu.Mode, opts ...GaussianOption) *autodiff.Node {
	return gaussianLaplacePrim.Apply(gaussianParams(sigma, mode, opts), x)
}

// Laplace approximates the Laplacian of x with second differences.
func Laplace(x *autodiff.Node, mode cpu.Mode) *autodiff.Node {
	return laplacePrim.Apply(LaplaceParams{Mode: mode}, x)
}

// UniformFilter averages x over a centred box of odd size per axis.
func UniformFilter(x *autodiff.Node, size []int, mode cpu.Mode) *autodiff.Node {
	return uniformPrim.Apply(UniformParams{Size: append([]int(nil), size...), Mode: mode}, x)
}

// Prewitt computes the Prewitt gradient of x along axis.
func Prewitt(x *autodiff.Node, axis int, mode cpu.Mode) *autodiff.Node {
	return prewittPrim.Apply(EdgeParams{Axis: axis, Mode: mode}, x)
}

// Sobel computes the Sobel gradient of x along axis.
func Sobel(x *autodiff.Node, axis int, mode cpu.Mode) *autodiff.Node {
	return sobelPrim.Apply(EdgeParams{Axis: axis, Mode: mode}, x)
}

// FourierGaussian applies a Gaussian transfer function to the spectrum x.
func FourierGaussian(x *autodiff.Node, sigma []float64, layout cpu.Spectrum) *autodiff.Node {
	return fourierGaussianPrim.Apply(FourierParams{Values: append([]float64(nil), sigma...), Layout: layout}, x)
}

// FourierUniform applies a box transfer function to the spectrum x.
func FourierUniform(x *autodiff.Node, size []float64, layout cpu.Spectrum) *autodiff.Node {
	return fourierUniformPrim.Apply(FourierParams{Values: append([]float64(nil), size...), Layout: layout}, x)
}

// FourierEllipsoid applies an ellipsoidal box transfer function to the
// spectrum x (1 to 3 frequency axes).
func FourierEllipsoid(x *autodiff.Node, size []float64, layout cpu.Spectrum) *autodiff.Node {
	return fourierEllipsoidPrim.Apply(FourierParams{Values: append([]float64(nil), size...), Layout: layout}, x)
}

// FourierShift shifts the signal behind the complex spectrum x by shift
// samples per axis.
func FourierShift(x *autodiff.Node, shift []float64) *autodiff.Node {
	return fourierShiftPrim.Apply(FourierParams{Values: append([]float64(nil), shift...), Layout: cpu.ComplexSpectrum}, x)
}
