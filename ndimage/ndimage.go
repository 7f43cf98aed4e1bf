// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ndimage provides differentiable multidimensional filters.
//
// Every filter is linear in its input, so its reverse rule applies the
// adjoint filter to the cotangent: the filter itself for self-adjoint
// filters, the filter of the negated cotangent for prewitt and sobel, and
// the opposite shift for FourierShift. The spatial filters are exact only
// for the boundary modes listed in their FilterRule; Rules and Lookup
// report them, and FilterRule.ExactFor decides for one set of parameters.
//
// Example:
//
//	smooth := func(x any) (*autodiff.Node, error) {
//	    y := ndimage.GaussianFilter(x.(*autodiff.Node), []float64{1.5}, ndimage.Wrap)
//	    return autodiff.Sum(autodiff.Mul(y, y)), nil
//	}
//	g, err := autodiff.Grad(smooth)(x)
package ndimage

import (
	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/backend/cpu"
	"github.com/born-ml/adjoint/internal/rules/ndimage"
)

// Mode selects how a spatial filter extends its input past the boundary.
type Mode = cpu.Mode

// Boundary modes.
const (
	Reflect  Mode = cpu.Reflect
	Constant Mode = cpu.Constant
	Nearest  Mode = cpu.Nearest
	Mirror   Mode = cpu.Mirror
	Wrap     Mode = cpu.Wrap
)

// Spectrum is the layout of a Fourier filter's input.
type Spectrum = cpu.Spectrum

// Spectrum layouts.
const (
	RealSpectrum    Spectrum = cpu.RealSpectrum
	ComplexSpectrum Spectrum = cpu.ComplexSpectrum
)

// FilterRule describes how one filter is differentiated.
type FilterRule = ndimage.FilterRule

// Symmetry classifies how a filter relates to its adjoint.
type Symmetry = ndimage.Symmetry

// Adjoint classes.
const (
	SelfAdjoint     Symmetry = ndimage.SelfAdjoint
	SignFlipAdjoint Symmetry = ndimage.SignFlipAdjoint
	ShiftAdjoint    Symmetry = ndimage.ShiftAdjoint
)

// Filter parameters as recorded on a traced call. FilterRule.ExactFor takes
// one of them.
type (
	GaussianParams = ndimage.GaussianParams
	UniformParams  = ndimage.UniformParams
	LaplaceParams  = ndimage.LaplaceParams
	EdgeParams     = ndimage.EdgeParams
	FourierParams  = ndimage.FourierParams
)

// GaussianOption configures GaussianFilter and GaussianLaplace.
type GaussianOption = ndimage.GaussianOption

// ErrInvalidParameter reports a filter parameter outside its domain.
var ErrInvalidParameter = cpu.ErrInvalidParameter

// WithTruncate sets the kernel radius in standard deviations (default 4).
func WithTruncate(t float64) GaussianOption {
	return ndimage.WithTruncate(t)
}

// Rules returns the rule of every filter.
func Rules() []FilterRule {
	return ndimage.Rules()
}

// Lookup returns the rule of the named filter.
func Lookup(name string) (FilterRule, bool) {
	return ndimage.Lookup(name)
}

// GaussianFilter smooths x with a Gaussian of per-axis standard deviation
// sigma (one value or one per axis).
func GaussianFilter(x *autodiff.Node, sigma []float64, mode Mode, opts ...GaussianOption) *autodiff.Node {
	return ndimage.GaussianFilter(x, sigma, mode, opts...)
}

// GaussianLaplace applies the Laplacian of a Gaussian.
func GaussianLaplace(x *autodiff.Node, sigma []float64, mode Mode, opts ...GaussianOption) *autodiff.Node {
	return ndimage.GaussianLaplace(x, sigma, mode, opts...)
}

// Laplace applies the discrete Laplacian.
func Laplace(x *autodiff.Node, mode Mode) *autodiff.Node {
	return ndimage.Laplace(x, mode)
}

// UniformFilter averages x over odd per-axis window sizes.
func UniformFilter(x *autodiff.Node, size []int, mode Mode) *autodiff.Node {
	return ndimage.UniformFilter(x, size, mode)
}

// Prewitt computes the Prewitt derivative along axis.
func Prewitt(x *autodiff.Node, axis int, mode Mode) *autodiff.Node {
	return ndimage.Prewitt(x, axis, mode)
}

// Sobel computes the Sobel derivative along axis.
func Sobel(x *autodiff.Node, axis int, mode Mode) *autodiff.Node {
	return ndimage.Sobel(x, axis, mode)
}

// FourierGaussian multiplies a spectrum by a Gaussian kernel.
func FourierGaussian(x *autodiff.Node, sigma []float64, layout Spectrum) *autodiff.Node {
	return ndimage.FourierGaussian(x, sigma, layout)
}

// FourierUniform multiplies a spectrum by a box kernel.
func FourierUniform(x *autodiff.Node, size []float64, layout Spectrum) *autodiff.Node {
	return ndimage.FourierUniform(x, size, layout)
}

// FourierEllipsoid multiplies a spectrum by an ellipsoid kernel.
func FourierEllipsoid(x *autodiff.Node, size []float64, layout Spectrum) *autodiff.Node {
	return ndimage.FourierEllipsoid(x, size, layout)
}

// FourierShift shifts a complex spectrum (trailing [re, im] axis).
func FourierShift(x *autodiff.Node, shift []float64) *autodiff.Node {
	return ndimage.FourierShift(x, shift)
}
