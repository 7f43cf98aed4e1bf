// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/adjoint/internal/backend/cpu"
	"github.com/born-ml/adjoint/internal/tensor"
)

// Bandwidths is the (l, u) pair of a banded matrix.
type Bandwidths = internalcpu.Bandwidths

// Mode selects how a spatial filter extends its input past the boundary.
type Mode = internalcpu.Mode

// Boundary modes.
const (
	Reflect  Mode = internalcpu.Reflect
	Constant Mode = internalcpu.Constant
	Nearest  Mode = internalcpu.Nearest
	Mirror   Mode = internalcpu.Mirror
	Wrap     Mode = internalcpu.Wrap
)

// Spectrum is the layout of a Fourier filter's input.
type Spectrum = internalcpu.Spectrum

// Spectrum layouts.
const (
	RealSpectrum    Spectrum = internalcpu.RealSpectrum
	ComplexSpectrum Spectrum = internalcpu.ComplexSpectrum
)

// GaussianOptions configures the Gaussian filters.
type GaussianOptions = internalcpu.GaussianOptions

// Sentinel errors.
var (
	ErrInvalidParameter = internalcpu.ErrInvalidParameter
	ErrSingular         = internalcpu.ErrSingular
)

// ParseMode returns the boundary mode with the given name.
func ParseMode(s string) (Mode, error) {
	return internalcpu.ParseMode(s)
}

// DefaultGaussianOptions returns a truncation of 4 standard deviations.
func DefaultGaussianOptions() GaussianOptions {
	return internalcpu.DefaultGaussianOptions()
}

// SolveBanded solves a·x = b for a matrix in band storage.
func SolveBanded(lu Bandwidths, ab, b *tensor.Array) (*tensor.Array, error) {
	return internalcpu.SolveBanded(lu, ab, b)
}

// ToBanded packs a dense square matrix into band storage.
func ToBanded(lu Bandwidths, a *tensor.Array) (*tensor.Array, error) {
	return internalcpu.ToBanded(lu, a)
}

// FromBanded expands band storage into a dense matrix.
func FromBanded(lu Bandwidths, ab *tensor.Array) (*tensor.Array, error) {
	return internalcpu.FromBanded(lu, ab)
}

// GaussianFilter smooths in with a Gaussian of standard deviation sigma.
func GaussianFilter(in *tensor.Array, sigma []float64, mode Mode, opts GaussianOptions) (*tensor.Array, error) {
	return internalcpu.GaussianFilter(in, sigma, mode, opts)
}

// Laplace applies the discrete Laplacian.
func Laplace(in *tensor.Array, mode Mode) (*tensor.Array, error) {
	return internalcpu.Laplace(in, mode)
}

// UniformFilter averages in over odd window sizes.
func UniformFilter(in *tensor.Array, size []int, mode Mode) (*tensor.Array, error) {
	return internalcpu.UniformFilter(in, size, mode)
}

// Sobel computes the Sobel derivative along axis.
func Sobel(in *tensor.Array, axis int, mode Mode) (*tensor.Array, error) {
	return internalcpu.Sobel(in, axis, mode)
}

// FFTN returns the n-dimensional discrete Fourier transform of a complex
// array with a trailing [re, im] axis.
func FFTN(in *tensor.Array) (*tensor.Array, error) {
	return internalcpu.FFTN(in)
}

// IFFTN inverts FFTN.
func IFFTN(in *tensor.Array) (*tensor.Array, error) {
	return internalcpu.IFFTN(in)
}
