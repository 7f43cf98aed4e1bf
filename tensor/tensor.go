// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand/v2"

	"github.com/born-ml/adjoint/internal/tensor"
)

// Array is a dense, row-major float64 n-dimensional array.
type Array = tensor.Array

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} represents a 3D array with dimensions 2×3×4.
type Shape = tensor.Shape

// ErrDimension is returned when shapes are invalid or inconsistent.
var ErrDimension = tensor.ErrDimension

// Zeros creates an array filled with zeros.
func Zeros(shape Shape) *Array {
	return tensor.Zeros(shape)
}

// Ones creates an array filled with ones.
func Ones(shape Shape) *Array {
	return tensor.Ones(shape)
}

// Full creates an array filled with value.
func Full(shape Shape, value float64) *Array {
	return tensor.Full(shape, value)
}

// Scalar creates a zero-dimensional array.
func Scalar(v float64) *Array {
	return tensor.Scalar(v)
}

// Vector creates a 1-d array from values.
func Vector(values ...float64) *Array {
	return tensor.Vector(values...)
}

// FromSlice creates an array from a Go slice, copying it.
func FromSlice(data []float64, shape Shape) (*Array, error) {
	return tensor.FromSlice(data, shape)
}

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return tensor.NewRand(seed)
}

// Rand creates an array uniformly distributed in [0, 1).
func Rand(rng *rand.Rand, shape Shape) *Array {
	return tensor.Rand(rng, shape)
}

// Randn creates an array drawn from the standard normal distribution.
func Randn(rng *rand.Rand, shape Shape) *Array {
	return tensor.Randn(rng, shape)
}

// AllClose reports whether a and b have equal shapes and every element
// satisfies |a-b| <= atol + rtol*|b|.
func AllClose(a, b *Array, rtol, atol float64) bool {
	return tensor.AllClose(a, b, rtol, atol)
}
