package tensor

import (
	"fmt"
	"math/rand/v2"
)

// Zeros creates an array filled with zeros.
// Panics on an invalid shape.
//
// Example:
//
//	a := tensor.Zeros(tensor.Shape{3, 4})
func Zeros(shape Shape) *Array {
	a, err := New(shape)
	if err != nil {
		panic(err)
	}
	return a
}

// ZerosLike creates a zero array with the same shape as a.
func ZerosLike(a *Array) *Array {
	return Zeros(a.Shape())
}

// Ones creates an array filled with ones.
func Ones(shape Shape) *Array {
	return Full(shape, 1)
}

// Full creates an array filled with a specific value.
func Full(shape Shape, value float64) *Array {
	a := Zeros(shape)
	for i := range a.data {
		a.data[i] = value
	}
	return a
}

// Scalar creates a zero-dimensional array holding v.
func Scalar(v float64) *Array {
	a := Zeros(Shape{})
	a.data[0] = v
	return a
}

// FromSlice creates an array from a Go slice.
// The slice is copied into the array's memory.
func FromSlice(data []float64, shape Shape) (*Array, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, but got %d",
			ErrDimension, shape, shape.NumElements(), len(data))
	}
	a, err := New(shape)
	if err != nil {
		return nil, err
	}
	copy(a.data, data)
	return a, nil
}

// MustFromSlice is FromSlice that panics on error. Intended for literals in
// tests and examples.
func MustFromSlice(data []float64, shape Shape) *Array {
	a, err := FromSlice(data, shape)
	if err != nil {
		panic(err)
	}
	return a
}

// Vector creates a 1-d array from values.
func Vector(values ...float64) *Array {
	return MustFromSlice(values, Shape{len(values)})
}

// Rand creates an array with values uniformly distributed in [0, 1).
func Rand(rng *rand.Rand, shape Shape) *Array {
	a := Zeros(shape)
	for i := range a.data {
		a.data[i] = rng.Float64()
	}
	return a
}

// Randn creates an array with values drawn from the standard normal distribution.
func Randn(rng *rand.Rand, shape Shape) *Array {
	a := Zeros(shape)
	for i := range a.data {
		a.data[i] = rng.NormFloat64()
	}
	return a
}

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // reproducible numerics, not crypto
}
