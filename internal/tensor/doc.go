// Package tensor provides the dense float64 n-dimensional array used by the
// autodiff engine and the numerical primitives.
package tensor
