package tensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Add returns a + b element-wise.
func Add(a, b *Array) (*Array, error) {
	if err := CheckSameShape("add", a, b); err != nil {
		return nil, err
	}
	out := ZerosLike(a)
	floats.AddTo(out.data, a.data, b.data)
	return out, nil
}

// Sub returns a - b element-wise.
func Sub(a, b *Array) (*Array, error) {
	if err := CheckSameShape("sub", a, b); err != nil {
		return nil, err
	}
	out := ZerosLike(a)
	floats.SubTo(out.data, a.data, b.data)
	return out, nil
}

// Mul returns a * b element-wise.
func Mul(a, b *Array) (*Array, error) {
	if err := CheckSameShape("mul", a, b); err != nil {
		return nil, err
	}
	out := ZerosLike(a)
	floats.MulTo(out.data, a.data, b.data)
	return out, nil
}

// Div returns a / b element-wise.
func Div(a, b *Array) (*Array, error) {
	if err := CheckSameShape("div", a, b); err != nil {
		return nil, err
	}
	out := ZerosLike(a)
	floats.DivTo(out.data, a.data, b.data)
	return out, nil
}

// Scale returns c * a.
func Scale(a *Array, c float64) *Array {
	out := a.Clone()
	floats.Scale(c, out.data)
	return out
}

// Neg returns -a.
func Neg(a *Array) *Array {
	return Scale(a, -1)
}

// Map applies fn to every element of a.
func Map(a *Array, fn func(float64) float64) *Array {
	out := ZerosLike(a)
	for i, v := range a.data {
		out.data[i] = fn(v)
	}
	return out
}

// Sum returns the sum of all elements.
func Sum(a *Array) float64 {
	return floats.Sum(a.data)
}

// Dot returns the inner product of two same-shaped arrays.
func Dot(a, b *Array) (float64, error) {
	if err := CheckSameShape("dot", a, b); err != nil {
		return 0, err
	}
	return floats.Dot(a.data, b.data), nil
}

// Broadcast returns an array of the given shape filled with the single
// element of s.
func Broadcast(s *Array, shape Shape) (*Array, error) {
	if s.NumElements() != 1 {
		return nil, fmt.Errorf("%w: cannot broadcast %v to %v", ErrDimension, s.Shape(), shape)
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return Full(shape, s.data[0]), nil
}

// AllClose reports whether a and b have equal shapes and every element
// satisfies |a-b| <= atol + rtol*|b|.
func AllClose(a, b *Array, rtol, atol float64) bool {
	if !a.Shape().Equal(b.Shape()) {
		return false
	}
	for i := range a.data {
		if math.Abs(a.data[i]-b.data[i]) > atol+rtol*math.Abs(b.data[i]) {
			return false
		}
	}
	return true
}
