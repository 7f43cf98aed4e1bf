package tensor

import (
	"fmt"
	"strings"
)

// Array is a dense, row-major float64 n-dimensional array.
//
// Arrays handed to the autodiff engine are treated as immutable: every
// operation allocates its result, so an Array may be shared between the
// trace, rule contexts and the caller without copying.
type Array struct {
	data   []float64
	shape  Shape
	stride []int
}

// New creates a zero-filled Array with the given shape.
func New(shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Array{
		data:   make([]float64, shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
	}, nil
}

// Shape returns the array's shape.
func (a *Array) Shape() Shape {
	return a.shape
}

// Strides returns the array's row-major strides.
func (a *Array) Strides() []int {
	return a.stride
}

// NDim returns the number of dimensions.
func (a *Array) NDim() int {
	return len(a.shape)
}

// NumElements returns the total number of elements.
func (a *Array) NumElements() int {
	return len(a.data)
}

// Data returns the underlying storage in row-major order.
// WARNING: Direct access to underlying memory. Do not mutate arrays that
// have been passed to the engine.
func (a *Array) Data() []float64 {
	return a.data
}

// Item returns the single element of a one-element array.
// Panics if the array holds more than one element.
func (a *Array) Item() float64 {
	if len(a.data) != 1 {
		panic(fmt.Sprintf("tensor: Item on array of shape %v", a.shape))
	}
	return a.data[0]
}

// Offset converts a multi-index into a flat offset.
func (a *Array) Offset(idx ...int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("tensor: %d indices for %d-d array", len(idx), len(a.shape)))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= a.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for axis %d of size %d", v, i, a.shape[i]))
		}
		off += v * a.stride[i]
	}
	return off
}

// At returns the element at the given multi-index.
func (a *Array) At(idx ...int) float64 {
	return a.data[a.Offset(idx...)]
}

// Set stores v at the given multi-index.
func (a *Array) Set(v float64, idx ...int) {
	a.data[a.Offset(idx...)] = v
}

// Clone returns a deep copy of the array.
func (a *Array) Clone() *Array {
	data := make([]float64, len(a.data))
	copy(data, a.data)
	return &Array{
		data:   data,
		shape:  a.shape.Clone(),
		stride: append([]int(nil), a.stride...),
	}
}

// Reshape returns an array sharing a's storage with a new shape.
func (a *Array) Reshape(shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(a.data) {
		return nil, fmt.Errorf("%w: cannot reshape %v into %v", ErrDimension, a.shape, shape)
	}
	return &Array{
		data:   a.data,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
	}, nil
}

// String renders small arrays for debugging and test failure messages.
func (a *Array) String() string {
	var sb strings.Builder
	sb.WriteString("Array")
	sb.WriteString(a.shape.String())
	sb.WriteString(fmt.Sprint(a.data))
	return sb.String()
}
