package tensor

import (
	"errors"
	"fmt"
)

// ErrDimension is returned when an array shape is invalid or inconsistent
// with another operand or with declared parameters.
var ErrDimension = errors.New("tensor: dimension mismatch")

// CheckSameShape returns a wrapped ErrDimension when a and b differ in shape.
func CheckSameShape(op string, a, b *Array) error {
	if !a.Shape().Equal(b.Shape()) {
		return fmt.Errorf("%s: %w: %v vs %v", op, ErrDimension, a.Shape(), b.Shape())
	}
	return nil
}
