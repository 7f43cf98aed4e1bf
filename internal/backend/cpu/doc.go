// Package cpu implements the numerical routines the rule packages treat as
// opaque primitives: banded linear solves and ndimage-style filters.
//
// Nothing in this package knows about differentiation. Every routine takes
// and returns *tensor.Array and leaves its inputs untouched.
package cpu
