// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff

import (
	"github.com/born-ml/adjoint/internal/autodiff/ops"
	"github.com/born-ml/adjoint/internal/tensor"
)

// Add returns a + b element-wise.
func Add(a, b *Node) *Node { return ops.Add(a, b) }

// Sub returns a - b element-wise.
func Sub(a, b *Node) *Node { return ops.Sub(a, b) }

// Mul returns a * b element-wise.
func Mul(a, b *Node) *Node { return ops.Mul(a, b) }

// Div returns a / b element-wise.
func Div(a, b *Node) *Node { return ops.Div(a, b) }

// Dot returns the inner product of two same-shaped nodes.
func Dot(a, b *Node) *Node { return ops.Dot(a, b) }

// Neg returns -x.
func Neg(x *Node) *Node { return ops.Neg(x) }

// Scale returns c * x.
func Scale(x *Node, c float64) *Node { return ops.Scale(x, c) }

// Sum returns the sum of all elements as a scalar node.
func Sum(x *Node) *Node { return ops.Sum(x) }

// BroadcastTo expands a one-element node to shape.
func BroadcastTo(x *Node, shape tensor.Shape) *Node { return ops.BroadcastTo(x, shape) }

// Reshape returns x with a new shape.
func Reshape(x *Node, shape tensor.Shape) *Node { return ops.Reshape(x, shape) }

// Exp returns e^x element-wise.
func Exp(x *Node) *Node { return ops.Exp(x) }

// Log returns ln(x) element-wise.
func Log(x *Node) *Node { return ops.Log(x) }

// Sin returns sin(x) element-wise.
func Sin(x *Node) *Node { return ops.Sin(x) }

// Cos returns cos(x) element-wise.
func Cos(x *Node) *Node { return ops.Cos(x) }

// Tanh returns tanh(x) element-wise.
func Tanh(x *Node) *Node { return ops.Tanh(x) }
