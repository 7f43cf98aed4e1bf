// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides the differentiation transforms and the rule
// registry.
//
// Functions are traced eagerly on Nodes. Grad, ValueAndGrad and VJP run in
// reverse mode, JVP in forward mode. Rules come from a Registry; Init fills
// the process-wide one with every rule set of the module.
//
// Example:
//
//	import (
//	    "github.com/born-ml/adjoint/autodiff"
//	    "github.com/born-ml/adjoint/tensor"
//	)
//
//	func main() {
//	    if err := autodiff.Init(); err != nil {
//	        log.Fatal(err)
//	    }
//	    grad := autodiff.Grad(func(x any) (*autodiff.Node, error) {
//	        v := x.(*autodiff.Node)
//	        return autodiff.Sum(autodiff.Mul(v, v)), nil
//	    })
//	    g, _ := grad(tensor.Vector(1, 2, 3)) // [2 4 6]
//	}
package autodiff

import (
	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/rules"
	"github.com/born-ml/adjoint/internal/tensor"
)

// Node is a traced value.
type Node = autodiff.Node

// Call records the primitive application that produced a Node.
type Call = autodiff.Call

// Primitive is an opaque numerical operation.
type Primitive = autodiff.Primitive

// Impl computes a primitive on concrete arrays.
type Impl = autodiff.Impl

// Registry maps primitives to their differentiation rules.
type Registry = autodiff.Registry

// VJPMaker builds the reverse rule context of one input slot.
type VJPMaker = autodiff.VJPMaker

// VJPContext maps an output cotangent to an input cotangent.
type VJPContext = autodiff.VJPContext

// VJPFunc is a VJPMaker built from a plain function.
type VJPFunc = autodiff.VJPFunc

// JVPRule maps an input tangent to an output tangent.
type JVPRule = autodiff.JVPRule

// JVPFunc is a JVPRule built from a plain function.
type JVPFunc = autodiff.JVPFunc

// Func is a function of one argument tree returning a traced node.
type Func = autodiff.Func

// Pullback maps an output cotangent to the gradient tree of the argument.
type Pullback = autodiff.Pullback

// Option configures a transform.
type Option = autodiff.Option

// PrimitiveError reports a failure raised by a primitive while tracing.
type PrimitiveError = autodiff.PrimitiveError

// Engine errors.
var (
	ErrNoVJP             = autodiff.ErrNoVJP
	ErrNoJVP             = autodiff.ErrNoJVP
	ErrNonScalarOutput   = autodiff.ErrNonScalarOutput
	ErrRegistryFrozen    = autodiff.ErrRegistryFrozen
	ErrAlreadyDefined    = autodiff.ErrAlreadyDefined
	ErrNotDifferentiable = autodiff.ErrNotDifferentiable
)

// Same is the forward rule that re-applies the primitive to the tangent.
var Same = autodiff.Same

// Init installs every rule set into the Default registry and freezes it.
// Call it once at start-up; later calls return ErrRegistryFrozen.
func Init() error {
	r := autodiff.Default()
	if err := rules.Register(r); err != nil {
		return err
	}
	r.Freeze()
	return nil
}

// Default returns the process-wide registry.
func Default() *Registry {
	return autodiff.Default()
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return autodiff.NewRegistry()
}

// NewPrimitive declares a primitive with nin array inputs.
func NewPrimitive(name string, nin int, impl Impl) *Primitive {
	return autodiff.NewPrimitive(name, nin, impl)
}

// WithRegistry selects the registry a transform consults.
func WithRegistry(r *Registry) Option {
	return autodiff.WithRegistry(r)
}

// Const wraps an array as a constant node.
func Const(a *tensor.Array) *Node {
	return autodiff.Const(a)
}

// Lift converts an array, float64 or int into a constant node.
func Lift(v any) (*Node, error) {
	return autodiff.Lift(v)
}

// Grad returns a function computing the gradient of fn.
func Grad(fn Func, opts ...Option) func(x any) (any, error) {
	return autodiff.Grad(fn, opts...)
}

// ValueAndGrad returns a function computing fn's value and gradient.
func ValueAndGrad(fn Func, opts ...Option) func(x any) (*tensor.Array, any, error) {
	return autodiff.ValueAndGrad(fn, opts...)
}

// VJP evaluates fn at x and returns its output with a pullback.
func VJP(fn Func, x any, opts ...Option) (*Node, Pullback, error) {
	return autodiff.VJP(fn, x, opts...)
}

// JVP evaluates fn at x and pushes the tangent v forward.
func JVP(fn Func, x, v any, opts ...Option) (*Node, *Node, error) {
	return autodiff.JVP(fn, x, v, opts...)
}

// Eval runs fn on x without differentiating it.
func Eval(fn Func, x any) (*Node, error) {
	return autodiff.Eval(fn, x)
}
