// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gradients differentiates a function with respect to all of its
// arguments at once, keyed by parameter name.
//
// The function's parameter list is declared once with a Signature. Calls
// may pass arguments positionally or by keyword; the gradient of each
// argument is found under its declared name either way.
//
// Example:
//
//	sig := gradients.MustSignature(gradients.Param("x"), gradients.Param("y"))
//	f := func(args []any, _ map[string]any) (*autodiff.Node, error) {
//	    return autodiff.Dot(args[0].(*autodiff.Node), args[1].(*autodiff.Node)), nil
//	}
//	grads, err := gradients.Gradients(sig, f)([]any{x, y}, nil)
//	// grads["x"] = y, grads["y"] = x
package gradients

import (
	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/gradients"
	"github.com/born-ml/adjoint/internal/signature"
)

// Signature is a validated parameter list.
type Signature = signature.Signature

// Parameter is one declared parameter.
type Parameter = signature.Parameter

// ArgumentMap holds one bound value per parameter name.
type ArgumentMap = signature.ArgumentMap

// BindingError describes why a call could not be bound.
type BindingError = signature.BindingError

// Target is a function in positional and keyword calling convention.
type Target = gradients.Target

// Func returns the gradient of a Target for one call.
type Func = gradients.Func

// ValueFunc returns the value and gradient of a Target for one call.
type ValueFunc = gradients.ValueFunc

// GradientMap maps each parameter name to the gradient of its argument.
type GradientMap = gradients.GradientMap

// Signature errors.
var (
	ErrBinding          = signature.ErrBinding
	ErrInvalidSignature = signature.ErrInvalidSignature
)

// NewSignature validates params and builds a Signature.
func NewSignature(params ...Parameter) (*Signature, error) {
	return signature.New(params...)
}

// MustSignature is NewSignature that panics on an invalid list.
func MustSignature(params ...Parameter) *Signature {
	return signature.MustNew(params...)
}

// Param declares a required positional-or-keyword parameter.
func Param(name string) Parameter { return signature.Param(name) }

// Optional declares a positional-or-keyword parameter with a default.
func Optional(name string, def any) Parameter { return signature.Optional(name, def) }

// VarArgs declares the parameter collecting extra positional arguments.
func VarArgs(name string) Parameter { return signature.VarArgs(name) }

// VarKwargs declares the parameter collecting extra keyword arguments.
func VarKwargs(name string) Parameter { return signature.VarKwargs(name) }

// KeywordOnly declares a keyword-only parameter with a default.
func KeywordOnly(name string, def any) Parameter { return signature.KeywordOnly(name, def) }

// RequiredKeyword declares a keyword-only parameter without a default.
func RequiredKeyword(name string) Parameter { return signature.RequiredKeyword(name) }

// Gradients wraps f so that calling the result returns the gradient of f
// with respect to every parameter.
func Gradients(sig *Signature, f Target, opts ...autodiff.Option) Func {
	return gradients.Gradients(sig, f, opts...)
}

// ValueAndGradients is Gradients that also returns f's value.
func ValueAndGradients(sig *Signature, f Target, opts ...autodiff.Option) ValueFunc {
	return gradients.ValueAndGradients(sig, f, opts...)
}
