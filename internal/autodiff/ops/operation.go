// Package ops defines the elementary traced operations and their
// differentiation rules.
//
// Each operation is a Primitive with:
//   - Forward pass: computed on arrays by the internal/tensor helpers
//   - VJP rules: built from other operations, so they can be differentiated again
//   - JVP rules: likewise
//
// Supported operations:
//   - Add, Sub, Mul, Div: element-wise, same-shaped operands
//   - Neg, Scale: negation and multiplication by a constant
//   - Sum, BroadcastTo, Reshape: reductions and shape changes
//   - Exp, Log, Sin, Cos, Tanh: element-wise math
//
// Rules live in the registry passed to Register; operations can be traced
// without one, but differentiating them requires the rules.
package ops

import (
	"fmt"

	"github.com/born-ml/adjoint/internal/autodiff"
)

// rule pairs a primitive with its per-slot rules.
type rule struct {
	prim *autodiff.Primitive
	vjps []autodiff.VJPMaker
	jvps []autodiff.JVPRule
}

// rules is filled by the init functions of the operation files. Rules refer
// to the operation functions, which refer to the primitives, so they cannot
// be part of the primitives' own initializers.
var rules []rule

func define(p *autodiff.Primitive, vjps []autodiff.VJPMaker, jvps []autodiff.JVPRule) {
	rules = append(rules, rule{prim: p, vjps: vjps, jvps: jvps})
}

// Register installs the rules of every elementary operation into r.
func Register(r *autodiff.Registry) error {
	for _, rl := range rules {
		if err := r.DefVJP(rl.prim, rl.vjps...); err != nil {
			return fmt.Errorf("ops: %w", err)
		}
		if err := r.DefJVP(rl.prim, rl.jvps...); err != nil {
			return fmt.Errorf("ops: %w", err)
		}
	}
	return nil
}

// Primitives returns every elementary primitive, in definition order.
func Primitives() []*autodiff.Primitive {
	out := make([]*autodiff.Primitive, len(rules))
	for i, rl := range rules {
		out[i] = rl.prim
	}
	return out
}

// vjp is shorthand for building a maker list from plain functions.
func vjp(fns ...autodiff.VJPFunc) []autodiff.VJPMaker {
	out := make([]autodiff.VJPMaker, len(fns))
	for i, f := range fns {
		if f != nil {
			out[i] = f
		}
	}
	return out
}

// jvp is shorthand for building a rule list from plain functions.
func jvp(fns ...autodiff.JVPFunc) []autodiff.JVPRule {
	out := make([]autodiff.JVPRule, len(fns))
	for i, f := range fns {
		if f != nil {
			out[i] = f
		}
	}
	return out
}
