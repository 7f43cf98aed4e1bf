package linalg

import (
	"fmt"

	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/autodiff/ops"
	"github.com/born-ml/adjoint/internal/backend/cpu"
)

// solveVJP builds the reverse rule of solve_banded for one input slot.
//
// Both slots need s = a⁻ᵀ·g, the solve against the transposed matrix:
//   - d/db:  s
//   - d/dab: -BandOuter(s, x), the band part of -s·xᵀ
type solveVJP struct {
	wrtAB bool
}

// solveContext is what a solve VJP keeps from its call. Building it does no
// numerical work; the transposed solve runs in Apply.
type solveContext struct {
	lu    cpu.Bandwidths
	ab    *autodiff.Node
	x     *autodiff.Node
	wrtAB bool
}

// MakeVJP implements autodiff.VJPMaker.
func (m solveVJP) MakeVJP(call *autodiff.Call) autodiff.VJPContext {
	return &solveContext{
		lu:    call.Params.(cpu.Bandwidths),
		ab:    call.Inputs[0],
		x:     call.Output,
		wrtAB: m.wrtAB,
	}
}

// Apply implements autodiff.VJPContext.
func (c *solveContext) Apply(g *autodiff.Node) *autodiff.Node {
	s := SolveBanded(c.lu.Swap(), TransposeBanded(c.lu, c.ab), g)
	if !c.wrtAB {
		return s
	}
	return ops.Neg(BandOuter(c.lu, s, c.x))
}

// bilinear returns the VJP of a primitive p(lu; u, v) that is linear in
// each operand, given the two adjoint maps.
func bilinear(
	wrtFirst func(lu cpu.Bandwidths, g, v *autodiff.Node) *autodiff.Node,
	wrtSecond func(lu cpu.Bandwidths, g, u *autodiff.Node) *autodiff.Node,
) []autodiff.VJPMaker {
	return []autodiff.VJPMaker{
		autodiff.VJPFunc(func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node {
			return wrtFirst(c.Params.(cpu.Bandwidths), g, c.Inputs[1])
		}),
		autodiff.VJPFunc(func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node {
			return wrtSecond(c.Params.(cpu.Bandwidths), g, c.Inputs[0])
		}),
	}
}

// Register installs the rules of every banded primitive into r.
func Register(r *autodiff.Registry) error {
	steps := []struct {
		prim *autodiff.Primitive
		vjps []autodiff.VJPMaker
		jvps []autodiff.JVPRule
	}{
		{
			// The solve is linear in b only; no forward rule for ab.
			prim: solvePrim,
			vjps: []autodiff.VJPMaker{solveVJP{wrtAB: true}, solveVJP{}},
			jvps: []autodiff.JVPRule{nil, autodiff.Same},
		},
		{
			prim: transposePrim,
			vjps: []autodiff.VJPMaker{autodiff.VJPFunc(func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node {
				return TransposeBanded(c.Params.(cpu.Bandwidths).Swap(), g)
			})},
			jvps: []autodiff.JVPRule{autodiff.Same},
		},
		{
			prim: outerPrim,
			vjps: bilinear(BandRowContract, BandColContract),
			jvps: []autodiff.JVPRule{autodiff.Same, autodiff.Same},
		},
		{
			// <h, R(g, x)> = <g, O(h, x)> = <C(g, h), x>
			prim: rowContractPrim,
			vjps: bilinear(
				func(lu cpu.Bandwidths, h, x *autodiff.Node) *autodiff.Node { return BandOuter(lu, h, x) },
				func(lu cpu.Bandwidths, h, g *autodiff.Node) *autodiff.Node { return BandColContract(lu, g, h) },
			),
			jvps: []autodiff.JVPRule{autodiff.Same, autodiff.Same},
		},
		{
			// <h, C(g, s)> = <g, O(s, h)> = <R(g, h), s>
			prim: colContractPrim,
			vjps: bilinear(
				func(lu cpu.Bandwidths, h, s *autodiff.Node) *autodiff.Node { return BandOuter(lu, s, h) },
				func(lu cpu.Bandwidths, h, g *autodiff.Node) *autodiff.Node { return BandRowContract(lu, g, h) },
			),
			jvps: []autodiff.JVPRule{autodiff.Same, autodiff.Same},
		},
	}
	for _, s := range steps {
		if err := r.DefVJP(s.prim, s.vjps...); err != nil {
			return fmt.Errorf("linalg: %w", err)
		}
		if err := r.DefJVP(s.prim, s.jvps...); err != nil {
			return fmt.Errorf("linalg: %w", err)
		}
	}
	return nil
}

// Primitives returns the primitives this package defines.
func Primitives() []*autodiff.Primitive {
	return []*autodiff.Primitive{solvePrim, transposePrim, outerPrim, rowContractPrim, colContractPrim}
}
