package ndimage

import (
	"fmt"
	"slices"

	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/autodiff/ops"
	"github.com/born-ml/adjoint/internal/backend/cpu"
)

// Symmetry classifies how a filter relates to its adjoint.
type Symmetry int

const (
	// SelfAdjoint filters satisfy Fᵀ = F.
	SelfAdjoint Symmetry = iota
	// SignFlipAdjoint filters satisfy Fᵀ = -F.
	SignFlipAdjoint
	// ShiftAdjoint filters are adjoint to themselves with the shift negated.
	ShiftAdjoint
)

// String returns the class name.
func (s Symmetry) String() string {
	switch s {
	case SelfAdjoint:
		return "self-adjoint"
	case SignFlipAdjoint:
		return "sign-flip"
	case ShiftAdjoint:
		return "shift"
	default:
		return fmt.Sprintf("Symmetry(%d)", int(s))
	}
}

// FilterRule describes how one filter is differentiated.
type FilterRule struct {
	Name     string
	Symmetry Symmetry
	// JVPSame reports whether the forward rule re-applies the filter to the
	// tangent. Sign-flip filters have no forward rule.
	JVPSame bool
	// Modes lists the boundary modes for which the VJP is exact whatever the
	// other parameters are. Nil for filters without a boundary mode.
	Modes []cpu.Mode
	// NarrowModes lists further modes for which the VJP is exact only while
	// every kernel radius is at most one.
	NarrowModes []cpu.Mode
}

// Exact reports whether the rule's VJP is exact in the given mode for any
// parameters.
func (r FilterRule) Exact(mode cpu.Mode) bool {
	return r.Modes == nil || slices.Contains(r.Modes, mode)
}

// ExactFor reports whether the rule's VJP is exact for a call with the
// given parameters, as recorded in Call.Params.
func (r FilterRule) ExactFor(params any) bool {
	switch p := params.(type) {
	case GaussianParams:
		return r.Exact(p.Mode)
	case LaplaceParams:
		return r.Exact(p.Mode)
	case EdgeParams:
		return r.Exact(p.Mode)
	case UniformParams:
		if r.Exact(p.Mode) {
			return true
		}
		for _, size := range p.Size {
			if size > 3 {
				return false
			}
		}
		return slices.Contains(r.NarrowModes, p.Mode)
	default:
		return r.Modes == nil
	}
}

func (r FilterRule) clone() FilterRule {
	r.Modes = slices.Clone(r.Modes)
	r.NarrowModes = slices.Clone(r.NarrowModes)
	return r
}

// HasMode reports whether the filter takes a boundary mode.
func (r FilterRule) HasMode() bool {
	return r.Modes != nil
}

var (
	smoothModes  = []cpu.Mode{cpu.Reflect, cpu.Constant, cpu.Wrap}
	radius1Modes = []cpu.Mode{cpu.Reflect, cpu.Constant, cpu.Nearest, cpu.Wrap}
	edgeModes    = []cpu.Mode{cpu.Constant, cpu.Wrap}
	narrowModes  = []cpu.Mode{cpu.Nearest}
)

type entry struct {
	rule FilterRule
	prim *autodiff.Primitive
}

var table = []entry{
	{FilterRule{Name: "gaussian_filter", Symmetry: SelfAdjoint, JVPSame: true, Modes: smoothModes}, gaussianPrim},
	{FilterRule{Name: "gaussian_laplace", Symmetry: SelfAdjoint, JVPSame: true, Modes: smoothModes}, gaussianLaplacePrim},
	{FilterRule{Name: "laplace", Symmetry: SelfAdjoint, JVPSame: true, Modes: radius1Modes}, laplacePrim},
	{FilterRule{Name: "uniform_filter", Symmetry: SelfAdjoint, JVPSame: true, Modes: smoothModes, NarrowModes: narrowModes}, uniformPrim},
	{FilterRule{Name: "prewitt", Symmetry: SignFlipAdjoint, Modes: edgeModes}, prewittPrim},
	{FilterRule{Name: "sobel", Symmetry: SignFlipAdjoint, Modes: edgeModes}, sobelPrim},
	{FilterRule{Name: "fourier_gaussian", Symmetry: SelfAdjoint, JVPSame: true}, fourierGaussianPrim},
	{FilterRule{Name: "fourier_uniform", Symmetry: SelfAdjoint, JVPSame: true}, fourierUniformPrim},
	{FilterRule{Name: "fourier_ellipsoid", Symmetry: SelfAdjoint, JVPSame: true}, fourierEllipsoidPrim},
	{FilterRule{Name: "fourier_shift", Symmetry: ShiftAdjoint, JVPSame: true}, fourierShiftPrim},
}

// Rules returns the rule of every filter, in table order.
func Rules() []FilterRule {
	out := make([]FilterRule, len(table))
	for i, e := range table {
		out[i] = e.rule.clone()
	}
	return out
}

// Lookup returns the rule of the named filter.
func Lookup(name string) (FilterRule, bool) {
	for _, e := range table {
		if e.rule.Name == name {
			return e.rule.clone(), true
		}
	}
	return FilterRule{}, false
}

// Primitives returns the filter primitives, in table order.
func Primitives() []*autodiff.Primitive {
	out := make([]*autodiff.Primitive, len(table))
	for i, e := range table {
		out[i] = e.prim
	}
	return out
}

// adjoint returns the VJP of a filter of the given class.
func adjoint(s Symmetry) autodiff.VJPFunc {
	switch s {
	case SignFlipAdjoint:
		return func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node {
			return c.Prim.Apply(c.Params, ops.Neg(g))
		}
	case ShiftAdjoint:
		return func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node {
			return c.Prim.Apply(c.Params.(FourierParams).negated(), g)
		}
	default:
		return func(c *autodiff.Call, g *autodiff.Node) *autodiff.Node {
			return c.Prim.Apply(c.Params, g)
		}
	}
}

// Register installs the rules of every filter into r.
func Register(r *autodiff.Registry) error {
	for _, e := range table {
		if err := r.DefVJP(e.prim, adjoint(e.rule.Symmetry)); err != nil {
			return fmt.Errorf("ndimage: %w", err)
		}
		if !e.rule.JVPSame {
			continue
		}
		if err := r.DefJVP(e.prim, autodiff.Same); err != nil {
			return fmt.Errorf("ndimage: %w", err)
		}
	}
	return nil
}
