// Package gradcheck compares the derivatives an engine computes against
// central finite differences, in forward and reverse mode and to any order.
//
// Forward mode checks JVP(x, t) against (f(x+εt) - f(x-εt)) / 2ε.
// Reverse mode checks <VJP(u), v> against <u, (f(x+εv) - f(x-εv)) / 2ε>.
// Higher orders differentiate the derivative functions themselves:
//
//	fwd: (x, t) ↦ JVP(f)(x, t)
//	rev: x ↦ Σ_i <VJP(f)(x)(f(x))_i, w_i>   for fixed random w_i
//
// and check them recursively with one order less.
package gradcheck

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/autodiff/ops"
	"github.com/born-ml/adjoint/internal/tensor"
)

// Mode selects forward or reverse differentiation.
type Mode string

// Check modes.
const (
	Forward Mode = "fwd"
	Reverse Mode = "rev"
)

// ParseMode converts "fwd" or "rev" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Forward, Reverse:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("gradcheck: unknown mode %q (want fwd or rev)", s)
	}
}

// ErrMismatch reports derivatives that disagree with finite differences.
var ErrMismatch = errors.New("gradcheck: derivative mismatch")

// MismatchError describes a failed comparison.
type MismatchError struct {
	Mode  Mode
	Order int
	Got   float64 // engine value at the worst element, or the engine inner product
	Want  float64 // finite-difference counterpart
	Index int     // flat index of the worst element; -1 for inner products
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("gradcheck: %s order %d: inner product %.10g, finite differences give %.10g",
			e.Mode, e.Order, e.Got, e.Want)
	}
	return fmt.Sprintf("gradcheck: %s order %d: element %d is %.10g, finite differences give %.10g",
		e.Mode, e.Order, e.Index, e.Got, e.Want)
}

// Unwrap returns ErrMismatch.
func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}

// Config controls a check.
type Config struct {
	Modes []Mode
	Order int
	Eps   float64 // finite-difference step
	RTol  float64
	ATol  float64
	Seed  uint64 // random directions and cotangents
}

// DefaultConfig checks both modes to second order.
func DefaultConfig() Config {
	return Config{
		Modes: []Mode{Forward, Reverse},
		Order: 2,
		Eps:   1e-4,
		RTol:  1e-5,
		ATol:  1e-6,
		Seed:  0,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if len(c.Modes) == 0 {
		return errors.New("gradcheck: no modes")
	}
	for _, m := range c.Modes {
		if _, err := ParseMode(string(m)); err != nil {
			return err
		}
	}
	if c.Order < 1 {
		return fmt.Errorf("gradcheck: order must be at least 1, got %d", c.Order)
	}
	if !(c.Eps > 0) {
		return fmt.Errorf("gradcheck: eps must be positive, got %g", c.Eps)
	}
	if c.RTol < 0 || c.ATol < 0 {
		return fmt.Errorf("gradcheck: negative tolerance rtol=%g atol=%g", c.RTol, c.ATol)
	}
	return nil
}

// Func is a traced function of several array arguments.
type Func func(xs []*autodiff.Node) *autodiff.Node

// Check verifies f's derivatives at args. It returns a *MismatchError when
// a comparison fails and any engine error unchanged.
func Check(f Func, args []*tensor.Array, cfg Config, opts ...autodiff.Option) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c := &checker{cfg: cfg, rng: tensor.NewRand(cfg.Seed), opts: opts}
	return c.check(f, args, 1)
}

type checker struct {
	cfg  Config
	rng  *rand.Rand
	opts []autodiff.Option
}

func (c *checker) check(f Func, args []*tensor.Array, order int) error {
	for _, mode := range c.cfg.Modes {
		switch mode {
		case Forward:
			tangents := c.randomLike(args)
			if err := c.checkJVP(f, args, tangents, order); err != nil {
				return err
			}
			if order < c.cfg.Order {
				if err := c.check(jvpFunc(f, len(args), c.opts), append(append([]*tensor.Array(nil), args...), tangents...), order+1); err != nil {
					return err
				}
			}
		case Reverse:
			if err := c.checkVJP(f, args, order); err != nil {
				return err
			}
			if order < c.cfg.Order {
				if err := c.check(vjpFunc(f, c.randomLike(args), c.opts), args, order+1); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (c *checker) randomLike(args []*tensor.Array) []*tensor.Array {
	out := make([]*tensor.Array, len(args))
	for i, a := range args {
		out[i] = tensor.Randn(c.rng, a.Shape())
	}
	return out
}

// checkJVP compares the forward derivative along tangents with a central
// difference.
func (c *checker) checkJVP(f Func, args, tangents []*tensor.Array, order int) error {
	_, tan, err := autodiff.JVP(traced(f), pack(args), pack(tangents), c.opts...)
	if err != nil {
		return err
	}
	want, err := c.directional(f, args, tangents)
	if err != nil {
		return err
	}
	got := tan.Value()
	if !got.Shape().Equal(want.Shape()) {
		return fmt.Errorf("gradcheck: %w: tangent %v, output %v", tensor.ErrDimension, got.Shape(), want.Shape())
	}
	worst, worstExcess := -1, 0.0
	for i, g := range got.Data() {
		w := want.Data()[i]
		if excess := math.Abs(g-w) - c.tolerance(g, w); excess > worstExcess {
			worst, worstExcess = i, excess
		}
	}
	if worst >= 0 {
		return &MismatchError{Mode: Forward, Order: order, Got: got.Data()[worst], Want: want.Data()[worst], Index: worst}
	}
	return nil
}

// checkVJP compares <VJP(u), v> with <u, J·v> for a random cotangent u and
// random directions v.
func (c *checker) checkVJP(f Func, args []*tensor.Array, order int) error {
	out, pullback, err := autodiff.VJP(traced(f), pack(args), c.opts...)
	if err != nil {
		return err
	}
	u := tensor.Randn(c.rng, out.Shape())
	grads, err := pullback(u)
	if err != nil {
		return err
	}
	dirs := c.randomLike(args)

	got := 0.0
	for i, gi := range grads.([]any) {
		d, err := tensor.Dot(gi.(*tensor.Array), dirs[i])
		if err != nil {
			return err
		}
		got += d
	}
	jv, err := c.directional(f, args, dirs)
	if err != nil {
		return err
	}
	want, err := tensor.Dot(u, jv)
	if err != nil {
		return err
	}
	if math.Abs(got-want) > c.tolerance(got, want) {
		return &MismatchError{Mode: Reverse, Order: order, Got: got, Want: want, Index: -1}
	}
	return nil
}

func (c *checker) tolerance(a, b float64) float64 {
	return c.cfg.ATol + c.cfg.RTol*math.Max(math.Abs(a), math.Abs(b))
}

// directional returns (f(x+εd) - f(x-εd)) / 2ε.
func (c *checker) directional(f Func, args, dirs []*tensor.Array) (*tensor.Array, error) {
	eps := c.cfg.Eps
	shifted := func(sign float64) (*tensor.Array, error) {
		xs := make([]*tensor.Array, len(args))
		for i, a := range args {
			x, err := tensor.Add(a, tensor.Scale(dirs[i], sign*eps))
			if err != nil {
				return nil, err
			}
			xs[i] = x
		}
		out, err := autodiff.Eval(traced(f), pack(xs))
		if err != nil {
			return nil, err
		}
		return out.Value(), nil
	}
	plus, err := shifted(1)
	if err != nil {
		return nil, err
	}
	minus, err := shifted(-1)
	if err != nil {
		return nil, err
	}
	diff, err := tensor.Sub(plus, minus)
	if err != nil {
		return nil, err
	}
	return tensor.Scale(diff, 1/(2*eps)), nil
}

// jvpFunc returns (x, t) ↦ JVP(f)(x, t) for f of n arguments.
func jvpFunc(f Func, n int, opts []autodiff.Option) Func {
	return func(xs []*autodiff.Node) *autodiff.Node {
		primals, tangents := nodes(xs[:n]), nodes(xs[n:])
		_, tan, err := autodiff.JVP(traced(f), primals, tangents, opts...)
		if err != nil {
			panic(err)
		}
		return tan
	}
}

// vjpFunc returns x ↦ Σ_i <VJP(f)(x)(f(x))_i, w_i>.
func vjpFunc(f Func, weights []*tensor.Array, opts []autodiff.Option) Func {
	return func(xs []*autodiff.Node) *autodiff.Node {
		out, pullback, err := autodiff.VJP(traced(f), nodes(xs), opts...)
		if err != nil {
			panic(err)
		}
		grads, err := pullback(out)
		if err != nil {
			panic(err)
		}
		var total *autodiff.Node
		for i, gi := range grads.([]any) {
			term := ops.Dot(gi.(*autodiff.Node), autodiff.Const(weights[i]))
			if total == nil {
				total = term
			} else {
				total = autodiff.Add(total, term)
			}
		}
		return total
	}
}

// traced adapts f to the engine's single-argument form.
func traced(f Func) autodiff.Func {
	return func(x any) (*autodiff.Node, error) {
		items := x.([]any)
		xs := make([]*autodiff.Node, len(items))
		for i, item := range items {
			xs[i] = item.(*autodiff.Node)
		}
		return f(xs), nil
	}
}

func pack(arrays []*tensor.Array) []any {
	out := make([]any, len(arrays))
	for i, a := range arrays {
		out[i] = a
	}
	return out
}

func nodes(ns []*autodiff.Node) []any {
	out := make([]any, len(ns))
	for i, n := range ns {
		out[i] = n
	}
	return out
}
