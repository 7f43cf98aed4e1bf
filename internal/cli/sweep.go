package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/backend/cpu"
	"github.com/born-ml/adjoint/internal/gradcheck"
	"github.com/born-ml/adjoint/internal/rules/ndimage"
	"github.com/born-ml/adjoint/internal/tensor"
)

// ErrInvalidSweep is returned for sweep files that cannot be run.
var ErrInvalidSweep = errors.New("invalid sweep")

// baseShape holds the axis lengths of the checked inputs; an n-d case uses
// the first n.
var baseShape = tensor.Shape{10, 11, 12}

// Sweep is the YAML description of a gradient check run. Zero values fall
// back to gradcheck.DefaultConfig.
type Sweep struct {
	Order int     `yaml:"order"`
	Eps   float64 `yaml:"eps"`
	RTol  float64 `yaml:"rtol"`
	ATol  float64 `yaml:"atol"`
	Seed  uint64  `yaml:"seed"`
	Cases []Case  `yaml:"cases"`
}

// Case selects one filter over a set of dimensionalities and modes.
//
// Empty Dims means 1, 2 and 3. Empty Modes means every boundary mode for
// filters that take one. Empty Check means both directions when the filter
// has a forward rule and reverse only otherwise.
type Case struct {
	Filter string   `yaml:"filter"`
	Dims   []int    `yaml:"dims"`
	Modes  []string `yaml:"modes"`
	Check  []string `yaml:"check"`
}

// Run is one expanded sweep entry.
type Run struct {
	Name   string
	Rule   ndimage.FilterRule
	NDim   int
	Mode   cpu.Mode
	Checks []gradcheck.Mode
}

// ExpectPass reports whether every check of the run should pass. Forward
// rules re-apply the filter and are exact in every mode, so only a reverse
// check can be expected to fail.
func (r Run) ExpectPass() bool {
	if !slices.Contains(r.Checks, gradcheck.Reverse) {
		return true
	}
	return r.Rule.ExactFor(r.params())
}

// LoadSweep reads and parses a sweep file.
func LoadSweep(path string) (*Sweep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sweep file: %w", err)
	}
	return ParseSweep(data)
}

// ParseSweep parses a YAML sweep, rejecting unknown fields.
func ParseSweep(data []byte) (*Sweep, error) {
	var s Sweep
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(s.Cases) == 0 {
		return nil, fmt.Errorf("%w: no cases", ErrInvalidSweep)
	}
	return &s, nil
}

// DefaultSweep checks every filter in every dimensionality and mode.
func DefaultSweep() *Sweep {
	s := &Sweep{}
	for _, r := range ndimage.Rules() {
		s.Cases = append(s.Cases, Case{Filter: r.Name})
	}
	return s
}

// Config returns the gradcheck configuration of the sweep.
func (s *Sweep) Config() gradcheck.Config {
	cfg := gradcheck.DefaultConfig()
	if s.Order != 0 {
		cfg.Order = s.Order
	}
	if s.Eps != 0 {
		cfg.Eps = s.Eps
	}
	if s.RTol != 0 {
		cfg.RTol = s.RTol
	}
	if s.ATol != 0 {
		cfg.ATol = s.ATol
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	return cfg
}

// Expand lists the runs of every case, in file order.
func (s *Sweep) Expand() ([]Run, error) {
	var runs []Run
	for i, c := range s.Cases {
		expanded, err := c.expand()
		if err != nil {
			return nil, fmt.Errorf("%w: case %d: %w", ErrInvalidSweep, i, err)
		}
		runs = append(runs, expanded...)
	}
	return runs, nil
}

func (c Case) expand() ([]Run, error) {
	rule, ok := ndimage.Lookup(c.Filter)
	if !ok {
		return nil, fmt.Errorf("unknown filter %q", c.Filter)
	}

	dims := c.Dims
	if len(dims) == 0 {
		dims = []int{1, 2, 3}
	}
	for _, d := range dims {
		if d < 1 || d > len(baseShape) {
			return nil, fmt.Errorf("%s: dims must be between 1 and %d, got %d", c.Filter, len(baseShape), d)
		}
	}

	var modes []cpu.Mode
	switch {
	case !rule.HasMode() && len(c.Modes) > 0:
		return nil, fmt.Errorf("%s takes no boundary mode", c.Filter)
	case !rule.HasMode():
		modes = []cpu.Mode{""}
	case len(c.Modes) == 0:
		modes = cpu.Modes
	default:
		for _, name := range c.Modes {
			m, err := cpu.ParseMode(name)
			if err != nil {
				return nil, err
			}
			modes = append(modes, m)
		}
	}

	checks := []gradcheck.Mode{gradcheck.Reverse}
	if rule.JVPSame {
		checks = []gradcheck.Mode{gradcheck.Forward, gradcheck.Reverse}
	}
	if len(c.Check) > 0 {
		checks = nil
		for _, name := range c.Check {
			m, err := gradcheck.ParseMode(name)
			if err != nil {
				return nil, err
			}
			if m == gradcheck.Forward && !rule.JVPSame {
				return nil, fmt.Errorf("%s has no forward rule", c.Filter)
			}
			checks = append(checks, m)
		}
	}

	var runs []Run
	for _, d := range dims {
		for _, m := range modes {
			name := fmt.Sprintf("%s/%dd", c.Filter, d)
			if m != "" {
				name += "/" + string(m)
			}
			runs = append(runs, Run{Name: name, Rule: rule, NDim: d, Mode: m, Checks: checks})
		}
	}
	return runs, nil
}

// checkString renders the check directions, e.g. "fwd,rev".
func checkString(modes []gradcheck.Mode) string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, ",")
}

// perAxis returns 1, 2, ..., ndim scaled by step.
func perAxis(ndim int, step float64) []float64 {
	out := make([]float64, ndim)
	for i := range out {
		out[i] = step * float64(i+1)
	}
	return out
}

// input returns the seeded random argument of a run.
func (r Run) input(seed uint64) *tensor.Array {
	shape := baseShape[:r.NDim].Clone()
	if r.Rule.Name == "fourier_shift" {
		shape = append(shape, 2)
	}
	return tensor.Randn(tensor.NewRand(seed+uint64(r.NDim)), shape)
}

// uniformSize is the window of every uniform_filter run.
var uniformSize = []int{3}

// params returns the parameters the run's filter is traced with. Fourier
// filters take no boundary mode and return nil.
func (r Run) params() any {
	switch r.Rule.Name {
	case "gaussian_filter", "gaussian_laplace":
		return ndimage.GaussianParams{Sigma: perAxis(r.NDim, 1), Mode: r.Mode, Truncate: cpu.DefaultGaussianOptions().Truncate}
	case "laplace":
		return ndimage.LaplaceParams{Mode: r.Mode}
	case "uniform_filter":
		return ndimage.UniformParams{Size: uniformSize, Mode: r.Mode}
	case "prewitt":
		return ndimage.EdgeParams{Axis: 0, Mode: r.Mode}
	case "sobel":
		return ndimage.EdgeParams{Axis: -1, Mode: r.Mode}
	default:
		return nil
	}
}

// filter returns the traced filter of a run.
func (r Run) filter() gradcheck.Func {
	ndim, mode := r.NDim, r.Mode
	var apply func(x *autodiff.Node) *autodiff.Node
	switch r.Rule.Name {
	case "gaussian_filter":
		apply = func(x *autodiff.Node) *autodiff.Node { return ndimage.GaussianFilter(x, perAxis(ndim, 1), mode) }
	case "gaussian_laplace":
		apply = func(x *autodiff.Node) *autodiff.Node { return ndimage.GaussianLaplace(x, perAxis(ndim, 1), mode) }
	case "laplace":
		apply = func(x *autodiff.Node) *autodiff.Node { return ndimage.Laplace(x, mode) }
	case "uniform_filter":
		apply = func(x *autodiff.Node) *autodiff.Node { return ndimage.UniformFilter(x, uniformSize, mode) }
	case "prewitt":
		apply = func(x *autodiff.Node) *autodiff.Node { return ndimage.Prewitt(x, 0, mode) }
	case "sobel":
		apply = func(x *autodiff.Node) *autodiff.Node { return ndimage.Sobel(x, -1, mode) }
	case "fourier_gaussian":
		apply = func(x *autodiff.Node) *autodiff.Node {
			return ndimage.FourierGaussian(x, perAxis(ndim, 1), cpu.RealSpectrum)
		}
	case "fourier_uniform":
		apply = func(x *autodiff.Node) *autodiff.Node {
			return ndimage.FourierUniform(x, perAxis(ndim, 1.5), cpu.RealSpectrum)
		}
	case "fourier_ellipsoid":
		apply = func(x *autodiff.Node) *autodiff.Node {
			return ndimage.FourierEllipsoid(x, perAxis(ndim, 2), cpu.RealSpectrum)
		}
	case "fourier_shift":
		apply = func(x *autodiff.Node) *autodiff.Node { return ndimage.FourierShift(x, perAxis(ndim, 0.7)) }
	default:
		panic(fmt.Sprintf("cli: no filter builder for %q", r.Rule.Name))
	}
	return func(xs []*autodiff.Node) *autodiff.Node { return apply(xs[0]) }
}
