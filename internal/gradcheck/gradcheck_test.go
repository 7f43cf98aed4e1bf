package gradcheck

import (
	"testing"

	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/autodiff/ops"
	"github.com/born-ml/adjoint/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) *autodiff.Registry {
	t.Helper()
	reg := autodiff.NewRegistry()
	require.NoError(t, ops.Register(reg))
	return reg
}

// doublePrim computes 2x.
var doublePrim = autodiff.NewPrimitive("double", 1, func(_ any, in ...*tensor.Array) (*tensor.Array, error) {
	return tensor.Scale(in[0], 2), nil
})

func double(xs []*autodiff.Node) *autodiff.Node {
	return doublePrim.Apply(nil, xs[0])
}

func TestCheck_SmoothFunction(t *testing.T) {
	reg := newRegistry(t)
	f := func(xs []*autodiff.Node) *autodiff.Node {
		return ops.Mul(ops.Exp(ops.Scale(xs[0], 0.3)), ops.Sin(xs[1]))
	}
	rng := tensor.NewRand(2)
	args := []*tensor.Array{tensor.Randn(rng, tensor.Shape{3, 2}), tensor.Randn(rng, tensor.Shape{3, 2})}

	cfg := DefaultConfig()
	require.NoError(t, Check(f, args, cfg, autodiff.WithRegistry(reg)))

	cfg.Order = 3
	cfg.RTol = 1e-4
	cfg.ATol = 1e-5
	require.NoError(t, Check(f, args, cfg, autodiff.WithRegistry(reg)))
}

func TestCheck_ScalarOutput(t *testing.T) {
	reg := newRegistry(t)
	f := func(xs []*autodiff.Node) *autodiff.Node {
		return ops.Sum(ops.Mul(xs[0], ops.Tanh(xs[0])))
	}
	args := []*tensor.Array{tensor.Vector(0.1, -0.4, 0.9)}
	require.NoError(t, Check(f, args, DefaultConfig(), autodiff.WithRegistry(reg)))
}

func TestCheck_WrongReverseRule(t *testing.T) {
	reg := newRegistry(t)
	identity := autodiff.VJPFunc(func(_ *autodiff.Call, g *autodiff.Node) *autodiff.Node { return g })
	require.NoError(t, reg.DefVJP(doublePrim, identity))
	require.NoError(t, reg.DefJVP(doublePrim, autodiff.Same))

	args := []*tensor.Array{tensor.Vector(1, 2, 3)}
	cfg := DefaultConfig()
	cfg.Order = 1

	cfg.Modes = []Mode{Forward}
	require.NoError(t, Check(double, args, cfg, autodiff.WithRegistry(reg)))

	cfg.Modes = []Mode{Reverse}
	err := Check(double, args, cfg, autodiff.WithRegistry(reg))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMismatch)

	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, Reverse, mismatch.Mode)
	assert.Equal(t, 1, mismatch.Order)
	assert.Equal(t, -1, mismatch.Index)
	assert.InDelta(t, 2*mismatch.Got, mismatch.Want, 1e-6)
}

func TestCheck_MissingForwardRule(t *testing.T) {
	reg := newRegistry(t)
	twice := autodiff.VJPFunc(func(_ *autodiff.Call, g *autodiff.Node) *autodiff.Node { return ops.Scale(g, 2) })
	require.NoError(t, reg.DefVJP(doublePrim, twice))

	args := []*tensor.Array{tensor.Vector(1, 2, 3)}
	cfg := DefaultConfig()

	cfg.Modes = []Mode{Reverse}
	require.NoError(t, Check(double, args, cfg, autodiff.WithRegistry(reg)))

	cfg.Modes = []Mode{Forward, Reverse}
	err := Check(double, args, cfg, autodiff.WithRegistry(reg))
	assert.ErrorIs(t, err, autodiff.ErrNoJVP)
	assert.NotErrorIs(t, err, ErrMismatch)
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no modes", func(c *Config) { c.Modes = nil }},
		{"unknown mode", func(c *Config) { c.Modes = []Mode{"sideways"} }},
		{"order zero", func(c *Config) { c.Order = 0 }},
		{"zero eps", func(c *Config) { c.Eps = 0 }},
		{"negative tolerance", func(c *Config) { c.RTol = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("rev")
	require.NoError(t, err)
	assert.Equal(t, Reverse, m)

	_, err = ParseMode("both")
	assert.Error(t, err)
}
