// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff_test

import (
	"os"
	"testing"

	"github.com/born-ml/adjoint/autodiff"
	"github.com/born-ml/adjoint/linalg"
	"github.com/born-ml/adjoint/ndimage"
	"github.com/born-ml/adjoint/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := autodiff.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestInit_Twice(t *testing.T) {
	assert.True(t, autodiff.Default().Frozen())
	assert.ErrorIs(t, autodiff.Init(), autodiff.ErrRegistryFrozen)
}

func TestGrad_DefaultRegistry(t *testing.T) {
	grad := autodiff.Grad(func(x any) (*autodiff.Node, error) {
		v := x.(*autodiff.Node)
		return autodiff.Sum(autodiff.Mul(v, v)), nil
	})
	g, err := grad(tensor.Vector(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6}, g.(*tensor.Array).Data())
}

func TestRuleSetsInstalled(t *testing.T) {
	x := tensor.Randn(tensor.NewRand(2), tensor.Shape{6})
	grad := autodiff.Grad(func(x any) (*autodiff.Node, error) {
		y := ndimage.Laplace(x.(*autodiff.Node), ndimage.Reflect)
		return autodiff.Sum(autodiff.Tanh(y)), nil
	})
	_, err := grad(x)
	require.NoError(t, err)

	lu := linalg.Bandwidths{Lower: 0, Upper: 0}
	solve := autodiff.Grad(func(x any) (*autodiff.Node, error) {
		b := x.(*autodiff.Node)
		return autodiff.Sum(linalg.SolveBanded(lu, autodiff.Const(tensor.Full(tensor.Shape{1, 2}, 2)), b)), nil
	})
	g, err := solve(tensor.Vector(1, 1))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, g.(*tensor.Array).Data(), 1e-12)
}

func TestJVP(t *testing.T) {
	_, tan, err := autodiff.JVP(func(x any) (*autodiff.Node, error) {
		return autodiff.Exp(x.(*autodiff.Node)), nil
	}, tensor.Vector(0, 1), tensor.Vector(1, 1))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2.718281828459045}, tan.Value().Data(), 1e-12)
}
