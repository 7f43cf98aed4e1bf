// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package linalg_test

import (
	"testing"

	"github.com/born-ml/adjoint/autodiff"
	"github.com/born-ml/adjoint/internal/rules"
	"github.com/born-ml/adjoint/linalg"
	"github.com/born-ml/adjoint/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveBanded_Gradient(t *testing.T) {
	reg, err := rules.NewRegistry()
	require.NoError(t, err)

	lu := linalg.Bandwidths{Lower: 1, Upper: 1}
	ab, err := tensor.FromSlice([]float64{
		0, 1, 1,
		4, 4, 4,
		1, 1, 0,
	}, tensor.Shape{3, 3})
	require.NoError(t, err)
	b := tensor.Vector(6, 12, 14)

	loss := func(x any) (*autodiff.Node, error) {
		args := x.([]any)
		return autodiff.Sum(linalg.SolveBanded(lu, args[0].(*autodiff.Node), args[1].(*autodiff.Node))), nil
	}
	value, grads, err := autodiff.ValueAndGrad(loss, autodiff.WithRegistry(reg))([]any{ab, b})
	require.NoError(t, err)
	assert.InDelta(t, 6.0, value.Item(), 1e-12)

	// a is symmetric, so the gradient for b is the solution of a·s = 1.
	gb := grads.([]any)[1].(*tensor.Array)
	assert.InDeltaSlice(t, []float64{3.0 / 14, 2.0 / 14, 3.0 / 14}, gb.Data(), 1e-12)
}
