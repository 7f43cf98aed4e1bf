// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu_test

import (
	"testing"

	"github.com/born-ml/adjoint/backend/cpu"
	"github.com/born-ml/adjoint/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveBanded_Roundtrip(t *testing.T) {
	lu := cpu.Bandwidths{Lower: 1, Upper: 1}
	a, err := tensor.FromSlice([]float64{4, 1, 0, 1, 4, 1, 0, 1, 4}, tensor.Shape{3, 3})
	require.NoError(t, err)
	ab, err := cpu.ToBanded(lu, a)
	require.NoError(t, err)
	dense, err := cpu.FromBanded(lu, ab)
	require.NoError(t, err)
	assert.Equal(t, a.Data(), dense.Data())

	x, err := cpu.SolveBanded(lu, ab, tensor.Vector(6, 12, 14))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2, 3}, x.Data(), 1e-12)
}

func TestParseMode(t *testing.T) {
	m, err := cpu.ParseMode("wrap")
	require.NoError(t, err)
	assert.Equal(t, cpu.Wrap, m)
	_, err = cpu.ParseMode("grid-wrap")
	assert.ErrorIs(t, err, cpu.ErrInvalidParameter)
}
