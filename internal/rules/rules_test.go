package rules

import (
	"testing"

	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/autodiff/ops"
	"github.com/born-ml/adjoint/internal/rules/linalg"
	"github.com/born-ml/adjoint/internal/rules/ndimage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)
	assert.True(t, r.Frozen())

	for _, set := range [][]*autodiff.Primitive{ops.Primitives(), linalg.Primitives(), ndimage.Primitives()} {
		for _, p := range set {
			assert.True(t, r.HasVJP(p), p.Name())
		}
	}
	assert.ErrorIs(t, Register(r), autodiff.ErrRegistryFrozen)
}
