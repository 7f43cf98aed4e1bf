// Package rules collects the rule sets of the module so they can be
// installed into a registry in one call.
package rules

import (
	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/autodiff/ops"
	"github.com/born-ml/adjoint/internal/rules/linalg"
	"github.com/born-ml/adjoint/internal/rules/ndimage"
)

// Register installs the elementary, banded linear algebra and filter rules
// into r.
func Register(r *autodiff.Registry) error {
	for _, register := range []func(*autodiff.Registry) error{
		ops.Register,
		linalg.Register,
		ndimage.Register,
	} {
		if err := register(r); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a frozen registry holding every rule set.
func NewRegistry() (*autodiff.Registry, error) {
	r := autodiff.NewRegistry()
	if err := Register(r); err != nil {
		return nil, err
	}
	r.Freeze()
	return r, nil
}
