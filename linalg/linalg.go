// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg provides differentiable banded linear algebra.
//
// Band storage follows the LAPACK convention: a matrix with l sub-diagonals
// and u super-diagonals is held in an (l+u+1, n) array ab with
// a[i, j] = ab[u+i-j, j].
//
// Example:
//
//	lu := linalg.Bandwidths{Lower: 1, Upper: 1}
//	loss := func(x any) (*autodiff.Node, error) {
//	    args := x.([]any)
//	    ab, b := args[0].(*autodiff.Node), args[1].(*autodiff.Node)
//	    return autodiff.Sum(linalg.SolveBanded(lu, ab, b)), nil
//	}
//	grads, err := autodiff.Grad(loss)([]any{ab, b})
package linalg

import (
	"github.com/born-ml/adjoint/internal/autodiff"
	"github.com/born-ml/adjoint/internal/backend/cpu"
	"github.com/born-ml/adjoint/internal/rules/linalg"
)

// Bandwidths is the (l, u) pair of a banded matrix.
type Bandwidths = cpu.Bandwidths

// ErrSingular reports a banded system with no unique solution.
var ErrSingular = cpu.ErrSingular

// SolveBanded solves a·x = b for a banded matrix given in band storage.
// b is a vector of length n or an (n, k) matrix. The reverse rule covers
// both ab and b; the forward rule covers b only.
func SolveBanded(lu Bandwidths, ab, b *autodiff.Node) *autodiff.Node {
	return linalg.SolveBanded(lu, ab, b)
}

// TransposeBanded returns the band storage of the transposed matrix, whose
// bandwidths are lu.Swap().
func TransposeBanded(lu Bandwidths, ab *autodiff.Node) *autodiff.Node {
	return linalg.TransposeBanded(lu, ab)
}
