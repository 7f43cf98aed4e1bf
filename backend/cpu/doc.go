// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the untraced numerical kernels behind the
// differentiable primitives.
//
// # Overview
//
// This package implements, on plain arrays:
//   - Banded linear solves (LAPACK band storage, backed by gonum)
//   - Separable spatial filters with five boundary modes
//   - Fourier-domain filters on real or complex spectra
//
// Nothing here is traced; use the linalg and ndimage packages to
// differentiate through these kernels.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/adjoint/backend/cpu"
//	    "github.com/born-ml/adjoint/tensor"
//	)
//
//	func main() {
//	    x := tensor.Randn(tensor.NewRand(1), tensor.Shape{32, 32})
//	    y, err := cpu.GaussianFilter(x, []float64{2}, cpu.Reflect, cpu.DefaultGaussianOptions())
//	}
package cpu
