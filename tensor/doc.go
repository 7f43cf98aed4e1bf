// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 arrays the differentiation
// transforms operate on.
//
// # Overview
//
// An Array is a row-major n-dimensional array. Every operation allocates
// its result, so arrays handed to the transforms are never modified.
//
// # Basic Usage
//
//	import "github.com/born-ml/adjoint/tensor"
//
//	func main() {
//	    x := tensor.Vector(1, 2, 3)
//	    m, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	    r := tensor.Randn(tensor.NewRand(1), tensor.Shape{3, 4})
//	}
//
// Shape mismatches are reported with errors wrapping ErrDimension.
package tensor
