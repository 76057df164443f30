// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alg

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// InnerProduct implements (u, v)_X = uᵀ⋅X⋅v with a parameter-independent symmetric
// positive-definite X. A nil X means the Euclidean product
type InnerProduct struct {
	X Matrix
}

// Apply returns X⋅v
func (o InnerProduct) Apply(v []float64) []float64 {
	if o.X == nil {
		return VecCopy(1, v)
	}
	return MulVec(o.X, v)
}

// Dot returns (u, v)_X
func (o InnerProduct) Dot(u, v []float64) float64 {
	if o.X == nil {
		return floats.Dot(u, v)
	}
	return floats.Dot(u, o.Apply(v))
}

// Norm returns sqrt((v, v)_X)
func (o InnerProduct) Norm(v []float64) float64 {
	return math.Sqrt(math.Max(0, o.Dot(v, v)))
}

// Dim returns the dimension of X or -1 for the Euclidean product
func (o InnerProduct) Dim() int {
	if o.X == nil {
		return -1
	}
	m, _ := o.X.Dims()
	return m
}
