// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alg

import "gonum.org/v1/gonum/floats"

// VecCopy returns a new copy of v scaled by α
func VecCopy(α float64, v []float64) (res []float64) {
	res = make([]float64, len(v))
	floats.AddScaled(res, α, v)
	return
}

// VecCombine returns Σ θ[k]⋅vs[k]. All vectors must have the same length
func VecCombine(θ []float64, vs [][]float64) (res []float64) {
	if len(vs) == 0 {
		return
	}
	res = make([]float64, len(vs[0]))
	for k, v := range vs {
		if θ[k] != 0 {
			floats.AddScaled(res, θ[k], v)
		}
	}
	return
}
