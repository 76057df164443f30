// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package alg implements the full-order algebraic objects consumed by the reduction engine
package alg

// Matrix is a full-order (truth) operator. The reduction packages only need the capability set
// below; the concrete storage (dense, sparse) stays hidden behind it
type Matrix interface {
	Dims() (m, n int)                                // number of rows and columns
	MulVecAdd(y []float64, α float64, x []float64)   // y += α⋅A⋅x
	TrMulVecAdd(y []float64, α float64, x []float64) // y += α⋅Aᵀ⋅x
	Walk(fn func(i, j int, aij float64))             // visits all stored non-zero entries
	NewBuilder() Builder                             // returns a zeroed builder of the same kind
}

// Builder accumulates scaled matrices and then materialises a new Matrix
type Builder interface {
	Add(α float64, a Matrix) // accumulates α⋅a
	Matrix() Matrix          // returns the accumulated matrix
}

// MulVec returns y = A⋅x
func MulVec(a Matrix, x []float64) (y []float64) {
	m, _ := a.Dims()
	y = make([]float64, m)
	a.MulVecAdd(y, 1, x)
	return
}

// TrMulVec returns y = Aᵀ⋅x
func TrMulVec(a Matrix, x []float64) (y []float64) {
	_, n := a.Dims()
	y = make([]float64, n)
	a.TrMulVecAdd(y, 1, x)
	return
}

// SameDims tells whether a and b have the same dimensions
func SameDims(a, b Matrix) bool {
	ma, na := a.Dims()
	mb, nb := b.Dims()
	return ma == mb && na == nb
}
