// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alg

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Dense is a dense full-order matrix
type Dense struct {
	M *mat.Dense // data
}

// NewDense returns a new dense matrix; data is row-major and may be nil
func NewDense(m, n int, data []float64) *Dense {
	return &Dense{mat.NewDense(m, n, data)}
}

// NewDenseRows returns a new dense matrix from a [m][n] slice
func NewDenseRows(rows [][]float64) *Dense {
	m := len(rows)
	n := len(rows[0])
	o := NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		o.M.SetRow(i, rows[i])
	}
	return o
}

// Dims returns the number of rows and columns
func (o *Dense) Dims() (m, n int) {
	return o.M.Dims()
}

// MulVecAdd computes y += α⋅A⋅x
func (o *Dense) MulVecAdd(y []float64, α float64, x []float64) {
	m, _ := o.M.Dims()
	for i := 0; i < m; i++ {
		y[i] += α * floats.Dot(o.M.RawRowView(i), x)
	}
}

// TrMulVecAdd computes y += α⋅Aᵀ⋅x
func (o *Dense) TrMulVecAdd(y []float64, α float64, x []float64) {
	m, _ := o.M.Dims()
	for i := 0; i < m; i++ {
		if x[i] != 0 {
			floats.AddScaled(y, α*x[i], o.M.RawRowView(i))
		}
	}
}

// Walk visits all non-zero entries
func (o *Dense) Walk(fn func(i, j int, aij float64)) {
	m, _ := o.M.Dims()
	for i := 0; i < m; i++ {
		for j, v := range o.M.RawRowView(i) {
			if v != 0 {
				fn(i, j, v)
			}
		}
	}
}

// NewBuilder returns a builder of dense matrices with the same dimensions
func (o *Dense) NewBuilder() Builder {
	m, n := o.M.Dims()
	return &denseBuilder{NewDense(m, n, nil)}
}

// denseBuilder accumulates into a dense matrix
type denseBuilder struct {
	res *Dense
}

func (o *denseBuilder) Add(α float64, a Matrix) {
	if d, ok := a.(*Dense); ok {
		m, _ := o.res.M.Dims()
		for i := 0; i < m; i++ {
			floats.AddScaled(o.res.M.RawRowView(i), α, d.M.RawRowView(i))
		}
		return
	}
	a.Walk(func(i, j int, aij float64) {
		o.res.M.Set(i, j, o.res.M.At(i, j)+α*aij)
	})
}

func (o *denseBuilder) Matrix() Matrix {
	return o.res
}

// ToDense copies any Matrix into a new gonum dense matrix
func ToDense(a Matrix) *mat.Dense {
	if d, ok := a.(*Dense); ok {
		return mat.DenseCopyOf(d.M)
	}
	m, n := a.Dims()
	res := mat.NewDense(m, n, nil)
	a.Walk(func(i, j int, aij float64) {
		res.Set(i, j, res.At(i, j)+aij)
	})
	return res
}
