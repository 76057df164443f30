// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sparse implements sparse full-order operators on top of gosl triplets
package sparse

import (
	"github.com/JIMMY-KSU/RBniCS/alg"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/floats"
)

// Matrix is a sparse matrix in triplet format. Repeated (i,j) entries are summed
type Matrix struct {
	m, n int         // dimensions
	ii   []int       // row indices
	jj   []int       // column indices
	xx   []float64   // values
	t    *la.Triplet // triplet used by sparse BLAS and solvers
}

// NewMatrix allocates a new sparse matrix able to hold max entries (repetitions included)
func NewMatrix(m, n, max int) (o *Matrix) {
	o = new(Matrix)
	o.m, o.n = m, n
	o.ii = make([]int, 0, max)
	o.jj = make([]int, 0, max)
	o.xx = make([]float64, 0, max)
	o.t = la.NewTriplet(m, n, max)
	return
}

// Put adds an entry
func (o *Matrix) Put(i, j int, x float64) {
	o.t.Put(i, j, x)
	o.ii = append(o.ii, i)
	o.jj = append(o.jj, j)
	o.xx = append(o.xx, x)
}

// Len returns the number of stored entries
func (o *Matrix) Len() int {
	return len(o.xx)
}

// Triplet returns the underlying triplet
func (o *Matrix) Triplet() *la.Triplet {
	return o.t
}

// Dims returns the number of rows and columns
func (o *Matrix) Dims() (m, n int) {
	return o.m, o.n
}

// MulVecAdd computes y += α⋅A⋅x
func (o *Matrix) MulVecAdd(y []float64, α float64, x []float64) {
	tmp := la.NewVector(o.m)
	la.SpTriMatVecMul(tmp, o.t, x)
	floats.AddScaled(y, α, tmp)
}

// TrMulVecAdd computes y += α⋅Aᵀ⋅x
func (o *Matrix) TrMulVecAdd(y []float64, α float64, x []float64) {
	tmp := la.NewVector(o.n)
	la.SpTriMatTrVecMul(tmp, o.t, x)
	floats.AddScaled(y, α, tmp)
}

// Walk visits all stored entries
func (o *Matrix) Walk(fn func(i, j int, aij float64)) {
	for k, x := range o.xx {
		if x != 0 {
			fn(o.ii[k], o.jj[k], x)
		}
	}
}

// NewBuilder returns a builder of sparse matrices with the same dimensions
func (o *Matrix) NewBuilder() alg.Builder {
	return &builder{m: o.m, n: o.n}
}

// builder collects scaled entries and allocates the triplet at the end
type builder struct {
	m, n int
	ii   []int
	jj   []int
	xx   []float64
}

func (o *builder) Add(α float64, a alg.Matrix) {
	if α == 0 {
		return
	}
	a.Walk(func(i, j int, aij float64) {
		o.ii = append(o.ii, i)
		o.jj = append(o.jj, j)
		o.xx = append(o.xx, α*aij)
	})
}

func (o *builder) Matrix() alg.Matrix {
	res := NewMatrix(o.m, o.n, len(o.xx))
	for k, x := range o.xx {
		res.Put(o.ii[k], o.jj[k], x)
	}
	return res
}

// FromMatrix copies any alg.Matrix into a sparse matrix
func FromMatrix(a alg.Matrix) *Matrix {
	if s, ok := a.(*Matrix); ok {
		return s
	}
	m, n := a.Dims()
	b := &builder{m: m, n: n}
	b.Add(1, a)
	return b.Matrix().(*Matrix)
}
