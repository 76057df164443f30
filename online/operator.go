// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package online implements reduced operators and the online solvers
package online

import (
	"github.com/JIMMY-KSU/RBniCS/affine"
	"github.com/JIMMY-KSU/RBniCS/alg"
	"github.com/JIMMY-KSU/RBniCS/basis"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Operator holds the projections of the Q terms of an affine expansion onto a growing basis:
//  vectors:  f_q^N = Zᵀ⋅f_q          (length N)
//  matrices: A_q^N = Zᵀ⋅A_q⋅Z2       (N x N)
// Growing the basis by one vector only computes the new border row, column and corner
type Operator struct {
	Name string      // name of quantity
	Kind affine.Kind // kind of terms
	Q    int         // number of terms

	// data
	exp  *affine.Expansion // full-order terms; nil for operators loaded for online use only
	n    int               // current size
	mats [][][]float64     // [Q][n][n] reduced matrices
	vecs [][]float64       // [Q][n] reduced vectors
	az   [][][]float64     // [Q][n] cached products A_q⋅z2_j
}

// NewOperator returns an empty reduced operator for the given expansion
func NewOperator(exp *affine.Expansion) (o *Operator) {
	o = &Operator{Name: exp.Name, Kind: exp.Kind, Q: exp.Q(), exp: exp}
	o.Reset()
	return
}

// N returns the current size
func (o *Operator) N() int {
	return o.n
}

// Reset removes all blocks; the next Extend recomputes them from scratch
func (o *Operator) Reset() {
	o.n = 0
	o.mats = make([][][]float64, o.Q)
	o.vecs = make([][]float64, o.Q)
	o.az = make([][][]float64, o.Q)
}

// Extend projects the terms onto Z (and Z2 for matrices; nil => Z) up to N = Z.Len().
// The first N() vectors of Z and Z2 must be the ones used in previous calls
func (o *Operator) Extend(Z, Z2 basis.Basis) (err error) {
	if o.exp == nil {
		return chk.Err("reduced operator %q has no full-order terms to project: %w", o.Name, errs.ErrNotFound)
	}
	if Z2 == nil {
		Z2 = Z
	}
	nz := Z.Len()
	if Z2.Len() != nz {
		return chk.Err("reduced operator %q: bases have different lengths %d and %d: %w", o.Name, nz, Z2.Len(), errs.ErrDimensionMismatch)
	}
	if nz < o.n {
		return chk.Err("reduced operator %q has N=%d but basis has N=%d: %w", o.Name, o.n, nz, errs.ErrOutOfRange)
	}
	m, n := o.exp.Dims()
	for k := o.n; k < nz; k++ {
		if len(Z.At(k)) != m || (o.Kind == affine.MatrixKind && len(Z2.At(k)) != n) {
			return chk.Err("reduced operator %q: basis vector %d has length %d but terms are (%d x %d): %w", o.Name, k, len(Z.At(k)), m, n, errs.ErrDimensionMismatch)
		}
		if o.Kind == affine.MatrixKind {
			o.growMatrices(Z, Z2, k)
		} else {
			o.growVectors(Z, k)
		}
		o.n = k + 1
	}
	return
}

// growVectors appends z_k⋅f_q
func (o *Operator) growVectors(Z basis.Basis, k int) {
	zk := Z.At(k)
	for q := 0; q < o.Q; q++ {
		o.vecs[q] = append(o.vecs[q], floats.Dot(zk, o.exp.Vector(q)))
	}
}

// growMatrices appends the border row and column k
func (o *Operator) growMatrices(Z, Z2 basis.Basis, k int) {
	zk := Z.At(k)
	for q := 0; q < o.Q; q++ {
		A := o.exp.Matrix(q)

		// products A_q⋅z2_j (missing ones are recomputed; e.g. after loading)
		for j := len(o.az[q]); j <= k; j++ {
			o.az[q] = append(o.az[q], alg.MulVec(A, Z2.At(j)))
		}

		// new column: z_i⋅A_q⋅z2_k
		w := o.az[q][k]
		for i := 0; i < k; i++ {
			o.mats[q][i] = append(o.mats[q][i], floats.Dot(Z.At(i), w))
		}

		// new row: z_k⋅A_q⋅z2_j
		row := make([]float64, k+1)
		for j := 0; j <= k; j++ {
			row[j] = floats.Dot(zk, o.az[q][j])
		}
		o.mats[q] = append(o.mats[q], row)
	}
}

// Matrices returns copies of the leading (N x N) blocks of all terms
func (o *Operator) Matrices(N int) (res []*mat.Dense, err error) {
	if err = o.check(N, affine.MatrixKind); err != nil {
		return
	}
	res = make([]*mat.Dense, o.Q)
	for q := 0; q < o.Q; q++ {
		res[q] = mat.NewDense(N, N, nil)
		for i := 0; i < N; i++ {
			res[q].SetRow(i, o.mats[q][i][:N])
		}
	}
	return
}

// Vectors returns copies of the leading N entries of all terms
func (o *Operator) Vectors(N int) (res [][]float64, err error) {
	if err = o.check(N, affine.VectorKind); err != nil {
		return
	}
	res = make([][]float64, o.Q)
	for q := 0; q < o.Q; q++ {
		res[q] = append([]float64(nil), o.vecs[q][:N]...)
	}
	return
}

// check checks the kind and the requested size
func (o *Operator) check(N int, kind affine.Kind) error {
	if o.Kind != kind {
		return chk.Err("reduced operator %q holds terms of another kind: %w", o.Name, errs.ErrDimensionMismatch)
	}
	if N <= 0 || N > o.n {
		return chk.Err("reduced operator %q has N=%d; cannot return blocks of size %d: %w", o.Name, o.n, N, errs.ErrOutOfRange)
	}
	return nil
}
