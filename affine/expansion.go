// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package affine implements the storage of affine expansions Σ θ_q(μ)⋅term_q
package affine

import (
	"github.com/JIMMY-KSU/RBniCS/alg"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
)

// Kind of affine terms
type Kind int

const (
	MatrixKind Kind = iota // bilinear forms; e.g. "a" stiffness, "m" mass
	VectorKind             // linear forms; e.g. "f" load
)

// Expansion holds the Q parameter-independent terms of one named quantity
type Expansion struct {
	Name string       // name of quantity; e.g. "a", "m", "f"
	Kind Kind         // kind of terms
	mats []alg.Matrix // [Q] matrix terms
	vecs [][]float64  // [Q] vector terms
	m, n int          // dimensions of terms (n == 1 for vectors)
}

// NewMatrixExpansion returns a new expansion of Q == len(terms) matrices with equal dimensions
func NewMatrixExpansion(name string, terms ...alg.Matrix) (o *Expansion, err error) {
	if len(terms) == 0 {
		return nil, chk.Err("affine expansion %q must have at least one term: %w", name, errs.ErrDimensionMismatch)
	}
	o = &Expansion{Name: name, Kind: MatrixKind, mats: terms}
	o.m, o.n = terms[0].Dims()
	for q, a := range terms {
		if !alg.SameDims(a, terms[0]) {
			m, n := a.Dims()
			return nil, chk.Err("term %d of %q is (%d x %d) but term 0 is (%d x %d): %w", q, name, m, n, o.m, o.n, errs.ErrDimensionMismatch)
		}
	}
	return
}

// NewVectorExpansion returns a new expansion of Q == len(terms) vectors with equal lengths
func NewVectorExpansion(name string, terms ...[]float64) (o *Expansion, err error) {
	if len(terms) == 0 {
		return nil, chk.Err("affine expansion %q must have at least one term: %w", name, errs.ErrDimensionMismatch)
	}
	o = &Expansion{Name: name, Kind: VectorKind, vecs: terms}
	o.m, o.n = len(terms[0]), 1
	for q, v := range terms {
		if len(v) != o.m {
			return nil, chk.Err("term %d of %q has length %d but term 0 has length %d: %w", q, name, len(v), o.m, errs.ErrDimensionMismatch)
		}
	}
	return
}

// Q returns the number of terms
func (o *Expansion) Q() int {
	if o.Kind == MatrixKind {
		return len(o.mats)
	}
	return len(o.vecs)
}

// Dims returns the dimensions of the terms; n == 1 for vectors
func (o *Expansion) Dims() (m, n int) {
	return o.m, o.n
}

// Matrix returns the matrix term q
func (o *Expansion) Matrix(q int) alg.Matrix {
	return o.mats[q]
}

// Vector returns the vector term q. The result must not be modified
func (o *Expansion) Vector(q int) []float64 {
	return o.vecs[q]
}

// AssembleMatrix returns a new matrix Σ θ_q⋅A_q
func (o *Expansion) AssembleMatrix(θ []float64) (alg.Matrix, error) {
	if err := o.checkTheta(θ, MatrixKind); err != nil {
		return nil, err
	}
	b := o.mats[0].NewBuilder()
	for q, a := range o.mats {
		b.Add(θ[q], a)
	}
	return b.Matrix(), nil
}

// AssembleVector returns a new vector Σ θ_q⋅f_q
func (o *Expansion) AssembleVector(θ []float64) ([]float64, error) {
	if err := o.checkTheta(θ, VectorKind); err != nil {
		return nil, err
	}
	return alg.VecCombine(θ, o.vecs), nil
}

// checkTheta checks the kind of terms and the length of θ
func (o *Expansion) checkTheta(θ []float64, kind Kind) error {
	if o.Kind != kind {
		return chk.Err("affine expansion %q holds terms of another kind: %w", o.Name, errs.ErrDimensionMismatch)
	}
	if len(θ) != o.Q() {
		return chk.Err("affine expansion %q has Q=%d terms but len(θ)=%d: %w", o.Name, o.Q(), len(θ), errs.ErrDimensionMismatch)
	}
	return nil
}
