// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import (
	"github.com/JIMMY-KSU/RBniCS/alg"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
)

// GramSchmidt orthonormalises candidates against a basis in the X inner product
type GramSchmidt struct {
	X   alg.InnerProduct // inner product
	Tol float64          // relative tolerance below which candidates are rejected; 0 => 1e-10
}

// Orthonormalize runs modified Gram-Schmidt on a copy of cand against all vectors of b in
// insertion order and normalises the result.
//  Output:
//   accepted -- false if ‖residual‖ < Tol⋅‖cand‖ (cand is nearly in the span of b)
//   v        -- orthonormalised vector; nil if rejected
func (o *GramSchmidt) Orthonormalize(b Basis, cand []float64) (accepted bool, v []float64, err error) {

	// check
	if b.Len() > 0 && len(b.At(0)) != len(cand) {
		return false, nil, chk.Err("cannot orthonormalise candidate of length %d against basis of dim %d: %w", len(cand), len(b.At(0)), errs.ErrDimensionMismatch)
	}
	tol := o.Tol
	if tol <= 0 {
		tol = 1e-10
	}

	// norm of candidate
	v = alg.VecCopy(1, cand)
	nrm0 := o.X.Norm(v)
	if nrm0 == 0 {
		return false, nil, nil
	}

	// remove projections using the updated residual
	nrm := o.sweep(b, v)

	// second sweep after heavy cancellation
	if nrm < 0.7*nrm0 {
		nrm = o.sweep(b, v)
	}

	// reject or normalise
	if nrm <= tol*nrm0 {
		return false, nil, nil
	}
	floats.Scale(1/nrm, v)
	return true, v, nil
}

// Enrich orthonormalises a weighted copy of cand and appends it.
// A rejected candidate returns an error wrapping errs.ErrDegenerateCandidate and leaves the set
// unchanged
func (o *GramSchmidt) Enrich(set *Set, cand []float64, weight ...float64) error {
	r, err := set.prepare(cand, weight...)
	if err != nil {
		return err
	}
	accepted, v, err := o.Orthonormalize(set, r)
	if err != nil {
		return err
	}
	if !accepted {
		return chk.Err("candidate is in the span of basis %q with N=%d: %w", set.Name, set.Len(), errs.ErrDegenerateCandidate)
	}
	set.push(v)
	return nil
}

// sweep subtracts (v, b_i)_X⋅b_i from v for each i and returns ‖v‖_X
func (o *GramSchmidt) sweep(b Basis, v []float64) float64 {
	for i := 0; i < b.Len(); i++ {
		z := b.At(i)
		floats.AddScaled(v, -o.X.Dot(z, v), z)
	}
	return o.X.Norm(v)
}
