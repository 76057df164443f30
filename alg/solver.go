// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alg

import (
	"errors"
	"math"

	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Solver solves full-order linear systems A⋅x = b
type Solver interface {
	Solve(a Matrix, b []float64) (x []float64, err error)
}

// DenseLU solves full-order systems with gonum's LU decomposition
type DenseLU struct {
	PivotTol float64 // relative pivot tolerance; 0 => 1e-14
}

// Solve solves A⋅x = b
func (o DenseLU) Solve(a Matrix, b []float64) (x []float64, err error) {
	m, n := a.Dims()
	if m != n || len(b) != m {
		return nil, chk.Err("dense LU: cannot solve (%d x %d) system with len(b)=%d: %w", m, n, len(b), errs.ErrDimensionMismatch)
	}
	var lu mat.LU
	lu.Factorize(ToDense(a))
	tol := o.PivotTol
	if tol <= 0 {
		tol = 1e-14
	}
	if p := RelPivot(&lu); p <= tol {
		return nil, chk.Err("dense LU: relative pivot %g is below %g: %w", p, tol, errs.ErrSingularSystem)
	}
	return LUSolve(&lu, b)
}

// RelPivot returns min|U_ii| / max|U_ii| of a factorized LU
func RelPivot(lu *mat.LU) float64 {
	var u mat.TriDense
	lu.UTo(&u)
	n, _ := u.Dims()
	lo, hi := math.Inf(1), 0.0
	for i := 0; i < n; i++ {
		d := math.Abs(u.At(i, i))
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	if hi == 0 || math.IsNaN(lo) {
		return 0
	}
	return lo / hi
}

// LUSolve solves with a factorized LU. Ill-conditioning that still yields a solution is accepted
func LUSolve(lu *mat.LU, b []float64) (x []float64, err error) {
	n := len(b)
	var res mat.VecDense
	err = lu.SolveVecTo(&res, false, mat.NewVecDense(n, append([]float64(nil), b...)))
	if err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, chk.Err("LU solve failed: %v: %w", err, errs.ErrSingularSystem)
		}
	}
	x = make([]float64, n)
	copy(x, res.RawVector().Data)
	return x, nil
}
