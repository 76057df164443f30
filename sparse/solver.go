// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"github.com/JIMMY-KSU/RBniCS/alg"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Umfpack solves full-order sparse systems with UMFPACK
type Umfpack struct {
	Symmetric bool // use symmetric solver
	Verbose   bool // show solver messages
}

// Solve solves A⋅x = b. Failures in the factorisation are reported as singular systems
func (o Umfpack) Solve(a alg.Matrix, b []float64) (x []float64, err error) {

	// check
	m, n := a.Dims()
	if m != n || len(b) != m {
		return nil, chk.Err("umfpack: cannot solve (%d x %d) system with len(b)=%d: %w", m, n, len(b), errs.ErrDimensionMismatch)
	}
	sp := FromMatrix(a)
	if sp.Len() == 0 {
		return nil, chk.Err("umfpack: matrix has no entries: %w", errs.ErrSingularSystem)
	}

	// gosl solvers panic on failure
	defer func() {
		if r := recover(); r != nil {
			x = nil
			err = chk.Err("umfpack failed: %v: %w", r, errs.ErrSingularSystem)
		}
	}()

	// allocate, factorise and solve
	sol := la.NewSparseSolver("umfpack")
	defer sol.Free()
	sol.Init(sp.Triplet(), &la.SpArgs{Symmetric: o.Symmetric, Verbose: o.Verbose})
	sol.Fact()
	x = make([]float64, m)
	sol.Solve(x, b, false)
	return
}
