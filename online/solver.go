// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package online

import (
	"math"
	"sort"

	"github.com/JIMMY-KSU/RBniCS/affine"
	"github.com/JIMMY-KSU/RBniCS/alg"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// System holds an assembled reduced system L⋅u = r
type System struct {
	N     int        // size
	L     *mat.Dense // left-hand side
	R     []float64  // right-hand side
	Scale float64    // Σ |θ_q| max|A_q|; reference magnitude for the pivot check
}

// Solver assembles and solves reduced systems. It holds no state and can be shared by goroutines
type Solver struct {
	PivotTol float64 // relative pivot tolerance; 0 => 1e-13
}

// Assemble combines Σ θ_q A_q^N over all matrix operators and Σ θ_q f_q^N over all vector operators.
// Operators are visited in sorted order of names so results do not depend on map ordering
func (o *Solver) Assemble(ops map[string]*Operator, thetas map[string][]float64, N int) (sys *System, err error) {
	if N < 1 {
		return nil, chk.Err("reduced system size must be at least 1. N=%d is invalid: %w", N, errs.ErrOutOfRange)
	}
	sys = &System{N: N, L: mat.NewDense(N, N, nil), R: make([]float64, N)}
	var nmat int
	for _, name := range sortedNames(ops) {
		op := ops[name]
		θ, ok := thetas[name]
		if !ok {
			return nil, chk.Err("coefficients of quantity %q are missing: %w", name, errs.ErrDimensionMismatch)
		}
		if len(θ) != op.Q {
			return nil, chk.Err("quantity %q has Q=%d terms but %d coefficients were given: %w", name, op.Q, len(θ), errs.ErrDimensionMismatch)
		}
		if op.Kind == affine.MatrixKind {
			var scale float64
			if scale, err = addMatrices(sys.L, op, θ, N, 1); err != nil {
				return nil, err
			}
			sys.Scale += scale
			nmat++
		} else {
			if err = addVectors(sys.R, op, θ, N, 1); err != nil {
				return nil, err
			}
		}
	}
	if nmat == 0 {
		return nil, chk.Err("reduced system has no left-hand side operator: %w", errs.ErrNotFound)
	}
	return
}

// Solve assembles and solves the reduced system of size N at μ
func (o *Solver) Solve(ops map[string]*Operator, thetas map[string][]float64, N int, μ []float64) (u []float64, err error) {
	sys, err := o.Assemble(ops, thetas, N)
	if err != nil {
		return
	}
	return o.SolveSystem(sys, μ)
}

// SolveSystem solves an assembled system. N = 1 is solved by a scalar division.
// Returns *errs.SingularError if the relative pivot is not above PivotTol
func (o *Solver) SolveSystem(sys *System, μ []float64) (u []float64, err error) {
	tol := o.PivotTol
	if tol <= 0 {
		tol = 1e-13
	}
	if len(sys.R) != sys.N {
		return nil, chk.Err("reduced system has N=%d but len(rhs)=%d: %w", sys.N, len(sys.R), errs.ErrDimensionMismatch)
	}
	if sys.N == 1 {
		a := sys.L.At(0, 0)
		scale := sys.Scale
		if scale == 0 {
			scale = 1
		}
		if p := math.Abs(a) / scale; !(p > tol) {
			return nil, &errs.SingularError{N: 1, Mu: μ, Pivot: p}
		}
		return []float64{sys.R[0] / a}, nil
	}
	var lu mat.LU
	lu.Factorize(sys.L)
	if p := alg.RelPivot(&lu); !(p > tol) {
		return nil, &errs.SingularError{N: sys.N, Mu: μ, Pivot: p}
	}
	u, err = alg.LUSolve(&lu, sys.R)
	if err != nil {
		return nil, &errs.SingularError{N: sys.N, Mu: μ}
	}
	return
}

// addMatrices adds α Σ θ_q A_q^N to L and returns Σ |αθ_q| max|A_q^N|
func addMatrices(L *mat.Dense, op *Operator, θ []float64, N int, α float64) (scale float64, err error) {
	blocks, err := op.Matrices(N)
	if err != nil {
		return
	}
	for q, b := range blocks {
		c := α * θ[q]
		if c == 0 {
			continue
		}
		var tmp mat.Dense
		tmp.Scale(c, b)
		L.Add(L, &tmp)
		scale += math.Abs(c) * mat.Norm(b, math.Inf(1))
	}
	return
}

// addVectors adds α Σ θ_q f_q^N to r
func addVectors(r []float64, op *Operator, θ []float64, N int, α float64) (err error) {
	blocks, err := op.Vectors(N)
	if err != nil {
		return
	}
	for q, b := range blocks {
		c := α * θ[q]
		for i := 0; i < N; i++ {
			r[i] += c * b[i]
		}
	}
	return
}

// sortedNames returns the keys of ops in increasing order
func sortedNames(ops map[string]*Operator) (names []string) {
	names = make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}
