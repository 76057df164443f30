// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"math"

	"github.com/JIMMY-KSU/RBniCS/affine"
	"github.com/JIMMY-KSU/RBniCS/alg"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
)

// TrueError computes ‖u(μ) − u_N(μ)‖_X with memoized truth solutions
type TrueError struct {
	Reduced  *ReducedProblem // reduced problem
	Relative bool            // divide by ‖u(μ)‖_X

	// memoized truth solutions
	sols  map[string][]float64
	trajs map[string][][]float64
}

// NewTrueError returns a new true-error indicator
func NewTrueError(r *ReducedProblem) *TrueError {
	return &TrueError{Reduced: r, sols: make(map[string][]float64), trajs: make(map[string][][]float64)}
}

// Truth returns the (memoized) truth solution at μ
func (o *TrueError) Truth(μ Parameter) (u []float64, err error) {
	key := μ.Key()
	if u, ok := o.sols[key]; ok {
		return u, nil
	}
	if u, err = o.Reduced.Truth.Solve(μ); err != nil {
		return
	}
	o.sols[key] = u
	return
}

// Trajectory returns the (memoized) truth trajectory at μ
func (o *TrueError) Trajectory(μ Parameter) (traj [][]float64, err error) {
	tp, ok := o.Reduced.Truth.(TimeProblem)
	if !ok {
		return nil, chk.Err("problem %q is not time dependent: %w", o.Reduced.Truth.Name(), errs.ErrNotFound)
	}
	key := μ.Key()
	if traj, ok := o.trajs[key]; ok {
		return traj, nil
	}
	if traj, err = tp.SolveTrajectory(μ); err != nil {
		return
	}
	o.trajs[key] = traj
	return
}

// Evaluate returns the error at μ with the whole current basis
func (o *TrueError) Evaluate(μ Parameter) (float64, error) {
	return o.Error(μ, o.Reduced.N())
}

// Error returns the error at μ using the first N basis vectors; N = 0 gives ‖u(μ)‖_X.
// For time problems, the max over all time steps is returned
func (o *TrueError) Error(μ Parameter, N int) (e float64, err error) {
	r := o.Reduced
	if err = r.SetMu(μ); err != nil {
		return
	}

	// time dependent
	if _, ok := r.Truth.(TimeProblem); ok {
		traj, e := o.Trajectory(μ)
		if e != nil {
			return 0, e
		}
		var trajN [][]float64
		if N > 0 {
			if trajN, err = r.SolveTrajectory(N); err != nil {
				return 0, err
			}
			if len(trajN) != len(traj) {
				return 0, chk.Err("reduced trajectory has %d steps but truth has %d: %w", len(trajN), len(traj), errs.ErrDimensionMismatch)
			}
		}
		var emax, umax float64
		for k, u := range traj {
			var uk []float64
			if N > 0 {
				uk = trajN[k]
			}
			ek, nk, e := o.diff(u, uk)
			if e != nil {
				return 0, e
			}
			emax, umax = math.Max(emax, ek), math.Max(umax, nk)
		}
		return o.scale(emax, umax), nil
	}

	// steady
	u, err := o.Truth(μ)
	if err != nil {
		return
	}
	var uN []float64
	if N > 0 {
		if uN, err = r.Solve(N); err != nil {
			return
		}
	}
	e, nu, err := o.diff(u, uN)
	if err != nil {
		return
	}
	return o.scale(e, nu), nil
}

// diff returns ‖u − Z⋅uN‖_X and ‖u‖_X
func (o *TrueError) diff(u, uN []float64) (e, nu float64, err error) {
	X := o.Reduced.X
	nu = X.Norm(u)
	if len(uN) == 0 {
		return nu, nu, nil
	}
	uh, err := o.Reduced.Reconstruct(uN)
	if err != nil {
		return
	}
	for i := range uh {
		uh[i] = u[i] - uh[i]
	}
	return X.Norm(uh), nu, nil
}

// scale applies the relative option
func (o *TrueError) scale(e, nu float64) float64 {
	if o.Relative && nu > 0 {
		return e / nu
	}
	return e
}

// term holds one affine term of the residual
type term struct {
	name string
	q    int
	mat  alg.Matrix
	vec  []float64
}

// ResidualEstimator computes the a posteriori estimate ‖r(u_N(μ); μ)‖_X' / α_LB(μ) of steady
// problems. The dual norm is expanded in products of the Riesz representers (in X) of the
// affine terms f_q and A_q⋅z_n; products involving z_n are computed once when the basis grows
type ResidualEstimator struct {
	Reduced *ReducedProblem // reduced problem
	XSolver alg.Solver      // solver for the X matrix

	// terms
	fterms []term
	aterms []term

	// Riesz representers and their products
	rf [][]float64        // [p] X⁻¹ f_p
	wa [][][]float64      // [a][n] A_a⋅z_n
	ra [][][]float64      // [a][n] X⁻¹ A_a⋅z_n
	ff [][]float64        // [p][p'] (R f_p, R f_p')_X
	fa [][][]float64      // [p][a][n] (R f_p, R A_a z_n)_X
	aa map[[4]int]float64 // (a, n, a', n') => (R A_a z_n, R A_a' z_n')_X
	n  int                // size of basis already processed
}

// NewResidualEstimator returns a residual estimator for the steady problem of r
//  xsolver -- solver for the X matrix; nil => dense LU
func NewResidualEstimator(r *ReducedProblem, xsolver alg.Solver) (o *ResidualEstimator, err error) {
	if _, ok := r.Truth.(TimeProblem); ok {
		return nil, chk.Err("residual estimator of time problem %q is not available: %w", r.Truth.Name(), errs.ErrNotFound)
	}
	o = &ResidualEstimator{Reduced: r, XSolver: xsolver, aa: make(map[[4]int]float64)}
	if o.XSolver == nil {
		o.XSolver = alg.DenseLU{}
	}
	for _, name := range sortedKeys(r.exps) {
		exp := r.exps[name]
		for q := 0; q < exp.Q(); q++ {
			if exp.Kind == affine.MatrixKind {
				o.aterms = append(o.aterms, term{name: name, q: q, mat: exp.Matrix(q)})
			} else {
				o.fterms = append(o.fterms, term{name: name, q: q, vec: exp.Vector(q)})
			}
		}
	}
	o.rf = make([][]float64, len(o.fterms))
	o.ff = make([][]float64, len(o.fterms))
	for p, t := range o.fterms {
		if o.rf[p], err = o.riesz(t.vec); err != nil {
			return nil, err
		}
	}
	for p, t := range o.fterms {
		o.ff[p] = make([]float64, len(o.fterms))
		for pp := range o.fterms {
			o.ff[p][pp] = dot(t.vec, o.rf[pp])
		}
	}
	o.wa = make([][][]float64, len(o.aterms))
	o.ra = make([][][]float64, len(o.aterms))
	o.fa = make([][][]float64, len(o.fterms))
	return o, o.Update()
}

// riesz returns X⁻¹⋅v
func (o *ResidualEstimator) riesz(v []float64) ([]float64, error) {
	X := o.Reduced.X.X
	if X == nil {
		return append([]float64(nil), v...), nil
	}
	return o.XSolver.Solve(X, v)
}

// Update computes the products involving new basis vectors
func (o *ResidualEstimator) Update() (err error) {
	Z := o.Reduced.Basis
	if Z.Len() < o.n {
		return chk.Err("residual estimator has processed N=%d but basis has N=%d: %w", o.n, Z.Len(), errs.ErrOutOfRange)
	}
	for n := o.n; n < Z.Len(); n++ {
		zn := Z.At(n)
		for a, t := range o.aterms {
			w := alg.MulVec(t.mat, zn)
			r, e := o.riesz(w)
			if e != nil {
				return e
			}
			o.wa[a] = append(o.wa[a], w)
			o.ra[a] = append(o.ra[a], r)
		}
		for p, t := range o.fterms {
			if o.fa[p] == nil {
				o.fa[p] = make([][]float64, len(o.aterms))
			}
			for a := range o.aterms {
				o.fa[p][a] = append(o.fa[p][a], dot(t.vec, o.ra[a][n]))
			}
		}
		for a := range o.aterms {
			for b := range o.aterms {
				for m := 0; m <= n; m++ {
					v := dot(o.wa[a][n], o.ra[b][m])
					o.aa[[4]int{a, n, b, m}] = v
					o.aa[[4]int{b, m, a, n}] = v
				}
			}
		}
		o.n = n + 1
	}
	return
}

// Evaluate returns the estimate at μ with the whole current basis
func (o *ResidualEstimator) Evaluate(μ Parameter) (float64, error) {
	return o.Estimate(μ, o.Reduced.N())
}

// Estimate returns the estimate at μ using the first N basis vectors
func (o *ResidualEstimator) Estimate(μ Parameter, N int) (Δ float64, err error) {
	r := o.Reduced
	if N > o.n {
		return 0, chk.Err("residual estimator has N=%d; cannot estimate with N=%d: %w", o.n, N, errs.ErrOutOfRange)
	}
	if err = r.SetMu(μ); err != nil {
		return
	}
	thetas, err := r.Thetas(0)
	if err != nil {
		return
	}
	var uN []float64
	if N > 0 {
		if uN, err = r.Solve(N); err != nil {
			return
		}
	}
	θf := make([]float64, len(o.fterms))
	for p, t := range o.fterms {
		θf[p] = thetas[t.name][t.q]
	}
	θa := make([]float64, len(o.aterms))
	for a, t := range o.aterms {
		θa[a] = thetas[t.name][t.q]
	}

	// ‖r‖² = (f, f) − 2 (f, A u_N) + (A u_N, A u_N) in the dual norm
	var res2 float64
	for p := range o.fterms {
		for pp := range o.fterms {
			res2 += θf[p] * θf[pp] * o.ff[p][pp]
		}
		for a := range o.aterms {
			for n := 0; n < N; n++ {
				res2 -= 2 * θf[p] * θa[a] * uN[n] * o.fa[p][a][n]
			}
		}
	}
	for a := range o.aterms {
		for b := range o.aterms {
			for n := 0; n < N; n++ {
				for m := 0; m < N; m++ {
					res2 += θa[a] * θa[b] * uN[n] * uN[m] * o.aa[[4]int{a, n, b, m}]
				}
			}
		}
	}
	α := 1.0
	if s, ok := r.Truth.(Stable); ok {
		α = s.StabilityFactor(μ)
	}
	if α <= 0 {
		return 0, chk.Err("stability factor at μ=%v must be positive. α=%g is invalid: %w", μ, α, errs.ErrOutOfRange)
	}
	return math.Sqrt(math.Max(res2, 0)) / α, nil
}
