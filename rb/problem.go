// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"math"

	"github.com/JIMMY-KSU/RBniCS/affine"
	"github.com/JIMMY-KSU/RBniCS/alg"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/JIMMY-KSU/RBniCS/space"
	"github.com/cpmech/gosl/chk"
)

// Problem defines a parametrized truth (full-order) problem with an affine decomposition.
// Matrix quantities are added into the left-hand side and vector quantities into the
// right-hand side. Registry identifies problems by address, so implementations should be pointers
type Problem interface {
	Name() string                                                        // name of problem; used for file names
	Dim() int                                                            // number of degrees of freedom
	Terms() []string                                                     // names of affine quantities. ex: "a", "f"
	AssembleOperator(term string) (*affine.Expansion, error)             // parameter independent terms
	ComputeTheta(term string, μ Parameter, t float64) ([]float64, error) // coefficients of terms
	InnerProduct() alg.InnerProduct                                      // inner product of the truth space
	Solve(μ Parameter) ([]float64, error)                                // truth solution
}

// TimeProblem defines a parabolic problem M⋅du/dt + A(t)⋅u = f(t)
type TimeProblem interface {
	Problem
	Mass() string                                     // name of the mass quantity (listed in Terms)
	TimeControl() (dt, tf, theta float64)             // time stepping
	InitialCondition(μ Parameter) ([]float64, error)  // u(0)
	SolveTrajectory(μ Parameter) ([][]float64, error) // truth solutions at all time steps
}

// Stable is implemented by problems providing a lower bound of the coercivity constant
type Stable interface {
	StabilityFactor(μ Parameter) float64
}

// Mixed is implemented by problems defined on composite spaces whose components get
// separate (aggregated) bases
type Mixed interface {
	Space() *space.Space
	Components() []string
}

// quantities assembles all affine quantities of p
func quantities(p Problem) (exps map[string]*affine.Expansion, err error) {
	exps = make(map[string]*affine.Expansion)
	for _, term := range p.Terms() {
		if exps[term], err = p.AssembleOperator(term); err != nil {
			return nil, chk.Err("cannot assemble quantity %q of problem %q:\n%w", term, p.Name(), err)
		}
		m, n := exps[term].Dims()
		if m != p.Dim() || (exps[term].Kind == affine.MatrixKind && n != p.Dim()) {
			return nil, chk.Err("quantity %q of problem %q has dimensions (%d x %d) but problem has %d dofs: %w", term, p.Name(), m, n, p.Dim(), errs.ErrDimensionMismatch)
		}
	}
	return
}

// assemble returns Σ_terms Σ_q θ_q A_q and Σ_terms Σ_q θ_q f_q at (μ, t), skipping the terms in skip
func assemble(p Problem, exps map[string]*affine.Expansion, μ Parameter, t float64, skip string) (A alg.Matrix, f []float64, err error) {
	var builder alg.Builder
	f = make([]float64, p.Dim())
	for _, term := range p.Terms() {
		if term == skip {
			continue
		}
		θ, e := p.ComputeTheta(term, μ, t)
		if e != nil {
			return nil, nil, e
		}
		exp := exps[term]
		if exp.Kind == affine.MatrixKind {
			a, e := exp.AssembleMatrix(θ)
			if e != nil {
				return nil, nil, e
			}
			if builder == nil {
				builder = a.NewBuilder()
			}
			builder.Add(1, a)
			continue
		}
		b, e := exp.AssembleVector(θ)
		if e != nil {
			return nil, nil, e
		}
		for i := range f {
			f[i] += b[i]
		}
	}
	if builder == nil {
		return nil, nil, chk.Err("problem %q has no matrix quantity: %w", p.Name(), errs.ErrNotFound)
	}
	return builder.Matrix(), f, nil
}

// TruthSolve assembles all quantities of p at μ and solves the full-order system.
// Helper for implementations of Problem.Solve
func TruthSolve(p Problem, μ Parameter, solver alg.Solver) (u []float64, err error) {
	exps, err := quantities(p)
	if err != nil {
		return
	}
	skip := ""
	if tp, ok := p.(TimeProblem); ok {
		skip = tp.Mass()
	}
	A, f, err := assemble(p, exps, μ, 0, skip)
	if err != nil {
		return
	}
	if u, err = solver.Solve(A, f); err != nil {
		return nil, chk.Err("truth solve of problem %q at μ=%v failed:\n%w", p.Name(), μ, err)
	}
	return
}

// TruthTrajectory integrates the full-order time problem with the θ-method.
// Helper for implementations of TimeProblem.SolveTrajectory
func TruthTrajectory(p TimeProblem, μ Parameter, solver alg.Solver) (traj [][]float64, err error) {
	exps, err := quantities(p)
	if err != nil {
		return
	}
	dt, tf, θ := p.TimeControl()
	if dt <= 0 {
		return nil, chk.Err("problem %q has invalid time step Δt=%g: %w", p.Name(), dt, errs.ErrOutOfRange)
	}
	if θ <= 0 {
		θ = 1
	}
	u0, err := p.InitialCondition(μ)
	if err != nil {
		return
	}
	n := p.Dim()
	nsteps := int(math.Round(tf / dt))
	traj = make([][]float64, nsteps+1)
	traj[0] = append([]float64(nil), u0...)
	for k := 0; k < nsteps; k++ {
		t0, t1 := float64(k)*dt, float64(k+1)*dt
		θm, e := p.ComputeTheta(p.Mass(), μ, t1)
		if e != nil {
			return nil, e
		}
		M, e := exps[p.Mass()].AssembleMatrix(θm)
		if e != nil {
			return nil, e
		}
		A1, f1, e := assemble(p, exps, μ, t1, p.Mass())
		if e != nil {
			return nil, e
		}

		// left-hand side
		builder := M.NewBuilder()
		builder.Add(1/dt, M)
		builder.Add(θ, A1)
		L := builder.Matrix()

		// right-hand side
		r := alg.MulVec(M, traj[k])
		for i := 0; i < n; i++ {
			r[i] = r[i]/dt + θ*f1[i]
		}
		if θ < 1 {
			A0, f0, e := assemble(p, exps, μ, t0, p.Mass())
			if e != nil {
				return nil, e
			}
			A0.MulVecAdd(r, -(1 - θ), traj[k])
			for i := 0; i < n; i++ {
				r[i] += (1 - θ) * f0[i]
			}
		}
		if traj[k+1], err = solver.Solve(L, r); err != nil {
			return nil, chk.Err("truth solve of problem %q at μ=%v and t=%g failed:\n%w", p.Name(), μ, t1, err)
		}
	}
	return
}
