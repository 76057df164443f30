// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package online

import (
	"math"

	"github.com/JIMMY-KSU/RBniCS/affine"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// ThetaFunc returns the coefficients of quantity name at time t
type ThetaFunc func(name string, t float64) ([]float64, error)

// Stepper integrates M⋅du/dt + A(t)⋅u = f(t) in the reduced space with the θ-method:
//  [M/Δt + θA(t₁)]⋅u₁ = M⋅u₀/Δt − (1−θ)A(t₀)⋅u₀ + θf(t₁) + (1−θ)f(t₀)
// Theta = 1 is backward Euler and Theta = 0.5 is Crank-Nicolson
type Stepper struct {
	Solver *Solver   // reduced solver; nil => default
	Mass   string    // name of mass quantity
	Dt     float64   // time step
	Tf     float64   // final time
	Theta  float64   // θ-method coefficient; 0 => 1
	Times  []float64 // output times computed by Run
}

// Run integrates from t=0 and returns the reduced solutions at all time steps, including u0
func (o *Stepper) Run(ops map[string]*Operator, theta ThetaFunc, N int, u0, μ []float64) (traj [][]float64, err error) {

	// check
	if N < 1 {
		return nil, chk.Err("reduced system size must be at least 1. N=%d is invalid: %w", N, errs.ErrOutOfRange)
	}
	if o.Dt <= 0 || o.Tf < 0 {
		return nil, chk.Err("θ-method needs Δt > 0 and tf ≥ 0. Δt=%g, tf=%g is invalid: %w", o.Dt, o.Tf, errs.ErrOutOfRange)
	}
	if len(u0) != N {
		return nil, chk.Err("initial reduced solution has length %d but N=%d: %w", len(u0), N, errs.ErrDimensionMismatch)
	}
	mass, ok := ops[o.Mass]
	if !ok || mass.Kind != affine.MatrixKind {
		return nil, chk.Err("mass quantity %q is missing: %w", o.Mass, errs.ErrNotFound)
	}
	solver := o.Solver
	if solver == nil {
		solver = new(Solver)
	}
	θ := o.Theta
	if θ <= 0 {
		θ = 1
	}

	// remaining operators
	rest := make(map[string]*Operator)
	for name, op := range ops {
		if name != o.Mass {
			rest[name] = op
		}
	}

	// time loop
	nsteps := int(math.Round(o.Tf / o.Dt))
	o.Times = make([]float64, nsteps+1)
	traj = make([][]float64, nsteps+1)
	traj[0] = append([]float64(nil), u0...)
	for n := 0; n < nsteps; n++ {
		t0, t1 := float64(n)*o.Dt, float64(n+1)*o.Dt
		o.Times[n+1] = t1
		un := mat.NewVecDense(N, traj[n])

		// mass
		θm, e := theta(o.Mass, t1)
		if e != nil {
			return nil, e
		}
		if len(θm) != mass.Q {
			return nil, chk.Err("mass quantity %q has Q=%d terms but %d coefficients were given: %w", o.Mass, mass.Q, len(θm), errs.ErrDimensionMismatch)
		}
		M := mat.NewDense(N, N, nil)
		mscale, e := addMatrices(M, mass, θm, N, 1/o.Dt)
		if e != nil {
			return nil, e
		}

		// system at t₁
		sys1, e := o.assemble(solver, rest, theta, N, t1)
		if e != nil {
			return nil, e
		}
		sys := &System{N: N, L: mat.NewDense(N, N, nil), R: make([]float64, N), Scale: mscale + θ*sys1.Scale}
		sys.L.Scale(θ, sys1.L)
		sys.L.Add(sys.L, M)

		// right-hand side
		var tmp mat.VecDense
		tmp.MulVec(M, un)
		for i := 0; i < N; i++ {
			sys.R[i] = tmp.AtVec(i) + θ*sys1.R[i]
		}
		if θ < 1 {
			sys0, e := o.assemble(solver, rest, theta, N, t0)
			if e != nil {
				return nil, e
			}
			tmp.MulVec(sys0.L, un)
			for i := 0; i < N; i++ {
				sys.R[i] += (1-θ)*sys0.R[i] - (1-θ)*tmp.AtVec(i)
			}
		}

		// solve
		u, e := solver.SolveSystem(sys, μ)
		if e != nil {
			return nil, chk.Err("θ-method failed at t=%g:\n%w", t1, e)
		}
		traj[n+1] = u
	}
	return
}

// assemble collects the coefficients at time t and assembles A(t) and f(t)
func (o *Stepper) assemble(solver *Solver, ops map[string]*Operator, theta ThetaFunc, N int, t float64) (sys *System, err error) {
	thetas := make(map[string][]float64)
	for name := range ops {
		if thetas[name], err = theta(name, t); err != nil {
			return
		}
	}
	return solver.Assemble(ops, thetas, N)
}
