// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"errors"

	"github.com/JIMMY-KSU/RBniCS/affine"
	"github.com/JIMMY-KSU/RBniCS/alg"
	"github.com/JIMMY-KSU/RBniCS/basis"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/JIMMY-KSU/RBniCS/online"
	"github.com/cpmech/gosl/chk"
)

// ReducedProblem holds the reduced basis of a truth problem and the reduced operators of all
// its affine quantities
type ReducedProblem struct {
	Truth  Problem                     // truth problem
	Basis  *basis.Set                  // reduced basis
	Comps  *basis.Components           // component-aware basis of mixed problems; nil otherwise
	Ops    map[string]*online.Operator // reduced operators of all quantities
	Solver *online.Solver              // reduced solver
	Pspace *ParameterSpace             // admissible parameters; nil => no check
	X      alg.InnerProduct            // inner product of truth space

	// auxiliary
	exps map[string]*affine.Expansion // truth quantities
	mass string                       // name of mass quantity; "" if steady
	μ    Parameter                    // current parameter
}

// NewReducedProblem returns the reduced problem of p. If reg already holds one for p, it is
// returned as is; otherwise a new empty one is assembled and registered in reg (may be nil)
func NewReducedProblem(p Problem, solver *online.Solver, reg *Registry) (o *ReducedProblem, err error) {
	if reg == nil {
		return newReducedProblem(p, solver)
	}
	return reg.acquire(p, func() (*ReducedProblem, error) {
		return newReducedProblem(p, solver)
	})
}

// newReducedProblem assembles the quantities of p and returns an empty reduced problem
func newReducedProblem(p Problem, solver *online.Solver) (o *ReducedProblem, err error) {
	o = &ReducedProblem{Truth: p, Solver: solver, X: p.InnerProduct(), Ops: make(map[string]*online.Operator)}
	if o.Solver == nil {
		o.Solver = new(online.Solver)
	}
	if o.exps, err = quantities(p); err != nil {
		return nil, err
	}
	for name, exp := range o.exps {
		o.Ops[name] = online.NewOperator(exp)
	}
	if tp, ok := p.(TimeProblem); ok {
		o.mass = tp.Mass()
		if _, ok := o.exps[o.mass]; !ok {
			return nil, chk.Err("mass quantity %q of problem %q is not among its terms: %w", o.mass, p.Name(), errs.ErrNotFound)
		}
	}
	if mp, ok := p.(Mixed); ok {
		if o.Comps, err = basis.NewComponents(p.Name(), mp.Space(), mp.Components()...); err != nil {
			return nil, err
		}
		o.Basis = o.Comps.Set
	} else {
		o.Basis = basis.NewSet(p.Name(), p.Dim())
	}
	return
}

// N returns the size of the reduced basis
func (o *ReducedProblem) N() int {
	return o.Basis.Len()
}

// Update extends the reduced operators to the current basis. Operators built on a longer basis
// (the basis was replaced) are rebuilt from scratch
func (o *ReducedProblem) Update() (err error) {
	for _, name := range sortedKeys(o.Ops) {
		op := o.Ops[name]
		if op.N() > o.Basis.Len() {
			op.Reset()
		}
		if err = op.Extend(o.Basis, nil); err != nil {
			return
		}
	}
	return
}

// SetMu sets the current parameter; μ is copied
func (o *ReducedProblem) SetMu(μ Parameter) error {
	if o.Pspace != nil {
		if err := o.Pspace.Check(μ); err != nil {
			return err
		}
	}
	o.μ = μ.Clone()
	return nil
}

// Mu returns the current parameter
func (o *ReducedProblem) Mu() Parameter {
	return o.μ
}

// Thetas computes the coefficients of all quantities at the current μ and time t
func (o *ReducedProblem) Thetas(t float64) (thetas map[string][]float64, err error) {
	thetas = make(map[string][]float64)
	for name := range o.Ops {
		if thetas[name], err = o.Truth.ComputeTheta(name, o.μ, t); err != nil {
			return nil, err
		}
	}
	return
}

// Solve solves the reduced (steady) problem with the first N basis vectors at the current μ.
//  N -- 0 => use the whole basis
func (o *ReducedProblem) Solve(N int) (uN []float64, err error) {
	if N, err = o.size(N); err != nil {
		return
	}
	thetas, err := o.Thetas(0)
	if err != nil {
		return
	}
	ops := o.Ops
	if o.mass != "" {
		ops = o.without(o.mass)
	}
	return o.Solver.Solve(ops, thetas, N, o.μ)
}

// SolveTrajectory solves the reduced time problem with the first N basis vectors at the
// current μ. The initial condition is projected onto the basis in the X inner product
func (o *ReducedProblem) SolveTrajectory(N int) (traj [][]float64, err error) {
	tp, ok := o.Truth.(TimeProblem)
	if !ok {
		return nil, chk.Err("problem %q is not time dependent: %w", o.Truth.Name(), errs.ErrNotFound)
	}
	if N, err = o.size(N); err != nil {
		return
	}
	u0, err := tp.InitialCondition(o.μ)
	if err != nil {
		return
	}
	u0N, err := o.Project(u0, N)
	if err != nil {
		return
	}
	dt, tf, θ := tp.TimeControl()
	stepper := online.Stepper{Solver: o.Solver, Mass: o.mass, Dt: dt, Tf: tf, Theta: θ}
	theta := func(name string, t float64) ([]float64, error) {
		return o.Truth.ComputeTheta(name, o.μ, t)
	}
	return stepper.Run(o.Ops, theta, N, u0N, o.μ)
}

// Project returns the coefficients (z_i, u)_X of u in the first N basis vectors
func (o *ReducedProblem) Project(u []float64, N int) (uN []float64, err error) {
	if len(u) != o.Basis.Dim() {
		return nil, chk.Err("cannot project vector of length %d onto basis of dim %d: %w", len(u), o.Basis.Dim(), errs.ErrDimensionMismatch)
	}
	Xu := o.X.Apply(u)
	uN = make([]float64, N)
	for i := 0; i < N; i++ {
		uN[i] = dot(o.Basis.At(i), Xu)
	}
	return
}

// Reconstruct returns the full-order vector Σ uN_i z_i
func (o *ReducedProblem) Reconstruct(uN []float64) (u []float64, err error) {
	view, err := o.Basis.Slice(len(uN))
	if err != nil {
		return
	}
	return basis.Combine(view, uN), nil
}

// Save writes the basis and the reduced operators to dir
func (o *ReducedProblem) Save(dir, enctype string) (err error) {
	if err = o.Basis.Save(dir, enctype); err != nil {
		return
	}
	for _, name := range sortedKeys(o.Ops) {
		if err = o.Ops[name].Save(dir, enctype); err != nil {
			return
		}
	}
	return
}

// Load reads the basis and the reduced operators saved in dir. Missing operator files are
// recomputed from the truth quantities
func (o *ReducedProblem) Load(dir, enctype string) (loaded bool, err error) {
	if loaded, err = o.Basis.Load(dir, enctype); err != nil || !loaded {
		return
	}
	N := o.Basis.Len()
	for name, exp := range o.exps {
		op, e := online.LoadOperator(dir, name, N, enctype, exp)
		if e != nil {
			if !errors.Is(e, errs.ErrNotFound) {
				return false, e
			}
			continue
		}
		o.Ops[name] = op
	}
	return true, o.Update()
}

// size checks N
func (o *ReducedProblem) size(N int) (int, error) {
	if N == 0 {
		N = o.Basis.Len()
	}
	if N < 1 || N > o.Basis.Len() {
		return 0, chk.Err("reduced problem %q has N=%d; cannot solve with N=%d: %w", o.Truth.Name(), o.Basis.Len(), N, errs.ErrOutOfRange)
	}
	return N, nil
}

// without returns the operators except name
func (o *ReducedProblem) without(name string) map[string]*online.Operator {
	res := make(map[string]*online.Operator)
	for k, op := range o.Ops {
		if k != name {
			res[k] = op
		}
	}
	return res
}
