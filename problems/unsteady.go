// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problems

import (
	"github.com/JIMMY-KSU/RBniCS/affine"
	"github.com/JIMMY-KSU/RBniCS/inp"
	"github.com/JIMMY-KSU/RBniCS/rb"
	"github.com/JIMMY-KSU/RBniCS/sparse"
)

// ThermalBlockUnsteady implements transient heat conduction on the thermal block
//  u_t - (k u')' = 0   u(0,t) = 0   k u'(1,t) = g   u(x,0) = 0
// with a lumped capacity matrix
type ThermalBlockUnsteady struct {
	*ThermalBlock
	Dt, Tf, Theta float64 // time stepping
	mass          *sparse.Matrix
}

// add problem to factory
func init() {
	allocators["thermalblock-unsteady"] = func(cfg *inp.Config) (rb.Problem, error) {
		return NewThermalBlockUnsteady(cfg)
	}
}

// NewThermalBlockUnsteady returns a new unsteady thermal-block problem. Without cfg.Time.Tf
// the problem runs up to t = 1 with Δt = 0.01
func NewThermalBlockUnsteady(cfg *inp.Config) (o *ThermalBlockUnsteady, err error) {
	tb, err := NewThermalBlock(cfg)
	if err != nil {
		return
	}
	o = &ThermalBlockUnsteady{ThermalBlock: tb, Dt: cfg.Time.Dt, Tf: cfg.Time.Tf, Theta: cfg.Time.Theta}
	if o.Tf <= 0 {
		o.Tf, o.Dt = 1, 0.01
	}
	if o.Dt <= 0 {
		o.Dt = o.Tf / 100
	}
	o.mass = sparse.NewMatrix(tb.ndof, tb.ndof, 2*tb.ndof)
	for _, ele := range tb.Eles {
		ele.AddToMb(o.mass, 1)
	}
	return
}

func (o *ThermalBlockUnsteady) Name() string    { return "thermalblock-unsteady" }
func (o *ThermalBlockUnsteady) Terms() []string { return []string{"m", "a", "f"} }
func (o *ThermalBlockUnsteady) Mass() string    { return "m" }

// TimeControl returns the time stepping data
func (o *ThermalBlockUnsteady) TimeControl() (dt, tf, theta float64) {
	return o.Dt, o.Tf, o.Theta
}

// AssembleOperator returns the capacity ("m"), conductivity ("a") or flux ("f") terms
func (o *ThermalBlockUnsteady) AssembleOperator(term string) (*affine.Expansion, error) {
	if term == "m" {
		return affine.NewMatrixExpansion("m", o.mass)
	}
	return o.ThermalBlock.AssembleOperator(term)
}

// ComputeTheta returns the coefficients of term
func (o *ThermalBlockUnsteady) ComputeTheta(term string, μ rb.Parameter, t float64) ([]float64, error) {
	if term == "m" {
		return []float64{1}, nil
	}
	return o.ThermalBlock.ComputeTheta(term, μ, t)
}

// InitialCondition returns u(0) = 0
func (o *ThermalBlockUnsteady) InitialCondition(μ rb.Parameter) ([]float64, error) {
	return make([]float64, o.ndof), nil
}

// Solve solves the steady state at μ
func (o *ThermalBlockUnsteady) Solve(μ rb.Parameter) ([]float64, error) {
	return rb.TruthSolve(o, μ, o.Solver)
}

// SolveTrajectory integrates the truth problem at μ
func (o *ThermalBlockUnsteady) SolveTrajectory(μ rb.Parameter) ([][]float64, error) {
	return rb.TruthTrajectory(o, μ, o.Solver)
}
