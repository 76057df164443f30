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

// block is a dense 1D conduction problem with two blocks:
//  a(μ) = μ0⋅a0 + a1   (a0: left half, a1: right half)
//  f(μ) = f0 + μ1⋅f1   (f0: unit flux at x=1, f1: unit source)
//  X    = a0 + a1
type block struct {
	n      int        // number of unknowns
	a0, a1 *alg.Dense // stiffness of blocks
	f0, f1 []float64  // loads
	x      *alg.Dense // inner product matrix
	nsolve int        // number of truth solves
}

// newBlock returns a block problem with n elements; node 0 is fixed
func newBlock(n int) *block {
	o := &block{n: n, a0: alg.NewDense(n, n, nil), a1: alg.NewDense(n, n, nil)}
	h := 1.0 / float64(n)
	for e := 0; e < n; e++ {
		K := o.a1
		if e < n/2 {
			K = o.a0
		}
		dofs := []int{e - 1, e} // unknown k is node k+1
		ke := [][]float64{{1 / h, -1 / h}, {-1 / h, 1 / h}}
		for i, I := range dofs {
			for j, J := range dofs {
				if I >= 0 && J >= 0 {
					K.M.Set(I, J, K.M.At(I, J)+ke[i][j])
				}
			}
		}
	}
	o.f0 = make([]float64, n)
	o.f0[n-1] = 1
	o.f1 = make([]float64, n)
	for i := range o.f1 {
		o.f1[i] = h
	}
	o.f1[n-1] = h / 2
	o.x = alg.NewDense(n, n, nil)
	o.x.M.Add(o.a0.M, o.a1.M)
	return o
}

func (o *block) Name() string    { return "block" }
func (o *block) Dim() int        { return o.n }
func (o *block) Terms() []string { return []string{"a", "f"} }

func (o *block) AssembleOperator(term string) (*affine.Expansion, error) {
	switch term {
	case "a":
		return affine.NewMatrixExpansion("a", o.a0, o.a1)
	case "f":
		return affine.NewVectorExpansion("f", o.f0, o.f1)
	}
	return nil, chk.Err("invalid term %q: %w", term, errs.ErrNotFound)
}

func (o *block) ComputeTheta(term string, μ Parameter, t float64) ([]float64, error) {
	switch term {
	case "a":
		return []float64{μ[0], 1}, nil
	case "f":
		return []float64{1, μ[1]}, nil
	}
	return nil, chk.Err("invalid term %q: %w", term, errs.ErrNotFound)
}

func (o *block) InnerProduct() alg.InnerProduct {
	return alg.InnerProduct{X: o.x}
}

func (o *block) Solve(μ Parameter) ([]float64, error) {
	o.nsolve++
	return TruthSolve(o, μ, alg.DenseLU{})
}

func (o *block) StabilityFactor(μ Parameter) float64 {
	return math.Min(μ[0], 1)
}

// heat is the time-dependent version of block with lumped mass and u(0) = 0
type heat struct {
	*block
	m      *alg.Dense
	dt, tf float64
	ntraj  int
}

// newHeat returns a heat problem with n elements
func newHeat(n int) *heat {
	o := &heat{block: newBlock(n), dt: 0.05, tf: 0.5}
	o.m = alg.NewDense(n, n, nil)
	h := 1.0 / float64(n)
	for i := 0; i < n; i++ {
		o.m.M.Set(i, i, h)
	}
	o.m.M.Set(n-1, n-1, h/2)
	return o
}

func (o *heat) Name() string    { return "heat" }
func (o *heat) Terms() []string { return []string{"m", "a", "f"} }
func (o *heat) Mass() string    { return "m" }

func (o *heat) TimeControl() (dt, tf, theta float64) {
	return o.dt, o.tf, 1
}

func (o *heat) AssembleOperator(term string) (*affine.Expansion, error) {
	if term == "m" {
		return affine.NewMatrixExpansion("m", o.m)
	}
	return o.block.AssembleOperator(term)
}

func (o *heat) ComputeTheta(term string, μ Parameter, t float64) ([]float64, error) {
	if term == "m" {
		return []float64{1}, nil
	}
	return o.block.ComputeTheta(term, μ, t)
}

func (o *heat) InitialCondition(μ Parameter) ([]float64, error) {
	return make([]float64, o.n), nil
}

func (o *heat) SolveTrajectory(μ Parameter) ([][]float64, error) {
	o.ntraj++
	return TruthTrajectory(o, μ, alg.DenseLU{})
}

// twin couples two independent block problems on a composite space with components "u" and "p"
type twin struct {
	*block
	a0, a1 *alg.Dense
	f0, f1 []float64
	x      *alg.Dense
	sp     *space.Space
}

// newTwin returns a twin problem with n elements per component
func newTwin(n int) *twin {
	b := newBlock(n)
	o := &twin{block: b}
	diag := func(a *alg.Dense, scale float64) *alg.Dense {
		res := alg.NewDense(2*n, 2*n, nil)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				res.M.Set(i, j, a.M.At(i, j))
				res.M.Set(n+i, n+j, scale*a.M.At(i, j))
			}
		}
		return res
	}
	o.a0, o.a1, o.x = diag(b.a0, 2), diag(b.a1, 2), diag(b.x, 2)
	o.f0 = append(append([]float64{}, b.f0...), b.f0...)
	o.f1 = append(append([]float64{}, b.f1...), make([]float64, n)...)
	o.sp = space.NewSpace("twin",
		&space.Sub{Name: "u", Signature: "P2", Dim: n},
		&space.Sub{Name: "p", Signature: "P1", Dim: n},
	)
	return o
}

func (o *twin) Name() string         { return "twin" }
func (o *twin) Dim() int             { return 2 * o.n }
func (o *twin) Space() *space.Space  { return o.sp }
func (o *twin) Components() []string { return []string{"u", "p"} }

func (o *twin) AssembleOperator(term string) (*affine.Expansion, error) {
	switch term {
	case "a":
		return affine.NewMatrixExpansion("a", o.a0, o.a1)
	case "f":
		return affine.NewVectorExpansion("f", o.f0, o.f1)
	}
	return nil, chk.Err("invalid term %q: %w", term, errs.ErrNotFound)
}

func (o *twin) InnerProduct() alg.InnerProduct {
	return alg.InnerProduct{X: o.x}
}

func (o *twin) Solve(μ Parameter) ([]float64, error) {
	o.nsolve++
	return TruthSolve(o, μ, alg.DenseLU{})
}
