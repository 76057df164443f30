// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problems

import (
	"github.com/JIMMY-KSU/RBniCS/affine"
	"github.com/JIMMY-KSU/RBniCS/alg"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/JIMMY-KSU/RBniCS/inp"
	"github.com/JIMMY-KSU/RBniCS/rb"
	"github.com/JIMMY-KSU/RBniCS/sparse"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// ThermalBlock implements steady heat conduction on (0,1) split into nb blocks
//  -(k u')' = 0   u(0) = 0   k u'(1) = g
//  k = μ_b on block b < nb-1 and k = 1 on the last block; g = μ_{nb-1}
// The affine terms are the conductivity matrices of each block and the unit flux at x = 1.
// The inner product is the H1 seminorm Σ_b K_b
type ThermalBlock struct {
	Nelem   int        // number of elements
	Nblocks int        // number of blocks
	Solver  alg.Solver // truth solver
	X       []float64  // coordinates of nodes
	Eles    []*Line2   // elements
	Block   []int      // [nelem] block of each element
	ndof    int        // number of equations; node 0 is prescribed
	stiff   []alg.Matrix
	flux    []float64
	x       *sparse.Matrix
}

// add problem to factory
func init() {
	allocators["thermalblock"] = func(cfg *inp.Config) (rb.Problem, error) {
		return NewThermalBlock(cfg)
	}
}

// NewThermalBlock returns a new thermal-block problem with cfg.Mesh elements and blocks
func NewThermalBlock(cfg *inp.Config) (o *ThermalBlock, err error) {

	// check
	ne, nb := cfg.Mesh.Nelem, cfg.Mesh.Nblocks
	if nb < 1 || ne < nb {
		return nil, chk.Err("thermal block needs 1 ≤ nblocks ≤ nelem. nelem=%d and nblocks=%d are invalid: %w", ne, nb, errs.ErrOutOfRange)
	}
	defaults := make([][]float64, nb)
	for b := 0; b < nb-1; b++ {
		defaults[b] = []float64{0.1, 10}
	}
	defaults[nb-1] = []float64{-1, 1}
	if err = checkRanges(cfg, defaults); err != nil {
		return
	}

	// mesh
	o = &ThermalBlock{Nelem: ne, Nblocks: nb, Solver: sparse.Umfpack{}, ndof: ne}
	o.X = utl.LinSpace(0, 1, ne+1)
	o.Eles = make([]*Line2, ne)
	o.Block = make([]int, ne)
	for e := 0; e < ne; e++ {
		o.Eles[e] = NewLine2(e-1, e, o.X[e+1]-o.X[e])
		o.Block[e] = e * nb / ne
	}

	// assemble
	o.x = sparse.NewMatrix(ne, ne, 4*ne)
	for b := 0; b < nb; b++ {
		K := sparse.NewMatrix(ne, ne, 4*ne)
		for e, ele := range o.Eles {
			if o.Block[e] == b {
				ele.AddToKb(K, 1)
				ele.AddToKb(o.x, 1)
			}
		}
		o.stiff = append(o.stiff, K)
	}
	o.flux = make([]float64, ne)
	o.flux[ne-1] = 1
	return
}

func (o *ThermalBlock) Name() string    { return "thermalblock" }
func (o *ThermalBlock) Dim() int        { return o.ndof }
func (o *ThermalBlock) Terms() []string { return []string{"a", "f"} }

// AssembleOperator returns the conductivity ("a") or the flux ("f") terms
func (o *ThermalBlock) AssembleOperator(term string) (*affine.Expansion, error) {
	switch term {
	case "a":
		return affine.NewMatrixExpansion("a", o.stiff...)
	case "f":
		return affine.NewVectorExpansion("f", o.flux)
	}
	return nil, chk.Err("thermal block has no term %q: %w", term, errs.ErrNotFound)
}

// ComputeTheta returns the conductivities ("a") or the flux ("f")
func (o *ThermalBlock) ComputeTheta(term string, μ rb.Parameter, t float64) ([]float64, error) {
	if len(μ) != o.Nblocks {
		return nil, chk.Err("thermal block with %d blocks needs %d parameters. μ=%v is invalid: %w", o.Nblocks, o.Nblocks, μ, errs.ErrDimensionMismatch)
	}
	switch term {
	case "a":
		θ := make([]float64, o.Nblocks)
		copy(θ, μ[:o.Nblocks-1])
		θ[o.Nblocks-1] = 1
		return θ, nil
	case "f":
		return []float64{μ[o.Nblocks-1]}, nil
	}
	return nil, chk.Err("thermal block has no term %q: %w", term, errs.ErrNotFound)
}

// InnerProduct returns the H1 seminorm
func (o *ThermalBlock) InnerProduct() alg.InnerProduct {
	return alg.InnerProduct{X: o.x}
}

// Solve solves the truth problem at μ
func (o *ThermalBlock) Solve(μ rb.Parameter) ([]float64, error) {
	return rb.TruthSolve(o, μ, o.Solver)
}

// StabilityFactor returns the smallest conductivity
func (o *ThermalBlock) StabilityFactor(μ rb.Parameter) float64 {
	α := 1.0
	for b := 0; b < o.Nblocks-1 && b < len(μ); b++ {
		if μ[b] < α {
			α = μ[b]
		}
	}
	return α
}

// Temperature returns the temperatures at all nodes, including the prescribed one
func (o *ThermalBlock) Temperature(u []float64) []float64 {
	return append([]float64{0}, u...)
}
