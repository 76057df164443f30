// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tests implements structures and functions to test reductions end to end
package tests

import (
	"math"
	"testing"

	"github.com/JIMMY-KSU/RBniCS/rb"
	"github.com/cpmech/gosl/io"
)

// ThermalBlock returns the exact temperatures of the steady thermal block at x.
// Block b covers [b/nb, (b+1)/nb]; the last block has unit conductivity
func ThermalBlock(x []float64, μ rb.Parameter) (T []float64) {
	nb := len(μ)
	g := μ[nb-1]
	L := 1.0 / float64(nb)
	T = make([]float64, len(x))
	for i, xi := range x {
		for b := 0; b < nb; b++ {
			k := 1.0
			if b < nb-1 {
				k = μ[b]
			}
			a := float64(b) * L
			if xi <= a {
				break
			}
			T[i] += g * (math.Min(xi, a+L) - a) / k
		}
	}
	return
}

// CheckReduced compares reduced solutions with N basis vectors with truth solutions at all μs
//  tol -- tolerance on the error relative to the norm of the truth solution
func CheckReduced(tst *testing.T, red *rb.ReducedProblem, μs []rb.Parameter, N int, tol float64) {
	for _, μ := range μs {
		if err := red.SetMu(μ); err != nil {
			tst.Errorf("SetMu failed:\n%v", err)
			return
		}
		uN, err := red.Solve(N)
		if err != nil {
			tst.Errorf("reduced Solve failed:\n%v", err)
			return
		}
		ur, err := red.Reconstruct(uN)
		if err != nil {
			tst.Errorf("Reconstruct failed:\n%v", err)
			return
		}
		u, err := red.Truth.Solve(μ)
		if err != nil {
			tst.Errorf("truth Solve failed:\n%v", err)
			return
		}
		diff := make([]float64, len(u))
		for i := range u {
			diff[i] = u[i] - ur[i]
		}
		e := red.X.Norm(diff) / math.Max(red.X.Norm(u), 1e-300)
		io.Pf("μ = %v  relative error = %v\n", μ, e)
		if e > tol {
			tst.Errorf("relative error %g at μ=%v is greater than %g", e, μ, tol)
			return
		}
	}
	io.PfGreen("reduced solutions with N=%d: OK\n", N)
}
