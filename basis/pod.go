// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import (
	"math"

	"github.com/JIMMY-KSU/RBniCS/alg"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Criterion selects the number of POD modes. With both fields zero, every mode above the noise
// floor is kept
type Criterion struct {
	N      int     // max number of modes; 0 => no limit
	Energy float64 // stop when the retained energy fraction reaches this value; 0 => no limit
}

// PODResult holds the outcome of a compression
type PODResult struct {
	Modes     [][]float64 // orthonormal modes
	Eigs      []float64   // eigenvalues of retained modes
	All       []float64   // all eigenvalues of the correlation matrix, descending
	Requested int         // requested number of modes (Criterion.N)
	Retained  int         // actual number of modes; may be smaller than Requested
}

// POD compresses snapshots by the method of snapshots
type POD struct {
	X          alg.InnerProduct // inner product
	NoiseFloor float64          // eigenvalues ≤ NoiseFloor⋅λmax are discarded; 0 => 1e-12
	Tol        float64          // Gram-Schmidt tolerance for the final re-orthonormalisation
}

// Compress computes the leading modes of snapshots
func (o *POD) Compress(snapshots [][]float64, c Criterion) (res *PODResult, err error) {

	// check
	res = &PODResult{Requested: c.N}
	ns := len(snapshots)
	if ns == 0 {
		return
	}
	nh := len(snapshots[0])
	for i, s := range snapshots {
		if len(s) != nh {
			return nil, chk.Err("snapshot %d has length %d but snapshot 0 has length %d: %w", i, len(s), nh, errs.ErrDimensionMismatch)
		}
	}
	floor := o.NoiseFloor
	if floor <= 0 {
		floor = 1e-12
	}

	// correlation matrix C_ij = (s_i, s_j)_X
	xs := make([][]float64, ns)
	for j, s := range snapshots {
		xs[j] = o.X.Apply(s)
	}
	C := mat.NewSymDense(ns, nil)
	for i := 0; i < ns; i++ {
		for j := i; j < ns; j++ {
			C.SetSym(i, j, floats.Dot(snapshots[i], xs[j]))
		}
	}

	// eigen-decomposition (ascending order)
	var eig mat.EigenSym
	if ok := eig.Factorize(C, true); !ok {
		return nil, chk.Err("eigen-decomposition of (%d x %d) correlation matrix failed", ns, ns)
	}
	vals := eig.Values(nil)
	var U mat.Dense
	eig.VectorsTo(&U)

	// descending order
	res.All = make([]float64, ns)
	for k := 0; k < ns; k++ {
		res.All[k] = vals[ns-1-k]
	}
	λmax := res.All[0]
	var total float64
	for _, λ := range res.All {
		if λ > 0 {
			total += λ
		}
	}

	// select modes
	var keep []int
	var cum float64
	for k := 0; k < ns; k++ {
		if c.N > 0 && len(keep) >= c.N {
			break
		}
		if c.Energy > 0 && total > 0 && cum/total >= c.Energy {
			break
		}
		λ := res.All[k]
		if λ <= 0 || λ <= floor*λmax {
			break
		}
		keep = append(keep, k)
		cum += λ
	}

	// modes z_k = Σ_i U_ik⋅s_i / sqrt(λ_k), re-orthonormalised
	gs := GramSchmidt{X: o.X, Tol: o.Tol}
	set := NewSet("pod", nh)
	for _, k := range keep {
		col := ns - 1 - k
		z := make([]float64, nh)
		for i, s := range snapshots {
			floats.AddScaled(z, U.At(i, col), s)
		}
		λ := res.All[k]
		floats.Scale(1/math.Sqrt(λ), z)
		accepted, v, err := gs.Orthonormalize(set, z)
		if err != nil {
			return nil, err
		}
		if !accepted {
			continue
		}
		set.push(v)
		res.Eigs = append(res.Eigs, λ)
	}
	res.Modes = set.vecs
	res.Retained = len(res.Modes)
	return
}
