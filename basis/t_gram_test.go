// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import (
	"math"
	"testing"

	"github.com/JIMMY-KSU/RBniCS/alg"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"
	"github.com/stretchr/testify/require"
)

// spd returns a symmetric positive-definite tridiagonal matrix
func spd(n int) *alg.Dense {
	a := alg.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		a.M.Set(i, i, 4)
		if i > 0 {
			a.M.Set(i, i-1, -1)
			a.M.Set(i-1, i, -1)
		}
	}
	return a
}

// checkOrthonormal checks (b_i, b_j)_X = δ_ij
func checkOrthonormal(tst *testing.T, X alg.InnerProduct, b Basis, tol float64) {
	for i := 0; i < b.Len(); i++ {
		for j := 0; j < b.Len(); j++ {
			δ := 0.0
			if i == j {
				δ = 1
			}
			chk.Float64(tst, io.Sf("(b%d,b%d)", i, j), tol, X.Dot(b.At(i), b.At(j)), δ)
		}
	}
}

func Test_gram01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gram01. orthonormality in X inner product")

	n := 8
	X := alg.InnerProduct{X: spd(n)}
	gs := GramSchmidt{X: X}
	s := NewSet("basis", n)
	rnd.Init(1234)
	for k := 0; k < 5; k++ {
		cand := make([]float64, n)
		for i := range cand {
			cand[i] = rnd.Float64(-1, 1)
		}
		if err := gs.Enrich(s, cand); err != nil {
			tst.Errorf("Enrich failed:\n%v", err)
			return
		}
	}
	chk.Int(tst, "N", s.Len(), 5)
	checkOrthonormal(tst, X, s, 1e-12)
}

func Test_gram02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gram02. degenerate candidates")

	X := alg.InnerProduct{}
	gs := GramSchmidt{X: X, Tol: 1e-8}
	s := NewSet("basis", 3)
	gs.Enrich(s, []float64{1, 1, 0})
	gs.Enrich(s, []float64{0, 1, 0})

	// in the span
	accepted, v, err := gs.Orthonormalize(s, []float64{3, -2, 0})
	require.NoError(tst, err)
	require.False(tst, accepted)
	require.Nil(tst, v)
	err = gs.Enrich(s, []float64{2, 5, 1e-12})
	require.ErrorIs(tst, err, errs.ErrDegenerateCandidate)
	chk.Int(tst, "N unchanged", s.Len(), 2)

	// zero candidate
	accepted, _, _ = gs.Orthonormalize(s, []float64{0, 0, 0})
	require.False(tst, accepted)

	// nearly dependent but above tolerance
	accepted, v, err = gs.Orthonormalize(s, []float64{1, 1, 1e-4})
	require.NoError(tst, err)
	require.True(tst, accepted)
	chk.Array(tst, "v", 1e-10, v, []float64{0, 0, 1})

	// wrong length
	_, _, err = gs.Orthonormalize(s, []float64{1, 1})
	require.ErrorIs(tst, err, errs.ErrDimensionMismatch)
}

func Test_gram03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gram03. ill-conditioned candidates")

	// Hilbert-like columns are nearly dependent; modified Gram-Schmidt keeps orthonormality
	n := 6
	X := alg.InnerProduct{}
	gs := GramSchmidt{X: X, Tol: 1e-14}
	s := NewSet("basis", n)
	for k := 0; k < n; k++ {
		cand := make([]float64, n)
		for i := range cand {
			cand[i] = 1.0 / float64(i+k+1)
		}
		gs.Enrich(s, cand)
	}
	io.Pforan("N = %d\n", s.Len())
	checkOrthonormal(tst, X, s, 1e-10)
	require.True(tst, s.Len() >= 4)
	require.False(tst, math.IsNaN(s.At(s.Len() - 1)[0]))
}
