// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package online

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/JIMMY-KSU/RBniCS/affine"
	"github.com/JIMMY-KSU/RBniCS/alg"
	"github.com/JIMMY-KSU/RBniCS/basis"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"
	"github.com/stretchr/testify/require"
)

// scalarOps returns the operators of a problem with one degree of freedom and basis {1}
func scalarOps(tst *testing.T, a, f []float64) map[string]*Operator {
	mats := make([]alg.Matrix, len(a))
	for q, v := range a {
		mats[q] = alg.NewDense(1, 1, []float64{v})
	}
	vecs := make([][]float64, len(f))
	for q, v := range f {
		vecs[q] = []float64{v}
	}
	A, err := affine.NewMatrixExpansion("a", mats...)
	require.NoError(tst, err)
	F, err := affine.NewVectorExpansion("f", vecs...)
	require.NoError(tst, err)
	Z := basis.NewSet("basis", 1)
	require.NoError(tst, Z.Enrich([]float64{1}))
	ops := map[string]*Operator{"a": NewOperator(A), "f": NewOperator(F)}
	for _, op := range ops {
		require.NoError(tst, op.Extend(Z, nil))
	}
	return ops
}

func Test_solver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver01. [[2]]⋅x = [4]")

	ops := scalarOps(tst, []float64{2}, []float64{4})
	var solver Solver
	x, err := solver.Solve(ops, map[string][]float64{"a": {1}, "f": {1}}, 1, []float64{0.5})
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	io.Pforan("x = %v\n", x)
	chk.Array(tst, "x", 1e-15, x, []float64{2})

	// affine combination: (1⋅2 + 3⋅2)⋅x = 2⋅4 => x = 1
	ops = scalarOps(tst, []float64{2, 2}, []float64{4})
	x, err = solver.Solve(ops, map[string][]float64{"a": {1, 3}, "f": {2}}, 1, nil)
	require.NoError(tst, err)
	chk.Array(tst, "x", 1e-15, x, []float64{1})

	// missing or wrong coefficients
	_, err = solver.Solve(ops, map[string][]float64{"a": {1}, "f": {2}}, 1, nil)
	require.ErrorIs(tst, err, errs.ErrDimensionMismatch)
	_, err = solver.Solve(ops, map[string][]float64{"a": {1, 3}}, 1, nil)
	require.ErrorIs(tst, err, errs.ErrDimensionMismatch)
	_, err = solver.Solve(ops, map[string][]float64{"a": {1, 3}, "f": {2}}, 2, nil)
	require.ErrorIs(tst, err, errs.ErrOutOfRange)
}

func Test_solver02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver02. singular reduced systems")

	// N = 1: cancelling terms
	μ := []float64{1, -1}
	ops := scalarOps(tst, []float64{1, 1}, []float64{1})
	var solver Solver
	_, err := solver.Solve(ops, map[string][]float64{"a": μ, "f": {1}}, 1, μ)
	require.ErrorIs(tst, err, errs.ErrSingularSystem)
	var serr *errs.SingularError
	require.True(tst, errors.As(err, &serr))
	chk.Int(tst, "N", serr.N, 1)
	chk.Array(tst, "μ", 1e-15, serr.Mu, μ)
	io.Pforan("%v\n", err)

	// N = 2: rank-one matrix
	A, err := affine.NewMatrixExpansion("a", alg.NewDenseRows([][]float64{{1, 2}, {2, 4}}))
	require.NoError(tst, err)
	F, err := affine.NewVectorExpansion("f", []float64{1, 1})
	require.NoError(tst, err)
	Z := basis.NewSet("basis", 2)
	Z.Enrich([]float64{1, 0})
	Z.Enrich([]float64{0, 1})
	ops = map[string]*Operator{"a": NewOperator(A), "f": NewOperator(F)}
	for _, op := range ops {
		require.NoError(tst, op.Extend(Z, nil))
	}
	thetas := map[string][]float64{"a": {1}, "f": {1}}
	_, err = solver.Solve(ops, thetas, 2, []float64{3})
	require.True(tst, errors.As(err, &serr))
	chk.Int(tst, "N", serr.N, 2)
	chk.Array(tst, "μ", 1e-15, serr.Mu, []float64{3})

	// the leading block is fine
	x, err := solver.Solve(ops, thetas, 1, nil)
	require.NoError(tst, err)
	chk.Array(tst, "x", 1e-15, x, []float64{1})

	// empty and negative sizes
	for _, n := range []int{0, -1} {
		_, err = solver.Solve(ops, thetas, n, nil)
		require.ErrorIs(tst, err, errs.ErrOutOfRange)
		_, err = solver.Assemble(ops, thetas, n)
		require.ErrorIs(tst, err, errs.ErrOutOfRange)
	}
}

func Test_solver03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver03. concurrent online solves")

	rnd.Init(777)
	n, Q, N := 10, 2, 4
	A, f := randomTerms(tst, n, Q)

	// make the terms diagonally dominant
	for q := 0; q < Q; q++ {
		d := A.Matrix(q).(*alg.Dense).M
		for i := 0; i < n; i++ {
			d.Set(i, i, d.At(i, i)+float64(2*n))
		}
	}
	Z := randomBasis(tst, n, N)
	ops := map[string]*Operator{"a": NewOperator(A), "f": NewOperator(f)}
	for _, op := range ops {
		require.NoError(tst, op.Extend(Z, nil))
	}

	// serial
	var solver Solver
	nmu := 20
	ref := make([][]float64, nmu)
	thetas := func(k int) map[string][]float64 {
		μ := 1 + float64(k)
		return map[string][]float64{"a": {1, μ}, "f": {μ, math.Sqrt(μ)}}
	}
	for k := 0; k < nmu; k++ {
		x, err := solver.Solve(ops, thetas(k), N, nil)
		require.NoError(tst, err)
		ref[k] = x
	}

	// concurrent
	res := make([][]float64, nmu)
	fails := make([]error, nmu)
	var wg sync.WaitGroup
	for k := 0; k < nmu; k++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			res[k], fails[k] = solver.Solve(ops, thetas(k), N, nil)
		}(k)
	}
	wg.Wait()
	for k := 0; k < nmu; k++ {
		require.NoError(tst, fails[k])
		chk.Array(tst, io.Sf("x%d", k), 1e-15, res[k], ref[k])
	}
}
