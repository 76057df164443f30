// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package affine

import (
	"testing"

	"github.com/JIMMY-KSU/RBniCS/alg"
	"github.com/JIMMY-KSU/RBniCS/errs"
		"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func terms() []alg.Matrix {
	return []alg.Matrix{
		alg.NewDenseRows([][]float64{{1, 0}, {0, 1}}),
		alg.NewDenseRows([][]float64{{2, -1}, {-1, 2}}),
		alg.NewDenseRows([][]float64{{0, 3}, {1, 0}}),
	}
}

func rows(a alg.Matrix) [][]float64 {
	d := alg.ToDense(a)
	m, n := d.Dims()
	res := make([][]float64, m)
	for i := 0; i < m; i++ {
		res[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			res[i][j] = d.At(i, j)
		}
	}
	return res
}

func Test_assemble01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assemble01. linearity in θ (matrices)")

	e, err := NewMatrixExpansion("a", terms()...)
	if err != nil {
		tst.Errorf("NewMatrixExpansion failed:\n%v", err)
		return
	}
	chk.Int(tst, "Q", e.Q(), 3)

	θ1 := []float64{1, 2, 3}
	θ2 := []float64{-0.5, 0.25, 4}
	a, b := 2.0, -3.0
	θ := make([]float64, 3)
	for q := range θ {
		θ[q] = a*θ1[q] + b*θ2[q]
	}

	lhs, _ := e.AssembleMatrix(θ)
	r1, _ := e.AssembleMatrix(θ1)
	r2, _ := e.AssembleMatrix(θ2)
	d1, d2 := rows(r1), rows(r2)
	rhs := make([][]float64, 2)
	for i := range rhs {
		rhs[i] = make([]float64, 2)
		for j := range rhs[i] {
			rhs[i][j] = a*d1[i][j] + b*d2[i][j]
		}
	}
	io.Pforan("lhs = %v\n", rows(lhs))
	chk.Deep2(tst, "assemble(aθ1+bθ2)", 1e-13, rows(lhs), rhs)

	// terms are not modified
	chk.Deep2(tst, "A_1", 1e-15, rows(e.Matrix(1)), [][]float64{{2, -1}, {-1, 2}})
}

func Test_assemble02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assemble02. vectors")

	e, err := NewVectorExpansion("f", []float64{1, 0, 2}, []float64{0, 1, -1})
	if err != nil {
		tst.Errorf("NewVectorExpansion failed:\n%v", err)
		return
	}
	f, _ := e.AssembleVector([]float64{2, 3})
	chk.Array(tst, "f", 1e-15, f, []float64{2, 3, 1})
}

func Test_assemble03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("assemble03. dimension mismatch")

	e, _ := NewMatrixExpansion("a", terms()...)
	_, err := e.AssembleMatrix([]float64{1, 2})
	require.ErrorIs(tst, err, errs.ErrDimensionMismatch)
	_, err = e.AssembleVector([]float64{1, 2, 3})
	require.ErrorIs(tst, err, errs.ErrDimensionMismatch)

	_, err = NewMatrixExpansion("a", alg.NewDense(2, 2, nil), alg.NewDense(3, 3, nil))
	require.ErrorIs(tst, err, errs.ErrDimensionMismatch)
	_, err = NewVectorExpansion("f", []float64{1}, []float64{1, 2})
	require.ErrorIs(tst, err, errs.ErrDimensionMismatch)
	_, err = NewVectorExpansion("f")
	require.ErrorIs(tst, err, errs.ErrDimensionMismatch)
}
