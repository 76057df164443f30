// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"testing"

	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func Test_param01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("param01. keys and parameter space")

	μ := Parameter{0.5, -1, 1e-3}
	chk.String(tst, μ.Key(), "0.5,-1,0.001")
	ν := μ.Clone()
	ν[0] = 2
	chk.Float64(tst, "μ0", 1e-15, μ[0], 0.5)

	ps, err := NewParameterSpace([][]float64{{0.1, 10}, {-1, 1}})
	if err != nil {
		tst.Errorf("NewParameterSpace failed:\n%v", err)
		return
	}
	chk.Int(tst, "dim", ps.Dim(), 2)
	require.NoError(tst, ps.Check(Parameter{1, 0}))
	require.ErrorIs(tst, ps.Check(Parameter{1}), errs.ErrDimensionMismatch)
	require.ErrorIs(tst, ps.Check(Parameter{20, 0}), errs.ErrOutOfRange)

	_, err = NewParameterSpace(nil)
	require.ErrorIs(tst, err, errs.ErrDimensionMismatch)
	_, err = NewParameterSpace([][]float64{{1, 0}})
	require.ErrorIs(tst, err, errs.ErrDimensionMismatch)
}

func Test_param02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("param02. training sets")

	ps, _ := NewParameterSpace([][]float64{{1, 100}, {-1, 1}})

	// uniform grid
	ts, err := ps.Generate(9, "uniform", 0)
	if err != nil {
		tst.Errorf("Generate failed:\n%v", err)
		return
	}
	io.Pforan("uniform = %v\n", ts)
	chk.Int(tst, "len", len(ts), 9)
	chk.Array(tst, "μ0", 1e-15, ts[0], []float64{1, -1})
	chk.Array(tst, "μ1", 1e-15, ts[1], []float64{1, 0})
	chk.Array(tst, "μ8", 1e-15, ts[8], []float64{100, 1})

	// log grid
	ps1, _ := NewParameterSpace([][]float64{{1, 100}})
	ts, err = ps1.Generate(3, "log", 0)
	require.NoError(tst, err)
	chk.Float64(tst, "log0", 1e-15, ts[0][0], 1)
	chk.Float64(tst, "log1", 1e-13, ts[1][0], 10)
	chk.Float64(tst, "log2", 1e-15, ts[2][0], 100)
	_, err = ps.Generate(4, "log", 0)
	require.ErrorIs(tst, err, errs.ErrOutOfRange)

	// random sets are reproducible and inside the box
	for _, sampling := range []string{"random", "lhs", "halton"} {
		a, err := ps.Generate(20, sampling, 1234)
		if err != nil {
			tst.Errorf("Generate %q failed:\n%v", sampling, err)
			return
		}
		b, _ := ps.Generate(20, sampling, 1234)
		chk.Int(tst, "len", len(a), 20)
		chk.Deep2(tst, sampling, 1e-15, toRows(a), toRows(b))
		for _, μ := range a {
			require.NoError(tst, ps.Check(μ))
		}
	}

	// errors
	_, err = ps.Generate(0, "random", 0)
	require.ErrorIs(tst, err, errs.ErrEmptyTrainingSet)
	_, err = ps.Generate(10, "sobol", 0)
	require.ErrorIs(tst, err, errs.ErrNotFound)
}

// toRows converts a training set into rows
func toRows(ts TrainingSet) (res [][]float64) {
	for _, μ := range ts {
		res = append(res, μ)
	}
	return
}
