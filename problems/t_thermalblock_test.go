// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problems

import (
	"math"
	"testing"

	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/JIMMY-KSU/RBniCS/inp"
	"github.com/JIMMY-KSU/RBniCS/rb"
	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/require"
)

// newConfig returns input data for the thermal block
func newConfig(problem string, nelem, nblocks int) *inp.Config {
	cfg := new(inp.Config)
	cfg.SetDefault()
	cfg.Problem = problem
	cfg.Mesh = inp.MeshData{Nelem: nelem, Nblocks: nblocks}
	return cfg
}

func Test_thermalblock01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("thermalblock01. steady solution")

	cfg := newConfig("thermalblock", 10, 2)
	p, err := New(cfg)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	chk.String(tst, p.Name(), "thermalblock")
	chk.Int(tst, "ndof", p.Dim(), 10)
	chk.Deep2(tst, "ranges", 1e-15, cfg.Ranges, [][]float64{{0.1, 10}, {-1, 1}})

	// k = 2 on the left half and 1 on the right half
	o := p.(*ThermalBlock)
	g := 0.5
	u, err := p.Solve(rb.Parameter{2, g})
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	T := o.Temperature(u)
	correct := make([]float64, len(o.X))
	for i, x := range o.X {
		if x <= 0.5 {
			correct[i] = g * x / 2
		} else {
			correct[i] = g/4 + g*(x-0.5)
		}
	}
	chk.Array(tst, "T", 1e-12, T, correct)

	// coefficients
	θ, err := p.ComputeTheta("a", rb.Parameter{3, g}, 0)
	require.NoError(tst, err)
	chk.Array(tst, "θa", 1e-15, θ, []float64{3, 1})
	θ, err = p.ComputeTheta("f", rb.Parameter{3, g}, 0)
	require.NoError(tst, err)
	chk.Array(tst, "θf", 1e-15, θ, []float64{g})
	chk.Float64(tst, "α", 1e-15, o.StabilityFactor(rb.Parameter{3, g}), 1)
	chk.Float64(tst, "α", 1e-15, o.StabilityFactor(rb.Parameter{0.2, g}), 0.2)

	// errors
	_, err = p.ComputeTheta("a", rb.Parameter{1}, 0)
	require.ErrorIs(tst, err, errs.ErrDimensionMismatch)
	_, err = p.ComputeTheta("m", rb.Parameter{1, 1}, 0)
	require.ErrorIs(tst, err, errs.ErrNotFound)
	_, err = p.AssembleOperator("m")
	require.ErrorIs(tst, err, errs.ErrNotFound)
}

func Test_thermalblock02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("thermalblock02. factory")

	_, err := New(newConfig("cavity", 10, 2))
	require.ErrorIs(tst, err, errs.ErrNotFound)
	chk.Strings(tst, "names", Names(), []string{"thermalblock", "thermalblock-unsteady"})

	_, err = New(newConfig("thermalblock", 2, 3))
	require.ErrorIs(tst, err, errs.ErrOutOfRange)

	cfg := newConfig("thermalblock", 9, 3)
	cfg.Ranges = [][]float64{{1, 2}, {0, 1}}
	_, err = New(cfg)
	require.ErrorIs(tst, err, errs.ErrDimensionMismatch)

	cfg = newConfig("thermalblock", 9, 3)
	p, err := New(cfg)
	require.NoError(tst, err)
	chk.Int(tst, "nranges", len(cfg.Ranges), 3)
	o := p.(*ThermalBlock)
	chk.Ints(tst, "blocks", o.Block, []int{0, 0, 0, 1, 1, 1, 2, 2, 2})
	exp, err := p.AssembleOperator("a")
	require.NoError(tst, err)
	chk.Int(tst, "Q", exp.Q(), 3)

	// X is the sum of the block matrices
	v := make([]float64, p.Dim())
	for i := range v {
		v[i] = float64(i + 1)
	}
	var sum float64
	for q := 0; q < exp.Q(); q++ {
		w := make([]float64, len(v))
		exp.Matrix(q).MulVecAdd(w, 1, v)
		for i := range v {
			sum += v[i] * w[i]
		}
	}
	chk.Float64(tst, "|v|²", 1e-10, p.InnerProduct().Dot(v, v), sum)
}

func Test_thermalblock03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("thermalblock03. unsteady solution")

	cfg := newConfig("thermalblock-unsteady", 10, 2)
	cfg.Time = inp.TimeControl{Dt: 0.01, Tf: 3, Theta: 1}
	p, err := New(cfg)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}
	tp, ok := p.(rb.TimeProblem)
	require.True(tst, ok)
	chk.Strings(tst, "terms", p.Terms(), []string{"m", "a", "f"})

	μ := rb.Parameter{1, 1}
	traj, err := tp.SolveTrajectory(μ)
	if err != nil {
		tst.Errorf("SolveTrajectory failed:\n%v", err)
		return
	}
	chk.Int(tst, "nsteps+1", len(traj), 301)
	chk.Array(tst, "u(0)", 1e-15, traj[0], make([]float64, p.Dim()))

	// steady state u = x
	u, err := p.Solve(μ)
	require.NoError(tst, err)
	o := p.(*ThermalBlockUnsteady)
	chk.Array(tst, "steady", 1e-12, u, o.X[1:])
	chk.Array(tst, "u(tf)", 2e-3, traj[300], u)

	// temperatures grow monotonically at x = 1
	for k := 1; k < len(traj); k++ {
		if traj[k][p.Dim()-1] < traj[k-1][p.Dim()-1] {
			tst.Errorf("temperature at x=1 decreased at step %d", k)
			return
		}
	}
	if math.Abs(traj[1][p.Dim()-1]) < 1e-6 {
		tst.Errorf("first step is too small")
	}
}

func Test_thermalblock04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("thermalblock04. greedy reduction with residual estimator")

	cfg := newConfig("thermalblock", 30, 3)
	cfg.Method = "rb"
	cfg.Indicator = "residual"
	cfg.Tol = 1e-6
	cfg.Training = inp.SamplingData{N: 27, Sampling: "uniform"}
	cfg.DirOut = tst.TempDir()
	cfg.Key = "thermalblock04"
	p, err := New(cfg)
	require.NoError(tst, err)
	require.NoError(tst, cfg.PostProcess())

	o, err := rb.NewReduction(p, cfg, p.(*ThermalBlock).Solver, nil, chk.Verbose)
	require.NoError(tst, err)
	if err = o.Offline(); err != nil {
		tst.Errorf("Offline failed:\n%v", err)
		return
	}
	chk.String(tst, o.State.String(), "CONVERGED")
	chk.Int(tst, "N", o.Red.N(), 3)

	// online
	μ := rb.Parameter{0.5, 2, -0.3}
	require.NoError(tst, o.Red.SetMu(μ))
	uN, err := o.Red.Solve(0)
	require.NoError(tst, err)
	u, err := p.Solve(μ)
	require.NoError(tst, err)
	ur, err := o.Red.Reconstruct(uN)
	require.NoError(tst, err)
	chk.Array(tst, "u", 1e-9, ur, u)
}
