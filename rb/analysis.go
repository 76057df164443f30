// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"math"
	"time"

	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// EffectivityFloor is the relative error below which effectivities are not computed
var EffectivityFloor = 1e-10

// ErrorRow holds the results of the error analysis for one basis size
type ErrorRow struct {
	N         int     // basis size
	MaxErr    float64 // max relative error over the testing set
	MeanErr   float64 // mean relative error
	MaxEst    float64 // max estimate; NaN without estimator
	MeanEff   float64 // mean effectivity (estimate / absolute error); NaN without estimator or errors above the floor
	Nsingular int     // parameters with singular reduced systems (skipped)
}

// SpeedupRow holds the results of the speedup analysis for one basis size
type SpeedupRow struct {
	N       int           // basis size
	Truth   time.Duration // mean time of truth solves
	Reduced time.Duration // mean time of reduced solves
	Speedup float64       // Truth / Reduced
}

// ErrorAnalysis computes the relative error (and estimator statistics) over testing for
// N = 1, …, nmax
func (o *Reduction) ErrorAnalysis(testing TrainingSet, nmax int) (rows []ErrorRow, err error) {
	if len(testing) == 0 {
		return nil, chk.Err("error analysis needs a testing set: %w", errs.ErrEmptyTrainingSet)
	}
	if nmax < 1 || nmax > o.Red.N() {
		nmax = o.Red.N()
	}
	rel := &TrueError{Reduced: o.Red, Relative: true, sols: o.TrueErr.sols, trajs: o.TrueErr.trajs}
	for N := 1; N <= nmax; N++ {
		row := ErrorRow{N: N, MaxEst: math.NaN(), MeanEff: math.NaN()}
		var nok, neff int
		var sumErr, sumEff, maxEst float64
		for _, μ := range testing {
			e, ee := rel.Error(μ, N)
			if ee != nil {
				if isSingular(ee) {
					row.Nsingular++
					continue
				}
				return nil, ee
			}
			nok++
			sumErr += e
			row.MaxErr = math.Max(row.MaxErr, e)
			if o.Estimator == nil {
				continue
			}
			Δ, ee := o.Estimator.Estimate(μ, N)
			if ee != nil {
				return nil, ee
			}
			maxEst = math.Max(maxEst, Δ)
			abs, ee := o.TrueErr.Error(μ, N)
			if ee != nil {
				return nil, ee
			}
			if e > EffectivityFloor {
				sumEff += Δ / abs
				neff++
			}
		}
		if nok > 0 {
			row.MeanErr = sumErr / float64(nok)
		}
		if o.Estimator != nil {
			row.MaxEst = maxEst
			if neff > 0 {
				row.MeanEff = sumEff / float64(neff)
			}
		}
		rows = append(rows, row)
	}
	if o.ShowMsg {
		io.Pf("%s", ErrorTable(rows))
	}
	return
}

// SpeedupAnalysis measures truth and reduced solve times over testing for N = 1, …, nmax
func (o *Reduction) SpeedupAnalysis(testing TrainingSet, nmax int) (rows []SpeedupRow, err error) {
	if len(testing) == 0 {
		return nil, chk.Err("speedup analysis needs a testing set: %w", errs.ErrEmptyTrainingSet)
	}
	if nmax < 1 || nmax > o.Red.N() {
		nmax = o.Red.N()
	}
	tp, unsteady := o.Truth.(TimeProblem)

	// truth
	var truth time.Duration
	for _, μ := range testing {
		t0 := time.Now()
		if unsteady {
			_, err = tp.SolveTrajectory(μ)
		} else {
			_, err = o.Truth.Solve(μ)
		}
		if err != nil {
			return
		}
		truth += time.Since(t0)
	}
	truth /= time.Duration(len(testing))

	// reduced
	for N := 1; N <= nmax; N++ {
		var reduced time.Duration
		for _, μ := range testing {
			if err = o.Red.SetMu(μ); err != nil {
				return
			}
			t0 := time.Now()
			if unsteady {
				_, err = o.Red.SolveTrajectory(N)
			} else {
				_, err = o.Red.Solve(N)
			}
			if err != nil && !isSingular(err) {
				return
			}
			reduced += time.Since(t0)
		}
		reduced /= time.Duration(len(testing))
		row := SpeedupRow{N: N, Truth: truth, Reduced: reduced, Speedup: math.Inf(1)}
		if reduced > 0 {
			row.Speedup = float64(truth) / float64(reduced)
		}
		rows = append(rows, row)
	}
	if o.ShowMsg {
		io.Pf("%s", SpeedupTable(rows))
	}
	return rows, nil
}

// ErrorTable returns a text table with the results of ErrorAnalysis
func ErrorTable(rows []ErrorRow) string {
	l := io.Sf("%4s%14s%14s%14s%14s\n", "N", "max error", "mean error", "max estimate", "effectivity")
	for _, r := range rows {
		l += io.Sf("%4d%14.6e%14.6e%14.6e%14.6e\n", r.N, r.MaxErr, r.MeanErr, r.MaxEst, r.MeanEff)
	}
	return l
}

// SpeedupTable returns a text table with the results of SpeedupAnalysis
func SpeedupTable(rows []SpeedupRow) string {
	l := io.Sf("%4s%16s%16s%12s\n", "N", "truth", "reduced", "speedup")
	for _, r := range rows {
		l += io.Sf("%4d%16v%16v%12.1f\n", r.N, r.Truth, r.Reduced, r.Speedup)
	}
	return l
}
