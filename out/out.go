// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements output of reduction results: plots and tables
package out

import (
	"math"
	"os"
	"path/filepath"

	"github.com/JIMMY-KSU/RBniCS/basis"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/JIMMY-KSU/RBniCS/rb"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Results holds the results of an offline stage loaded from disk
type Results struct {
	Dir  string       // directory with results
	Name string       // name of truth problem
	N    int          // size of stored basis
	Log  rb.GreedyLog // greedy log; empty for POD
}

// Start loads the results of the offline stage of problem name saved in dir
func Start(dir, name, enctype string) (o *Results, err error) {
	o = &Results{Dir: dir, Name: name}
	n, found, err := basis.StoredLength(dir, name, enctype)
	if err != nil {
		return
	}
	if !found {
		return nil, chk.Err("cannot find basis of %q in %q: %w", name, dir, errs.ErrNotFound)
	}
	o.N = n
	if o.Log, err = rb.LoadGreedyLog(dir, name, enctype); err != nil {
		return
	}
	return
}

// GreedyDecay returns the max indicator at each greedy iteration. Rejected iterations are skipped
func GreedyDecay(log rb.GreedyLog) (N, vals []float64) {
	for _, e := range log {
		if e.Rejected {
			continue
		}
		N = append(N, float64(e.N))
		vals = append(vals, e.Value)
	}
	return
}

// PlotGreedy adds the decay of the greedy indicator to fig
func PlotGreedy(fig *Figure, log rb.GreedyLog, tol float64) error {
	N, vals := GreedyDecay(log)
	if len(N) == 0 {
		return chk.Err("greedy log is empty: %w", errs.ErrNotFound)
	}
	fig.Splot("greedy", "greedy sampling", GetLabel("N", ""), GetLabel("indicator", ""), true)
	if err := fig.Plot(N, vals, "indicator", Style{M: "o"}); err != nil {
		return err
	}
	if tol > 0 {
		return fig.Plot([]float64{N[0], N[len(N)-1]}, []float64{tol, tol}, "tolerance", Style{Ls: "--"})
	}
	return nil
}

// PlotErrors adds the results of an error analysis to fig: errors (and estimates) versus N
// and, with an estimator, the mean effectivity
func PlotErrors(fig *Figure, rows []rb.ErrorRow) error {
	if len(rows) == 0 {
		return chk.Err("error analysis has no rows: %w", errs.ErrNotFound)
	}
	N := make([]float64, len(rows))
	maxErr := make([]float64, len(rows))
	meanErr := make([]float64, len(rows))
	maxEst := make([]float64, len(rows))
	eff := make([]float64, len(rows))
	withEst := false
	for i, r := range rows {
		N[i], maxErr[i], meanErr[i], maxEst[i], eff[i] = float64(r.N), r.MaxErr, r.MeanErr, r.MaxEst, r.MeanEff
		if !math.IsNaN(r.MaxEst) {
			withEst = true
		}
	}
	fig.Splot("errors", "error analysis", GetLabel("N", ""), GetLabel("err", ""), true)
	if err := fig.Plot(N, maxErr, "max", Style{M: "o"}); err != nil {
		return err
	}
	if err := fig.Plot(N, meanErr, "mean", Style{M: "s", Ls: "--"}); err != nil {
		return err
	}
	if !withEst {
		return nil
	}
	if err := fig.Plot(N, maxEst, "max estimate", Style{M: "^", Ls: ":"}); err != nil {
		return err
	}
	fig.Splot("effectivity", "mean effectivity", GetLabel("N", ""), GetLabel("eff", ""), false)
	return fig.Plot(N, eff, "effectivity", Style{M: "o"})
}

// PlotSpeedup adds the results of a speedup analysis to fig
func PlotSpeedup(fig *Figure, rows []rb.SpeedupRow) error {
	if len(rows) == 0 {
		return chk.Err("speedup analysis has no rows: %w", errs.ErrNotFound)
	}
	N := make([]float64, len(rows))
	s := make([]float64, len(rows))
	for i, r := range rows {
		N[i], s[i] = float64(r.N), r.Speedup
	}
	fig.Splot("speedup", "speedup analysis", GetLabel("N", ""), GetLabel("speedup", ""), true)
	return fig.Plot(N, s, "speedup", Style{M: "o"})
}

// PlotEigenvalues adds the spectra of POD compressions to fig
func PlotEigenvalues(fig *Figure, results []*basis.PODResult) error {
	if len(results) == 0 {
		return chk.Err("there are no POD results: %w", errs.ErrNotFound)
	}
	fig.Splot("pod", "POD eigenvalues", GetLabel("mode", ""), GetLabel("eig", ""), true)
	for k, res := range results {
		x := make([]float64, len(res.All))
		for i := range x {
			x[i] = float64(i + 1)
		}
		if err := fig.Plot(x, res.All, io.Sf("compression %d", k), Style{M: "o"}); err != nil {
			return err
		}
	}
	return nil
}

// SaveTable writes a text table to dirout/fname
func SaveTable(dirout, fname, table string) error {
	if err := os.MkdirAll(dirout, 0777); err != nil {
		return chk.Err("cannot create directory %q:\n%v", dirout, err)
	}
	fn := filepath.Join(dirout, fname)
	if err := os.WriteFile(fn, []byte(table), 0644); err != nil {
		return chk.Err("cannot write file %q:\n%v", fn, err)
	}
	return nil
}
