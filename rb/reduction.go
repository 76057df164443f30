// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"errors"
	"time"

	"github.com/JIMMY-KSU/RBniCS/alg"
	"github.com/JIMMY-KSU/RBniCS/basis"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/JIMMY-KSU/RBniCS/inp"
	"github.com/JIMMY-KSU/RBniCS/online"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Method implements the construction of the reduced basis
type Method interface {
	Run(o *Reduction) error // enriches o.Red.Basis; o.Red is up to date on return
}

// allocators holds all available methods
var allocators = map[string]func() Method{}

// Reduction holds all data for the offline stage of a reduction method
type Reduction struct {
	Cfg       *inp.Config        // input data
	Truth     Problem            // truth problem
	Red       *ReducedProblem    // reduced problem
	Method    Method             // reduction method; e.g. "rb", "pod", "pod-greedy"
	Pspace    *ParameterSpace    // parameter space
	Training  TrainingSet        // training set
	GS        basis.GramSchmidt  // orthonormalisation
	TrueErr   *TrueError         // true error (with cached truth solutions)
	Estimator *ResidualEstimator // residual estimator; nil if indicator is "error"
	ShowMsg   bool               // show messages

	// results
	State   State              // state of greedy loop
	Forced  bool               // greedy stopped at a repeated degenerate parameter
	Log     GreedyLog          // greedy iterations (including previous runs)
	Pod     []*basis.PODResult // results of POD compressions
	Resumed bool               // basis was loaded from disk or taken from the registry
}

// NewReduction returns a new reduction of p
//  cfg     -- input data
//  xsolver -- solver for linear systems with the X matrix (residual estimator); nil => dense LU
//  reg     -- session registry; the reduced problem of p is taken from or added to it. may be nil
//  verbose -- show messages
func NewReduction(p Problem, cfg *inp.Config, xsolver alg.Solver, reg *Registry, verbose bool) (o *Reduction, err error) {

	// new object
	o = &Reduction{Cfg: cfg, Truth: p, ShowMsg: verbose}
	o.GS = basis.GramSchmidt{X: p.InnerProduct(), Tol: cfg.GramSchmidt.Tol}

	// method
	alloc, ok := allocators[cfg.Method]
	if !ok {
		return nil, chk.Err("cannot find reduction method named %q: %w", cfg.Method, errs.ErrNotFound)
	}
	o.Method = alloc()

	// parameters
	if o.Pspace, err = NewParameterSpace(cfg.Ranges); err != nil {
		return
	}
	if len(cfg.First) > 0 {
		if err = o.Pspace.Check(cfg.First); err != nil {
			return nil, chk.Err("first parameter is invalid:\n%w", err)
		}
	}
	if o.Training, err = o.Pspace.Generate(cfg.Training.N, cfg.Training.Sampling, cfg.Training.Seed); err != nil {
		return
	}

	// reduced problem
	if o.Red, err = NewReducedProblem(p, &online.Solver{PivotTol: cfg.Online.PivotTol}, reg); err != nil {
		return
	}
	o.Red.Pspace = o.Pspace

	// indicators
	o.TrueErr = NewTrueError(o.Red)
	if cfg.Indicator == "residual" {
		if o.Estimator, err = NewResidualEstimator(o.Red, xsolver); err != nil {
			return
		}
	}
	if o.ShowMsg {
		io.Pf("> Reduction of %q with %q: %d training parameters\n", p.Name(), cfg.Method, len(o.Training))
	}
	return
}

// Offline builds the reduced basis, resuming from files saved by a previous run
func (o *Reduction) Offline() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// resume
	dir, enc := o.Cfg.Dir(), o.Cfg.Encoder
	o.Resumed = o.Red.N() > 0
	if !o.Resumed {
		if o.Resumed, err = o.Red.Load(dir, enc); err != nil {
			return
		}
	}
	if o.Resumed {
		if o.Log, err = LoadGreedyLog(dir, o.Truth.Name(), enc); err != nil {
			return
		}
		if err = o.update(); err != nil {
			return
		}
		if o.ShowMsg {
			io.Pf("> Resuming with N = %d basis vectors from %q\n", o.Red.N(), dir)
		}
	}

	// run
	if err = o.Method.Run(o); err != nil {
		return
	}

	// save
	if err = o.Red.Save(dir, enc); err != nil {
		return
	}
	return o.Log.Save(dir, o.Truth.Name(), enc)
}

// onexit prints final message with cpu time
func (o *Reduction) onexit(cputime time.Time, prevErr error) error {
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Offline stage completed with N = %d (%v)\n", o.Red.N(), o.State)
			io.Pf("> CPU time = %v\n", time.Now().Sub(cputime))
		} else {
			io.PfRed("> Failed\n")
		}
	}
	return prevErr
}

// indicator evaluates the selected error indicator at μ
func (o *Reduction) indicator(μ Parameter) (float64, error) {
	if o.Estimator != nil {
		return o.Estimator.Evaluate(μ)
	}
	return o.TrueErr.Evaluate(μ)
}

// greedy runs the greedy loop with the given enrichment
func (o *Reduction) greedy(enrich func(μ Parameter) (int, error)) (err error) {
	g := Greedy{
		Training:  o.Training,
		Tol:       o.Cfg.Tol,
		Nmax:      o.Cfg.Nmax,
		Size:      o.Red.N,
		Indicator: o.indicator,
		Enrich:    enrich,
		Log:       o.Log,
		ShowMsg:   o.ShowMsg,
	}
	if len(o.Cfg.First) > 0 {
		g.First = Parameter(o.Cfg.First)
	}
	err = g.Run()
	o.State, o.Forced, o.Log = g.State, g.Forced, g.Log
	return
}

// add orthonormalises v against the basis and appends it. Vectors of mixed problems are split
// into their components first. Returns the number of vectors added
func (o *Reduction) add(v []float64) (added int, err error) {
	var rejected []error
	if o.Red.Comps != nil {
		added, rejected, err = o.Red.Comps.Enrich(&o.GS, v, nil, o.Cfg.Nmax)
	} else if o.Red.N() < o.Cfg.Nmax {
		if e := o.GS.Enrich(o.Red.Basis, v); errors.Is(e, errs.ErrDegenerateCandidate) {
			rejected = append(rejected, e)
		} else if e != nil {
			return 0, e
		} else {
			added = 1
		}
	}
	if o.ShowMsg {
		for _, e := range rejected {
			io.Pforan("> candidate rejected: %v\n", e)
		}
	}
	return
}

// update extends the reduced operators and the estimator to the current basis
func (o *Reduction) update() (err error) {
	if err = o.Red.Update(); err != nil {
		return
	}
	if o.Estimator != nil {
		return o.Estimator.Update()
	}
	return
}
