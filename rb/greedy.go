// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"math"
	"os"
	"path/filepath"

	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// State is the state of the greedy sampler
type State int

// states of the greedy sampler
const (
	Sampling State = iota
	Converged
	MaxSizeReached
)

// String returns the name of the state
func (s State) String() string {
	switch s {
	case Sampling:
		return "SAMPLING"
	case Converged:
		return "CONVERGED"
	case MaxSizeReached:
		return "MAX_SIZE_REACHED"
	}
	return io.Sf("State(%d)", int(s))
}

// LogEntry records one greedy iteration
type LogEntry struct {
	N        int       // basis size when the indicator was evaluated
	Mu       Parameter // selected parameter
	Value    float64   // max value of indicator
	Rejected bool      // the enrichment at Mu added no vector
}

// GreedyLog holds all greedy iterations in order
type GreedyLog []LogEntry

// Values returns the max indicator values
func (o GreedyLog) Values() (res []float64) {
	res = make([]float64, len(o))
	for i, e := range o {
		res[i] = e.Value
	}
	return
}

// Save writes the log to <dir>/<name>.greedy
func (o GreedyLog) Save(dir, name, enctype string) (err error) {
	if err = os.MkdirAll(dir, 0777); err != nil {
		return chk.Err("cannot create directory %q:\n%v", dir, err)
	}
	fn := filepath.Join(dir, name+".greedy")
	f, err := os.Create(fn)
	if err != nil {
		return chk.Err("cannot create file %q:\n%v", fn, err)
	}
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = e
		}
	}()
	if err = utl.NewEncoder(f, enctype).Encode(&o); err != nil {
		return chk.Err("cannot encode greedy log:\n%v", err)
	}
	return
}

// LoadGreedyLog reads a log saved with Save. A missing file gives an empty log
func LoadGreedyLog(dir, name, enctype string) (res GreedyLog, err error) {
	fn := filepath.Join(dir, name+".greedy")
	f, err := os.Open(fn)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, chk.Err("cannot open file %q:\n%v", fn, err)
	}
	defer f.Close()
	if err = utl.NewDecoder(f, enctype).Decode(&res); err != nil {
		return nil, chk.Err("cannot decode greedy log %q:\n%v", fn, err)
	}
	return
}

// Greedy implements the greedy sampling loop. At each iteration the indicator is evaluated
// at every training parameter and the basis is enriched at the first parameter with the
// largest value, until the value falls below Tol or the basis reaches Nmax vectors
type Greedy struct {

	// input
	Training  TrainingSet                              // training set
	Tol       float64                                  // tolerance on the indicator (absolute)
	Nmax      int                                      // max size of basis
	First     Parameter                                // first parameter; enriched without evaluating the indicator. may be nil
	Size      func() int                               // current size of basis
	Indicator func(μ Parameter) (float64, error)       // error indicator at μ for the current basis
	Enrich    func(μ Parameter) (added int, err error) // enriches the basis with the truth solution at μ
	ShowMsg   bool                                     // show messages

	// output
	State    State     // final state
	Log      GreedyLog // all iterations; may start with a log loaded from disk
	Forced   bool      // converged because a degenerate parameter was selected twice
	Nenrich  int       // number of enrichments by this run
	Nrejects int       // number of enrichments adding no vector
}

// Run runs the greedy loop until CONVERGED or MAX_SIZE_REACHED
func (o *Greedy) Run() (err error) {

	// check
	if len(o.Training) == 0 {
		return chk.Err("greedy sampling needs a training set: %w", errs.ErrEmptyTrainingSet)
	}
	o.State = Sampling
	o.Forced = false

	// first parameter
	if o.First != nil && o.Size() == 0 {
		if _, err = o.enrich(o.First); err != nil {
			return
		}
	}

	// loop
	rejected := make(map[string]int) // μ key => size of basis when enrichment added nothing
	for o.State == Sampling {
		N := o.Size()
		if N >= o.Nmax {
			o.State = MaxSizeReached
			break
		}

		// indicator at all training parameters; first strict max wins ties
		imax, vmax := -1, math.Inf(-1)
		for i, μ := range o.Training {
			v, e := o.Indicator(μ)
			if e != nil {
				return e
			}
			if math.IsNaN(v) {
				return chk.Err("error indicator at μ=%v is NaN: %w", μ, errs.ErrOutOfRange)
			}
			if v > vmax {
				imax, vmax = i, v
			}
		}
		μ := o.Training[imax]
		o.Log = append(o.Log, LogEntry{N: N, Mu: μ.Clone(), Value: vmax})
		if o.ShowMsg {
			io.Pf("> Greedy: N = %3d  max indicator = %13.6e  μ = %v\n", N, vmax, μ)
		}
		if vmax <= o.Tol {
			o.State = Converged
			break
		}

		// degenerate parameter selected again with unchanged basis
		if n, ok := rejected[μ.Key()]; ok && n == N {
			o.Forced = true
			o.State = Converged
			if o.ShowMsg {
				io.PfRed("> Greedy: μ = %v selected again after adding no vector; stopping\n", μ)
			}
			break
		}

		// enrich
		added, e := o.enrich(μ)
		if e != nil {
			return e
		}
		if added == 0 {
			rejected[μ.Key()] = N
			o.Log[len(o.Log)-1].Rejected = true
		}
	}
	if o.ShowMsg {
		io.PfGreen("> Greedy: %v with N = %d\n", o.State, o.Size())
	}
	return
}

// enrich calls Enrich and updates counters
func (o *Greedy) enrich(μ Parameter) (added int, err error) {
	if added, err = o.Enrich(μ); err != nil {
		return
	}
	o.Nenrich++
	if added == 0 {
		o.Nrejects++
	}
	return
}
