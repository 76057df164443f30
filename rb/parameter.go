// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rb implements the offline and online stages of reduced basis methods
package rb

import (
	"math"
	"strconv"
	"strings"

	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/rnd"
	"github.com/cpmech/gosl/utl"
)

// Parameter holds the values μ of all parameters
type Parameter []float64

// Key returns a string uniquely identifying μ; e.g. for memoization
func (o Parameter) Key() string {
	parts := make([]string, len(o))
	for i, v := range o {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// Clone returns a copy of μ
func (o Parameter) Clone() Parameter {
	return append(Parameter(nil), o...)
}

// ParameterSpace defines the box of admissible parameters
type ParameterSpace struct {
	Min []float64 // lower bounds
	Max []float64 // upper bounds
}

// NewParameterSpace returns a box from [nmu][2] ranges
func NewParameterSpace(ranges [][]float64) (o *ParameterSpace, err error) {
	if len(ranges) == 0 {
		return nil, chk.Err("parameter space needs at least one range: %w", errs.ErrDimensionMismatch)
	}
	o = &ParameterSpace{Min: make([]float64, len(ranges)), Max: make([]float64, len(ranges))}
	for i, r := range ranges {
		if len(r) != 2 || r[0] > r[1] {
			return nil, chk.Err("range %d must be [min, max]. %v is invalid: %w", i, r, errs.ErrDimensionMismatch)
		}
		o.Min[i], o.Max[i] = r[0], r[1]
	}
	return
}

// Dim returns the number of parameters
func (o *ParameterSpace) Dim() int {
	return len(o.Min)
}

// Check checks whether μ belongs to the box
func (o *ParameterSpace) Check(μ Parameter) error {
	if len(μ) != len(o.Min) {
		return chk.Err("parameter must have %d components. %v is invalid: %w", len(o.Min), μ, errs.ErrDimensionMismatch)
	}
	for i, v := range μ {
		if v < o.Min[i] || v > o.Max[i] {
			return chk.Err("component %d of parameter %v is outside [%g, %g]: %w", i, μ, o.Min[i], o.Max[i], errs.ErrOutOfRange)
		}
	}
	return nil
}

// TrainingSet holds a finite set of parameters
type TrainingSet []Parameter

// Generate returns n parameters sampled from the box
//  sampling -- "uniform": tensor grid with round(n^(1/nmu)) points per direction
//              "log":     as "uniform" but equispaced in log scale (positive ranges only)
//              "random":  uniformly distributed random points
//              "lhs":     Latin hypercube (improved distributed) sample
//              "halton":  Halton quasi-random points
//  seed     -- seed for "random" and "lhs"
func (o *ParameterSpace) Generate(n int, sampling string, seed int) (res TrainingSet, err error) {
	if n < 1 {
		return nil, chk.Err("cannot generate training set with n=%d: %w", n, errs.ErrEmptyTrainingSet)
	}
	d := o.Dim()
	switch sampling {
	case "uniform", "", "log":
		log := sampling == "log"
		m := int(math.Round(math.Pow(float64(n), 1/float64(d))))
		if m < 1 {
			m = 1
		}
		axes := make([][]float64, d)
		for i := 0; i < d; i++ {
			if axes[i], err = o.axis(i, m, log); err != nil {
				return
			}
		}
		res = grid(axes)

	case "random":
		rnd.Init(seed)
		res = make(TrainingSet, n)
		for k := 0; k < n; k++ {
			res[k] = make(Parameter, d)
			for i := 0; i < d; i++ {
				res[k][i] = rnd.Float64(o.Min[i], o.Max[i])
			}
		}

	case "lhs":
		rnd.Init(seed)
		x := rnd.HypercubeCoords(rnd.LatinIHS(d, n, 5), o.Min, o.Max) // [d][n]
		res = transpose(x, n)

	case "halton":
		x := rnd.HaltonPoints(d, n) // [d][n] in [0, 1)
		for i := 0; i < d; i++ {
			for k := 0; k < n; k++ {
				x[i][k] = o.Min[i] + x[i][k]*(o.Max[i]-o.Min[i])
			}
		}
		res = transpose(x, n)

	default:
		return nil, chk.Err("sampling %q is not available: %w", sampling, errs.ErrNotFound)
	}
	return
}

// axis returns m points along direction i
func (o *ParameterSpace) axis(i, m int, log bool) (res []float64, err error) {
	a, b := o.Min[i], o.Max[i]
	if m == 1 {
		if log {
			return []float64{math.Sqrt(a * b)}, nil
		}
		return []float64{(a + b) / 2}, nil
	}
	if !log {
		return utl.LinSpace(a, b, m), nil
	}
	if a <= 0 {
		return nil, chk.Err("log sampling needs positive range. [%g, %g] is invalid: %w", a, b, errs.ErrOutOfRange)
	}
	res = utl.LinSpace(math.Log(a), math.Log(b), m)
	for k, v := range res {
		res[k] = math.Exp(v)
	}
	res[0], res[m-1] = a, b
	return
}

// grid returns the tensor product of axes; the last direction runs fastest
func grid(axes [][]float64) (res TrainingSet) {
	res = TrainingSet{Parameter{}}
	for _, ax := range axes {
		next := make(TrainingSet, 0, len(res)*len(ax))
		for _, μ := range res {
			for _, v := range ax {
				next = append(next, append(μ.Clone(), v))
			}
		}
		res = next
	}
	return
}

// transpose converts [d][n] coordinates into n parameters
func transpose(x [][]float64, n int) (res TrainingSet) {
	res = make(TrainingSet, n)
	for k := 0; k < n; k++ {
		res[k] = make(Parameter, len(x))
		for i := range x {
			res[k][i] = x[i][k]
		}
	}
	return
}
