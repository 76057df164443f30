// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"github.com/JIMMY-KSU/RBniCS/basis"
	"github.com/cpmech/gosl/io"
)

// ProperOrthogonal implements the POD-Galerkin method: truth solutions (or trajectories) at
// all training parameters are compressed by POD. Mixed problems get one compression per component
type ProperOrthogonal struct{}

// add method to factory
func init() {
	allocators["pod"] = func() Method { return new(ProperOrthogonal) }
}

// Run computes the snapshots and the POD basis. A basis loaded from disk is kept
func (m *ProperOrthogonal) Run(o *Reduction) (err error) {
	if o.Red.N() > 0 {
		o.State = MaxSizeReached
		return
	}

	// snapshots
	var snapshots [][]float64
	_, unsteady := o.Truth.(TimeProblem)
	for _, μ := range o.Training {
		if unsteady {
			traj, e := o.TrueErr.Trajectory(μ)
			if e != nil {
				return e
			}
			snapshots = append(snapshots, traj...)
			continue
		}
		u, e := o.TrueErr.Truth(μ)
		if e != nil {
			return e
		}
		snapshots = append(snapshots, u)
	}
	if o.ShowMsg {
		io.Pf("> POD of %d snapshots\n", len(snapshots))
	}

	// compress
	groups := [][][]float64{snapshots}
	if o.Red.Comps != nil {
		groups = make([][][]float64, len(o.Red.Comps.Names))
		for _, s := range snapshots {
			parts, e := o.Red.Comps.Split(s, nil)
			if e != nil {
				return e
			}
			for k, p := range parts {
				groups[k] = append(groups[k], p)
			}
		}
	}
	pod := basis.POD{X: o.Red.X, NoiseFloor: o.Cfg.Pod.Noise, Tol: o.Cfg.GramSchmidt.Tol}
	crit := basis.Criterion{N: o.Cfg.Pod.N, Energy: o.Cfg.Pod.Energy}
	if crit.N > o.Cfg.Nmax {
		crit.N = o.Cfg.Nmax
	}
	for _, g := range groups {
		res, e := pod.Compress(g, crit)
		if e != nil {
			return e
		}
		o.Pod = append(o.Pod, res)
		for _, mode := range res.Modes {
			if _, err = o.add(mode); err != nil {
				return
			}
		}
		if o.ShowMsg {
			io.Pf("> POD retained %d of %d requested modes\n", res.Retained, res.Requested)
		}
	}
	o.State = Converged
	if o.Red.N() >= o.Cfg.Nmax {
		o.State = MaxSizeReached
	}
	return o.update()
}
