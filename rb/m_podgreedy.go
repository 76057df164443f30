// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"github.com/JIMMY-KSU/RBniCS/basis"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
)

// PodGreedy implements the POD-greedy method for time problems: at the parameter with the
// largest error, the projection errors of the truth trajectory onto the current basis are
// compressed by POD and the leading modes enrich the basis
type PodGreedy struct{}

// add method to factory
func init() {
	allocators["pod-greedy"] = func() Method { return new(PodGreedy) }
}

// Run runs the greedy loop
func (m *PodGreedy) Run(o *Reduction) (err error) {
	if _, ok := o.Truth.(TimeProblem); !ok {
		return chk.Err("method \"pod-greedy\" needs a time problem; %q is steady: %w", o.Truth.Name(), errs.ErrNotFound)
	}
	pod := basis.POD{X: o.Red.X, NoiseFloor: o.Cfg.Pod.Noise, Tol: o.Cfg.GramSchmidt.Tol}
	crit := basis.Criterion{N: o.Cfg.PodGreedy.N, Energy: 1 - o.Cfg.PodGreedy.Tol}
	return o.greedy(func(μ Parameter) (added int, err error) {
		traj, err := o.TrueErr.Trajectory(μ)
		if err != nil {
			return
		}

		// projection errors
		N := o.Red.N()
		diffs := make([][]float64, len(traj))
		for k, u := range traj {
			diffs[k] = append([]float64(nil), u...)
			if N == 0 {
				continue
			}
			c, e := o.Red.Project(u, N)
			if e != nil {
				return 0, e
			}
			proj, e := o.Red.Reconstruct(c)
			if e != nil {
				return 0, e
			}
			for i := range proj {
				diffs[k][i] -= proj[i]
			}
		}

		// compress and enrich
		res, err := pod.Compress(diffs, crit)
		if err != nil {
			return
		}
		o.Pod = append(o.Pod, res)
		for _, mode := range res.Modes {
			n, e := o.add(mode)
			if e != nil {
				return added, e
			}
			added += n
		}
		return added, o.update()
	})
}
