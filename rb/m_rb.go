// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
)

// ReducedBasis implements the greedy reduced basis method for steady problems: the basis is
// enriched with the Gram-Schmidt orthonormalised truth solution at the parameter with the
// largest error indicator
type ReducedBasis struct{}

// add method to factory
func init() {
	allocators["rb"] = func() Method { return new(ReducedBasis) }
}

// Run runs the greedy loop
func (m *ReducedBasis) Run(o *Reduction) (err error) {
	if _, ok := o.Truth.(TimeProblem); ok {
		return chk.Err("method \"rb\" cannot reduce time problem %q; use \"pod-greedy\": %w", o.Truth.Name(), errs.ErrNotFound)
	}
	return o.greedy(func(μ Parameter) (added int, err error) {
		u, err := o.TrueErr.Truth(μ)
		if err != nil {
			return
		}
		if added, err = o.add(u); err != nil {
			return
		}
		return added, o.update()
	})
}
