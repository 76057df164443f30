// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import (
	"errors"

	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/JIMMY-KSU/RBniCS/space"
)

// Components routes vectors of a composite space through its components. For each component,
// a vector is restricted to the collapsed sub-space and zero-extended back into the full space.
// The transfers are compiled here, so an ambiguous correspondence fails at setup and never
// when enriching
type Components struct {
	Names    []string                   // component names in order
	Set      *Set                       // basis in the full space
	restrict map[string]*space.Transfer // full => component
	extend   map[string]*space.Transfer // component => full
}

// NewComponents returns a component-aware basis of the given components of full
func NewComponents(name string, full *space.Space, comps ...string) (o *Components, err error) {
	o = &Components{
		Names:    comps,
		Set:      NewSet(name, full.Dim()),
		restrict: make(map[string]*space.Transfer),
		extend:   make(map[string]*space.Transfer),
	}
	for _, c := range comps {
		sub, err := full.Collapse(c)
		if err != nil {
			return nil, err
		}
		if o.restrict[c], err = space.NewTransfer(full, sub, c, ""); err != nil {
			return nil, err
		}
		if o.extend[c], err = space.NewTransfer(sub, full, "", c); err != nil {
			return nil, err
		}
	}
	return
}

// Split returns, for each component in order, the part of v living in that component
//  weights -- optional per-component weights; missing => 1
func (o *Components) Split(v []float64, weights map[string]float64) (parts [][]float64, err error) {
	parts = make([][]float64, len(o.Names))
	for k, c := range o.Names {
		w, ok := weights[c]
		if !ok {
			w = 1
		}
		r, err := o.restrict[c].Apply(v, w)
		if err != nil {
			return nil, err
		}
		if parts[k], err = o.extend[c].Apply(r, 1); err != nil {
			return nil, err
		}
	}
	return
}

// Enrich orthonormalises every component part of v with gs and appends the accepted ones until
// the set holds nmax vectors (0 => no limit). Rejected parts leave the set unchanged and are
// returned in rejected
func (o *Components) Enrich(gs *GramSchmidt, v []float64, weights map[string]float64, nmax int) (added int, rejected []error, err error) {
	parts, err := o.Split(v, weights)
	if err != nil {
		return
	}
	for _, p := range parts {
		if nmax > 0 && o.Set.Len() >= nmax {
			break
		}
		e := gs.Enrich(o.Set, p)
		if errors.Is(e, errs.ErrDegenerateCandidate) {
			rejected = append(rejected, e)
			continue
		}
		if e != nil {
			return added, rejected, e
		}
		added++
	}
	return
}
