// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package space describes composite (mixed) full-order spaces and the transfer of vectors
// between them
package space

import (
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
)

// Sub is a leaf sub-space of a composite space
type Sub struct {
	Name      string // component name; e.g. "u", "p"
	Signature string // element signature; e.g. "P2^2", "P1". equal signatures => same element
	Dim       int    // number of degrees of freedom
}

// Space is an ordered list of leaf sub-spaces. The dofs of sub-space k are stored in the
// contiguous range [Offset(k), Offset(k)+Subs[k].Dim)
type Space struct {
	Name    string // name of space
	Subs    []*Sub // leaf sub-spaces
	offsets []int  // [nsubs+1] offsets
}

// NewSpace returns a new composite space
func NewSpace(name string, subs ...*Sub) (o *Space) {
	o = &Space{Name: name, Subs: subs}
	o.offsets = make([]int, len(subs)+1)
	for k, s := range subs {
		o.offsets[k+1] = o.offsets[k] + s.Dim
	}
	return
}

// NewScalar returns a space with a single sub-space
func NewScalar(name, signature string, dim int) *Space {
	return NewSpace(name, &Sub{Name: name, Signature: signature, Dim: dim})
}

// Dim returns the total number of dofs
func (o *Space) Dim() int {
	return o.offsets[len(o.Subs)]
}

// Offset returns the first dof of sub-space k
func (o *Space) Offset(k int) int {
	return o.offsets[k]
}

// Find returns the index of the sub-space named comp
func (o *Space) Find(comp string) (k int, err error) {
	for k, s := range o.Subs {
		if s.Name == comp {
			return k, nil
		}
	}
	return -1, chk.Err("space %q has no component named %q: %w", o.Name, comp, errs.ErrNotFound)
}

// Collapse returns the sub-space named comp as a standalone space
func (o *Space) Collapse(comp string) (*Space, error) {
	k, err := o.Find(comp)
	if err != nil {
		return nil, err
	}
	s := o.Subs[k]
	return NewSpace(o.Name+"."+comp, &Sub{Name: s.Name, Signature: s.Signature, Dim: s.Dim}), nil
}

// indices returns the selected sub-spaces; all of them if comp is empty
func (o *Space) indices(comp string) ([]int, error) {
	if comp == "" {
		idx := make([]int, len(o.Subs))
		for k := range o.Subs {
			idx[k] = k
		}
		return idx, nil
	}
	k, err := o.Find(comp)
	if err != nil {
		return nil, err
	}
	return []int{k}, nil
}
