// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package basis implements reduced basis sets, Gram-Schmidt orthonormalisation and POD
package basis

import (
	"github.com/JIMMY-KSU/RBniCS/alg"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
)

// Basis is a read-only ordered list of basis vectors
type Basis interface {
	Len() int           // number of vectors
	At(i int) []float64 // i-th vector. must not be modified
}

// Set holds the basis vectors accumulated during the offline stage. Vectors are copied when
// enriching and never modified afterwards
type Set struct {
	Name  string        // name of set; used as file key
	dim   int           // dimension of vectors
	vecs  [][]float64   // vectors in insertion order
	views map[int]*View // memoized views of the first k vectors
}

// NewSet returns a new empty set of vectors with dimension dim
func NewSet(name string, dim int) *Set {
	return &Set{Name: name, dim: dim, views: make(map[int]*View)}
}

// Dim returns the dimension of the stored vectors
func (o *Set) Dim() int {
	return o.dim
}

// Len returns the number of vectors
func (o *Set) Len() int {
	return len(o.vecs)
}

// At returns the i-th vector
func (o *Set) At(i int) []float64 {
	return o.vecs[i]
}

// prepare returns a weighted copy of an incoming vector
func (o *Set) prepare(v []float64, weight ...float64) (res []float64, err error) {
	w := 1.0
	if len(weight) > 0 {
		w = weight[0]
	}
	if len(v) != o.dim {
		return nil, chk.Err("cannot add vector of length %d to basis %q with dim %d: %w", len(v), o.Name, o.dim, errs.ErrDimensionMismatch)
	}
	return alg.VecCopy(w, v), nil
}

// Enrich appends a copy of v scaled by the optional weight. Views of the first k vectors stay
// valid since appending does not change them
func (o *Set) Enrich(v []float64, weight ...float64) error {
	res, err := o.prepare(v, weight...)
	if err != nil {
		return err
	}
	o.push(res)
	return nil
}

// Slice returns a view of the first k vectors; 0 < k ≤ Len(). Repeated calls with the same k
// return the same view
func (o *Set) Slice(k int) (*View, error) {
	if k <= 0 || k > len(o.vecs) {
		return nil, chk.Err("cannot slice basis %q of length %d with k=%d: %w", o.Name, len(o.vecs), k, errs.ErrOutOfRange)
	}
	if v, ok := o.views[k]; ok {
		return v, nil
	}
	v := &View{vecs: o.vecs[:k:k]}
	o.views[k] = v
	return v, nil
}

// Clear removes all vectors and cached views
func (o *Set) Clear() {
	o.vecs = nil
	o.views = make(map[int]*View)
}

// push appends v without copying
func (o *Set) push(v []float64) {
	o.vecs = append(o.vecs, v)
}

// View is an immutable view of the first k vectors of a Set
type View struct {
	vecs [][]float64
}

// Len returns the number of vectors
func (o *View) Len() int {
	return len(o.vecs)
}

// At returns the i-th vector
func (o *View) At(i int) []float64 {
	return o.vecs[i]
}

// Combine returns Σ c_i⋅b_i for i < len(c)
func Combine(b Basis, c []float64) []float64 {
	if len(c) == 0 || b.Len() == 0 {
		return nil
	}
	vs := make([][]float64, len(c))
	for i := range c {
		vs[i] = b.At(i)
	}
	return alg.VecCombine(c, vs)
}
