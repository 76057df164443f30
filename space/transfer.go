// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package space

import (
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
)

// Kind of transfer
type Kind int

const (
	Equal    Kind = iota // same structure: copy
	Extend               // source is smaller: zero-extend into destination
	Restrict             // source is larger: keep matched components only
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case Equal:
		return "equal"
	case Extend:
		return "extend"
	case Restrict:
		return "restrict"
	}
	return "unknown"
}

// pair maps one source sub-space onto one destination sub-space
type pair struct {
	src, dst int
}

// Transfer is a compiled mapping of vectors from Src into Dst
type Transfer struct {
	Kind  Kind   // kind of transfer
	Src   *Space // source space
	Dst   *Space // destination space
	pairs []pair // matched sub-spaces
}

// NewTransfer compares the sub-element signatures of src and dst and compiles the transfer.
//  Input:
//   srcComp -- restricts the source to one component; "" means all
//   dstComp -- restricts the destination to one component; "" means all
//  Note: the correspondence must be unique. When an unused sub-space of the larger space has the
//        same signature as a matched one, the mapping is ambiguous and an error is returned
func NewTransfer(src, dst *Space, srcComp, dstComp string) (o *Transfer, err error) {

	// selected sub-spaces
	isrc, err := src.indices(srcComp)
	if err != nil {
		return
	}
	idst, err := dst.indices(dstComp)
	if err != nil {
		return
	}
	o = &Transfer{Src: src, Dst: dst}

	// equal structure
	if len(isrc) == len(idst) {
		same := true
		for k := range isrc {
			if src.Subs[isrc[k]].Signature != dst.Subs[idst[k]].Signature {
				same = false
				break
			}
		}
		if same {
			o.Kind = Equal
			for k := range isrc {
				o.pairs = append(o.pairs, pair{isrc[k], idst[k]})
			}
			return o, o.check()
		}
	}

	// source smaller than destination
	m, ok, err := match(src, isrc, dst, idst)
	if err != nil {
		return nil, err
	}
	if ok {
		o.Kind = Extend
		if len(isrc) == len(idst) {
			o.Kind = Equal
		}
		for _, p := range m {
			o.pairs = append(o.pairs, pair{p[0], p[1]})
		}
		return o, o.check()
	}

	// source larger than destination
	m, ok, err = match(dst, idst, src, isrc)
	if err != nil {
		return nil, err
	}
	if ok {
		o.Kind = Restrict
		for _, p := range m {
			o.pairs = append(o.pairs, pair{p[1], p[0]})
		}
		return o, o.check()
	}
	return nil, chk.Err("spaces %q and %q have no sub-element correspondence: %w", src.Name, dst.Name, errs.ErrDimensionMismatch)
}

// Apply maps v from Src into a new vector of Dst scaled by weight
func (o *Transfer) Apply(v []float64, weight float64) (res []float64, err error) {
	if len(v) != o.Src.Dim() {
		return nil, chk.Err("cannot transfer vector of length %d from space %q with dim %d: %w", len(v), o.Src.Name, o.Src.Dim(), errs.ErrDimensionMismatch)
	}
	res = make([]float64, o.Dst.Dim())
	for _, p := range o.pairs {
		a := o.Src.Offset(p.src)
		b := o.Dst.Offset(p.dst)
		for k := 0; k < o.Src.Subs[p.src].Dim; k++ {
			res[b+k] = weight * v[a+k]
		}
	}
	return
}

// check checks that matched sub-spaces have the same number of dofs
func (o *Transfer) check() error {
	for _, p := range o.pairs {
		s, d := o.Src.Subs[p.src], o.Dst.Subs[p.dst]
		if s.Dim != d.Dim {
			return chk.Err("sub-spaces %q and %q share signature %q but have %d and %d dofs: %w", s.Name, d.Name, s.Signature, s.Dim, d.Dim, errs.ErrDimensionMismatch)
		}
	}
	return nil
}

// match maps every selected sub-space of the smaller space a onto a distinct sub-space of the
// larger space b with the same signature. It returns pairs [ia, ib]
func match(a *Space, ia []int, b *Space, ib []int) (pairs [][2]int, ok bool, err error) {
	used := make(map[int]bool)
	for _, i := range ia {
		found := false
		for _, j := range ib {
			if !used[j] && a.Subs[i].Signature == b.Subs[j].Signature {
				used[j] = true
				pairs = append(pairs, [2]int{i, j})
				found = true
				break
			}
		}
		if !found {
			return nil, false, nil
		}
	}
	for j := range used {
		for _, k := range ib {
			if !used[k] && b.Subs[k].Signature == b.Subs[j].Signature {
				return nil, false, chk.Err("sub-spaces %q and %q of %q share signature %q: %w", b.Subs[j].Name, b.Subs[k].Name, b.Name, b.Subs[j].Signature, errs.ErrAmbiguousComponent)
			}
		}
	}
	return pairs, true, nil
}
