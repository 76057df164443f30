// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package space

import (
	"testing"

	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

// stokes returns a (velocity, pressure) space
func stokes() *Space {
	return NewSpace("stokes",
		&Sub{Name: "u", Signature: "P2^2", Dim: 4},
		&Sub{Name: "p", Signature: "P1", Dim: 2},
	)
}

func Test_space01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("space01. offsets and collapse")

	s := stokes()
	chk.Int(tst, "dim", s.Dim(), 6)
	chk.Int(tst, "offset(p)", s.Offset(1), 4)

	p, err := s.Collapse("p")
	if err != nil {
		tst.Errorf("Collapse failed:\n%v", err)
		return
	}
	chk.Int(tst, "dim(p)", p.Dim(), 2)

	_, err = s.Find("T")
	require.ErrorIs(tst, err, errs.ErrNotFound)
}

func Test_transfer01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("transfer01. equal, extend and restrict")

	s := stokes()
	p, _ := s.Collapse("p")
	v := []float64{1, 2, 3, 4, 5, 6}

	// equal
	eq, err := NewTransfer(s, stokes(), "", "")
	if err != nil {
		tst.Errorf("NewTransfer failed:\n%v", err)
		return
	}
	chk.String(tst, eq.Kind.String(), "equal")
	res, _ := eq.Apply(v, 2)
	chk.Array(tst, "equal", 1e-15, res, []float64{2, 4, 6, 8, 10, 12})

	// restrict
	rs, err := NewTransfer(s, p, "", "")
	if err != nil {
		tst.Errorf("NewTransfer failed:\n%v", err)
		return
	}
	chk.String(tst, rs.Kind.String(), "restrict")
	res, _ = rs.Apply(v, 1)
	io.Pforan("restricted = %v\n", res)
	chk.Array(tst, "restrict", 1e-15, res, []float64{5, 6})

	// extend
	ex, err := NewTransfer(p, s, "", "")
	if err != nil {
		tst.Errorf("NewTransfer failed:\n%v", err)
		return
	}
	chk.String(tst, ex.Kind.String(), "extend")
	res, _ = ex.Apply([]float64{5, 6}, 1)
	chk.Array(tst, "extend", 1e-15, res, []float64{0, 0, 0, 0, 5, 6})

	// wrong length
	_, err = ex.Apply(v, 1)
	require.ErrorIs(tst, err, errs.ErrDimensionMismatch)
}

func Test_transfer02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("transfer02. ambiguity and component selection")

	// two components with the same element
	s := NewSpace("optctrl",
		&Sub{Name: "y", Signature: "P1", Dim: 3},
		&Sub{Name: "u", Signature: "P1", Dim: 3},
		&Sub{Name: "p", Signature: "P1", Dim: 3},
	)
	y := NewScalar("state", "P1", 3)

	_, err := NewTransfer(y, s, "", "")
	require.ErrorIs(tst, err, errs.ErrAmbiguousComponent)
	_, err = NewTransfer(s, y, "", "")
	require.ErrorIs(tst, err, errs.ErrAmbiguousComponent)

	// explicit components remove the ambiguity
	tr, err := NewTransfer(s, y, "p", "")
	if err != nil {
		tst.Errorf("NewTransfer failed:\n%v", err)
		return
	}
	chk.String(tst, tr.Kind.String(), "equal")
	res, _ := tr.Apply([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, 1)
	chk.Array(tst, "p", 1e-15, res, []float64{7, 8, 9})

	tr, err = NewTransfer(y, s, "", "u")
	if err != nil {
		tst.Errorf("NewTransfer failed:\n%v", err)
		return
	}
	res, _ = tr.Apply([]float64{1, 2, 3}, 1)
	chk.Array(tst, "u", 1e-15, res, []float64{0, 0, 0, 1, 2, 3, 0, 0, 0})

	// incompatible
	q := NewScalar("q", "P3", 3)
	_, err = NewTransfer(q, s, "", "")
	require.ErrorIs(tst, err, errs.ErrDimensionMismatch)
}
