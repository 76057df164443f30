// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package online

import (
	"os"
	"path/filepath"

	"github.com/JIMMY-KSU/RBniCS/affine"
	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// operatorData is the persisted form of an Operator
type operatorData struct {
	Name string
	Kind int
	N    int
	Mats [][][]float64
	Vecs [][]float64
}

// OperatorFile returns the file name of an operator of size N
func OperatorFile(dir, name string, N int) string {
	return filepath.Join(dir, io.Sf("%s.%d.op", name, N))
}

// Save writes the blocks of the current size N to <dir>/<name>.<N>.op
func (o *Operator) Save(dir, enctype string) (err error) {
	if err = os.MkdirAll(dir, 0777); err != nil {
		return chk.Err("cannot create directory %q:\n%v", dir, err)
	}
	fn := OperatorFile(dir, o.Name, o.n)
	f, err := os.Create(fn)
	if err != nil {
		return chk.Err("cannot create file %q:\n%v", fn, err)
	}
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = e
		}
	}()
	dat := operatorData{Name: o.Name, Kind: int(o.Kind), N: o.n, Mats: o.mats, Vecs: o.vecs}
	if err = utl.NewEncoder(f, enctype).Encode(&dat); err != nil {
		return chk.Err("cannot encode reduced operator %q:\n%v", o.Name, err)
	}
	return
}

// LoadOperator reads the operator named name with size N.
//  exp -- full-order terms needed to keep extending the operator; may be nil for online use
func LoadOperator(dir, name string, N int, enctype string, exp *affine.Expansion) (o *Operator, err error) {
	fn := OperatorFile(dir, name, N)
	f, err := os.Open(fn)
	if err != nil {
		return nil, chk.Err("cannot open reduced operator %q with N=%d:\n%v: %w", name, N, err, errs.ErrNotFound)
	}
	defer f.Close()
	var dat operatorData
	if err = utl.NewDecoder(f, enctype).Decode(&dat); err != nil {
		return nil, chk.Err("cannot decode reduced operator %q:\n%v", name, err)
	}
	if dat.N != N || dat.Name != name {
		return nil, chk.Err("file %q holds operator %q with N=%d: %w", fn, dat.Name, dat.N, errs.ErrDimensionMismatch)
	}
	o = &Operator{Name: dat.Name, Kind: affine.Kind(dat.Kind), n: dat.N, mats: dat.Mats, vecs: dat.Vecs, exp: exp}
	if o.Kind == affine.MatrixKind {
		o.Q = len(dat.Mats)
	} else {
		o.Q = len(dat.Vecs)
	}
	if exp != nil && (exp.Q() != o.Q || exp.Kind != o.Kind) {
		return nil, chk.Err("stored operator %q has Q=%d but expansion has Q=%d: %w", name, o.Q, exp.Q(), errs.ErrDimensionMismatch)
	}
	if o.mats == nil {
		o.mats = make([][][]float64, o.Q)
	}
	if o.vecs == nil {
		o.vecs = make([][]float64, o.Q)
	}
	o.az = make([][][]float64, o.Q)
	return
}
