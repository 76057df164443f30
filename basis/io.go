// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import (
	"os"
	"path/filepath"

	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Save writes the set to dir as <name>.length plus one file <name>.<i> per vector.
// It refuses to overwrite a longer basis already stored in dir
//  enctype -- "gob" or "json"
func (o *Set) Save(dir, enctype string) (err error) {
	n, found, err := StoredLength(dir, o.Name, enctype)
	if err != nil {
		return
	}
	if found && n > o.Len() {
		return chk.Err("cannot save basis %q with N=%d over stored basis with N=%d: %w", o.Name, o.Len(), n, errs.ErrShorterBasis)
	}
	if err = os.MkdirAll(dir, 0777); err != nil {
		return chk.Err("cannot create directory %q:\n%v", dir, err)
	}
	for i, v := range o.vecs {
		if err = encodeFile(filepath.Join(dir, io.Sf("%s.%d", o.Name, i)), enctype, v); err != nil {
			return
		}
	}
	return encodeFile(filepath.Join(dir, o.Name+".length"), enctype, o.Len())
}

// Load reads a set saved with Save. Nothing is loaded if the set is not empty or if dir has
// no stored basis
func (o *Set) Load(dir, enctype string) (loaded bool, err error) {
	if o.Len() > 0 {
		return false, nil
	}
	n, found, err := StoredLength(dir, o.Name, enctype)
	if err != nil || !found {
		return false, err
	}
	vecs := make([][]float64, n)
	for i := 0; i < n; i++ {
		if err = decodeFile(filepath.Join(dir, io.Sf("%s.%d", o.Name, i)), enctype, &vecs[i]); err != nil {
			return false, err
		}
		if len(vecs[i]) != o.dim {
			return false, chk.Err("stored vector %d of basis %q has length %d but dim is %d: %w", i, o.Name, len(vecs[i]), o.dim, errs.ErrDimensionMismatch)
		}
	}
	o.Clear()
	o.vecs = vecs
	return true, nil
}

// StoredLength returns the length of a basis stored in dir
func StoredLength(dir, name, enctype string) (n int, found bool, err error) {
	fn := filepath.Join(dir, name+".length")
	if _, e := os.Stat(fn); os.IsNotExist(e) {
		return 0, false, nil
	}
	if err = decodeFile(fn, enctype, &n); err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// encodeFile writes one value to a file
func encodeFile(fn, enctype string, v interface{}) (err error) {
	f, err := os.Create(fn)
	if err != nil {
		return chk.Err("cannot create file %q:\n%v", fn, err)
	}
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = e
		}
	}()
	if err = utl.NewEncoder(f, enctype).Encode(v); err != nil {
		return chk.Err("cannot encode %q:\n%v", fn, err)
	}
	return
}

// decodeFile reads one value from a file
func decodeFile(fn, enctype string, v interface{}) (err error) {
	f, err := os.Open(fn)
	if err != nil {
		return chk.Err("cannot open file %q:\n%v", fn, err)
	}
	defer f.Close()
	if err = utl.NewDecoder(f, enctype).Decode(v); err != nil {
		return chk.Err("cannot decode %q:\n%v", fn, err)
	}
	return
}
