// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tests

import (
	"testing"

	"github.com/JIMMY-KSU/RBniCS/inp"
	"github.com/JIMMY-KSU/RBniCS/problems"
	"github.com/JIMMY-KSU/RBniCS/rb"
	"github.com/JIMMY-KSU/RBniCS/sparse"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func Verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// Setup reads a configuration file and allocates its truth problem. Returns nil on failure
func Setup(tst *testing.T, fn, alias string, erasePrev bool) (*inp.Config, rb.Problem) {
	cfg, err := inp.ReadConfig(fn, alias, erasePrev, true)
	if err != nil {
		tst.Errorf("ReadConfig failed:\n%v", err)
		return nil, nil
	}
	p, err := problems.New(cfg)
	if err != nil {
		tst.Errorf("cannot allocate problem:\n%v", err)
		return nil, nil
	}
	if err = cfg.PostProcess(); err != nil {
		tst.Errorf("PostProcess failed:\n%v", err)
		return nil, nil
	}
	return cfg, p
}

// Offline runs the offline stage of the problem in a configuration file. Returns nil on failure
func Offline(tst *testing.T, fn, alias string, erasePrev bool) *rb.Reduction {
	cfg, p := Setup(tst, fn, alias, erasePrev)
	if p == nil {
		return nil
	}
	o, err := rb.NewReduction(p, cfg, sparse.Umfpack{}, nil, chk.Verbose)
	if err != nil {
		tst.Errorf("NewReduction failed:\n%v", err)
		return nil
	}
	if err = o.Offline(); err != nil {
		tst.Errorf("Offline failed:\n%v", err)
		return nil
	}
	return o
}
