// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package problems implements truth problems assembled with finite elements
package problems

import (
	"sort"

	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/JIMMY-KSU/RBniCS/inp"
	"github.com/JIMMY-KSU/RBniCS/rb"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// allocators holds all available problems
var allocators = map[string]func(cfg *inp.Config) (rb.Problem, error){}

// New allocates the truth problem named cfg.Problem. Empty ranges are replaced by the
// default ranges of the problem
func New(cfg *inp.Config) (rb.Problem, error) {
	alloc, ok := allocators[cfg.Problem]
	if !ok {
		return nil, chk.Err("cannot find problem named %q. available: %v: %w", cfg.Problem, Names(), errs.ErrNotFound)
	}
	return alloc(cfg)
}

// Names returns the names of all available problems
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// checkRanges sets default ranges or checks the number of parameters
func checkRanges(cfg *inp.Config, defaults [][]float64) error {
	if len(cfg.Ranges) == 0 {
		cfg.Ranges = defaults
		if len(cfg.First) > 0 && len(cfg.First) != len(defaults) {
			return chk.Err("first parameter has %d components but problem %q has %d parameters: %w", len(cfg.First), cfg.Problem, len(defaults), errs.ErrDimensionMismatch)
		}
		io.Pforan("> Problem %q: using default ranges %v\n", cfg.Problem, defaults)
		return nil
	}
	if len(cfg.Ranges) != len(defaults) {
		return chk.Err("problem %q has %d parameters but %d ranges were given: %w", cfg.Problem, len(defaults), len(cfg.Ranges), errs.ErrDimensionMismatch)
	}
	return nil
}
