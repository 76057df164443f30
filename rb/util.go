// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rb

import (
	"errors"
	"sort"

	"github.com/JIMMY-KSU/RBniCS/errs"
	"gonum.org/v1/gonum/floats"
)

// dot returns u⋅v
func dot(u, v []float64) float64 {
	return floats.Dot(u, v)
}

// sortedKeys returns the keys of a map in increasing order
func sortedKeys[T any](m map[string]T) (keys []string) {
	keys = make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}

// isSingular tells whether err is a singular reduced system
func isSingular(err error) bool {
	return errors.Is(err, errs.ErrSingularSystem)
}
