// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package errs defines the error kinds shared by the reduction packages
package errs

import (
	"errors"
	"fmt"
)

// error kinds
var (
	ErrDimensionMismatch   = errors.New("dimension mismatch")
	ErrDegenerateCandidate = errors.New("degenerate candidate")
	ErrSingularSystem      = errors.New("singular reduced system")
	ErrAmbiguousComponent  = errors.New("ambiguous component mapping")
	ErrEmptyTrainingSet    = errors.New("empty training set")
	ErrOutOfRange          = errors.New("index out of range")
	ErrShorterBasis        = errors.New("on-disk basis is longer than the one in memory")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflicting registration")
)

// SingularError reports a reduced system whose pivot vanished
type SingularError struct {
	N     int       // size of reduced system
	Mu    []float64 // parameter
	Pivot float64   // offending (relative) pivot
}

// Error implements error
func (o *SingularError) Error() string {
	return fmt.Sprintf("%v: N=%d mu=%v pivot=%g", ErrSingularSystem, o.N, o.Mu, o.Pivot)
}

// Unwrap makes errors.Is(err, ErrSingularSystem) hold
func (o *SingularError) Unwrap() error {
	return ErrSingularSystem
}
