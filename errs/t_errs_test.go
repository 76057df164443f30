// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errs

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/require"
)

func Test_errs01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("errs01. singular error unwraps")

	var err error = &SingularError{N: 3, Mu: []float64{1, 2}, Pivot: 1e-20}
	wrapped := chk.Err("online solve failed: %w", err)
	require.ErrorIs(tst, wrapped, ErrSingularSystem)

	var serr *SingularError
	require.True(tst, errors.As(wrapped, &serr))
	chk.Int(tst, "N", serr.N, 3)
	chk.Array(tst, "mu", 1e-17, serr.Mu, []float64{1, 2})
}
