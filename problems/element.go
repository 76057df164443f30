// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problems

import "github.com/JIMMY-KSU/RBniCS/sparse"

// Line2 is a linear (P1) element on a segment
type Line2 struct {
	Umap []int       // global equation numbers; -1 => prescribed
	L    float64     // length
	K    [][]float64 // conductivity matrix with unit conductivity
	M    [][]float64 // lumped capacity matrix with unit capacity
}

// NewLine2 returns a new element connecting equations a and b
func NewLine2(a, b int, L float64) *Line2 {
	return &Line2{
		Umap: []int{a, b},
		L:    L,
		K:    [][]float64{{1 / L, -1 / L}, {-1 / L, 1 / L}},
		M:    [][]float64{{L / 2, 0}, {0, L / 2}},
	}
}

// AddToKb adds α⋅K to the global matrix Kb
func (o *Line2) AddToKb(Kb *sparse.Matrix, α float64) {
	addToGlobal(Kb, o.Umap, o.K, α)
}

// AddToMb adds α⋅M to the global matrix Mb
func (o *Line2) AddToMb(Mb *sparse.Matrix, α float64) {
	addToGlobal(Mb, o.Umap, o.M, α)
}

// addToGlobal adds α⋅ke to the rows and columns of Kb given by umap
func addToGlobal(Kb *sparse.Matrix, umap []int, ke [][]float64, α float64) {
	for i, I := range umap {
		if I < 0 {
			continue
		}
		for j, J := range umap {
			if J < 0 || ke[i][j] == 0 {
				continue
			}
			Kb.Put(I, J, α*ke[i][j])
		}
	}
}
