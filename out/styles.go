// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"image/color"

	"github.com/cpmech/gosl/io"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Style holds formatting codes
type Style struct {
	C  color.Color // color; nil => palette colour of entity
	M  string      // marker: "" (none), "o", "s", "^", "x" or "+"
	Ls string      // line style: "" or "-" (solid), "--" (dashed), ":" (dotted)
	Lw float64     // line width in points; 0 => 1
	L  string      // label
}

// apply sets the style of line and points. i is the index of the entity in the subplot
func (o Style) apply(i int, line *plotter.Line, points *plotter.Scatter) {
	c := o.C
	if c == nil {
		c = plotutil.Color(i)
	}
	line.Color = c
	line.Width = vg.Points(1)
	if o.Lw > 0 {
		line.Width = vg.Points(o.Lw)
	}
	switch o.Ls {
	case "--":
		line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	case ":":
		line.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	}
	points.Color = c
	switch o.M {
	case "s":
		points.Shape = draw.BoxGlyph{}
	case "^":
		points.Shape = draw.TriangleGlyph{}
	case "x":
		points.Shape = draw.CrossGlyph{}
	case "+":
		points.Shape = draw.PlusGlyph{}
	default:
		points.Shape = draw.CircleGlyph{}
	}
}

// GetLabel returns the axis label of a quantity
func GetLabel(key, unit string) string {
	var l string
	switch key {
	case "N":
		l = "N"
	case "indicator":
		l = "max error indicator"
	case "err":
		l = "relative error"
	case "est":
		l = "error estimate"
	case "eff":
		l = "effectivity"
	case "speedup":
		l = "speedup"
	case "eig":
		l = "eigenvalue"
	case "mode":
		l = "mode"
	case "t":
		l = "t"
	default:
		l = key
	}
	if unit != "" {
		l += io.Sf(" [%s]", unit)
	}
	return l
}
