// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"
	"os"
	"path/filepath"

	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// TinyY replaces non-positive values on logarithmic axes
var TinyY = 1e-16

// PltEntity stores all data for a plot entity (X vs Y)
type PltEntity struct {
	Alias string    // alias
	X     []float64 // x-values
	Y     []float64 // y-values
	Style Style     // style
}

// SplotDat stores all data for one subplot
type SplotDat struct {
	Id     string       // unique identifier; used in file names
	Title  string       // title of subplot
	Xlbl   string       // x-axis label
	Ylbl   string       // y-axis label
	Logy   bool         // logarithmic y-axis
	Yrange []float64    // y range
	Data   []*PltEntity // data and styles to be plotted
}

// Figure holds subplots; each subplot is saved to its own file
type Figure struct {
	Splots []*SplotDat // all subplots
	Csplot *SplotDat   // current subplot
	Width  vg.Length   // width of saved figures; 0 => 12cm
	Height vg.Length   // height of saved figures; 0 => 9cm
}

// Splot activates a new subplot
func (o *Figure) Splot(id, title, xlbl, ylbl string, logy bool) {
	s := &SplotDat{Id: id, Title: title, Xlbl: xlbl, Ylbl: ylbl, Logy: logy}
	o.Splots = append(o.Splots, s)
	o.Csplot = s
}

// Plot adds x-y data to the current subplot
func (o *Figure) Plot(x, y []float64, alias string, sty Style) error {
	if len(x) != len(y) {
		return chk.Err("lengths of x- and y-series are different. len(x)=%d, len(y)=%d: %w", len(x), len(y), errs.ErrDimensionMismatch)
	}
	if o.Csplot == nil {
		o.Splot(io.Sf("%d", len(o.Splots)), "", "", "", false)
	}
	if sty.L == "" {
		sty.L = alias
	}
	o.Csplot.Data = append(o.Csplot.Data, &PltEntity{Alias: alias, X: x, Y: y, Style: sty})
	return nil
}

// Draw saves all subplots
//  dirout -- directory to save figures
//  fname  -- file name; e.g. greedy.png or greedy.svg. Subplots are saved to greedy_<id>.png
func (o *Figure) Draw(dirout, fname string) (files []string, err error) {
	if len(o.Splots) == 0 {
		return nil, chk.Err("figure has no subplots: %w", errs.ErrNotFound)
	}
	if err = os.MkdirAll(dirout, 0777); err != nil {
		return nil, chk.Err("cannot create directory %q:\n%v", dirout, err)
	}
	fnk, ext := io.FnKey(fname), filepath.Ext(fname)
	if ext == "" {
		ext = ".png"
	}
	w, h := o.Width, o.Height
	if w == 0 {
		w = 12 * vg.Centimeter
	}
	if h == 0 {
		h = 9 * vg.Centimeter
	}
	for _, spl := range o.Splots {
		p, e := spl.build()
		if e != nil {
			return files, e
		}
		fn := filepath.Join(dirout, fnk+"_"+spl.Id+ext)
		if e = p.Save(w, h, fn); e != nil {
			return files, chk.Err("cannot save figure %q:\n%v", fn, e)
		}
		files = append(files, fn)
	}
	return
}

// build creates the plot of a subplot
func (o *SplotDat) build() (p *plot.Plot, err error) {
	p = plot.New()
	p.Title.Text = o.Title
	p.X.Label.Text = o.Xlbl
	p.Y.Label.Text = o.Ylbl
	p.Add(plotter.NewGrid())
	if o.Logy {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	for i, d := range o.Data {
		xys := make(plotter.XYs, 0, len(d.X))
		for k := range d.X {
			y := d.Y[k]
			if math.IsNaN(y) || math.IsInf(y, 0) {
				continue
			}
			if o.Logy && y <= 0 {
				y = TinyY
			}
			xys = append(xys, plotter.XY{X: d.X[k], Y: y})
		}
		if len(xys) == 0 {
			continue
		}
		line, points, e := plotter.NewLinePoints(xys)
		if e != nil {
			return nil, chk.Err("cannot plot %q:\n%v", d.Alias, e)
		}
		d.Style.apply(i, line, points)
		if d.Style.M == "" {
			p.Add(line)
			p.Legend.Add(d.Style.L, line)
			continue
		}
		p.Add(line, points)
		p.Legend.Add(d.Style.L, line, points)
	}
	if len(o.Yrange) == 2 {
		p.Y.Min, p.Y.Max = o.Yrange[0], o.Yrange[1]
	}
	p.Legend.Top = true
	return
}
