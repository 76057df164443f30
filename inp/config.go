// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a YAML (or JSON) configuration file
package inp

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// SamplingData holds data for generating parameter sets
type SamplingData struct {
	N        int    `yaml:"n"`        // number of parameters
	Sampling string `yaml:"sampling"` // "uniform", "log", "random", "lhs" or "halton"
	Seed     int    `yaml:"seed"`     // seed for random generators; 0 => use time
}

// GramSchmidtData holds data for the orthonormalisation
type GramSchmidtData struct {
	Tol float64 `yaml:"tol"` // relative rejection tolerance
}

// PodData holds data for the POD compression
type PodData struct {
	N      int     `yaml:"n"`      // max number of modes; 0 => nmax
	Energy float64 `yaml:"energy"` // retained energy fraction; 1 => count criterion only
	Noise  float64 `yaml:"noise"`  // eigenvalues below noise⋅λmax are discarded
}

// PodGreedyData holds data for the POD step inside the greedy loop of time-dependent problems
type PodGreedyData struct {
	N   int     `yaml:"n"`   // max number of modes added per greedy iteration
	Tol float64 `yaml:"tol"` // energy tolerance of the inner POD; retained fraction = 1 - tol
}

// OnlineData holds data for the reduced solver
type OnlineData struct {
	PivotTol float64 `yaml:"pivottol"` // relative pivot tolerance
}

// TimeControl holds data for defining the time stepping
type TimeControl struct {
	Dt    float64 `yaml:"dt"`    // time step size
	Tf    float64 `yaml:"tf"`    // final time
	Theta float64 `yaml:"theta"` // θ-method; 1 => backward Euler
}

// MeshData holds data for the 1D thermal-block problems
type MeshData struct {
	Nelem   int `yaml:"nelem"`   // number of elements
	Nblocks int `yaml:"nblocks"` // number of blocks with different conductivity
}

// AnalysisData holds data for error and speedup analyses
type AnalysisData struct {
	Nmax int  `yaml:"nmax"` // largest reduced size to analyse; 0 => nmax
	Plot bool `yaml:"plot"` // save plots
}

// Config holds all input data
type Config struct {

	// global information
	Desc    string `yaml:"desc"`    // description of run
	Problem string `yaml:"problem"` // name of truth problem. ex: "thermalblock", "thermalblock-unsteady"
	Method  string `yaml:"method"`  // reduction method: "rb", "pod" or "pod-greedy"
	DirOut  string `yaml:"dirout"`  // directory for output; e.g. /tmp/rbnics
	Encoder string `yaml:"encoder"` // encoder name; "gob" or "json"

	// offline stage
	Nmax        int             `yaml:"nmax"`        // max size of the reduced basis
	Tol         float64         `yaml:"tol"`         // greedy tolerance on the error indicator
	First       []float64       `yaml:"first"`       // first parameter of the greedy loop; empty => none
	Indicator   string          `yaml:"indicator"`   // "error" (true error) or "residual" (a posteriori estimator)
	Training    SamplingData    `yaml:"training"`    // training set
	GramSchmidt GramSchmidtData `yaml:"gramschmidt"` // orthonormalisation
	Pod         PodData         `yaml:"pod"`         // POD compression
	PodGreedy   PodGreedyData   `yaml:"podgreedy"`   // POD-greedy inner compression
	Online      OnlineData      `yaml:"online"`      // reduced solver

	// problem definition
	Ranges [][]float64 `yaml:"ranges"` // [nmu][2] parameter ranges
	Time   TimeControl `yaml:"time"`   // time control
	Mesh   MeshData    `yaml:"mesh"`   // mesh

	// analyses
	Testing  SamplingData `yaml:"testing"`  // testing set
	Analysis AnalysisData `yaml:"analysis"` // analyses

	// derived
	Key string // configuration key; e.g. thermal01.yaml => thermal01 or thermal01-alias
}

// SetDefault sets default values
func (o *Config) SetDefault() {
	o.Method = "rb"
	o.Encoder = "gob"
	o.Nmax = 10
	o.Tol = 1e-6
	o.Indicator = "error"
	o.Training = SamplingData{N: 100, Sampling: "uniform"}
	o.Testing = SamplingData{N: 10, Sampling: "random", Seed: 1}
	o.GramSchmidt.Tol = 1e-10
	o.Pod = PodData{Energy: 1, Noise: 1e-12}
	o.PodGreedy = PodGreedyData{N: 1, Tol: 1e-2}
	o.Online.PivotTol = 1e-13
	o.Time.Theta = 1
	o.Mesh = MeshData{Nelem: 100, Nblocks: 2}
}

// PostProcess sets derived values and checks input data
func (o *Config) PostProcess() (err error) {

	// names
	o.Method = strings.ToLower(o.Method)
	o.Indicator = strings.ToLower(o.Indicator)
	o.Training.Sampling = strings.ToLower(o.Training.Sampling)
	o.Testing.Sampling = strings.ToLower(o.Testing.Sampling)
	switch o.Method {
	case "rb", "pod", "pod-greedy":
	default:
		return chk.Err("reduction method %q is not available: %w", o.Method, errs.ErrNotFound)
	}
	switch o.Indicator {
	case "error", "residual":
	default:
		return chk.Err("error indicator %q is not available: %w", o.Indicator, errs.ErrNotFound)
	}

	// encoder type
	if o.Encoder != "gob" && o.Encoder != "json" {
		o.Encoder = "gob"
	}

	// sizes
	if o.Nmax < 1 {
		return chk.Err("nmax must be positive. nmax=%d is invalid: %w", o.Nmax, errs.ErrOutOfRange)
	}
	if o.Pod.N < 1 {
		o.Pod.N = o.Nmax
	}
	if o.Pod.Energy <= 0 || o.Pod.Energy > 1 {
		o.Pod.Energy = 1
	}
	if o.PodGreedy.N < 1 {
		o.PodGreedy.N = 1
	}
	if o.Analysis.Nmax < 1 || o.Analysis.Nmax > o.Nmax {
		o.Analysis.Nmax = o.Nmax
	}

	// ranges
	for i, r := range o.Ranges {
		if len(r) != 2 || r[0] > r[1] {
			return chk.Err("range %d of parameter must be [min, max]. %v is invalid: %w", i, r, errs.ErrDimensionMismatch)
		}
	}
	if len(o.First) > 0 && len(o.Ranges) > 0 && len(o.First) != len(o.Ranges) {
		return chk.Err("first parameter has %d components but there are %d ranges: %w", len(o.First), len(o.Ranges), errs.ErrDimensionMismatch)
	}

	// time control
	if o.Time.Tf > 0 && o.Time.Dt < 1e-14 {
		o.Time.Dt = o.Time.Tf / 100
	}
	if o.Time.Theta <= 0 || o.Time.Theta > 1 {
		o.Time.Theta = 1
	}
	return
}

// ReadConfig reads all input data from a YAML or JSON file
//  alias        -- appended to the key; e.g. thermal01.yaml => thermal01-alias
//  erasePrev    -- erase previous results with the same key
//  createDirOut -- create the output directory
func ReadConfig(path, alias string, erasePrev, createDirOut bool) (o *Config, err error) {

	// read file
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read configuration file %q:\n%v", path, err)
	}

	// set default values and decode
	o = new(Config)
	o.SetDefault()
	if err = yaml.Unmarshal(b, o); err != nil {
		return nil, chk.Err("cannot unmarshal configuration file %q:\n%v", path, err)
	}

	// filename key
	fnkey := io.FnKey(filepath.Base(path))
	o.Key = fnkey
	if alias != "" {
		o.Key += "-" + alias
	}

	// output directory
	if o.DirOut == "" {
		o.DirOut = "/tmp/rbnics/" + fnkey
	}
	o.DirOut = os.ExpandEnv(o.DirOut)
	if createDirOut {
		if err = os.MkdirAll(o.DirOut, 0777); err != nil {
			return nil, chk.Err("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
	}

	// erase previous results
	if erasePrev {
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, o.Key))
	}

	// derived values
	if err = o.PostProcess(); err != nil {
		return nil, chk.Err("configuration file %q:\n%w", path, err)
	}
	return
}

// Dir returns the directory where files of this run are stored
func (o *Config) Dir() string {
	return filepath.Join(o.DirOut, o.Key)
}
