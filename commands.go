// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/JIMMY-KSU/RBniCS/errs"
	"github.com/JIMMY-KSU/RBniCS/inp"
	"github.com/JIMMY-KSU/RBniCS/online"
	"github.com/JIMMY-KSU/RBniCS/out"
	"github.com/JIMMY-KSU/RBniCS/problems"
	"github.com/JIMMY-KSU/RBniCS/rb"
	"github.com/JIMMY-KSU/RBniCS/sparse"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// offlineCmd returns the command running the offline stage
func offlineCmd() *cobra.Command {
	var mu string
	cmd := &cobra.Command{
		Use:   "offline <config.yaml>",
		Short: "Build the reduced basis",
		Example: `  rbnics offline examples/thermalblock.yaml
  rbnics offline examples/thermalblock.yaml --erase --alias fine --mu 2.5,0.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(args[0], erasePrev, true)
			if err != nil {
				return err
			}
			if _, err = s.offline(); err != nil {
				return err
			}
			return s.solveAt(mu, 0)
		},
	}
	cmd.Flags().BoolVar(&erasePrev, "erase", false, "erase previous results and start from scratch")
	cmd.Flags().StringVar(&mu, "mu", "", "comma separated parameter values; solve the reduced problem afterwards")
	return cmd
}

// onlineCmd returns the command solving the reduced problem
func onlineCmd() *cobra.Command {
	var mu string
	var N int
	cmd := &cobra.Command{
		Use:     "online <config.yaml>",
		Short:   "Solve the reduced problem for a new parameter",
		Example: `  rbnics online examples/thermalblock.yaml --mu 2.5,0.5 --n 3`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(args[0], false, false)
			if err != nil {
				return err
			}
			return s.solveAt(mu, N)
		},
	}
	cmd.Flags().StringVar(&mu, "mu", "", "comma separated parameter values")
	cmd.Flags().IntVar(&N, "n", 0, "size of the reduced basis; 0 => all")
	cmd.MarkFlagRequired("mu")
	return cmd
}

// analysisCmd returns the command running error and speedup analyses
func analysisCmd() *cobra.Command {
	var mu string
	cmd := &cobra.Command{
		Use:     "analysis <config.yaml>",
		Short:   "Run error and speedup analyses over the testing set",
		Example: `  rbnics analysis examples/thermalblock.yaml --mu 2.5,0.5`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(args[0], erasePrev, true)
			if err != nil {
				return err
			}
			if err = s.analysis(); err != nil {
				return err
			}
			return s.solveAt(mu, 0)
		},
	}
	cmd.Flags().StringVar(&mu, "mu", "", "comma separated parameter values; solve the reduced problem afterwards")
	return cmd
}

// session holds the truth problem and the registry of reduced problems shared by the stages of
// one command
type session struct {
	cfg *inp.Config  // input data
	p   rb.Problem   // truth problem
	reg *rb.Registry // truth => reduced problems
}

// newSession reads the configuration and allocates the truth problem
func newSession(path string, erase, create bool) (o *session, err error) {
	o = &session{reg: rb.NewRegistry()}
	if o.cfg, err = inp.ReadConfig(path, alias, erase, create); err != nil {
		return nil, err
	}
	if o.p, err = problems.New(o.cfg); err != nil {
		return nil, err
	}
	if err = o.cfg.PostProcess(); err != nil {
		return nil, err
	}
	log.Info().Str("config", path).Str("problem", o.p.Name()).Int("ndof", o.p.Dim()).Str("method", o.cfg.Method).Msg("setup")
	return
}

// offline runs the offline stage
func (o *session) offline() (red *rb.Reduction, err error) {
	cfg := o.cfg
	start := time.Now()
	if red, err = rb.NewReduction(o.p, cfg, sparse.Umfpack{}, o.reg, verbose); err != nil {
		return
	}
	if err = red.Offline(); err != nil {
		return
	}
	log.Info().Int("N", red.Red.N()).Str("state", red.State.String()).Bool("resumed", red.Resumed).
		Bool("forced", red.Forced).Dur("elapsed", time.Since(start)).Str("dir", cfg.Dir()).Msg("offline stage completed")

	// plots
	if cfg.Analysis.Plot {
		fig := new(out.Figure)
		if len(red.Log) > 0 {
			if err = out.PlotGreedy(fig, red.Log, cfg.Tol); err != nil {
				return
			}
		}
		if len(red.Pod) > 0 {
			if err = out.PlotEigenvalues(fig, red.Pod); err != nil {
				return
			}
		}
		if len(fig.Splots) > 0 {
			files, e := fig.Draw(cfg.Dir(), "offline.png")
			if e != nil {
				return red, e
			}
			log.Info().Strs("files", files).Msg("plots saved")
		}
	}
	return
}

// reduced returns the reduced problem of the session, loading it from disk if the offline stage
// did not run in this session
func (o *session) reduced() (red *rb.ReducedProblem, err error) {
	cfg := o.cfg
	if red, err = rb.NewReducedProblem(o.p, &online.Solver{PivotTol: cfg.Online.PivotTol}, o.reg); err != nil {
		return
	}
	if red.N() == 0 {
		loaded, e := red.Load(cfg.Dir(), cfg.Encoder)
		if e != nil {
			return nil, e
		}
		if !loaded {
			return nil, chk.Err("cannot find reduced basis in %q; run the offline stage first: %w", cfg.Dir(), errs.ErrNotFound)
		}
	}
	if red.Pspace == nil {
		if red.Pspace, err = rb.NewParameterSpace(cfg.Ranges); err != nil {
			return
		}
	}
	return
}

// solveAt parses mu and solves the reduced problem with N basis vectors. An empty mu does nothing
func (o *session) solveAt(mu string, N int) (err error) {
	if mu == "" {
		return
	}
	μ, err := parseMu(mu)
	if err != nil {
		return
	}
	return o.online(μ, N)
}

// online solves the reduced problem at μ
func (o *session) online(μ rb.Parameter, N int) (err error) {
	red, err := o.reduced()
	if err != nil {
		return
	}
	if err = red.SetMu(μ); err != nil {
		return
	}

	// solve
	start := time.Now()
	var u []float64
	if _, ok := o.p.(rb.TimeProblem); ok {
		traj, e := red.SolveTrajectory(N)
		if e != nil {
			return e
		}
		io.Pf("> reduced solution at t = tf:\n%v\n", traj[len(traj)-1])
		u, err = red.Reconstruct(traj[len(traj)-1])
	} else {
		uN, e := red.Solve(N)
		if e != nil {
			return e
		}
		io.Pf("> reduced solution:\n%v\n", uN)
		u, err = red.Reconstruct(uN)
	}
	if err != nil {
		return
	}
	elapsed := time.Since(start)
	if tb, ok := o.p.(interface{ Temperature([]float64) []float64 }); ok {
		io.Pf("> temperatures:\n%v\n", tb.Temperature(u))
	}
	log.Info().Floats64("mu", μ).Int("N", red.N()).Float64("norm", red.X.Norm(u)).Dur("elapsed", elapsed).Msg("online solve completed")
	return
}

// analysis runs the offline stage followed by error and speedup analyses on the testing set
func (o *session) analysis() (err error) {
	red, err := o.offline()
	if err != nil {
		return
	}
	cfg := o.cfg
	testing, err := red.Pspace.Generate(cfg.Testing.N, cfg.Testing.Sampling, cfg.Testing.Seed)
	if err != nil {
		return
	}
	errRows, err := red.ErrorAnalysis(testing, cfg.Analysis.Nmax)
	if err != nil {
		return
	}
	speedRows, err := red.SpeedupAnalysis(testing, cfg.Analysis.Nmax)
	if err != nil {
		return
	}
	errTable, speedTable := rb.ErrorTable(errRows), rb.SpeedupTable(speedRows)
	io.Pf("\n%s\n%s", errTable, speedTable)
	if err = out.SaveTable(cfg.Dir(), "errors.txt", errTable); err != nil {
		return
	}
	if err = out.SaveTable(cfg.Dir(), "speedup.txt", speedTable); err != nil {
		return
	}
	last := errRows[len(errRows)-1]
	log.Info().Int("ntest", len(testing)).Int("N", last.N).Float64("maxerr", last.MaxErr).Int("nsingular", last.Nsingular).Msg("analysis completed")

	// plots
	if cfg.Analysis.Plot {
		fig := new(out.Figure)
		if err = out.PlotErrors(fig, errRows); err != nil {
			return
		}
		if err = out.PlotSpeedup(fig, speedRows); err != nil {
			return
		}
		files, e := fig.Draw(cfg.Dir(), "analysis.png")
		if e != nil {
			return e
		}
		log.Info().Strs("files", files).Msg("plots saved")
	}
	return
}

// parseMu parses comma separated values
func parseMu(s string) (μ rb.Parameter, err error) {
	for _, f := range strings.Split(s, ",") {
		v, e := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if e != nil {
			return nil, chk.Err("cannot parse parameter %q:\n%v", s, e)
		}
		μ = append(μ, v)
	}
	return
}
