// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// flags
var (
	alias     string // alias appended to the configuration key
	verbose   bool   // show messages
	erasePrev bool   // erase previous results
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
			os.Exit(1)
		}
	}()

	// logging
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// commands
	rootCmd := &cobra.Command{
		Use:   "rbnics",
		Short: "Reduced order modelling of parametrized problems",
		Long: `Reduced basis and POD-Galerkin methods for parametrized linear problems.

The offline stage builds the reduced basis and saves it to the output directory of the
configuration file; the online stage solves the reduced problem for new parameters.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&alias, "alias", "", "alias appended to the configuration key")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", true, "show messages")
	rootCmd.AddCommand(offlineCmd(), onlineCmd(), analysisCmd())

	// run
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
