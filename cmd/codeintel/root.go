// Copyright 2026 CodeIntel Authors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codeintel-oss/engine/internal/output"
)

const version = "0.1.0"

var (
	verboseFlag    bool
	debugFlag      bool
	noBannerFlag   bool
	noColorFlag    bool
	jsonOutputFlag bool
	configPathFlag string
	envFileFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "codeintel",
	Short: "Layered code-intelligence engine: IR build, taint matching, graph queries",
	Long: `codeintel builds a layered intermediate representation of a repository
(structural, semantic, and interprocedural layers), matches compiled taint
rules against it, and answers reachability/dataflow queries over the
resulting graph.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if cmd.Name() == "help" || (len(os.Args) == 1 || (len(os.Args) == 2 && (os.Args[1] == "--help" || os.Args[1] == "-h"))) {
			logger := output.NewLogger(output.VerbosityDefault)
			if output.ShouldShowBanner(logger.IsTTY(), noBannerFlag) {
				output.PrintBanner(logger.GetWriter(), version, output.DefaultBannerOptions())
			} else if logger.IsTTY() && !noBannerFlag {
				fmt.Fprintln(os.Stderr, output.CompactBanner(version))
			}
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "verbose progress output")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "debug-level logging with elapsed-time prefixes")
	rootCmd.PersistentFlags().BoolVar(&noBannerFlag, "no-banner", false, "suppress the startup banner")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored error output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutputFlag, "json", false, "emit machine-readable JSON for errors and reports")
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "codeintel.yaml", "path to the project config file")
	rootCmd.PersistentFlags().StringVar(&envFileFlag, "env-file", ".env", "path to an optional .env overlay")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(repairCmd)
}

func verbosity() output.VerbosityLevel {
	switch {
	case debugFlag:
		return output.VerbosityDebug
	case verboseFlag:
		return output.VerbosityVerbose
	default:
		return output.VerbosityDefault
	}
}
