// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the formulactl command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stacklok/toolhive-formulas/config"
	"github.com/stacklok/toolhive-formulas/env"
	"github.com/stacklok/toolhive-formulas/functions"
	"github.com/stacklok/toolhive-formulas/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Debug  bool
	Config string

	// Env is the environment the limits and logger are read from.
	Env env.Reader
}

// NewRootCommand creates the root command for formulactl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{Env: &env.OSReader{}})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formulactl",
		Short: "Evaluate spreadsheet-style formulas",
		Long: `Evaluate spreadsheet-style formula functions such as COUNTIF, SUMIF and
TABLESUMIFS over data from YAML context files and xlsx worksheets.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "limits file (defaults to the XDG config dirs)")

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewFunctionsCommand(opts))

	return cmd
}

// loadLimits resolves limits from the --config file, the discovered XDG file
// or the defaults, then applies environment overrides.
func loadLimits(opts *RootOptions) (config.Limits, error) {
	limits := config.Default()
	path := opts.Config
	if path == "" {
		path, _ = config.Discover()
	}
	if path != "" {
		var err error
		if limits, err = config.Load(path); err != nil {
			return config.Limits{}, err
		}
	}
	return config.FromEnv(opts.Env, limits)
}

// newLibrary builds the function library and the logger it reports to.
func newLibrary(opts *RootOptions) (*functions.Library, *zap.Logger, error) {
	limits, err := loadLimits(opts)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(opts.Env, logger.DebugFlag(opts.Debug))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	lib, err := functions.NewLibrary(limits, functions.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	return lib, log, nil
}
