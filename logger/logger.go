// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stacklok/toolhive-formulas/env"
)

// UnstructuredLogsEnv selects console output when true or unset and JSON
// output when false.
const UnstructuredLogsEnv = "FORMULAS_UNSTRUCTURED_LOGS"

// DebugProvider is an interface for checking if debug mode is enabled.
// This allows different projects to plug in their own debug flag implementation.
type DebugProvider interface {
	IsDebug() bool
}

// DebugFlag is a DebugProvider backed by a plain boolean, such as a CLI flag.
type DebugFlag bool

// IsDebug reports the flag value.
func (d DebugFlag) IsDebug() bool {
	return bool(d)
}

// New creates a logger configured from the environment and debug provider.
func New(envReader env.Reader, debugProvider DebugProvider) (*zap.Logger, error) {
	return newConfig(envReader, debugProvider).Build()
}

// Initialize creates a logger like New and installs it as the zap global
// logger.
func Initialize(envReader env.Reader, debugProvider DebugProvider) (*zap.Logger, error) {
	logger, err := New(envReader, debugProvider)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// NewLogr returns a logr.Logger which uses the given zap logger, or the zap
// global logger when it is nil.
func NewLogr(logger *zap.Logger) logr.Logger {
	if logger == nil {
		logger = zap.L()
	}
	return zapr.NewLogger(logger)
}

func newConfig(envReader env.Reader, debugProvider DebugProvider) zap.Config {
	var config zap.Config
	if unstructuredLogsWithEnv(envReader) {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.Kitchen)
		config.OutputPaths = []string{"stderr"}
		config.DisableStacktrace = true
		config.DisableCaller = true
	} else {
		config = zap.NewProductionConfig()
		config.OutputPaths = []string{"stdout"}
	}

	// Set log level based on current debug flag
	if debugProvider != nil && debugProvider.IsDebug() {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return config
}

func unstructuredLogsWithEnv(envReader env.Reader) bool {
	// an unset or invalid value defaults to unstructured output
	return env.Bool(envReader, UnstructuredLogsEnv, true)
}
