// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package logger builds the zap loggers used by the formula library and the
// formulactl CLI.
//
// Output is unstructured console text on stderr unless
// FORMULAS_UNSTRUCTURED_LOGS is set to false, in which case JSON is written
// to stdout. The level is debug when the DebugProvider reports debug mode and
// info otherwise.
//
//	log, err := logger.New(&env.OSReader{}, logger.DebugFlag(verbose))
//	if err != nil {
//		return err
//	}
//	lib, err := functions.NewLibrary(limits, functions.WithLogger(log))
//
// NewLogr bridges a zap logger to logr for components that take a
// logr.Logger.
package logger
