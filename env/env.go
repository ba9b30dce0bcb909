// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=env.go -destination=mocks/mock_reader.go -package=mocks Reader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Reader defines an interface for environment variable access
type Reader interface {
	Getenv(key string) string
}

// OSReader implements Reader using the standard os package
type OSReader struct{}

// Getenv returns the value of the environment variable named by the key
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}

// Int reads an integer variable through r. The boolean is false when the
// variable is unset or blank, in which case the caller keeps its default.
func Int(r Reader, key string) (int, bool, error) {
	raw := strings.TrimSpace(r.Getenv(key))
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return n, true, nil
}

// Bool reads a boolean variable through r, returning def when the variable is
// unset or not a valid boolean.
func Bool(r Reader, key string, def bool) bool {
	b, err := strconv.ParseBool(r.Getenv(key))
	if err != nil {
		return def
	}
	return b
}
