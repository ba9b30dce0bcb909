// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/toolhive-formulas/env"
)

// Environment variables read by FromEnv.
const (
	EnvMaxTextLength     = "FORMULAS_MAX_TEXT_LENGTH"
	EnvMaxArraySize      = "FORMULAS_MAX_ARRAY_SIZE"
	EnvMaxCriteriaLength = "FORMULAS_MAX_CRITERIA_LENGTH"
	EnvMaxTableSize      = "FORMULAS_MAX_TABLE_SIZE"
)

// DiscoveryPath is the path searched for in the XDG config directories.
const DiscoveryPath = "toolhive-formulas/limits.yaml"

const schemaFile = "data/limits.schema.json"

//go:embed data/limits.schema.json
var embeddedSchemaFS embed.FS

// ErrInvalidConfigFile is returned when a limits file cannot be parsed or
// does not match the schema.
var ErrInvalidConfigFile = errors.New("invalid limits file")

// Load reads limits from a YAML file. Keys absent from the file keep their
// default values.
func Load(path string) (Limits, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the operator
	if err != nil {
		return Limits{}, fmt.Errorf("failed to read limits file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes limits from YAML bytes.
func Parse(data []byte) (Limits, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Limits{}, fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	doc, err := json.Marshal(raw)
	if err != nil {
		return Limits{}, fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
	}
	if err := validateAgainstSchema(doc); err != nil {
		return Limits{}, err
	}

	limits := Default()
	if err := yaml.Unmarshal(data, &limits); err != nil {
		return Limits{}, fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
	}
	if err := limits.Validate(); err != nil {
		return Limits{}, err
	}
	return limits, nil
}

// FromEnv overrides base with the FORMULAS_MAX_* environment variables that
// are set.
func FromEnv(reader env.Reader, base Limits) (Limits, error) {
	vars := []struct {
		key    string
		option func(int) Option
	}{
		{EnvMaxTextLength, WithMaxTextLength},
		{EnvMaxArraySize, WithMaxArraySize},
		{EnvMaxCriteriaLength, WithMaxCriteriaLength},
		{EnvMaxTableSize, WithMaxTableSize},
	}

	opts := make([]Option, 0, len(vars))
	for _, v := range vars {
		n, ok, err := env.Int(reader, v.key)
		if err != nil {
			return Limits{}, fmt.Errorf("%w: %w", ErrInvalidLimits, err)
		}
		if ok {
			opts = append(opts, v.option(n))
		}
	}
	return base.With(opts...)
}

// Discover returns the path of the first limits file found in the XDG config
// directories.
func Discover() (string, bool) {
	path, err := xdg.SearchConfigFile(DiscoveryPath)
	if err != nil {
		return "", false
	}
	return path, true
}

func validateAgainstSchema(data []byte) error {
	schemaData, err := embeddedSchemaFS.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("failed to read embedded schema %s: %w", schemaFile, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfigFile, strings.Join(msgs, "; "))
}
