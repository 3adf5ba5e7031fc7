/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/botobag/gqlcore/log"
	"github.com/botobag/gqlcore/trace"
	"github.com/botobag/gqlcore/trace/noop"
	"github.com/botobag/gqlcore/trace/opentracing"
	"github.com/botobag/gqlcore/trace/otel"

	"github.com/goccy/go-yaml"
)

// TracerKind selects the tracer used while loading.
type TracerKind string

// Enumeration of TracerKind
const (
	TracerNone          TracerKind = "none"
	TracerOpenTracing   TracerKind = "opentracing"
	TracerOpenTelemetry TracerKind = "otel"
)

// Config describes the files that make up a schema.
//
//	schema:
//	  - schema/*.graphql
//	extensions:
//	  - extensions/*.graphql
//	assumeValid: false
//	tracer: otel
//	logLevel: debug
type Config struct {
	// Schema lists glob patterns of SDL files that are parsed together into the base schema.
	Schema []string `yaml:"schema"`

	// Extensions lists glob patterns of SDL files applied to the base schema one file at a time, in
	// order.
	Extensions []string `yaml:"extensions,omitempty"`

	// AssumeValid skips schema validation.
	AssumeValid bool `yaml:"assumeValid,omitempty"`

	// Tracer is one of "none", "opentracing" and "otel". Empty means "none".
	Tracer TracerKind `yaml:"tracer,omitempty"`

	// LogLevel is the level of the default logger. See log.ParseLevel.
	LogLevel string `yaml:"logLevel,omitempty"`

	// Dir is the directory relative patterns are resolved against. LoadConfig sets it to the
	// directory of the config file.
	Dir string `yaml:"-"`
}

// LoadConfig reads the YAML config file. Environment variables in the file are expanded.
func LoadConfig(filename string) (*Config, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	config, err := ParseConfig([]byte(os.ExpandEnv(string(content))))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	config.Dir = filepath.Dir(filename)

	return config, nil
}

// ParseConfig decodes a YAML config and validates it. Unknown keys are rejected.
func ParseConfig(content []byte) (*Config, error) {
	var config Config
	decoder := yaml.NewDecoder(bytes.NewReader(content), yaml.DisallowUnknownField())
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the values in the config.
func (config *Config) Validate() error {
	if len(config.Schema) == 0 {
		return errors.New("'schema' must list at least one file pattern")
	}

	switch config.Tracer {
	case "", TracerNone, TracerOpenTracing, TracerOpenTelemetry:
	default:
		return fmt.Errorf("unknown tracer %q; expect one of %q, %q and %q",
			config.Tracer, TracerNone, TracerOpenTracing, TracerOpenTelemetry)
	}

	if _, err := log.ParseLevel(config.LogLevel); err != nil {
		return fmt.Errorf("logLevel: %w", err)
	}

	return nil
}

// NewTracer creates the tracer selected by the config. opentracing and otel spans go to the
// global tracer of the respective library.
func (config *Config) NewTracer() (trace.Tracer, error) {
	switch config.Tracer {
	case "", TracerNone:
		return noop.Tracer{}, nil
	case TracerOpenTracing:
		return &opentracing.Tracer{}, nil
	case TracerOpenTelemetry:
		return otel.DefaultTracer(), nil
	}
	return nil, fmt.Errorf("unknown tracer %q", config.Tracer)
}

// NewLogger creates a DefaultLogger writing to stderr at the configured level.
func (config *Config) NewLogger() (log.Logger, error) {
	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, err
	}
	return log.NewDefaultLogger(level), nil
}

// resolvePattern joins a relative pattern to the config directory.
func (config *Config) resolvePattern(pattern string) string {
	if filepath.IsAbs(pattern) || len(config.Dir) == 0 {
		return pattern
	}
	return filepath.Join(config.Dir, pattern)
}
