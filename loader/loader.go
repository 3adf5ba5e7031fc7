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

// Package loader builds a Schema from SDL files named by a Config.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/botobag/gqlcore/graphql"
	"github.com/botobag/gqlcore/graphql/builder"
	"github.com/botobag/gqlcore/graphql/parser"
	"github.com/botobag/gqlcore/log"
	"github.com/botobag/gqlcore/trace"

	"github.com/google/uuid"
	"github.com/vektah/gqlparser/v2/ast"
)

// Result is the outcome of a Load.
type Result struct {
	// BuildID identifies the load in logs.
	BuildID uuid.UUID

	// Schema is the base schema with all extensions applied.
	Schema *graphql.Schema

	// SchemaFiles and ExtensionFiles are the files matched by the patterns in the config, in the
	// order they were read.
	SchemaFiles    []string
	ExtensionFiles []string

	// Duration is the wall time spent in Load.
	Duration time.Duration
}

// Option configures a Loader.
type Option func(loader *Loader)

// WithLogger replaces the logger created from the config.
func WithLogger(logger log.Logger) Option {
	return func(loader *Loader) {
		loader.logger = logger
	}
}

// WithTracer replaces the tracer created from the config.
func WithTracer(tracer trace.Tracer) Option {
	return func(loader *Loader) {
		loader.tracer = tracer
	}
}

// WithResolvers supplies runtime behavior to the types in the schema and its extensions.
func WithResolvers(resolvers builder.ResolverMap) Option {
	return func(loader *Loader) {
		loader.resolvers = resolvers
	}
}

// Loader loads a schema from the files named by a Config. A Loader may be used for multiple loads
// and from multiple goroutines.
type Loader struct {
	config    *Config
	logger    log.Logger
	tracer    trace.Tracer
	resolvers builder.ResolverMap
}

// New creates a Loader for the config.
func New(config *Config, opts ...Option) (*Loader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	loader := &Loader{
		config: config,
	}
	for _, opt := range opts {
		opt(loader)
	}

	if loader.logger == nil {
		logger, err := config.NewLogger()
		if err != nil {
			return nil, err
		}
		loader.logger = logger
	}

	if loader.tracer == nil {
		tracer, err := config.NewTracer()
		if err != nil {
			return nil, err
		}
		loader.tracer = tracer
	}

	return loader, nil
}

// Load reads the schema files, builds the base schema, applies the extension files and validates
// the result unless the config sets assumeValid. The context is handed to the tracer and checked
// between file reads.
func (loader *Loader) Load(ctx context.Context) (*Result, error) {
	start := time.Now()

	buildID, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("unable to generate build ID: %w", err)
	}
	logger := loader.logger

	schemaFiles, err := loader.expand(loader.config.Schema)
	if err != nil {
		return nil, err
	}
	extensionFiles, err := loader.expand(loader.config.Extensions)
	if err != nil {
		return nil, err
	}
	logger.Debugf("[%s] loading %d schema files and %d extension files",
		buildID, len(schemaFiles), len(extensionFiles))

	sources := make([]*ast.Source, 0, len(schemaFiles))
	for _, filename := range schemaFiles {
		source, err := readSource(ctx, filename)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}

	doc, err := parser.ParseSchemas(sources...)
	if err != nil {
		return nil, err
	}

	opts := loader.builderOptions(ctx)
	schema, err := builder.BuildSchema(doc, opts...)
	if err != nil {
		return nil, err
	}

	for _, filename := range extensionFiles {
		source, err := readSource(ctx, filename)
		if err != nil {
			return nil, err
		}

		schema, err = builder.ExtendSchemaFromSource(schema, source.Name, source.Input, opts...)
		if err != nil {
			return nil, err
		}
		logger.Debugf("[%s] applied %s", buildID, filename)
	}

	// Validate once, after the last extension.
	if err := graphql.AssertValidSchema(schema); err != nil {
		return nil, err
	}

	result := &Result{
		BuildID:        buildID,
		Schema:         schema,
		SchemaFiles:    schemaFiles,
		ExtensionFiles: extensionFiles,
		Duration:       time.Since(start),
	}
	logger.Infof("[%s] loaded schema with %d types and %d directives in %s",
		buildID, schema.TypeMap().Len(), len(schema.Directives()), result.Duration)

	return result, nil
}

func (loader *Loader) builderOptions(ctx context.Context) []builder.Option {
	opts := []builder.Option{
		builder.WithContext(ctx),
		builder.WithLogger(loader.logger),
		builder.WithTracer(loader.tracer),
	}
	if loader.resolvers != nil {
		opts = append(opts, builder.WithResolvers(loader.resolvers))
	}
	if loader.config.AssumeValid {
		opts = append(opts, builder.AssumeValid())
	}
	return opts
}

// expand returns the files matching the patterns. Files matched by a pattern are sorted; a file
// matched by more than one pattern is listed once at its first match.
func (loader *Loader) expand(patterns []string) ([]string, error) {
	var files []string
	seen := map[string]bool{}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(loader.config.resolvePattern(pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matches no files", pattern)
		}

		sort.Strings(matches)
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				files = append(files, match)
			}
		}
	}

	return files, nil
}

func readSource(ctx context.Context, filename string) (*ast.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to read schema: %w", err)
	}
	return parser.NewSource(filename, string(content)), nil
}
