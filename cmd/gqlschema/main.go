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

// Command gqlschema loads a GraphQL schema from SDL files and prints a JSON summary of it.
//
// Usage:
//
//	gqlschema [-config gqlcore.yml] [-schema pattern]... [-extend pattern]... [-assume-valid] [-verbose]
//
// Patterns given with -schema and -extend are appended to those from the config file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/botobag/gqlcore/graphql"
	"github.com/botobag/gqlcore/loader"

	jsoniter "github.com/json-iterator/go"
)

// patternList collects a flag that may be repeated or hold comma-separated values.
type patternList []string

func (list *patternList) String() string {
	return strings.Join(*list, ",")
}

func (list *patternList) Set(value string) error {
	for _, pattern := range strings.Split(value, ",") {
		if pattern = strings.TrimSpace(pattern); len(pattern) > 0 {
			*list = append(*list, pattern)
		}
	}
	return nil
}

type typeSummary struct {
	Name string           `json:"name"`
	Kind graphql.TypeKind `json:"kind"`
}

type summary struct {
	BuildID        string        `json:"buildId"`
	Query          string        `json:"query,omitempty"`
	Mutation       string        `json:"mutation,omitempty"`
	Subscription   string        `json:"subscription,omitempty"`
	Types          []typeSummary `json:"types"`
	Directives     []string      `json:"directives"`
	SchemaFiles    []string      `json:"schemaFiles"`
	ExtensionFiles []string      `json:"extensionFiles,omitempty"`
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) int {
	flags := flag.NewFlagSet("gqlschema", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		configFile  string
		schema      patternList
		extensions  patternList
		assumeValid bool
		verbose     bool
	)
	flags.StringVar(&configFile, "config", "", "path to a YAML config file")
	flags.Var(&schema, "schema", "glob of schema files; may be repeated")
	flags.Var(&extensions, "extend", "glob of extension files applied in order; may be repeated")
	flags.BoolVar(&assumeValid, "assume-valid", false, "skip schema validation")
	flags.BoolVar(&verbose, "verbose", false, "log at debug level")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	config, err := buildConfig(configFile, schema, extensions, assumeValid, verbose)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	l, err := loader.New(config)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	result, err := l.Load(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(summarize(result), "", "  ")
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintln(stdout, string(out))
	return 0
}

func buildConfig(configFile string, schema, extensions patternList, assumeValid, verbose bool) (*loader.Config, error) {
	config := &loader.Config{}
	if len(configFile) > 0 {
		var err error
		if config, err = loader.LoadConfig(configFile); err != nil {
			return nil, err
		}
	}

	config.Schema = append(config.Schema, schema...)
	config.Extensions = append(config.Extensions, extensions...)
	if assumeValid {
		config.AssumeValid = true
	}
	if verbose {
		config.LogLevel = "debug"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func summarize(result *loader.Result) *summary {
	schema := result.Schema
	s := &summary{
		BuildID:        result.BuildID.String(),
		Types:          []typeSummary{},
		Directives:     []string{},
		SchemaFiles:    result.SchemaFiles,
		ExtensionFiles: result.ExtensionFiles,
	}

	if query := schema.Query(); query != nil {
		s.Query = query.Name()
	}
	if mutation := schema.Mutation(); mutation != nil {
		s.Mutation = mutation.Name()
	}
	if subscription := schema.Subscription(); subscription != nil {
		s.Subscription = subscription.Name()
	}

	for _, t := range schema.TypeMap().Types() {
		s.Types = append(s.Types, typeSummary{
			Name: t.Name(),
			Kind: graphql.TypeKindOf(t),
		})
	}
	for _, directive := range schema.Directives() {
		s.Directives = append(s.Directives, directive.Name())
	}

	return s
}
