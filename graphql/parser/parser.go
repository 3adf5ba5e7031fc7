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

// Package parser turns GraphQL source text into the AST consumed by the builder and the value
// coercer. Parsing itself is done by gqlparser. Errors are reported as *graphql.Error of kind
// graphql.ErrKindSyntax.
package parser

import (
	"errors"

	"github.com/botobag/gqlcore/graphql"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	gqlparser "github.com/vektah/gqlparser/v2/parser"
)

// NewSource creates a source with the given name and body. The name is usually the path of the
// file from which the body is read.
func NewSource(name string, body string) *ast.Source {
	return &ast.Source{
		Name:  name,
		Input: body,
	}
}

// ParseSchema parses a schema document (SDL) which may contain type definitions, directive
// definitions, schema definitions and their extensions.
func ParseSchema(name string, body string) (*ast.SchemaDocument, error) {
	doc, err := gqlparser.ParseSchema(NewSource(name, body))
	if err != nil {
		return nil, wrapError(err)
	}
	return doc, nil
}

// ParseSchemas parses multiple sources into one schema document.
func ParseSchemas(sources ...*ast.Source) (*ast.SchemaDocument, error) {
	doc, err := gqlparser.ParseSchemas(sources...)
	if err != nil {
		return nil, wrapError(err)
	}
	return doc, nil
}

// ParseQuery parses an executable document.
func ParseQuery(name string, body string) (*ast.QueryDocument, error) {
	doc, err := gqlparser.ParseQuery(NewSource(name, body))
	if err != nil {
		return nil, wrapError(err)
	}
	return doc, nil
}

// valuePrefix wraps a bare value into an executable document so that it can be parsed by
// gqlparser, which has no entry point for values.
const valuePrefix = "{ f(v: "

// ParseValue parses the AST for a string containing a GraphQL value (e.g., `[42]`). Positions in
// the returned value are relative to text.
func ParseValue(text string) (*ast.Value, error) {
	source := &ast.Source{Input: text}
	doc, err := gqlparser.ParseQuery(&ast.Source{Input: valuePrefix + text + "\n) }"})
	if err != nil {
		return nil, wrapValueError(err)
	}

	if len(doc.Operations) != 1 || len(doc.Operations[0].SelectionSet) != 1 {
		return nil, graphql.NewError("Expected a single value.", graphql.ErrKindSyntax)
	}
	field, ok := doc.Operations[0].SelectionSet[0].(*ast.Field)
	if !ok || len(field.Arguments) != 1 {
		return nil, graphql.NewError("Expected a single value.", graphql.ErrKindSyntax)
	}

	value := field.Arguments[0].Value
	rebaseValue(value, source)
	return value, nil
}

// rebaseValue shifts positions in value from the wrapping document back to the value text.
func rebaseValue(value *ast.Value, source *ast.Source) {
	if value == nil {
		return
	}
	rebasePosition(value.Position, source)
	for _, child := range value.Children {
		rebasePosition(child.Position, source)
		rebaseValue(child.Value, source)
	}
}

func rebasePosition(pos *ast.Position, source *ast.Source) {
	if pos == nil || pos.Src == source {
		return
	}
	pos.Start -= len(valuePrefix)
	pos.End -= len(valuePrefix)
	if pos.Line == 1 {
		pos.Column -= len(valuePrefix)
	}
	pos.Src = source
}

func wrapValueError(err error) error {
	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) {
		for i := range gqlErr.Locations {
			if gqlErr.Locations[i].Line == 1 {
				gqlErr.Locations[i].Column -= len(valuePrefix)
			}
		}
	}
	return wrapError(err)
}

// wrapError converts an error returned by gqlparser into a *graphql.Error. The original error is
// kept in Err.
func wrapError(err error) error {
	var (
		gqlErr    *gqlerror.Error
		locations []graphql.ErrorLocation
		message   = err.Error()
	)
	if errors.As(err, &gqlErr) {
		message = gqlErr.Message
		for _, location := range gqlErr.Locations {
			locations = append(locations, graphql.ErrorLocation{
				Line:   uint(location.Line),
				Column: uint(location.Column),
			})
		}
	}

	args := []interface{}{graphql.ErrKindSyntax, err}
	if len(locations) > 0 {
		args = append(args, locations)
	}
	if gqlErr != nil {
		if file, ok := gqlErr.Extensions["file"].(string); ok {
			args = append(args, graphql.ErrorExtensions{"file": file})
		}
	}
	return graphql.NewError(message, args...)
}
