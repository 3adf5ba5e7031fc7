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

package builder

import (
	"context"

	"github.com/botobag/gqlcore/log"
	"github.com/botobag/gqlcore/trace"
	"github.com/botobag/gqlcore/trace/noop"
)

// ResolverMap supplies runtime behavior to types built from SDL. It is keyed by type name and
// then by member name:
//
//   - Object and Interface: field name to a field config record (see FieldConfigRecord). The key
//     "__isTypeOf" on an Object holds a graphql.IsTypeOfPredicate and "__resolveType" on an
//     Interface holds a graphql.TypeResolver.
//   - Union: "__resolveType" holds a graphql.TypeResolver.
//   - Enum: value name to the internal value of the enum value.
//   - Scalar: "__serialize", "__parseValue" and "__parseLiteral" hold the coercion functions.
type ResolverMap map[string]map[string]interface{}

// Options configures BuildSchema and ExtendSchema.
type Options struct {
	// AssumeValid marks the result as trusted so that graphql.AssertValidSchema skips it.
	AssumeValid bool

	// Resolvers supplies runtime behavior to built types.
	Resolvers ResolverMap

	// TypeCache memoizes built types. A fresh cache is created for each call when nil. Types that
	// are already in the cache take precedence over definitions in the document.
	TypeCache TypeCache

	// Logger receives diagnostics. Defaults to log.NopLogger.
	Logger log.Logger

	// Tracer starts a span around the call. Defaults to noop.Tracer.
	Tracer trace.Tracer

	// Context is handed to Tracer. Defaults to context.Background().
	Context context.Context
}

// Option sets a value in Options.
type Option func(options *Options)

// AssumeValid marks the built schema as trusted.
func AssumeValid() Option {
	return func(options *Options) {
		options.AssumeValid = true
	}
}

// WithResolvers supplies runtime behavior for built types.
func WithResolvers(resolvers ResolverMap) Option {
	return func(options *Options) {
		options.Resolvers = resolvers
	}
}

// WithTypeCache specifies the cache used to memoize types.
func WithTypeCache(cache TypeCache) Option {
	return func(options *Options) {
		options.TypeCache = cache
	}
}

// WithLogger specifies the logger.
func WithLogger(logger log.Logger) Option {
	return func(options *Options) {
		options.Logger = logger
	}
}

// WithTracer specifies the tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(options *Options) {
		options.Tracer = tracer
	}
}

// WithContext specifies the context given to the tracer.
func WithContext(ctx context.Context) Option {
	return func(options *Options) {
		options.Context = ctx
	}
}

func newOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	return options.withDefaults()
}

func (options *Options) withDefaults() *Options {
	if options.Logger == nil {
		options.Logger = log.NopLogger{}
	}
	if options.Tracer == nil {
		options.Tracer = noop.Tracer{}
	}
	if options.Context == nil {
		options.Context = context.Background()
	}
	return options
}

// typeResolvers returns the resolvers for the named type or nil.
func (options *Options) typeResolvers(typeName string) map[string]interface{} {
	if options == nil || options.Resolvers == nil {
		return nil
	}
	return options.Resolvers[typeName]
}
