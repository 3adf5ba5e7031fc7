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

// Package trace defines the tracing hooks invoked around schema construction.
package trace

import (
	"context"
)

// FinishFunc ends a span started by a Tracer. err is the outcome of the traced operation.
type FinishFunc = func(err error)

// Tracer starts spans around schema builds and extensions.
type Tracer interface {
	// TraceBuild starts a span for building a schema from the named source.
	TraceBuild(ctx context.Context, name string) (context.Context, FinishFunc)

	// TraceExtend starts a span for extending a schema with the named source.
	TraceExtend(ctx context.Context, name string) (context.Context, FinishFunc)
}

// Attribute keys attached to spans.
const (
	AttributeSource = "graphql.schema.source"
	AttributeError  = "graphql.error"
)
