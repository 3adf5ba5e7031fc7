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

// Package opentracing implements trace.Tracer with OpenTracing spans.
package opentracing

import (
	"context"

	"github.com/botobag/gqlcore/trace"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/opentracing/opentracing-go/log"
)

// Tracer creates OpenTracing spans. A nil Tracer field uses the global tracer.
type Tracer struct {
	Tracer opentracing.Tracer
}

var _ trace.Tracer = (*Tracer)(nil)

func (t *Tracer) tracer() opentracing.Tracer {
	if t.Tracer != nil {
		return t.Tracer
	}
	return opentracing.GlobalTracer()
}

func (t *Tracer) start(ctx context.Context, operationName string, source string) (context.Context, trace.FinishFunc) {
	span, spanCtx := opentracing.StartSpanFromContextWithTracer(ctx, t.tracer(), operationName)
	if source != "" {
		span.SetTag(trace.AttributeSource, source)
	}

	return spanCtx, func(err error) {
		if err != nil {
			ext.Error.Set(span, true)
			span.SetTag(trace.AttributeError, err.Error())
			span.LogFields(log.Error(err))
		}
		span.Finish()
	}
}

// TraceBuild implements trace.Tracer.
func (t *Tracer) TraceBuild(ctx context.Context, name string) (context.Context, trace.FinishFunc) {
	return t.start(ctx, "GraphQL Build Schema", name)
}

// TraceExtend implements trace.Tracer.
func (t *Tracer) TraceExtend(ctx context.Context, name string) (context.Context, trace.FinishFunc) {
	return t.start(ctx, "GraphQL Extend Schema", name)
}
