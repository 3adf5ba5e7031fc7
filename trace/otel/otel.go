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

// Package otel implements trace.Tracer with OpenTelemetry spans.
package otel

import (
	"context"

	"github.com/botobag/gqlcore/trace"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// InstrumentationName names the tracer obtained from the global provider.
const InstrumentationName = "github.com/botobag/gqlcore"

// Tracer creates OpenTelemetry spans. Set Tracer to your own instance as required.
type Tracer struct {
	Tracer oteltrace.Tracer
}

var _ trace.Tracer = (*Tracer)(nil)

// DefaultTracer creates a Tracer from the global tracer provider.
func DefaultTracer() *Tracer {
	return &Tracer{
		Tracer: otel.Tracer(InstrumentationName),
	}
}

// NewTracer creates a Tracer from the given provider.
func NewTracer(provider oteltrace.TracerProvider) *Tracer {
	return &Tracer{
		Tracer: provider.Tracer(InstrumentationName),
	}
}

func (t *Tracer) start(ctx context.Context, spanName string, source string) (context.Context, trace.FinishFunc) {
	tracer := t.Tracer
	if tracer == nil {
		tracer = otel.Tracer(InstrumentationName)
	}

	spanCtx, span := tracer.Start(ctx, spanName)
	if source != "" {
		span.SetAttributes(attribute.String(trace.AttributeSource, source))
	}

	return spanCtx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
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
