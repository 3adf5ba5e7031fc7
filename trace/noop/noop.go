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

// Package noop provides a Tracer that records nothing.
package noop

import (
	"context"

	"github.com/botobag/gqlcore/trace"
)

// Tracer is a no-op implementation of trace.Tracer.
type Tracer struct{}

var _ trace.Tracer = Tracer{}

func finish(error) {}

// TraceBuild implements trace.Tracer.
func (Tracer) TraceBuild(ctx context.Context, name string) (context.Context, trace.FinishFunc) {
	return ctx, finish
}

// TraceExtend implements trace.Tracer.
func (Tracer) TraceExtend(ctx context.Context, name string) (context.Context, trace.FinishFunc) {
	return ctx, finish
}
