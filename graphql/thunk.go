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

package graphql

import (
	"sync"
)

// lazy is a deferred computation cell. The thunk runs at most once on first read; concurrent
// readers block until it completes and all observe the same value and error. Object, Interface,
// Union and InputObject keep their member lists in lazy cells so that types referencing each other
// can be created before either one is complete.
type lazy[T any] struct {
	once  sync.Once
	thunk func() (T, error)
	value T
	err   error
}

func newLazy[T any](thunk func() (T, error)) *lazy[T] {
	return &lazy[T]{thunk: thunk}
}

func (l *lazy[T]) get() (T, error) {
	l.once.Do(func() {
		if l.thunk != nil {
			l.value, l.err = l.thunk()
			// Drop references captured by the thunk.
			l.thunk = nil
		}
	})
	return l.value, l.err
}
