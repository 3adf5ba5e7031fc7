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

// Package graphql defines the type graph of a GraphQL schema: named types, wrapping types,
// directives and the Schema that closes over them.
//
// Thunk Design
//
// Types that refer to other types (fields of objects and interfaces, interfaces of objects, members
// of unions and fields of input objects) take their references through thunks. A thunk is evaluated
// at most once, on first access, and the result (or error) is memoized. Concurrent readers wait for
// the first evaluation and observe the same result. Because a thunk only runs after both ends of a
// reference exist, types that depend on each other and even on themselves can be created without
// additional work.
//
// NewSchema walks the graph from the roots and forces every thunk, so an error hidden in a lazily
// defined member surfaces when the schema is created rather than at query time.
//
// Errors returned by this package are *Error values that wrap one of the sentinel errors declared
// in errors.go. Use errors.Is to classify them.
package graphql
