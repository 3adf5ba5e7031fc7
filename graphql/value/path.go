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

// Package value coerces GraphQL input values against types of a schema. Values come either from
// an AST literal (CoerceFromAST) or from a Go value supplied at runtime (CoerceValue), for example
// a decoded JSON variable.
//
// Coercion stops at the first problem. The returned error is a *graphql.Error of kind
// graphql.ErrKindCoercion whose message includes the path to the offending value.
package value

import (
	"fmt"
	"strings"

	"github.com/botobag/gqlcore/graphql"
	"github.com/botobag/gqlcore/internal/util"
)

// valuePath is a linked list of keys from the coerced root down to the value being coerced.
type valuePath struct {
	prev *valuePath
	key  interface{}
}

func (path *valuePath) String() string {
	var s string
	for path != nil {
		switch key := path.key.(type) {
		case string:
			s = fmt.Sprintf(".%s%s", key, s)
		case int:
			s = fmt.Sprintf("[%d]%s", key, s)
		}
		path = path.prev
	}
	if len(s) > 0 {
		return "value" + s
	}
	return s
}

func (path *valuePath) WithIndex(index int) *valuePath {
	return &valuePath{
		prev: path,
		key:  index,
	}
}

func (path *valuePath) WithField(name string) *valuePath {
	return &valuePath{
		prev: path,
		key:  name,
	}
}

func (path *valuePath) Empty() bool {
	return path == nil
}

// newCoercionError builds the error for a coercion failure. The message has the form
//
//	<message>[ at <path>](; <subMessage>|.)
//
// args are passed to graphql.NewError after the sentinel.
func newCoercionError(sentinel error, message string, path *valuePath, subMessage string, args ...interface{}) error {
	var b strings.Builder

	b.WriteString(message)
	if !path.Empty() {
		b.WriteString(" at ")
		b.WriteString(path.String())
	}

	if len(subMessage) > 0 {
		b.WriteString("; ")
		b.WriteString(subMessage)
	} else {
		b.WriteRune('.')
	}

	return graphql.NewCoercionError(sentinel, b.String(), args...)
}

// wrapCoercionError builds the error for a failure reported by a scalar or an enum. The message of
// cause is carried in the sub-message when it is a coercion error.
func wrapCoercionError(sentinel error, t graphql.Type, path *valuePath, cause error, args ...interface{}) error {
	var subMessage string
	if e, ok := cause.(*graphql.Error); ok && e.Kind == graphql.ErrKindCoercion {
		subMessage = e.Message
	} else if cause != nil {
		subMessage = cause.Error()
	}

	if cause != nil && cause != sentinel {
		sentinel = graphql.WithCause(sentinel, cause)
	}
	return newCoercionError(sentinel, fmt.Sprintf("Expected type %s", t), path, subMessage, args...)
}

// didYouMean returns a sub-message suggesting the closest options to input.
func didYouMean(input string, options []string) string {
	suggestions := util.SuggestionList(input, options)
	if len(suggestions) == 0 {
		return ""
	}
	return "did you mean " + util.OrList(suggestions, 5, true) + "?"
}
