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

// Package testutil provides Gomega matchers for errors produced by the graphql packages.
package testutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/botobag/gqlcore/graphql"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"
)

// errorField extracts one field of a graphql.Error and matches it.
type errorField struct {
	name    string
	value   func(e *graphql.Error) interface{}
	matcher types.GomegaMatcher
}

// ErrorFieldsMatcher adds a field check to MatchGraphQLError.
type ErrorFieldsMatcher func(fields map[string]errorField)

func setField(name string, value func(e *graphql.Error) interface{}, matcher types.GomegaMatcher) ErrorFieldsMatcher {
	return func(fields map[string]errorField) {
		fields[name] = errorField{name, value, matcher}
	}
}

func messageOf(e *graphql.Error) interface{}   { return e.Message }
func locationsOf(e *graphql.Error) interface{} { return e.Locations }
func kindOf(e *graphql.Error) interface{}      { return e.Kind }
func causeOf(e *graphql.Error) interface{}     { return e.Err }

// MessageEqual expects the message of the error to be s.
func MessageEqual(s string) ErrorFieldsMatcher {
	return setField("Message", messageOf, gomega.Equal(s))
}

// MessageContainSubstring expects the message of the error to contain s.
func MessageContainSubstring(s string) ErrorFieldsMatcher {
	return setField("Message", messageOf, gomega.ContainSubstring(s))
}

// LocationEqual expects the error to carry exactly one location.
func LocationEqual(location graphql.ErrorLocation) ErrorFieldsMatcher {
	return setField("Locations", locationsOf, gomega.Equal([]graphql.ErrorLocation{location}))
}

// LocationsConsistOf expects the error to carry the given locations in any order.
func LocationsConsistOf(locations []graphql.ErrorLocation) ErrorFieldsMatcher {
	return setField("Locations", locationsOf, gomega.ConsistOf(locations))
}

// KindIs expects the kind of the error.
func KindIs(errKind graphql.ErrKind) ErrorFieldsMatcher {
	return setField("Kind", kindOf, gomega.Equal(errKind))
}

// ErrIs expects the underlying error to be or to wrap sentinel.
func ErrIs(sentinel error) ErrorFieldsMatcher {
	return setField("Err", causeOf, gomega.MatchError(sentinel))
}

type graphQLErrorMatcher struct {
	fields []errorField

	// Set by Match for the failure message.
	failedField string
	failure     string
}

// MatchGraphQLError matches a *graphql.Error, or an error wrapping one, against the given field
// checks.
//
//	Expect(err).Should(MatchGraphQLError(
//		MessageContainSubstring("Unterminated string"),
//		KindIs(graphql.ErrKindSyntax),
//	))
func MatchGraphQLError(matchers ...ErrorFieldsMatcher) types.GomegaMatcher {
	fields := map[string]errorField{}
	for _, matcher := range matchers {
		matcher(fields)
	}

	m := &graphQLErrorMatcher{}
	for _, name := range []string{"Message", "Kind", "Locations", "Err"} {
		if field, exists := fields[name]; exists {
			m.fields = append(m.fields, field)
		}
	}
	return m
}

// Match implements types.GomegaMatcher.
func (m *graphQLErrorMatcher) Match(actual interface{}) (bool, error) {
	err, ok := actual.(error)
	if !ok || err == nil {
		return false, fmt.Errorf("MatchGraphQLError expects an error, got %s", format.Object(actual, 1))
	}

	var e *graphql.Error
	if !errors.As(err, &e) || e == nil {
		return false, fmt.Errorf("MatchGraphQLError expects a *graphql.Error, got %s", format.Object(actual, 1))
	}

	for _, field := range m.fields {
		value := field.value(e)
		success, err := field.matcher.Match(value)
		if err != nil {
			success = false
			m.failedField, m.failure = field.name, err.Error()
		} else if !success {
			m.failedField, m.failure = field.name, field.matcher.FailureMessage(value)
		}
		if !success {
			return false, nil
		}
	}
	return true, nil
}

// FailureMessage implements types.GomegaMatcher.
func (m *graphQLErrorMatcher) FailureMessage(actual interface{}) string {
	return fmt.Sprintf("%s\nhas mismatched %s:\n%s",
		format.Object(actual, 1), m.failedField, indent(m.failure))
}

// NegatedFailureMessage implements types.GomegaMatcher.
func (m *graphQLErrorMatcher) NegatedFailureMessage(actual interface{}) string {
	return fmt.Sprintf("%s\nshould not match all of the fields", format.Object(actual, 1))
}

func indent(s string) string {
	return format.Indent + strings.ReplaceAll(s, "\n", "\n"+format.Indent)
}

// ConsistOfGraphQLErrors matches the errors in a graphql.Errors (or a pointer to one) with Gomega's
// ConsistOf.
//
//	Expect(errs).Should(ConsistOfGraphQLErrors(
//		MatchGraphQLError(MessageContainSubstring("First error")),
//		MatchGraphQLError(MessageContainSubstring("Second error")),
//	))
func ConsistOfGraphQLErrors(matchers ...interface{}) types.GomegaMatcher {
	return gomega.WithTransform(func(actual interface{}) []*graphql.Error {
		switch errs := actual.(type) {
		case graphql.Errors:
			return errs.Errors
		case *graphql.Errors:
			if errs != nil {
				return errs.Errors
			}
		}
		return nil
	}, gomega.ConsistOf(matchers...))
}
