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

package value_test

import (
	"github.com/botobag/gqlcore/graphql"
	"github.com/botobag/gqlcore/graphql/value"
	"github.com/botobag/gqlcore/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

var _ = Describe("ArgumentValues", func() {
	var field *graphql.Field

	// argumentsOf parses a field selection and returns its arguments.
	argumentsOf := func(text string) ast.ArgumentList {
		doc, err := parser.ParseQuery(&ast.Source{Input: "{ " + text + " }"})
		Expect(err).ShouldNot(HaveOccurred())
		return doc.Operations[0].SelectionSet[0].(*ast.Field).Arguments
	}

	BeforeEach(func() {
		object := graphql.MustNewObject(&graphql.ObjectConfig{
			Name: "Object",
			Fields: graphql.Fields(&graphql.FieldConfig{
				Name: "f",
				Type: graphql.String(),
				Args: []*graphql.ArgumentConfig{
					{Name: "required", Type: graphql.MustNewNonNullOf(graphql.Int())},
					{Name: "withDefault", Type: graphql.String(), DefaultValue: "hello"},
					{Name: "optional", Type: graphql.Boolean()},
				},
			}),
		})
		fields, err := object.Fields()
		Expect(err).ShouldNot(HaveOccurred())
		field = fields.Get("f")
	})

	It("coerces literals and applies defaults", func() {
		args, err := value.ArgumentValues(field.Args(), argumentsOf("f(required: 1, optional: null)"), nil, nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(args).Should(testutil.SerializeToJSONAs(map[string]interface{}{
			"required":    1,
			"withDefault": "hello",
			"optional":    nil,
		}))
	})

	It("takes values of variables", func() {
		args, err := value.ArgumentValues(field.Args(), argumentsOf("f(required: $r, optional: $o)"),
			map[string]interface{}{"r": 7}, nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(args.Get("required")).Should(Equal(7))

		_, hasOptional := args.Lookup("optional")
		Expect(hasOptional).Should(BeFalse())
	})

	It("rejects a missing required argument", func() {
		_, err := value.ArgumentValues(field.Args(), argumentsOf("f"), nil, nil)
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual(`Argument "required" of required type "Int!" was not provided.`),
			testutil.ErrIs(graphql.ErrNonNullCoercion),
		))
	})

	It("rejects null for a required argument", func() {
		_, err := value.ArgumentValues(field.Args(), argumentsOf("f(required: null)"), nil, nil)
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual(`Argument "required" of non-null type "Int!" must not be null.`),
			testutil.ErrIs(graphql.ErrNonNullCoercion),
		))
	})

	It("rejects a required argument given a missing variable", func() {
		_, err := value.ArgumentValues(field.Args(), argumentsOf("f(required: $r)"), nil, nil)
		Expect(err).Should(MatchError(graphql.ErrMissingVariable))
	})

	It("reports an invalid value", func() {
		_, err := value.ArgumentValues(field.Args(), argumentsOf(`f(required: "one")`), nil, nil)
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual(`Argument "required" has invalid value "one".`),
			testutil.ErrIs(graphql.ErrScalarCoercion),
			testutil.KindIs(graphql.ErrKindCoercion),
		))
	})

	Describe("DirectiveValues", func() {
		directivesOf := func(text string) ast.DirectiveList {
			doc, err := parser.ParseQuery(&ast.Source{Input: "{ f " + text + " }"})
			Expect(err).ShouldNot(HaveOccurred())
			return doc.Operations[0].SelectionSet[0].(*ast.Field).Directives
		}

		It("returns the arguments of the directive", func() {
			args, ok, err := value.DirectiveValues(graphql.IncludeDirective(), directivesOf("@include(if: true)"), nil)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(ok).Should(BeTrue())
			Expect(args.Get("if")).Should(Equal(true))
		})

		It("applies default argument values", func() {
			args, ok, err := value.DirectiveValues(graphql.DeprecatedDirective(), directivesOf("@deprecated"), nil)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(ok).Should(BeTrue())
			Expect(args.Get("reason")).Should(Equal("No longer supported"))
		})

		It("reports absence of the directive", func() {
			_, ok, err := value.DirectiveValues(graphql.SkipDirective(), directivesOf("@include(if: true)"), nil)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(ok).Should(BeFalse())
		})
	})
})

var _ = Describe("CoerceVariableValues", func() {
	var schema *graphql.Schema

	BeforeEach(func() {
		schema = graphql.MustNewSchema(&graphql.SchemaConfig{
			Query: graphql.MustNewObject(&graphql.ObjectConfig{
				Name:   "Query",
				Fields: graphql.Fields(&graphql.FieldConfig{Name: "f", Type: graphql.String()}),
			}),
		})
	})

	It("coerces inputs against the variable definitions", func() {
		operation := parseOperation(`query ($a: Int!, $b: [String], $c: Boolean = true, $d: String) { f }`)
		values, errs := value.CoerceVariableValues(schema, operation, map[string]interface{}{
			"a": 1,
			"b": "x",
			"d": nil,
		})
		Expect(errs.HaveOccurred()).Should(BeFalse())
		Expect(values).Should(Equal(map[string]interface{}{
			"a": 1,
			"b": []interface{}{"x"},
			"c": true,
			"d": nil,
		}))
	})

	It("reports every invalid variable", func() {
		operation := parseOperation(`query ($a: Int!, $b: Int!, $c: Int, $d: Unknown) { f }`)
		_, errs := value.CoerceVariableValues(schema, operation, map[string]interface{}{
			"b": nil,
			"c": "abc",
		})
		Expect(errs).Should(testutil.ConsistOfGraphQLErrors(
			testutil.MatchGraphQLError(
				testutil.MessageEqual(`Variable "$a" of required type "Int!" was not provided.`),
				testutil.ErrIs(graphql.ErrNonNullCoercion),
			),
			testutil.MatchGraphQLError(
				testutil.MessageEqual(`Variable "$b" of non-null type "Int!" must not be null.`),
				testutil.ErrIs(graphql.ErrNonNullCoercion),
			),
			testutil.MatchGraphQLError(
				testutil.MessageContainSubstring(`Variable "$c" got invalid value "abc"; Expected type Int`),
				testutil.ErrIs(graphql.ErrScalarCoercion),
			),
			testutil.MatchGraphQLError(
				testutil.MessageEqual(`Variable "$d" expected value of unknown type "Unknown".`),
				testutil.ErrIs(graphql.ErrUnknownType),
			),
		))
	})
})
