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

package builder_test

import (
	"context"

	"github.com/botobag/gqlcore/graphql"
	"github.com/botobag/gqlcore/graphql/builder"
	"github.com/botobag/gqlcore/graphql/parser"
	"github.com/botobag/gqlcore/internal/testutil"
	"github.com/botobag/gqlcore/internal/util"
	"github.com/botobag/gqlcore/log"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/vektah/gqlparser/v2/ast"
)

var _ = Describe("ExtendSchema", func() {
	var base *graphql.Schema

	BeforeEach(func() {
		base = buildSchema(`
			type Query { foo: Foo }
			type Foo { name: String }
		`)
	})

	extendError := func(schema *graphql.Schema, sdl string, opts ...builder.Option) error {
		extended, err := builder.ExtendSchemaFromSource(schema, "extension.graphql", util.Dedent(sdl), opts...)
		Expect(extended).Should(BeNil())
		return err
	}

	Describe("empty extensions", func() {
		It("returns the same schema for an empty document", func() {
			Expect(builder.ExtendSchema(base, &ast.SchemaDocument{})).Should(BeIdenticalTo(base))
			Expect(builder.ExtendSchema(base, nil)).Should(BeIdenticalTo(base))
		})

		It("returns the same schema for a source without definitions", func() {
			Expect(extendSchema(base, "")).Should(BeIdenticalTo(base))
			Expect(extendSchema(base, "# nothing to see here\n")).Should(BeIdenticalTo(base))
		})
	})

	Describe("object types", func() {
		It("adds fields to an existing type", func() {
			extended := extendSchema(base, `extend type Foo { extra: Int }`)

			Expect(extended).ShouldNot(BeIdenticalTo(base))
			Expect(fieldsOf(extended, "Foo").Keys()).Should(Equal([]string{"name", "extra"}))
			Expect(fieldsOf(extended, "Foo").Get("extra").Type()).Should(BeIdenticalTo(graphql.Int()))
			Expect(fieldsOf(extended, "Query").Get("foo").Type()).Should(BeIdenticalTo(extended.Type("Foo")))
			Expect(extended.Type("Foo").ExtensionASTNodes()).Should(HaveLen(1))
		})

		It("leaves the base schema unchanged", func() {
			baseFoo := base.Type("Foo")
			extendSchema(base, `extend type Foo { extra: Int }`)

			Expect(base.Type("Foo")).Should(BeIdenticalTo(baseFoo))
			Expect(fieldsOf(base, "Foo").Keys()).Should(Equal([]string{"name"}))
			Expect(fieldsOf(base, "Query").Get("foo").Type()).Should(BeIdenticalTo(baseFoo))
			Expect(baseFoo.ExtensionASTNodes()).Should(BeEmpty())
		})

		It("keeps built-in and introspection types", func() {
			extended := extendSchema(base, `extend type Foo { extra: Int }`)

			Expect(extended.Type("String")).Should(BeIdenticalTo(graphql.String()))
			Expect(extended.Type("__Schema")).Should(BeIdenticalTo(base.Type("__Schema")))
			Expect(extended.Directive("include")).Should(BeIdenticalTo(graphql.IncludeDirective()))
		})

		It("replaces fields of the same name", func() {
			extended := extendSchema(base, `extend type Foo { name: Int }`)

			fields := fieldsOf(extended, "Foo")
			Expect(fields.Keys()).Should(Equal([]string{"name"}))
			Expect(fields.Get("name").Type()).Should(BeIdenticalTo(graphql.Int()))
		})

		It("accumulates extension nodes over extensions", func() {
			once := extendSchema(base, `extend type Foo { a: Int }`)
			twice := extendSchema(once, `extend type Foo { b: Int }`)

			Expect(fieldsOf(twice, "Foo").Keys()).Should(Equal([]string{"name", "a", "b"}))
			Expect(twice.Type("Foo").ExtensionASTNodes()).Should(HaveLen(2))
			Expect(once.Type("Foo").ExtensionASTNodes()).Should(HaveLen(1))
		})

		It("adds new types referring to existing ones", func() {
			extended := extendSchema(base, `
				type Bar { foo: Foo }
				extend type Query { bar: Bar }
			`)

			bar := extended.Type("Bar")
			Expect(bar).ShouldNot(BeNil())
			Expect(fieldsOf(extended, "Query").Get("bar").Type()).Should(BeIdenticalTo(bar))
			Expect(fieldsOf(extended, "Bar").Get("foo").Type()).Should(BeIdenticalTo(extended.Type("Foo")))
			Expect(base.Type("Bar")).Should(BeNil())
		})

		It("extends new types within the same document", func() {
			extended := extendSchema(base, `
				type Bar { a: Int }
				extend type Bar { b: Int }
				extend type Query { bar: Bar }
			`)

			Expect(fieldsOf(extended, "Bar").Keys()).Should(Equal([]string{"a", "b"}))
		})

		It("keeps resolvers of existing fields and attaches resolvers to new ones", func() {
			resolve := func(ctx context.Context, source interface{}, info *graphql.ResolveInfo) (interface{}, error) {
				return "resolved", nil
			}

			resolved := buildSchema(`
				type Query { foo: Foo }
				type Foo { name: String }
			`, builder.WithResolvers(builder.ResolverMap{
				"Foo": {"name": builder.FieldConfigRecord{builder.FieldConfigResolve: resolve}},
			}))

			extended := extendSchema(resolved, `extend type Foo { extra: Int }`, builder.WithResolvers(builder.ResolverMap{
				"Foo": {"extra": builder.FieldConfigRecord{builder.FieldConfigResolve: resolve}},
			}))

			fields := fieldsOf(extended, "Foo")
			Expect(fields.Get("name").Resolver()).ShouldNot(BeNil())
			Expect(fields.Get("extra").Resolver()).ShouldNot(BeNil())
			Expect(fields.Get("extra").Resolver().Resolve(context.Background(), nil, nil)).Should(Equal("resolved"))
		})

		It("reports unknown types in added fields", func() {
			err := extendError(base, `extend type Foo { bad: Missing }`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Unknown type "Missing".`),
				testutil.ErrIs(graphql.ErrUnknownType),
			))
		})
	})

	Describe("other kinds of types", func() {
		It("extends interfaces and adds implementations", func() {
			schema := buildSchema(`
				type Query { node: Node }
				interface Node { id: ID! }
				type User implements Node { id: ID! }
			`)

			extended := extendSchema(schema, `
				interface Named { name: String }
				extend interface Node { version: Int }
				extend type User implements Named { name: String version: Int }
			`)

			user := extended.Type("User").(*graphql.Object)
			interfaces, err := user.Interfaces()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(interfaces).Should(Equal([]*graphql.Interface{
				extended.Type("Node").(*graphql.Interface),
				extended.Type("Named").(*graphql.Interface),
			}))
			Expect(fieldsOf(extended, "Node").Keys()).Should(Equal([]string{"id", "version"}))
			Expect(extended.PossibleTypes(extended.Type("Named").(*graphql.Interface))).Should(
				Equal([]*graphql.Object{user}))
		})

		It("adds members to unions", func() {
			schema := buildSchema(`
				type Query { result: Result }
				union Result = A
				type A { a: Int }
				type B { b: Int }
			`)

			extended := extendSchema(schema, `extend union Result = B`)

			members, err := extended.Type("Result").(*graphql.Union).PossibleTypes()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(members).Should(Equal([]*graphql.Object{
				extended.Type("A").(*graphql.Object),
				extended.Type("B").(*graphql.Object),
			}))

			baseMembers, err := schema.Type("Result").(*graphql.Union).PossibleTypes()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(baseMembers).Should(HaveLen(1))
		})

		It("adds values to enums", func() {
			schema := buildSchema(`
				type Query { color: Color }
				enum Color { RED }
			`)

			extended := extendSchema(schema, `extend enum Color { GREEN }`)

			Expect(extended.Type("Color").(*graphql.Enum).Values().Keys()).Should(Equal([]string{"RED", "GREEN"}))
			Expect(schema.Type("Color").(*graphql.Enum).Values().Keys()).Should(Equal([]string{"RED"}))
		})

		It("keeps enums that are not extended", func() {
			schema := buildSchema(`
				type Query { color: Color }
				enum Color { RED }
			`)

			extended := extendSchema(schema, `extend type Query { other: Int }`)
			Expect(extended.Type("Color")).Should(BeIdenticalTo(schema.Type("Color")))
		})

		It("adds fields to input objects", func() {
			schema := buildSchema(`
				type Query { f(in: In): Int }
				input In { a: Int }
			`)

			extended := extendSchema(schema, `extend input In { b: String = "x" }`)

			fields := inputFieldsOf(extended, "In")
			Expect(fields.Keys()).Should(Equal([]string{"a", "b"}))
			Expect(fields.Get("b").DefaultValue()).Should(Equal("x"))
			Expect(fieldsOf(extended, "Query").Get("f").Arg("in").Type()).Should(BeIdenticalTo(extended.Type("In")))
			Expect(inputFieldsOf(schema, "In").Keys()).Should(Equal([]string{"a"}))
		})

		It("applies @specifiedBy of scalar extensions", func() {
			schema := buildSchema(`
				type Query { d: Date }
				scalar Date
			`)

			extended := extendSchema(schema, `extend scalar Date @specifiedBy(url: "https://example.com/date")`)

			Expect(extended.Type("Date").(*graphql.Scalar).SpecifiedByURL()).Should(Equal("https://example.com/date"))
			Expect(schema.Type("Date").(*graphql.Scalar).SpecifiedByURL()).Should(BeEmpty())
		})

		It("ignores extensions of built-in scalars", func() {
			logger := &recordingLogger{}
			extended := extendSchema(base, `extend scalar String @specifiedBy(url: "https://example.com")`,
				builder.WithLogger(logger.Logger()))

			Expect(extended.Type("String")).Should(BeIdenticalTo(graphql.String()))
			Expect(logger.Messages(log.LevelWarn)).Should(ContainElement("extensions to built-in scalar String are ignored"))
		})
	})

	Describe("directives", func() {
		It("adds new directives", func() {
			extended := extendSchema(base, `directive @cached(ttl: Int = 60) on FIELD_DEFINITION`)

			cached := extended.Directive("cached")
			Expect(cached).ShouldNot(BeNil())
			Expect(cached.Arg("ttl").DefaultValue()).Should(Equal(60))
			Expect(base.Directive("cached")).Should(BeNil())
			Expect(extended.Directives()).Should(HaveLen(len(base.Directives()) + 1))
		})

		It("rejects redefinition of a specified directive", func() {
			err := extendError(base, `directive @include(if: Boolean!) on FIELD`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Directive "@include" already exists in the schema. It cannot be redefined.`),
				testutil.KindIs(graphql.ErrKindExtension),
				testutil.ErrIs(graphql.ErrDuplicateDirective),
			))

			Expect(base.Directive("include")).Should(BeIdenticalTo(graphql.IncludeDirective()))
			Expect(base.Directives()).Should(HaveLen(4))
			Expect(fieldsOf(base, "Foo").Keys()).Should(Equal([]string{"name"}))
		})

		It("refers existing directives to the extended types", func() {
			schema := buildSchema(`
				directive @tag(level: Level) on FIELD_DEFINITION
				enum Level { LOW HIGH }
				type Query { a: Int }
			`)

			extended := extendSchema(schema, `extend enum Level { MID }`)

			level := extended.Type("Level")
			Expect(level.(*graphql.Enum).Values().Len()).Should(Equal(3))
			Expect(extended.Directive("tag").Arg("level").Type()).Should(BeIdenticalTo(level))
			Expect(schema.Directive("tag").Arg("level").Type()).Should(BeIdenticalTo(schema.Type("Level")))
		})
	})

	Describe("schema extensions", func() {
		It("adds root operation types", func() {
			extended := extendSchema(base, `
				type Mutation { m: Int }
				extend schema { mutation: Mutation }
			`)

			Expect(extended.Mutation()).Should(BeIdenticalTo(extended.Type("Mutation")))
			Expect(extended.Query()).Should(BeIdenticalTo(extended.Type("Query")))
			Expect(extended.ExtensionASTNodes()).Should(HaveLen(1))
			Expect(base.Mutation()).Should(BeNil())
		})

		It("rejects redefinition of a root operation type", func() {
			err := extendError(base, `extend schema { query: Foo }`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual("Type for query already defined in the schema. It cannot be redefined."),
				testutil.ErrIs(graphql.ErrDuplicateOperationType),
			))
		})

		It("rejects an undefined root operation type", func() {
			err := extendError(base, `extend schema { mutation: Nope }`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Specified mutation type "Nope" not found in document or schema.`),
				testutil.ErrIs(graphql.ErrMissingOperationType),
			))
		})

		It("rejects a schema definition", func() {
			err := extendError(base, `schema { query: Foo }`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual("Cannot define a new schema within a schema extension."),
				testutil.ErrIs(graphql.ErrDuplicateSchemaDefinition),
			))
		})
	})

	Describe("invalid extensions", func() {
		It("rejects a type that already exists", func() {
			err := extendError(base, `type Foo { other: Int }`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Type "Foo" already exists in the schema. It cannot also be defined in this `+
					`type definition.`),
				testutil.KindIs(graphql.ErrKindExtension),
				testutil.ErrIs(graphql.ErrConflictingType),
			))
		})

		It("rejects an extension of a type that does not exist", func() {
			err := extendError(base, `extend type Bar { a: Int }`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Cannot extend type "Bar" because it does not exist in the existing schema.`),
				testutil.KindIs(graphql.ErrKindExtension),
				testutil.ErrIs(graphql.ErrUnknownExtensionTarget),
			))
		})

		It("rejects an extension of another kind", func() {
			err := extendError(base, `extend interface Foo { a: Int }`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Cannot extend non-interface type "Foo".`),
				testutil.ErrIs(graphql.ErrKindMismatch),
			))
		})

		It("rejects an extension of an introspection type", func() {
			err := extendError(base, `extend type __Type { extra: Int }`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Cannot extend introspection type "__Type".`),
				testutil.ErrIs(graphql.ErrUnknownExtensionTarget),
			))
		})

		It("validates the extended schema", func() {
			schema := buildSchema(`
				type Query { node: Node }
				interface Node { id: ID }
				type User implements Node { id: ID }
			`)

			extended := extendSchema(schema, `extend interface Node { name: String }`)
			Expect(graphql.ValidateSchema(schema)).Should(Succeed())
			Expect(graphql.AssertValidSchema(extended)).Should(testutil.MatchGraphQLError(
				testutil.MessageContainSubstring("Interface field Node.name expected but User does not provide it."),
				testutil.ErrIs(graphql.ErrInvalidSchema),
			))

			extended = extendSchema(schema, `extend interface Node { name: String }`, builder.AssumeValid())
			Expect(extended.AssumeValid()).Should(BeTrue())
			Expect(graphql.AssertValidSchema(extended)).Should(Succeed())
		})

		It("supplies the query root of a schema built without one", func() {
			schema := buildSchema(`type Foo { a: Int }`)
			Expect(schema.Query()).Should(BeNil())

			extended := extendSchema(schema, `extend schema { query: Foo }`)
			Expect(extended.Query()).Should(BeIdenticalTo(extended.Type("Foo")))
			Expect(graphql.ValidateSchema(extended)).Should(Succeed())
			Expect(schema.Query()).Should(BeNil())
		})
	})

	Describe("diagnostics", func() {
		It("traces and logs an extension", func() {
			logger := &recordingLogger{}
			tracer := &recordingTracer{}

			doc, err := parser.ParseSchema("more.graphql", `extend type Foo { extra: Int }`)
			Expect(err).ShouldNot(HaveOccurred())

			_, err = builder.ExtendSchema(base, doc, builder.WithLogger(logger.Logger()), builder.WithTracer(tracer))
			Expect(err).ShouldNot(HaveOccurred())

			Expect(tracer.spans).Should(Equal([]*span{
				{Operation: "extend", Source: "more.graphql", Finished: true},
			}))
			Expect(logger.Messages(log.LevelDebug)).Should(ConsistOf(HavePrefix("extended schema with more.graphql: ")))
		})

		It("logs an extension adding nothing", func() {
			logger := &recordingLogger{}
			extendSchema(base, "", builder.WithLogger(logger.Logger()))
			Expect(logger.Messages(log.LevelDebug)).Should(Equal([]string{
				"extension.graphql adds nothing to the schema",
			}))
		})
	})
})
