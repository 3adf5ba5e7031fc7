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
	"github.com/botobag/gqlcore/graphql"
	"github.com/botobag/gqlcore/graphql/builder"
	"github.com/botobag/gqlcore/graphql/parser"
	"github.com/botobag/gqlcore/internal/testutil"
	"github.com/botobag/gqlcore/internal/util"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/vektah/gqlparser/v2/ast"
)

// parseDefinitions parses sdl and indexes its type definitions by name.
func parseDefinitions(sdl string) (map[string]*ast.Definition, *ast.SchemaDocument) {
	doc, err := parser.ParseSchema("definitions.graphql", util.Dedent(sdl))
	Expect(err).ShouldNot(HaveOccurred())

	defs := map[string]*ast.Definition{}
	for _, def := range doc.Definitions {
		defs[def.Name] = def
	}
	return defs, doc
}

func newDefinitionBuilder(sdl string) *builder.DefinitionBuilder {
	defs, _ := parseDefinitions(sdl)
	return builder.NewDefinitionBuilder(defs, nil, nil)
}

func mustBuildNamedType(b *builder.DefinitionBuilder, name string) graphql.NamedType {
	t, err := b.BuildNamedType(name)
	Expect(err).ShouldNot(HaveOccurred())
	return t
}

func objectFields(t graphql.NamedType) graphql.FieldMap {
	object, ok := t.(*graphql.Object)
	Expect(ok).Should(BeTrue(), "%s is not an Object", t)
	fields, err := object.Fields()
	Expect(err).ShouldNot(HaveOccurred())
	return fields
}

var _ = Describe("DefinitionBuilder", func() {
	Describe("named types", func() {
		It("resolves mutually recursive types to the same instances", func() {
			b := newDefinitionBuilder(`
				type A { b: B }
				type B { a: A }
			`)

			a := mustBuildNamedType(b, "A")
			bType := mustBuildNamedType(b, "B")

			Expect(objectFields(a).Get("b").Type()).Should(BeIdenticalTo(bType))
			Expect(objectFields(bType).Get("a").Type()).Should(BeIdenticalTo(a))
			Expect(mustBuildNamedType(b, "A")).Should(BeIdenticalTo(a))
			Expect(b.Cache().Get("A")).Should(BeIdenticalTo(a))
		})

		It("builds a type whose definition refers to itself", func() {
			b := newDefinitionBuilder(`type Node { parent: Node children: [Node!]! }`)

			node := mustBuildNamedType(b, "Node")
			fields := objectFields(node)
			Expect(fields.Get("parent").Type()).Should(BeIdenticalTo(node))
			Expect(fields.Get("children").Type().String()).Should(Equal("[Node!]!"))
			Expect(graphql.NamedTypeOf(fields.Get("children").Type())).Should(BeIdenticalTo(node))
		})

		It("maps each kind of definition to the corresponding type", func() {
			b := newDefinitionBuilder(`
				scalar Date
				type Object { f: Int }
				interface Interface { f: Int }
				union Union = Object
				enum Enum { A B }
				input Input { f: Int }
			`)

			Expect(mustBuildNamedType(b, "Date")).Should(BeAssignableToTypeOf(&graphql.Scalar{}))
			Expect(mustBuildNamedType(b, "Object")).Should(BeAssignableToTypeOf(&graphql.Object{}))
			Expect(mustBuildNamedType(b, "Interface")).Should(BeAssignableToTypeOf(&graphql.Interface{}))
			Expect(mustBuildNamedType(b, "Union")).Should(BeAssignableToTypeOf(&graphql.Union{}))
			Expect(mustBuildNamedType(b, "Enum")).Should(BeAssignableToTypeOf(&graphql.Enum{}))
			Expect(mustBuildNamedType(b, "Input")).Should(BeAssignableToTypeOf(&graphql.InputObject{}))
		})

		It("copies descriptions and definition nodes", func() {
			defs, _ := parseDefinitions(`
				"A thing"
				type Thing {
					"The name"
					name: String
				}
			`)
			b := builder.NewDefinitionBuilder(defs, nil, nil)

			thing := mustBuildNamedType(b, "Thing")
			Expect(thing.Description()).Should(Equal("A thing"))
			Expect(thing.ASTNode()).Should(BeIdenticalTo(defs["Thing"]))

			name := objectFields(thing).Get("name")
			Expect(name.Description()).Should(Equal("The name"))
			Expect(name.ASTNode()).Should(BeIdenticalTo(defs["Thing"].Fields.ForName("name")))
		})

		It("defers reporting unknown types in fields until the fields are requested", func() {
			b := newDefinitionBuilder(`type Query { a: Missing }`)

			query, err := b.BuildNamedType("Query")
			Expect(err).ShouldNot(HaveOccurred())

			_, err = query.(*graphql.Object).Fields()
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Unknown type "Missing".`),
				testutil.LocationEqual(graphql.ErrorLocation{Line: 1, Column: 17}),
				testutil.KindIs(graphql.ErrKindSchema),
				testutil.ErrIs(graphql.ErrUnknownType),
			))
		})

		It("rejects a name that has no definition", func() {
			b := newDefinitionBuilder(`type Query { a: Int }`)

			_, err := b.BuildNamedType("Nope")
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Unknown type "Nope".`),
				testutil.ErrIs(graphql.ErrUnknownType),
			))
		})

		It("asks the unknown type resolver for names without a definition", func() {
			date := graphql.MustNewScalar(&graphql.ScalarConfig{Name: "Date"})
			var asked []string

			defs, _ := parseDefinitions(`type Query { today: Date tomorrow: Date }`)
			b := builder.NewDefinitionBuilder(defs, nil, func(name string) (graphql.NamedType, error) {
				asked = append(asked, name)
				if name == "Date" {
					return date, nil
				}
				return nil, nil
			})

			fields := objectFields(mustBuildNamedType(b, "Query"))
			Expect(fields.Get("today").Type()).Should(BeIdenticalTo(date))
			Expect(fields.Get("tomorrow").Type()).Should(BeIdenticalTo(date))
			Expect(b.Cache().Get("Date")).Should(BeIdenticalTo(date))
			Expect(asked).Should(Equal([]string{"Date"}))

			_, err := b.BuildNamedType("Time")
			Expect(err).Should(testutil.MatchGraphQLError(testutil.ErrIs(graphql.ErrUnknownType)))
		})

		It("prefers types that are already in the cache", func() {
			date := graphql.MustNewScalar(&graphql.ScalarConfig{Name: "Date"})
			cache := builder.NewTypeCache()
			cache.Set("Date", date)

			defs, _ := parseDefinitions(`
				scalar Date
				type Query { today: Date }
			`)
			b := builder.NewDefinitionBuilder(defs, &builder.Options{TypeCache: cache}, nil)

			Expect(b.Cache()).Should(BeIdenticalTo(cache))
			Expect(mustBuildNamedType(b, "Date")).Should(BeIdenticalTo(date))
			Expect(objectFields(mustBuildNamedType(b, "Query")).Get("today").Type()).Should(BeIdenticalTo(date))
		})

		It("rejects a definition of unsupported kind", func() {
			b := newDefinitionBuilder(``)

			_, err := b.BuildType(&ast.Definition{Kind: "WIDGET", Name: "Gadget"})
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Type "Gadget" has unsupported definition kind "WIDGET".`),
				testutil.KindIs(graphql.ErrKindSchema),
				testutil.ErrIs(graphql.ErrUnsupportedKind),
			))
		})

		It("rejects an object implementing a non-interface type", func() {
			b := newDefinitionBuilder(`
				type Query implements Other { a: Int }
				type Other { a: Int }
			`)

			_, err := mustBuildNamedType(b, "Query").(*graphql.Object).Interfaces()
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual("Type Query must only implement Interface types, it cannot implement Other."),
				testutil.ErrIs(graphql.ErrInvalidTypeConfig),
			))
		})

		It("rejects a union including a non-object type", func() {
			b := newDefinitionBuilder(`
				union U = E
				enum E { A }
			`)

			_, err := mustBuildNamedType(b, "U").(*graphql.Union).PossibleTypes()
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual("Union type U can only include Object types, it cannot include E."),
				testutil.ErrIs(graphql.ErrInvalidTypeConfig),
			))
		})

		It("maps definitions of specified scalars to the built-in scalars", func() {
			b := newDefinitionBuilder(`scalar String`)
			Expect(mustBuildNamedType(b, "String")).Should(BeIdenticalTo(graphql.String()))
		})
	})

	Describe("wrapped types", func() {
		It("wraps the named type in List and NonNull", func() {
			b := newDefinitionBuilder(`type A { f: Int }`)

			t, err := b.BuildWrappedType(ast.ListType(ast.NonNullNamedType("A", nil), nil))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(t.String()).Should(Equal("[A!]"))

			list, ok := t.(*graphql.List)
			Expect(ok).Should(BeTrue())
			nonNull, ok := list.ElementType().(*graphql.NonNull)
			Expect(ok).Should(BeTrue())
			Expect(nonNull.InnerType()).Should(BeIdenticalTo(mustBuildNamedType(b, "A")))
		})

		It("fails for an unknown named type", func() {
			b := newDefinitionBuilder(``)

			_, err := b.BuildWrappedType(ast.NonNullListType(ast.NamedType("Missing", nil), nil))
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Unknown type "Missing".`),
				testutil.ErrIs(graphql.ErrUnknownType),
			))
		})
	})

	Describe("default values", func() {
		argOf := func(sdl string, typeName string, fieldName string, argName string) *graphql.Argument {
			b := newDefinitionBuilder(sdl)
			arg := objectFields(mustBuildNamedType(b, typeName)).Get(fieldName).Arg(argName)
			Expect(arg).ShouldNot(BeNil())
			return arg
		}

		It("coerces default values of arguments", func() {
			arg := argOf(`type Query { f(a: Int = 3): Int }`, "Query", "f", "a")
			Expect(arg.HasDefaultValue()).Should(BeTrue())
			Expect(arg.DefaultValue()).Should(Equal(3))
		})

		It("leaves an argument without default value", func() {
			arg := argOf(`type Query { f(a: Int): Int }`, "Query", "f", "a")
			Expect(arg.HasDefaultValue()).Should(BeFalse())
			Expect(arg.DefaultValue()).Should(BeNil())
		})

		It("keeps an explicit null default value", func() {
			arg := argOf(`type Query { f(a: Int = null): Int }`, "Query", "f", "a")
			Expect(arg.HasDefaultValue()).Should(BeTrue())
			Expect(arg.DefaultValue()).Should(BeNil())
			Expect(arg.Config().DefaultValue).Should(Equal(graphql.NilDefaultValue))
		})

		It("coerces a single item to a list", func() {
			arg := argOf(`type Query { f(a: [Int] = 1): Int }`, "Query", "f", "a")
			Expect(arg.DefaultValue()).Should(Equal([]interface{}{1}))
		})

		It("fills in default values of input object fields", func() {
			arg := argOf(`
				type Query { f(in: In = {}): Int }
				input In { a: Int = 1 b: String }
			`, "Query", "f", "in")
			Expect(arg.DefaultValue()).Should(Equal(map[string]interface{}{"a": 1}))
		})

		It("coerces enum default values to internal values", func() {
			arg := argOf(`
				type Query { f(color: Color = RED): Int }
				enum Color { RED GREEN }
			`, "Query", "f", "color")
			Expect(arg.DefaultValue()).Should(Equal("RED"))
		})

		It("rejects a default value that is invalid for the type", func() {
			b := newDefinitionBuilder(`type Query { f(a: Int = "abc"): Int }`)

			_, err := mustBuildNamedType(b, "Query").(*graphql.Object).Fields()
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Invalid default value "abc" for Query.f(a:).`),
				testutil.KindIs(graphql.ErrKindSchema),
				testutil.ErrIs(graphql.ErrInvalidDefaultValue),
			))
			Expect(err).Should(MatchError(graphql.ErrScalarCoercion))
		})

		It("rejects an invalid default value of an input field", func() {
			b := newDefinitionBuilder(`input In { a: [Int!] = [1, null] }`)

			_, err := mustBuildNamedType(b, "In").(*graphql.InputObject).Fields()
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Invalid default value [1,null] for In.a.`),
				testutil.ErrIs(graphql.ErrInvalidDefaultValue),
			))
		})

		It("detects default values that depend on input objects being defined", func() {
			b := newDefinitionBuilder(`
				input A { b: B = {} }
				input B { a: A = {} }
			`)

			_, err := mustBuildNamedType(b, "A").(*graphql.InputObject).Fields()
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual("Cannot compute default value {} for B.a: it depends on fields of A "+
					"which are being defined."),
				testutil.KindIs(graphql.ErrKindSchema),
				testutil.ErrIs(graphql.ErrCyclicDefaultValue),
			))
		})

		It("accepts defaults referring to input objects that are fully defined", func() {
			b := newDefinitionBuilder(`
				input A { b: B = {} }
				input B { x: Int = 1 }
			`)

			fields, err := mustBuildNamedType(b, "A").(*graphql.InputObject).Fields()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(fields.Get("b").DefaultValue()).Should(Equal(map[string]interface{}{"x": 1}))
		})
	})

	Describe("deprecation", func() {
		It("reads @deprecated on fields and enum values", func() {
			b := newDefinitionBuilder(`
				type Query {
					old: Int @deprecated
					older: Int @deprecated(reason: "Use newer")
					current: Int
				}
				enum Color { RED @deprecated(reason: "Too loud") BLUE }
			`)

			fields := objectFields(mustBuildNamedType(b, "Query"))
			Expect(fields.Get("old").Deprecation()).Should(Equal(&graphql.Deprecation{
				Reason: graphql.DefaultDeprecationReason,
			}))
			Expect(fields.Get("older").Deprecation()).Should(Equal(&graphql.Deprecation{Reason: "Use newer"}))
			Expect(fields.Get("current").Deprecation().Defined()).Should(BeFalse())

			color := mustBuildNamedType(b, "Color").(*graphql.Enum)
			Expect(color.Value("RED").Deprecation()).Should(Equal(&graphql.Deprecation{Reason: "Too loud"}))
			Expect(color.Value("BLUE").Deprecation()).Should(BeNil())
		})

		It("returns the deprecation declared in a directive list", func() {
			_, doc := parseDefinitions(`type T { a: Int @deprecated(reason: "gone") b: Int }`)
			fields := doc.Definitions[0].Fields

			Expect(builder.DeprecationFor(fields.ForName("a").Directives)).Should(Equal(&graphql.Deprecation{
				Reason: "gone",
			}))
			Expect(builder.DeprecationFor(fields.ForName("b").Directives)).Should(BeNil())
		})

		It("keeps an explicit empty reason", func() {
			_, doc := parseDefinitions(`type T { a: Int @deprecated(reason: "") b: Int @deprecated(reason: null) }`)
			fields := doc.Definitions[0].Fields

			deprecation := builder.DeprecationFor(fields.ForName("a").Directives)
			Expect(deprecation.Defined()).Should(BeTrue())
			Expect(deprecation.Reason).Should(BeEmpty())

			Expect(builder.DeprecationFor(fields.ForName("b").Directives)).Should(Equal(&graphql.Deprecation{
				Reason: graphql.DefaultDeprecationReason,
			}))
		})

		It("falls back to the default reason for an invalid reason", func() {
			_, doc := parseDefinitions(`type T { a: Int @deprecated(reason: 42) }`)

			Expect(builder.DeprecationFor(doc.Definitions[0].Fields[0].Directives)).Should(Equal(&graphql.Deprecation{
				Reason: graphql.DefaultDeprecationReason,
			}))
		})
	})

	Describe("directives", func() {
		It("builds a directive definition", func() {
			defs, doc := parseDefinitions(`
				"Tags a field"
				directive @tag(name: String = "none", level: Level) repeatable on FIELD_DEFINITION | OBJECT
				enum Level { LOW HIGH }
			`)
			b := builder.NewDefinitionBuilder(defs, nil, nil)

			directive, err := b.BuildDirective(doc.Directives[0])
			Expect(err).ShouldNot(HaveOccurred())
			Expect(directive.Name()).Should(Equal("tag"))
			Expect(directive.Description()).Should(Equal("Tags a field"))
			Expect(directive.IsRepeatable()).Should(BeTrue())
			Expect(directive.Locations()).Should(Equal([]graphql.DirectiveLocation{
				graphql.DirectiveLocationFieldDefinition,
				graphql.DirectiveLocationObject,
			}))
			Expect(directive.ASTNode()).Should(BeIdenticalTo(doc.Directives[0]))

			name := directive.Arg("name")
			Expect(name.Type()).Should(BeIdenticalTo(graphql.String()))
			Expect(name.DefaultValue()).Should(Equal("none"))

			Expect(directive.Arg("level").Type()).Should(BeIdenticalTo(mustBuildNamedType(b, "Level")))
		})

		It("reports invalid default values of directive arguments", func() {
			defs, doc := parseDefinitions(`directive @limit(max: Int = "many") on FIELD`)
			b := builder.NewDefinitionBuilder(defs, nil, nil)

			_, err := b.BuildDirective(doc.Directives[0])
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Invalid default value "many" for @limit(max:).`),
				testutil.ErrIs(graphql.ErrInvalidDefaultValue),
			))
		})
	})
})
