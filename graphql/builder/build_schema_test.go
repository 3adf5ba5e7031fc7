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
	"github.com/botobag/gqlcore/graphql/value"
	"github.com/botobag/gqlcore/internal/testutil"
	"github.com/botobag/gqlcore/internal/util"
	"github.com/botobag/gqlcore/log"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/vektah/gqlparser/v2/ast"
)

var _ = Describe("BuildSchema", func() {
	buildError := func(sdl string, opts ...builder.Option) error {
		schema, err := builder.BuildSchemaFromSource("schema.graphql", util.Dedent(sdl), opts...)
		Expect(schema).Should(BeNil())
		return err
	}

	Describe("root operation types", func() {
		It("uses the conventional names when there's no schema definition", func() {
			schema := buildSchema(`
				type Query { a: Int }
				type Mutation { b: Int }
				type Subscription { c: Int }
			`)

			Expect(schema.Query()).Should(BeIdenticalTo(schema.Type("Query")))
			Expect(schema.Mutation()).Should(BeIdenticalTo(schema.Type("Mutation")))
			Expect(schema.Subscription()).Should(BeIdenticalTo(schema.Type("Subscription")))
			Expect(schema.RootType(ast.Mutation)).Should(BeIdenticalTo(schema.Mutation()))
			Expect(schema.ASTNode()).Should(BeNil())
		})

		It("uses the types named by the schema definition", func() {
			schema := buildSchema(`
				schema { query: Root mutation: Change }
				type Root { a: Int }
				type Change { b: Int }
				type Mutation { c: Int }
			`)

			Expect(schema.Query()).Should(BeIdenticalTo(schema.Type("Root")))
			Expect(schema.Mutation()).Should(BeIdenticalTo(schema.Type("Change")))
			Expect(schema.Subscription()).Should(BeNil())
			Expect(schema.Type("Mutation")).ShouldNot(BeNil())
			Expect(schema.ASTNode()).ShouldNot(BeNil())
		})

		It("rejects multiple schema definitions", func() {
			err := buildError(`
				schema { query: Query }
				schema { query: Query }
				type Query { a: Int }
			`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual("Must provide only one schema definition."),
				testutil.KindIs(graphql.ErrKindSchema),
				testutil.ErrIs(graphql.ErrDuplicateSchemaDefinition),
			))
		})

		It("rejects an operation listed twice", func() {
			err := buildError(`
				schema { query: Query query: Query }
				type Query { a: Int }
			`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual("Must provide only one query type in schema."),
				testutil.ErrIs(graphql.ErrDuplicateOperationType),
			))
		})

		It("rejects a root operation type that is not defined", func() {
			err := buildError(`
				schema { query: Root }
				type Query { a: Int }
			`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Specified query type "Root" not found in document.`),
				testutil.KindIs(graphql.ErrKindSchema),
				testutil.ErrIs(graphql.ErrMissingOperationType),
			))
		})

		It("rejects a root operation type that is not an Object", func() {
			err := buildError(`
				schema { query: Q }
				interface Q { a: Int }
			`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual("Query root type must be Object type, it cannot be Q."),
				testutil.ErrIs(graphql.ErrInvalidSchema),
			))
		})
	})

	Describe("types", func() {
		It("builds every kind of type", func() {
			schema := buildSchema(`
				type Query { node(id: ID!): Node search(text: String = "*"): [Result!]! }
				interface Node { id: ID! }
				type User implements Node { id: ID! name: String }
				type Post implements Node { id: ID! title: String }
				union Result = User | Post
				enum Role { ADMIN GUEST }
				input Filter { role: Role = GUEST limit: Int }
				scalar Date
			`)

			Expect(schema.TypeMap().Names()).Should(ContainElements(
				"Query", "Node", "User", "Post", "Result", "Role", "Filter", "Date",
				"String", "Int", "ID", "Boolean", "Float", "__Schema", "__Type",
			))

			node := schema.Type("Node").(*graphql.Interface)
			Expect(schema.PossibleTypes(node)).Should(ConsistOf(schema.Type("User"), schema.Type("Post")))

			result := schema.Type("Result").(*graphql.Union)
			members, err := result.PossibleTypes()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(members).Should(Equal([]*graphql.Object{
				schema.Type("User").(*graphql.Object),
				schema.Type("Post").(*graphql.Object),
			}))

			Expect(fieldsOf(schema, "Query").Get("search").Type().String()).Should(Equal("[Result!]!"))
			Expect(inputFieldsOf(schema, "Filter").Get("role").DefaultValue()).Should(Equal("GUEST"))
		})

		It("keeps the declaration order of fields", func() {
			schema := buildSchema(`type Query { c: Int a: Int b: Int }`)
			Expect(fieldsOf(schema, "Query").Keys()).Should(Equal([]string{"c", "a", "b"}))
		})

		It("rejects a type defined twice", func() {
			err := buildError(`
				type Query { a: Int }
				type Query { b: Int }
			`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`There can be only one type named "Query".`),
				testutil.KindIs(graphql.ErrKindSchema),
				testutil.ErrIs(graphql.ErrDuplicateType),
			))
		})

		It("reports an unknown type with its location", func() {
			err := buildError(`type Query { a: Missing }`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Unknown type "Missing".`),
				testutil.LocationEqual(graphql.ErrorLocation{Line: 1, Column: 17}),
				testutil.ErrIs(graphql.ErrUnknownType),
			))
		})

		It("reports the line and column of an unknown type in a later definition", func() {
			err := buildError(`
				type Query { a: Int }
				type Foo { b: Missing }
			`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Unknown type "Missing".`),
				testutil.LocationEqual(graphql.ErrorLocation{Line: 2, Column: 15}),
			))
		})

		It("maps definitions of specified scalars to the built-in scalars", func() {
			logger := &recordingLogger{}
			schema := buildSchema(`
				scalar String
				type Query { a: String }
			`, builder.WithLogger(logger.Logger()), builder.WithResolvers(builder.ResolverMap{
				"String": {builder.SerializeKey: func(v interface{}) (interface{}, error) { return v, nil }},
			}))

			Expect(schema.Type("String")).Should(BeIdenticalTo(graphql.String()))
			Expect(fieldsOf(schema, "Query").Get("a").Type()).Should(BeIdenticalTo(graphql.String()))
			Expect(logger.Messages(log.LevelWarn)).Should(ContainElement(
				"resolvers for built-in scalar String are ignored"))
		})

		It("uses types from the given cache", func() {
			date := graphql.MustNewScalar(&graphql.ScalarConfig{Name: "Date"})
			cache := builder.NewTypeCache()
			cache.Set("Date", date)

			schema := buildSchema(`
				scalar Date
				type Query { today: Date }
			`, builder.WithTypeCache(cache))

			Expect(schema.Type("Date")).Should(BeIdenticalTo(date))
			Expect(cache.Get("Query")).Should(BeIdenticalTo(schema.Query()))
		})

		It("rejects syntax errors", func() {
			err := buildError(`type {`)
			Expect(err).Should(testutil.MatchGraphQLError(testutil.KindIs(graphql.ErrKindSyntax)))
		})

		It("panics from MustBuildSchemaFromSource on error", func() {
			Expect(func() {
				builder.MustBuildSchemaFromSource("schema.graphql", `type Query { a: Missing }`)
			}).Should(Panic())
		})

		It("builds from a parsed document", func() {
			doc, err := parser.ParseSchema("doc.graphql", `type Query { a: Int }`)
			Expect(err).ShouldNot(HaveOccurred())

			schema, err := builder.BuildSchema(doc)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(fieldsOf(schema, "Query").Keys()).Should(Equal([]string{"a"}))
		})
	})

	Describe("directives", func() {
		It("includes the specified directives", func() {
			schema := buildSchema(`type Query { a: Int }`)

			Expect(schema.Directives()).Should(HaveLen(4))
			Expect(schema.Directive("skip")).Should(BeIdenticalTo(graphql.SkipDirective()))
			Expect(schema.Directive("include")).Should(BeIdenticalTo(graphql.IncludeDirective()))
			Expect(schema.Directive("deprecated")).Should(BeIdenticalTo(graphql.DeprecatedDirective()))
			Expect(schema.Directive("specifiedBy")).Should(BeIdenticalTo(graphql.SpecifiedByDirective()))
		})

		It("adds custom directives", func() {
			schema := buildSchema(`
				directive @auth(requires: Role = ADMIN) on OBJECT | FIELD_DEFINITION
				enum Role { ADMIN USER }
				type Query { a: Int }
			`)

			Expect(schema.Directives()).Should(HaveLen(5))
			auth := schema.Directive("auth")
			Expect(auth).ShouldNot(BeNil())
			Expect(auth.Arg("requires").Type()).Should(BeIdenticalTo(schema.Type("Role")))
			Expect(auth.Arg("requires").DefaultValue()).Should(Equal("ADMIN"))
		})

		It("lets the document override a specified directive", func() {
			schema := buildSchema(`
				directive @include(if: Boolean!) on FIELD
				type Query { a: Int }
			`)

			Expect(schema.Directives()).Should(HaveLen(4))
			include := schema.Directive("include")
			Expect(include).ShouldNot(BeIdenticalTo(graphql.IncludeDirective()))
			Expect(include.Locations()).Should(Equal([]graphql.DirectiveLocation{graphql.DirectiveLocationField}))
			Expect(schema.Directive("skip")).Should(BeIdenticalTo(graphql.SkipDirective()))
		})

		It("rejects a directive defined twice", func() {
			err := buildError(`
				directive @foo on FIELD
				directive @foo on FIELD
				type Query { a: Int }
			`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`There can be only one directive named "@foo".`),
				testutil.KindIs(graphql.ErrKindSchema),
				testutil.ErrIs(graphql.ErrDuplicateDirective),
			))
		})
	})

	Describe("resolvers", func() {
		It("attaches field resolvers", func() {
			schema := buildSchema(`type Query { hello: String bye: String }`, builder.WithResolvers(builder.ResolverMap{
				"Query": {
					"hello": builder.FieldConfigRecord{
						builder.FieldConfigResolve: func(ctx context.Context, source interface{}, info *graphql.ResolveInfo) (interface{}, error) {
							return "world", nil
						},
					},
					"bye": builder.FieldConfigRecord{
						builder.FieldConfigResolve: graphql.FieldResolverFunc(
							func(ctx context.Context, source interface{}, info *graphql.ResolveInfo) (interface{}, error) {
								return "moon", nil
							}),
					},
				},
			}))

			fields := fieldsOf(schema, "Query")
			Expect(fields.Get("hello").Resolver()).ShouldNot(BeNil())
			Expect(fields.Get("hello").Resolver().Resolve(context.Background(), nil, nil)).Should(Equal("world"))
			Expect(fields.Get("bye").Resolver().Resolve(context.Background(), nil, nil)).Should(Equal("moon"))
		})

		It("overrides descriptions and deprecation reasons", func() {
			schema := buildSchema(`type Query { a: Int }`, builder.WithResolvers(builder.ResolverMap{
				"Query": {
					"a": builder.FieldConfigRecord{
						builder.FieldConfigDescription:       "An integer",
						builder.FieldConfigDeprecationReason: "Use b",
					},
				},
			}))

			a := fieldsOf(schema, "Query").Get("a")
			Expect(a.Description()).Should(Equal("An integer"))
			Expect(a.Deprecation()).Should(Equal(&graphql.Deprecation{Reason: "Use b"}))
		})

		It("rejects isDeprecated in a field config", func() {
			err := buildError(`type Query { a: Int }`, builder.WithResolvers(builder.ResolverMap{
				"Query": {"a": builder.FieldConfigRecord{"isDeprecated": true}},
			}))
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Query.a should provide "deprecationReason" instead of "isDeprecated".`),
				testutil.KindIs(graphql.ErrKindSchema),
				testutil.ErrIs(graphql.ErrInvalidFieldConfig),
			))
		})

		It("rejects a field config that is not a record", func() {
			err := buildError(`type Query { a: Int }`, builder.WithResolvers(builder.ResolverMap{
				"Query": {"a": "resolver"},
			}))
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageContainSubstring("Query.a field config must be an object but got: "),
				testutil.ErrIs(graphql.ErrInvalidFieldConfig),
			))
		})

		It("rejects a resolver that is not a function", func() {
			err := buildError(`type Query { a: Int }`, builder.WithResolvers(builder.ResolverMap{
				"Query": {"a": builder.FieldConfigRecord{builder.FieldConfigResolve: 42}},
			}))
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageContainSubstring("Query.a field resolver must be a function"),
				testutil.ErrIs(graphql.ErrInvalidFieldConfig),
			))
		})

		It("rejects unknown keys in a field config", func() {
			err := buildError(`type Query { a: Int }`, builder.WithResolvers(builder.ResolverMap{
				"Query": {"a": builder.FieldConfigRecord{"subscribe": nil}},
			}))
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Query.a field config has unknown key "subscribe".`),
				testutil.ErrIs(graphql.ErrInvalidFieldConfig),
			))
		})

		It("attaches type resolvers and isTypeOf predicates", func() {
			schema := buildSchema(`
				type Query { node: Node result: Result }
				interface Node { id: ID }
				type User implements Node { id: ID }
				union Result = User
			`, builder.WithResolvers(builder.ResolverMap{
				"Node": {
					builder.ResolveTypeKey: func(ctx context.Context, value interface{}, info *graphql.ResolveInfo) (*graphql.Object, error) {
						return nil, nil
					},
				},
				"Result": {
					builder.ResolveTypeKey: graphql.TypeResolverFunc(
						func(ctx context.Context, value interface{}, info *graphql.ResolveInfo) (*graphql.Object, error) {
							return nil, nil
						}),
				},
				"User": {
					builder.IsTypeOfKey: func(ctx context.Context, value interface{}, info *graphql.ResolveInfo) (bool, error) {
						return true, nil
					},
				},
			}))

			Expect(schema.Type("Node").(*graphql.Interface).TypeResolver()).ShouldNot(BeNil())
			Expect(schema.Type("Result").(*graphql.Union).TypeResolver()).ShouldNot(BeNil())
			isTypeOf := schema.Type("User").(*graphql.Object).IsTypeOf()
			Expect(isTypeOf).ShouldNot(BeNil())
			Expect(isTypeOf.IsTypeOf(context.Background(), nil, nil)).Should(BeTrue())
		})

		It("rejects a type resolver of the wrong type", func() {
			err := buildError(`
				type Query { node: Node }
				interface Node { id: ID }
			`, builder.WithResolvers(builder.ResolverMap{
				"Node": {builder.ResolveTypeKey: "User"},
			}))
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageContainSubstring("Node.__resolveType must be a type resolver"),
				testutil.ErrIs(graphql.ErrInvalidTypeConfig),
			))
		})

		It("warns about resolvers that match nothing", func() {
			logger := &recordingLogger{}
			buildSchema(`type Query { a: Int }`,
				builder.WithLogger(logger.Logger()),
				builder.WithResolvers(builder.ResolverMap{
					"Query": {"b": builder.FieldConfigRecord{}},
					"Nope":  {"c": builder.FieldConfigRecord{}},
				}))

			Expect(logger.Messages(log.LevelWarn)).Should(ConsistOf(
				"resolver for Query.b matches no field",
				"resolvers for Nope match no type in schema.graphql",
			))
		})

		Describe("enums", func() {
			var schema *graphql.Schema

			BeforeEach(func() {
				schema = buildSchema(`
					type Query { f(n: Number): Int }
					enum Number { ONE TWO }
				`, builder.WithResolvers(builder.ResolverMap{
					"Number": {"ONE": 1, "TWO": 2},
				}))
			})

			It("uses the internal values", func() {
				number := schema.Type("Number").(*graphql.Enum)
				Expect(number.Value("ONE").Value()).Should(Equal(1))
				Expect(number.Value("TWO").Value()).Should(Equal(2))
				Expect(number.Serialize(2)).Should(Equal("TWO"))
			})

			It("coerces literals to internal values", func() {
				number := schema.Type("Number")

				node, err := parser.ParseValue("ONE")
				Expect(err).ShouldNot(HaveOccurred())
				Expect(value.CoerceFromAST(node, number, nil)).Should(Equal(1))

				node, err = parser.ParseValue("THREE")
				Expect(err).ShouldNot(HaveOccurred())
				_, err = value.CoerceFromAST(node, number, nil)
				Expect(err).Should(testutil.MatchGraphQLError(
					testutil.MessageContainSubstring(`Value "THREE" does not exist in "Number" enum`),
					testutil.KindIs(graphql.ErrKindCoercion),
					testutil.ErrIs(graphql.ErrUnknownEnumValue),
				))
			})

			It("coerces runtime values to internal values", func() {
				number := schema.Type("Number")
				Expect(value.CoerceValue("TWO", number)).Should(Equal(2))

				_, err := value.CoerceValue("THREE", number)
				Expect(err).Should(MatchError(ContainSubstring("THREE")))
			})

			It("maps a nil internal value to nil", func() {
				schema := buildSchema(`
					type Query { f(n: Maybe): Int }
					enum Maybe { NOTHING JUST }
				`, builder.WithResolvers(builder.ResolverMap{
					"Maybe": {"NOTHING": nil},
				}))

				maybe := schema.Type("Maybe").(*graphql.Enum)
				Expect(maybe.Value("NOTHING").Value()).Should(BeNil())
				Expect(maybe.Value("JUST").Value()).Should(Equal("JUST"))
			})
		})

		Describe("scalars", func() {
			It("uses coercion functions from resolvers", func() {
				schema := buildSchema(`
					scalar Upper
					type Query { f(s: Upper): Upper }
				`, builder.WithResolvers(builder.ResolverMap{
					"Upper": {
						builder.SerializeKey: func(v interface{}) (interface{}, error) {
							return "serialized", nil
						},
						builder.ParseValueKey: func(v interface{}) (interface{}, error) {
							return "value", nil
						},
						builder.ParseLiteralKey: func(node *ast.Value) (interface{}, error) {
							return "literal", nil
						},
					},
				}))

				upper := schema.Type("Upper").(*graphql.Scalar)
				Expect(upper.Serialize("x")).Should(Equal("serialized"))
				Expect(value.CoerceValue("x", upper)).Should(Equal("value"))

				node, err := parser.ParseValue(`"x"`)
				Expect(err).ShouldNot(HaveOccurred())
				Expect(value.CoerceFromAST(node, upper, nil)).Should(Equal("literal"))
			})

			It("reads @specifiedBy", func() {
				schema := buildSchema(`
					scalar UUID @specifiedBy(url: "https://tools.ietf.org/html/rfc4122")
					type Query { id: UUID }
				`)

				uuid := schema.Type("UUID").(*graphql.Scalar)
				Expect(uuid.SpecifiedByURL()).Should(Equal("https://tools.ietf.org/html/rfc4122"))
			})

			It("rejects a scalar providing only one of the input coercion functions", func() {
				err := buildError(`
					scalar Date
					type Query { today: Date }
				`, builder.WithResolvers(builder.ResolverMap{
					"Date": {
						builder.ParseValueKey: func(v interface{}) (interface{}, error) {
							return v, nil
						},
					},
				}))
				Expect(err).Should(testutil.MatchGraphQLError(
					testutil.MessageEqual(`Date must provide both "parseValue" and "parseLiteral" functions.`),
					testutil.ErrIs(graphql.ErrInvalidScalarConfig),
				))
			})

			It("rejects unknown resolver keys of a scalar", func() {
				err := buildError(`
					scalar Date
					type Query { today: Date }
				`, builder.WithResolvers(builder.ResolverMap{
					"Date": {"parse": nil},
				}))
				Expect(err).Should(testutil.MatchGraphQLError(
					testutil.MessageEqual(`Scalar Date has unknown resolver key "parse".`),
					testutil.ErrIs(graphql.ErrInvalidScalarConfig),
				))
			})
		})
	})

	Describe("validation", func() {
		const sdl = `
			type Query { a: Int }
			interface Named { name: String }
			type Thing implements Named { id: ID }
		`

		It("leaves validation to ValidateSchema", func() {
			schema := buildSchema(sdl)
			Expect(schema.AssumeValid()).Should(BeFalse())
			Expect(graphql.AssertValidSchema(schema)).Should(testutil.MatchGraphQLError(
				testutil.MessageContainSubstring("Interface field Named.name expected but Thing does not provide it."),
				testutil.ErrIs(graphql.ErrInvalidSchema),
			))
		})

		It("marks the schema as trusted with AssumeValid", func() {
			schema := buildSchema(sdl, builder.AssumeValid())
			Expect(schema.AssumeValid()).Should(BeTrue())
			Expect(graphql.AssertValidSchema(schema)).Should(Succeed())
			Expect(graphql.ValidateSchema(schema)).ShouldNot(Succeed())
		})

		It("builds a schema without a query root", func() {
			schema := buildSchema(`type Foo { a: Int }`)
			Expect(schema.Query()).Should(BeNil())
			Expect(schema.Type("Foo")).ShouldNot(BeNil())
			Expect(graphql.ValidateSchema(schema)).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual("Query root type must be provided."),
			))
		})
	})

	Describe("type extensions in the document", func() {
		It("merges extensions into the types they extend", func() {
			schema := buildSchema(`
				type Query { a: Int }
				extend type Query { b: Int }
				enum Color { RED }
				extend enum Color { GREEN }
				input In { x: Int }
				extend input In { y: Int }
				interface Node { id: ID }
				type User { name: String }
				extend type User implements Node { id: ID }
				union Result = User
				type Post { title: String }
				extend union Result = Post
				scalar Date
				extend scalar Date @specifiedBy(url: "https://example.com/date")
			`)

			Expect(fieldsOf(schema, "Query").Keys()).Should(Equal([]string{"a", "b"}))
			Expect(schema.Query().ExtensionASTNodes()).Should(HaveLen(1))

			Expect(schema.Type("Color").(*graphql.Enum).Values().Keys()).Should(Equal([]string{"RED", "GREEN"}))
			Expect(inputFieldsOf(schema, "In").Keys()).Should(Equal([]string{"x", "y"}))

			user := schema.Type("User").(*graphql.Object)
			Expect(user.Implements(schema.Type("Node").(*graphql.Interface))).Should(BeTrue())
			Expect(fieldsOf(schema, "User").Keys()).Should(Equal([]string{"name", "id"}))

			members, err := schema.Type("Result").(*graphql.Union).PossibleTypes()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(members).Should(HaveLen(2))

			Expect(schema.Type("Date").(*graphql.Scalar).SpecifiedByURL()).Should(Equal("https://example.com/date"))
		})

		It("replaces fields of the same name", func() {
			schema := buildSchema(`
				type Query { a: Int }
				extend type Query { a: String }
			`)

			fields := fieldsOf(schema, "Query")
			Expect(fields.Keys()).Should(Equal([]string{"a"}))
			Expect(fields.Get("a").Type()).Should(BeIdenticalTo(graphql.String()))
		})

		It("applies schema extensions", func() {
			schema := buildSchema(`
				type Query { a: Int }
				type Mutation { b: Int }
				schema { query: Query }
				extend schema { mutation: Mutation }
			`)

			Expect(schema.Mutation()).Should(BeIdenticalTo(schema.Type("Mutation")))
			Expect(schema.ExtensionASTNodes()).Should(HaveLen(1))
		})

		It("rejects an extension of an undefined type", func() {
			err := buildError(`
				type Query { a: Int }
				extend type Nope { b: Int }
			`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Cannot extend type "Nope" because it is not defined.`),
				testutil.KindIs(graphql.ErrKindExtension),
				testutil.ErrIs(graphql.ErrUnknownExtensionTarget),
			))
		})

		It("rejects an extension of another kind", func() {
			err := buildError(`
				type Query { a: Int }
				extend interface Query { b: Int }
			`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual(`Cannot extend non-interface type "Query".`),
				testutil.KindIs(graphql.ErrKindExtension),
				testutil.ErrIs(graphql.ErrKindMismatch),
			))
		})

		It("rejects a schema extension redefining an operation", func() {
			err := buildError(`
				type Query { a: Int }
				extend schema { query: Query }
			`)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.MessageEqual("Type for query already defined in the schema. It cannot be redefined."),
				testutil.ErrIs(graphql.ErrDuplicateOperationType),
			))
		})
	})

	Describe("diagnostics", func() {
		It("logs and traces a build", func() {
			logger := &recordingLogger{}
			tracer := &recordingTracer{}

			buildSchema(`type Query { a: Int }`,
				builder.WithLogger(logger.Logger()),
				builder.WithTracer(tracer),
				builder.WithContext(context.Background()))

			Expect(logger.Messages(log.LevelDebug)).Should(ConsistOf(
				HavePrefix("built schema from schema.graphql: "),
			))
			Expect(tracer.spans).Should(Equal([]*span{
				{Operation: "build", Source: "schema.graphql", Finished: true},
			}))
		})

		It("logs and traces a failure", func() {
			logger := &recordingLogger{}
			tracer := &recordingTracer{}

			err := buildError(`type Query { a: Missing }`,
				builder.WithLogger(logger.Logger()),
				builder.WithTracer(tracer))

			Expect(logger.Messages(log.LevelDebug)).Should(ConsistOf(
				HavePrefix("failed to build schema from schema.graphql: "),
			))
			Expect(tracer.spans).Should(HaveLen(1))
			Expect(tracer.spans[0].Finished).Should(BeTrue())
			Expect(tracer.spans[0].Err).Should(BeIdenticalTo(err))
		})

		It("names an unnamed document", func() {
			tracer := &recordingTracer{}
			schema, err := builder.BuildSchema(nil, builder.WithTracer(tracer))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(schema.Query()).Should(BeNil())
			Expect(tracer.spans[0].Source).Should(Equal("<document>"))
		})
	})
})
