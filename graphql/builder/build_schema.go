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

package builder

import (
	"fmt"
	"strings"
	"time"

	"github.com/botobag/gqlcore/graphql"
	"github.com/botobag/gqlcore/graphql/parser"

	"github.com/vektah/gqlparser/v2/ast"
)

// BuildSchema builds a Schema from a parsed SDL document. Type extensions in the document are
// applied to the types it defines. The schema is not validated and may lack a query root; see
// graphql.ValidateSchema.
func BuildSchema(doc *ast.SchemaDocument, opts ...Option) (*graphql.Schema, error) {
	options := newOptions(opts)
	name := sourceNameOf(doc)

	_, finish := options.Tracer.TraceBuild(options.Context, name)
	start := time.Now()

	schema, err := newSchemaBuilder(doc, options).build()
	finish(err)
	if err != nil {
		options.Logger.Debugf("failed to build schema from %s: %s", name, err)
		return nil, err
	}

	options.Logger.Debugf("built schema from %s: %d types, %d directives in %s",
		name, schema.TypeMap().Len(), len(schema.Directives()), time.Since(start))
	return schema, nil
}

// BuildSchemaFromSource parses the SDL in body and builds a Schema from it.
func BuildSchemaFromSource(name string, body string, opts ...Option) (*graphql.Schema, error) {
	doc, err := parser.ParseSchema(name, body)
	if err != nil {
		return nil, err
	}
	return BuildSchema(doc, opts...)
}

// MustBuildSchemaFromSource is like BuildSchemaFromSource but panics on error.
func MustBuildSchemaFromSource(name string, body string, opts ...Option) *graphql.Schema {
	schema, err := BuildSchemaFromSource(name, body, opts...)
	if err != nil {
		panic(err)
	}
	return schema
}

// sourceNameOf returns the name of the source of the document for diagnostics.
func sourceNameOf(doc *ast.SchemaDocument) string {
	if doc != nil && doc.Position != nil && doc.Position.Src != nil && len(doc.Position.Src.Name) > 0 {
		return doc.Position.Src.Name
	}
	return "<document>"
}

// builtinType resolves the built-in scalars and the introspection types.
func builtinType(name string) (graphql.NamedType, error) {
	if scalar := graphql.SpecifiedScalarType(name); scalar != nil {
		return scalar, nil
	}
	for _, t := range graphql.IntrospectionTypes.All() {
		if t.Name() == name {
			return t, nil
		}
	}
	return nil, nil
}

// operationTypes maps root operations to type names.
type operationTypes map[ast.Operation]string

var rootOperations = []ast.Operation{ast.Query, ast.Mutation, ast.Subscription}

type schemaBuilder struct {
	doc        *ast.SchemaDocument
	options    *Options
	typeDefs   map[string]*ast.Definition
	extensions map[string][]*ast.Definition
	schemaDef  *ast.SchemaDefinition
	operations operationTypes
}

func newSchemaBuilder(doc *ast.SchemaDocument, options *Options) *schemaBuilder {
	if doc == nil {
		doc = &ast.SchemaDocument{}
	}
	return &schemaBuilder{
		doc:        doc,
		options:    options,
		typeDefs:   make(map[string]*ast.Definition, len(doc.Definitions)),
		extensions: map[string][]*ast.Definition{},
		operations: operationTypes{},
	}
}

func (sb *schemaBuilder) build() (*graphql.Schema, error) {
	doc := sb.doc

	if err := sb.collectDefinitions(); err != nil {
		return nil, err
	}

	if err := sb.collectOperationTypes(); err != nil {
		return nil, err
	}

	b := NewDefinitionBuilder(sb.typeDefs, sb.options, builtinType)
	b.extensions = sb.extensions

	types := make([]graphql.NamedType, 0, len(doc.Definitions))
	for _, def := range doc.Definitions {
		t, err := b.BuildType(def)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}

	directives, err := sb.buildDirectives(b)
	if err != nil {
		return nil, err
	}

	roots := make(map[ast.Operation]*graphql.Object, len(sb.operations))
	for _, operation := range rootOperations {
		name, exists := sb.operations[operation]
		if !exists {
			continue
		}
		root, err := rootTypeOf(b, operation, name)
		if err != nil {
			return nil, err
		}
		roots[operation] = root
	}

	sb.warnUnusedResolvers()

	return graphql.NewSchema(&graphql.SchemaConfig{
		Query:                      roots[ast.Query],
		Mutation:                   roots[ast.Mutation],
		Subscription:               roots[ast.Subscription],
		Types:                      types,
		Directives:                 directives,
		ExcludeSpecifiedDirectives: true,
		AssumeValid:                sb.options.AssumeValid,
		ASTNode:                    sb.schemaDef,
		ExtensionASTNodes:          doc.SchemaExtension,
	})
}

// warnUnusedResolvers logs resolvers given for fields that the document does not define.
func (sb *schemaBuilder) warnUnusedResolvers() {
	logger := sb.options.Logger
	for typeName, resolvers := range sb.options.Resolvers {
		def, exists := sb.typeDefs[typeName]
		if !exists {
			logger.Warnf("resolvers for %s match no type in %s", typeName, sourceNameOf(sb.doc))
			continue
		}
		if def.Kind != ast.Object && def.Kind != ast.Interface {
			continue
		}
		fields := mergeFieldDefs(def.Fields, sb.extensions[typeName])
		for name := range resolvers {
			if !strings.HasPrefix(name, "__") && fields.ForName(name) == nil {
				logger.Warnf("resolver for %s.%s matches no field", typeName, name)
			}
		}
	}
}

// collectDefinitions indexes type definitions and type extensions by name.
func (sb *schemaBuilder) collectDefinitions() error {
	doc := sb.doc

	if len(doc.Schema) > 1 {
		return graphql.NewSchemaError(graphql.ErrDuplicateSchemaDefinition,
			"Must provide only one schema definition.", doc.Schema[1].Position)
	} else if len(doc.Schema) == 1 {
		sb.schemaDef = doc.Schema[0]
	}

	for _, def := range doc.Definitions {
		if _, exists := sb.typeDefs[def.Name]; exists {
			return graphql.NewSchemaError(graphql.ErrDuplicateType,
				fmt.Sprintf(`There can be only one type named "%s".`, def.Name), def.Position)
		}
		sb.typeDefs[def.Name] = def
	}

	for _, ext := range doc.Extensions {
		def, exists := sb.typeDefs[ext.Name]
		if !exists {
			return graphql.NewExtensionError(graphql.ErrUnknownExtensionTarget,
				fmt.Sprintf(`Cannot extend type "%s" because it is not defined.`, ext.Name), ext.Position)
		}
		if err := checkExtensionKind(ext, def.Kind); err != nil {
			return err
		}
		sb.extensions[ext.Name] = append(sb.extensions[ext.Name], ext)
	}

	return nil
}

// collectOperationTypes determines the names of root operation types.
func (sb *schemaBuilder) collectOperationTypes() error {
	if sb.schemaDef != nil {
		for _, operationType := range sb.schemaDef.OperationTypes {
			if _, exists := sb.operations[operationType.Operation]; exists {
				return graphql.NewSchemaError(graphql.ErrDuplicateOperationType,
					fmt.Sprintf("Must provide only one %s type in schema.", operationType.Operation),
					operationType.Position)
			}
			if err := sb.checkOperationType(operationType); err != nil {
				return err
			}
			sb.operations[operationType.Operation] = operationType.Type
		}
	} else {
		for _, operation := range rootOperations {
			name := conventionalRootTypeName(operation)
			if _, exists := sb.typeDefs[name]; exists {
				sb.operations[operation] = name
			}
		}
	}

	for _, schemaExt := range sb.doc.SchemaExtension {
		for _, operationType := range schemaExt.OperationTypes {
			if _, exists := sb.operations[operationType.Operation]; exists {
				return graphql.NewExtensionError(graphql.ErrDuplicateOperationType,
					fmt.Sprintf("Type for %s already defined in the schema. It cannot be redefined.",
						operationType.Operation),
					operationType.Position)
			}
			if err := sb.checkOperationType(operationType); err != nil {
				return err
			}
			sb.operations[operationType.Operation] = operationType.Type
		}
	}

	return nil
}

func (sb *schemaBuilder) checkOperationType(operationType *ast.OperationTypeDefinition) error {
	if _, exists := sb.typeDefs[operationType.Type]; !exists {
		return graphql.NewSchemaError(graphql.ErrMissingOperationType,
			fmt.Sprintf(`Specified %s type "%s" not found in document.`,
				operationType.Operation, operationType.Type),
			operationType.Position)
	}
	return nil
}

// buildDirectives builds the directives defined in the document followed by the specified
// directives that the document does not redefine.
func (sb *schemaBuilder) buildDirectives(b *DefinitionBuilder) (graphql.DirectiveList, error) {
	directives := make(graphql.DirectiveList, 0, len(sb.doc.Directives)+len(graphql.SpecifiedDirectives()))
	for _, def := range sb.doc.Directives {
		if directives.Lookup(def.Name) != nil {
			return nil, graphql.NewSchemaError(graphql.ErrDuplicateDirective,
				fmt.Sprintf(`There can be only one directive named "@%s".`, def.Name), def.Position)
		}
		directive, err := b.BuildDirective(def)
		if err != nil {
			return nil, err
		}
		directives = append(directives, directive)
	}

	for _, directive := range graphql.SpecifiedDirectives() {
		if directives.Lookup(directive.Name()) == nil {
			directives = append(directives, directive)
		}
	}

	return directives, nil
}

func conventionalRootTypeName(operation ast.Operation) string {
	switch operation {
	case ast.Query:
		return "Query"
	case ast.Mutation:
		return "Mutation"
	case ast.Subscription:
		return "Subscription"
	}
	return ""
}

// rootTypeOf resolves the root type for the operation through the builder.
func rootTypeOf(b *DefinitionBuilder, operation ast.Operation, name string) (*graphql.Object, error) {
	t, err := b.BuildNamedType(name)
	if err != nil {
		return nil, err
	}
	object, ok := t.(*graphql.Object)
	if !ok {
		var pos *ast.Position
		if node := t.ASTNode(); node != nil {
			pos = node.Position
		}
		return nil, graphql.NewSchemaError(graphql.ErrInvalidSchema,
			fmt.Sprintf("%s root type must be Object type, it cannot be %s.",
				conventionalRootTypeName(operation), name), pos)
	}
	return object, nil
}

//===----------------------------------------------------------------------------------------====//
// Extension kinds
//===----------------------------------------------------------------------------------------====//

func kindLabel(kind ast.DefinitionKind) string {
	switch kind {
	case ast.Object:
		return "object"
	case ast.Interface:
		return "interface"
	case ast.Union:
		return "union"
	case ast.Enum:
		return "enum"
	case ast.InputObject:
		return "input object"
	case ast.Scalar:
		return "scalar"
	}
	return string(kind)
}

// kindOf returns the definition kind corresponding to a named type.
func kindOf(t graphql.NamedType) ast.DefinitionKind {
	return ast.DefinitionKind(graphql.TypeKindOf(t))
}

// checkExtensionKind fails if ext cannot extend a type of the target kind.
func checkExtensionKind(ext *ast.Definition, target ast.DefinitionKind) error {
	if ext.Kind != target {
		return graphql.NewExtensionError(graphql.ErrKindMismatch,
			fmt.Sprintf(`Cannot extend non-%s type "%s".`, kindLabel(ext.Kind), ext.Name), ext.Position)
	}
	return nil
}
