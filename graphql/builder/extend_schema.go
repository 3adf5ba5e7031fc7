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
	"time"

	"github.com/botobag/gqlcore/graphql"
	"github.com/botobag/gqlcore/graphql/parser"

	"github.com/vektah/gqlparser/v2/ast"
)

// ExtendSchema returns a new Schema with the type definitions, type extensions, directive
// definitions and schema extensions in doc applied to schema. schema is never modified. When doc
// contributes nothing, schema itself is returned.
//
// Types of schema that are touched by the new schema are copied: Object, Interface, Union and
// InputObject types are rebuilt to refer to the copies, and types named by an extension get the
// extension's members. A member of an extension replaces a member of the same name.
func ExtendSchema(schema *graphql.Schema, doc *ast.SchemaDocument, opts ...Option) (*graphql.Schema, error) {
	options := newOptions(opts)
	name := sourceNameOf(doc)

	_, finish := options.Tracer.TraceExtend(options.Context, name)
	start := time.Now()

	extended, err := newSchemaExtender(schema, doc, options).extend()
	finish(err)
	if err != nil {
		options.Logger.Debugf("failed to extend schema with %s: %s", name, err)
		return nil, err
	}

	if extended == schema {
		options.Logger.Debugf("%s adds nothing to the schema", name)
	} else {
		options.Logger.Debugf("extended schema with %s: %d types, %d directives in %s",
			name, extended.TypeMap().Len(), len(extended.Directives()), time.Since(start))
	}
	return extended, nil
}

// ExtendSchemaFromSource parses the SDL in body and extends schema with it.
func ExtendSchemaFromSource(schema *graphql.Schema, name string, body string, opts ...Option) (*graphql.Schema, error) {
	doc, err := parser.ParseSchema(name, body)
	if err != nil {
		return nil, err
	}
	return ExtendSchema(schema, doc, opts...)
}

type schemaExtender struct {
	schema  *graphql.Schema
	doc     *ast.SchemaDocument
	options *Options

	// typeDefs contains types defined by doc and newTypeExtensions the extensions to them.
	typeDefs          map[string]*ast.Definition
	newTypeExtensions map[string][]*ast.Definition

	// typeExtensions contains extensions to types of schema.
	typeExtensions map[string][]*ast.Definition

	operations operationTypes
	builder    *DefinitionBuilder
}

func newSchemaExtender(schema *graphql.Schema, doc *ast.SchemaDocument, options *Options) *schemaExtender {
	if doc == nil {
		doc = &ast.SchemaDocument{}
	}
	return &schemaExtender{
		schema:            schema,
		doc:               doc,
		options:           options,
		typeDefs:          map[string]*ast.Definition{},
		newTypeExtensions: map[string][]*ast.Definition{},
		typeExtensions:    map[string][]*ast.Definition{},
		operations:        operationTypes{},
	}
}

func (e *schemaExtender) isEmpty() bool {
	doc := e.doc
	return len(doc.Definitions) == 0 &&
		len(doc.Extensions) == 0 &&
		len(doc.Directives) == 0 &&
		len(doc.SchemaExtension) == 0
}

func (e *schemaExtender) extend() (*graphql.Schema, error) {
	if err := e.collect(); err != nil {
		return nil, err
	}

	if e.isEmpty() {
		return e.schema, nil
	}

	b := NewDefinitionBuilder(e.typeDefs, e.options, e.extendNamedType)
	b.extensions = e.newTypeExtensions
	e.builder = b

	// Copy types of the base schema.
	var types []graphql.NamedType
	for _, t := range e.schema.TypeMap().Types() {
		if graphql.IsIntrospectionType(t) {
			continue
		}
		extended, err := b.BuildNamedType(t.Name())
		if err != nil {
			return nil, err
		}
		types = append(types, extended)
	}

	// Build new types.
	for _, def := range e.doc.Definitions {
		t, err := b.BuildType(def)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}

	directives, err := e.extendDirectives()
	if err != nil {
		return nil, err
	}

	roots := map[ast.Operation]*graphql.Object{}
	for _, operation := range rootOperations {
		name, exists := e.operations[operation]
		if !exists {
			base := e.schema.RootType(operation)
			if base == nil {
				continue
			}
			name = base.Name()
		}
		root, err := rootTypeOf(b, operation, name)
		if err != nil {
			return nil, err
		}
		roots[operation] = root
	}

	return graphql.NewSchema(&graphql.SchemaConfig{
		Query:                      roots[ast.Query],
		Mutation:                   roots[ast.Mutation],
		Subscription:               roots[ast.Subscription],
		Types:                      types,
		Directives:                 directives,
		ExcludeSpecifiedDirectives: true,
		AssumeValid:                e.options.AssumeValid,
		ASTNode:                    e.schema.ASTNode(),
		ExtensionASTNodes: append(
			append([]*ast.SchemaDefinition(nil), e.schema.ExtensionASTNodes()...),
			e.doc.SchemaExtension...),
	})
}

// collect classifies the definitions in the document.
func (e *schemaExtender) collect() error {
	doc, schema := e.doc, e.schema

	if len(doc.Schema) > 0 {
		return graphql.NewExtensionError(graphql.ErrDuplicateSchemaDefinition,
			"Cannot define a new schema within a schema extension.", doc.Schema[0].Position)
	}

	for _, def := range doc.Definitions {
		if schema.Type(def.Name) != nil {
			return graphql.NewExtensionError(graphql.ErrConflictingType,
				fmt.Sprintf(`Type "%s" already exists in the schema. It cannot also be defined in this `+
					`type definition.`, def.Name), def.Position)
		}
		if _, exists := e.typeDefs[def.Name]; exists {
			return graphql.NewSchemaError(graphql.ErrDuplicateType,
				fmt.Sprintf(`There can be only one type named "%s".`, def.Name), def.Position)
		}
		e.typeDefs[def.Name] = def
	}

	for _, ext := range doc.Extensions {
		if def, exists := e.typeDefs[ext.Name]; exists {
			if err := checkExtensionKind(ext, def.Kind); err != nil {
				return err
			}
			e.newTypeExtensions[ext.Name] = append(e.newTypeExtensions[ext.Name], ext)
			continue
		}

		target := schema.Type(ext.Name)
		if target == nil {
			return graphql.NewExtensionError(graphql.ErrUnknownExtensionTarget,
				fmt.Sprintf(`Cannot extend type "%s" because it does not exist in the existing schema.`,
					ext.Name), ext.Position)
		}
		if graphql.IsIntrospectionType(target) {
			return graphql.NewExtensionError(graphql.ErrUnknownExtensionTarget,
				fmt.Sprintf(`Cannot extend introspection type "%s".`, ext.Name), ext.Position)
		}
		if err := checkExtensionKind(ext, kindOf(target)); err != nil {
			return err
		}
		e.typeExtensions[ext.Name] = append(e.typeExtensions[ext.Name], ext)
	}

	seenDirectives := map[string]bool{}
	for _, def := range doc.Directives {
		if schema.Directive(def.Name) != nil || seenDirectives[def.Name] {
			return graphql.NewExtensionError(graphql.ErrDuplicateDirective,
				fmt.Sprintf(`Directive "@%s" already exists in the schema. It cannot be redefined.`, def.Name),
				def.Position)
		}
		seenDirectives[def.Name] = true
	}

	for _, schemaExt := range doc.SchemaExtension {
		for _, operationType := range schemaExt.OperationTypes {
			operation := operationType.Operation
			if _, exists := e.operations[operation]; exists || schema.RootType(operation) != nil {
				return graphql.NewExtensionError(graphql.ErrDuplicateOperationType,
					fmt.Sprintf("Type for %s already defined in the schema. It cannot be redefined.", operation),
					operationType.Position)
			}
			if _, exists := e.typeDefs[operationType.Type]; !exists && schema.Type(operationType.Type) == nil {
				return graphql.NewExtensionError(graphql.ErrMissingOperationType,
					fmt.Sprintf(`Specified %s type "%s" not found in document or schema.`,
						operation, operationType.Type),
					operationType.Position)
			}
			e.operations[operation] = operationType.Type
		}
	}

	return nil
}

// extendNamedType returns the counterpart of a type of the base schema. It is called at most once
// per name since the builder caches the result.
func (e *schemaExtender) extendNamedType(name string) (graphql.NamedType, error) {
	t := e.schema.Type(name)
	if t == nil {
		return nil, nil
	}

	if graphql.IsIntrospectionType(t) {
		return t, nil
	}

	switch t := t.(type) {
	case *graphql.Scalar:
		return e.extendScalar(t)
	case *graphql.Object:
		return e.extendObject(t)
	case *graphql.Interface:
		return e.extendInterface(t)
	case *graphql.Union:
		return e.extendUnion(t)
	case *graphql.Enum:
		return e.extendEnum(t)
	case *graphql.InputObject:
		return e.extendInputObject(t)
	}

	return nil, graphql.NewSchemaError(graphql.ErrUnsupportedKind,
		fmt.Sprintf(`Cannot extend type "%s" of unsupported kind %T.`, name, t))
}

// extensionNodes returns the extension nodes of the base type followed by the new ones.
func extensionNodes(base []*ast.Definition, exts []*ast.Definition) []*ast.Definition {
	if len(exts) == 0 {
		return base
	}
	return append(append([]*ast.Definition(nil), base...), exts...)
}

// replaceType returns the type that refers to the counterparts of named types in t.
func (e *schemaExtender) replaceType(t graphql.Type) (graphql.Type, error) {
	switch t := t.(type) {
	case *graphql.List:
		elementType, err := e.replaceType(t.ElementType())
		if err != nil {
			return nil, err
		}
		listType, err := graphql.NewListOf(elementType)
		if err != nil {
			return nil, err
		}
		return listType, nil

	case *graphql.NonNull:
		innerType, err := e.replaceType(t.InnerType())
		if err != nil {
			return nil, err
		}
		nonNullType, err := graphql.NewNonNullOf(innerType)
		if err != nil {
			return nil, err
		}
		return nonNullType, nil

	case graphql.NamedType:
		return e.builder.BuildNamedType(t.Name())
	}

	return t, nil
}

func (e *schemaExtender) replaceArgs(args []*graphql.ArgumentConfig) error {
	for _, arg := range args {
		argType, err := e.replaceType(arg.Type)
		if err != nil {
			return err
		}
		arg.Type = argType
	}
	return nil
}

func (e *schemaExtender) extendScalar(scalar *graphql.Scalar) (graphql.NamedType, error) {
	exts := e.typeExtensions[scalar.Name()]
	if len(exts) == 0 {
		return scalar, nil
	}
	if graphql.SpecifiedScalarType(scalar.Name()) == scalar {
		e.options.Logger.Warnf("extensions to built-in scalar %s are ignored", scalar.Name())
		return scalar, nil
	}

	config := &graphql.ScalarConfig{
		Name:              scalar.Name(),
		Description:       scalar.Description(),
		SpecifiedByURL:    scalar.SpecifiedByURL(),
		Serialize:         scalar.Serialize,
		ParseValue:        scalar.ParseValue,
		ParseLiteral:      scalar.ParseLiteral,
		ASTNode:           scalar.ASTNode(),
		ExtensionASTNodes: extensionNodes(scalar.ExtensionASTNodes(), exts),
	}
	for _, ext := range exts {
		url, err := specifiedByURLOf(ext, ext.Directives)
		if err != nil {
			return nil, err
		}
		if len(url) > 0 {
			config.SpecifiedByURL = url
		}
	}

	extended, err := graphql.NewScalar(config)
	if err != nil {
		return nil, err
	}
	return extended, nil
}

func (e *schemaExtender) extendObject(object *graphql.Object) (graphql.NamedType, error) {
	name := object.Name()
	exts := e.typeExtensions[name]

	extended, err := graphql.NewObject(&graphql.ObjectConfig{
		Name:        name,
		Description: object.Description(),
		Interfaces: func() ([]*graphql.Interface, error) {
			interfaces, err := object.Interfaces()
			if err != nil {
				return nil, err
			}
			return e.extendInterfaceList(interfaces, exts)
		},
		Fields: func() ([]*graphql.FieldConfig, error) {
			fields, err := object.Fields()
			if err != nil {
				return nil, err
			}
			return e.extendFields(name, fields, exts)
		},
		IsTypeOf:          object.IsTypeOf(),
		ASTNode:           object.ASTNode(),
		ExtensionASTNodes: extensionNodes(object.ExtensionASTNodes(), exts),
	})
	if err != nil {
		return nil, err
	}
	return extended, nil
}

func (e *schemaExtender) extendInterface(iface *graphql.Interface) (graphql.NamedType, error) {
	name := iface.Name()
	exts := e.typeExtensions[name]

	extended, err := graphql.NewInterface(&graphql.InterfaceConfig{
		Name:        name,
		Description: iface.Description(),
		Interfaces: func() ([]*graphql.Interface, error) {
			interfaces, err := iface.Interfaces()
			if err != nil {
				return nil, err
			}
			return e.extendInterfaceList(interfaces, exts)
		},
		Fields: func() ([]*graphql.FieldConfig, error) {
			fields, err := iface.Fields()
			if err != nil {
				return nil, err
			}
			return e.extendFields(name, fields, exts)
		},
		TypeResolver:      iface.TypeResolver(),
		ASTNode:           iface.ASTNode(),
		ExtensionASTNodes: extensionNodes(iface.ExtensionASTNodes(), exts),
	})
	if err != nil {
		return nil, err
	}
	return extended, nil
}

func (e *schemaExtender) extendUnion(union *graphql.Union) (graphql.NamedType, error) {
	exts := e.typeExtensions[union.Name()]

	extended, err := graphql.NewUnion(&graphql.UnionConfig{
		Name:        union.Name(),
		Description: union.Description(),
		PossibleTypes: func() ([]*graphql.Object, error) {
			possibleTypes, err := union.PossibleTypes()
			if err != nil {
				return nil, err
			}

			result := make([]*graphql.Object, 0, len(possibleTypes))
			names := make([]string, 0, len(possibleTypes))
			for _, possibleType := range possibleTypes {
				t, err := e.builder.BuildNamedType(possibleType.Name())
				if err != nil {
					return nil, err
				}
				result = append(result, t.(*graphql.Object))
				names = append(names, possibleType.Name())
			}

			for _, ext := range exts {
				members, err := e.builder.buildPossibleTypes(ext, newNames(names, ext.Types))
				if err != nil {
					return nil, err
				}
				for _, member := range members {
					result = append(result, member)
					names = append(names, member.Name())
				}
			}

			return result, nil
		},
		TypeResolver:      union.TypeResolver(),
		ASTNode:           union.ASTNode(),
		ExtensionASTNodes: extensionNodes(union.ExtensionASTNodes(), exts),
	})
	if err != nil {
		return nil, err
	}
	return extended, nil
}

func (e *schemaExtender) extendEnum(enum *graphql.Enum) (graphql.NamedType, error) {
	name := enum.Name()
	exts := e.typeExtensions[name]
	if len(exts) == 0 {
		return enum, nil
	}

	values := make([]*graphql.EnumValueConfig, 0, enum.Values().Len())
	for _, v := range enum.Values().Values() {
		values = append(values, v.Config())
	}

	extValues, err := e.builder.buildEnumValues(name, mergeEnumValueDefs(nil, exts))
	if err != nil {
		return nil, err
	}
	for _, extValue := range extValues {
		replaced := false
		for i, v := range values {
			if v.Name == extValue.Name {
				values[i] = extValue
				replaced = true
				break
			}
		}
		if !replaced {
			values = append(values, extValue)
		}
	}

	extended, err := graphql.NewEnum(&graphql.EnumConfig{
		Name:              name,
		Description:       enum.Description(),
		Values:            values,
		ASTNode:           enum.ASTNode(),
		ExtensionASTNodes: extensionNodes(enum.ExtensionASTNodes(), exts),
	})
	if err != nil {
		return nil, err
	}
	return extended, nil
}

func (e *schemaExtender) extendInputObject(inputObject *graphql.InputObject) (graphql.NamedType, error) {
	name := inputObject.Name()
	exts := e.typeExtensions[name]

	extended, err := graphql.NewInputObject(&graphql.InputObjectConfig{
		Name:        name,
		Description: inputObject.Description(),
		Fields: func() ([]*graphql.InputFieldConfig, error) {
			fields, err := inputObject.Fields()
			if err != nil {
				return nil, err
			}

			configs := make([]*graphql.InputFieldConfig, 0, fields.Len())
			for _, field := range fields.Values() {
				config := field.Config()
				fieldType, err := e.replaceType(config.Type)
				if err != nil {
					return nil, err
				}
				config.Type = fieldType
				configs = append(configs, config)
			}

			if len(exts) == 0 {
				return configs, nil
			}

			b := e.builder
			b.defining[name] = true
			defer delete(b.defining, name)

			extConfigs, err := b.buildInputFields(name, mergeFieldDefs(nil, exts))
			if err != nil {
				return nil, err
			}
			for _, extConfig := range extConfigs {
				if i := indexOfInputField(configs, extConfig.Name); i >= 0 {
					configs[i] = extConfig
				} else {
					configs = append(configs, extConfig)
				}
			}
			return configs, nil
		},
		ASTNode:           inputObject.ASTNode(),
		ExtensionASTNodes: extensionNodes(inputObject.ExtensionASTNodes(), exts),
	})
	if err != nil {
		return nil, err
	}
	return extended, nil
}

// extendInterfaceList returns the counterparts of interfaces followed by the interfaces added by
// the extensions.
func (e *schemaExtender) extendInterfaceList(interfaces []*graphql.Interface, exts []*ast.Definition) ([]*graphql.Interface, error) {
	result := make([]*graphql.Interface, 0, len(interfaces))
	names := make([]string, 0, len(interfaces))
	for _, iface := range interfaces {
		t, err := e.builder.BuildNamedType(iface.Name())
		if err != nil {
			return nil, err
		}
		result = append(result, t.(*graphql.Interface))
		names = append(names, iface.Name())
	}

	for _, ext := range exts {
		added, err := e.builder.buildInterfaces(ext, newNames(names, ext.Interfaces))
		if err != nil {
			return nil, err
		}
		for _, iface := range added {
			result = append(result, iface)
			names = append(names, iface.Name())
		}
	}

	return result, nil
}

// extendFields copies the fields of a base type and merges fields of the extensions into them.
func (e *schemaExtender) extendFields(typeName string, fields graphql.FieldMap, exts []*ast.Definition) ([]*graphql.FieldConfig, error) {
	resolvers := e.options.typeResolvers(typeName)

	configs := make([]*graphql.FieldConfig, 0, fields.Len())
	for _, field := range fields.Values() {
		config := field.Config()
		fieldType, err := e.replaceType(config.Type)
		if err != nil {
			return nil, err
		}
		config.Type = fieldType
		if err := e.replaceArgs(config.Args); err != nil {
			return nil, err
		}

		if record, exists := resolvers[config.Name]; exists {
			if err := applyFieldConfig(config, typeName, record); err != nil {
				return nil, err
			}
		}

		configs = append(configs, config)
	}

	if len(exts) == 0 {
		return configs, nil
	}

	extConfigs, err := e.builder.buildFields(typeName, mergeFieldDefs(nil, exts))
	if err != nil {
		return nil, err
	}
	for _, extConfig := range extConfigs {
		if i := indexOfFieldConfig(configs, extConfig.Name); i >= 0 {
			configs[i] = extConfig
		} else {
			configs = append(configs, extConfig)
		}
	}

	return configs, nil
}

// extendDirectives returns the counterparts of directives of the base schema followed by the new
// directives.
func (e *schemaExtender) extendDirectives() (graphql.DirectiveList, error) {
	baseDirectives := e.schema.Directives()
	directives := make(graphql.DirectiveList, 0, len(baseDirectives)+len(e.doc.Directives))

	for _, directive := range baseDirectives {
		if graphql.IsSpecifiedDirective(directive) {
			directives = append(directives, directive)
			continue
		}

		args := make([]*graphql.ArgumentConfig, len(directive.Args()))
		for i, arg := range directive.Args() {
			args[i] = arg.Config()
		}
		if err := e.replaceArgs(args); err != nil {
			return nil, err
		}

		extended, err := graphql.NewDirective(&graphql.DirectiveConfig{
			Name:         directive.Name(),
			Description:  directive.Description(),
			Locations:    directive.Locations(),
			Args:         args,
			IsRepeatable: directive.IsRepeatable(),
			ASTNode:      directive.ASTNode(),
		})
		if err != nil {
			return nil, err
		}
		directives = append(directives, extended)
	}

	for _, def := range e.doc.Directives {
		directive, err := e.builder.BuildDirective(def)
		if err != nil {
			return nil, err
		}
		directives = append(directives, directive)
	}

	return directives, nil
}

// newNames returns names in candidates that are not in existing.
func newNames(existing []string, candidates []string) []string {
	var result []string
	for _, candidate := range candidates {
		found := false
		for _, name := range existing {
			if name == candidate {
				found = true
				break
			}
		}
		if !found {
			result = append(result, candidate)
		}
	}
	return result
}

func indexOfFieldConfig(configs []*graphql.FieldConfig, name string) int {
	for i, config := range configs {
		if config.Name == name {
			return i
		}
	}
	return -1
}

func indexOfInputField(configs []*graphql.InputFieldConfig, name string) int {
	for i, config := range configs {
		if config.Name == name {
			return i
		}
	}
	return -1
}
