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

	"github.com/botobag/gqlcore/graphql"
	"github.com/botobag/gqlcore/graphql/value"

	"github.com/vektah/gqlparser/v2/ast"
)

// UnknownTypeResolver supplies a named type that has no definition in the builder's type
// definition map. It returns (nil, nil) when it cannot resolve the name either.
type UnknownTypeResolver func(name string) (graphql.NamedType, error)

// namedTypeBuilder builds one kind of type definition.
type namedTypeBuilder func(def *ast.Definition) (graphql.NamedType, error)

// DefinitionBuilder converts type definition nodes into named types. Every reference to a name
// resolves to the same instance through the builder's TypeCache. Members of composite types are
// built lazily so that definitions may refer to each other in any order.
//
// A DefinitionBuilder is owned by one build pass and must not be used from multiple goroutines.
type DefinitionBuilder struct {
	typeDefs       map[string]*ast.Definition
	extensions     map[string][]*ast.Definition
	options        *Options
	cache          TypeCache
	resolveUnknown UnknownTypeResolver
	builders       map[ast.DefinitionKind]namedTypeBuilder

	// defining contains names of input objects whose fields are being computed.
	defining map[string]bool
}

// NewDefinitionBuilder creates a builder over the type definition map. resolveUnknown is consulted
// for names without a definition; it may be nil.
func NewDefinitionBuilder(
	typeDefs map[string]*ast.Definition,
	options *Options,
	resolveUnknown UnknownTypeResolver) *DefinitionBuilder {

	if options == nil {
		options = &Options{}
	}
	options = options.withDefaults()

	cache := options.TypeCache
	if cache == nil {
		cache = NewTypeCache()
	}

	b := &DefinitionBuilder{
		typeDefs:       typeDefs,
		extensions:     map[string][]*ast.Definition{},
		options:        options,
		cache:          cache,
		resolveUnknown: resolveUnknown,
		defining:       map[string]bool{},
	}

	b.builders = map[ast.DefinitionKind]namedTypeBuilder{
		ast.Object:      b.buildObject,
		ast.Interface:   b.buildInterface,
		ast.Union:       b.buildUnion,
		ast.Enum:        b.buildEnum,
		ast.Scalar:      b.buildScalar,
		ast.InputObject: b.buildInputObject,
	}

	return b
}

// Cache returns the cache that memoizes built types.
func (b *DefinitionBuilder) Cache() TypeCache {
	return b.cache
}

// BuildType returns the named type for the definition, building and caching it on first request.
func (b *DefinitionBuilder) BuildType(def *ast.Definition) (graphql.NamedType, error) {
	if b.cache.Has(def.Name) {
		return b.cache.Get(def.Name), nil
	}

	build, exists := b.builders[def.Kind]
	if !exists {
		return nil, graphql.NewSchemaError(graphql.ErrUnsupportedKind,
			fmt.Sprintf(`Type "%s" has unsupported definition kind "%s".`, def.Name, def.Kind), def.Position)
	}

	t, err := build(def)
	if err != nil {
		return nil, err
	}

	// Members of t are computed later so the entry is visible to any definition referring back to
	// it.
	b.cache.Set(def.Name, t)

	return t, nil
}

// BuildNamedType returns the named type referred to by name.
func (b *DefinitionBuilder) BuildNamedType(name string) (graphql.NamedType, error) {
	return b.buildNamedType(name, nil)
}

func (b *DefinitionBuilder) buildNamedType(name string, pos *ast.Position) (graphql.NamedType, error) {
	if b.cache.Has(name) {
		return b.cache.Get(name), nil
	}

	if def, exists := b.typeDefs[name]; exists {
		return b.BuildType(def)
	}

	if b.resolveUnknown != nil {
		t, err := b.resolveUnknown(name)
		if err != nil {
			return nil, err
		}
		if t != nil {
			b.cache.Set(name, t)
			return t, nil
		}
	}

	return nil, graphql.NewSchemaError(graphql.ErrUnknownType, fmt.Sprintf(`Unknown type "%s".`, name), pos)
}

// BuildWrappedType resolves the named type in the reference and wraps it in the List and NonNull
// types given by the reference.
func (b *DefinitionBuilder) BuildWrappedType(ref *ast.Type) (graphql.Type, error) {
	var t graphql.Type
	if ref.Elem != nil {
		elementType, err := b.BuildWrappedType(ref.Elem)
		if err != nil {
			return nil, err
		}
		listType, err := graphql.NewListOf(elementType)
		if err != nil {
			return nil, err
		}
		t = listType
	} else {
		namedType, err := b.buildNamedType(ref.NamedType, ref.Position)
		if err != nil {
			return nil, err
		}
		t = namedType
	}

	if ref.NonNull {
		nonNullType, err := graphql.NewNonNullOf(t)
		if err != nil {
			return nil, err
		}
		return nonNullType, nil
	}

	return t, nil
}

// BuildDirective builds a directive from its definition.
func (b *DefinitionBuilder) BuildDirective(def *ast.DirectiveDefinition) (*graphql.Directive, error) {
	args, err := b.buildArgs("@"+def.Name, def.Arguments)
	if err != nil {
		return nil, err
	}

	return graphql.NewDirective(&graphql.DirectiveConfig{
		Name:         def.Name,
		Description:  def.Description,
		Locations:    def.Locations,
		Args:         args,
		IsRepeatable: def.IsRepeatable,
		ASTNode:      def,
	})
}

//===----------------------------------------------------------------------------------------====//
// Named types
//===----------------------------------------------------------------------------------------====//

func (b *DefinitionBuilder) buildObject(def *ast.Definition) (graphql.NamedType, error) {
	resolvers := b.options.typeResolvers(def.Name)
	isTypeOf, err := isTypeOfHook(def, resolvers)
	if err != nil {
		return nil, err
	}

	exts := b.extensions[def.Name]
	object, err := graphql.NewObject(&graphql.ObjectConfig{
		Name:        def.Name,
		Description: def.Description,
		Interfaces: func() ([]*graphql.Interface, error) {
			return b.buildInterfaces(def, mergeNames(def.Interfaces, exts, interfacesOf))
		},
		Fields: func() ([]*graphql.FieldConfig, error) {
			return b.buildFields(def.Name, mergeFieldDefs(def.Fields, exts))
		},
		IsTypeOf:          isTypeOf,
		ASTNode:           def,
		ExtensionASTNodes: exts,
	})
	if err != nil {
		return nil, err
	}
	return object, nil
}

func (b *DefinitionBuilder) buildInterface(def *ast.Definition) (graphql.NamedType, error) {
	typeResolver, err := resolveTypeHook(def, b.options.typeResolvers(def.Name))
	if err != nil {
		return nil, err
	}

	exts := b.extensions[def.Name]
	iface, err := graphql.NewInterface(&graphql.InterfaceConfig{
		Name:        def.Name,
		Description: def.Description,
		Interfaces: func() ([]*graphql.Interface, error) {
			return b.buildInterfaces(def, mergeNames(def.Interfaces, exts, interfacesOf))
		},
		Fields: func() ([]*graphql.FieldConfig, error) {
			return b.buildFields(def.Name, mergeFieldDefs(def.Fields, exts))
		},
		TypeResolver:      typeResolver,
		ASTNode:           def,
		ExtensionASTNodes: exts,
	})
	if err != nil {
		return nil, err
	}
	return iface, nil
}

func (b *DefinitionBuilder) buildUnion(def *ast.Definition) (graphql.NamedType, error) {
	typeResolver, err := resolveTypeHook(def, b.options.typeResolvers(def.Name))
	if err != nil {
		return nil, err
	}

	exts := b.extensions[def.Name]
	union, err := graphql.NewUnion(&graphql.UnionConfig{
		Name:        def.Name,
		Description: def.Description,
		PossibleTypes: func() ([]*graphql.Object, error) {
			return b.buildPossibleTypes(def, mergeNames(def.Types, exts, membersOf))
		},
		TypeResolver:      typeResolver,
		ASTNode:           def,
		ExtensionASTNodes: exts,
	})
	if err != nil {
		return nil, err
	}
	return union, nil
}

func (b *DefinitionBuilder) buildEnum(def *ast.Definition) (graphql.NamedType, error) {
	exts := b.extensions[def.Name]
	values, err := b.buildEnumValues(def.Name, mergeEnumValueDefs(def.EnumValues, exts))
	if err != nil {
		return nil, err
	}

	enum, err := graphql.NewEnum(&graphql.EnumConfig{
		Name:              def.Name,
		Description:       def.Description,
		Values:            values,
		ASTNode:           def,
		ExtensionASTNodes: exts,
	})
	if err != nil {
		return nil, err
	}
	return enum, nil
}

func (b *DefinitionBuilder) buildScalar(def *ast.Definition) (graphql.NamedType, error) {
	resolvers := b.options.typeResolvers(def.Name)

	// Definitions of the built-in scalars refer to the built-in ones.
	if scalar := graphql.SpecifiedScalarType(def.Name); scalar != nil {
		if len(resolvers) > 0 {
			b.options.Logger.Warnf("resolvers for built-in scalar %s are ignored", def.Name)
		}
		return scalar, nil
	}

	exts := b.extensions[def.Name]
	config := &graphql.ScalarConfig{
		Name:              def.Name,
		Description:       def.Description,
		ASTNode:           def,
		ExtensionASTNodes: exts,
	}

	for _, node := range append([]*ast.Definition{def}, exts...) {
		url, err := specifiedByURLOf(def, node.Directives)
		if err != nil {
			return nil, err
		}
		if len(url) > 0 {
			config.SpecifiedByURL = url
		}
	}

	if err := scalarHooks(config, def, resolvers); err != nil {
		return nil, err
	}

	scalar, err := graphql.NewScalar(config)
	if err != nil {
		return nil, err
	}
	return scalar, nil
}

func (b *DefinitionBuilder) buildInputObject(def *ast.Definition) (graphql.NamedType, error) {
	exts := b.extensions[def.Name]
	inputObject, err := graphql.NewInputObject(&graphql.InputObjectConfig{
		Name:        def.Name,
		Description: def.Description,
		Fields: func() ([]*graphql.InputFieldConfig, error) {
			b.defining[def.Name] = true
			defer delete(b.defining, def.Name)
			return b.buildInputFields(def.Name, mergeFieldDefs(def.Fields, exts))
		},
		ASTNode:           def,
		ExtensionASTNodes: exts,
	})
	if err != nil {
		return nil, err
	}
	return inputObject, nil
}

//===----------------------------------------------------------------------------------------====//
// Members
//===----------------------------------------------------------------------------------------====//

func (b *DefinitionBuilder) buildInterfaces(def *ast.Definition, names []string) ([]*graphql.Interface, error) {
	interfaces := make([]*graphql.Interface, 0, len(names))
	for _, name := range names {
		t, err := b.buildNamedType(name, def.Position)
		if err != nil {
			return nil, err
		}
		iface, ok := t.(*graphql.Interface)
		if !ok {
			return nil, graphql.NewSchemaError(graphql.ErrInvalidTypeConfig,
				fmt.Sprintf("Type %s must only implement Interface types, it cannot implement %s.",
					def.Name, name), def.Position)
		}
		interfaces = append(interfaces, iface)
	}
	return interfaces, nil
}

func (b *DefinitionBuilder) buildPossibleTypes(def *ast.Definition, names []string) ([]*graphql.Object, error) {
	objects := make([]*graphql.Object, 0, len(names))
	for _, name := range names {
		t, err := b.buildNamedType(name, def.Position)
		if err != nil {
			return nil, err
		}
		object, ok := t.(*graphql.Object)
		if !ok {
			return nil, graphql.NewSchemaError(graphql.ErrInvalidTypeConfig,
				fmt.Sprintf("Union type %s can only include Object types, it cannot include %s.",
					def.Name, name), def.Position)
		}
		objects = append(objects, object)
	}
	return objects, nil
}

// buildFields builds field configs of an Object or an Interface and applies their resolvers.
func (b *DefinitionBuilder) buildFields(typeName string, fieldDefs ast.FieldList) ([]*graphql.FieldConfig, error) {
	resolvers := b.options.typeResolvers(typeName)

	configs := make([]*graphql.FieldConfig, 0, len(fieldDefs))
	for _, fieldDef := range fieldDefs {
		config, err := b.buildField(typeName, fieldDef)
		if err != nil {
			return nil, err
		}

		if record, exists := resolvers[fieldDef.Name]; exists {
			if err := applyFieldConfig(config, typeName, record); err != nil {
				return nil, err
			}
		}

		configs = append(configs, config)
	}

	return configs, nil
}

func (b *DefinitionBuilder) buildField(typeName string, fieldDef *ast.FieldDefinition) (*graphql.FieldConfig, error) {
	fieldType, err := b.BuildWrappedType(fieldDef.Type)
	if err != nil {
		return nil, err
	}

	args, err := b.buildArgs(typeName+"."+fieldDef.Name, fieldDef.Arguments)
	if err != nil {
		return nil, err
	}

	deprecation, err := deprecationOf(fieldDef.Directives)
	if err != nil {
		return nil, err
	}

	return &graphql.FieldConfig{
		Name:        fieldDef.Name,
		Description: fieldDef.Description,
		Type:        fieldType,
		Args:        args,
		Deprecation: deprecation,
		ASTNode:     fieldDef,
	}, nil
}

// buildArgs builds argument configs of the field or directive named owner.
func (b *DefinitionBuilder) buildArgs(owner string, argDefs ast.ArgumentDefinitionList) ([]*graphql.ArgumentConfig, error) {
	if len(argDefs) == 0 {
		return nil, nil
	}

	configs := make([]*graphql.ArgumentConfig, 0, len(argDefs))
	for _, argDef := range argDefs {
		argType, err := b.BuildWrappedType(argDef.Type)
		if err != nil {
			return nil, err
		}

		defaultValue, err := b.coerceDefaultValue(
			fmt.Sprintf("%s(%s:)", owner, argDef.Name), argDef.DefaultValue, argType)
		if err != nil {
			return nil, err
		}

		configs = append(configs, &graphql.ArgumentConfig{
			Name:         argDef.Name,
			Description:  argDef.Description,
			Type:         argType,
			DefaultValue: defaultValue,
			ASTNode:      argDef,
		})
	}
	return configs, nil
}

func (b *DefinitionBuilder) buildInputFields(typeName string, fieldDefs ast.FieldList) ([]*graphql.InputFieldConfig, error) {
	configs := make([]*graphql.InputFieldConfig, 0, len(fieldDefs))
	for _, fieldDef := range fieldDefs {
		fieldType, err := b.BuildWrappedType(fieldDef.Type)
		if err != nil {
			return nil, err
		}

		defaultValue, err := b.coerceDefaultValue(typeName+"."+fieldDef.Name, fieldDef.DefaultValue, fieldType)
		if err != nil {
			return nil, err
		}

		configs = append(configs, &graphql.InputFieldConfig{
			Name:         fieldDef.Name,
			Description:  fieldDef.Description,
			Type:         fieldType,
			DefaultValue: defaultValue,
			ASTNode:      fieldDef,
		})
	}
	return configs, nil
}

func (b *DefinitionBuilder) buildEnumValues(enumName string, valueDefs ast.EnumValueList) ([]*graphql.EnumValueConfig, error) {
	resolvers := b.options.typeResolvers(enumName)

	configs := make([]*graphql.EnumValueConfig, 0, len(valueDefs))
	for _, valueDef := range valueDefs {
		deprecation, err := deprecationOf(valueDef.Directives)
		if err != nil {
			return nil, err
		}

		config := &graphql.EnumValueConfig{
			Name:        valueDef.Name,
			Description: valueDef.Description,
			Deprecation: deprecation,
			ASTNode:     valueDef,
		}
		if internal, exists := resolvers[valueDef.Name]; exists {
			if internal == nil {
				internal = graphql.NilEnumInternalValue
			}
			config.Value = internal
		}

		configs = append(configs, config)
	}

	for name := range resolvers {
		if valueDefs.ForName(name) == nil {
			b.options.Logger.Warnf("internal value for %s.%s matches no enum value", enumName, name)
		}
	}

	return configs, nil
}

//===----------------------------------------------------------------------------------------====//
// Default values
//===----------------------------------------------------------------------------------------====//

// coerceDefaultValue computes the default value of the input value named owner. It returns nil if
// node is nil and graphql.NilDefaultValue for a null default.
func (b *DefinitionBuilder) coerceDefaultValue(owner string, node *ast.Value, t graphql.Type) (interface{}, error) {
	if node == nil {
		return nil, nil
	}

	if err := b.checkCyclicDefaultValue(owner, node, t); err != nil {
		return nil, err
	}

	coerced, err := value.CoerceFromAST(node, t, nil)
	if err != nil {
		return nil, graphql.NewError(
			fmt.Sprintf("Invalid default value %s for %s.", node.String(), owner),
			graphql.WithCause(graphql.ErrInvalidDefaultValue, err),
			graphql.ErrKindSchema,
			node.Position)
	}

	if coerced == nil {
		return graphql.NilDefaultValue, nil
	}
	return coerced, nil
}

// checkCyclicDefaultValue reports a default value that needs the fields of an input object whose
// fields are being computed.
func (b *DefinitionBuilder) checkCyclicDefaultValue(owner string, node *ast.Value, t graphql.Type) error {
	if node == nil {
		return nil
	}

	switch t := t.(type) {
	case *graphql.NonNull:
		return b.checkCyclicDefaultValue(owner, node, t.InnerType())

	case *graphql.List:
		if node.Kind != ast.ListValue {
			return b.checkCyclicDefaultValue(owner, node, t.ElementType())
		}
		for _, child := range node.Children {
			if err := b.checkCyclicDefaultValue(owner, child.Value, t.ElementType()); err != nil {
				return err
			}
		}

	case *graphql.InputObject:
		if node.Kind != ast.ObjectValue {
			return nil
		}

		if b.defining[t.Name()] {
			return graphql.NewSchemaError(graphql.ErrCyclicDefaultValue,
				fmt.Sprintf("Cannot compute default value %s for %s: it depends on fields of %s "+
					"which are being defined.", node.String(), owner, t.Name()),
				node.Position)
		}

		fields, err := t.Fields()
		if err != nil {
			return err
		}
		for _, child := range node.Children {
			if field, exists := fields.Lookup(child.Name); exists {
				if err := b.checkCyclicDefaultValue(owner, child.Value, field.Type()); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

//===----------------------------------------------------------------------------------------====//
// Extension merging
//===----------------------------------------------------------------------------------------====//

func interfacesOf(def *ast.Definition) []string {
	return def.Interfaces
}

func membersOf(def *ast.Definition) []string {
	return def.Types
}

// mergeNames appends names listed by the extensions to names, skipping duplicates.
func mergeNames(names []string, exts []*ast.Definition, namesOf func(*ast.Definition) []string) []string {
	if len(exts) == 0 {
		return names
	}

	result := append([]string(nil), names...)
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		seen[name] = true
	}
	for _, ext := range exts {
		for _, name := range namesOf(ext) {
			if !seen[name] {
				seen[name] = true
				result = append(result, name)
			}
		}
	}
	return result
}

// mergeFieldDefs merges the fields of extensions into fields by name. A field of an extension
// replaces the field of the same name in place; other fields are appended.
func mergeFieldDefs(fields ast.FieldList, exts []*ast.Definition) ast.FieldList {
	if len(exts) == 0 {
		return fields
	}

	result := append(ast.FieldList(nil), fields...)
	for _, ext := range exts {
		for _, field := range ext.Fields {
			if i := indexOfField(result, field.Name); i >= 0 {
				result[i] = field
			} else {
				result = append(result, field)
			}
		}
	}
	return result
}

func indexOfField(fields ast.FieldList, name string) int {
	for i, field := range fields {
		if field.Name == name {
			return i
		}
	}
	return -1
}

// mergeEnumValueDefs merges the values of extensions into values by name.
func mergeEnumValueDefs(values ast.EnumValueList, exts []*ast.Definition) ast.EnumValueList {
	if len(exts) == 0 {
		return values
	}

	result := append(ast.EnumValueList(nil), values...)
	for _, ext := range exts {
		for _, v := range ext.EnumValues {
			replaced := false
			for i := range result {
				if result[i].Name == v.Name {
					result[i] = v
					replaced = true
					break
				}
			}
			if !replaced {
				result = append(result, v)
			}
		}
	}
	return result
}
