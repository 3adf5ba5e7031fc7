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

package graphql

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vektah/gqlparser/v2/ast"
)

// TypeMap keeps track of all named types referenced within the schema.
type TypeMap struct {
	types map[string]NamedType
}

// add a type and every type reachable from it into the map. Visiting a composite type forces its
// thunks so that any error in a lazily defined member surfaces here.
func (typeMap TypeMap) add(t Type) error {
	// stack contains types to be added to the map.
	stack := []Type{t}

	for len(stack) > 0 {
		// Pop a type from stack.
		t, stack = stack[len(stack)-1], stack[:len(stack)-1]

		if t == nil {
			continue
		}

		// Map type name to corresponding Type.
		if namedType, ok := t.(NamedType); ok {
			name := namedType.Name()
			prev, exists := typeMap.types[name]
			if !exists {
				typeMap.types[name] = namedType
			} else {
				if prev != namedType {
					return NewSchemaError(ErrDuplicateType, fmt.Sprintf(
						"Schema must contain unique named types but contains multiple types named %s.", name),
						positionOf(namedType.ASTNode()))
				}
				// Skip t which has been processed.
				continue
			}
		}

		// Add types referenced by t to stack.
		switch t := t.(type) {
		case *Scalar, *Enum:
			// Nothing to do.

		case *Object:
			interfaces, err := t.Interfaces()
			if err != nil {
				return err
			}
			for _, iface := range interfaces {
				stack = append(stack, iface)
			}

			fields, err := t.Fields()
			if err != nil {
				return err
			}
			stack = appendFieldTypes(stack, fields)

		case *Interface:
			interfaces, err := t.Interfaces()
			if err != nil {
				return err
			}
			for _, iface := range interfaces {
				stack = append(stack, iface)
			}

			fields, err := t.Fields()
			if err != nil {
				return err
			}
			stack = appendFieldTypes(stack, fields)

		case *Union:
			possibleTypes, err := t.PossibleTypes()
			if err != nil {
				return err
			}
			for _, possibleType := range possibleTypes {
				stack = append(stack, possibleType)
			}

		case *InputObject:
			fields, err := t.Fields()
			if err != nil {
				return err
			}
			for _, field := range fields.Values() {
				stack = append(stack, field.Type())
			}

		case *List:
			stack = append(stack, t.ElementType())

		case *NonNull:
			stack = append(stack, t.InnerType())

		default:
			return NewSchemaError(ErrInvalidTypeConfig,
				fmt.Sprintf("Cannot add %s to schema: unsupported type %T", t, t))
		}
	}

	return nil
}

func appendFieldTypes(stack []Type, fields FieldMap) []Type {
	for _, field := range fields.Values() {
		stack = append(stack, field.Type())
		for _, arg := range field.Args() {
			stack = append(stack, arg.Type())
		}
	}
	return stack
}

// Lookup finds a type with given name.
func (typeMap TypeMap) Lookup(name string) NamedType {
	return typeMap.types[name]
}

// Len returns the number of types in the map.
func (typeMap TypeMap) Len() int {
	return len(typeMap.types)
}

// Names returns the names of all types in sorted order.
func (typeMap TypeMap) Names() []string {
	names := make([]string, 0, len(typeMap.types))
	for name := range typeMap.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Types returns all types sorted by name.
func (typeMap TypeMap) Types() []NamedType {
	names := typeMap.Names()
	types := make([]NamedType, len(names))
	for i, name := range names {
		types[i] = typeMap.types[name]
	}
	return types
}

// DirectiveList is a list of Directive.
type DirectiveList []*Directive

// Lookup finds a directive with given name in the list.
func (directiveList DirectiveList) Lookup(name string) *Directive {
	for _, directive := range directiveList {
		if directive.Name() == name {
			return directive
		}
	}
	return nil
}

// SchemaConfig contains configuration to define a GraphQL schema.
type SchemaConfig struct {
	// Query, Mutation and Subscription are the root operation types defined by the schema.
	Query        *Object
	Mutation     *Object
	Subscription *Object

	// List of types that are declared in the schema. Types reachable from roots and fields are added
	// automatically.
	Types []NamedType

	// List of directives to be added to the schema.
	Directives DirectiveList

	// If true, the specified directives such as @skip are not added for the names that are missing
	// from Directives. The directives provided in Directives will be the exact list of directives
	// represented and allowed.
	ExcludeSpecifiedDirectives bool

	// AssumeValid marks the schema as trusted. AssertValidSchema returns nil for it without
	// validating.
	AssumeValid bool

	ASTNode           *ast.SchemaDefinition
	ExtensionASTNodes []*ast.SchemaDefinition
}

// Schema Definition
//
// A GraphQL service's collective type system capabilities are referred to as that service's
// "schema". A schema is defined in terms of the types and directives it supports as well as the
// root operation types for each kind of operation: query, mutation, and subscription; this
// determines the place in the type system where those operations begin.
//
// Schema is immutable after creation. This allows us to cache the results for some operations such
// as PossibleTypes.
//
// Reference: https://spec.graphql.org/June2018/#sec-Schema
type Schema struct {
	// query, mutation and subscription are root operation objects.
	query        *Object
	mutation     *Object
	subscription *Object

	// typeMap contains all named type defined in the schema.
	typeMap TypeMap

	// directives contains all directives defined in the schema.
	directives DirectiveList

	// implementations keeps track of all object implementations by interface.
	implementations map[*Interface][]*Object

	assumeValid       bool
	astNode           *ast.SchemaDefinition
	extensionASTNodes []*ast.SchemaDefinition

	// validateOnce guards validationErr, the memoized result of ValidateSchema.
	validateOnce  sync.Once
	validationErr error
}

// NewSchema initializes a Schema from the given config. It forces every thunk reachable from the
// config and fails on the first error. The result is not validated; call ValidateSchema or
// AssertValidSchema before using it for execution.
func NewSchema(config *SchemaConfig) (*Schema, error) {
	schema := &Schema{
		query:             config.Query,
		mutation:          config.Mutation,
		subscription:      config.Subscription,
		assumeValid:       config.AssumeValid,
		astNode:           config.ASTNode,
		extensionASTNodes: config.ExtensionASTNodes,
	}

	schema.directives = make(DirectiveList, len(config.Directives))
	copy(schema.directives, config.Directives)
	if !config.ExcludeSpecifiedDirectives {
		for _, directive := range SpecifiedDirectives() {
			if schema.directives.Lookup(directive.Name()) == nil {
				schema.directives = append(schema.directives, directive)
			}
		}
	}

	// Build type map now to detect any errors within this schema.
	typeMap := TypeMap{
		types: map[string]NamedType{},
	}

	// Add root operation types.
	for _, root := range []*Object{config.Query, config.Mutation, config.Subscription} {
		if root != nil {
			if err := typeMap.add(root); err != nil {
				return nil, err
			}
		}
	}

	// Visit all enumerated types in config.
	for _, t := range config.Types {
		if err := typeMap.add(t); err != nil {
			return nil, err
		}
	}

	// Visit types referenced by directives.
	for _, directive := range schema.directives {
		for _, arg := range directive.Args() {
			if err := typeMap.add(arg.Type()); err != nil {
				return nil, err
			}
		}
	}

	// Add the specified scalars unless the schema declares its own under the same name.
	for _, scalar := range SpecifiedScalarTypes() {
		if typeMap.Lookup(scalar.Name()) == nil {
			if err := typeMap.add(scalar); err != nil {
				return nil, err
			}
		}
	}

	// Add introspection types.
	if err := typeMap.add(IntrospectionTypes.Schema()); err != nil {
		return nil, err
	}

	schema.typeMap = typeMap

	// Keep track of all implementations by interface name.
	implementations := map[*Interface][]*Object{}
	for _, name := range typeMap.Names() {
		if object, ok := typeMap.types[name].(*Object); ok {
			// Interfaces have been forced by typeMap.add.
			interfaces, _ := object.Interfaces()
			for _, iface := range interfaces {
				implementations[iface] = append(implementations[iface], object)
			}
		}
	}
	schema.implementations = implementations

	return schema, nil
}

// MustNewSchema is a convenience function equivalent to NewSchema but panics on failure instead of
// returning an error.
func MustNewSchema(config *SchemaConfig) *Schema {
	schema, err := NewSchema(config)
	if err != nil {
		panic(err)
	}
	return schema
}

// TypeMap returns type map which contains all named types in the schema.
func (schema *Schema) TypeMap() TypeMap {
	return schema.typeMap
}

// Type finds the named type with the given name or returns nil.
func (schema *Schema) Type(name string) NamedType {
	return schema.typeMap.Lookup(name)
}

// Directives returns the directives in the schema.
func (schema *Schema) Directives() DirectiveList {
	return schema.directives
}

// Directive finds the directive with the given name or returns nil.
func (schema *Schema) Directive(name string) *Directive {
	return schema.directives.Lookup(name)
}

// Query returns the root operation type for query or nil.
func (schema *Schema) Query() *Object {
	return schema.query
}

// Mutation returns the root operation type for mutation or nil.
func (schema *Schema) Mutation() *Object {
	return schema.mutation
}

// Subscription returns the root operation type for subscription or nil.
func (schema *Schema) Subscription() *Object {
	return schema.subscription
}

// RootType returns the root operation type for the given operation or nil.
func (schema *Schema) RootType(operation ast.Operation) *Object {
	switch operation {
	case ast.Query:
		return schema.query
	case ast.Mutation:
		return schema.mutation
	case ast.Subscription:
		return schema.subscription
	}
	return nil
}

// AssumeValid returns true if the schema was created with SchemaConfig.AssumeValid.
func (schema *Schema) AssumeValid() bool {
	return schema.assumeValid
}

// ASTNode returns the schema definition node if there's one.
func (schema *Schema) ASTNode() *ast.SchemaDefinition {
	return schema.astNode
}

// ExtensionASTNodes returns the schema extension nodes applied to the schema.
func (schema *Schema) ExtensionASTNodes() []*ast.SchemaDefinition {
	return schema.extensionASTNodes
}

// PossibleTypes returns the object types that could be the runtime type of the abstract type.
func (schema *Schema) PossibleTypes(abstractType AbstractType) []*Object {
	switch t := abstractType.(type) {
	case *Union:
		// Union members have been forced by NewSchema.
		possibleTypes, _ := t.PossibleTypes()
		return possibleTypes
	case *Interface:
		return schema.implementations[t]
	}
	return nil
}

// IsPossibleType returns true if the object could be the runtime type of the abstract type.
func (schema *Schema) IsPossibleType(abstractType AbstractType, possibleType *Object) bool {
	for _, t := range schema.PossibleTypes(abstractType) {
		if t == possibleType {
			return true
		}
	}
	return false
}

// TypeFromAST returns the type in the schema for the type reference. It returns an error wrapping
// ErrUnknownType when the named type cannot be found.
func (schema *Schema) TypeFromAST(ref *ast.Type) (Type, error) {
	if ref.Elem != nil {
		elementType, err := schema.TypeFromAST(ref.Elem)
		if err != nil {
			return nil, err
		}
		listType := MustNewListOf(elementType)
		if ref.NonNull {
			return MustNewNonNullOf(listType), nil
		}
		return listType, nil
	}

	namedType := schema.typeMap.Lookup(ref.NamedType)
	if namedType == nil {
		return nil, NewSchemaError(ErrUnknownType, fmt.Sprintf(`Unknown type "%s".`, ref.NamedType),
			ref.Position)
	}
	if ref.NonNull {
		return MustNewNonNullOf(namedType), nil
	}
	return namedType, nil
}
