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
	"context"
)

// introspectionTypes contains the types of the introspection system. They are created once and
// shared by every schema.
//
// Reference: https://spec.graphql.org/June2018/#sec-Schema-Introspection
type introspectionTypes struct {
	schema            *Object
	directive         *Object
	directiveLocation *Enum
	ttype             *Object
	field             *Object
	inputValue        *Object
	enumValue         *Object
	typeKind          *Enum
}

// IntrospectionTypes provides accessors to the introspection types.
var IntrospectionTypes = newIntrospectionTypes()

// Schema returns the __Schema type.
func (t *introspectionTypes) Schema() *Object { return t.schema }

// Directive returns the __Directive type.
func (t *introspectionTypes) Directive() *Object { return t.directive }

// DirectiveLocation returns the __DirectiveLocation type.
func (t *introspectionTypes) DirectiveLocation() *Enum { return t.directiveLocation }

// Type returns the __Type type.
func (t *introspectionTypes) Type() *Object { return t.ttype }

// Field returns the __Field type.
func (t *introspectionTypes) Field() *Object { return t.field }

// InputValue returns the __InputValue type.
func (t *introspectionTypes) InputValue() *Object { return t.inputValue }

// EnumValue returns the __EnumValue type.
func (t *introspectionTypes) EnumValue() *Object { return t.enumValue }

// TypeKind returns the __TypeKind type.
func (t *introspectionTypes) TypeKind() *Enum { return t.typeKind }

// All returns all introspection types.
func (t *introspectionTypes) All() []NamedType {
	return []NamedType{
		t.schema,
		t.directive,
		t.directiveLocation,
		t.ttype,
		t.field,
		t.inputValue,
		t.enumValue,
		t.typeKind,
	}
}

func introspectionTypeByName(name string) NamedType {
	for _, t := range IntrospectionTypes.All() {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

// resolveWith adapts a function on source into a FieldResolver.
func resolveWith[S any](f func(source S, info *ResolveInfo) (interface{}, error)) FieldResolver {
	return FieldResolverFunc(func(ctx context.Context, source interface{}, info *ResolveInfo) (interface{}, error) {
		return f(source.(S), info)
	})
}

func nonNullListOf(t Type) Type {
	return MustNewNonNullOf(MustNewListOf(MustNewNonNullOf(t)))
}

// TypeKind describes what kind of type a given Type is.
type TypeKind string

// Enumeration of TypeKind
const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
	TypeKindList        TypeKind = "LIST"
	TypeKindNonNull     TypeKind = "NON_NULL"
)

// TypeKindOf returns the TypeKind of t.
func TypeKindOf(t Type) TypeKind {
	switch t.(type) {
	case *Scalar:
		return TypeKindScalar
	case *Object:
		return TypeKindObject
	case *Interface:
		return TypeKindInterface
	case *Union:
		return TypeKindUnion
	case *Enum:
		return TypeKindEnum
	case *InputObject:
		return TypeKindInputObject
	case *List:
		return TypeKindList
	case *NonNull:
		return TypeKindNonNull
	}
	return ""
}

// inputValue is implemented by Argument and InputField.
type inputValue interface {
	Name() string
	Description() string
	Type() Type
	HasDefaultValue() bool
	DefaultValue() interface{}
}

var (
	_ inputValue = (*InputField)(nil)
	_ inputValue = (*Argument)(nil)
)

func printDefaultValue(value inputValue) interface{} {
	if !value.HasDefaultValue() {
		return nil
	}

	var node interface{ String() string }
	switch value := value.(type) {
	case *Argument:
		if n := value.ASTNode(); n != nil && n.DefaultValue != nil {
			node = n.DefaultValue
		}
	case *InputField:
		if n := value.ASTNode(); n != nil && n.DefaultValue != nil {
			node = n.DefaultValue
		}
	}
	if node != nil {
		return node.String()
	}
	return Inspect(value.DefaultValue())
}

func deprecationReason(deprecation *Deprecation) interface{} {
	if deprecation.Defined() {
		return deprecation.Reason
	}
	return nil
}

func newIntrospectionTypes() *introspectionTypes {
	t := &introspectionTypes{}

	includeDeprecatedArg := func() []*ArgumentConfig {
		return []*ArgumentConfig{
			{
				Name:         "includeDeprecated",
				Type:         Boolean(),
				DefaultValue: false,
			},
		}
	}

	includeDeprecated := func(info *ResolveInfo) bool {
		include, _ := info.Args.Get("includeDeprecated").(bool)
		return include
	}

	//===--------------------------------------------------------------------------------------====//
	// __TypeKind
	//===--------------------------------------------------------------------------------------====//
	t.typeKind = MustNewEnum(&EnumConfig{
		Name:        "__TypeKind",
		Description: "An enum describing what kind of type a given `__Type` is.",
		Values: []*EnumValueConfig{
			{
				Name:        "SCALAR",
				Value:       TypeKindScalar,
				Description: "Indicates this type is a scalar.",
			},
			{
				Name:        "OBJECT",
				Value:       TypeKindObject,
				Description: "Indicates this type is an object. `fields` and `interfaces` are valid fields.",
			},
			{
				Name:        "INTERFACE",
				Value:       TypeKindInterface,
				Description: "Indicates this type is an interface. `fields`, `interfaces`, and `possibleTypes` are valid fields.",
			},
			{
				Name:        "UNION",
				Value:       TypeKindUnion,
				Description: "Indicates this type is a union. `possibleTypes` is a valid field.",
			},
			{
				Name:        "ENUM",
				Value:       TypeKindEnum,
				Description: "Indicates this type is an enum. `enumValues` is a valid field.",
			},
			{
				Name:        "INPUT_OBJECT",
				Value:       TypeKindInputObject,
				Description: "Indicates this type is an input object. `inputFields` is a valid field.",
			},
			{
				Name:        "LIST",
				Value:       TypeKindList,
				Description: "Indicates this type is a list. `ofType` is a valid field.",
			},
			{
				Name:        "NON_NULL",
				Value:       TypeKindNonNull,
				Description: "Indicates this type is a non-null. `ofType` is a valid field.",
			},
		},
	})

	//===--------------------------------------------------------------------------------------====//
	// __DirectiveLocation
	//===--------------------------------------------------------------------------------------====//
	locationDescriptions := []struct {
		location    DirectiveLocation
		description string
	}{
		{DirectiveLocationQuery, "Location adjacent to a query operation."},
		{DirectiveLocationMutation, "Location adjacent to a mutation operation."},
		{DirectiveLocationSubscription, "Location adjacent to a subscription operation."},
		{DirectiveLocationField, "Location adjacent to a field."},
		{DirectiveLocationFragmentDefinition, "Location adjacent to a fragment definition."},
		{DirectiveLocationFragmentSpread, "Location adjacent to a fragment spread."},
		{DirectiveLocationInlineFragment, "Location adjacent to an inline fragment."},
		{DirectiveLocationVariableDefinition, "Location adjacent to a variable definition."},
		{DirectiveLocationSchema, "Location adjacent to a schema definition."},
		{DirectiveLocationScalar, "Location adjacent to a scalar definition."},
		{DirectiveLocationObject, "Location adjacent to an object type definition."},
		{DirectiveLocationFieldDefinition, "Location adjacent to a field definition."},
		{DirectiveLocationArgumentDefinition, "Location adjacent to an argument definition."},
		{DirectiveLocationInterface, "Location adjacent to an interface definition."},
		{DirectiveLocationUnion, "Location adjacent to a union definition."},
		{DirectiveLocationEnum, "Location adjacent to an enum definition."},
		{DirectiveLocationEnumValue, "Location adjacent to an enum value definition."},
		{DirectiveLocationInputObject, "Location adjacent to an input object type definition."},
		{DirectiveLocationInputFieldDefinition, "Location adjacent to an input object field definition."},
	}
	locationValues := make([]*EnumValueConfig, len(locationDescriptions))
	for i, l := range locationDescriptions {
		locationValues[i] = &EnumValueConfig{
			Name:        string(l.location),
			Value:       l.location,
			Description: l.description,
		}
	}
	t.directiveLocation = MustNewEnum(&EnumConfig{
		Name: "__DirectiveLocation",
		Description: "A Directive can be adjacent to many parts of the GraphQL language, a " +
			"__DirectiveLocation describes one such possible adjacencies.",
		Values: locationValues,
	})

	//===--------------------------------------------------------------------------------------====//
	// __Schema
	//===--------------------------------------------------------------------------------------====//
	t.schema = MustNewObject(&ObjectConfig{
		Name: "__Schema",
		Description: "A GraphQL Schema defines the capabilities of a GraphQL server. It exposes all " +
			"available types and directives on the server, as well as the entry points for query, " +
			"mutation, and subscription operations.",
		Fields: func() ([]*FieldConfig, error) {
			return []*FieldConfig{
				{
					Name:        "description",
					Type:        String(),
					Description: "A description of the schema.",
					Resolver: resolveWith(func(schema *Schema, info *ResolveInfo) (interface{}, error) {
						if node := schema.ASTNode(); node != nil && len(node.Description) > 0 {
							return node.Description, nil
						}
						return nil, nil
					}),
				},
				{
					Name:        "types",
					Description: "A list of all types supported by this server.",
					Type:        nonNullListOf(t.ttype),
					Resolver: resolveWith(func(schema *Schema, info *ResolveInfo) (interface{}, error) {
						return schema.TypeMap().Types(), nil
					}),
				},
				{
					Name:        "queryType",
					Description: "The type that query operations will be rooted at.",
					Type:        MustNewNonNullOf(t.ttype),
					Resolver: resolveWith(func(schema *Schema, info *ResolveInfo) (interface{}, error) {
						return schema.Query(), nil
					}),
				},
				{
					Name: "mutationType",
					Description: "If this server supports mutation, the type that mutation operations " +
						"will be rooted at.",
					Type: t.ttype,
					Resolver: resolveWith(func(schema *Schema, info *ResolveInfo) (interface{}, error) {
						if schema.Mutation() == nil {
							return nil, nil
						}
						return schema.Mutation(), nil
					}),
				},
				{
					Name: "subscriptionType",
					Description: "If this server support subscription, the type that subscription " +
						"operations will be rooted at.",
					Type: t.ttype,
					Resolver: resolveWith(func(schema *Schema, info *ResolveInfo) (interface{}, error) {
						if schema.Subscription() == nil {
							return nil, nil
						}
						return schema.Subscription(), nil
					}),
				},
				{
					Name:        "directives",
					Description: "A list of all directives supported by this server.",
					Type:        nonNullListOf(t.directive),
					Resolver: resolveWith(func(schema *Schema, info *ResolveInfo) (interface{}, error) {
						return schema.Directives(), nil
					}),
				},
			}, nil
		},
	})

	//===--------------------------------------------------------------------------------------====//
	// __Directive
	//===--------------------------------------------------------------------------------------====//
	t.directive = MustNewObject(&ObjectConfig{
		Name: "__Directive",
		Description: "A Directive provides a way to describe alternate runtime execution and type " +
			"validation behavior in a GraphQL document.\n\nIn some cases, you need to provide " +
			"options to alter GraphQL's execution behavior in ways field arguments will not " +
			"suffice, such as conditionally including or skipping a field. Directives provide this " +
			"by describing additional information to the executor.",
		Fields: func() ([]*FieldConfig, error) {
			return []*FieldConfig{
				{
					Name: "name",
					Type: MustNewNonNullOf(String()),
					Resolver: resolveWith(func(directive *Directive, info *ResolveInfo) (interface{}, error) {
						return directive.Name(), nil
					}),
				},
				{
					Name: "description",
					Type: String(),
					Resolver: resolveWith(func(directive *Directive, info *ResolveInfo) (interface{}, error) {
						return directive.Description(), nil
					}),
				},
				{
					Name: "isRepeatable",
					Type: MustNewNonNullOf(Boolean()),
					Resolver: resolveWith(func(directive *Directive, info *ResolveInfo) (interface{}, error) {
						return directive.IsRepeatable(), nil
					}),
				},
				{
					Name: "locations",
					Type: nonNullListOf(t.directiveLocation),
					Resolver: resolveWith(func(directive *Directive, info *ResolveInfo) (interface{}, error) {
						return directive.Locations(), nil
					}),
				},
				{
					Name: "args",
					Type: nonNullListOf(t.inputValue),
					Resolver: resolveWith(func(directive *Directive, info *ResolveInfo) (interface{}, error) {
						return directive.Args(), nil
					}),
				},
			}, nil
		},
	})

	//===--------------------------------------------------------------------------------------====//
	// __Type
	//===--------------------------------------------------------------------------------------====//
	t.ttype = MustNewObject(&ObjectConfig{
		Name: "__Type",
		Description: "The fundamental unit of any GraphQL Schema is the type. There are many kinds " +
			"of types in GraphQL as represented by the `__TypeKind` enum.\n\nDepending on the kind " +
			"of a type, certain fields describe information about that type. Scalar types provide " +
			"no information beyond a name, description and optional `specifiedByURL`, while Enum " +
			"types provide their values. Object and Interface types provide the fields they " +
			"describe. Abstract types, Union and Interface, provide the Object types possible at " +
			"runtime. List and NonNull types compose other types.",
		Fields: func() ([]*FieldConfig, error) {
			return []*FieldConfig{
				{
					Name: "kind",
					Type: MustNewNonNullOf(t.typeKind),
					Resolver: resolveWith(func(ttype Type, info *ResolveInfo) (interface{}, error) {
						return TypeKindOf(ttype), nil
					}),
				},
				{
					Name: "name",
					Type: String(),
					Resolver: resolveWith(func(ttype Type, info *ResolveInfo) (interface{}, error) {
						if named, ok := ttype.(NamedType); ok {
							return named.Name(), nil
						}
						return nil, nil
					}),
				},
				{
					Name: "description",
					Type: String(),
					Resolver: resolveWith(func(ttype Type, info *ResolveInfo) (interface{}, error) {
						if named, ok := ttype.(NamedType); ok {
							return named.Description(), nil
						}
						return nil, nil
					}),
				},
				{
					Name: "specifiedByURL",
					Type: String(),
					Resolver: resolveWith(func(ttype Type, info *ResolveInfo) (interface{}, error) {
						if scalar, ok := ttype.(*Scalar); ok && len(scalar.SpecifiedByURL()) > 0 {
							return scalar.SpecifiedByURL(), nil
						}
						return nil, nil
					}),
				},
				{
					Name: "fields",
					Type: MustNewListOf(MustNewNonNullOf(t.field)),
					Args: includeDeprecatedArg(),
					Resolver: resolveWith(func(ttype Type, info *ResolveInfo) (interface{}, error) {
						var (
							fields FieldMap
							err    error
						)
						switch ttype := ttype.(type) {
						case *Object:
							fields, err = ttype.Fields()
						case *Interface:
							fields, err = ttype.Fields()
						default:
							return nil, nil
						}
						if err != nil {
							return nil, err
						}
						result := make([]*Field, 0, fields.Len())
						for _, field := range fields.Values() {
							if includeDeprecated(info) || !field.Deprecation().Defined() {
								result = append(result, field)
							}
						}
						return result, nil
					}),
				},
				{
					Name: "interfaces",
					Type: MustNewListOf(MustNewNonNullOf(t.ttype)),
					Resolver: resolveWith(func(ttype Type, info *ResolveInfo) (interface{}, error) {
						switch ttype := ttype.(type) {
						case *Object:
							return ttype.Interfaces()
						case *Interface:
							return ttype.Interfaces()
						}
						return nil, nil
					}),
				},
				{
					Name: "possibleTypes",
					Type: MustNewListOf(MustNewNonNullOf(t.ttype)),
					Resolver: resolveWith(func(ttype Type, info *ResolveInfo) (interface{}, error) {
						if abstractType, ok := ttype.(AbstractType); ok {
							return info.Schema.PossibleTypes(abstractType), nil
						}
						return nil, nil
					}),
				},
				{
					Name: "enumValues",
					Type: MustNewListOf(MustNewNonNullOf(t.enumValue)),
					Args: includeDeprecatedArg(),
					Resolver: resolveWith(func(ttype Type, info *ResolveInfo) (interface{}, error) {
						enum, ok := ttype.(*Enum)
						if !ok {
							return nil, nil
						}
						values := enum.Values()
						result := make([]*EnumValue, 0, values.Len())
						for _, value := range values.Values() {
							if includeDeprecated(info) || !value.Deprecation().Defined() {
								result = append(result, value)
							}
						}
						return result, nil
					}),
				},
				{
					Name: "inputFields",
					Type: MustNewListOf(MustNewNonNullOf(t.inputValue)),
					Resolver: resolveWith(func(ttype Type, info *ResolveInfo) (interface{}, error) {
						inputObject, ok := ttype.(*InputObject)
						if !ok {
							return nil, nil
						}
						fields, err := inputObject.Fields()
						if err != nil {
							return nil, err
						}
						return fields.Values(), nil
					}),
				},
				{
					Name: "ofType",
					Type: t.ttype,
					Resolver: resolveWith(func(ttype Type, info *ResolveInfo) (interface{}, error) {
						if wrappingType, ok := ttype.(WrappingType); ok {
							return wrappingType.UnwrappedType(), nil
						}
						return nil, nil
					}),
				},
			}, nil
		},
	})

	//===--------------------------------------------------------------------------------------====//
	// __Field
	//===--------------------------------------------------------------------------------------====//
	t.field = MustNewObject(&ObjectConfig{
		Name: "__Field",
		Description: "Object and Interface types are described by a list of Fields, each of which " +
			"has a name, potentially a list of arguments, and a return type.",
		Fields: func() ([]*FieldConfig, error) {
			return []*FieldConfig{
				{
					Name: "name",
					Type: MustNewNonNullOf(String()),
					Resolver: resolveWith(func(field *Field, info *ResolveInfo) (interface{}, error) {
						return field.Name(), nil
					}),
				},
				{
					Name: "description",
					Type: String(),
					Resolver: resolveWith(func(field *Field, info *ResolveInfo) (interface{}, error) {
						return field.Description(), nil
					}),
				},
				{
					Name: "args",
					Type: nonNullListOf(t.inputValue),
					Resolver: resolveWith(func(field *Field, info *ResolveInfo) (interface{}, error) {
						return field.Args(), nil
					}),
				},
				{
					Name: "type",
					Type: MustNewNonNullOf(t.ttype),
					Resolver: resolveWith(func(field *Field, info *ResolveInfo) (interface{}, error) {
						return field.Type(), nil
					}),
				},
				{
					Name: "isDeprecated",
					Type: MustNewNonNullOf(Boolean()),
					Resolver: resolveWith(func(field *Field, info *ResolveInfo) (interface{}, error) {
						return field.Deprecation().Defined(), nil
					}),
				},
				{
					Name: "deprecationReason",
					Type: String(),
					Resolver: resolveWith(func(field *Field, info *ResolveInfo) (interface{}, error) {
						return deprecationReason(field.Deprecation()), nil
					}),
				},
			}, nil
		},
	})

	//===--------------------------------------------------------------------------------------====//
	// __InputValue
	//===--------------------------------------------------------------------------------------====//
	t.inputValue = MustNewObject(&ObjectConfig{
		Name: "__InputValue",
		Description: "Arguments provided to Fields or Directives and the input fields of an " +
			"InputObject are represented as Input Values which describe their type and optionally " +
			"a default value.",
		Fields: func() ([]*FieldConfig, error) {
			return []*FieldConfig{
				{
					Name: "name",
					Type: MustNewNonNullOf(String()),
					Resolver: resolveWith(func(value inputValue, info *ResolveInfo) (interface{}, error) {
						return value.Name(), nil
					}),
				},
				{
					Name: "description",
					Type: String(),
					Resolver: resolveWith(func(value inputValue, info *ResolveInfo) (interface{}, error) {
						return value.Description(), nil
					}),
				},
				{
					Name: "type",
					Type: MustNewNonNullOf(t.ttype),
					Resolver: resolveWith(func(value inputValue, info *ResolveInfo) (interface{}, error) {
						return value.Type(), nil
					}),
				},
				{
					Name: "defaultValue",
					Type: String(),
					Description: "A GraphQL-formatted string representing the default value for this " +
						"input value.",
					Resolver: resolveWith(func(value inputValue, info *ResolveInfo) (interface{}, error) {
						return printDefaultValue(value), nil
					}),
				},
			}, nil
		},
	})

	//===--------------------------------------------------------------------------------------====//
	// __EnumValue
	//===--------------------------------------------------------------------------------------====//
	t.enumValue = MustNewObject(&ObjectConfig{
		Name: "__EnumValue",
		Description: "One possible value for a given Enum. Enum values are unique values, not a " +
			"placeholder for a string or numeric value. However an Enum value is returned in a " +
			"JSON response as a string.",
		Fields: func() ([]*FieldConfig, error) {
			return []*FieldConfig{
				{
					Name: "name",
					Type: MustNewNonNullOf(String()),
					Resolver: resolveWith(func(value *EnumValue, info *ResolveInfo) (interface{}, error) {
						return value.Name(), nil
					}),
				},
				{
					Name: "description",
					Type: String(),
					Resolver: resolveWith(func(value *EnumValue, info *ResolveInfo) (interface{}, error) {
						return value.Description(), nil
					}),
				},
				{
					Name: "isDeprecated",
					Type: MustNewNonNullOf(Boolean()),
					Resolver: resolveWith(func(value *EnumValue, info *ResolveInfo) (interface{}, error) {
						return value.Deprecation().Defined(), nil
					}),
				},
				{
					Name: "deprecationReason",
					Type: String(),
					Resolver: resolveWith(func(value *EnumValue, info *ResolveInfo) (interface{}, error) {
						return deprecationReason(value.Deprecation()), nil
					}),
				},
			}, nil
		},
	})

	return t
}
