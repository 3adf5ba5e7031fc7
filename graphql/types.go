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

	"github.com/vektah/gqlparser/v2/ast"
)

// Type interfaces provided by a GraphQL type.
//
// Reference: https://spec.graphql.org/June2018/#sec-Types
type Type interface {
	// String representation when printing the type
	fmt.Stringer

	// graphqlType is a special mark to indicate a Type. It makes sure that only a set of object can
	// be assigned to Type.
	graphqlType()
}

// TypeWithName is implemented by the type definition for named type.
type TypeWithName interface {
	// Name of the defining type
	Name() string
}

// TypeWithDescription is implemented by the types that provides description.
type TypeWithDescription interface {
	// Description provides documentation for the type.
	Description() string
}

// NamedType is a type with a schema-unique name: Scalar, Object, Interface, Union, Enum and
// InputObject.
type NamedType interface {
	Type
	TypeWithName
	TypeWithDescription

	// ASTNode returns the definition node the type was built from or nil for types defined in Go.
	ASTNode() *ast.Definition

	// ExtensionASTNodes returns the extension nodes applied to the type.
	ExtensionASTNodes() []*ast.Definition
}

// LeafType can represent a leaf value where execution of the GraphQL hierarchical queries
// terminates. Currently only Scalar and Enum are valid types for leaf nodes in GraphQL.
type LeafType interface {
	NamedType

	// Serialize coerces the given value to be returned as result of field with the type.
	Serialize(value interface{}) (interface{}, error)

	// graphqlLeafType puts a special mark for a GraphQL leaf type.
	graphqlLeafType()
}

// AbstractType indicates a GraphQL abstract type. Namely, interfaces and unions.
type AbstractType interface {
	NamedType

	// TypeResolver returns resolver that could determine the concrete Object type for the abstract
	// type from resolved value. It may be nil.
	TypeResolver() TypeResolver

	// graphqlAbstractType puts a special mark for an abstract type.
	graphqlAbstractType()
}

// WrappingType is a type that wraps another type. There are two wrapping type in GraphQL: List and
// NonNull.
//
// Reference: https://spec.graphql.org/June2018/#sec-Wrapping-Types
type WrappingType interface {
	Type

	// UnwrappedType returns the type that is wrapped by this type.
	UnwrappedType() Type

	graphqlWrappingType()
}

// Deprecation contains information about deprecation for a field or an enum value.
//
// See https://spec.graphql.org/June2018/#sec-Deprecation.
type Deprecation struct {
	// Reason provides a description of why the subject is deprecated.
	Reason string
}

// Defined returns true if the deprecation is active.
func (d *Deprecation) Defined() bool {
	return d != nil
}

// nilValueType is the type of NilDefaultValue and NilEnumInternalValue.
type nilValueType int

// NilDefaultValue is given to DefaultValue of an argument or an input field to declare an explicit
// null default. Leaving DefaultValue nil means there's no default value at all.
const NilDefaultValue nilValueType = 0

// NilEnumInternalValue is given to Value of an EnumValueConfig to make nil the internal value of
// the enum value. Leaving Value nil makes the value name the internal value.
const NilEnumInternalValue nilValueType = 1

//===----------------------------------------------------------------------------------------====//
// Predicates
//===----------------------------------------------------------------------------------------====//

// IsInputType returns true if the given type is valid as an input type: scalars, enums and input
// objects, possibly wrapped in List and NonNull.
func IsInputType(t Type) bool {
	switch NamedTypeOf(t).(type) {
	case *Scalar, *Enum, *InputObject:
		return true
	}
	return false
}

// IsOutputType returns true if the given type is valid as an output type.
func IsOutputType(t Type) bool {
	switch NamedTypeOf(t).(type) {
	case *Scalar, *Object, *Interface, *Union, *Enum:
		return true
	}
	return false
}

// IsLeafType returns true if the given type is a Scalar or an Enum.
func IsLeafType(t Type) bool {
	_, ok := t.(LeafType)
	return ok
}

// IsCompositeType returns true if the given type is an Object, an Interface or a Union.
func IsCompositeType(t Type) bool {
	switch t.(type) {
	case *Object, *Interface, *Union:
		return true
	}
	return false
}

// IsAbstractType returns true if the given type is an Interface or a Union.
func IsAbstractType(t Type) bool {
	_, ok := t.(AbstractType)
	return ok
}

// IsWrappingType returns true if the given type is a List or a NonNull.
func IsWrappingType(t Type) bool {
	_, ok := t.(WrappingType)
	return ok
}

// IsNullableType returns true if the type accepts null value.
func IsNullableType(t Type) bool {
	_, ok := t.(*NonNull)
	return t != nil && !ok
}

// NamedTypeOf unwraps all List and NonNull from the given type and returns the named type. It
// returns nil if t is nil.
func NamedTypeOf(t Type) NamedType {
	for {
		switch wrapping := t.(type) {
		case WrappingType:
			t = wrapping.UnwrappedType()
		case NamedType:
			return wrapping
		default:
			return nil
		}
	}
}

// NullableTypeOf strips one NonNull wrapper from the type if it has one.
func NullableTypeOf(t Type) Type {
	if nonNull, ok := t.(*NonNull); ok {
		return nonNull.InnerType()
	}
	return t
}

// IsIntrospectionType returns true if t is one of the types that are defined by the introspection
// system.
func IsIntrospectionType(t Type) bool {
	named, ok := t.(NamedType)
	if !ok {
		return false
	}
	introspectionType := introspectionTypeByName(named.Name())
	return introspectionType != nil && introspectionType == t
}
