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
	"reflect"

	"github.com/botobag/gqlcore/internal/util"

	"github.com/vektah/gqlparser/v2/ast"
)

// EnumValueConfig provides definition for a value in enum.
type EnumValueConfig struct {
	// Name of the enum value as it appears in documents
	Name string

	// Description of the enum value
	Description string

	// Value is the internal value. If not given, the name is used. Use NilEnumInternalValue to make
	// nil the internal value.
	Value interface{}

	// Deprecation is non-nil when the value is tagged as deprecated.
	Deprecation *Deprecation

	ASTNode *ast.EnumValueDefinition
}

// EnumConfig provides specification to define an Enum type.
type EnumConfig struct {
	// Name of the enum
	Name string

	// Description for the enum
	Description string

	// Values in declaration order
	Values []*EnumValueConfig

	ASTNode           *ast.Definition
	ExtensionASTNodes []*ast.Definition
}

// EnumValue provides definition for a value in enum.
//
// Reference: https://spec.graphql.org/June2018/#EnumValue
type EnumValue struct {
	name        string
	description string
	value       interface{}
	deprecation *Deprecation
	astNode     *ast.EnumValueDefinition
}

// Name of enum value.
func (value *EnumValue) Name() string {
	return value.name
}

// Description of the enum value
func (value *EnumValue) Description() string {
	return value.description
}

// Value returns the internal value to be used when the enum value is read from input.
func (value *EnumValue) Value() interface{} {
	return value.value
}

// Deprecation is non-nil when the value is tagged as deprecated.
func (value *EnumValue) Deprecation() *Deprecation {
	return value.deprecation
}

// ASTNode returns the definition node of the value if it was built from SDL.
func (value *EnumValue) ASTNode() *ast.EnumValueDefinition {
	return value.astNode
}

// Config returns a configuration that defines an equivalent enum value.
func (value *EnumValue) Config() *EnumValueConfig {
	internal := value.value
	if internal == nil {
		internal = NilEnumInternalValue
	}
	return &EnumValueConfig{
		Name:        value.name,
		Description: value.description,
		Value:       internal,
		Deprecation: value.deprecation,
		ASTNode:     value.astNode,
	}
}

// EnumValueMap maps enum value names to their corresponding value definitions in declaration order.
type EnumValueMap struct {
	util.OrderedMap[*EnumValue]
}

// Enum Type Definition
//
// Some leaf values of requests and input values are Enums. GraphQL serializes Enum values as
// strings, however internally Enums can be represented by any kind of type, often integers.
//
// Reference: https://spec.graphql.org/June2018/#sec-Enums
type Enum struct {
	name              string
	description       string
	values            EnumValueMap
	astNode           *ast.Definition
	extensionASTNodes []*ast.Definition
}

var _ LeafType = (*Enum)(nil)

// NewEnum defines an Enum type from an EnumConfig.
func NewEnum(config *EnumConfig) (*Enum, error) {
	if len(config.Name) == 0 {
		return nil, NewSchemaError(ErrInvalidTypeConfig, "Must provide name for Enum.")
	}

	values := EnumValueMap{util.NewOrderedMap[*EnumValue](len(config.Values))}
	for _, valueConfig := range config.Values {
		if valueConfig == nil || len(valueConfig.Name) == 0 {
			return nil, NewSchemaError(ErrInvalidTypeConfig,
				fmt.Sprintf("Enum %s has a value without name.", config.Name))
		}

		if values.Has(valueConfig.Name) {
			var pos *ast.Position
			if valueConfig.ASTNode != nil {
				pos = valueConfig.ASTNode.Position
			}
			return nil, NewSchemaError(ErrInvalidTypeConfig,
				fmt.Sprintf("Enum value %s.%s can only be defined once.", config.Name, valueConfig.Name), pos)
		}

		internal := valueConfig.Value
		if internal == nil {
			internal = valueConfig.Name
		} else if _, ok := internal.(nilValueType); ok {
			internal = nil
		}

		values.Set(valueConfig.Name, &EnumValue{
			name:        valueConfig.Name,
			description: valueConfig.Description,
			value:       internal,
			deprecation: valueConfig.Deprecation,
			astNode:     valueConfig.ASTNode,
		})
	}

	return &Enum{
		name:              config.Name,
		description:       config.Description,
		values:            values,
		astNode:           config.ASTNode,
		extensionASTNodes: config.ExtensionASTNodes,
	}, nil
}

// MustNewEnum is a convenience function equivalent to NewEnum but panics on failure instead of
// returning an error.
func MustNewEnum(config *EnumConfig) *Enum {
	e, err := NewEnum(config)
	if err != nil {
		panic(err)
	}
	return e
}

// graphqlType implements Type.
func (*Enum) graphqlType() {}

// graphqlLeafType implements LeafType.
func (*Enum) graphqlLeafType() {}

// Name of the enum
func (e *Enum) Name() string {
	return e.name
}

// Description of the enum
func (e *Enum) Description() string {
	return e.description
}

// String implements fmt.Stringer.
func (e *Enum) String() string {
	return e.name
}

// Values return all enum values defined in this Enum type.
func (e *Enum) Values() EnumValueMap {
	return e.values
}

// Value finds the enum value with the given name or returns nil.
func (e *Enum) Value(name string) *EnumValue {
	return e.values.Get(name)
}

// ValueFor finds the enum value whose internal value equals to the given one or returns nil.
func (e *Enum) ValueFor(internal interface{}) *EnumValue {
	var found *EnumValue
	e.values.Range(func(_ string, value *EnumValue) bool {
		if internalValueEqual(value.value, internal) {
			found = value
			return false
		}
		return true
	})
	return found
}

func internalValueEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// ASTNode implements NamedType.
func (e *Enum) ASTNode() *ast.Definition {
	return e.astNode
}

// ExtensionASTNodes implements NamedType.
func (e *Enum) ExtensionASTNodes() []*ast.Definition {
	return e.extensionASTNodes
}

// Serialize implements LeafType. It returns the name of the enum value whose internal value is
// the given value.
func (e *Enum) Serialize(value interface{}) (interface{}, error) {
	if enumValue := e.ValueFor(value); enumValue != nil {
		return enumValue.name, nil
	}
	return nil, NewCoercionError(ErrUnknownEnumValue,
		fmt.Sprintf("Enum %s cannot represent value: %s", e.name, Inspect(value)))
}
