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

	"github.com/botobag/gqlcore/internal/util"

	"github.com/vektah/gqlparser/v2/ast"
)

// InputFieldConfig provides definition for a field in an InputObject.
type InputFieldConfig struct {
	// Name of the input field
	Name string

	// Description of the input field
	Description string

	// Type of the input field; Must be an input type.
	Type Type

	// DefaultValue is the coerced default value; nil means no default and NilDefaultValue means an
	// explicit null.
	DefaultValue interface{}

	ASTNode *ast.FieldDefinition
}

// InputFieldsThunk returns the fields of an InputObject. It is called at most once.
type InputFieldsThunk func() ([]*InputFieldConfig, error)

// InputFields creates an InputFieldsThunk that returns the given configs.
func InputFields(configs ...*InputFieldConfig) InputFieldsThunk {
	return func() ([]*InputFieldConfig, error) {
		return configs, nil
	}
}

// InputObjectConfig provides specification to define an InputObject type.
type InputObjectConfig struct {
	// Name of the defining InputObject
	Name string

	// Description for the InputObject type
	Description string

	// Fields in the InputObject Type
	Fields InputFieldsThunk

	ASTNode           *ast.Definition
	ExtensionASTNodes []*ast.Definition
}

// InputField is a field in an InputObject.
type InputField struct {
	name         string
	description  string
	ttype        Type
	defaultValue interface{}
	astNode      *ast.FieldDefinition
}

// Name of the input field
func (f *InputField) Name() string {
	return f.name
}

// Description of the input field
func (f *InputField) Description() string {
	return f.description
}

// Type of the input field
func (f *InputField) Type() Type {
	return f.ttype
}

// HasDefaultValue returns true if the input field declares a default value (which may be null).
func (f *InputField) HasDefaultValue() bool {
	return f.defaultValue != nil
}

// DefaultValue returns the coerced default value of the input field.
func (f *InputField) DefaultValue() interface{} {
	if _, ok := f.defaultValue.(nilValueType); ok {
		return nil
	}
	return f.defaultValue
}

// ASTNode returns the definition node of the input field if it was built from SDL.
func (f *InputField) ASTNode() *ast.FieldDefinition {
	return f.astNode
}

// Config returns a configuration that defines an equivalent input field.
func (f *InputField) Config() *InputFieldConfig {
	return &InputFieldConfig{
		Name:         f.name,
		Description:  f.description,
		Type:         f.ttype,
		DefaultValue: f.defaultValue,
		ASTNode:      f.astNode,
	}
}

// InputFieldMap maps field name to the InputField in declaration order.
type InputFieldMap struct {
	util.OrderedMap[*InputField]
}

// InputObject Type Definition
//
// An input object defines a structured collection of fields which may be supplied to a field
// argument.
//
// Reference: https://spec.graphql.org/June2018/#sec-Input-Objects
type InputObject struct {
	name              string
	description       string
	fields            *lazy[InputFieldMap]
	astNode           *ast.Definition
	extensionASTNodes []*ast.Definition
}

var _ NamedType = (*InputObject)(nil)

// NewInputObject defines an InputObject type from an InputObjectConfig.
func NewInputObject(config *InputObjectConfig) (*InputObject, error) {
	if len(config.Name) == 0 {
		return nil, NewSchemaError(ErrInvalidTypeConfig, "Must provide name for InputObject.")
	}

	name := config.Name
	thunk := config.Fields
	return &InputObject{
		name:        name,
		description: config.Description,
		fields: newLazy(func() (InputFieldMap, error) {
			return resolveInputFieldMap(name, thunk)
		}),
		astNode:           config.ASTNode,
		extensionASTNodes: config.ExtensionASTNodes,
	}, nil
}

// MustNewInputObject is a convenience function equivalent to NewInputObject but panics on failure
// instead of returning an error.
func MustNewInputObject(config *InputObjectConfig) *InputObject {
	o, err := NewInputObject(config)
	if err != nil {
		panic(err)
	}
	return o
}

func resolveInputFieldMap(typeName string, thunk InputFieldsThunk) (InputFieldMap, error) {
	fieldMap := InputFieldMap{util.NewOrderedMap[*InputField](0)}
	if thunk == nil {
		return fieldMap, nil
	}

	configs, err := thunk()
	if err != nil {
		return InputFieldMap{}, err
	}

	for _, config := range configs {
		if config == nil {
			return InputFieldMap{}, NewSchemaError(ErrInvalidFieldConfig,
				fmt.Sprintf("%s has a nil input field config.", typeName))
		}

		if len(config.Name) == 0 {
			return InputFieldMap{}, NewSchemaError(ErrInvalidFieldConfig,
				fmt.Sprintf("%s has an input field without name.", typeName), fieldPosition(config.ASTNode))
		}

		if config.Type == nil {
			return InputFieldMap{}, NewSchemaError(ErrInvalidFieldConfig,
				fmt.Sprintf("%s.%s field type must be provided.", typeName, config.Name),
				fieldPosition(config.ASTNode))
		}

		if fieldMap.Has(config.Name) {
			return InputFieldMap{}, NewSchemaError(ErrInvalidFieldConfig,
				fmt.Sprintf("Field %s.%s can only be defined once.", typeName, config.Name),
				fieldPosition(config.ASTNode))
		}

		fieldMap.Set(config.Name, &InputField{
			name:         config.Name,
			description:  config.Description,
			ttype:        config.Type,
			defaultValue: config.DefaultValue,
			astNode:      config.ASTNode,
		})
	}

	return fieldMap, nil
}

// graphqlType implements Type.
func (*InputObject) graphqlType() {}

// Name of the input object
func (o *InputObject) Name() string {
	return o.name
}

// Description of the input object
func (o *InputObject) Description() string {
	return o.description
}

// String implements fmt.Stringer.
func (o *InputObject) String() string {
	return o.name
}

// Fields in the input object. The first call computes the fields; later calls return the memoized
// result.
func (o *InputObject) Fields() (InputFieldMap, error) {
	return o.fields.get()
}

// ASTNode implements NamedType.
func (o *InputObject) ASTNode() *ast.Definition {
	return o.astNode
}

// ExtensionASTNodes implements NamedType.
func (o *InputObject) ExtensionASTNodes() []*ast.Definition {
	return o.extensionASTNodes
}
