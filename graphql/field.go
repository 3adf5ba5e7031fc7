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
	"fmt"

	"github.com/botobag/gqlcore/internal/util"

	"github.com/vektah/gqlparser/v2/ast"
)

// FieldResolver resolves field value during execution. It is opaque to schema construction.
type FieldResolver interface {
	// Context carries deadlines and cancelation signals.
	//
	// Source is the "source" value. It contains the value that has been resolved by field's enclosing
	// object.
	//
	// Info contains a collection of information about the current execution state.
	Resolve(ctx context.Context, source interface{}, info *ResolveInfo) (interface{}, error)
}

// FieldResolverFunc is an adapter to allow the use of ordinary functions as FieldResolver.
type FieldResolverFunc func(ctx context.Context, source interface{}, info *ResolveInfo) (interface{}, error)

// Resolve calls f(ctx, source, info).
func (f FieldResolverFunc) Resolve(ctx context.Context, source interface{}, info *ResolveInfo) (interface{}, error) {
	return f(ctx, source, info)
}

// FieldResolverFunc implements FieldResolver.
var _ FieldResolver = FieldResolverFunc(nil)

// FieldsThunk returns the field configurations of an Object or an Interface. It is called at most
// once, when the fields are first requested.
type FieldsThunk func() ([]*FieldConfig, error)

// Fields creates a FieldsThunk that returns the given configurations.
func Fields(configs ...*FieldConfig) FieldsThunk {
	return func() ([]*FieldConfig, error) {
		return configs, nil
	}
}

// FieldConfig provides definition of a field when defining an object or an interface.
type FieldConfig struct {
	// Name of the defining field
	Name string

	// Description of the defining field
	Description string

	// Type of the field; Must be an output type.
	Type Type

	// Argument configuration of the field in declaration order
	Args []*ArgumentConfig

	// Resolver for resolving field value during execution
	Resolver FieldResolver

	// Deprecation is non-nil when the field is tagged as deprecated.
	Deprecation *Deprecation

	ASTNode *ast.FieldDefinition
}

// ArgumentConfig provides definition for an argument of a field or a directive.
type ArgumentConfig struct {
	Name        string
	Description string

	// Type of the argument; Must be an input type.
	Type Type

	// DefaultValue is the coerced default value; nil means no default and NilDefaultValue means an
	// explicit null.
	DefaultValue interface{}

	ASTNode *ast.ArgumentDefinition
}

// Field representing a field in an object or an interface. It yields a value of a specific type.
//
// Reference: https://spec.graphql.org/June2018/#sec-Objects
type Field struct {
	name        string
	description string
	ttype       Type
	args        []*Argument
	resolver    FieldResolver
	deprecation *Deprecation
	astNode     *ast.FieldDefinition
}

// Name of the field
func (f *Field) Name() string {
	return f.name
}

// Description of the field
func (f *Field) Description() string {
	return f.description
}

// Type of value yielded by the field
func (f *Field) Type() Type {
	return f.ttype
}

// Args specifies the definitions of arguments being taken when querying this field.
func (f *Field) Args() []*Argument {
	return f.args
}

// Arg finds the argument with the given name or returns nil.
func (f *Field) Arg(name string) *Argument {
	return findArgument(f.args, name)
}

// Resolver determines the result value for the field from the value resolved by parent Object.
func (f *Field) Resolver() FieldResolver {
	return f.resolver
}

// Deprecation is non-nil when the field is tagged as deprecated.
func (f *Field) Deprecation() *Deprecation {
	return f.deprecation
}

// ASTNode returns the definition node of the field if it was built from SDL.
func (f *Field) ASTNode() *ast.FieldDefinition {
	return f.astNode
}

// Config returns a configuration that defines an equivalent field. It is used to copy a field into
// an extended type.
func (f *Field) Config() *FieldConfig {
	args := make([]*ArgumentConfig, len(f.args))
	for i, arg := range f.args {
		args[i] = arg.Config()
	}
	return &FieldConfig{
		Name:        f.name,
		Description: f.description,
		Type:        f.ttype,
		Args:        args,
		Resolver:    f.resolver,
		Deprecation: f.deprecation,
		ASTNode:     f.astNode,
	}
}

// Argument is an argument of a field or a directive.
type Argument struct {
	name         string
	description  string
	ttype        Type
	defaultValue interface{}
	astNode      *ast.ArgumentDefinition
}

// Name of the argument
func (arg *Argument) Name() string {
	return arg.name
}

// Description of the argument
func (arg *Argument) Description() string {
	return arg.description
}

// Type of the argument
func (arg *Argument) Type() Type {
	return arg.ttype
}

// HasDefaultValue returns true if the argument declares a default value (which may be null).
func (arg *Argument) HasDefaultValue() bool {
	return arg.defaultValue != nil
}

// DefaultValue returns the coerced default value of the argument.
func (arg *Argument) DefaultValue() interface{} {
	if _, ok := arg.defaultValue.(nilValueType); ok {
		return nil
	}
	return arg.defaultValue
}

// ASTNode returns the definition node of the argument if it was built from SDL.
func (arg *Argument) ASTNode() *ast.ArgumentDefinition {
	return arg.astNode
}

// Config returns a configuration that defines an equivalent argument.
func (arg *Argument) Config() *ArgumentConfig {
	return &ArgumentConfig{
		Name:         arg.name,
		Description:  arg.description,
		Type:         arg.ttype,
		DefaultValue: arg.defaultValue,
		ASTNode:      arg.astNode,
	}
}

func findArgument(args []*Argument, name string) *Argument {
	for _, arg := range args {
		if arg.name == name {
			return arg
		}
	}
	return nil
}

// FieldMap maps field name to the Field in declaration order.
type FieldMap struct {
	util.OrderedMap[*Field]
}

// buildFieldMap builds a FieldMap from given field configurations of the named type.
func buildFieldMap(typeName string, configs []*FieldConfig) (FieldMap, error) {
	fieldMap := FieldMap{util.NewOrderedMap[*Field](len(configs))}
	for _, config := range configs {
		if config == nil {
			return FieldMap{}, NewSchemaError(ErrInvalidFieldConfig,
				fmt.Sprintf("%s has a nil field config.", typeName))
		}

		if len(config.Name) == 0 {
			return FieldMap{}, NewSchemaError(ErrInvalidFieldConfig,
				fmt.Sprintf("%s has a field without name.", typeName), fieldPosition(config.ASTNode))
		}

		if config.Type == nil {
			return FieldMap{}, NewSchemaError(ErrInvalidFieldConfig,
				fmt.Sprintf("%s.%s field type must be provided.", typeName, config.Name),
				fieldPosition(config.ASTNode))
		}

		if fieldMap.Has(config.Name) {
			return FieldMap{}, NewSchemaError(ErrInvalidFieldConfig,
				fmt.Sprintf("Field %s.%s can only be defined once.", typeName, config.Name),
				fieldPosition(config.ASTNode))
		}

		args, err := buildArguments(fmt.Sprintf("%s.%s", typeName, config.Name), config.Args)
		if err != nil {
			return FieldMap{}, err
		}

		fieldMap.Set(config.Name, &Field{
			name:        config.Name,
			description: config.Description,
			ttype:       config.Type,
			args:        args,
			resolver:    config.Resolver,
			deprecation: config.Deprecation,
			astNode:     config.ASTNode,
		})
	}

	return fieldMap, nil
}

func buildArguments(owner string, configs []*ArgumentConfig) ([]*Argument, error) {
	if len(configs) == 0 {
		return nil, nil
	}

	args := make([]*Argument, 0, len(configs))
	for _, config := range configs {
		if config == nil || len(config.Name) == 0 || config.Type == nil {
			return nil, NewSchemaError(ErrInvalidFieldConfig,
				fmt.Sprintf("%s has an argument without name or type.", owner))
		}

		if findArgument(args, config.Name) != nil {
			var pos *ast.Position
			if config.ASTNode != nil {
				pos = config.ASTNode.Position
			}
			return nil, NewSchemaError(ErrInvalidFieldConfig,
				fmt.Sprintf("Argument %s(%s:) can only be defined once.", owner, config.Name), pos)
		}

		args = append(args, &Argument{
			name:         config.Name,
			description:  config.Description,
			ttype:        config.Type,
			defaultValue: config.DefaultValue,
			astNode:      config.ASTNode,
		})
	}

	return args, nil
}

func fieldPosition(node *ast.FieldDefinition) *ast.Position {
	if node == nil {
		return nil
	}
	return node.Position
}
