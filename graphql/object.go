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

	"github.com/vektah/gqlparser/v2/ast"
)

// IsTypeOfPredicate determines whether a value resolved for an abstract type is of an Object type.
type IsTypeOfPredicate interface {
	IsTypeOf(ctx context.Context, value interface{}, info *ResolveInfo) (bool, error)
}

// IsTypeOfPredicateFunc is an adapter to allow the use of ordinary functions as IsTypeOfPredicate.
type IsTypeOfPredicateFunc func(ctx context.Context, value interface{}, info *ResolveInfo) (bool, error)

// IsTypeOf calls f(ctx, value, info).
func (f IsTypeOfPredicateFunc) IsTypeOf(ctx context.Context, value interface{}, info *ResolveInfo) (bool, error) {
	return f(ctx, value, info)
}

// InterfacesThunk returns the interfaces implemented by an Object or an Interface. It is called at
// most once.
type InterfacesThunk func() ([]*Interface, error)

// Interfaces creates an InterfacesThunk that returns the given interfaces.
func Interfaces(ifaces ...*Interface) InterfacesThunk {
	return func() ([]*Interface, error) {
		return ifaces, nil
	}
}

// ObjectConfig provides specification to define an Object type.
type ObjectConfig struct {
	// Name of the defining Object
	Name string

	// Description for the Object type
	Description string

	// Interfaces that implemented by the defining Object
	Interfaces InterfacesThunk

	// Fields in the object
	Fields FieldsThunk

	// IsTypeOf is optional.
	IsTypeOf IsTypeOfPredicate

	ASTNode           *ast.Definition
	ExtensionASTNodes []*ast.Definition
}

// Object Type Definition
//
// GraphQL queries are hierarchical and composed, describing a tree of information. While Scalar
// types describe the leaf values of these hierarchical queries, Objects describe the intermediate
// levels.
//
// Fields and interfaces are computed on first access so that objects can refer to each other.
//
// Reference: https://spec.graphql.org/June2018/#sec-Objects
type Object struct {
	name              string
	description       string
	fields            *lazy[FieldMap]
	interfaces        *lazy[[]*Interface]
	isTypeOf          IsTypeOfPredicate
	astNode           *ast.Definition
	extensionASTNodes []*ast.Definition
}

var _ NamedType = (*Object)(nil)

// NewObject defines an Object type from an ObjectConfig.
func NewObject(config *ObjectConfig) (*Object, error) {
	if len(config.Name) == 0 {
		return nil, NewSchemaError(ErrInvalidTypeConfig, "Must provide name for Object.")
	}

	name := config.Name
	fieldsThunk := config.Fields
	return &Object{
		name:        name,
		description: config.Description,
		fields: newLazy(func() (FieldMap, error) {
			return resolveFieldMap(name, fieldsThunk)
		}),
		interfaces:        newLazy[[]*Interface](config.Interfaces),
		isTypeOf:          config.IsTypeOf,
		astNode:           config.ASTNode,
		extensionASTNodes: config.ExtensionASTNodes,
	}, nil
}

// MustNewObject is a convenience function equivalent to NewObject but panics on failure instead of
// returning an error.
func MustNewObject(config *ObjectConfig) *Object {
	o, err := NewObject(config)
	if err != nil {
		panic(err)
	}
	return o
}

func resolveFieldMap(typeName string, thunk FieldsThunk) (FieldMap, error) {
	if thunk == nil {
		return FieldMap{}, nil
	}
	configs, err := thunk()
	if err != nil {
		return FieldMap{}, err
	}
	return buildFieldMap(typeName, configs)
}

// graphqlType implements Type.
func (*Object) graphqlType() {}

// Name of the object
func (o *Object) Name() string {
	return o.name
}

// Description of the object
func (o *Object) Description() string {
	return o.description
}

// String implements fmt.Stringer.
func (o *Object) String() string {
	return o.name
}

// Fields in the object. The first call computes the fields; later calls return the memoized result.
func (o *Object) Fields() (FieldMap, error) {
	return o.fields.get()
}

// Interfaces includes interfaces that implemented by the Object type.
func (o *Object) Interfaces() ([]*Interface, error) {
	return o.interfaces.get()
}

// IsTypeOf returns the predicate or nil.
func (o *Object) IsTypeOf() IsTypeOfPredicate {
	return o.isTypeOf
}

// ASTNode implements NamedType.
func (o *Object) ASTNode() *ast.Definition {
	return o.astNode
}

// ExtensionASTNodes implements NamedType.
func (o *Object) ExtensionASTNodes() []*ast.Definition {
	return o.extensionASTNodes
}

// Implements returns true if the object declares the interface.
func (o *Object) Implements(iface *Interface) (bool, error) {
	ifaces, err := o.Interfaces()
	if err != nil {
		return false, err
	}
	for _, i := range ifaces {
		if i == iface {
			return true, nil
		}
	}
	return false, nil
}
