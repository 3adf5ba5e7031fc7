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

// TypeResolver resolves concrete type of an Interface or a Union from given value.
type TypeResolver interface {
	ResolveType(ctx context.Context, value interface{}, info *ResolveInfo) (*Object, error)
}

// TypeResolverFunc is an adapter to allow the use of ordinary functions as TypeResolver.
type TypeResolverFunc func(ctx context.Context, value interface{}, info *ResolveInfo) (*Object, error)

// ResolveType calls f(ctx, value, info).
func (f TypeResolverFunc) ResolveType(ctx context.Context, value interface{}, info *ResolveInfo) (*Object, error) {
	return f(ctx, value, info)
}

// InterfaceConfig provides specification to define an Interface type.
type InterfaceConfig struct {
	// Name of the defining Interface
	Name string

	// Description for the Interface type
	Description string

	// Interfaces implemented by this interface
	Interfaces InterfacesThunk

	// Fields in the Interface Type
	Fields FieldsThunk

	// TypeResolver resolves the concrete Object type implementing the defining interface from given
	// value.
	TypeResolver TypeResolver

	ASTNode           *ast.Definition
	ExtensionASTNodes []*ast.Definition
}

// Interface Type Definition
//
// When a field can return one of a heterogeneous set of types, a Interface type is used to describe
// what types are possible, what fields are in common across all types, as well as a function to
// determine which type is actually used when the field is resolved.
//
// Reference: https://spec.graphql.org/June2018/#sec-Interfaces
type Interface struct {
	name              string
	description       string
	fields            *lazy[FieldMap]
	interfaces        *lazy[[]*Interface]
	typeResolver      TypeResolver
	astNode           *ast.Definition
	extensionASTNodes []*ast.Definition
}

var _ AbstractType = (*Interface)(nil)

// NewInterface defines an Interface type from an InterfaceConfig.
func NewInterface(config *InterfaceConfig) (*Interface, error) {
	if len(config.Name) == 0 {
		return nil, NewSchemaError(ErrInvalidTypeConfig, "Must provide name for Interface.")
	}

	name := config.Name
	fieldsThunk := config.Fields
	return &Interface{
		name:        name,
		description: config.Description,
		fields: newLazy(func() (FieldMap, error) {
			return resolveFieldMap(name, fieldsThunk)
		}),
		interfaces:        newLazy[[]*Interface](config.Interfaces),
		typeResolver:      config.TypeResolver,
		astNode:           config.ASTNode,
		extensionASTNodes: config.ExtensionASTNodes,
	}, nil
}

// MustNewInterface is a convenience function equivalent to NewInterface but panics on failure
// instead of returning an error.
func MustNewInterface(config *InterfaceConfig) *Interface {
	i, err := NewInterface(config)
	if err != nil {
		panic(err)
	}
	return i
}

// graphqlType implements Type.
func (*Interface) graphqlType() {}

// graphqlAbstractType implements AbstractType.
func (*Interface) graphqlAbstractType() {}

// Name of the interface
func (i *Interface) Name() string {
	return i.name
}

// Description of the interface
func (i *Interface) Description() string {
	return i.description
}

// String implements fmt.Stringer.
func (i *Interface) String() string {
	return i.name
}

// Fields returns set of fields that needs to be provided when implementing this interface.
func (i *Interface) Fields() (FieldMap, error) {
	return i.fields.get()
}

// Interfaces returns the interfaces this interface implements.
func (i *Interface) Interfaces() ([]*Interface, error) {
	return i.interfaces.get()
}

// TypeResolver implements AbstractType.
func (i *Interface) TypeResolver() TypeResolver {
	return i.typeResolver
}

// ASTNode implements NamedType.
func (i *Interface) ASTNode() *ast.Definition {
	return i.astNode
}

// ExtensionASTNodes implements NamedType.
func (i *Interface) ExtensionASTNodes() []*ast.Definition {
	return i.extensionASTNodes
}

// Implements returns true if the interface declares the given interface.
func (i *Interface) Implements(iface *Interface) (bool, error) {
	ifaces, err := i.Interfaces()
	if err != nil {
		return false, err
	}
	for _, each := range ifaces {
		if each == iface {
			return true, nil
		}
	}
	return false, nil
}
