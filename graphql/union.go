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
	"github.com/vektah/gqlparser/v2/ast"
)

// UnionTypesThunk returns the member types of a Union. It is called at most once.
type UnionTypesThunk func() ([]*Object, error)

// PossibleTypes creates a UnionTypesThunk that returns the given objects.
func PossibleTypes(objects ...*Object) UnionTypesThunk {
	return func() ([]*Object, error) {
		return objects, nil
	}
}

// UnionConfig provides specification to define a Union type.
type UnionConfig struct {
	// Name of the union
	Name string

	// Description of the union
	Description string

	// PossibleTypes describes which Object types can be represented by the defining union.
	PossibleTypes UnionTypesThunk

	// TypeResolver resolves the concrete Object type implementing the defining union from given
	// value.
	TypeResolver TypeResolver

	ASTNode           *ast.Definition
	ExtensionASTNodes []*ast.Definition
}

// Union Type Definition
//
// When a field can return one of a heterogeneous set of types, a Union type is used to describe
// what types are possible as well as providing a function to determine which type is actually used
// when the field is resolved.
//
// Reference: https://spec.graphql.org/June2018/#sec-Unions
type Union struct {
	name              string
	description       string
	possibleTypes     *lazy[[]*Object]
	typeResolver      TypeResolver
	astNode           *ast.Definition
	extensionASTNodes []*ast.Definition
}

var _ AbstractType = (*Union)(nil)

// NewUnion defines a Union type from a UnionConfig.
func NewUnion(config *UnionConfig) (*Union, error) {
	if len(config.Name) == 0 {
		return nil, NewSchemaError(ErrInvalidTypeConfig, "Must provide name for Union.")
	}

	return &Union{
		name:              config.Name,
		description:       config.Description,
		possibleTypes:     newLazy[[]*Object](config.PossibleTypes),
		typeResolver:      config.TypeResolver,
		astNode:           config.ASTNode,
		extensionASTNodes: config.ExtensionASTNodes,
	}, nil
}

// MustNewUnion is a convenience function equivalent to NewUnion but panics on failure instead of
// returning an error.
func MustNewUnion(config *UnionConfig) *Union {
	u, err := NewUnion(config)
	if err != nil {
		panic(err)
	}
	return u
}

// graphqlType implements Type.
func (*Union) graphqlType() {}

// graphqlAbstractType implements AbstractType.
func (*Union) graphqlAbstractType() {}

// Name of the union
func (u *Union) Name() string {
	return u.name
}

// Description of the union
func (u *Union) Description() string {
	return u.description
}

// String implements fmt.Stringer.
func (u *Union) String() string {
	return u.name
}

// PossibleTypes returns member of the union type.
func (u *Union) PossibleTypes() ([]*Object, error) {
	return u.possibleTypes.get()
}

// TypeResolver implements AbstractType.
func (u *Union) TypeResolver() TypeResolver {
	return u.typeResolver
}

// ASTNode implements NamedType.
func (u *Union) ASTNode() *ast.Definition {
	return u.astNode
}

// ExtensionASTNodes implements NamedType.
func (u *Union) ExtensionASTNodes() []*ast.Definition {
	return u.extensionASTNodes
}
