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

// SerializeFunc coerces an internal value into the value returned in the result.
type SerializeFunc func(value interface{}) (interface{}, error)

// ParseValueFunc coerces an external input value (such as a variable value) into the internal
// value.
type ParseValueFunc func(value interface{}) (interface{}, error)

// ParseLiteralFunc coerces a value literal in the document into the internal value.
type ParseLiteralFunc func(value *ast.Value) (interface{}, error)

// ScalarConfig provides specification to define a Scalar type.
type ScalarConfig struct {
	// Name of the defining Scalar
	Name string

	// Description for the Scalar type
	Description string

	// SpecifiedByURL points to a document that specifies the behavior of the scalar.
	SpecifiedByURL string

	// Serialize is used for result coercion. If not given, values are returned as is.
	Serialize SerializeFunc

	// ParseValue and ParseLiteral implement input coercion. Either both or neither of them must be
	// given. If neither is given, values are taken as is and literals are converted to the closest
	// Go value.
	ParseValue   ParseValueFunc
	ParseLiteral ParseLiteralFunc

	ASTNode           *ast.Definition
	ExtensionASTNodes []*ast.Definition
}

// Scalar Type Definition
//
// The leaf values of any request and input values to arguments are Scalars (or Enums) and are
// defined with a name and a series of functions used to parse input from ast or variables and to
// ensure validity.
//
// Reference: https://spec.graphql.org/June2018/#sec-Scalars
type Scalar struct {
	name              string
	description       string
	specifiedByURL    string
	serialize         SerializeFunc
	parseValue        ParseValueFunc
	parseLiteral      ParseLiteralFunc
	astNode           *ast.Definition
	extensionASTNodes []*ast.Definition
}

var _ LeafType = (*Scalar)(nil)

// NewScalar defines a Scalar type from a ScalarConfig.
func NewScalar(config *ScalarConfig) (*Scalar, error) {
	if len(config.Name) == 0 {
		return nil, NewSchemaError(ErrInvalidTypeConfig, "Must provide name for Scalar.")
	}

	if (config.ParseValue == nil) != (config.ParseLiteral == nil) {
		return nil, NewSchemaError(ErrInvalidScalarConfig,
			fmt.Sprintf("%s must provide both \"parseValue\" and \"parseLiteral\" functions.", config.Name),
			ErrorLocationsOf(positionOf(config.ASTNode)))
	}

	scalar := &Scalar{
		name:              config.Name,
		description:       config.Description,
		specifiedByURL:    config.SpecifiedByURL,
		serialize:         config.Serialize,
		parseValue:        config.ParseValue,
		parseLiteral:      config.ParseLiteral,
		astNode:           config.ASTNode,
		extensionASTNodes: config.ExtensionASTNodes,
	}

	if scalar.serialize == nil {
		scalar.serialize = identityCoercion
	}
	if scalar.parseValue == nil {
		scalar.parseValue = identityCoercion
		scalar.parseLiteral = untypedValueFromAST
	}

	return scalar, nil
}

// MustNewScalar is a convenience function equivalent to NewScalar but panics on failure instead of
// returning an error.
func MustNewScalar(config *ScalarConfig) *Scalar {
	s, err := NewScalar(config)
	if err != nil {
		panic(err)
	}
	return s
}

func identityCoercion(value interface{}) (interface{}, error) {
	return value, nil
}

func untypedValueFromAST(value *ast.Value) (interface{}, error) {
	return value.Value(nil)
}

// graphqlType implements Type.
func (*Scalar) graphqlType() {}

// graphqlLeafType implements LeafType.
func (*Scalar) graphqlLeafType() {}

// Name of the scalar
func (s *Scalar) Name() string {
	return s.name
}

// Description of the scalar
func (s *Scalar) Description() string {
	return s.description
}

// String implements fmt.Stringer.
func (s *Scalar) String() string {
	return s.name
}

// SpecifiedByURL returns the URL given by @specifiedBy.
func (s *Scalar) SpecifiedByURL() string {
	return s.specifiedByURL
}

// ASTNode implements NamedType.
func (s *Scalar) ASTNode() *ast.Definition {
	return s.astNode
}

// ExtensionASTNodes implements NamedType.
func (s *Scalar) ExtensionASTNodes() []*ast.Definition {
	return s.extensionASTNodes
}

// Serialize implements LeafType.
func (s *Scalar) Serialize(value interface{}) (interface{}, error) {
	return s.serialize(value)
}

// ParseValue coerces an external input value into the internal value of the scalar.
func (s *Scalar) ParseValue(value interface{}) (interface{}, error) {
	return s.parseValue(value)
}

// ParseLiteral coerces a value literal into the internal value of the scalar.
func (s *Scalar) ParseLiteral(value *ast.Value) (interface{}, error) {
	return s.parseLiteral(value)
}

func positionOf(node *ast.Definition) *ast.Position {
	if node == nil {
		return nil
	}
	return node.Position
}
