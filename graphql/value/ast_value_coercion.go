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

package value

import (
	"fmt"

	"github.com/botobag/gqlcore/graphql"

	"github.com/vektah/gqlparser/v2/ast"
)

// CoerceFromAST produces a Go value given a GraphQL value literal and the type it is expected to
// have. variables supplies the values of variables referenced from the literal. They are expected
// to be coerced already (see CoerceVariableValues) and are returned as is.
//
// A nil node is treated as an explicit null.
func CoerceFromAST(node *ast.Value, t graphql.Type, variables map[string]interface{}) (interface{}, error) {
	return coerceFromAST(node, t, variables, nil)
}

func isNullNode(node *ast.Value) bool {
	return node == nil || node.Kind == ast.NullValue
}

// isMissingVariable returns true if node is a variable which is not given in variables.
func isMissingVariable(node *ast.Value, variables map[string]interface{}) bool {
	if node != nil && node.Kind == ast.Variable {
		_, exists := variables[node.Raw]
		return !exists
	}
	return false
}

func positionOf(node *ast.Value) *ast.Position {
	if node == nil {
		return nil
	}
	return node.Position
}

func missingVariableError(node *ast.Value, path *valuePath) error {
	return newCoercionError(graphql.ErrMissingVariable,
		fmt.Sprintf(`Variable "$%s" is not provided`, node.Raw), path, "", node.Position)
}

func nonNullError(t graphql.Type, node *ast.Value, path *valuePath) error {
	return newCoercionError(graphql.ErrNonNullCoercion,
		fmt.Sprintf("Expected non-nullable type %s not to be null", t), path, "", positionOf(node))
}

func coerceFromAST(node *ast.Value, t graphql.Type, variables map[string]interface{}, path *valuePath) (interface{}, error) {
	if nonNullType, ok := t.(*graphql.NonNull); ok {
		if isNullNode(node) {
			return nil, nonNullError(t, node, path)
		}

		if node.Kind == ast.Variable {
			value, exists := variables[node.Raw]
			if !exists {
				return nil, missingVariableError(node, path)
			}
			if value == nil {
				return nil, newCoercionError(graphql.ErrNonNullCoercion,
					fmt.Sprintf(`Variable "$%s" of non-null type %s must not be null`, node.Raw, t),
					path, "", node.Position)
			}
			return value, nil
		}

		return coerceFromAST(node, nonNullType.InnerType(), variables, path)
	}

	if isNullNode(node) {
		// This is explicitly returning the value null.
		return nil, nil
	}

	if node.Kind == ast.Variable {
		value, exists := variables[node.Raw]
		if !exists {
			return nil, missingVariableError(node, path)
		}
		// Note: This does no further checking that this variable is correct. This assumes that the
		// variable has been coerced against a type compatible to t.
		return value, nil
	}

	switch t := t.(type) {
	case *graphql.List:
		elementType := t.ElementType()

		if node.Kind == ast.ListValue {
			_, isNonNullElementType := elementType.(*graphql.NonNull)
			coercedValues := make([]interface{}, len(node.Children))
			for i, child := range node.Children {
				if isMissingVariable(child.Value, variables) {
					// A missing variable in a list is either coerced to null or, if the item type is
					// non-null, considered invalid.
					if isNonNullElementType {
						return nil, nonNullError(elementType, child.Value, path.WithIndex(i))
					}
					coercedValues[i] = nil
					continue
				}

				elementValue, err := coerceFromAST(child.Value, elementType, variables, path.WithIndex(i))
				if err != nil {
					return nil, err
				}
				coercedValues[i] = elementValue
			}
			return coercedValues, nil
		}

		// Lists accept a non-list value as a list of one.
		coercedValue, err := coerceFromAST(node, elementType, variables, path)
		if err != nil {
			return nil, err
		}
		return []interface{}{coercedValue}, nil

	case *graphql.InputObject:
		if node.Kind != ast.ObjectValue {
			return nil, newCoercionError(graphql.ErrInputObjectShape,
				fmt.Sprintf("Expected type %s to be an object", t), path, "", node.Position)
		}

		fields, err := t.Fields()
		if err != nil {
			return nil, err
		}

		coercedValues := make(map[string]interface{}, fields.Len())
		for _, field := range fields.Values() {
			name := field.Name()
			fieldNode := node.Children.ForName(name)
			if fieldNode == nil || isMissingVariable(fieldNode, variables) {
				if field.HasDefaultValue() {
					coercedValues[name] = field.DefaultValue()
				} else if _, isNonNull := field.Type().(*graphql.NonNull); isNonNull {
					return nil, newCoercionError(graphql.ErrMissingNonNullField,
						fmt.Sprintf("Field %s of required type %s was not provided",
							path.WithField(name), field.Type()), nil, "", node.Position)
				}
				continue
			}

			fieldValue, err := coerceFromAST(fieldNode, field.Type(), variables, path.WithField(name))
			if err != nil {
				return nil, err
			}
			coercedValues[name] = fieldValue
		}

		// Ensure every provided field is defined.
		for _, child := range node.Children {
			if !fields.Has(child.Name) {
				return nil, newCoercionError(graphql.ErrUnknownInputField,
					fmt.Sprintf(`Field "%s" is not defined by type %s`, child.Name, t), path,
					didYouMean(child.Name, fields.Keys()), child.Position)
			}
		}

		return coercedValues, nil

	case *graphql.Enum:
		return coerceEnumLiteral(t, node, path)

	case *graphql.Scalar:
		result, err := t.ParseLiteral(node)
		if err != nil {
			return nil, wrapCoercionError(graphql.ErrScalarCoercion, t, path, err, node.Position)
		}
		return result, nil
	}

	return nil, newCoercionError(graphql.ErrInvalidTypeConfig,
		fmt.Sprintf("%s is not a valid input type", t), path, "", node.Position)
}
