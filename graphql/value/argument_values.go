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

// ArgumentValues prepares an object map of argument values given a list of argument definitions and
// list of argument AST nodes. pos locates the node that owns the arguments and is used to report a
// missing required argument.
func ArgumentValues(
	argDefs []*graphql.Argument,
	argNodes ast.ArgumentList,
	variables map[string]interface{},
	pos *ast.Position) (graphql.ArgumentValues, error) {

	if len(argDefs) == 0 && len(argNodes) == 0 {
		return graphql.NoArgumentValues(), nil
	}

	coercedValues := map[string]interface{}{}
	for _, argDef := range argDefs {
		argName := argDef.Name()
		argType := argDef.Type()
		argNode := argNodes.ForName(argName)

		var (
			hasValue    bool
			isNull      bool
			isVariable  bool
			varValue    interface{}
			argValueRef *ast.Value
		)
		if argNode != nil {
			hasValue = true
			argValueRef = argNode.Value
			switch {
			case argValueRef == nil || argValueRef.Kind == ast.NullValue:
				isNull = true
			case argValueRef.Kind == ast.Variable:
				isVariable = true
				varValue, hasValue = variables[argValueRef.Raw]
				isNull = hasValue && varValue == nil
			}
		}

		_, isNonNull := argType.(*graphql.NonNull)

		switch {
		case !hasValue && argDef.HasDefaultValue():
			// If no argument was provided where the definition has a default value, use the default
			// value.
			coercedValues[argName] = argDef.DefaultValue()

		case (!hasValue || isNull) && isNonNull:
			// A null value or no value was provided to an argument with a non-null type (required).
			switch {
			case isNull:
				return graphql.NoArgumentValues(), graphql.NewCoercionError(graphql.ErrNonNullCoercion,
					fmt.Sprintf(`Argument "%s" of non-null type "%s" must not be null.`, argName, argType),
					argNode.Position)
			case isVariable:
				return graphql.NoArgumentValues(), graphql.NewCoercionError(graphql.ErrMissingVariable,
					fmt.Sprintf(`Argument "%s" of required type "%s" was provided the variable "$%s" which `+
						`was not provided a runtime value.`, argName, argType, argValueRef.Raw),
					argNode.Position)
			default:
				return graphql.NoArgumentValues(), graphql.NewCoercionError(graphql.ErrNonNullCoercion,
					fmt.Sprintf(`Argument "%s" of required type "%s" was not provided.`, argName, argType),
					pos)
			}

		case hasValue:
			switch {
			case isVariable:
				coercedValues[argName] = varValue
			case isNull:
				// An explicit null must appear in the coerced values.
				coercedValues[argName] = nil
			default:
				coercedValue, err := CoerceFromAST(argValueRef, argType, variables)
				if err != nil {
					return graphql.NoArgumentValues(), graphql.NewError(
						fmt.Sprintf(`Argument "%s" has invalid value %s.`, argName, argValueRef.String()),
						argValueRef.Position, err)
				}
				coercedValues[argName] = coercedValue
			}
		}
	}

	return graphql.NewArgumentValues(coercedValues), nil
}

// DirectiveValues prepares an object map of argument values given a directive definition and the
// directives applied to a node. The second return value is false if the directive does not exist
// on the node.
func DirectiveValues(
	directiveDef *graphql.Directive,
	directives ast.DirectiveList,
	variables map[string]interface{}) (graphql.ArgumentValues, bool, error) {

	directive := directives.ForName(directiveDef.Name())
	if directive == nil {
		return graphql.NoArgumentValues(), false, nil
	}

	values, err := ArgumentValues(directiveDef.Args(), directive.Arguments, variables, directive.Position)
	if err != nil {
		return graphql.NoArgumentValues(), true, err
	}
	return values, true, nil
}
