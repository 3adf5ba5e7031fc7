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
	"errors"
	"fmt"

	"github.com/botobag/gqlcore/graphql"

	"github.com/vektah/gqlparser/v2/ast"
)

// CoerceVariableValues prepares a map of variable values of the correct type based on the variable
// definitions of an operation and arbitrary input. Every variable that fails coercion is reported
// in the returned list of errors.
func CoerceVariableValues(
	schema *graphql.Schema,
	operation *ast.OperationDefinition,
	inputs map[string]interface{}) (map[string]interface{}, graphql.Errors) {

	var errs graphql.Errors

	coercedValues := map[string]interface{}{}
	for _, varDef := range operation.VariableDefinitions {
		varName := varDef.Variable

		varType, err := schema.TypeFromAST(varDef.Type)
		if err != nil {
			errs.Emplace(fmt.Sprintf(`Variable "$%s" expected value of unknown type "%s".`,
				varName, varDef.Type), varDef.Position, err)
			continue
		}

		if !graphql.IsInputType(varType) {
			// Must use input types for variables. This should be caught during validation, however is
			// checked again here for safety.
			errs.Emplace(fmt.Sprintf(`Variable "$%s" expected value of type "%s" which cannot be used `+
				`as an input type.`, varName, varType), varDef.Position, graphql.ErrKindCoercion)
			continue
		}

		value, hasValue := inputs[varName]
		_, isNonNull := varType.(*graphql.NonNull)

		switch {
		case !hasValue && varDef.DefaultValue != nil:
			// If no value was provided to a variable with a default value, use the default value.
			coerced, err := CoerceFromAST(varDef.DefaultValue, varType, nil)
			if err != nil {
				errs.Emplace(fmt.Sprintf(`Variable "$%s" has invalid default value %s.`,
					varName, varDef.DefaultValue.String()), varDef.DefaultValue.Position, err)
				continue
			}
			coercedValues[varName] = coerced

		case (!hasValue || value == nil) && isNonNull:
			var message string
			if hasValue {
				message = fmt.Sprintf(`Variable "$%s" of non-null type "%s" must not be null.`,
					varName, varType)
			} else {
				message = fmt.Sprintf(`Variable "$%s" of required type "%s" was not provided.`,
					varName, varType)
			}
			errs.Emplace(message, varDef.Position, graphql.ErrNonNullCoercion, graphql.ErrKindCoercion)

		case hasValue:
			if value == nil {
				// If the explicit value null was provided, an entry in the coerced values must exist as
				// the value null.
				coercedValues[varName] = nil
				continue
			}

			// Otherwise, a non-null value was provided, coerce it to the expected type or report an
			// error if coercion fails.
			coerced, err := CoerceValue(value, varType)
			if err != nil {
				var e *graphql.Error
				message := fmt.Sprintf(`Variable "$%s" got invalid value %s`, varName, graphql.Inspect(value))
				if errors.As(err, &e) && e.Kind == graphql.ErrKindCoercion {
					message += "; " + e.Message
				} else {
					message += "."
				}
				errs.Emplace(message, varDef.Position, err)
				continue
			}
			coercedValues[varName] = coerced
		}
	}

	if errs.HaveOccurred() {
		return nil, errs
	}
	return coercedValues, graphql.Errors{}
}
