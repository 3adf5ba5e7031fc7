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
	"reflect"
	"sort"

	"github.com/botobag/gqlcore/graphql"
)

// CoerceValue coerces a Go value given a GraphQL type. The value is usually decoded from an
// external input such as a JSON variable. Input objects accept map[string]interface{}. Lists accept
// slices and arrays of any element type.
func CoerceValue(value interface{}, t graphql.Type) (interface{}, error) {
	return coerceValue(value, t, nil)
}

func coerceValue(value interface{}, t graphql.Type, path *valuePath) (interface{}, error) {
	// A value must be provided if the type is non-null.
	if nonNullType, ok := t.(*graphql.NonNull); ok {
		if value == nil {
			return nil, nonNullError(t, nil, path)
		}
		return coerceValue(value, nonNullType.InnerType(), path)
	}

	if value == nil {
		// Explicitly return the value null.
		return nil, nil
	}

	switch t := t.(type) {
	case *graphql.List:
		elementType := t.ElementType()
		reflectValue := reflect.ValueOf(value)
		if reflectValue.Kind() == reflect.Slice || reflectValue.Kind() == reflect.Array {
			numElements := reflectValue.Len()
			coercedValues := make([]interface{}, numElements)
			for i := 0; i < numElements; i++ {
				coercedValue, err := coerceValue(reflectValue.Index(i).Interface(), elementType, path.WithIndex(i))
				if err != nil {
					return nil, err
				}
				coercedValues[i] = coercedValue
			}
			return coercedValues, nil
		}

		// Lists accept a non-list value as a list of one.
		coercedValue, err := coerceValue(value, elementType, path)
		if err != nil {
			return nil, err
		}
		return []interface{}{coercedValue}, nil

	case *graphql.InputObject:
		objectValue, ok := value.(map[string]interface{})
		if !ok {
			return nil, newCoercionError(graphql.ErrInputObjectShape,
				fmt.Sprintf("Expected type %s to be an object", t), path, "")
		}

		fields, err := t.Fields()
		if err != nil {
			return nil, err
		}

		coercedValues := make(map[string]interface{}, fields.Len())

		// Ensure every defined field is valid.
		for _, field := range fields.Values() {
			name := field.Name()
			fieldValue, hasFieldValue := objectValue[name]
			if !hasFieldValue {
				if field.HasDefaultValue() {
					coercedValues[name] = field.DefaultValue()
				} else if _, isNonNull := field.Type().(*graphql.NonNull); isNonNull {
					return nil, newCoercionError(graphql.ErrMissingNonNullField,
						fmt.Sprintf("Field %s of required type %s was not provided",
							path.WithField(name), field.Type()), nil, "")
				}
				continue
			}

			coercedField, err := coerceValue(fieldValue, field.Type(), path.WithField(name))
			if err != nil {
				return nil, err
			}
			coercedValues[name] = coercedField
		}

		// Ensure every provided field is defined. Names are visited in sorted order so the reported
		// field is deterministic.
		for _, name := range sortedKeys(objectValue) {
			if !fields.Has(name) {
				return nil, newCoercionError(graphql.ErrUnknownInputField,
					fmt.Sprintf(`Field "%s" is not defined by type %s`, name, t), path,
					didYouMean(name, fields.Keys()))
			}
		}

		return coercedValues, nil

	case *graphql.Enum:
		return coerceEnumValue(t, value, path)

	case *graphql.Scalar:
		// Scalars determine if a value is valid via ParseValue, which returns an error to indicate
		// failure.
		coerced, err := t.ParseValue(value)
		if err != nil {
			return nil, wrapCoercionError(graphql.ErrScalarCoercion, t, path, err)
		}
		return coerced, nil
	}

	return nil, newCoercionError(graphql.ErrInvalidTypeConfig,
		fmt.Sprintf("%s is not a valid input type", t), path, "")
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
