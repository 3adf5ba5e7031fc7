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

	"github.com/botobag/gqlcore/graphql"

	"github.com/vektah/gqlparser/v2/ast"
)

func unknownEnumValueError(enum *graphql.Enum, name string, path *valuePath, args ...interface{}) error {
	return newCoercionError(graphql.ErrUnknownEnumValue,
		fmt.Sprintf(`Value "%s" does not exist in "%s" enum`, name, enum.Name()), path,
		didYouMean(name, enum.Values().Keys()), args...)
}

// coerceEnumLiteral returns the internal value of the enum value named by an enum literal.
func coerceEnumLiteral(enum *graphql.Enum, node *ast.Value, path *valuePath) (interface{}, error) {
	if node.Kind != ast.EnumValue {
		return nil, newCoercionError(graphql.ErrEnumShape,
			fmt.Sprintf("Enum %s cannot represent non-enum value: %s", enum.Name(), node.String()), path,
			didYouMean(node.Raw, enum.Values().Keys()), node.Position)
	}

	if value := enum.Value(node.Raw); value != nil {
		return value.Value(), nil
	}
	return nil, unknownEnumValueError(enum, node.Raw, path, node.Position)
}

// coerceEnumValue returns the internal value for a runtime input. The input is either the name of
// an enum value (a string or a string-like value, possibly behind a pointer) or one of the internal
// values.
func coerceEnumValue(enum *graphql.Enum, value interface{}, path *valuePath) (interface{}, error) {
	nameValue := reflect.ValueOf(value)
	if nameValue.Kind() == reflect.Ptr && !nameValue.IsNil() {
		nameValue = nameValue.Elem()
	}

	if nameValue.Kind() == reflect.String {
		name := nameValue.String()
		if enumValue := enum.Value(name); enumValue != nil {
			return enumValue.Value(), nil
		}
		// A string may also be the internal value of some enum value.
		if enumValue := enum.ValueFor(value); enumValue != nil {
			return enumValue.Value(), nil
		}
		return nil, unknownEnumValueError(enum, name, path)
	}

	if enumValue := enum.ValueFor(value); enumValue != nil {
		return enumValue.Value(), nil
	}

	return nil, newCoercionError(graphql.ErrEnumShape,
		fmt.Sprintf("Enum %s cannot represent non-string value: %s", enum.Name(), graphql.Inspect(value)),
		path, "")
}
