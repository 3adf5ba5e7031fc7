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
	"math"
	"strconv"
	"strings"

	"github.com/botobag/gqlcore/graphql/typeutil"

	"github.com/vektah/gqlparser/v2/ast"
)

// The "type of internal value" for each built-in scalar are listed as follows,
//
// +--------------+---------------------------------+
// | GraphQL Type | Go Type ("internal value type") |
// +--------------+---------------------------------+
// | Int          | int                             |
// | Float        | float64                         |
// | String       | string                          |
// | Boolean      | bool                            |
// | ID           | string                          |
// +--------------+---------------------------------+
//
// Input coercion of raw values is lenient in the same way as result coercion: booleans are
// numeric (true is 1) and numeric strings are numbers. Literal coercion is strict except that Int
// literals widen to Float and ID accepts both String and Int literals.

// Reasons for the error when coercing built-in scalar types
const (
	coercionErrorNonInteger               = "not an integer"
	coercionErrorIntegerTooLarge          = "value too large for 32-bit signed integer"
	coercionErrorIntegerTooSmall          = "value too small for 32-bit signed integer"
	coercionErrorNonNumeric               = "not a numeric value"
	coercionErrorEmptyString              = "empty string is not a numeric value"
	coercionErrorIntegerToFloatOutOfRange = "integer that cannot represent with float: out of range"
	coercionErrorNonBoolean               = "not a boolean value"
	coercionErrorNonString                = "not a string value"
	coercionErrorNonID                    = "not a string or an integer"
)

// maxSafeInteger is the largest integer that float64 represents exactly.
const maxSafeInteger = 1<<53 - 1

func raiseScalarError(typeName string, value interface{}, reason string) error {
	return NewCoercionError(ErrScalarCoercion,
		fmt.Sprintf("%s cannot represent %s: %s", typeName, Inspect(value), reason))
}

func raiseLiteralError(typeName string, value *ast.Value, reason string) error {
	return NewCoercionError(ErrScalarCoercion,
		fmt.Sprintf("%s cannot represent %s: %s", typeName, value.String(), reason),
		value.Position)
}

//===-----------------------------------------------------------------------------------------===//
// Int
//===-----------------------------------------------------------------------------------------===//
// The Int scalar type represents a signed 32‐bit numeric non‐fractional value as per spec.
//
// Reference: https://spec.graphql.org/June2018/#sec-Int

func coerceInt(value interface{}) (interface{}, error) {
	p := typeutil.PrimitiveOf(value)
	if p.Kind == typeutil.StringPrimitive {
		if len(p.String) == 0 {
			return nil, raiseScalarError("Int", value, coercionErrorEmptyString)
		}
		number, ok := typeutil.ParseNumber(p.String)
		if !ok {
			return nil, raiseScalarError("Int", value, coercionErrorNonNumeric)
		}
		p = number
	}

	switch p.Kind {
	case typeutil.BoolPrimitive:
		if p.Bool {
			return 1, nil
		}
		return 0, nil

	case typeutil.IntPrimitive:
		if p.Int > math.MaxInt32 {
			return nil, raiseScalarError("Int", value, coercionErrorIntegerTooLarge)
		} else if p.Int < math.MinInt32 {
			return nil, raiseScalarError("Int", value, coercionErrorIntegerTooSmall)
		}
		return int(p.Int), nil

	case typeutil.UintPrimitive:
		if p.Uint > math.MaxInt32 {
			return nil, raiseScalarError("Int", value, coercionErrorIntegerTooLarge)
		}
		return int(p.Uint), nil

	case typeutil.FloatPrimitive:
		if math.Trunc(p.Float) != p.Float {
			return nil, raiseScalarError("Int", value, coercionErrorNonInteger)
		} else if p.Float > math.MaxInt32 {
			return nil, raiseScalarError("Int", value, coercionErrorIntegerTooLarge)
		} else if p.Float < math.MinInt32 {
			return nil, raiseScalarError("Int", value, coercionErrorIntegerTooSmall)
		}
		return int(p.Float), nil

	case typeutil.NaNPrimitive, typeutil.InfPrimitive:
		return nil, raiseScalarError("Int", value, coercionErrorNonNumeric)
	}

	return nil, raiseScalarError("Int", value, coercionErrorNonInteger)
}

func parseIntLiteral(value *ast.Value) (interface{}, error) {
	if value.Kind != ast.IntValue {
		return nil, raiseLiteralError("Int", value, coercionErrorNonInteger)
	}
	i, err := strconv.ParseInt(value.Raw, 10, 64)
	if err != nil {
		// The lexer only produces well-formed integers, so the literal is out of int64 range.
		if strings.HasPrefix(value.Raw, "-") {
			return nil, raiseLiteralError("Int", value, coercionErrorIntegerTooSmall)
		}
		return nil, raiseLiteralError("Int", value, coercionErrorIntegerTooLarge)
	}
	if i > math.MaxInt32 {
		return nil, raiseLiteralError("Int", value, coercionErrorIntegerTooLarge)
	} else if i < math.MinInt32 {
		return nil, raiseLiteralError("Int", value, coercionErrorIntegerTooSmall)
	}
	return int(i), nil
}

var intType = MustNewScalar(&ScalarConfig{
	Name: "Int",
	Description: "The `Int` scalar type represents non-fractional signed whole numeric values. " +
		"Int can represent values between -(2^31) and 2^31 - 1.",
	Serialize:    coerceInt,
	ParseValue:   coerceInt,
	ParseLiteral: parseIntLiteral,
})

// Int returns the GraphQL builtin Int type definition.
func Int() *Scalar {
	return intType
}

//===-----------------------------------------------------------------------------------------===//
// Float
//===-----------------------------------------------------------------------------------------===//
// The Float scalar type represents signed double-precision fractional values as specified by IEEE
// 754.
//
// Reference: https://spec.graphql.org/June2018/#sec-Float

func coerceFloat(value interface{}) (interface{}, error) {
	p := typeutil.PrimitiveOf(value)
	if p.Kind == typeutil.StringPrimitive {
		if len(p.String) == 0 {
			return nil, raiseScalarError("Float", value, coercionErrorEmptyString)
		}
		number, ok := typeutil.ParseNumber(p.String)
		if !ok {
			return nil, raiseScalarError("Float", value, coercionErrorNonNumeric)
		}
		p = number
	}

	switch p.Kind {
	case typeutil.BoolPrimitive:
		if p.Bool {
			return float64(1), nil
		}
		return float64(0), nil

	case typeutil.IntPrimitive:
		if p.Int > maxSafeInteger || p.Int < -maxSafeInteger {
			return nil, raiseScalarError("Float", value, coercionErrorIntegerToFloatOutOfRange)
		}
		return float64(p.Int), nil

	case typeutil.UintPrimitive:
		if p.Uint > maxSafeInteger {
			return nil, raiseScalarError("Float", value, coercionErrorIntegerToFloatOutOfRange)
		}
		return float64(p.Uint), nil

	case typeutil.FloatPrimitive:
		return p.Float, nil
	}

	return nil, raiseScalarError("Float", value, coercionErrorNonNumeric)
}

func parseFloatLiteral(value *ast.Value) (interface{}, error) {
	switch value.Kind {
	case ast.IntValue, ast.FloatValue:
		f, err := strconv.ParseFloat(value.Raw, 64)
		if err != nil || math.IsInf(f, 0) {
			return nil, raiseLiteralError("Float", value, coercionErrorNonNumeric)
		}
		return f, nil
	}
	return nil, raiseLiteralError("Float", value, coercionErrorNonNumeric)
}

var floatType = MustNewScalar(&ScalarConfig{
	Name: "Float",
	Description: "The `Float` scalar type represents signed double-precision fractional " +
		"values as specified by " +
		"[IEEE 754](https://en.wikipedia.org/wiki/IEEE_floating_point).",
	Serialize:    coerceFloat,
	ParseValue:   coerceFloat,
	ParseLiteral: parseFloatLiteral,
})

// Float returns the GraphQL builtin Float type definition.
func Float() *Scalar {
	return floatType
}

//===-----------------------------------------------------------------------------------------===//
// String
//===-----------------------------------------------------------------------------------------===//
// The String scalar type represents textual data, represented as UTF‐8 character sequences.
//
// Reference: https://spec.graphql.org/June2018/#sec-String

func coerceString(value interface{}) (interface{}, error) {
	p := typeutil.PrimitiveOf(value)
	switch p.Kind {
	case typeutil.StringPrimitive:
		return p.String, nil
	case typeutil.BoolPrimitive:
		return strconv.FormatBool(p.Bool), nil
	case typeutil.IntPrimitive:
		return strconv.FormatInt(p.Int, 10), nil
	case typeutil.UintPrimitive:
		return strconv.FormatUint(p.Uint, 10), nil
	case typeutil.FloatPrimitive:
		return strconv.FormatFloat(p.Float, 'g', -1, 64), nil
	}
	return nil, raiseScalarError("String", value, coercionErrorNonString)
}

func parseStringLiteral(value *ast.Value) (interface{}, error) {
	switch value.Kind {
	case ast.StringValue, ast.BlockValue:
		return value.Raw, nil
	}
	return nil, raiseLiteralError("String", value, coercionErrorNonString)
}

var stringType = MustNewScalar(&ScalarConfig{
	Name: "String",
	Description: "The `String` scalar type represents textual data, represented as UTF-8 " +
		"character sequences. The String type is most often used by GraphQL to " +
		"represent free-form human-readable text.",
	Serialize:    coerceString,
	ParseValue:   coerceString,
	ParseLiteral: parseStringLiteral,
})

// String returns the GraphQL builtin String type definition.
func String() *Scalar {
	return stringType
}

//===-----------------------------------------------------------------------------------------===//
// Boolean
//===-----------------------------------------------------------------------------------------===//
// The Boolean scalar type represents true or false.
//
// Reference: https://spec.graphql.org/June2018/#sec-Boolean

func coerceBoolean(value interface{}) (interface{}, error) {
	p := typeutil.PrimitiveOf(value)
	switch p.Kind {
	case typeutil.BoolPrimitive:
		return p.Bool, nil
	case typeutil.IntPrimitive:
		return p.Int != 0, nil
	case typeutil.UintPrimitive:
		return p.Uint != 0, nil
	case typeutil.FloatPrimitive:
		return p.Float != 0, nil
	}
	return nil, raiseScalarError("Boolean", value, coercionErrorNonBoolean)
}

func parseBooleanLiteral(value *ast.Value) (interface{}, error) {
	if value.Kind != ast.BooleanValue {
		return nil, raiseLiteralError("Boolean", value, coercionErrorNonBoolean)
	}
	return value.Raw == "true", nil
}

var booleanType = MustNewScalar(&ScalarConfig{
	Name:         "Boolean",
	Description:  "The `Boolean` scalar type represents `true` or `false`.",
	Serialize:    coerceBoolean,
	ParseValue:   coerceBoolean,
	ParseLiteral: parseBooleanLiteral,
})

// Boolean returns the GraphQL builtin Boolean type definition.
func Boolean() *Scalar {
	return booleanType
}

//===-----------------------------------------------------------------------------------------===//
// ID
//===-----------------------------------------------------------------------------------------===//
// The ID scalar type represents a unique identifier, often used to refetch an object or as the key
// for a cache. It is serialized in the same way as a String but accepts integers as input.
//
// Reference: https://spec.graphql.org/June2018/#sec-ID

func coerceID(value interface{}) (interface{}, error) {
	p := typeutil.PrimitiveOf(value)
	switch p.Kind {
	case typeutil.StringPrimitive:
		return p.String, nil
	case typeutil.IntPrimitive:
		return strconv.FormatInt(p.Int, 10), nil
	case typeutil.UintPrimitive:
		return strconv.FormatUint(p.Uint, 10), nil
	}
	return nil, raiseScalarError("ID", value, coercionErrorNonID)
}

func parseIDLiteral(value *ast.Value) (interface{}, error) {
	switch value.Kind {
	case ast.StringValue, ast.BlockValue, ast.IntValue:
		return value.Raw, nil
	}
	return nil, raiseLiteralError("ID", value, coercionErrorNonID)
}

var idType = MustNewScalar(&ScalarConfig{
	Name: "ID",
	Description: "The `ID` scalar type represents a unique identifier, often used to " +
		"refetch an object or as key for a cache. The ID type appears in a JSON " +
		"response as a String; however, it is not intended to be human-readable. " +
		"When expected as an input type, any string (such as `\"4\"`) or integer " +
		"(such as `4`) input value will be accepted as an ID.",
	Serialize:    coerceID,
	ParseValue:   coerceID,
	ParseLiteral: parseIDLiteral,
})

// ID returns the GraphQL builtin ID type definition.
func ID() *Scalar {
	return idType
}

// SpecifiedScalarTypes returns the built-in scalars in the order of the specification.
func SpecifiedScalarTypes() []*Scalar {
	return []*Scalar{
		stringType,
		intType,
		floatType,
		booleanType,
		idType,
	}
}

// SpecifiedScalarType returns the built-in scalar with the given name or nil.
func SpecifiedScalarType(name string) *Scalar {
	for _, scalar := range SpecifiedScalarTypes() {
		if scalar.Name() == name {
			return scalar
		}
	}
	return nil
}
