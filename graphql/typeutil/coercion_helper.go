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

// Package typeutil provides helpers for implementing coercion of scalar values.
package typeutil

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
)

// PrimitiveKind classifies a Go value for scalar coercion.
type PrimitiveKind uint8

// Enumeration of PrimitiveKind. Go has many integer and float types; coercers for built-in scalars
// only need to know which family a value belongs to.
const (
	InvalidPrimitive PrimitiveKind = iota // not a primitive value (struct, map, slice, ...)
	NilPrimitive                          // nil or nil pointer
	BoolPrimitive
	IntPrimitive  // int, int8, int16, int32, int64
	UintPrimitive // uint, uint8, uint16, uint32, uint64, uintptr
	FloatPrimitive
	NaNPrimitive // float NaN
	InfPrimitive // float +Inf and -Inf
	StringPrimitive
)

// Primitive is the normalized form of a scalar Go value. Only the field matching Kind is set.
type Primitive struct {
	Kind   PrimitiveKind
	Bool   bool
	Int    int64
	Uint   uint64
	Float  float64
	String string
}

// PrimitiveOf normalizes value. Pointers are dereferenced and named types (e.g., "type Celsius
// float64") are classified by their underlying kind. A json.Number is classified as an integer when
// it has no fraction and as a float otherwise.
func PrimitiveOf(value interface{}) Primitive {
	switch value := value.(type) {
	case nil:
		return Primitive{Kind: NilPrimitive}
	case bool:
		return Primitive{Kind: BoolPrimitive, Bool: value}
	case int:
		return Primitive{Kind: IntPrimitive, Int: int64(value)}
	case int32:
		return Primitive{Kind: IntPrimitive, Int: int64(value)}
	case int64:
		return Primitive{Kind: IntPrimitive, Int: value}
	case float64:
		return floatPrimitive(value)
	case string:
		return Primitive{Kind: StringPrimitive, String: value}
	case json.Number:
		if i, err := value.Int64(); err == nil {
			return Primitive{Kind: IntPrimitive, Int: i}
		}
		if f, err := value.Float64(); err == nil {
			return floatPrimitive(f)
		}
		return Primitive{Kind: StringPrimitive, String: value.String()}
	}

	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return Primitive{Kind: NilPrimitive}
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Bool:
		return Primitive{Kind: BoolPrimitive, Bool: v.Bool()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Primitive{Kind: IntPrimitive, Int: v.Int()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Primitive{Kind: UintPrimitive, Uint: v.Uint()}
	case reflect.Float32, reflect.Float64:
		return floatPrimitive(v.Float())
	case reflect.String:
		return Primitive{Kind: StringPrimitive, String: v.String()}
	}

	return Primitive{Kind: InvalidPrimitive}
}

func floatPrimitive(f float64) Primitive {
	if math.IsNaN(f) {
		return Primitive{Kind: NaNPrimitive, Float: f}
	} else if math.IsInf(f, 0) {
		return Primitive{Kind: InfPrimitive, Float: f}
	}
	return Primitive{Kind: FloatPrimitive, Float: f}
}

// IsNumeric returns true for integers and finite floats.
func (p Primitive) IsNumeric() bool {
	switch p.Kind {
	case IntPrimitive, UintPrimitive, FloatPrimitive:
		return true
	}
	return false
}

// ParseNumber converts a numeric string into a primitive. The second result is false if s is empty
// or not a number. Strings that parse to NaN or Inf are rejected.
func ParseNumber(s string) (Primitive, bool) {
	if len(s) == 0 {
		return Primitive{}, false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Primitive{Kind: IntPrimitive, Int: i}, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Primitive{}, false
	}
	return Primitive{Kind: FloatPrimitive, Float: f}, true
}

// ToFloat64 returns the numeric value of p as float64. It is only meaningful when p.IsNumeric().
func (p Primitive) ToFloat64() float64 {
	switch p.Kind {
	case IntPrimitive:
		return float64(p.Int)
	case UintPrimitive:
		return float64(p.Uint)
	}
	return p.Float
}
