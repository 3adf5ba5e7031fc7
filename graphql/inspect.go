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
	"io"
	"reflect"
	"runtime"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vektah/gqlparser/v2/ast"
)

// ValueWithCustomInspect provides custom inspect function to serialize value in Inspect.
type ValueWithCustomInspect interface {
	Inspect(out io.Writer) error
}

// InspectTo prints Go values v to out in a format close to graphql-js's inspect function. It is
// used to print values in error messages. Map keys are printed in sorted order.
func InspectTo(out io.Writer, v interface{}) error {
	switch v := v.(type) {
	case ValueWithCustomInspect:
		return v.Inspect(out)
	case Type:
		_, err := io.WriteString(out, v.String())
		return err
	case *ast.Value:
		if v == nil {
			_, err := io.WriteString(out, "null")
			return err
		}
		_, err := io.WriteString(out, v.String())
		return err
	}

	value := reflect.ValueOf(v)
	switch value.Kind() {
	case reflect.String:
		s, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(value.String())
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, s)
		return err

	case reflect.Func:
		f := runtime.FuncForPC(value.Pointer())
		_, err := fmt.Fprintf(out, "[function %s]", f.Name())
		return err

	case reflect.Array, reflect.Slice:
		io.WriteString(out, "[")
		for i := 0; i < value.Len(); i++ {
			if i > 0 {
				io.WriteString(out, ", ")
			}
			if err := InspectTo(out, value.Index(i).Interface()); err != nil {
				return err
			}
		}
		io.WriteString(out, "]")

	case reflect.Map:
		if value.Len() == 0 {
			io.WriteString(out, "{}")
			return nil
		}

		keys := value.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})

		io.WriteString(out, "{ ")
		for i, key := range keys {
			if i > 0 {
				io.WriteString(out, ", ")
			}
			fmt.Fprint(out, key.Interface())
			io.WriteString(out, ": ")
			if err := InspectTo(out, value.MapIndex(key).Interface()); err != nil {
				return err
			}
		}
		io.WriteString(out, " }")

	case reflect.Struct:
		typ := value.Type()
		if typ.NumField() == 0 {
			io.WriteString(out, "{}")
			return nil
		}

		io.WriteString(out, "{ ")
		for i := 0; i < typ.NumField(); i++ {
			if i > 0 {
				io.WriteString(out, ", ")
			}
			io.WriteString(out, typ.Field(i).Name)
			io.WriteString(out, ": ")
			field := value.Field(i)
			if !field.CanInterface() {
				io.WriteString(out, "<unexported>")
				continue
			}
			if err := InspectTo(out, field.Interface()); err != nil {
				return err
			}
		}
		io.WriteString(out, " }")

	case reflect.Ptr, reflect.Interface:
		if value.IsNil() {
			io.WriteString(out, "null")
			return nil
		}
		return InspectTo(out, value.Elem().Interface())

	case reflect.Invalid:
		io.WriteString(out, "null")

	default:
		if _, err := fmt.Fprint(out, v); err != nil {
			return err
		}
	}

	return nil
}

// Inspect calls InspectTo but panics on error.
func Inspect(v interface{}) string {
	var buf strings.Builder
	if err := InspectTo(&buf, v); err != nil {
		panic(fmt.Sprintf("inspect %+v with error: %s", v, err))
	}
	return buf.String()
}
