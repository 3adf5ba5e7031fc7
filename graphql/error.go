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
	"errors"
	"fmt"
	"log"
	"reflect"
	"runtime"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vektah/gqlparser/v2/ast"
)

// Op describes an operation, usually as the package and method, such as "builder.BuildSchema".
type Op string

// ErrKind defines the kind of error this is.
type ErrKind uint8

// Enumeration of ErrKind
const (
	ErrKindOther      ErrKind = iota // Unclassified error. This value is not printed in the error message.
	ErrKindSyntax                    // Represent a syntax error in the GraphQL source.
	ErrKindSchema                    // The schema document or type configuration is malformed.
	ErrKindExtension                 // An extension document cannot be applied to the schema.
	ErrKindCoercion                  // Failed to coerce input or result values for desired GraphQL type.
	ErrKindValidation                // Represent an error occurred when validating schema.
	ErrKindInternal                  // Internal error
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindOther:
		return "other error"
	case ErrKindSyntax:
		return "syntax error"
	case ErrKindSchema:
		return "schema error"
	case ErrKindExtension:
		return "extension error"
	case ErrKindCoercion:
		return "coercion error"
	case ErrKindValidation:
		return "validation error"
	case ErrKindInternal:
		return "internal error"
	}
	return "unknown error kind"
}

// ErrorExtensions provides an additional entry to a GraphQL error with key "extensions". It is
// useful for attaching vendor-specific error data (such as error code).
type ErrorExtensions map[string]interface{}

// ErrorLocation contains a line number and a column number to point out the beginning of an
// associated syntax element.
type ErrorLocation struct {
	// Both line and column are positive numbers starting from 1
	Line   uint
	Column uint
}

// ErrorWithLocations indicates an error that contains locations. If "locations" is not given in the
// arguments to NewError, NewError will retrieve one from the underlying error (if provided) that
// implements this interface.
type ErrorWithLocations interface {
	Locations() []ErrorLocation
}

// ErrorLocationsOf converts positions of AST nodes into locations. Nil positions are skipped.
func ErrorLocationsOf(positions ...*ast.Position) []ErrorLocation {
	var locations []ErrorLocation
	for _, pos := range positions {
		if pos == nil || pos.Line <= 0 {
			continue
		}
		locations = append(locations, ErrorLocation{
			Line:   uint(pos.Line),
			Column: uint(pos.Column),
		})
	}
	return locations
}

// An Error describes an error found while building, extending or validating a schema, or when
// coercing a value against a type. It can be serialized to JSON in the shape of a GraphQL error.
//
// Err usually holds one of the sentinel errors declared in errors.go so callers can classify the
// failure with errors.Is.
type Error struct {
	// Message describes the error for debugging purposes.
	Message string

	// Locations within the source GraphQL document which correspond to this error.
	Locations []ErrorLocation

	// Extensions contains data to be added to in the error response
	Extensions ErrorExtensions

	// The underlying error that triggered this one
	Err error

	// Op is the operation being performed, usually the name of the method being invoked.
	Op Op

	// Kind is the class of error
	Kind ErrKind
}

// Error implements Go error interface.
var _ error = (*Error)(nil)

// NewError builds an error value from arguments. Inspired by the design of upspin.io/errors [0].
// Arguments can be ErrorLocation, []ErrorLocation, *ast.Position, ErrorExtensions, error, Op and
// ErrKind.
//
// [0]: https://commandcenter.blogspot.com/2017/12/error-handling-in-upspin.html.
func NewError(message string, args ...interface{}) error {
	e := &Error{
		Message: message,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case ErrorLocation:
			e.Locations = []ErrorLocation{arg}
		case []ErrorLocation:
			e.Locations = arg
		case *ast.Position:
			e.Locations = ErrorLocationsOf(arg)

		case ErrorExtensions:
			e.Extensions = arg

		case error:
			e.Err = arg

		case Op:
			e.Op = arg

		case ErrKind:
			e.Kind = arg

		default:
			_, file, line, _ := runtime.Caller(1)
			log.Printf("NewError: bad call from %s:%d: %v", file, line, args)
			return fmt.Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	// Propagate locations, extensions and kind from underlying error when one is not provided in
	// argument.
	if e.Err != nil {
		var prev *Error
		if errors.As(e.Err, &prev) {
			if len(e.Locations) == 0 && len(prev.Locations) > 0 {
				e.Locations = append([]ErrorLocation(nil), prev.Locations...)
			}
			if e.Extensions == nil {
				e.Extensions = prev.Extensions
			}
			if e.Kind == ErrKindOther {
				e.Kind = prev.Kind
			}
		} else if prev, ok := e.Err.(ErrorWithLocations); ok && len(e.Locations) == 0 {
			e.Locations = prev.Locations()
		}
	}

	return e
}

// WrapError is a convenient wrapper to build an Error value from an underlying error with a
// message.
func WrapError(err error, message string) error {
	return NewError(message, err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Error implements Go's error interface.
func (e *Error) Error() string {
	var b strings.Builder
	e.printError(&b, nil)
	return b.String()
}

func (e *Error) printError(b *strings.Builder, nextErr *Error) {
	initialLen := b.Len()

	// pad appends str to the buffer if the buffer already has some data.
	pad := func(str string) {
		if b.Len() == initialLen {
			return
		}
		b.WriteString(str)
	}

	if len(e.Op) > 0 {
		b.WriteString(string(e.Op))
	}

	if len(e.Message) > 0 {
		pad(": ")
		b.WriteString(e.Message)
	}

	if len(e.Locations) > 0 {
		// Don't print location if the next error already did.
		if nextErr == nil || !reflect.DeepEqual(nextErr.Locations, e.Locations) {
			if b.Len() == initialLen {
				b.WriteString("At ")
			} else {
				b.WriteString(" at ")
			}
			fmt.Fprintf(b, "%+v", e.Locations)
		}
	}

	if e.Kind != ErrKindOther {
		// Don't print kind if the next error has the same kind as ours.
		if nextErr == nil || nextErr.Kind != e.Kind {
			pad(": ")
			b.WriteString(e.Kind.String())
		}
	}

	if e.Err != nil {
		if prev, ok := e.Err.(*Error); ok {
			// Indent on new line if we are cascading non-empty Error.
			pad(":\n  ")
			prev.printError(b, e)
		} else {
			pad(": ")
			b.WriteString(e.Err.Error())
		}
	}
}

// MarshalJSON serializes the error in the shape of a GraphQL response error.
func (e *Error) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigDefault.BorrowStream(nil)
	defer jsoniter.ConfigDefault.ReturnStream(stream)

	e.writeJSON(stream)
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

func (e *Error) writeJSON(stream *jsoniter.Stream) {
	stream.WriteObjectStart()

	stream.WriteObjectField("message")
	stream.WriteString(e.Message)

	if len(e.Locations) > 0 {
		stream.WriteMore()
		stream.WriteObjectField("locations")
		stream.WriteArrayStart()
		for i, location := range e.Locations {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectStart()
			stream.WriteObjectField("line")
			stream.WriteUint(location.Line)
			stream.WriteMore()
			stream.WriteObjectField("column")
			stream.WriteUint(location.Column)
			stream.WriteObjectEnd()
		}
		stream.WriteArrayEnd()
	}

	if len(e.Extensions) > 0 {
		keys := make([]string, 0, len(e.Extensions))
		for key := range e.Extensions {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		stream.WriteMore()
		stream.WriteObjectField("extensions")
		stream.WriteObjectStart()
		for i, key := range keys {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(key)
			stream.WriteVal(e.Extensions[key])
		}
		stream.WriteObjectEnd()
	}

	stream.WriteObjectEnd()
}

// Errors wraps a list of Error. Intentionally wrapped in a struct instead of a simple alias to
// []*Error to enforce error checks to use errs.HaveOccurred() instead of (errs != nil).
type Errors struct {
	Errors []*Error
}

// Emplace constructs an Error from arguments and append to the errs.
func (errs *Errors) Emplace(message string, args ...interface{}) {
	errs.Append(NewError(message, args...))
}

// Append appends errors to the list. Errors that are not *Error are wrapped into one.
func (errs *Errors) Append(e ...error) {
	for _, err := range e {
		gqlErr, ok := err.(*Error)
		if !ok {
			gqlErr = &Error{
				Message: err.Error(),
				Err:     err,
			}
		}
		errs.Errors = append(errs.Errors, gqlErr)
	}
}

// HaveOccurred returns true if some errors exist.
func (errs Errors) HaveOccurred() bool {
	return len(errs.Errors) > 0
}

// Messages returns message of every error in the list.
func (errs Errors) Messages() []string {
	messages := make([]string, len(errs.Errors))
	for i, err := range errs.Errors {
		messages[i] = err.Message
	}
	return messages
}

// MarshalJSON serializes errors into a JSON array.
func (errs Errors) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigDefault.BorrowStream(nil)
	defer jsoniter.ConfigDefault.ReturnStream(stream)

	stream.WriteArrayStart()
	for i, err := range errs.Errors {
		if i > 0 {
			stream.WriteMore()
		}
		err.writeJSON(stream)
	}
	stream.WriteArrayEnd()

	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}
