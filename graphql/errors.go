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
)

// Sentinel errors carried in Error.Err. Test for them with errors.Is.

// Structural errors abort a schema build.
var (
	ErrDuplicateType             = errors.New("duplicate type")
	ErrDuplicateSchemaDefinition = errors.New("duplicate schema definition")
	ErrDuplicateOperationType    = errors.New("duplicate operation type")
	ErrMissingOperationType      = errors.New("missing operation type")
	ErrUnsupportedKind           = errors.New("unsupported definition kind")
	ErrInvalidFieldConfig        = errors.New("invalid field config")
	ErrNonNullOfNonNull          = errors.New("non-null of non-null")
	ErrUnknownType               = errors.New("unknown type")
	ErrInvalidScalarConfig       = errors.New("invalid scalar config")
	ErrInvalidDefaultValue       = errors.New("invalid default value")
	ErrCyclicDefaultValue        = errors.New("cyclic default value")
	ErrInvalidTypeConfig         = errors.New("invalid type config")
	ErrInvalidSchema             = errors.New("invalid schema")
)

// Extension errors abort an extend call.
var (
	ErrConflictingType        = errors.New("conflicting type")
	ErrUnknownExtensionTarget = errors.New("unknown extension target")
	ErrKindMismatch           = errors.New("extension kind mismatch")
	ErrDuplicateDirective     = errors.New("duplicate directive")
)

// Coercion errors are scoped to the value being coerced.
var (
	ErrNonNullCoercion     = errors.New("cannot coerce non-null value from null")
	ErrMissingVariable     = errors.New("missing variable")
	ErrInputObjectShape    = errors.New("input object expects an object value")
	ErrMissingNonNullField = errors.New("missing non-null field")
	ErrUnknownInputField   = errors.New("unknown input field")
	ErrEnumShape           = errors.New("enum expects an enum value")
	ErrUnknownEnumValue    = errors.New("unknown enum value")
	ErrScalarCoercion      = errors.New("scalar coercion failed")
)

// NewSchemaError creates an error of kind ErrKindSchema wrapping the sentinel cause.
func NewSchemaError(cause error, message string, args ...interface{}) error {
	return NewError(message, append([]interface{}{cause, ErrKindSchema}, args...)...)
}

// NewExtensionError creates an error of kind ErrKindExtension wrapping the sentinel cause.
func NewExtensionError(cause error, message string, args ...interface{}) error {
	return NewError(message, append([]interface{}{cause, ErrKindExtension}, args...)...)
}

// NewCoercionError creates an error of kind ErrKindCoercion wrapping the sentinel cause.
func NewCoercionError(cause error, message string, args ...interface{}) error {
	return NewError(message, append([]interface{}{cause, ErrKindCoercion}, args...)...)
}

// WithCause joins a sentinel with the error that triggered it. errors.Is matches both of them and
// the message is the one of err.
func WithCause(sentinel error, err error) error {
	return &causeError{sentinel: sentinel, err: err}
}

type causeError struct {
	sentinel error
	err      error
}

func (e *causeError) Error() string {
	return e.err.Error()
}

func (e *causeError) Unwrap() []error {
	return []error{e.sentinel, e.err}
}
