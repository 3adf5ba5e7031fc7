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
	"context"
)

// This files contains definitions of meta-fields for accessing introspection system as per [0] and
// [1]. The fields are implicit and do not appear in any defined types. Executors take special cares
// on them (by matching the field name in the query) to execute introspection queries.
//
// [0]: https://spec.graphql.org/June2018/#sec-Type-Name-Introspection
// [1]: https://spec.graphql.org/June2018/#sec-Schema-Introspection

// List of meta-field names
const (
	SchemaMetaFieldName   = "__schema"
	TypeMetaFieldName     = "__type"
	TypenameMetaFieldName = "__typename"
)

// __schema: __Schema!
var schemaMetaField = &Field{
	name:        SchemaMetaFieldName,
	description: "Access the current type schema of this server.",
	ttype:       MustNewNonNullOf(IntrospectionTypes.Schema()),
	resolver: FieldResolverFunc(func(ctx context.Context, source interface{}, info *ResolveInfo) (interface{}, error) {
		return info.Schema, nil
	}),
}

// __type(name: String!): __Type
var typeMetaField = &Field{
	name:        TypeMetaFieldName,
	description: "Request the type information of a single type.",
	ttype:       IntrospectionTypes.Type(),
	args: []*Argument{
		{
			name:  "name",
			ttype: MustNewNonNullOf(String()),
		},
	},
	resolver: FieldResolverFunc(func(ctx context.Context, source interface{}, info *ResolveInfo) (interface{}, error) {
		name, _ := info.Args.Get("name").(string)
		if t := info.Schema.Type(name); t != nil {
			return t, nil
		}
		return nil, nil
	}),
}

// __typename: String!
var typenameMetaField = &Field{
	name:        TypenameMetaFieldName,
	description: "The name of the current Object type at runtime.",
	ttype:       MustNewNonNullOf(String()),
	resolver: FieldResolverFunc(func(ctx context.Context, source interface{}, info *ResolveInfo) (interface{}, error) {
		return info.ParentType.Name(), nil
	}),
}

// SchemaMetaField returns the definition of __schema.
func SchemaMetaField() *Field {
	return schemaMetaField
}

// TypeMetaField returns the definition of __type.
func TypeMetaField() *Field {
	return typeMetaField
}

// TypenameMetaField returns the definition of __typename.
func TypenameMetaField() *Field {
	return typenameMetaField
}

// MetaField returns the meta-field available on the parent type with the given name or nil.
// __schema and __type are only available on the query root.
func MetaField(schema *Schema, parentType Type, name string) *Field {
	switch name {
	case SchemaMetaFieldName:
		if parentType == schema.Query() {
			return schemaMetaField
		}
	case TypeMetaFieldName:
		if parentType == schema.Query() {
			return typeMetaField
		}
	case TypenameMetaFieldName:
		return typenameMetaField
	}
	return nil
}
