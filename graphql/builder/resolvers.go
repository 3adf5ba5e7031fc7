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

package builder

import (
	"context"
	"fmt"
	"sort"

	"github.com/botobag/gqlcore/graphql"

	"github.com/vektah/gqlparser/v2/ast"
)

// Keys recognized in a field config record.
const (
	FieldConfigResolve           = "resolve"
	FieldConfigDescription       = "description"
	FieldConfigDeprecationReason = "deprecationReason"
)

// Keys of type-level entries in a ResolverMap.
const (
	IsTypeOfKey     = "__isTypeOf"
	ResolveTypeKey  = "__resolveType"
	SerializeKey    = "__serialize"
	ParseValueKey   = "__parseValue"
	ParseLiteralKey = "__parseLiteral"
)

// FieldConfigRecord is the shape of a field entry in a ResolverMap. The "resolve" key holds a
// graphql.FieldResolver or a function with the signature of graphql.FieldResolverFunc.
type FieldConfigRecord = map[string]interface{}

// applyFieldConfig merges the record for typeName.fieldName into config.
func applyFieldConfig(config *graphql.FieldConfig, typeName string, record interface{}) error {
	pos := fieldPosition(config.ASTNode)

	fields, ok := record.(map[string]interface{})
	if !ok {
		return graphql.NewSchemaError(graphql.ErrInvalidFieldConfig,
			fmt.Sprintf("%s.%s field config must be an object but got: %s.",
				typeName, config.Name, graphql.Inspect(record)), pos)
	}

	if _, exists := fields["isDeprecated"]; exists {
		return graphql.NewSchemaError(graphql.ErrInvalidFieldConfig,
			fmt.Sprintf(`%s.%s should provide "deprecationReason" instead of "isDeprecated".`,
				typeName, config.Name), pos)
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v := fields[key]
		switch key {
		case FieldConfigResolve:
			resolver, ok := fieldResolverOf(v)
			if !ok {
				return graphql.NewSchemaError(graphql.ErrInvalidFieldConfig,
					fmt.Sprintf("%s.%s field resolver must be a function but got: %s.",
						typeName, config.Name, graphql.Inspect(v)), pos)
			}
			config.Resolver = resolver

		case FieldConfigDescription:
			description, ok := v.(string)
			if !ok {
				return graphql.NewSchemaError(graphql.ErrInvalidFieldConfig,
					fmt.Sprintf("%s.%s description must be a string but got: %s.",
						typeName, config.Name, graphql.Inspect(v)), pos)
			}
			config.Description = description

		case FieldConfigDeprecationReason:
			reason, ok := v.(string)
			if !ok {
				return graphql.NewSchemaError(graphql.ErrInvalidFieldConfig,
					fmt.Sprintf("%s.%s deprecationReason must be a string but got: %s.",
						typeName, config.Name, graphql.Inspect(v)), pos)
			}
			config.Deprecation = &graphql.Deprecation{Reason: reason}

		default:
			return graphql.NewSchemaError(graphql.ErrInvalidFieldConfig,
				fmt.Sprintf(`%s.%s field config has unknown key "%s".`, typeName, config.Name, key), pos)
		}
	}

	return nil
}

func fieldPosition(node *ast.FieldDefinition) *ast.Position {
	if node == nil {
		return nil
	}
	return node.Position
}

func fieldResolverOf(v interface{}) (graphql.FieldResolver, bool) {
	switch v := v.(type) {
	case graphql.FieldResolver:
		return v, true
	case func(ctx context.Context, source interface{}, info *graphql.ResolveInfo) (interface{}, error):
		return graphql.FieldResolverFunc(v), true
	}
	return nil, false
}

func typeResolverOf(v interface{}) (graphql.TypeResolver, bool) {
	switch v := v.(type) {
	case graphql.TypeResolver:
		return v, true
	case func(ctx context.Context, value interface{}, info *graphql.ResolveInfo) (*graphql.Object, error):
		return graphql.TypeResolverFunc(v), true
	}
	return nil, false
}

func isTypeOfPredicateOf(v interface{}) (graphql.IsTypeOfPredicate, bool) {
	switch v := v.(type) {
	case graphql.IsTypeOfPredicate:
		return v, true
	case func(ctx context.Context, value interface{}, info *graphql.ResolveInfo) (bool, error):
		return graphql.IsTypeOfPredicateFunc(v), true
	}
	return nil, false
}

// resolveTypeHook extracts the "__resolveType" entry for an abstract type.
func resolveTypeHook(def *ast.Definition, resolvers map[string]interface{}) (graphql.TypeResolver, error) {
	v, exists := resolvers[ResolveTypeKey]
	if !exists {
		return nil, nil
	}
	resolver, ok := typeResolverOf(v)
	if !ok {
		return nil, graphql.NewSchemaError(graphql.ErrInvalidTypeConfig,
			fmt.Sprintf("%s.%s must be a type resolver but got: %s.",
				def.Name, ResolveTypeKey, graphql.Inspect(v)), def.Position)
	}
	return resolver, nil
}

// isTypeOfHook extracts the "__isTypeOf" entry for an object.
func isTypeOfHook(def *ast.Definition, resolvers map[string]interface{}) (graphql.IsTypeOfPredicate, error) {
	v, exists := resolvers[IsTypeOfKey]
	if !exists {
		return nil, nil
	}
	predicate, ok := isTypeOfPredicateOf(v)
	if !ok {
		return nil, graphql.NewSchemaError(graphql.ErrInvalidTypeConfig,
			fmt.Sprintf("%s.%s must be a predicate but got: %s.",
				def.Name, IsTypeOfKey, graphql.Inspect(v)), def.Position)
	}
	return predicate, nil
}

// scalarHooks fills the coercion functions of a scalar config from its resolvers.
func scalarHooks(config *graphql.ScalarConfig, def *ast.Definition, resolvers map[string]interface{}) error {
	invalid := func(key string, v interface{}) error {
		return graphql.NewSchemaError(graphql.ErrInvalidScalarConfig,
			fmt.Sprintf("%s.%s has unexpected type %T.", def.Name, key, v), def.Position)
	}

	for key, v := range resolvers {
		switch key {
		case SerializeKey:
			switch f := v.(type) {
			case graphql.SerializeFunc:
				config.Serialize = f
			case func(interface{}) (interface{}, error):
				config.Serialize = f
			default:
				return invalid(key, v)
			}

		case ParseValueKey:
			switch f := v.(type) {
			case graphql.ParseValueFunc:
				config.ParseValue = f
			case func(interface{}) (interface{}, error):
				config.ParseValue = f
			default:
				return invalid(key, v)
			}

		case ParseLiteralKey:
			switch f := v.(type) {
			case graphql.ParseLiteralFunc:
				config.ParseLiteral = f
			case func(*ast.Value) (interface{}, error):
				config.ParseLiteral = f
			default:
				return invalid(key, v)
			}

		default:
			return graphql.NewSchemaError(graphql.ErrInvalidScalarConfig,
				fmt.Sprintf(`Scalar %s has unknown resolver key "%s".`, def.Name, key), def.Position)
		}
	}

	return nil
}
