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

// This file implements the directives included in every schema.
//
// Reference: https://spec.graphql.org/June2018/#sec-Type-System.Directives

//===----------------------------------------------------------------------------------------====//
// @skip
//===----------------------------------------------------------------------------------------====//
// The @skip directive may be provided for fields, fragment spreads, and inline fragments, and
// allows for conditional exclusion during execution as described by the if argument.

var skipDirective = MustNewDirective(&DirectiveConfig{
	Name: "skip",
	Description: "Directs the executor to skip this field or fragment when the `if` " +
		"argument is true.",
	Locations: []DirectiveLocation{
		DirectiveLocationField,
		DirectiveLocationFragmentSpread,
		DirectiveLocationInlineFragment,
	},
	Args: []*ArgumentConfig{
		{
			Name:        "if",
			Type:        MustNewNonNullOf(Boolean()),
			Description: "Skipped when true.",
		},
	},
})

// SkipDirective returns directive definition for @skip.
func SkipDirective() *Directive {
	return skipDirective
}

//===----------------------------------------------------------------------------------------====//
// @include
//===----------------------------------------------------------------------------------------====//
// The @include directive may be provided for fields, fragment spreads, and inline fragments, and
// allows for conditional inclusion during execution as described by the if argument.
//
// Reference: https://spec.graphql.org/June2018/#sec--include

var includeDirective = MustNewDirective(&DirectiveConfig{
	Name: "include",
	Description: "Directs the executor to include this field or fragment only when " +
		"the `if` argument is true.",
	Locations: []DirectiveLocation{
		DirectiveLocationField,
		DirectiveLocationFragmentSpread,
		DirectiveLocationInlineFragment,
	},
	Args: []*ArgumentConfig{
		{
			Name:        "if",
			Type:        MustNewNonNullOf(Boolean()),
			Description: "Included when true.",
		},
	},
})

// IncludeDirective returns directive definition for @include.
func IncludeDirective() *Directive {
	return includeDirective
}

//===----------------------------------------------------------------------------------------====//
// @deprecated
//===----------------------------------------------------------------------------------------====//
// The @deprecated directive is used within the type system definition language to indicate
// deprecated portions of a GraphQL service's schema, such as deprecated fields on a type or
// deprecated enum values.
//
// Reference: https://spec.graphql.org/June2018/#sec--deprecated

// DefaultDeprecationReason is a constant string used for default reason for a deprecation.
const DefaultDeprecationReason = "No longer supported"

var deprecatedDirective = MustNewDirective(&DirectiveConfig{
	Name:        "deprecated",
	Description: "Marks an element of a GraphQL schema as no longer supported.",
	Locations: []DirectiveLocation{
		DirectiveLocationFieldDefinition,
		DirectiveLocationArgumentDefinition,
		DirectiveLocationInputFieldDefinition,
		DirectiveLocationEnumValue,
	},
	Args: []*ArgumentConfig{
		{
			Name: "reason",
			Type: String(),
			Description: "Explains why this element was deprecated, usually also including a " +
				"suggestion for how to access supported similar data. Formatted using " +
				"the Markdown syntax, as specified by [CommonMark](https://commonmark.org/).",
			DefaultValue: DefaultDeprecationReason,
		},
	},
})

// DeprecatedDirective returns directive definition for @deprecated.
func DeprecatedDirective() *Directive {
	return deprecatedDirective
}

//===----------------------------------------------------------------------------------------====//
// @specifiedBy
//===----------------------------------------------------------------------------------------====//
// The @specifiedBy directive is used within the type system definition language to provide a URL
// for specifying the behavior of custom scalar types.

var specifiedByDirective = MustNewDirective(&DirectiveConfig{
	Name:        "specifiedBy",
	Description: "Exposes a URL that specifies the behavior of this scalar.",
	Locations: []DirectiveLocation{
		DirectiveLocationScalar,
	},
	Args: []*ArgumentConfig{
		{
			Name:        "url",
			Type:        MustNewNonNullOf(String()),
			Description: "The URL that specifies the behavior of this scalar.",
		},
	},
})

// SpecifiedByDirective returns directive definition for @specifiedBy.
func SpecifiedByDirective() *Directive {
	return specifiedByDirective
}

// SpecifiedDirectives returns the directives that every schema carries unless the schema defines
// its own directive of the same name.
func SpecifiedDirectives() []*Directive {
	return []*Directive{
		SkipDirective(),
		IncludeDirective(),
		DeprecatedDirective(),
		SpecifiedByDirective(),
	}
}

// IsSpecifiedDirective returns true if the directive is one of SpecifiedDirectives.
func IsSpecifiedDirective(directive *Directive) bool {
	for _, d := range SpecifiedDirectives() {
		if d == directive {
			return true
		}
	}
	return false
}
