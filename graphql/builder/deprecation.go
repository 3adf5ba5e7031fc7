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
	"fmt"

	"github.com/botobag/gqlcore/graphql"
	"github.com/botobag/gqlcore/graphql/value"

	"github.com/vektah/gqlparser/v2/ast"
)

// DeprecationFor returns the deprecation declared by a @deprecated directive in the list or nil if
// the directive is absent. A directive without a reason, or with a null or invalid one, gets
// graphql.DefaultDeprecationReason.
func DeprecationFor(directives ast.DirectiveList) *graphql.Deprecation {
	deprecation, err := deprecationOf(directives)
	if err != nil {
		return &graphql.Deprecation{Reason: graphql.DefaultDeprecationReason}
	}
	return deprecation
}

func deprecationOf(directives ast.DirectiveList) (*graphql.Deprecation, error) {
	args, found, err := value.DirectiveValues(graphql.DeprecatedDirective(), directives, nil)
	if err != nil {
		return nil, graphql.NewError("Invalid @deprecated directive.",
			graphql.WithCause(graphql.ErrInvalidTypeConfig, err), graphql.ErrKindSchema)
	} else if !found {
		return nil, nil
	}

	// An absent reason has been replaced by the argument default. An explicit null also gets the
	// default; an empty string is kept.
	reason, ok := args.Get("reason").(string)
	if !ok {
		reason = graphql.DefaultDeprecationReason
	}
	return &graphql.Deprecation{Reason: reason}, nil
}

// specifiedByURLOf returns the url argument of a @specifiedBy directive in the list.
func specifiedByURLOf(def *ast.Definition, directives ast.DirectiveList) (string, error) {
	args, found, err := value.DirectiveValues(graphql.SpecifiedByDirective(), directives, nil)
	if err != nil {
		return "", graphql.NewError(fmt.Sprintf("Invalid @specifiedBy directive on scalar %s.", def.Name),
			graphql.WithCause(graphql.ErrInvalidScalarConfig, err), graphql.ErrKindSchema)
	} else if !found {
		return "", nil
	}
	url, _ := args.Get("url").(string)
	return url, nil
}
