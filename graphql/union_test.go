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

package graphql_test

import (
	"errors"

	"github.com/botobag/gqlcore/graphql"
	"github.com/botobag/gqlcore/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Union", func() {
	var ObjectType *graphql.Object

	BeforeEach(func() {
		ObjectType = graphql.MustNewObject(&graphql.ObjectConfig{
			Name:   "Object",
			Fields: graphql.Fields(stringField("f")),
		})
	})

	It("accepts a Union type with possible types", func() {
		union, err := graphql.NewUnion(&graphql.UnionConfig{
			Name:          "SomeUnion",
			PossibleTypes: graphql.PossibleTypes(ObjectType),
		})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(union.PossibleTypes()).Should(Equal([]*graphql.Object{ObjectType}))
		Expect(union.String()).Should(Equal("SomeUnion"))
	})

	It("resolves members lazily", func() {
		var later *graphql.Object
		union := graphql.MustNewUnion(&graphql.UnionConfig{
			Name: "Lazy",
			PossibleTypes: func() ([]*graphql.Object, error) {
				return []*graphql.Object{later}, nil
			},
		})
		later = graphql.MustNewObject(&graphql.ObjectConfig{Name: "Later"})

		members, err := union.PossibleTypes()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(members).Should(HaveLen(1))
		Expect(members[0]).Should(BeIdenticalTo(later))
	})

	It("returns the thunk error", func() {
		union := graphql.MustNewUnion(&graphql.UnionConfig{
			Name: "Broken",
			PossibleTypes: func() ([]*graphql.Object, error) {
				return nil, errors.New("no members")
			},
		})
		_, err := union.PossibleTypes()
		Expect(err).Should(MatchError("no members"))
	})

	It("rejects creating type without name", func() {
		_, err := graphql.NewUnion(&graphql.UnionConfig{})
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual("Must provide name for Union."),
			testutil.ErrIs(graphql.ErrInvalidTypeConfig),
		))
	})
})
