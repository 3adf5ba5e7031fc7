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
	"context"

	"github.com/botobag/gqlcore/graphql"
	"github.com/botobag/gqlcore/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Interface", func() {
	It("defines an interface with fields and a type resolver", func() {
		var dog *graphql.Object

		pet := graphql.MustNewInterface(&graphql.InterfaceConfig{
			Name:        "Pet",
			Description: "A pet",
			Fields:      graphql.Fields(stringField("name")),
			TypeResolver: graphql.TypeResolverFunc(func(ctx context.Context, value interface{}, info *graphql.ResolveInfo) (*graphql.Object, error) {
				return dog, nil
			}),
		})

		dog = graphql.MustNewObject(&graphql.ObjectConfig{
			Name:       "Dog",
			Interfaces: graphql.Interfaces(pet),
			Fields:     graphql.Fields(stringField("name")),
		})

		Expect(pet.Name()).Should(Equal("Pet"))
		Expect(pet.Description()).Should(Equal("A pet"))
		Expect(pet.String()).Should(Equal("Pet"))

		fields, err := pet.Fields()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(fieldNames(fields)).Should(Equal([]string{"name"}))

		Expect(pet.TypeResolver().ResolveType(context.Background(), nil, nil)).Should(BeIdenticalTo(dog))
	})

	It("implements other interfaces", func() {
		node := graphql.MustNewInterface(&graphql.InterfaceConfig{
			Name:   "Node",
			Fields: graphql.Fields(&graphql.FieldConfig{Name: "id", Type: graphql.MustNewNonNullOf(graphql.ID())}),
		})
		resource := graphql.MustNewInterface(&graphql.InterfaceConfig{
			Name:       "Resource",
			Interfaces: graphql.Interfaces(node),
			Fields:     graphql.Fields(&graphql.FieldConfig{Name: "id", Type: graphql.MustNewNonNullOf(graphql.ID())}),
		})

		Expect(resource.Interfaces()).Should(Equal([]*graphql.Interface{node}))
		Expect(resource.Implements(node)).Should(BeTrue())
		Expect(node.Implements(resource)).Should(BeFalse())
	})

	It("rejects creating type without name", func() {
		_, err := graphql.NewInterface(&graphql.InterfaceConfig{})
		Expect(err).Should(testutil.MatchGraphQLError(
			testutil.MessageEqual("Must provide name for Interface."),
			testutil.ErrIs(graphql.ErrInvalidTypeConfig),
		))

		Expect(func() {
			graphql.MustNewInterface(&graphql.InterfaceConfig{})
		}).Should(Panic())
	})
})
