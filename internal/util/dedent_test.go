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

package util_test

import (
	"strings"

	"github.com/botobag/gqlcore/internal/util"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Dedent", func() {
	It("removes indentation of SDL", func() {
		output := util.Dedent(`
      type Query {
        me: User
      }

      type User {
        id: ID
      }
    `)

		Expect(output).Should(Equal(strings.Join([]string{
			"type Query {",
			"  me: User",
			"}",
			"",
			"type User {",
			"  id: ID",
			"}",
			"",
		}, "\n")))
	})

	It("removes only the first level of indentation", func() {
		output := util.Dedent(`
            qux
              quux
                quuux
    `)

		Expect(output).Should(Equal("qux\n  quux\n    quuux\n"))
	})

	It("removes indentation made of tabs", func() {
		output := util.Dedent("\n\t\ttype Query {\n\t\t  me: User\n\t\t}\n\t")
		Expect(output).Should(Equal("type Query {\n  me: User\n}\n"))
	})

	It("keeps text without indentation", func() {
		Expect(util.Dedent("")).Should(Equal(""))
		Expect(util.Dedent("\ntype Query {\n  me: User\n}\n")).Should(Equal("type Query {\n  me: User\n}\n"))
	})
})
