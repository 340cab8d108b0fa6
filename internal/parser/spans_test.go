package parser_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/docvet/internal/domain"
	"github.com/frherrer/docvet/internal/parser"
)

var _ = Describe("ExtractSpans", func() {
	It("should split prose and code into ordered spans", func() {
		content := "# Title\n\nbefore\n\n```go\nfmt.Println(1)\n```\n\nafter"
		spans, unclosed := parser.ExtractSpans(content)
		Expect(unclosed).To(BeFalse())

		blocks := parser.CodeBlocks(spans)
		Expect(blocks).To(HaveLen(1))
		Expect(blocks[0].StartLine).To(Equal(5))
		Expect(blocks[0].EndLine).To(Equal(7))
		Expect(blocks[0].Language).To(Equal("go"))
		Expect(blocks[0].Body).To(Equal("fmt.Println(1)"))

		prose := parser.ProseLines(spans)
		Expect(prose).To(HaveLen(6))
		Expect(prose[0]).To(Equal(domain.ProseLine{Line: 1, Text: "# Title"}))
		Expect(prose[2]).To(Equal(domain.ProseLine{Line: 3, Text: "before"}))
		Expect(prose[5]).To(Equal(domain.ProseLine{Line: 9, Text: "after"}))
	})

	It("should keep span ordering stable", func() {
		content := "a\n```\nx\n```\nb"
		spans, _ := parser.ExtractSpans(content)
		Expect(spans).To(HaveLen(3))
		Expect(spans[0]).To(BeAssignableToTypeOf(domain.ProseLine{}))
		Expect(spans[1]).To(BeAssignableToTypeOf(domain.CodeBlock{}))
		Expect(spans[2]).To(BeAssignableToTypeOf(domain.ProseLine{}))
	})

	It("should close a dangling fence at end of file and report it", func() {
		content := "intro\n```python\nx = 1"
		spans, unclosed := parser.ExtractSpans(content)
		Expect(unclosed).To(BeTrue())

		blocks := parser.CodeBlocks(spans)
		Expect(blocks).To(HaveLen(1))
		Expect(blocks[0].StartLine).To(Equal(2))
		Expect(blocks[0].EndLine).To(Equal(3))
		Expect(blocks[0].Language).To(Equal("python"))
		Expect(blocks[0].Body).To(Equal("x = 1"))
	})

	It("should take only the first token of the fence info string", func() {
		spans, _ := parser.ExtractSpans("```go title=demo linenos\ncode\n```")
		blocks := parser.CodeBlocks(spans)
		Expect(blocks).To(HaveLen(1))
		Expect(blocks[0].Language).To(Equal("go"))
	})

	It("should leave the language empty for a plain fence", func() {
		spans, _ := parser.ExtractSpans("```\ncode\n```")
		blocks := parser.CodeBlocks(spans)
		Expect(blocks).To(HaveLen(1))
		Expect(blocks[0].Language).To(Equal(""))
	})

	It("should recognize indented fences", func() {
		spans, unclosed := parser.ExtractSpans("  ```bash\n  echo hi\n  ```")
		Expect(unclosed).To(BeFalse())
		blocks := parser.CodeBlocks(spans)
		Expect(blocks).To(HaveLen(1))
		Expect(blocks[0].Language).To(Equal("bash"))
	})

	It("should handle multiple blocks back to back", func() {
		content := "```a\n1\n```\n```b\n2\n```"
		spans, unclosed := parser.ExtractSpans(content)
		Expect(unclosed).To(BeFalse())
		blocks := parser.CodeBlocks(spans)
		Expect(blocks).To(HaveLen(2))
		Expect(blocks[0].Language).To(Equal("a"))
		Expect(blocks[1].Language).To(Equal("b"))
		Expect(blocks[1].StartLine).To(Equal(4))
	})

	It("should treat empty content as a single empty prose line", func() {
		spans, unclosed := parser.ExtractSpans("")
		Expect(unclosed).To(BeFalse())
		Expect(parser.ProseLines(spans)).To(HaveLen(1))
		Expect(parser.CodeBlocks(spans)).To(BeEmpty())
	})
})
