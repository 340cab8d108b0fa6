package sandbox_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/docvet/internal/domain"
	"github.com/frherrer/docvet/internal/sandbox"
)

var _ = Describe("ShellHandler", func() {
	var h *sandbox.ShellHandler

	BeforeEach(func() {
		h = sandbox.NewShellHandler([]string{"rm -rf", "dd if="})
	})

	It("should claim the shell language family", func() {
		Expect(h.Languages()).To(ConsistOf("bash", "sh", "shell"))
	})

	It("should always be available", func() {
		Expect(h.Available()).To(BeTrue())
	})

	It("should pass balanced scripts", func() {
		res := h.Check(context.Background(), "echo \"hello world\"\nls -la\n")
		Expect(res.Classification).To(Equal(domain.Pass))
	})

	It("should flag lines with an odd number of double quotes", func() {
		res := h.Check(context.Background(), "echo ok\necho \"broken\n")
		Expect(res.Classification).To(Equal(domain.SyntaxError))
		Expect(res.Stderr).To(ContainSubstring("line 2: unmatched quote"))
	})

	It("should flag lines with an odd number of single quotes", func() {
		res := h.Check(context.Background(), "echo 'oops\n")
		Expect(res.Classification).To(Equal(domain.SyntaxError))
		Expect(res.Stderr).To(ContainSubstring("unmatched quote"))
	})

	It("should ignore blank lines and comments", func() {
		res := h.Check(context.Background(), "\n# don't flag this apostrophe\necho fine\n")
		Expect(res.Classification).To(Equal(domain.Pass))
	})

	It("should list every unbalanced line", func() {
		res := h.Check(context.Background(), "echo \"one\necho 'two\n")
		Expect(res.Classification).To(Equal(domain.SyntaxError))
		Expect(res.Stderr).To(ContainSubstring("line 1"))
		Expect(res.Stderr).To(ContainSubstring("line 2"))
	})

	It("should skip blocks containing blocked patterns without judging them", func() {
		res := h.Check(context.Background(), "rm -rf \"$HOME\n")
		Expect(res.Classification).To(Equal(domain.SkippedPlaceholder))
		Expect(res.Detail).To(ContainSubstring(`"rm -rf"`))
	})

	It("should match blocked patterns anywhere in the block", func() {
		res := h.Check(context.Background(), "echo start\ndd if=/dev/zero of=out\n")
		Expect(res.Classification).To(Equal(domain.SkippedPlaceholder))
	})
})
