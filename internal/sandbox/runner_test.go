package sandbox_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/docvet/internal/config"
	"github.com/frherrer/docvet/internal/domain"
	"github.com/frherrer/docvet/internal/parser"
	"github.com/frherrer/docvet/internal/sandbox"
)

var _ = Describe("Runner", func() {
	var sandboxCfg config.SandboxConfig

	BeforeEach(func() {
		sandboxCfg = config.DefaultConfig().Sandbox
	})

	newRunner := func(handlers ...sandbox.Handler) *sandbox.Runner {
		registry := sandbox.NewRegistry()
		for _, h := range handlers {
			registry.Register(h)
		}
		return sandbox.NewRunner(registry, sandboxCfg, quietLogger())
	}

	docWith := func(content string) *domain.Document {
		doc := &domain.Document{RelPath: "doc.md", Content: []byte(content)}
		doc.Spans, doc.UnclosedFence = parser.ExtractSpans(content)
		return doc
	}

	It("should skip untagged blocks without testing them", func() {
		r := newRunner()
		doc := docWith("```\nplain\n```\n")
		results := r.CheckDocument(context.Background(), doc)
		Expect(results).To(HaveLen(1))
		Expect(results[0].Classification).To(Equal(domain.SkippedUnsupportedLanguage))
		Expect(results[0].Tested).To(BeFalse())
		Expect(results[0].Detail).To(Equal("no language tag"))
		Expect(doc.Findings).To(BeEmpty())
	})

	It("should skip data and output formats", func() {
		r := newRunner()
		doc := docWith("```json\n{}\n```\n\n```yaml\na: 1\n```\n\n```text\nhi\n```\n")
		results := r.CheckDocument(context.Background(), doc)
		Expect(results).To(HaveLen(3))
		for _, res := range results {
			Expect(res.Classification).To(Equal(domain.SkippedUnsupportedLanguage))
			Expect(res.Tested).To(BeFalse())
			Expect(res.Detail).To(Equal("non-executable format"))
		}
	})

	It("should skip languages with no registered handler", func() {
		r := newRunner()
		doc := docWith("```rust\nfn main() {}\n```\n")
		results := r.CheckDocument(context.Background(), doc)
		Expect(results[0].Classification).To(Equal(domain.SkippedUnsupportedLanguage))
		Expect(results[0].Detail).To(Equal("no handler registered"))
		Expect(results[0].Tested).To(BeFalse())
	})

	It("should skip languages whose tool is unavailable", func() {
		r := newRunner(stubHandler{langs: []string{"python"}, avail: false})
		doc := docWith("```python\nx = 1\n```\n")
		results := r.CheckDocument(context.Background(), doc)
		Expect(results[0].Classification).To(Equal(domain.SkippedUnsupportedLanguage))
		Expect(results[0].Detail).To(Equal("check tool unavailable"))
		Expect(results[0].Tested).To(BeFalse())
		Expect(doc.Findings).To(BeEmpty())
	})

	It("should suppress placeholder blocks before the handler sees them", func() {
		r := newRunner(stubHandler{
			langs: []string{"python"},
			avail: true,
			res:   domain.ExecutionResult{Classification: domain.SyntaxError, Stderr: "never reached"},
		})
		doc := docWith("```python\ntoken = \"YOUR_API_KEY\"\n```\n")
		results := r.CheckDocument(context.Background(), doc)
		Expect(results[0].Classification).To(Equal(domain.SkippedPlaceholder))
		Expect(results[0].Tested).To(BeTrue())
		Expect(results[0].Detail).To(ContainSubstring("YOUR_"))
		Expect(doc.Findings).To(BeEmpty())
	})

	It("should match lowercase placeholder markers case-insensitively", func() {
		r := newRunner(stubHandler{langs: []string{"python"}, avail: true})
		doc := docWith("```python\nurl = \"https://Example.COM/api\"\n```\n")
		results := r.CheckDocument(context.Background(), doc)
		Expect(results[0].Classification).To(Equal(domain.SkippedPlaceholder))
	})

	It("should match uppercase placeholder markers exactly", func() {
		r := newRunner(stubHandler{
			langs: []string{"python"},
			avail: true,
			res:   domain.ExecutionResult{Classification: domain.Pass},
		})
		doc := docWith("```python\ntoken = \"your_api_key\"\n```\n")
		results := r.CheckDocument(context.Background(), doc)
		Expect(results[0].Classification).To(Equal(domain.Pass))
	})

	It("should turn a syntax error into an error finding at the fence line", func() {
		r := newRunner(stubHandler{
			langs: []string{"python"},
			avail: true,
			res:   domain.ExecutionResult{Classification: domain.SyntaxError, Stderr: "bad token\n"},
		})
		doc := docWith("# T\n\n```python\ndef broken(:\n```\n")
		results := r.CheckDocument(context.Background(), doc)
		Expect(results[0].Classification).To(Equal(domain.SyntaxError))
		Expect(results[0].Tested).To(BeTrue())

		Expect(doc.Findings).To(HaveLen(1))
		Expect(doc.Findings[0].Severity).To(Equal(domain.SeverityError))
		Expect(doc.Findings[0].Line).To(Equal(3))
		Expect(doc.Findings[0].Message).To(Equal("python code syntax error:\nbad token"))
	})

	It("should fall back to stdout and then the exit code for the finding detail", func() {
		r := newRunner(stubHandler{
			langs: []string{"python"},
			avail: true,
			res:   domain.ExecutionResult{Classification: domain.SyntaxError, ExitCode: 2},
		})
		doc := docWith("```python\nx\n```\n")
		r.CheckDocument(context.Background(), doc)
		Expect(doc.Findings[0].Message).To(ContainSubstring("exit status 2"))
	})

	It("should turn a timeout into an error finding with the duration", func() {
		r := newRunner(stubHandler{
			langs: []string{"python"},
			avail: true,
			res:   domain.ExecutionResult{Classification: domain.Timeout, Duration: 1500 * time.Millisecond},
		})
		doc := docWith("```python\nwhile True: pass\n```\n")
		r.CheckDocument(context.Background(), doc)
		Expect(doc.Findings).To(HaveLen(1))
		Expect(doc.Findings[0].Message).To(Equal("python code check timed out after 1.5s"))
	})

	It("should record passes without findings", func() {
		r := newRunner(stubHandler{
			langs: []string{"python"},
			avail: true,
			res:   domain.ExecutionResult{Classification: domain.Pass},
		})
		doc := docWith("```python\nx = 1\n```\n")
		results := r.CheckDocument(context.Background(), doc)
		Expect(results[0].Classification).To(Equal(domain.Pass))
		Expect(results[0].Tested).To(BeTrue())
		Expect(doc.Findings).To(BeEmpty())
	})

	It("should normalize the language tag to lowercase in results", func() {
		r := newRunner(stubHandler{
			langs: []string{"python"},
			avail: true,
			res:   domain.ExecutionResult{Classification: domain.Pass},
		})
		doc := docWith("```Python\nx = 1\n```\n")
		results := r.CheckDocument(context.Background(), doc)
		Expect(results[0].Language).To(Equal("python"))
		Expect(results[0].Classification).To(Equal(domain.Pass))
	})

	It("should return one result per block in document order", func() {
		r := newRunner(stubHandler{
			langs: []string{"python"},
			avail: true,
			res:   domain.ExecutionResult{Classification: domain.Pass},
		})
		doc := docWith("```python\na\n```\n\n```text\nb\n```\n\n```python\nc\n```\n")
		results := r.CheckDocument(context.Background(), doc)
		Expect(results).To(HaveLen(3))
		Expect(results[0].Classification).To(Equal(domain.Pass))
		Expect(results[1].Classification).To(Equal(domain.SkippedUnsupportedLanguage))
		Expect(results[2].Classification).To(Equal(domain.Pass))
		Expect(results[0].Line).To(BeNumerically("<", results[2].Line))
	})
})
