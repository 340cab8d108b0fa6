package sandbox

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/frherrer/docvet/internal/config"
	"github.com/frherrer/docvet/internal/domain"
	"github.com/frherrer/docvet/internal/parser"
)

// nonExecutable are fence tags that declare data or captured output. Blocks
// carrying them are never dispatched to a handler.
var nonExecutable = map[string]bool{
	"text":     true,
	"plain":    true,
	"markdown": true,
	"md":       true,
	"json":     true,
	"yaml":     true,
	"yml":      true,
	"output":   true,
	"console":  true,
}

// Runner checks the code blocks of a document through the language registry
// and records syntax failures and timeouts as error findings on the document.
type Runner struct {
	registry *Registry
	markers  []string
	log      *logrus.Logger
}

// NewRunner creates a Runner using the given registry and the placeholder
// markers from the sandbox configuration.
func NewRunner(registry *Registry, cfg config.SandboxConfig, log *logrus.Logger) *Runner {
	return &Runner{
		registry: registry,
		markers:  cfg.PlaceholderMarkers,
		log:      log,
	}
}

// Registry exposes the language registry, for capability listings.
func (r *Runner) Registry() *Registry {
	return r.registry
}

// CheckDocument runs every code block of doc through its handler and returns
// one result per block, in document order. Skipped blocks produce no finding;
// syntax errors and timeouts are appended to the document as errors.
func (r *Runner) CheckDocument(ctx context.Context, doc *domain.Document) []domain.ExecutionResult {
	blocks := parser.CodeBlocks(doc.Spans)
	results := make([]domain.ExecutionResult, 0, len(blocks))
	for _, block := range blocks {
		res := r.checkBlock(ctx, block)
		switch res.Classification {
		case domain.SyntaxError:
			doc.AddError(block.StartLine, syntaxMessage(res))
		case domain.Timeout:
			doc.AddError(block.StartLine, timeoutMessage(res))
		}
		results = append(results, res)
	}
	return results
}

func (r *Runner) checkBlock(ctx context.Context, block domain.CodeBlock) domain.ExecutionResult {
	lang := strings.ToLower(block.Language)
	skip := func(class domain.Classification, detail string) domain.ExecutionResult {
		return finish(domain.ExecutionResult{
			Language:       lang,
			Line:           block.StartLine,
			Classification: class,
			Detail:         detail,
		})
	}

	if lang == "" {
		return skip(domain.SkippedUnsupportedLanguage, "no language tag")
	}
	if nonExecutable[lang] {
		return skip(domain.SkippedUnsupportedLanguage, "non-executable format")
	}

	handler, ok := r.registry.HandlerFor(lang)
	if !ok {
		r.log.WithFields(logrus.Fields{"language": lang, "line": block.StartLine}).
			Debug("No handler for language, skipping block")
		return skip(domain.SkippedUnsupportedLanguage, "no handler registered")
	}
	if !handler.Available() {
		return skip(domain.SkippedUnsupportedLanguage, "check tool unavailable")
	}
	if marker, found := r.placeholder(block.Body); found {
		return skip(domain.SkippedPlaceholder, fmt.Sprintf("contains placeholder %q", marker))
	}

	res := handler.Check(ctx, block.Body)
	res.Language = lang
	res.Line = block.StartLine
	return finish(res)
}

// placeholder reports whether the body contains a configured marker. Markers
// written in lowercase match case-insensitively; markers with uppercase
// letters match exactly.
func (r *Runner) placeholder(body string) (string, bool) {
	lower := strings.ToLower(body)
	for _, marker := range r.markers {
		if strings.ToLower(marker) == marker {
			if strings.Contains(lower, marker) {
				return marker, true
			}
		} else if strings.Contains(body, marker) {
			return marker, true
		}
	}
	return "", false
}

// finish derives the Tested flag. A block counts as tested unless nothing
// could look at it at all.
func finish(res domain.ExecutionResult) domain.ExecutionResult {
	res.Tested = res.Classification != domain.SkippedUnsupportedLanguage
	return res
}

func syntaxMessage(res domain.ExecutionResult) string {
	detail := strings.TrimSpace(res.Stderr)
	if detail == "" {
		detail = strings.TrimSpace(res.Stdout)
	}
	if detail == "" {
		detail = fmt.Sprintf("exit status %d", res.ExitCode)
	}
	return fmt.Sprintf("%s code syntax error:\n%s", res.Language, detail)
}

func timeoutMessage(res domain.ExecutionResult) string {
	return fmt.Sprintf("%s code check timed out after %s", res.Language, res.Duration.Round(time.Millisecond))
}
