package sandbox

import (
	"context"
	"fmt"
	"strings"

	"github.com/frherrer/docvet/internal/domain"
)

// ShellHandler validates shell blocks without ever executing them. It refuses
// blocks containing destructive command patterns and flags lines with an odd
// number of quote characters.
type ShellHandler struct {
	blocked []string
}

// NewShellHandler creates a ShellHandler that skips blocks containing any of
// the given patterns.
func NewShellHandler(blocked []string) *ShellHandler {
	return &ShellHandler{blocked: blocked}
}

// Languages returns the shell fence tags.
func (h *ShellHandler) Languages() []string {
	return []string{"bash", "sh", "shell"}
}

// Tool describes the heuristic for capability listings.
func (h *ShellHandler) Tool() string {
	return "quote balance heuristic (never executed)"
}

// Available always reports true; the heuristic needs no external tool.
func (h *ShellHandler) Available() bool {
	return true
}

// Check scans the block line by line. Blank lines and comments are ignored.
// The quote count is a heuristic: it cannot see escaping or heredocs, but it
// catches the common copy-paste truncation where a closing quote is lost.
func (h *ShellHandler) Check(_ context.Context, body string) domain.ExecutionResult {
	for _, pattern := range h.blocked {
		if strings.Contains(body, pattern) {
			return domain.ExecutionResult{
				Classification: domain.SkippedPlaceholder,
				Detail:         fmt.Sprintf("contains blocked pattern %q", pattern),
			}
		}
	}

	var problems []string
	for i, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.Count(trimmed, `"`)%2 != 0 || strings.Count(trimmed, `'`)%2 != 0 {
			problems = append(problems, fmt.Sprintf("line %d: unmatched quote: %s", i+1, trimmed))
		}
	}
	if len(problems) > 0 {
		return domain.ExecutionResult{
			Classification: domain.SyntaxError,
			Stderr:         strings.Join(problems, "\n"),
		}
	}
	return domain.ExecutionResult{Classification: domain.Pass}
}
