package parser

import (
	"strings"

	"github.com/frherrer/docvet/internal/domain"
)

const fenceMarker = "```"

// ExtractSpans scans content line by line into an ordered sequence of prose
// and code spans. The in-code state is local to the scan, so the function is
// reentrant. It never fails: a fence still open at end of file closes the
// final block there, and the imbalance is reported through the second return
// value so no caller ever sees a truncated span.
func ExtractSpans(content string) ([]domain.Span, bool) {
	lines := strings.Split(content, "\n")

	var spans []domain.Span
	var body []string
	var block domain.CodeBlock
	inCode := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, fenceMarker) {
			if inCode {
				block.EndLine = i + 1
				block.Body = strings.Join(body, "\n")
				spans = append(spans, block)
				inCode = false
				body = nil
				continue
			}
			inCode = true
			block = domain.CodeBlock{
				StartLine: i + 1,
				Language:  fenceLanguage(trimmed),
			}
			continue
		}

		if inCode {
			body = append(body, line)
			continue
		}

		spans = append(spans, domain.ProseLine{Line: i + 1, Text: line})
	}

	if inCode {
		block.EndLine = len(lines)
		block.Body = strings.Join(body, "\n")
		spans = append(spans, block)
		return spans, true
	}

	return spans, false
}

// fenceLanguage extracts the language tag from an opening fence line: the
// first token after the backticks, or "" for a plain block.
func fenceLanguage(trimmed string) string {
	rest := strings.TrimLeft(strings.TrimPrefix(trimmed, fenceMarker), "`")
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// CodeBlocks returns just the code-block spans, in document order.
func CodeBlocks(spans []domain.Span) []domain.CodeBlock {
	var blocks []domain.CodeBlock
	for _, s := range spans {
		if b, ok := s.(domain.CodeBlock); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// ProseLines returns just the prose spans, in document order.
func ProseLines(spans []domain.Span) []domain.ProseLine {
	var lines []domain.ProseLine
	for _, s := range spans {
		if p, ok := s.(domain.ProseLine); ok {
			lines = append(lines, p)
		}
	}
	return lines
}
