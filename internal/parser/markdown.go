package parser

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/frherrer/docvet/internal/domain"
)

// Inspect parses content as markdown and returns the document's headings and
// links in source order. Images count as links: their targets are references
// that break like any other. Autolinks are left alone; bare URLs in prose
// are not part of the checked link set.
func Inspect(content []byte) ([]domain.Heading, []domain.Link) {
	md := goldmark.New()
	reader := text.NewReader(content)
	doc := md.Parser().Parse(reader)

	var headings []domain.Heading
	var links []domain.Link

	// The visitor never returns an error, so neither does the walk.
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			headingText := extractText(node, content)
			lineNum := 0
			if node.Lines().Len() > 0 {
				lineNum = lineNumber(content, node.Lines().At(0).Start)
			} else if node.HasChildren() {
				// ATX headings carry no Lines; use the child text segment.
				if first, ok := node.FirstChild().(*ast.Text); ok {
					lineNum = lineNumber(content, first.Segment.Start)
				}
			}
			headings = append(headings, domain.Heading{
				Level: node.Level,
				Text:  headingText,
				Line:  lineNum,
			})

		case *ast.Link:
			links = append(links, newLink(node, string(node.Destination), content))

		case *ast.Image:
			links = append(links, newLink(node, string(node.Destination), content))
		}

		return ast.WalkContinue, nil
	})

	return headings, links
}

// newLink builds a Link from an inline link or image node.
func newLink(n ast.Node, target string, source []byte) domain.Link {
	return domain.Link{
		Text:   extractText(n, source),
		Target: target,
		Line:   inlineLineNumber(n, source),
		Kind:   domain.ClassifyTarget(target),
	}
}

// extractText gets the text content of an inline container node.
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.String()
}

// inlineLineNumber finds the line of an inline node through its first text
// child. Returns 0 when the node has no text (e.g. an empty label).
func inlineLineNumber(n ast.Node, source []byte) int {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			return lineNumber(source, t.Segment.Start)
		}
	}
	return 0
}

// lineNumber calculates the 1-based line number for a byte offset.
func lineNumber(content []byte, offset int) int {
	return bytes.Count(content[:offset], []byte("\n")) + 1
}
