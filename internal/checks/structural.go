package checks

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/frherrer/docvet/internal/config"
	"github.com/frherrer/docvet/internal/domain"
	"github.com/frherrer/docvet/internal/parser"
)

var todoMarkerRe = regexp.MustCompile(`TODO|FIXME|XXX`)

type dupPattern struct {
	word string
	re   *regexp.Regexp
}

// Checker runs the structural checks over a parsed document. The checks are
// independent: every one of them is evaluated even when earlier ones fail.
type Checker struct {
	maxLineLength int
	duplicates    []dupPattern
}

// NewChecker creates a Checker from the checks configuration.
func NewChecker(cfg config.ChecksConfig) *Checker {
	c := &Checker{maxLineLength: cfg.MaxLineLength}
	for _, word := range cfg.DuplicateWords {
		c.duplicates = append(c.duplicates, dupPattern{
			word: word,
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\s+` + regexp.QuoteMeta(word) + `\b`),
		})
	}
	return c
}

// Check appends structural findings to the document.
func (c *Checker) Check(doc *domain.Document) {
	c.checkHeadingCount(doc)
	c.checkEmptyLinks(doc)
	c.checkFenceParity(doc)
	c.checkHeadingHierarchy(doc)
	c.checkLineLength(doc)
	c.checkCommonIssues(doc)
}

// checkHeadingCount flags documents with more than one top-level heading.
// Exactly one finding, however many extra H1s there are.
func (c *Checker) checkHeadingCount(doc *domain.Document) {
	count := 0
	secondLine := 0
	for _, h := range doc.Headings {
		if h.Level != 1 {
			continue
		}
		count++
		if count == 2 {
			secondLine = h.Line
		}
	}
	if count > 1 {
		doc.AddError(secondLine, fmt.Sprintf("multiple top-level headings (%d found, expected one)", count))
	}
}

// checkEmptyLinks flags links with an empty target, listing their labels.
func (c *Checker) checkEmptyLinks(doc *domain.Document) {
	var labels []string
	line := 0
	for _, l := range doc.Links {
		if l.Target != "" {
			continue
		}
		labels = append(labels, l.Text)
		if line == 0 {
			line = l.Line
		}
	}
	if len(labels) > 0 {
		doc.AddError(line, fmt.Sprintf("empty links found: %s", strings.Join(labels, ", ")))
	}
}

// checkFenceParity turns the extractor's unclosed-fence flag into an error,
// citing the opening fence of the block left open.
func (c *Checker) checkFenceParity(doc *domain.Document) {
	if !doc.UnclosedFence {
		return
	}
	line := 0
	for _, b := range parser.CodeBlocks(doc.Spans) {
		line = b.StartLine
	}
	doc.AddError(line, "unclosed code block (odd number of fences)")
}

// checkHeadingHierarchy warns when a heading skips more than one level.
// The previous level always resets to the current heading, so each gap is
// reported once.
func (c *Checker) checkHeadingHierarchy(doc *domain.Document) {
	prev := 0
	for _, h := range doc.Headings {
		if prev > 0 && h.Level > prev+1 {
			doc.AddWarning(h.Line, fmt.Sprintf("skipped heading level (went from H%d to H%d)", prev, h.Level))
		}
		prev = h.Level
	}
}

// checkLineLength warns about overlong prose lines. Code blocks and the
// fence lines themselves are exempt.
func (c *Checker) checkLineLength(doc *domain.Document) {
	for _, p := range parser.ProseLines(doc.Spans) {
		length := utf8.RuneCountInString(p.Text)
		if length > c.maxLineLength {
			doc.AddWarning(p.Line, fmt.Sprintf("very long line (%d chars)", length))
		}
	}
}

// checkCommonIssues covers the advisory heuristics: immediately repeated
// words (one warning per configured word, not per occurrence) and leftover
// TODO/FIXME markers.
func (c *Checker) checkCommonIssues(doc *domain.Document) {
	content := string(doc.Content)

	for _, d := range c.duplicates {
		if d.re.MatchString(content) {
			doc.AddWarning(0, fmt.Sprintf("possible typo: duplicate %q", d.word))
		}
	}

	if n := len(todoMarkerRe.FindAllString(content, -1)); n > 0 {
		doc.AddWarning(0, fmt.Sprintf("found %d TODO/FIXME markers", n))
	}
}
