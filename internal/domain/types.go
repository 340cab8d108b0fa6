package domain

import (
	"strings"
	"time"
)

// Document is a single markdown file under the validation root.
// It owns its spans, parsed structure, and findings; nothing outside the
// document's own validation path appends to Findings.
type Document struct {
	RelPath string // slash-separated path relative to the validation root
	AbsPath string
	Content []byte

	Spans         []Span
	Headings      []Heading
	Links         []Link
	UnclosedFence bool // document ended inside a fenced block

	Findings []Finding
}

// Span is one contiguous region of a document: either a ProseLine or a CodeBlock.
type Span interface {
	isSpan()
}

// ProseLine is a single line of text outside any fenced code block.
type ProseLine struct {
	Line int
	Text string
}

// CodeBlock is a fenced code block. StartLine and EndLine are the fence lines
// themselves; Body holds the lines between them, without the fences.
type CodeBlock struct {
	StartLine int
	EndLine   int
	Language  string // first token of the fence info string, as written
	Body      string
}

func (ProseLine) isSpan() {}
func (CodeBlock) isSpan() {}

// Heading represents a document heading.
type Heading struct {
	Level int
	Text  string
	Line  int
}

// LinkKind classifies a link by its target prefix.
type LinkKind string

const (
	LinkAnchor   LinkKind = "anchor"
	LinkExternal LinkKind = "external"
	LinkMail     LinkKind = "mail"
	LinkLocal    LinkKind = "local"
)

// Link is an inline markdown link or image reference.
type Link struct {
	Text   string
	Target string
	Line   int
	Kind   LinkKind
}

// ClassifyTarget determines the LinkKind for a raw link target.
func ClassifyTarget(target string) LinkKind {
	switch {
	case strings.HasPrefix(target, "#"):
		return LinkAnchor
	case strings.HasPrefix(target, "http://"), strings.HasPrefix(target, "https://"):
		return LinkExternal
	case strings.HasPrefix(target, "mailto:"):
		return LinkMail
	default:
		return LinkLocal
	}
}

// RootRelative reports whether a local link target resolves against the
// validation root rather than the referring document's directory.
func (l Link) RootRelative() bool {
	return strings.HasPrefix(l.Target, "/")
}

// Severity distinguishes findings that fail the run from advisory ones.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single reported issue, owned by exactly one document.
// Line is 0 when the finding applies to the document as a whole.
type Finding struct {
	Path     string
	Severity Severity
	Message  string
	Line     int
}

// AddError appends an error finding to the document.
func (d *Document) AddError(line int, message string) {
	d.Findings = append(d.Findings, Finding{
		Path:     d.RelPath,
		Severity: SeverityError,
		Message:  message,
		Line:     line,
	})
}

// AddWarning appends a warning finding to the document.
func (d *Document) AddWarning(line int, message string) {
	d.Findings = append(d.Findings, Finding{
		Path:     d.RelPath,
		Severity: SeverityWarning,
		Message:  message,
		Line:     line,
	})
}

// ErrorCount returns the number of error-severity findings.
func (d *Document) ErrorCount() int {
	n := 0
	for _, f := range d.Findings {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Classification is the outcome category of a sandboxed code-block check.
type Classification string

const (
	Pass                       Classification = "pass"
	SyntaxError                Classification = "syntax-error"
	Timeout                    Classification = "timeout"
	SkippedPlaceholder         Classification = "skipped-placeholder"
	SkippedUnsupportedLanguage Classification = "skipped-unsupported-language"
)

// ExecutionResult is the outcome of checking one code block.
// Tested marks blocks that count toward the code-blocks-tested statistic:
// blocks a handler actually engaged with, including placeholder-suppressed
// ones, but not format or unknown-language skips.
type ExecutionResult struct {
	Language       string
	Line           int // start line of the block's opening fence
	Classification Classification
	ExitCode       int
	Stdout         string
	Stderr         string
	Duration       time.Duration
	Tested         bool
	Detail         string // short reason for skips
}

// RunStatistics holds the run-wide counters. Only the aggregator mutates
// these, and only by incrementing.
type RunStatistics struct {
	FilesChecked     int
	LinksChecked     int
	CodeBlocksTested int
	Errors           int
	Warnings         int
}
