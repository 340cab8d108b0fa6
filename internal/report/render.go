package report

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/fatih/color"

	"github.com/frherrer/docvet/internal/domain"
)

const reportTemplate = `==================================================
{{bold "DOCUMENTATION CHECK RESULTS"}}
==================================================
Files checked:      {{.Stats.FilesChecked}}
Links checked:      {{.Stats.LinksChecked}}
Code blocks tested: {{.Stats.CodeBlocksTested}}
{{- if .Errors}}

{{red (printf "ERRORS (%d):" .Stats.Errors)}}
{{- range .Errors}}
  {{bold .Path}}
{{- range .Findings}}
    {{red "✗"}} {{describe .}}
{{- end}}
{{- end}}
{{- end}}
{{- if .Warnings}}

{{yellow (printf "WARNINGS (%d):" .Stats.Warnings)}}
{{- range .Warnings}}
  {{bold .Path}}
{{- range .Findings}}
    {{yellow "!"}} {{describe .}}
{{- end}}
{{- end}}
{{- end}}

==================================================
{{.Verdict}}
`

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs()).Parse(reportTemplate))

// docFindings groups the findings of one severity for one document.
type docFindings struct {
	Path     string
	Findings []domain.Finding
}

type reportData struct {
	Stats    domain.RunStatistics
	Errors   []docFindings
	Warnings []docFindings
	Verdict  string
}

func reportFuncs() template.FuncMap {
	return template.FuncMap{
		"red":    color.New(color.FgRed).SprintFunc(),
		"yellow": color.New(color.FgYellow).SprintFunc(),
		"bold":   color.New(color.Bold).SprintFunc(),
		"describe": func(f domain.Finding) string {
			msg := f.Message
			if f.Line > 0 {
				msg = fmt.Sprintf("line %d: %s", f.Line, msg)
			}
			// Continuation lines of multi-line messages stay aligned under
			// the first line.
			return strings.ReplaceAll(msg, "\n", "\n      ")
		},
	}
}

// Render writes the human-readable report for s to w. Documents appear in
// discovery order, findings within a document in detection order, errors
// before warnings.
func Render(w io.Writer, s *Summary) error {
	if err := reportTmpl.Execute(w, buildData(s)); err != nil {
		return domain.NewError("report", "", 0, "failed to render report", err)
	}
	return nil
}

func buildData(s *Summary) reportData {
	data := reportData{Stats: s.Stats}
	for _, doc := range s.Documents {
		if errs := bySeverity(doc, domain.SeverityError); len(errs) > 0 {
			data.Errors = append(data.Errors, docFindings{Path: doc.RelPath, Findings: errs})
		}
		if warns := bySeverity(doc, domain.SeverityWarning); len(warns) > 0 {
			data.Warnings = append(data.Warnings, docFindings{Path: doc.RelPath, Findings: warns})
		}
	}
	if s.Success() {
		data.Verdict = color.GreenString("✓ All documentation checks passed")
	} else {
		data.Verdict = color.RedString("✗ %d error(s) found", s.Stats.Errors)
	}
	return data
}

func bySeverity(doc *domain.Document, sev domain.Severity) []domain.Finding {
	var out []domain.Finding
	for _, f := range doc.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}
