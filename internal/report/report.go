package report

import (
	"github.com/frherrer/docvet/internal/domain"
)

// Summary is the aggregated outcome of one validation run.
type Summary struct {
	Documents []*domain.Document
	Stats     domain.RunStatistics
}

// Aggregate folds per-document findings and code-check results into a
// Summary. It runs single-threaded after all concurrent work has finished
// and is the only writer of the statistics.
func Aggregate(docs []*domain.Document, results [][]domain.ExecutionResult) *Summary {
	s := &Summary{Documents: docs}
	s.Stats.FilesChecked = len(docs)

	for _, doc := range docs {
		s.Stats.LinksChecked += len(doc.Links)
		for _, f := range doc.Findings {
			switch f.Severity {
			case domain.SeverityError:
				s.Stats.Errors++
			case domain.SeverityWarning:
				s.Stats.Warnings++
			}
		}
	}
	for _, docResults := range results {
		for _, r := range docResults {
			if r.Tested {
				s.Stats.CodeBlocksTested++
			}
		}
	}
	return s
}

// Success reports whether the run passed. Warnings never fail a run.
func (s *Summary) Success() bool {
	return s.Stats.Errors == 0
}
