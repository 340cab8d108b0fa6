package engine

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/frherrer/docvet/internal/checks"
	"github.com/frherrer/docvet/internal/config"
	"github.com/frherrer/docvet/internal/domain"
	"github.com/frherrer/docvet/internal/links"
	"github.com/frherrer/docvet/internal/parser"
	"github.com/frherrer/docvet/internal/report"
	"github.com/frherrer/docvet/internal/sandbox"
	"github.com/frherrer/docvet/internal/scanner"
)

// Engine is the top-level orchestrator.
type Engine interface {
	Run(ctx context.Context, cfg *config.Config) (*report.Summary, error)
}

// DefaultEngine implements Engine by wiring all components together.
type DefaultEngine struct {
	scanner  scanner.Scanner
	checker  *checks.Checker
	resolver *links.Resolver
	runner   *sandbox.Runner
	external *links.ExternalChecker
	log      *logrus.Logger
}

// NewEngine creates a new DefaultEngine with all dependencies.
func NewEngine(
	s scanner.Scanner,
	c *checks.Checker,
	r *links.Resolver,
	run *sandbox.Runner,
	ext *links.ExternalChecker,
	log *logrus.Logger,
) *DefaultEngine {
	return &DefaultEngine{
		scanner:  s,
		checker:  c,
		resolver: r,
		runner:   run,
		external: ext,
		log:      log,
	}
}

// Run executes the full pipeline: scan, then per-document parse and check
// over a bounded worker pool, then the optional external-link sweep, then
// aggregation. Findings do not fail the run; only pipeline failures (an
// unreadable root, no documents, an unreadable file) produce an error.
func (e *DefaultEngine) Run(ctx context.Context, cfg *config.Config) (*report.Summary, error) {
	// Step 1: Scan for documentation files
	e.log.Debugf("Scanning directory: %s", cfg.Input.Root)
	files, err := e.scanner.Scan(cfg.Input.Root, cfg.Input.Include, cfg.Input.Exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewErrorWithSuggestion("scan", cfg.Input.Root, 0,
			"no documentation files found",
			"check input.root and input.include in docvet.yaml",
			nil)
	}
	e.log.Infof("Found %d documentation file(s)", len(files))

	// Step 2: Parse and check each file over a bounded pool. Results are
	// index-addressed so workers never share state.
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	docs := make([]*domain.Document, len(files))
	execResults := make([][]domain.ExecutionResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		i, path := i, path // per-iteration copies: required for go < 1.22 loop semantics
		g.Go(func() error {
			doc, results, err := e.processFile(gctx, cfg, path)
			if err != nil {
				return err
			}
			docs[i] = doc
			execResults[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Step 3: Sweep external links when requested
	if cfg.CheckLinks {
		broken := e.external.Check(ctx, docs)
		if len(broken) > 0 {
			e.log.Warnf("Found %d broken external link(s)", len(broken))
		}
	}

	// Step 4: Aggregate
	summary := report.Aggregate(docs, execResults)
	e.log.Infof("Checked %d file(s): %d error(s), %d warning(s)",
		summary.Stats.FilesChecked, summary.Stats.Errors, summary.Stats.Warnings)
	return summary, nil
}

func (e *DefaultEngine) processFile(ctx context.Context, cfg *config.Config, path string) (*domain.Document, []domain.ExecutionResult, error) {
	e.log.Debugf("Processing: %s", path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, domain.NewErrorWithSuggestion("check", path, 0,
			"failed to read file",
			"check that the file exists and has read permissions",
			err)
	}

	rel, err := filepath.Rel(cfg.Input.Root, path)
	if err != nil {
		rel = path
	}

	doc := &domain.Document{
		RelPath: filepath.ToSlash(rel),
		AbsPath: path,
		Content: content,
	}
	doc.Spans, doc.UnclosedFence = parser.ExtractSpans(string(content))
	doc.Headings, doc.Links = parser.Inspect(content)

	e.checker.Check(doc)
	e.resolver.Resolve(doc)

	var results []domain.ExecutionResult
	if cfg.ExecuteExamples {
		results = e.runner.CheckDocument(ctx, doc)
	}
	return doc, results, nil
}
