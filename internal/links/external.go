package links

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/frherrer/docvet/internal/config"
	"github.com/frherrer/docvet/internal/domain"
)

// BrokenExternal is one failed external link: the owning document, the URL,
// and why it failed.
type BrokenExternal struct {
	Path   string
	URL    string
	Line   int
	Reason string
}

// ExternalChecker sweeps the external links of a document set with bounded
// concurrency. Each request carries its own deadline; a stalled host slows
// only its own worker, and no failure ever aborts the sweep.
type ExternalChecker struct {
	// Client issues the HEAD requests. Replaceable in tests; the default
	// carries the configured timeout and redirect bound.
	Client *http.Client

	workers int
	log     *logrus.Logger
}

// NewExternalChecker creates an ExternalChecker from the external-link
// configuration.
func NewExternalChecker(cfg config.ExternalConfig, log *logrus.Logger) *ExternalChecker {
	maxRedirects := cfg.MaxRedirects
	workers := cfg.Workers
	if workers <= 0 {
		workers = 8
	}

	client := &http.Client{
		Timeout: cfg.ParsedTimeout(),
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	return &ExternalChecker{Client: client, workers: workers, log: log}
}

// Check issues a HEAD request for every external link across docs and
// returns the failures in (document, link) order. A status of 400 or above,
// and any transport error, counts as a failure and is recorded on the owning
// document as an error finding.
func (c *ExternalChecker) Check(ctx context.Context, docs []*domain.Document) []BrokenExternal {
	type job struct {
		idx  int
		doc  *domain.Document
		url  string
		line int
	}

	var jobs []job
	for _, doc := range docs {
		for _, l := range doc.Links {
			if l.Kind == domain.LinkExternal {
				jobs = append(jobs, job{idx: len(jobs), doc: doc, url: l.Target, line: l.Line})
			}
		}
	}
	if len(jobs) == 0 {
		return nil
	}

	c.log.Debugf("Checking %d external link(s) with %d worker(s)", len(jobs), c.workers)

	// Results land in an index-addressed slice, so the fan-out needs no
	// locking and the output order stays deterministic.
	results := make([]*BrokenExternal, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for _, j := range jobs {
		j := j // per-iteration copy: required for go < 1.22 loop semantics
		g.Go(func() error {
			if reason, ok := c.head(gctx, j.url); !ok {
				results[j.idx] = &BrokenExternal{Path: j.doc.RelPath, URL: j.url, Line: j.line, Reason: reason}
			}
			return nil
		})
	}
	// Workers report failures through results, never as errors.
	_ = g.Wait()

	// Findings are appended here, after the fan-out, so documents are only
	// ever mutated from one goroutine.
	var broken []BrokenExternal
	for i, r := range results {
		if r == nil {
			continue
		}
		jobs[i].doc.AddError(r.Line, fmt.Sprintf("broken external link: %s (%s)", r.URL, r.Reason))
		broken = append(broken, *r)
	}
	return broken
}

// head performs a single bounded HEAD request. Returns ok=false with a
// human-readable reason on any failure.
func (c *ExternalChecker) head(ctx context.Context, url string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return err.Error(), false
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return err.Error(), false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Sprintf("HTTP %d", resp.StatusCode), false
	}
	return "", true
}
