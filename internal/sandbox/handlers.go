package sandbox

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/frherrer/docvet/internal/domain"
)

// ExecHandler syntax-checks blocks by writing them to a temporary file and
// invoking an external tool in check-only mode. The block is parsed by the
// tool, never executed.
type ExecHandler struct {
	langs   []string
	tool    string
	args    []string
	suffix  string
	timeout time.Duration
	log     *logrus.Logger

	// TempDir overrides the directory for scratch files. Empty means the
	// system default.
	TempDir string

	availOnce sync.Once
	avail     bool
}

// NewExecHandler creates a handler that runs tool with args plus the scratch
// file path. The suffix is appended to scratch file names so tools that sniff
// extensions behave.
func NewExecHandler(langs []string, tool string, args []string, suffix string, timeout time.Duration, log *logrus.Logger) *ExecHandler {
	return &ExecHandler{
		langs:   langs,
		tool:    tool,
		args:    args,
		suffix:  suffix,
		timeout: timeout,
		log:     log,
	}
}

// Languages returns the fence tags this handler claims.
func (h *ExecHandler) Languages() []string {
	return h.langs
}

// Tool names the external binary and its check flags.
func (h *ExecHandler) Tool() string {
	if len(h.args) == 0 {
		return h.tool
	}
	return h.tool + " " + strings.Join(h.args, " ")
}

// Available reports whether the tool exists in PATH. The lookup happens once;
// a missing tool downgrades the language to skipped and is logged a single
// time rather than per block.
func (h *ExecHandler) Available() bool {
	h.availOnce.Do(func() {
		_, err := exec.LookPath(h.tool)
		h.avail = err == nil
		if !h.avail {
			h.log.WithFields(logrus.Fields{
				"tool":     h.tool,
				"language": h.langs[0],
			}).Warn("Check tool not found in PATH, skipping language")
		}
	})
	return h.avail
}

// Check writes body to a scratch file and runs the tool against it under the
// configured deadline. The scratch file is removed even when the tool times
// out or panics mid-check.
func (h *ExecHandler) Check(ctx context.Context, body string) domain.ExecutionResult {
	res := domain.ExecutionResult{Classification: domain.Pass}

	tmp, err := os.CreateTemp(h.TempDir, "docvet-*"+h.suffix)
	if err != nil {
		h.log.WithError(err).Warn("Cannot create scratch file, skipping block")
		res.Classification = domain.SkippedUnsupportedLanguage
		res.Detail = "scratch file: " + err.Error()
		return res
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(body); err != nil {
		tmp.Close()
		h.log.WithError(err).Warn("Cannot write scratch file, skipping block")
		res.Classification = domain.SkippedUnsupportedLanguage
		res.Detail = "scratch file: " + err.Error()
		return res
	}
	if err := tmp.Close(); err != nil {
		res.Classification = domain.SkippedUnsupportedLanguage
		res.Detail = "scratch file: " + err.Error()
		return res
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	args := make([]string, 0, len(h.args)+1)
	args = append(args, h.args...)
	args = append(args, tmp.Name())

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, h.tool, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	res.Duration = time.Since(start)
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	switch {
	case ctx.Err() == context.DeadlineExceeded:
		res.Classification = domain.Timeout
	case err == nil:
		res.Classification = domain.Pass
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.Classification = domain.SyntaxError
			res.ExitCode = exitErr.ExitCode()
		} else {
			// The tool could not be started at all. Degrade to a skip so a
			// broken environment does not fail the documentation.
			h.log.WithError(err).WithField("tool", h.tool).Warn("Check tool failed to start, skipping block")
			res.Classification = domain.SkippedUnsupportedLanguage
			res.Detail = err.Error()
		}
	}
	return res
}
