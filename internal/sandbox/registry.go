package sandbox

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/frherrer/docvet/internal/config"
	"github.com/frherrer/docvet/internal/domain"
)

// Handler checks code blocks for one language family. New languages are
// supported by registering another handler, not by touching the runner.
type Handler interface {
	// Languages returns the lowercase fence tags this handler claims.
	Languages() []string
	// Tool names what performs the check, for capability listings.
	Tool() string
	// Available reports whether the handler can run in this environment.
	Available() bool
	// Check validates a single block body.
	Check(ctx context.Context, body string) domain.ExecutionResult
}

// Registry is a thread-safe mapping from language tags to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler under each of its language tags.
func (r *Registry) Register(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, lang := range h.Languages() {
		r.handlers[strings.ToLower(lang)] = h
	}
}

// HandlerFor returns the handler registered for a language tag.
func (r *Registry) HandlerFor(lang string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[strings.ToLower(lang)]
	return h, ok
}

// Languages returns all registered tags, sorted.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	langs := make([]string, 0, len(r.handlers))
	for lang := range r.handlers {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// DefaultRegistry builds the standard registry: python, javascript, and go
// through their syntax-check tools, and the shell family through the
// no-execution heuristic.
func DefaultRegistry(cfg config.SandboxConfig, log *logrus.Logger) *Registry {
	timeout := cfg.ParsedTimeout()

	r := NewRegistry()
	r.Register(NewExecHandler([]string{"python"}, "python3", []string{"-m", "py_compile"}, ".py", timeout, log))
	r.Register(NewExecHandler([]string{"javascript", "js"}, "node", []string{"--check"}, ".js", timeout, log))
	r.Register(NewExecHandler([]string{"go", "golang"}, "gofmt", []string{"-e"}, ".go", timeout, log))
	r.Register(NewShellHandler(cfg.BlockedPatterns))
	return r
}
