package links

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/frherrer/docvet/internal/domain"
)

// Resolver checks local links against the filesystem. Anchor, mail, and
// external links are not its concern: anchors and mail targets are never
// checked, external URLs belong to the ExternalChecker.
type Resolver struct {
	root string // absolute validation root
}

// NewResolver creates a Resolver anchored at the given validation root.
func NewResolver(root string) *Resolver {
	return &Resolver{root: root}
}

// Resolve checks every local link in the document and appends a broken-link
// error for each target that does not exist. Document-relative targets
// resolve against the document's directory, root-relative ones (leading /)
// against the validation root. A trailing #fragment is stripped before the
// existence check; the finding keeps the target as written.
func (r *Resolver) Resolve(doc *domain.Document) {
	for _, l := range doc.Links {
		if l.Kind != domain.LinkLocal || l.Target == "" {
			continue
		}

		target := l.Target
		if idx := strings.Index(target, "#"); idx >= 0 {
			target = target[:idx]
		}

		var resolved string
		if l.RootRelative() {
			resolved = filepath.Join(r.root, strings.TrimPrefix(target, "/"))
		} else {
			resolved = filepath.Join(filepath.Dir(doc.AbsPath), target)
		}

		if _, err := os.Stat(resolved); err != nil {
			doc.AddError(l.Line, fmt.Sprintf("broken link: %s -> %s", l.Target, r.displayPath(resolved)))
		}
	}
}

// displayPath renders a resolved path relative to the validation root when
// it lies underneath it, which is how documents themselves are reported.
func (r *Resolver) displayPath(resolved string) string {
	rel, err := filepath.Rel(r.root, resolved)
	if err != nil || strings.HasPrefix(rel, "..") {
		return resolved
	}
	return filepath.ToSlash(rel)
}
