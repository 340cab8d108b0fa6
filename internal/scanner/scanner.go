package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/frherrer/docvet/internal/domain"
)

// Scanner discovers documentation files under a validation root.
type Scanner interface {
	Scan(root string, include []string, exclude []string) ([]string, error)
}

// skipDirs are dependency and version-control directories that are never
// descended into, independent of the configured exclude patterns.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
}

// FileScanner implements Scanner using filepath.WalkDir.
type FileScanner struct{}

// NewScanner creates a new FileScanner.
func NewScanner() *FileScanner {
	return &FileScanner{}
}

// Scan walks root and returns the sorted paths of files matching any include
// pattern and no exclude pattern. Paths are returned joined with root, the
// way WalkDir yields them. A missing root is a hard error: without it there
// is nothing to validate.
func (s *FileScanner) Scan(root string, include []string, exclude []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, domain.NewErrorWithSuggestion("scan", root, 0,
			"validation root does not exist",
			"pass an existing directory or set input.root in docvet.yaml",
			err)
	}
	if !info.IsDir() {
		return nil, domain.NewError("scan", root, 0, "validation root is not a directory", nil)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relPath = path
		}

		if d.IsDir() {
			if relPath == "." {
				return nil
			}
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			for _, exc := range exclude {
				if matchGlob(relPath, exc) {
					return filepath.SkipDir
				}
			}
			return nil
		}

		for _, exc := range exclude {
			if matchGlob(relPath, exc) {
				return nil
			}
		}

		for _, pattern := range include {
			if matchGlob(relPath, pattern) {
				files = append(files, path)
				return nil
			}
		}

		return nil
	})

	if err != nil {
		return nil, domain.NewError("scan", root, 0, "failed to scan directory", err)
	}

	sort.Strings(files)
	return files, nil
}

// matchGlob matches a path against a glob pattern, supporting ** for
// recursive matching. Plain patterns are tried against both the basename and
// the full relative path.
func matchGlob(path, pattern string) bool {
	if strings.Contains(pattern, "**") {
		parts := strings.SplitN(pattern, "**", 2)
		prefix := strings.TrimSuffix(parts[0], string(filepath.Separator))
		suffix := strings.TrimPrefix(parts[1], string(filepath.Separator))

		if prefix != "" {
			if !strings.HasPrefix(path, prefix) {
				return false
			}
			path = strings.TrimPrefix(path, prefix)
			path = strings.TrimPrefix(path, string(filepath.Separator))
		}

		if suffix == "" {
			return true
		}

		pathParts := strings.Split(path, string(filepath.Separator))
		for i := range pathParts {
			subPath := strings.Join(pathParts[i:], string(filepath.Separator))
			matched, _ := filepath.Match(suffix, subPath)
			if matched {
				return true
			}
		}
		return false
	}

	matched, _ := filepath.Match(pattern, filepath.Base(path))
	if matched {
		return true
	}
	matched, _ = filepath.Match(pattern, path)
	return matched
}
