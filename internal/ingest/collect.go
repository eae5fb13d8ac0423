package ingest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/gobwas/glob"
)

// Filter decides which files found under a directory are documents.
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewFilter compiles include and exclude patterns. Patterns match
// slash-separated paths relative to the walked directory; "**" crosses
// directories. With no include patterns every file is included.
func NewFilter(include, exclude []string) (*Filter, error) {
	inc, err := compileGlobs(include)
	if err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}
	exc, err := compileGlobs(exclude)
	if err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}
	return &Filter{include: inc, exclude: exc}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		matcher, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		matchers = append(matchers, matcher)
	}
	return matchers, nil
}

// Match reports whether the relative, slash-separated path is selected.
func (f *Filter) Match(rel string) bool {
	if f == nil {
		return true
	}
	for _, g := range f.exclude {
		if g.Match(rel) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, g := range f.include {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// Collect expands roots into a sorted, de-duplicated list of file paths.
// Files named explicitly are always kept; directories are walked and their
// files kept when the include/exclude patterns select them.
func Collect(roots, include, exclude []string) ([]string, error) {
	filter, err := NewFilter(include, exclude)
	if err != nil {
		return nil, err
	}
	return filter.Collect(roots)
}

// Collect walks roots with f applied to directory contents.
func (f *Filter) Collect(roots []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(filepath.Clean(root))
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if f.Match(filepath.ToSlash(rel)) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	slices.Sort(paths)
	return paths, nil
}
