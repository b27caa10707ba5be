package utils

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/toyz/tsport/internal/errors"
)

// ExpandPatterns resolves each argument against root. Arguments containing
// glob metacharacters (including **) are expanded; plain paths are returned
// as given so that missing files surface as read errors later. The result is
// deduplicated and keeps argument order, with each glob's matches sorted.
func ExpandPatterns(root string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}

	for _, pattern := range patterns {
		full := pattern
		if !filepath.IsAbs(full) {
			full = filepath.Join(root, pattern)
		}

		if !hasMeta(pattern) {
			add(filepath.Clean(full))
			continue
		}

		if !doublestar.ValidatePathPattern(full) {
			return nil, errors.NewConfigurationError("invalid glob pattern: "+pattern,
				"Check bracket and brace balance in the pattern")
		}
		matches, err := doublestar.FilepathGlob(full, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.WrapFileSystemError("glob", full, err)
		}
		sort.Strings(matches)
		for _, match := range matches {
			add(match)
		}
	}
	return paths, nil
}

// MatchesAny reports whether the slash-separated path matches any pattern
func MatchesAny(patterns []string, path string) bool {
	path = filepath.ToSlash(path)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(filepath.ToSlash(pattern), path); ok {
			return true
		}
	}
	return false
}

func hasMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// Dir returns the directory portion of path, or path when it is a directory
func Dir(path string) string {
	if stat, err := os.Stat(path); err == nil && stat.IsDir() {
		return path
	}
	return filepath.Dir(path)
}
