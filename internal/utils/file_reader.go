package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/tsport/internal/errors"
)

// SourceReader reads declaration documents from disk, caching their contents
// until the underlying file changes.
type SourceReader struct {
	cache *FileCache[string]
}

// NewSourceReader creates a reader with an empty cache
func NewSourceReader() *SourceReader {
	return &SourceReader{cache: NewFileCache[string]()}
}

// ReadFile returns the contents of path. Failures are reported as
// file-system errors naming the cleaned path.
func (r *SourceReader) ReadFile(path string) (string, error) {
	cleanPath, err := cleanSourcePath(path)
	if err != nil {
		return "", err
	}

	if cached, ok := r.cache.Get(cleanPath); ok {
		return cached, nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", errors.WrapFileSystemError("read", cleanPath, err)
	}

	text := string(content)
	// a failed stat only costs us the cache entry
	_ = r.cache.Put(cleanPath, text)
	return text, nil
}

// Exists reports whether path names a readable regular file
func (r *SourceReader) Exists(path string) bool {
	cleanPath, err := cleanSourcePath(path)
	if err != nil {
		return false
	}
	stat, err := os.Stat(cleanPath)
	return err == nil && stat.Mode().IsRegular()
}

// InvalidateFile drops the cached contents of path
func (r *SourceReader) InvalidateFile(path string) {
	if cleanPath, err := cleanSourcePath(path); err == nil {
		r.cache.Delete(cleanPath)
	}
}

// CachedFiles returns the number of cached documents
func (r *SourceReader) CachedFiles() int {
	return r.cache.Len()
}

func cleanSourcePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.NewConfigurationError("no source file provided",
			"Pass the path of a declaration file")
	}
	return filepath.Clean(path), nil
}
