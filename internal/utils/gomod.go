package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// GoModParser locates and reads go.mod files. It is used to find the project
// root that relative source paths are resolved against.
type GoModParser struct {
	reader *SourceReader
}

// NewGoModParser creates a parser that shares the given reader's cache
func NewGoModParser(reader *SourceReader) *GoModParser {
	return &GoModParser{reader: reader}
}

// ParseModuleName extracts the module path declared in a go.mod file
func (p *GoModParser) ParseModuleName(goModPath string) (string, error) {
	cleanPath := filepath.Clean(goModPath)
	if filepath.Base(cleanPath) != "go.mod" {
		return "", fmt.Errorf("file is not a go.mod file: %s", goModPath)
	}

	content, err := p.reader.ReadFile(cleanPath)
	if err != nil {
		return "", err
	}

	modFile, err := modfile.ParseLax(cleanPath, []byte(content), nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse go.mod file: %w", err)
	}
	if modFile.Module == nil {
		return "", fmt.Errorf("no module declaration found in %s", cleanPath)
	}
	return modFile.Module.Mod.Path, nil
}

// FindGoModFile walks up from startDir looking for a go.mod that declares a
// module
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, "go.mod")
		if p.reader.Exists(candidate) {
			if _, err := p.ParseModuleName(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod file not found above %s", startDir)
		}
		dir = parent
	}
}

// FindProjectRoot returns the directory of the nearest go.mod above
// startDir, or startDir itself when there is none
func (p *GoModParser) FindProjectRoot(startDir string) string {
	if goMod, err := p.FindGoModFile(startDir); err == nil {
		return filepath.Dir(goMod)
	}
	if abs, err := filepath.Abs(startDir); err == nil {
		return abs
	}
	return startDir
}

// WorkingRoot resolves the project root for the current working directory
func (p *GoModParser) WorkingRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return p.FindProjectRoot(cwd)
}
