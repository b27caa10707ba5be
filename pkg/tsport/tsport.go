// Package tsport translates TypeScript-style interface declarations into
// interface descriptors and definitions ready for code emitters.
package tsport

import (
	"path/filepath"
	"strings"

	"github.com/toyz/tsport/internal/assembler"
	"github.com/toyz/tsport/internal/errors"
	"github.com/toyz/tsport/internal/grammar"
	"github.com/toyz/tsport/internal/mapper"
	"github.com/toyz/tsport/internal/models"
	"github.com/toyz/tsport/internal/utils"
)

// Option configures a translation
type Option func(*settings)

type settings struct {
	serde    bool
	strict   bool
	root     string
	filename string
	reader   *utils.SourceReader
}

// WithSerde appends serde::Serialize and serde::Deserialize to the derives
// of every interface that does not opt out with skip_derive_serde
func WithSerde(enabled bool) Option {
	return func(s *settings) { s.serde = enabled }
}

// WithStrict rejects named type references that do not match a translated
// interface
func WithStrict(enabled bool) Option {
	return func(s *settings) { s.strict = enabled }
}

// WithRoot sets the directory Import resolves relative paths against
func WithRoot(dir string) Option {
	return func(s *settings) { s.root = dir }
}

// WithFilename names inline text in error locations
func WithFilename(name string) Option {
	return func(s *settings) { s.filename = name }
}

// WithReader shares a caching reader between Import calls
func WithReader(reader *utils.SourceReader) Option {
	return func(s *settings) { s.reader = reader }
}

func newSettings(opts []Option) *settings {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Translate parses source and assembles its interface descriptors. On error
// no descriptors are returned.
func Translate(source string, opts ...Option) ([]models.InterfaceDescriptor, error) {
	return translate(source, newSettings(opts))
}

// TranslateDefinitions translates source and maps the descriptors to
// definitions
func TranslateDefinitions(source string, opts ...Option) ([]models.Definition, error) {
	descriptors, err := Translate(source, opts...)
	if err != nil {
		return nil, err
	}
	return mapper.ToDefinitions(descriptors), nil
}

// Import reads the document at path, relative to the project root unless
// absolute, and translates it
func Import(path string, opts ...Option) ([]models.InterfaceDescriptor, error) {
	s := newSettings(opts)
	if strings.TrimSpace(path) == "" {
		return nil, errors.NewConfigurationError("no source file provided",
			"Pass the path of a declaration file relative to the project root")
	}

	full := ResolvePath(s.root, path)
	reader := s.reader
	if reader == nil {
		reader = utils.NewSourceReader()
	}
	source, err := reader.ReadFile(full)
	if err != nil {
		return nil, err
	}

	if s.filename == "" {
		s.filename = full
	}
	return translate(source, s)
}

// ImportDocument imports path and names the result after it
func ImportDocument(path string, opts ...Option) (models.Document, error) {
	descriptors, err := Import(path, opts...)
	if err != nil {
		return models.Document{}, err
	}
	return models.Document{Name: path, Interfaces: descriptors}, nil
}

// ResolvePath joins a relative path onto root. An empty root means the
// project root of the working directory.
func ResolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	if root == "" {
		root = ProjectRoot()
	}
	return filepath.Join(root, path)
}

// ProjectRoot returns the directory of the nearest go.mod above the working
// directory, or the working directory when there is none
func ProjectRoot() string {
	return utils.NewGoModParser(utils.NewSourceReader()).WorkingRoot()
}

func translate(source string, s *settings) ([]models.InterfaceDescriptor, error) {
	file, err := grammar.Parse(s.filename, source)
	if err != nil {
		return nil, err
	}
	return assembler.New(assembler.Config{Serde: s.serde, Strict: s.strict}).Assemble(file)
}
