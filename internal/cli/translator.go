package cli

import (
	"path/filepath"
	"time"

	"github.com/toyz/tsport/internal/errors"
	"github.com/toyz/tsport/internal/mapper"
	"github.com/toyz/tsport/internal/models"
	"github.com/toyz/tsport/internal/utils"
	"github.com/toyz/tsport/pkg/tsport"
)

// RawDocumentName names the document passed with --raw
const RawDocumentName = "<raw>"

// TranslationSummary describes the last run
type TranslationSummary struct {
	DocumentsProcessed int
	DocumentsFailed    int
	InterfacesFound    int
	FieldsFound        int
	Duration           time.Duration
}

// Result is the translated output of one document
type Result struct {
	Document    string              `json:"document" yaml:"document"`
	Definitions []models.Definition `json:"definitions" yaml:"definitions"`
}

// Translator coordinates a CLI translation run over one or more documents
type Translator struct {
	config      *Config
	root        string
	reader      *utils.SourceReader
	diagnostics *utils.DiagnosticSystem
	summary     TranslationSummary
}

// NewTranslator creates a translator. root is the directory relative paths
// and globs are resolved against.
func NewTranslator(config *Config, root string, diagnostics *utils.DiagnosticSystem) *Translator {
	return &Translator{
		config:      config,
		root:        root,
		reader:      utils.NewSourceReader(),
		diagnostics: diagnostics,
	}
}

// Summary returns statistics for the last run
func (t *Translator) Summary() TranslationSummary {
	return t.summary
}

// Root returns the resolution directory
func (t *Translator) Root() string {
	return t.root
}

// TranslateRaw translates inline document text
func (t *Translator) TranslateRaw(source string) ([]Result, error) {
	start := time.Now()
	t.summary = TranslationSummary{}
	defer func() { t.summary.Duration = time.Since(start) }()

	descriptors, err := tsport.Translate(source, t.options(tsport.WithFilename(RawDocumentName))...)
	t.record(descriptors, err)
	if err != nil {
		return nil, err
	}
	return []Result{{Document: RawDocumentName, Definitions: mapper.ToDefinitions(descriptors)}}, nil
}

// Run translates every document named by args, falling back to the
// configured inputs. Documents are independent: a failing document is
// reported and the rest are still translated; all failures are returned
// together.
func (t *Translator) Run(args []string) ([]Result, error) {
	start := time.Now()
	t.summary = TranslationSummary{}
	defer func() { t.summary.Duration = time.Since(start) }()

	patterns := args
	if len(patterns) == 0 {
		patterns = t.config.Inputs
	}
	if len(patterns) == 0 {
		return nil, errors.NewConfigurationError("no source file provided",
			"Pass declaration files or globs, use --raw, or list inputs in "+ConfigFileName)
	}

	t.diagnostics.StartProgress("Expanding inputs")
	paths, err := t.Paths(patterns)
	if err != nil {
		t.diagnostics.EndProgress(false, "")
		return nil, err
	}
	t.diagnostics.EndProgress(true, "")
	if len(paths) == 0 {
		return nil, errors.NewConfigurationError("no declaration files matched",
			"Check the glob patterns; ** matches across directories")
	}

	results := make([]Result, 0, len(paths))
	failures := &errors.MultipleErrors{}
	for _, path := range paths {
		name := t.displayName(path)
		t.diagnostics.Verbose("Translating %s", name)

		descriptors, err := tsport.Import(path, t.options(tsport.WithFilename(name))...)
		t.record(descriptors, err)
		if err != nil {
			failures.Add(err)
			continue
		}
		results = append(results, Result{Document: name, Definitions: mapper.ToDefinitions(descriptors)})
	}
	return results, failures.ErrorOrNil()
}

// Paths expands patterns against the root
func (t *Translator) Paths(patterns []string) ([]string, error) {
	return utils.ExpandPatterns(t.root, patterns)
}

// Invalidate drops the cached contents of path so the next run rereads it
func (t *Translator) Invalidate(path string) {
	t.reader.InvalidateFile(path)
}

func (t *Translator) options(extra ...tsport.Option) []tsport.Option {
	opts := []tsport.Option{
		tsport.WithSerde(t.config.Serde),
		tsport.WithStrict(t.config.Strict),
		tsport.WithRoot(t.root),
		tsport.WithReader(t.reader),
	}
	return append(opts, extra...)
}

func (t *Translator) record(descriptors []models.InterfaceDescriptor, err error) {
	t.summary.DocumentsProcessed++
	if err != nil {
		t.summary.DocumentsFailed++
		return
	}
	t.summary.InterfacesFound += len(descriptors)
	for _, descriptor := range descriptors {
		t.summary.FieldsFound += len(descriptor.Attributes)
	}
}

func (t *Translator) displayName(path string) string {
	if rel, err := filepath.Rel(t.root, path); err == nil && !startsWithParent(rel) {
		return filepath.ToSlash(rel)
	}
	return path
}

func startsWithParent(rel string) bool {
	return rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator)
}
