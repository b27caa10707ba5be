package cli

import (
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/toyz/tsport/internal/errors"
	"github.com/toyz/tsport/internal/utils"
)

func newTranslateCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate [files or globs...]",
		Short: "Translate declaration documents into definitions",
		Long: `Translate one or more declaration documents. Paths and globs (** is
supported) are resolved against the project root. With no arguments the
inputs listed in the config file are used.

Examples:
  # Translate a single document
  tsport translate api/models.d.ts

  # Translate every declaration file, with serde derives, as YAML
  tsport translate --serde --format yaml 'types/**/*.d.ts'

  # Translate inline text
  tsport translate --raw 'interface Point { x: number; y: number; }'

  # Re-translate whenever the inputs change
  tsport translate --watch -o defs.json 'types/**/*.ts'`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, opts, args)
		},
	}

	cmd.Flags().String("raw", "", "Translate the given document text instead of files")
	cmd.Flags().Bool("serde", false, "Add serde::Serialize and serde::Deserialize derives")
	cmd.Flags().Bool("strict", false, "Reject references to interfaces that were not translated")
	cmd.Flags().StringP("format", "f", FormatJSON, "Output format: json, yaml, text")
	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolP("watch", "w", false, "Watch the inputs and translate again on change")
	return cmd
}

func runTranslate(cmd *cobra.Command, opts *options, args []string) error {
	config, root, err := opts.load(cmd)
	if err != nil {
		return reportAndReturn(cmd, err)
	}
	diagnostics := newDiagnostics(config, cmd.ErrOrStderr())
	translator := NewTranslator(config, root, diagnostics)

	raw, _ := cmd.Flags().GetString("raw")
	watch, _ := cmd.Flags().GetBool("watch")
	rawGiven := cmd.Flags().Changed("raw")

	if rawGiven && len(args) > 0 {
		return reportAndReturn(cmd, errors.NewConfigurationError("--raw cannot be combined with file arguments"))
	}
	if rawGiven && watch {
		return reportAndReturn(cmd, errors.NewConfigurationError("--watch requires file arguments"))
	}

	diagnostics.Verbose("Project root: %s", root)
	run := func() error {
		var results []Result
		var err error
		if rawGiven {
			results, err = translator.TranslateRaw(raw)
		} else {
			results, err = translator.Run(args)
		}
		if err != nil {
			NewDiagnosticReporter(cmd.ErrOrStderr(), config.Verbose).ReportError(err)
		}
		if results != nil || err == nil {
			if werr := writeOutput(cmd.OutOrStdout(), config, results); werr != nil {
				return werr
			}
		}
		summary := translator.Summary()
		diagnostics.Summary("Translation summary", map[string]interface{}{
			"Documents":  summary.DocumentsProcessed,
			"Failed":     summary.DocumentsFailed,
			"Interfaces": summary.InterfacesFound,
			"Fields":     summary.FieldsFound,
		})
		return err
	}

	err = run()
	if !watch {
		return err
	}
	return watchAndTranslate(cmd, translator, args, diagnostics, run)
}

func watchAndTranslate(cmd *cobra.Command, translator *Translator, args []string, diagnostics *utils.DiagnosticSystem, run func() error) error {
	patterns := args
	if len(patterns) == 0 {
		patterns = translator.config.Inputs
	}
	paths, err := translator.Paths(patterns)
	if err != nil {
		return err
	}

	globs := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(translator.Root(), pattern)
		}
		globs = append(globs, pattern)
	}

	watcher, err := NewDocumentWatcher(paths, globs, diagnostics)
	if err != nil {
		return errors.Wrap(errors.FileSystemErrorCode, "failed to start watcher", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	diagnostics.Info("Watching %d document(s), press Ctrl+C to stop", len(paths))
	return watcher.Run(ctx, func(changed []string) {
		sort.Strings(changed)
		for _, path := range changed {
			translator.Invalidate(path)
			diagnostics.Info("Changed: %s", path)
		}
		// failures were already reported; keep watching
		_ = run()
	})
}

func writeOutput(stdout io.Writer, config *Config, results []Result) error {
	if config.Output == "" {
		return WriteResults(stdout, config.Format, results)
	}
	file, err := os.Create(config.Output)
	if err != nil {
		return errors.WrapFileSystemError("create", config.Output, err)
	}
	return writeAndClose(file, config.Output, config.Format, results)
}

// writeAndClose reports a failed Close unless writing already failed
func writeAndClose(w io.WriteCloser, path, format string, results []Result) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = errors.WrapFileSystemError("close", path, cerr)
		}
	}()
	return WriteResults(w, format, results)
}

func reportAndReturn(cmd *cobra.Command, err error) error {
	NewDiagnosticReporter(cmd.ErrOrStderr(), false).ReportError(err)
	return err
}
