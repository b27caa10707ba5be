package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/tsport/internal/errors"
)

// DiagnosticReporter renders translation failures for people: error type,
// location, context and the hints attached to the error.
type DiagnosticReporter struct {
	out     io.Writer
	verbose bool
	colors  bool
}

// NewDiagnosticReporter creates a reporter writing to out
func NewDiagnosticReporter(out io.Writer, verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{out: out, verbose: verbose}
}

// WithColors enables coloured headers
func (r *DiagnosticReporter) WithColors(enabled bool) *DiagnosticReporter {
	r.colors = enabled
	return r
}

// ReportError prints err. A MultipleErrors is reported one entry at a time.
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	if multi, ok := err.(*errors.MultipleErrors); ok && len(multi.Errors) > 0 {
		for i, inner := range multi.Errors {
			if len(multi.Errors) > 1 {
				fmt.Fprintf(r.out, "[%d/%d] ", i+1, len(multi.Errors))
			}
			r.ReportError(inner)
		}
		return
	}

	var structured errors.Error
	if !errors.As(err, &structured) {
		r.printHeader("Error")
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
		return
	}

	r.printHeader(headerFor(structured.ErrorCode()))
	fmt.Fprintf(r.out, "Message: %s\n", errors.MessageOf(structured))
	if loc := structured.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n", loc.String())
	}
	fmt.Fprintln(r.out)

	if r.verbose {
		r.printContext(structured.Context())
		if cause := structured.Unwrap(); cause != nil {
			fmt.Fprintf(r.out, "Underlying cause: %s\n\n", cause.Error())
		}
	}

	if hints := errors.Hints(err); len(hints) > 0 {
		r.printSuggestions(hints)
	}
}

func (r *DiagnosticReporter) printHeader(title string) {
	line := strings.Repeat("-", len(title))
	if r.colors {
		title = color.New(color.FgRed, color.Bold).Sprint(title)
	}
	fmt.Fprintf(r.out, "%s\n%s\n", title, line)
}

func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	if len(context) == 0 {
		return
	}
	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(r.out, "Context:\n")
	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}
	fmt.Fprintln(r.out)
}

func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, suggestion)
	}
	fmt.Fprintln(r.out)
}

func headerFor(code errors.ErrorCode) string {
	switch code {
	case errors.SyntaxErrorCode:
		return "Syntax Error"
	case errors.UnknownTypeErrorCode:
		return "Unsupported Type"
	case errors.UnresolvedReferenceErrorCode:
		return "Unresolved Reference"
	case errors.FileSystemErrorCode:
		return "File System Error"
	case errors.ConfigurationErrorCode:
		return "Configuration Error"
	default:
		return "Error"
	}
}

// formatContextKey turns snake_case keys into Title Case labels
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}
