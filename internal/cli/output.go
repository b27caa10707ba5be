package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Formats lists the supported output formats
func Formats() []string {
	return []string{FormatJSON, FormatYAML, FormatText}
}

func isValidFormat(format string) bool {
	for _, f := range Formats() {
		if f == format {
			return true
		}
	}
	return false
}

// WriteResults serializes results to w in the given format
func WriteResults(w io.Writer, format string, results []Result) error {
	if results == nil {
		results = []Result{}
	}
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(results); err != nil {
			return err
		}
		return encoder.Close()
	case FormatText:
		return writeText(w, results)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeText(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "# %s\n", result.Document)
		for _, def := range result.Definitions {
			fmt.Fprintf(tw, "%s\t[%s]\n", def.Name, strings.Join(def.Derives, ", "))
			for _, field := range def.Fields {
				fmt.Fprintf(tw, "  %s\t%s\n", field.Name, field.Type)
			}
		}
	}
	return tw.Flush()
}
