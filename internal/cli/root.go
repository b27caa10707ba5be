// Package cli implements the tsport command tree.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toyz/tsport/internal/utils"
)

// options holds what commands share besides their flags
type options struct {
	configPath string
	viper      *viper.Viper
}

// NewRootCommand builds the tsport command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "tsport",
		Short: "Translate TypeScript interface declarations into native definitions",
		Long: `tsport reads TypeScript-style interface declarations, applies the
/** rename|retype|skip|derive|skip_derive_serde; **/ options that trail
attributes and interfaces, and produces definitions for code emitters.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: "+ConfigFileName+" in the project root)")
	root.PersistentFlags().String("root", "", "Directory relative paths are resolved against (default: nearest go.mod)")
	root.PersistentFlags().Bool("verbose", false, "Enable verbose output")
	root.PersistentFlags().Bool("quiet", false, "Only show errors")

	root.AddCommand(newTranslateCommand(opts))
	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs the command tree with os.Args
func Execute() error {
	return NewRootCommand().Execute()
}

// load resolves the project root and the layered configuration for cmd
func (o *options) load(cmd *cobra.Command) (*Config, string, error) {
	if o.viper == nil {
		o.viper = NewViper()
	}

	root, _ := cmd.Flags().GetString("root")
	if root == "" {
		root = utils.NewGoModParser(utils.NewSourceReader()).WorkingRoot()
	}
	root, _ = filepath.Abs(root)

	config, err := LoadConfig(o.viper, cmd.Flags(), o.configPath, root)
	if err != nil {
		return nil, "", err
	}
	if config.Root != "" {
		root = config.Root
		if !filepath.IsAbs(root) {
			root, _ = filepath.Abs(root)
		}
	}
	return config, root, nil
}

// newDiagnostics creates the console reporter for a command
func newDiagnostics(config *Config, errOut io.Writer) *utils.DiagnosticSystem {
	level := utils.DiagnosticInfo
	switch {
	case config.Quiet:
		level = utils.DiagnosticError
	case config.Verbose:
		level = utils.DiagnosticVerbose
	}
	diagnostics := utils.NewDiagnosticSystem(level)
	if errOut != os.Stderr {
		diagnostics.SetOutput(errOut, errOut)
	}
	return diagnostics
}
