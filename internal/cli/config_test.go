package cli

import (
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/tsport/internal/errors"
)

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig(NewViper(), nil, "", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, config.Format)
	assert.Empty(t, config.Inputs)
	assert.False(t, config.Serde)
	assert.Equal(t, ":8080", config.Server.Addr)
	assert.Equal(t, "gin", config.Server.Engine)
}

func TestLoadConfig_Layers(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, ConfigFileName, `
inputs:
  - "types/**/*.ts"
serde: true
format: yaml
server:
  engine: fiber
`)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", FormatJSON, "")
	flags.String("addr", ":8080", "")
	require.NoError(t, flags.Parse([]string{"--addr", ":9090"}))

	config, err := LoadConfig(NewViper(), flags, "", root)
	require.NoError(t, err)

	assert.Equal(t, []string{"types/**/*.ts"}, config.Inputs)
	assert.True(t, config.Serde)
	assert.Equal(t, FormatYAML, config.Format, "unchanged flags do not override the file")
	assert.Equal(t, ":9090", config.Server.Addr)
	assert.Equal(t, "fiber", config.Server.Engine)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("TSPORT_STRICT", "true")
	t.Setenv("TSPORT_SERVER_ENGINE", "echo")

	config, err := LoadConfig(NewViper(), nil, "", t.TempDir())
	require.NoError(t, err)
	assert.True(t, config.Strict)
	assert.Equal(t, "echo", config.Server.Engine)
}

func TestLoadConfig_Errors(t *testing.T) {
	root := t.TempDir()

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := LoadConfig(NewViper(), nil, filepath.Join(root, "nope.yaml"), root)
		require.Error(t, err)
		assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeDoc(t, root, "bad.yaml", "serde: [unclosed\n")
		_, err := LoadConfig(NewViper(), nil, path, root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("invalid format", func(t *testing.T) {
		path := writeDoc(t, root, "format.yaml", "format: xml\n")
		_, err := LoadConfig(NewViper(), nil, path, root)
		require.Error(t, err)
		assert.Contains(t, errors.Hints(err), "Use one of: json, yaml, text")
	})
}
