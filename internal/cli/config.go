package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/toyz/tsport/internal/errors"
)

// ConfigFileName is looked up in the project root when --config is not given
const ConfigFileName = ".tsport.yaml"

// EnvPrefix prefixes environment overrides, e.g. TSPORT_SERDE=true
const EnvPrefix = "TSPORT"

// Config holds the layered configuration for a tsport run. Flags override
// the config file, which overrides the defaults.
type Config struct {
	// Inputs are translated when no paths are given on the command line
	Inputs []string `mapstructure:"inputs"`

	// Serde enables the serialization derives
	Serde bool `mapstructure:"serde"`

	// Strict rejects references to interfaces that were not translated
	Strict bool `mapstructure:"strict"`

	Format  string `mapstructure:"format"`
	Output  string `mapstructure:"output"`
	Root    string `mapstructure:"root"`
	Verbose bool   `mapstructure:"verbose"`
	Quiet   bool   `mapstructure:"quiet"`

	Server ServerConfig `mapstructure:"server"`
}

// ServerConfig configures `tsport serve`
type ServerConfig struct {
	Addr   string `mapstructure:"addr"`
	Engine string `mapstructure:"engine"`
}

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("inputs", []string{})
	v.SetDefault("serde", false)
	v.SetDefault("strict", false)
	v.SetDefault("format", FormatJSON)
	v.SetDefault("output", "")
	v.SetDefault("root", "")
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.engine", "gin")
}

// NewViper creates a viper instance with defaults and environment binding
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// LoadConfig merges the config file (explicit path, else .tsport.yaml in
// root when present) and the changed flags into v and decodes the result
func LoadConfig(v *viper.Viper, flags *pflag.FlagSet, configPath, root string) (*Config, error) {
	if configPath == "" && root != "" {
		candidate := filepath.Join(root, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			configPath = candidate
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(errors.ConfigurationErrorCode, err,
				"failed to read config file %s", configPath).
				WithSuggestion("Config files are YAML, e.g. 'serde: true'")
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(errors.ConfigurationErrorCode, "failed to decode configuration", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// flagKeys maps command flags onto configuration keys
var flagKeys = map[string]string{
	"serde":   "serde",
	"strict":  "strict",
	"format":  "format",
	"output":  "output",
	"root":    "root",
	"verbose": "verbose",
	"quiet":   "quiet",
	"addr":    "server.addr",
	"engine":  "server.engine",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(errors.ConfigurationErrorCode, err, "failed to bind flag --%s", name)
		}
	}
	return nil
}

// Validate checks enumerated values
func (c *Config) Validate() error {
	if !isValidFormat(c.Format) {
		return errors.NewConfigurationError("unsupported output format: "+c.Format,
			"Use one of: "+strings.Join(Formats(), ", "))
	}
	if c.Verbose && c.Quiet {
		return errors.NewConfigurationError("--verbose and --quiet are mutually exclusive")
	}
	return nil
}
