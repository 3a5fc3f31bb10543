package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/revelaction/conllu/parser"
	"github.com/revelaction/conllu/render"
	sent "github.com/revelaction/conllu/sentence"
)

const (
	defaultConfigName = ".conllu.yaml"

	MultipleRootsError      = "error"
	MultipleRootsSynthesize = "synthesize"
)

// Config holds the CLI settings, read from the YAML file, CONLLU_*
// environment variables and command flags, in increasing precedence.
type Config struct {
	Fields             []string `mapstructure:"fields"`
	StrictIDs          bool     `mapstructure:"strict_ids"`
	PerSentenceColumns bool     `mapstructure:"per_sentence_columns"`
	MultipleRoots      string   `mapstructure:"multiple_roots"`

	Indent        int      `mapstructure:"indent"`
	ExcludeFields []string `mapstructure:"exclude_fields"`
	Color         bool     `mapstructure:"color"`
	Format        string   `mapstructure:"format"`

	LogLevel string `mapstructure:"log_level"`
	DB       string `mapstructure:"db"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("fields", []string{})
	v.SetDefault("strict_ids", false)
	v.SetDefault("per_sentence_columns", false)
	v.SetDefault("multiple_roots", MultipleRootsError)
	v.SetDefault("indent", 4)
	v.SetDefault("exclude_fields", sent.DefaultExcludeFields)
	v.SetDefault("color", true)
	v.SetDefault("format", render.Defaultformat)
	v.SetDefault("log_level", "info")
	v.SetDefault("db", "")
}

// loadConfig reads path, or $HOME/.conllu.yaml when path is empty. Only an
// explicitly given file must exist.
func loadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CONLLU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, defaultConfigName)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		err := v.ReadInConfig()
		switch {
		case err == nil:
		case !explicit && errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.MultipleRoots {
	case MultipleRootsError, MultipleRootsSynthesize:
	default:
		return fmt.Errorf("multiple_roots must be %q or %q, got %q", MultipleRootsError, MultipleRootsSynthesize, c.MultipleRoots)
	}
	if !render.IsSupported(c.Format) {
		return fmt.Errorf("unsupported format %q, valid: %s", c.Format, strings.Join(render.SupportedFormats(), ", "))
	}
	return nil
}

// Parser returns the parse configuration.
func (c Config) Parser() parser.Config {
	return parser.Config{
		Fields:             c.Fields,
		StrictIDs:          c.StrictIDs,
		PerSentenceColumns: c.PerSentenceColumns,
	}
}

// TreeOptions returns the tree building options.
func (c Config) TreeOptions() []sent.TreeOption {
	if c.MultipleRoots == MultipleRootsSynthesize {
		return []sent.TreeOption{sent.WithSyntheticRoot()}
	}
	return nil
}
